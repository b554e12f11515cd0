package gpu

import "fmt"

// CheckWorkGroupSize checks a groupSize x groupSize local size against the
// driver's compute limits.
func CheckWorkGroupSize(l Limits, groupSize int) error {
	if groupSize < 1 {
		return fmt.Errorf("work group size %d must be positive", groupSize)
	}
	if err := checkLimit("work group width", groupSize, l.MaxComputeGroupSizeX); err != nil {
		return err
	}
	if err := checkLimit("work group height", groupSize, l.MaxComputeGroupSizeY); err != nil {
		return err
	}
	return checkLimit("work group invocations", groupSize*groupSize, l.MaxComputeInvocations)
}

// CheckDispatch checks the group counts needed to cover width x height.
func CheckDispatch(l Limits, width, height, groupSize int) error {
	if err := CheckWorkGroupSize(l, groupSize); err != nil {
		return err
	}
	gx := (width + groupSize - 1) / groupSize
	gy := (height + groupSize - 1) / groupSize
	if err := checkLimit("horizontal work groups", gx, l.MaxComputeGroupCountX); err != nil {
		return err
	}
	return checkLimit("vertical work groups", gy, l.MaxComputeGroupCountY)
}
