package math

// Vec4 is a homogeneous 4-component vector. Its memory layout matches a
// GLSL vec4, so slices of Vec4 can be uploaded as-is.
type Vec4 struct {
	X, Y, Z, W float32
}

// Vec3 drops the w component.
func (v Vec4) Vec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// Add returns the component-wise sum.
func (v Vec4) Add(other Vec4) Vec4 {
	return Vec4{v.X + other.X, v.Y + other.Y, v.Z + other.Z, v.W + other.W}
}

// Array returns the components as an array, in x, y, z, w order.
func (v Vec4) Array() [4]float32 {
	return [4]float32{v.X, v.Y, v.Z, v.W}
}
