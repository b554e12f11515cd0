package shader

import "testing"

func TestWorkGroups(t *testing.T) {
	tests := []struct {
		w, h, size int
		gx, gy     uint32
	}{
		{1280, 960, 16, 80, 60},
		{1281, 961, 16, 81, 61},
		{1, 1, 16, 1, 1},
		{15, 17, 16, 1, 2},
		{0, 0, 16, 0, 0},
	}
	for _, tt := range tests {
		gx, gy := WorkGroups(tt.w, tt.h, tt.size)
		if gx != tt.gx || gy != tt.gy {
			t.Errorf("WorkGroups(%d, %d, %d) = %d, %d; want %d, %d", tt.w, tt.h, tt.size, gx, gy, tt.gx, tt.gy)
		}
	}
}
