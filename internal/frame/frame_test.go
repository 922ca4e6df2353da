package frame

import "testing"

func TestFloor(t *testing.T) {
	tests := []struct {
		in   Time
		want Frame
	}{
		{0, 0},
		{2.5, 2},
		{3, 3},
		{-0.5, -1},
		{-2, -2},
	}
	for _, tt := range tests {
		if got := tt.in.Floor(); got != tt.want {
			t.Errorf("Time(%v).Floor() = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestIsFrame(t *testing.T) {
	if !Frame(4).Time().IsFrame() {
		t.Error("frame time should be on a frame")
	}
	if Time(4.25).IsFrame() {
		t.Error("4.25 should not be on a frame")
	}
	if Frame(-3).String() != "-3" {
		t.Errorf("String() = %q", Frame(-3).String())
	}
}
