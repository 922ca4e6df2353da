package system

import (
	"image"
	"image/color"
	"testing"
)

func TestClampBudget(t *testing.T) {
	tests := []struct {
		in, want int64
	}{
		{0, minCacheBudget},
		{100 << 20, 100 << 20},
		{10 << 30, maxCacheBudget},
	}
	for _, tt := range tests {
		if got := clampBudget(tt.in); got != tt.want {
			t.Errorf("clampBudget(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestProbes(t *testing.T) {
	if DefaultWorkers() < 1 {
		t.Error("DefaultWorkers must be positive")
	}
	b := CacheBudget()
	if b < minCacheBudget || b > maxCacheBudget {
		t.Errorf("CacheBudget = %d out of range", b)
	}
}

func TestToRGBA(t *testing.T) {
	src := image.NewGray(image.Rect(10, 10, 14, 12))
	src.SetGray(11, 11, color.Gray{Y: 200})

	dst := ToRGBA(src)
	defer PutImage(dst)

	if dst.Bounds() != src.Bounds() {
		t.Fatalf("bounds = %v, want %v", dst.Bounds(), src.Bounds())
	}
	if r, _, _, _ := dst.At(11, 11).RGBA(); r>>8 != 200 {
		t.Errorf("pixel red = %d, want 200", r>>8)
	}
}

func TestPoolReusesBySize(t *testing.T) {
	p := NewImagePool()
	a := p.Get(image.Rect(0, 0, 8, 8))
	p.Put(a)
	b := p.Get(image.Rect(5, 5, 13, 13))
	if b.Bounds() != image.Rect(5, 5, 13, 13) {
		t.Errorf("bounds = %v", b.Bounds())
	}
	if len(b.Pix) != 8*8*4 {
		t.Errorf("pix len = %d", len(b.Pix))
	}
}
