package background

import (
	"reflect"
	"testing"
	"testing/fstest"

	"github.com/ivlev/vacdoc/internal/frame"
)

func file() *fstest.MapFile { return &fstest.MapFile{Data: []byte("x")} }

func TestResolveHold(t *testing.T) {
	fsys := fstest.MapFS{
		"img1.png": file(),
		"img3.png": file(),
		"img.png":  file(),
	}
	r := NewResolver(fsys)
	r.SetPattern("img*.png")

	tests := []struct {
		frame frame.Frame
		hold  bool
		want  string
		ok    bool
	}{
		{3, true, "img3.png", true},
		{5, true, "img3.png", true},
		{4, true, "img3.png", true},
		{2, true, "img1.png", true},
		{0, true, "img.png", true}, // nothing earlier: literal fallback
		{5, false, "img.png", true},
		{1, false, "img1.png", true},
	}
	for _, tt := range tests {
		got, ok := r.Resolve(tt.frame, tt.hold)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Resolve(%d, hold=%v) = %q, %v; want %q, %v", tt.frame, tt.hold, got, ok, tt.want, tt.ok)
		}
	}
}

func TestResolveWithoutFallback(t *testing.T) {
	fsys := fstest.MapFS{"img3.png": file()}
	r := NewResolver(fsys)
	r.SetPattern("img*.png")

	if p, ok := r.Resolve(5, false); ok {
		t.Errorf("expected nothing without hold or fallback, got %q", p)
	}
	if p, ok := r.Resolve(2, true); ok {
		t.Errorf("hold must not search forward, got %q", p)
	}
}

func TestResolveLiteral(t *testing.T) {
	fsys := fstest.MapFS{"bg/still.png": file()}
	r := NewResolver(fsys)
	r.SetPattern("bg/still.png")
	for _, f := range []frame.Frame{-4, 0, 100} {
		if p, ok := r.Resolve(f, false); !ok || p != "bg/still.png" {
			t.Errorf("Resolve(%d) = %q, %v", f, p, ok)
		}
	}

	r.SetPattern("bg/missing.png")
	if _, ok := r.Resolve(0, true); ok {
		t.Error("missing literal must resolve to nothing")
	}
}

func TestResolveSubdirectoryAndNegativeFrames(t *testing.T) {
	fsys := fstest.MapFS{
		"frames/bg-2.png":    file(),
		"frames/bg001.png":   file(),
		"frames/bg1.png":     file(),
		"frames/bgx.png":     file(),
		"frames/other1.png":  file(),
		"frames/sub/bg4.png": file(),
	}
	r := NewResolver(fsys)
	r.SetPattern("frames/bg*.png")

	want := []frame.Frame{-2, 1}
	if got := r.Frames(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Frames() = %v, want %v", got, want)
	}
	if p, _ := r.Resolve(1, false); p != "frames/bg1.png" {
		t.Errorf("unpadded file should win, got %q", p)
	}
	if p, _ := r.Resolve(0, true); p != "frames/bg-2.png" {
		t.Errorf("Resolve(0, hold) = %q", p)
	}
}

func TestResolverInvalidate(t *testing.T) {
	fsys := fstest.MapFS{"img1.png": file()}
	r := NewResolver(fsys)
	r.SetPattern("img*.png")

	if _, ok := r.Resolve(2, false); ok {
		t.Fatal("frame 2 should not exist yet")
	}

	fsys["img2.png"] = file()
	if _, ok := r.Resolve(2, false); ok {
		t.Fatal("cached scan should not see the new file")
	}

	r.Invalidate()
	if p, ok := r.Resolve(2, false); !ok || p != "img2.png" {
		t.Errorf("after Invalidate: %q, %v", p, ok)
	}
}

func TestResolverResetsWildcard(t *testing.T) {
	r := NewResolver(fstest.MapFS{"img1.png": file(), "plain.png": file()})
	r.SetPattern("img*.png")
	r.Frames()
	if !r.wildcard {
		t.Fatal("wildcard pattern not detected")
	}

	r.SetPattern("")
	if r.wildcard {
		t.Error("clearing the pattern left the wildcard flag set")
	}
	if _, ok := r.Resolve(1, true); ok {
		t.Error("empty pattern should resolve nothing")
	}

	r.SetPattern("img*.png")
	r.Frames()
	r.SetRoot(nil)
	if r.wildcard {
		t.Error("switching the root left the wildcard flag set")
	}
	if frames := r.Frames(); len(frames) != 0 {
		t.Errorf("frames without a root = %v", frames)
	}
}

func TestResolveEdgeCases(t *testing.T) {
	r := NewResolver(nil)
	r.SetPattern("img*.png")
	if _, ok := r.Resolve(0, true); ok {
		t.Error("nil root resolves nothing")
	}

	r = NewResolver(fstest.MapFS{"a.png": file()})
	if _, ok := r.Resolve(0, true); ok {
		t.Error("empty pattern resolves nothing")
	}

	r.SetPattern("nodir/img*.png")
	if _, ok := r.Resolve(0, true); ok {
		t.Error("missing directory resolves nothing")
	}

	r.SetPattern("../outside*.png")
	if _, ok := r.Resolve(0, true); ok {
		t.Error("paths outside the root resolve nothing")
	}
}

func TestResolverPath(t *testing.T) {
	r := NewResolver(nil)
	r.SetPattern(`frames\img*.png`)
	if got := r.Path(-3); got != "frames/img-3.png" {
		t.Errorf("Path(-3) = %q", got)
	}
}
