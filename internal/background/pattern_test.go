package background

import (
	"reflect"
	"testing"
)

func TestInferPattern(t *testing.T) {
	tests := []struct {
		name          string
		files         []string
		pattern       string
		nonConforming []string
	}{
		{"empty", nil, "", nil},
		{"single", []string{"image.png"}, "image.png", nil},
		{"two frames", []string{"image1.png", "image2.png"}, "image*.png", nil},
		{"multi-digit shared", []string{"image10.png", "image11.png", "image9.png"}, "image*.png", nil},
		{"no common prefix", []string{"1.png", "2.png"}, "*.png", nil},
		{"shared dash kept", []string{"a-1.png", "a-2.png"}, "a-*.png", nil},
		{"dash is a sign", []string{"a-1.png", "a-2.png", "a3.png"}, "a*.png", nil},
		{"negative first", []string{"a-1.png", "a2.png"}, "a*.png", nil},
		{"fallback first", []string{"img.png", "img1.png"}, "img*.png", nil},
		{"bare prefix first", []string{"img", "img1"}, "img*", nil},
		{"non conforming", []string{"a1.png", "a2.png", "b3.png"}, "a*.png", []string{"b3.png"}},
		{"bad middle", []string{"a1.png", "a2.png", "ax.png", "a-.png"}, "a*.png", []string{"ax.png", "a-.png"}},
		{"subdirectory", []string{"frames/bg001.jpg", "frames/bg002.jpg"}, "frames/bg*.jpg", nil},
		{"unicode prefix", []string{"été1.png", "été2.png"}, "été*.png", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InferPattern(tt.files)
			if got.Pattern != tt.pattern {
				t.Errorf("pattern = %q, want %q", got.Pattern, tt.pattern)
			}
			if !reflect.DeepEqual(got.NonConforming, tt.nonConforming) {
				t.Errorf("non-conforming = %q, want %q", got.NonConforming, tt.nonConforming)
			}
		})
	}
}

func TestInferPatternDivergingRunes(t *testing.T) {
	// é and è share their first UTF-8 byte; the prefix must stay valid text.
	got := InferPattern([]string{"é1.png", "è2.png"})
	if got.Prefix != "" {
		t.Errorf("prefix = %q, want empty", got.Prefix)
	}
	if got.Pattern != "*é1.png" {
		t.Errorf("pattern = %q, want *é1.png", got.Pattern)
	}
	if !reflect.DeepEqual(got.NonConforming, []string{"è2.png"}) {
		t.Errorf("non-conforming = %q", got.NonConforming)
	}
}

func TestInferPatternParts(t *testing.T) {
	got := InferPattern([]string{"bg-12.png", "bg-13.png"})
	if !got.Wildcard {
		t.Fatal("expected a wildcard pattern")
	}
	if got.Prefix != "bg-" || got.Suffix != ".png" {
		t.Errorf("prefix/suffix = %q/%q, want bg-/.png", got.Prefix, got.Suffix)
	}

	single := InferPattern([]string{"still.png"})
	if single.Wildcard {
		t.Error("single file must not produce a wildcard")
	}
}

func TestSplitPattern(t *testing.T) {
	prefix, suffix, ok := SplitPattern("frames/img*.png")
	if !ok || prefix != "frames/img" || suffix != ".png" {
		t.Errorf("SplitPattern = %q, %q, %v", prefix, suffix, ok)
	}
	prefix, _, ok = SplitPattern("still.png")
	if ok || prefix != "still.png" {
		t.Errorf("SplitPattern(no wildcard) = %q, %v", prefix, ok)
	}
}
