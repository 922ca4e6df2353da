package background

import (
	"fmt"
	"math"
)

// Color is a non-premultiplied RGBA color with components in [0,1].
type Color struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
	A float64 `yaml:"a"`
}

// Vec2 is a 2D position or extent in scene units.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min  Vec2
	Size Vec2
}

// SizeType selects how the background image is sized.
type SizeType int

const (
	FitToCanvas SizeType = iota
	ManualSize
)

var sizeTypeNames = [...]string{"fit_to_canvas", "manual"}

func (s SizeType) String() string {
	if s < 0 || int(s) >= len(sizeTypeNames) {
		return fmt.Sprintf("SizeType(%d)", int(s))
	}
	return sizeTypeNames[s]
}

func (s SizeType) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(sizeTypeNames) {
		return nil, fmt.Errorf("invalid size type %d", int(s))
	}
	return []byte(sizeTypeNames[s]), nil
}

func (s *SizeType) UnmarshalText(text []byte) error {
	for i, name := range sizeTypeNames {
		if string(text) == name {
			*s = SizeType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown size type %q", text)
}

// RepeatType selects along which axes the background image tiles.
type RepeatType int

const (
	RepeatNone RepeatType = iota
	RepeatHorizontal
	RepeatVertical
	RepeatBoth
)

var repeatTypeNames = [...]string{"none", "horizontal", "vertical", "both"}

func (r RepeatType) String() string {
	if r < 0 || int(r) >= len(repeatTypeNames) {
		return fmt.Sprintf("RepeatType(%d)", int(r))
	}
	return repeatTypeNames[r]
}

func (r RepeatType) MarshalText() ([]byte, error) {
	if r < 0 || int(r) >= len(repeatTypeNames) {
		return nil, fmt.Errorf("invalid repeat type %d", int(r))
	}
	return []byte(repeatTypeNames[r]), nil
}

func (r *RepeatType) UnmarshalText(text []byte) error {
	for i, name := range repeatTypeNames {
		if string(text) == name {
			*r = RepeatType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown repeat type %q", text)
}

// RepeatsX reports whether the image tiles horizontally.
func (r RepeatType) RepeatsX() bool { return r == RepeatHorizontal || r == RepeatBoth }

// RepeatsY reports whether the image tiles vertically.
func (r RepeatType) RepeatsY() bool { return r == RepeatVertical || r == RepeatBoth }

// Data is a value snapshot of every background attribute. Two snapshots
// compare equal with == exactly when nothing changed between them.
type Data struct {
	Color           Color      `yaml:"color"`
	ImageURLPattern string     `yaml:"image_url"`
	Position        Vec2       `yaml:"position"`
	SizeType        SizeType   `yaml:"size_type"`
	Size            Vec2       `yaml:"size"`
	RepeatType      RepeatType `yaml:"repeat"`
	Opacity         float64    `yaml:"opacity"`
	Hold            bool       `yaml:"hold"`
}

// DefaultData returns the attributes of a new document's background.
func DefaultData() Data {
	return Data{
		Color:    Color{R: 1, G: 1, B: 1, A: 1},
		SizeType: FitToCanvas,
		Size:     Vec2{X: 1280, Y: 720},
		Opacity:  1,
		Hold:     true,
	}
}

// clamped returns c with every component in [0,1]; NaN becomes 0.
func (c Color) clamped() Color {
	return Color{R: clampUnit(c.R), G: clampUnit(c.G), B: clampUnit(c.B), A: clampUnit(c.A)}
}

// finite replaces NaN coordinates with 0 so Data stays comparable with ==.
func (v Vec2) finite() Vec2 {
	if math.IsNaN(v.X) {
		v.X = 0
	}
	if math.IsNaN(v.Y) {
		v.Y = 0
	}
	return v
}

func clampUnit(v float64) float64 {
	if !(v >= 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
