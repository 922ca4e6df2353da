// Package geometry stores the keyed geometry of vector animation cells and
// computes in-between geometry at arbitrary times.
//
// A key is authored at one frame and never modified afterwards; editing a
// key replaces it. The Manager owns all keys, indexed per cell.
package geometry

import (
	"math"

	"github.com/ivlev/vacdoc/internal/frame"
)

// CellID identifies a topological cell (vertex or edge).
type CellID uint64

// Kind is the kind of cell a key belongs to.
type Kind int

const (
	VertexCell Kind = iota + 1
	EdgeCell
)

func (k Kind) String() string {
	switch k {
	case VertexCell:
		return "vertex"
	case EdgeCell:
		return "edge"
	}
	return "unknown"
}

// Point is a position in scene coordinates.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func lerpPoint(a, b Point, u float64) Point {
	return Point{X: lerp(a.X, b.X, u), Y: lerp(a.Y, b.Y, u)}
}

func dist(a, b Point) float64 { return math.Hypot(b.X-a.X, b.Y-a.Y) }

// KeyVertexGeometry is the position of a vertex at a key frame.
type KeyVertexGeometry struct {
	cell  CellID
	frame frame.Frame
	pos   Point
}

func NewKeyVertexGeometry(cell CellID, f frame.Frame, pos Point) KeyVertexGeometry {
	return KeyVertexGeometry{cell: cell, frame: f, pos: pos}
}

func (k KeyVertexGeometry) Cell() CellID       { return k.cell }
func (k KeyVertexGeometry) Frame() frame.Frame { return k.frame }
func (k KeyVertexGeometry) Position() Point    { return k.pos }

// KeyEdgeGeometry is the centerline of an edge at a key frame, sampled as
// a polyline, with a stroke width. Closed edges join their last sample to
// the first.
type KeyEdgeGeometry struct {
	cell    CellID
	frame   frame.Frame
	samples []Point
	width   float64
	closed  bool
}

// NewKeyEdgeGeometry copies samples; later changes to the slice do not
// affect the key.
func NewKeyEdgeGeometry(cell CellID, f frame.Frame, samples []Point, width float64, closed bool) KeyEdgeGeometry {
	s := make([]Point, len(samples))
	copy(s, samples)
	return KeyEdgeGeometry{cell: cell, frame: f, samples: s, width: width, closed: closed}
}

func (k KeyEdgeGeometry) Cell() CellID       { return k.cell }
func (k KeyEdgeGeometry) Frame() frame.Frame { return k.frame }
func (k KeyEdgeGeometry) Width() float64     { return k.width }
func (k KeyEdgeGeometry) Closed() bool       { return k.closed }

// Samples returns a copy of the centerline samples.
func (k KeyEdgeGeometry) Samples() []Point {
	s := make([]Point, len(k.samples))
	copy(s, k.samples)
	return s
}

// Length returns the arc length of the centerline.
func (k KeyEdgeGeometry) Length() float64 {
	return polylineLength(k.samples, k.closed)
}
