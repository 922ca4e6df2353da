// Package document persists a VAC document: its background and the key
// geometry of its cells.
package document

import (
	"fmt"

	"github.com/ivlev/vacdoc/internal/background"
	"github.com/ivlev/vacdoc/internal/frame"
	"github.com/ivlev/vacdoc/internal/geometry"
)

// Version is written into every saved document.
const Version = "1.0"

type Document struct {
	Version    string          `yaml:"version"`
	Background background.Data `yaml:"background"`
	Vertices   []VertexKey     `yaml:"vertices,omitempty"`
	Edges      []EdgeKey       `yaml:"edges,omitempty"`
}

// VertexKey is one KeyVertexGeometry in file form.
type VertexKey struct {
	Cell     geometry.CellID `yaml:"cell"`
	Frame    frame.Frame     `yaml:"frame"`
	Position geometry.Point  `yaml:"position"`
}

// EdgeKey is one KeyEdgeGeometry in file form.
type EdgeKey struct {
	Cell    geometry.CellID  `yaml:"cell"`
	Frame   frame.Frame      `yaml:"frame"`
	Width   float64          `yaml:"width"`
	Closed  bool             `yaml:"closed,omitempty"`
	Samples []geometry.Point `yaml:"samples,flow"`
}

// FromState snapshots bg and every key held by mgr.
func FromState(bg *background.Background, mgr *geometry.Manager) *Document {
	doc := &Document{
		Version:    Version,
		Background: bg.Data(),
	}
	for _, cell := range mgr.Cells() {
		for _, k := range mgr.VertexKeys(cell) {
			doc.Vertices = append(doc.Vertices, VertexKey{
				Cell:     k.Cell(),
				Frame:    k.Frame(),
				Position: k.Position(),
			})
		}
		for _, k := range mgr.EdgeKeys(cell) {
			doc.Edges = append(doc.Edges, EdgeKey{
				Cell:    k.Cell(),
				Frame:   k.Frame(),
				Width:   k.Width(),
				Closed:  k.Closed(),
				Samples: k.Samples(),
			})
		}
	}
	return doc
}

// Apply loads the document into bg and mgr. mgr should be empty; keys
// already present at the same cell and frame are replaced.
func (d *Document) Apply(bg *background.Background, mgr *geometry.Manager) error {
	bg.SetData(d.Background)
	for _, v := range d.Vertices {
		if err := mgr.SetKeyVertex(geometry.NewKeyVertexGeometry(v.Cell, v.Frame, v.Position)); err != nil {
			return fmt.Errorf("vertex %d at frame %d: %w", v.Cell, v.Frame, err)
		}
	}
	for _, e := range d.Edges {
		if err := mgr.SetKeyEdge(geometry.NewKeyEdgeGeometry(e.Cell, e.Frame, e.Samples, e.Width, e.Closed)); err != nil {
			return fmt.Errorf("edge %d at frame %d: %w", e.Cell, e.Frame, err)
		}
	}
	return nil
}
