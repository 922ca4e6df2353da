package geometry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tanema/gween/ease"

	"github.com/ivlev/vacdoc/internal/frame"
)

var (
	ErrUnknownCell  = errors.New("geometry: unknown cell")
	ErrKindMismatch = errors.New("geometry: key kind does not match cell")
	ErrEmptyEdge    = errors.New("geometry: edge key has no samples")
)

// track holds the keys of one cell, sorted by frame. Exactly one of
// vertices and edges is used, depending on kind.
type track struct {
	kind     Kind
	frames   []frame.Frame
	vertices []KeyVertexGeometry
	edges    []KeyEdgeGeometry
}

// Manager owns the key geometry of every cell and resolves geometry at
// arbitrary times. Removing a cell's last key removes the cell.
type Manager struct {
	easing ease.TweenFunc
	cells  map[CellID]*track
}

// Option configures a Manager.
type Option func(*Manager)

// WithEasing sets the curve used between keys. The default is linear.
func WithEasing(fn ease.TweenFunc) Option {
	return func(m *Manager) {
		if fn != nil {
			m.easing = fn
		}
	}
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		easing: ease.Linear,
		cells:  make(map[CellID]*track),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *Manager) track(cell CellID, kind Kind) (*track, error) {
	tr, ok := m.cells[cell]
	if !ok {
		tr = &track{kind: kind}
		m.cells[cell] = tr
		return tr, nil
	}
	if tr.kind != kind {
		return nil, fmt.Errorf("%w: cell %d is a %s, got %s key", ErrKindMismatch, cell, tr.kind, kind)
	}
	return tr, nil
}

// insertAt returns where f belongs in frames and whether a key already
// sits there.
func insertAt(frames []frame.Frame, f frame.Frame) (int, bool) {
	i := sort.Search(len(frames), func(k int) bool { return frames[k] >= f })
	return i, i < len(frames) && frames[i] == f
}

// SetKeyVertex adds k, replacing any key of the same cell at the same frame.
func (m *Manager) SetKeyVertex(k KeyVertexGeometry) error {
	tr, err := m.track(k.cell, VertexCell)
	if err != nil {
		return err
	}
	i, exists := insertAt(tr.frames, k.frame)
	if exists {
		tr.vertices[i] = k
		return nil
	}
	tr.frames = append(tr.frames[:i], append([]frame.Frame{k.frame}, tr.frames[i:]...)...)
	tr.vertices = append(tr.vertices[:i], append([]KeyVertexGeometry{k}, tr.vertices[i:]...)...)
	return nil
}

// SetKeyEdge adds k, replacing any key of the same cell at the same frame.
// A key without samples is rejected with ErrEmptyEdge.
func (m *Manager) SetKeyEdge(k KeyEdgeGeometry) error {
	if len(k.samples) == 0 {
		return fmt.Errorf("%w: cell %d at frame %d", ErrEmptyEdge, k.cell, k.frame)
	}
	tr, err := m.track(k.cell, EdgeCell)
	if err != nil {
		return err
	}
	i, exists := insertAt(tr.frames, k.frame)
	if exists {
		tr.edges[i] = k
		return nil
	}
	tr.frames = append(tr.frames[:i], append([]frame.Frame{k.frame}, tr.frames[i:]...)...)
	tr.edges = append(tr.edges[:i], append([]KeyEdgeGeometry{k}, tr.edges[i:]...)...)
	return nil
}

// RemoveKey deletes the key of cell at f. It reports whether a key was
// removed.
func (m *Manager) RemoveKey(cell CellID, f frame.Frame) bool {
	tr, ok := m.cells[cell]
	if !ok {
		return false
	}
	i, exists := insertAt(tr.frames, f)
	if !exists {
		return false
	}
	tr.frames = append(tr.frames[:i], tr.frames[i+1:]...)
	switch tr.kind {
	case VertexCell:
		tr.vertices = append(tr.vertices[:i], tr.vertices[i+1:]...)
	case EdgeCell:
		tr.edges = append(tr.edges[:i], tr.edges[i+1:]...)
	}
	if len(tr.frames) == 0 {
		delete(m.cells, cell)
	}
	return true
}

// RemoveCell deletes every key of cell, following the cell's deletion
// from the topology.
func (m *Manager) RemoveCell(cell CellID) bool {
	if _, ok := m.cells[cell]; !ok {
		return false
	}
	delete(m.cells, cell)
	return true
}

// Cells returns all cell ids with at least one key, ascending.
func (m *Manager) Cells() []CellID {
	ids := make([]CellID, 0, len(m.cells))
	for id := range m.cells {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (m *Manager) Kind(cell CellID) (Kind, bool) {
	tr, ok := m.cells[cell]
	if !ok {
		return 0, false
	}
	return tr.kind, true
}

// Keys returns the key frames of cell, ascending.
func (m *Manager) Keys(cell CellID) []frame.Frame {
	tr, ok := m.cells[cell]
	if !ok {
		return nil
	}
	out := make([]frame.Frame, len(tr.frames))
	copy(out, tr.frames)
	return out
}

func (m *Manager) IsKey(cell CellID, f frame.Frame) bool {
	tr, ok := m.cells[cell]
	if !ok {
		return false
	}
	_, exists := insertAt(tr.frames, f)
	return exists
}

// VertexKeys returns the keys of a vertex cell in frame order.
func (m *Manager) VertexKeys(cell CellID) []KeyVertexGeometry {
	tr, ok := m.cells[cell]
	if !ok || tr.kind != VertexCell {
		return nil
	}
	return append([]KeyVertexGeometry(nil), tr.vertices...)
}

// EdgeKeys returns the keys of an edge cell in frame order.
func (m *Manager) EdgeKeys(cell CellID) []KeyEdgeGeometry {
	tr, ok := m.cells[cell]
	if !ok || tr.kind != EdgeCell {
		return nil
	}
	return append([]KeyEdgeGeometry(nil), tr.edges...)
}

func (m *Manager) lookup(cell CellID, kind Kind) (*track, error) {
	tr, ok := m.cells[cell]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCell, cell)
	}
	if tr.kind != kind {
		return nil, fmt.Errorf("%w: cell %d is a %s", ErrKindMismatch, cell, tr.kind)
	}
	return tr, nil
}

// VertexPosition returns the position of a vertex at t, interpolated
// between the surrounding keys and held constant outside them.
func (m *Manager) VertexPosition(cell CellID, t frame.Time) (Point, error) {
	tr, err := m.lookup(cell, VertexCell)
	if err != nil {
		return Point{}, err
	}
	i, j, u := span(tr.frames, t, m.easing)
	return lerpPoint(tr.vertices[i].pos, tr.vertices[j].pos, u), nil
}

// EdgeSamples returns the centerline of an edge at t. When the
// surrounding keys have different sample counts both are resampled by arc
// length to the larger count before blending.
func (m *Manager) EdgeSamples(cell CellID, t frame.Time) ([]Point, error) {
	tr, err := m.lookup(cell, EdgeCell)
	if err != nil {
		return nil, err
	}
	i, j, u := span(tr.frames, t, m.easing)
	a, b := tr.edges[i], tr.edges[j]
	if i == j {
		return a.Samples(), nil
	}

	n := len(a.samples)
	if len(b.samples) > n {
		n = len(b.samples)
	}
	as, bs := a.samples, b.samples
	if len(as) != n {
		as = resample(as, n, a.closed)
	}
	if len(bs) != n {
		bs = resample(bs, n, b.closed)
	}
	out := make([]Point, n)
	for k := range out {
		out[k] = lerpPoint(as[k], bs[k], u)
	}
	return out, nil
}

// EdgeWidth returns the stroke width of an edge at t.
func (m *Manager) EdgeWidth(cell CellID, t frame.Time) (float64, error) {
	tr, err := m.lookup(cell, EdgeCell)
	if err != nil {
		return 0, err
	}
	i, j, u := span(tr.frames, t, m.easing)
	return lerp(tr.edges[i].width, tr.edges[j].width, u), nil
}
