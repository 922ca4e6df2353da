package geometry

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/tanema/gween/ease"

	"github.com/ivlev/vacdoc/internal/frame"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-4 }

func nearPoint(a, b Point) bool { return near(a.X, b.X) && near(a.Y, b.Y) }

func TestVertexPosition(t *testing.T) {
	m := NewManager()
	m.SetKeyVertex(NewKeyVertexGeometry(1, 0, Point{0, 0}))
	m.SetKeyVertex(NewKeyVertexGeometry(1, 10, Point{100, 50}))
	m.SetKeyVertex(NewKeyVertexGeometry(1, 20, Point{100, 150}))

	tests := []struct {
		t    frame.Time
		want Point
	}{
		{-5, Point{0, 0}},
		{0, Point{0, 0}},
		{5, Point{50, 25}},
		{10, Point{100, 50}},
		{12.5, Point{100, 75}},
		{20, Point{100, 150}},
		{40, Point{100, 150}},
	}
	for _, tt := range tests {
		got, err := m.VertexPosition(1, tt.t)
		if err != nil {
			t.Fatalf("VertexPosition(%v): %v", tt.t, err)
		}
		if !nearPoint(got, tt.want) {
			t.Errorf("VertexPosition(%v) = %+v, want %+v", tt.t, got, tt.want)
		}
	}
}

func TestEasing(t *testing.T) {
	fn, ok := EasingByName("In-Out-Cubic")
	if !ok {
		t.Fatal("in-out-cubic should be known")
	}
	m := NewManager(WithEasing(fn))
	m.SetKeyVertex(NewKeyVertexGeometry(7, 0, Point{0, 0}))
	m.SetKeyVertex(NewKeyVertexGeometry(7, 10, Point{100, 0}))

	mid, _ := m.VertexPosition(7, 5)
	if !near(mid.X, 50) {
		t.Errorf("midpoint = %v, want 50", mid.X)
	}
	early, _ := m.VertexPosition(7, 2)
	if early.X >= 20 {
		t.Errorf("eased value at 2 = %v, want below linear 20", early.X)
	}

	if _, ok := EasingByName("wobble"); ok {
		t.Error("unknown easing accepted")
	}
	if len(EasingNames()) != len(easings) {
		t.Error("EasingNames incomplete")
	}
}

func TestSetKeyReplaces(t *testing.T) {
	m := NewManager()
	m.SetKeyVertex(NewKeyVertexGeometry(1, 3, Point{1, 1}))
	m.SetKeyVertex(NewKeyVertexGeometry(1, 1, Point{0, 0}))
	m.SetKeyVertex(NewKeyVertexGeometry(1, 3, Point{9, 9}))

	if got := m.Keys(1); !reflect.DeepEqual(got, []frame.Frame{1, 3}) {
		t.Fatalf("Keys = %v", got)
	}
	if !m.IsKey(1, 3) || m.IsKey(1, 2) {
		t.Error("IsKey wrong")
	}
	keys := m.VertexKeys(1)
	if keys[1].Position() != (Point{9, 9}) {
		t.Errorf("key at 3 = %+v, want replaced", keys[1].Position())
	}
}

func TestKindMismatchAndUnknown(t *testing.T) {
	m := NewManager()
	if err := m.SetKeyEdge(NewKeyEdgeGeometry(2, 0, []Point{{0, 0}, {1, 0}}, 1, false)); err != nil {
		t.Fatal(err)
	}
	err := m.SetKeyVertex(NewKeyVertexGeometry(2, 0, Point{}))
	if !errors.Is(err, ErrKindMismatch) {
		t.Errorf("err = %v, want ErrKindMismatch", err)
	}
	if _, err := m.VertexPosition(2, 0); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("VertexPosition on edge: %v", err)
	}
	if _, err := m.EdgeSamples(99, 0); !errors.Is(err, ErrUnknownCell) {
		t.Errorf("EdgeSamples on unknown cell: %v", err)
	}
	if k, ok := m.Kind(2); !ok || k != EdgeCell {
		t.Errorf("Kind = %v, %v", k, ok)
	}
}

func TestEmptyEdgeRejected(t *testing.T) {
	m := NewManager()
	err := m.SetKeyEdge(NewKeyEdgeGeometry(1, 0, nil, 1, false))
	if !errors.Is(err, ErrEmptyEdge) {
		t.Fatalf("err = %v, want ErrEmptyEdge", err)
	}
	if _, ok := m.Kind(1); ok {
		t.Error("rejected key must not create the cell")
	}

	m.SetKeyEdge(NewKeyEdgeGeometry(1, 10, []Point{{100, 100}, {200, 100}}, 1, false))
	m.SetKeyEdge(NewKeyEdgeGeometry(1, 0, []Point{}, 1, false))
	got, err := m.EdgeSamples(1, 5)
	if err != nil {
		t.Fatal(err)
	}
	want := []Point{{100, 100}, {200, 100}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("EdgeSamples(1, 5) = %v, want %v", got, want)
	}
}

func TestRemoveKeyAndCell(t *testing.T) {
	m := NewManager()
	m.SetKeyVertex(NewKeyVertexGeometry(1, 0, Point{}))
	m.SetKeyVertex(NewKeyVertexGeometry(1, 5, Point{}))
	m.SetKeyVertex(NewKeyVertexGeometry(4, 0, Point{}))

	if m.RemoveKey(1, 3) {
		t.Error("no key at frame 3")
	}
	if !m.RemoveKey(1, 0) {
		t.Fatal("key at 0 should be removed")
	}
	if got := m.Keys(1); !reflect.DeepEqual(got, []frame.Frame{5}) {
		t.Errorf("Keys after remove = %v", got)
	}
	m.RemoveKey(1, 5)
	if _, ok := m.Kind(1); ok {
		t.Error("cell without keys should disappear")
	}

	if !m.RemoveCell(4) || m.RemoveCell(4) {
		t.Error("RemoveCell should succeed once")
	}
	if len(m.Cells()) != 0 {
		t.Errorf("Cells = %v", m.Cells())
	}
}

func TestEdgeInterpolation(t *testing.T) {
	m := NewManager()
	m.SetKeyEdge(NewKeyEdgeGeometry(3, 0, []Point{{0, 0}, {10, 0}}, 2, false))
	m.SetKeyEdge(NewKeyEdgeGeometry(3, 10, []Point{{0, 10}, {5, 10}, {10, 10}}, 4, false))

	got, err := m.EdgeSamples(3, 5)
	if err != nil {
		t.Fatal(err)
	}
	want := []Point{{0, 5}, {5, 5}, {10, 5}}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !nearPoint(got[i], want[i]) {
			t.Errorf("sample %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	w, _ := m.EdgeWidth(3, 5)
	if !near(w, 3) {
		t.Errorf("width = %v, want 3", w)
	}

	first, _ := m.EdgeSamples(3, -1)
	if len(first) != 2 {
		t.Errorf("before first key should return the key itself, got %d samples", len(first))
	}
}

func TestKeyEdgeImmutable(t *testing.T) {
	src := []Point{{0, 0}, {3, 4}}
	k := NewKeyEdgeGeometry(1, 0, src, 1, false)
	src[1] = Point{100, 100}
	if k.Samples()[1] != (Point{3, 4}) {
		t.Error("key must copy its samples")
	}
	k.Samples()[0] = Point{7, 7}
	if k.Samples()[0] != (Point{0, 0}) {
		t.Error("Samples must return a copy")
	}
	if !near(k.Length(), 5) {
		t.Errorf("Length = %v", k.Length())
	}
}

func TestResampleClosed(t *testing.T) {
	square := []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	got := resample(square, 8, true)
	want := []Point{{0, 0}, {0.5, 0}, {1, 0}, {1, 0.5}, {1, 1}, {0.5, 1}, {0, 1}, {0, 0.5}}
	for i := range want {
		if !nearPoint(got[i], want[i]) {
			t.Errorf("sample %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	flat := resample([]Point{{2, 2}, {2, 2}}, 3, false)
	for _, p := range flat {
		if p != (Point{2, 2}) {
			t.Errorf("degenerate resample = %+v", flat)
			break
		}
	}
}

func TestLinearIsDefault(t *testing.T) {
	m := NewManager(WithEasing(nil))
	if reflect.ValueOf(m.easing).Pointer() != reflect.ValueOf(ease.Linear).Pointer() {
		t.Error("nil easing should keep linear")
	}
}
