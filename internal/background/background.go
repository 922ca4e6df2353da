// Package background models the per-document background: a flat color
// plus an optional image sequence selected through a wildcard file pattern.
//
// The package also carries the logic behind the background editor that is
// independent from any widget toolkit: inferring a pattern from selected
// files, validating typed pattern text, and resolving which image file is
// shown at a given frame.
package background

import (
	"io/fs"

	"github.com/ivlev/vacdoc/internal/frame"
)

// EventKind tells subscribers what happened.
type EventKind int

const (
	// Changed is emitted after any attribute is stored.
	Changed EventKind = iota
	// Checkpoint asks the history collaborator to record the current state.
	Checkpoint
)

// Field names the attribute an event refers to.
type Field int

const (
	FieldAll Field = iota
	FieldColor
	FieldImageURLPattern
	FieldPosition
	FieldSizeType
	FieldSize
	FieldRepeatType
	FieldOpacity
	FieldHold
)

// Event is delivered synchronously to subscribers.
type Event struct {
	Kind  EventKind
	Field Field
}

type subscriber struct {
	id int
	fn func(Event)
}

// Background is the per-document background. It is not safe for
// concurrent use; it lives on the editor's control goroutine.
type Background struct {
	data     Data
	resolver *Resolver

	subs   []subscriber
	nextID int
}

// New returns a background with default attributes whose image paths are
// relative to root.
func New(root fs.FS) *Background {
	return &Background{
		data:     DefaultData(),
		resolver: NewResolver(root),
	}
}

// Subscribe registers fn for every event. The returned function removes it.
func (b *Background) Subscribe(fn func(Event)) (unsubscribe func()) {
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

func (b *Background) emit(e Event) {
	subs := make([]subscriber, len(b.subs))
	copy(subs, b.subs)
	for _, s := range subs {
		s.fn(e)
	}
}

func (b *Background) changed(f Field) { b.emit(Event{Kind: Changed, Field: f}) }

// Data returns a snapshot of all attributes.
func (b *Background) Data() Data { return b.data }

// SetData replaces all attributes at once and emits a single event.
func (b *Background) SetData(d Data) {
	d.ImageURLPattern = Fixup(d.ImageURLPattern)
	d.Color = d.Color.clamped()
	d.Position = d.Position.finite()
	d.Size = d.Size.finite()
	d.Opacity = clampUnit(d.Opacity)
	b.data = d
	b.resolver.SetPattern(d.ImageURLPattern)
	b.changed(FieldAll)
}

// EmitCheckpoint asks listeners to record the current state for undo.
func (b *Background) EmitCheckpoint() { b.emit(Event{Kind: Checkpoint}) }

// ClearCache drops the cached frame to file resolution so the next lookup
// re-reads the document directory.
func (b *Background) ClearCache() { b.resolver.Invalidate() }

// SetRoot changes the document root used to resolve image paths.
func (b *Background) SetRoot(root fs.FS) { b.resolver.SetRoot(root) }

// ImagePath returns the file shown at frame f, following the hold policy.
func (b *Background) ImagePath(f frame.Frame) (string, bool) {
	return b.resolver.Resolve(f, b.data.Hold)
}

// ImageFrames lists the frames that have their own image file.
func (b *Background) ImageFrames() []frame.Frame { return b.resolver.Frames() }

// Rect places the background relative to the canvas rectangle.
func (b *Background) Rect(canvas Rect) Rect {
	if b.data.SizeType == FitToCanvas {
		return canvas
	}
	return Rect{Min: b.data.Position, Size: b.data.Size}
}

func (b *Background) Color() Color { return b.data.Color }

// SetColor clamps every component to [0,1].
func (b *Background) SetColor(c Color) {
	b.data.Color = c.clamped()
	b.changed(FieldColor)
}

func (b *Background) ImageURLPattern() string { return b.data.ImageURLPattern }

// SetImageURLPattern stores the committed form of pattern (see Fixup), so
// the stored value holds at most one wildcard and no separator after it.
func (b *Background) SetImageURLPattern(pattern string) {
	b.data.ImageURLPattern = Fixup(pattern)
	b.resolver.SetPattern(b.data.ImageURLPattern)
	b.changed(FieldImageURLPattern)
}

func (b *Background) Position() Vec2 { return b.data.Position }

func (b *Background) SetPosition(p Vec2) {
	b.data.Position = p.finite()
	b.changed(FieldPosition)
}

func (b *Background) SizeType() SizeType { return b.data.SizeType }

func (b *Background) SetSizeType(t SizeType) {
	b.data.SizeType = t
	b.changed(FieldSizeType)
}

// Size returns the manual size. It is ignored while SizeType is
// FitToCanvas; use Rect for the effective placement.
func (b *Background) Size() Vec2 { return b.data.Size }

func (b *Background) SetSize(s Vec2) {
	b.data.Size = s.finite()
	b.changed(FieldSize)
}

func (b *Background) RepeatType() RepeatType { return b.data.RepeatType }

func (b *Background) SetRepeatType(r RepeatType) {
	b.data.RepeatType = r
	b.changed(FieldRepeatType)
}

func (b *Background) Opacity() float64 { return b.data.Opacity }

// SetOpacity clamps o to [0,1].
func (b *Background) SetOpacity(o float64) {
	b.data.Opacity = clampUnit(o)
	b.changed(FieldOpacity)
}

func (b *Background) Hold() bool { return b.data.Hold }

func (b *Background) SetHold(h bool) {
	b.data.Hold = h
	b.changed(FieldHold)
}
