package background

// Form is the background editor surface. Show methods display a model
// value without reporting it back as a user edit.
type Form interface {
	ShowColor(Color)
	ShowImageURLPattern(string)
	ShowPosition(Vec2)
	ShowSizeType(SizeType)
	ShowSize(Vec2)
	ShowRepeatType(RepeatType)
	ShowOpacity(float64)
	ShowHold(bool)
}

// Guard suppresses edit forwarding while a refresh pass pushes model values
// into the form. Holds nest.
type Guard struct {
	depth int
}

// Hold activates the guard until the returned release function is called.
func (g *Guard) Hold() (release func()) {
	g.depth++
	released := false
	return func() {
		if !released {
			released = true
			g.depth--
		}
	}
}

// Active reports whether a hold is in effect.
func (g *Guard) Active() bool { return g.depth > 0 }

// Binding connects a Form to a Background in both directions: external
// model changes refresh the form, and form edits are stored in the model
// followed by a checkpoint request.
//
// Spin box values (position, size, opacity) can also be edited live: each
// intermediate value is stored without a checkpoint and FinishEdit commits
// the whole gesture as one undo step. Combo boxes, the hold checkbox, the
// color and the pattern always checkpoint immediately.
type Binding struct {
	bg      *Background
	form    Form
	guard   Guard
	editing bool
	unsub   func()
}

// Bind attaches form to bg and shows the current values.
func Bind(bg *Background, form Form) *Binding {
	b := &Binding{bg: bg, form: form}
	b.unsub = bg.Subscribe(b.onEvent)
	b.Refresh()
	return b
}

// Close detaches the binding from the background.
func (b *Binding) Close() {
	if b.unsub != nil {
		b.unsub()
		b.unsub = nil
	}
}

// Refresh pushes every model value into the form.
func (b *Binding) Refresh() {
	release := b.guard.Hold()
	defer release()

	d := b.bg.Data()
	b.form.ShowColor(d.Color)
	b.form.ShowImageURLPattern(d.ImageURLPattern)
	b.form.ShowPosition(d.Position)
	b.form.ShowSizeType(d.SizeType)
	b.form.ShowSize(d.Size)
	b.form.ShowRepeatType(d.RepeatType)
	b.form.ShowOpacity(d.Opacity)
	b.form.ShowHold(d.Hold)
}

func (b *Binding) onEvent(e Event) {
	if e.Kind != Changed || b.editing {
		return
	}
	b.Refresh()
}

// store forwards a form edit unless it was caused by Refresh itself.
func (b *Binding) store(set func()) bool {
	if b.guard.Active() {
		return false
	}
	b.editing = true
	set()
	b.editing = false
	return true
}

// edit stores a form edit and requests a checkpoint.
func (b *Binding) edit(set func()) bool {
	if !b.store(set) {
		return false
	}
	b.bg.EmitCheckpoint()
	return true
}

// FinishEdit ends a live edit, as a spin box does when it loses focus or
// the user presses enter, and requests a checkpoint.
func (b *Binding) FinishEdit() bool {
	if b.guard.Active() {
		return false
	}
	b.bg.EmitCheckpoint()
	return true
}

func (b *Binding) EditColor(c Color) bool {
	return b.edit(func() { b.bg.SetColor(c) })
}

// EditImageURLPattern commits typed pattern text.
func (b *Binding) EditImageURLPattern(text string) bool {
	return b.edit(func() { b.bg.SetImageURLPattern(text) })
}

// SelectImages infers a pattern from picked files and stores it. The
// names the pattern does not cover are returned so the form can warn.
func (b *Binding) SelectImages(names []string) (nonConforming []string) {
	inf := InferPattern(names)
	if !b.edit(func() { b.bg.SetImageURLPattern(inf.Pattern) }) {
		return nil
	}
	// The form shows the normalized pattern, not the raw selection.
	b.Refresh()
	return inf.NonConforming
}

func (b *Binding) EditPosition(p Vec2) bool {
	return b.edit(func() { b.bg.SetPosition(p) })
}

// EditPositionLive stores p without a checkpoint; see FinishEdit.
func (b *Binding) EditPositionLive(p Vec2) bool {
	return b.store(func() { b.bg.SetPosition(p) })
}

func (b *Binding) EditSizeType(t SizeType) bool {
	return b.edit(func() { b.bg.SetSizeType(t) })
}

func (b *Binding) EditSize(s Vec2) bool {
	return b.edit(func() { b.bg.SetSize(s) })
}

func (b *Binding) EditSizeLive(s Vec2) bool {
	return b.store(func() { b.bg.SetSize(s) })
}

func (b *Binding) EditRepeatType(r RepeatType) bool {
	return b.edit(func() { b.bg.SetRepeatType(r) })
}

func (b *Binding) EditOpacity(o float64) bool {
	return b.edit(func() { b.bg.SetOpacity(o) })
}

func (b *Binding) EditOpacityLive(o float64) bool {
	return b.store(func() { b.bg.SetOpacity(o) })
}

func (b *Binding) EditHold(h bool) bool {
	return b.edit(func() { b.bg.SetHold(h) })
}

// Reload discards cached image resolution, as the form's refresh button does.
func (b *Binding) Reload() {
	b.bg.ClearCache()
}
