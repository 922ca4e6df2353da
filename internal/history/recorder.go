package history

import (
	"github.com/ivlev/vacdoc/internal/background"
	"github.com/ivlev/vacdoc/internal/logging"
)

// Recorder keeps the undo history of a background. It records on every
// checkpoint request whose state differs from the last checkpoint.
type Recorder struct {
	bg        *background.Background
	stack     *Stack[background.Data]
	restoring bool
	unsub     func()
}

// NewRecorder starts recording bg from its current state.
func NewRecorder(bg *background.Background, limit int) *Recorder {
	r := &Recorder{
		bg:    bg,
		stack: NewStack(bg.Data(), limit),
	}
	r.unsub = bg.Subscribe(r.onEvent)
	return r
}

func (r *Recorder) onEvent(e background.Event) {
	if e.Kind != background.Checkpoint || r.restoring {
		return
	}
	if r.stack.Record(r.bg.Data()) {
		logging.Logger().Debug("history: checkpoint", "depth", r.stack.Len())
	}
}

// Undo restores the previous checkpoint.
func (r *Recorder) Undo() error {
	d, err := r.stack.Undo()
	if err != nil {
		return err
	}
	r.restore(d)
	return nil
}

// Redo restores the next checkpoint.
func (r *Recorder) Redo() error {
	d, err := r.stack.Redo()
	if err != nil {
		return err
	}
	r.restore(d)
	return nil
}

func (r *Recorder) restore(d background.Data) {
	r.restoring = true
	defer func() { r.restoring = false }()
	r.bg.SetData(d)
}

func (r *Recorder) CanUndo() bool { return r.stack.CanUndo() }

// Checkpoints returns how many states the history holds, including the
// initial one.
func (r *Recorder) Checkpoints() int { return r.stack.Len() }
func (r *Recorder) CanRedo() bool { return r.stack.CanRedo() }

// Close stops listening to the background.
func (r *Recorder) Close() {
	if r.unsub != nil {
		r.unsub()
		r.unsub = nil
	}
}
