package service

import "csvedit/internal/sheet/model"

// DefaultHistoryDepth is the number of snapshots each stack keeps.
const DefaultHistoryDepth = 50

// ring is a bounded stack: pushing onto a full ring overwrites the oldest
// entry.
type ring struct {
	buf   []model.Snapshot
	start int // index of the oldest entry
	n     int
}

func newRing(capacity int) *ring {
	return &ring{buf: make([]model.Snapshot, capacity)}
}

func (r *ring) push(s model.Snapshot) {
	if len(r.buf) == 0 {
		return
	}
	if r.n == len(r.buf) {
		r.buf[r.start] = s
		r.start = (r.start + 1) % len(r.buf)
		return
	}
	r.buf[(r.start+r.n)%len(r.buf)] = s
	r.n++
}

func (r *ring) pop() (model.Snapshot, bool) {
	if r.n == 0 {
		return model.Snapshot{}, false
	}
	i := (r.start + r.n - 1) % len(r.buf)
	s := r.buf[i]
	r.buf[i] = model.Snapshot{}
	r.n--
	return s, true
}

// at returns the i-th entry counting from the oldest.
func (r *ring) at(i int) model.Snapshot {
	return r.buf[(r.start+i)%len(r.buf)]
}

func (r *ring) clear() {
	for i := range r.buf {
		r.buf[i] = model.Snapshot{}
	}
	r.start, r.n = 0, 0
}

// History keeps bounded undo and redo stacks of grid snapshots.
type History struct {
	undo *ring
	redo *ring
}

// NewHistory returns a History whose stacks hold at most depth snapshots;
// depth <= 0 selects DefaultHistoryDepth.
func NewHistory(depth int) *History {
	if depth <= 0 {
		depth = DefaultHistoryDepth
	}
	return &History{undo: newRing(depth), redo: newRing(depth)}
}

// Push records the state before an edit and forgets anything redoable.
func (h *History) Push(s model.Snapshot) {
	h.undo.push(s)
	h.redo.clear()
}

// Undo trades current for the most recent undo entry. ok is false, and
// nothing changes, when there is nothing to undo.
func (h *History) Undo(current model.Snapshot) (model.Snapshot, bool) {
	if h.undo.n == 0 {
		return model.Snapshot{}, false
	}
	h.redo.push(current)
	return h.undo.pop()
}

// Redo is the mirror of Undo.
func (h *History) Redo(current model.Snapshot) (model.Snapshot, bool) {
	if h.redo.n == 0 {
		return model.Snapshot{}, false
	}
	h.undo.push(current)
	return h.redo.pop()
}

func (h *History) CanUndo() bool { return h.undo.n > 0 }
func (h *History) CanRedo() bool { return h.redo.n > 0 }
func (h *History) UndoLen() int  { return h.undo.n }
func (h *History) RedoLen() int  { return h.redo.n }
func (h *History) Depth() int    { return len(h.undo.buf) }

// Clear empties both stacks, e.g. when another file is loaded.
func (h *History) Clear() {
	h.undo.clear()
	h.redo.clear()
}
