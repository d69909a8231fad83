package main

// History is a bounded, linear undo/redo stack of surface snapshots.
// While non-empty, 0 <= index < len(snapshots).
type History struct {
	snapshots []Snapshot
	index     int
	limit     int
}

func NewHistory(limit int) *History {
	if limit <= 0 || limit > maxHistory {
		limit = maxHistory
	}
	return &History{
		snapshots: make([]Snapshot, 0, limit),
		index:     -1,
		limit:     limit,
	}
}

// Capture drops any redo branch past the current index, appends s and makes
// it current. The oldest entries are evicted once the limit is exceeded.
func (h *History) Capture(s Snapshot) {
	h.snapshots = append(h.snapshots[:h.index+1], s)
	if over := len(h.snapshots) - h.limit; over > 0 {
		n := copy(h.snapshots, h.snapshots[over:])
		clear(h.snapshots[n:])
		h.snapshots = h.snapshots[:n]
	}
	h.index = len(h.snapshots) - 1
}

// Reset discards all entries and starts over from s.
func (h *History) Reset(s Snapshot) {
	h.Clear()
	h.Capture(s)
}

// Clear discards all entries.
func (h *History) Clear() {
	clear(h.snapshots)
	h.snapshots = h.snapshots[:0]
	h.index = -1
}

func (h *History) Undo() (Snapshot, bool) {
	if !h.CanUndo() {
		return "", false
	}
	h.index--
	return h.snapshots[h.index], true
}

func (h *History) Redo() (Snapshot, bool) {
	if !h.CanRedo() {
		return "", false
	}
	h.index++
	return h.snapshots[h.index], true
}

func (h *History) CanUndo() bool {
	return h.index > 0
}

func (h *History) CanRedo() bool {
	return h.index < len(h.snapshots)-1
}

func (h *History) Current() (Snapshot, bool) {
	if h.index < 0 {
		return "", false
	}
	return h.snapshots[h.index], true
}

func (h *History) Len() int {
	return len(h.snapshots)
}

func (h *History) Index() int {
	return h.index
}

func (h *History) Limit() int {
	return h.limit
}
