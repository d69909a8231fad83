package main

import (
	"image"

	tea "github.com/charmbracelet/bubbletea"
)

// restoredMsg carries a decoded snapshot back to the event loop.
type restoredMsg struct {
	gen uint64
	img image.Image
	err error
}

// restorer serializes snapshot replay. Decoding runs off the event loop;
// only the result of the most recent request is ever applied.
type restorer struct {
	gen     uint64
	pending bool
}

func (r *restorer) request(snap Snapshot) tea.Cmd {
	r.gen++
	r.pending = true
	gen := r.gen
	return func() tea.Msg {
		img, err := DecodeSnapshot(snap)
		return restoredMsg{gen: gen, img: img, err: err}
	}
}

// accept reports whether msg answers the latest request, and clears the
// pending state if so.
func (r *restorer) accept(msg restoredMsg) bool {
	if !r.pending || msg.gen != r.gen {
		return false
	}
	r.pending = false
	return true
}

// invalidate drops whatever request is in flight.
func (r *restorer) invalidate() {
	r.gen++
	r.pending = false
}

func (r *restorer) Pending() bool {
	return r.pending
}
