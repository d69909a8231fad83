package main

import (
	"errors"
	"fmt"
	"image"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fogleman/gg"
)

var ErrRestorePending = errors.New("restore in progress")

// Canvas ties the surface to its history and tool settings. It is only
// touched from the event loop.
type Canvas struct {
	surface *Surface
	history *History
	tools   *ToolSettings
	restore restorer
	dirty   bool
}

func NewCanvas(tools *ToolSettings, historySize int) *Canvas {
	return &Canvas{
		surface: NewSurface(0, 0),
		history: NewHistory(historySize),
		tools:   tools,
	}
}

func (c *Canvas) Surface() *Surface    { return c.surface }
func (c *Canvas) History() *History    { return c.history }
func (c *Canvas) Tools() *ToolSettings { return c.tools }
func (c *Canvas) Busy() bool           { return c.restore.Pending() }
func (c *Canvas) Drawing() bool        { return c.surface.Drawing() }
func (c *Canvas) Dirty() bool          { return c.dirty }
func (c *Canvas) MarkClean()           { c.dirty = false }
func (c *Canvas) Size() (int, int)     { return c.surface.Size() }
func (c *Canvas) HasContext() bool     { return c.surface.HasContext() }

// Resize resets the surface to the new pixel size and restarts history from
// a blank snapshot. Any restore in flight is dropped.
func (c *Canvas) Resize(width, height int) error {
	c.restore.invalidate()
	c.surface.Resize(width, height)
	if !c.surface.HasContext() {
		c.history.Clear()
		return nil
	}
	blank, err := c.surface.Encode()
	if err != nil {
		return err
	}
	c.history.Reset(blank)
	Logger().Debug("surface resized", "width", width, "height", height)
	return nil
}

// BeginStroke starts a stroke at p. Strokes are dropped while a restore is
// pending.
func (c *Canvas) BeginStroke(p gg.Point) bool {
	if c.restore.Pending() {
		Logger().Debug("stroke dropped, restore pending", "x", p.X, "y", p.Y)
		return false
	}
	return c.surface.Begin(p)
}

func (c *Canvas) ExtendStroke(p gg.Point) {
	c.surface.Extend(p, c.tools.Style())
}

// EndStroke finishes the stroke in progress and captures it.
func (c *Canvas) EndStroke() error {
	if !c.surface.End() {
		return nil
	}
	return c.capture()
}

func (c *Canvas) capture() error {
	snap, err := c.surface.Encode()
	if err != nil {
		return err
	}
	c.history.Capture(snap)
	c.dirty = true
	return nil
}

// Undo steps history back and returns the command that decodes the
// snapshot to replay, or nil when there is nothing to undo or no surface
// to restore onto.
func (c *Canvas) Undo() tea.Cmd {
	if !c.surface.HasContext() || c.surface.Drawing() {
		return nil
	}
	snap, ok := c.history.Undo()
	if !ok {
		return nil
	}
	return c.restore.request(snap)
}

func (c *Canvas) Redo() tea.Cmd {
	if !c.surface.HasContext() || c.surface.Drawing() {
		return nil
	}
	snap, ok := c.history.Redo()
	if !ok {
		return nil
	}
	return c.restore.request(snap)
}

// ApplyRestore paints a decoded snapshot onto the surface. It reports false
// for results that were superseded. A failed decode leaves the surface
// as it was.
func (c *Canvas) ApplyRestore(msg restoredMsg) (bool, error) {
	if !c.restore.accept(msg) {
		Logger().Debug("stale restore discarded", "gen", msg.gen)
		return false, nil
	}
	if msg.err != nil {
		Logger().Warn("snapshot restore failed", "error", msg.err)
		return true, msg.err
	}
	if err := c.surface.Restore(msg.img); err != nil {
		return true, err
	}
	c.dirty = true
	return true, nil
}

// Clear wipes the surface and records it as an undoable step.
func (c *Canvas) Clear() error {
	if c.restore.Pending() {
		return ErrRestorePending
	}
	if !c.surface.HasContext() {
		return ErrNoContext
	}
	c.surface.End()
	c.surface.Clear()
	return c.capture()
}

// Stamp draws text in the pen color with its top-left corner at p and
// records it as an undoable step.
func (c *Canvas) Stamp(p gg.Point, text string) error {
	if c.restore.Pending() {
		return ErrRestorePending
	}
	if c.surface.Drawing() {
		return fmt.Errorf("stamp: stroke in progress")
	}
	face, err := stampFace()
	if err != nil {
		return err
	}
	if !c.surface.Stamp(p, text, c.tools.PenColor, face) {
		return nil
	}
	return c.capture()
}

// Flatten returns a copy of the surface composited over the canvas color.
func (c *Canvas) Flatten() (*image.RGBA, error) {
	if c.restore.Pending() {
		return nil, ErrRestorePending
	}
	if !c.surface.HasContext() {
		return nil, ErrNoContext
	}
	return Flatten(c.surface.Image(), c.tools.CanvasColor), nil
}
