package main

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(t *testing.T, d Delivery) model {
	t.Helper()
	cfg := DefaultConfig()
	if d == nil {
		d = &recordingDelivery{}
	}
	m, _ := update(initialModel(cfg, d), tea.WindowSizeMsg{Width: 20, Height: 11})
	return m
}

func update(m model, msg tea.Msg) (model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(model), cmd
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func drag(t *testing.T, m model, y int) model {
	t.Helper()
	m, _ = update(m, tea.MouseMsg{X: 1, Y: y, Type: tea.MouseLeft})
	m, _ = update(m, tea.MouseMsg{X: 15, Y: y, Type: tea.MouseMotion})
	m, _ = update(m, tea.MouseMsg{X: 15, Y: y, Type: tea.MouseRelease})
	return m
}

func TestModelWindowSizeSizesSurface(t *testing.T) {
	m := newTestModel(t, nil)
	w, h := m.canvas.Size()
	if w != 20*defaultCellWidth || h != 10*defaultCellHeight {
		t.Errorf("surface = %dx%d, want %dx%d", w, h, 20*defaultCellWidth, 10*defaultCellHeight)
	}
	view := m.View()
	if got := strings.Count(view, "\n") + 1; got != 11 {
		t.Errorf("view has %d lines, want 11", got)
	}
}

func TestModelMouseStrokeIsCaptured(t *testing.T) {
	m := newTestModel(t, nil)
	m = drag(t, m, 3)

	if m.canvas.History().Len() != 2 {
		t.Fatalf("history Len() = %d, want 2", m.canvas.History().Len())
	}
	p := m.cellCenter(8, 3)
	if got := m.canvas.Surface().Image().RGBAAt(int(p.X), int(p.Y)); got.A == 0 {
		t.Error("stroke pixel is blank")
	}
}

func TestModelReleaseOutsideCanvasEndsStroke(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = update(m, tea.MouseMsg{X: 1, Y: 1, Type: tea.MouseLeft})
	m, _ = update(m, tea.MouseMsg{X: 5, Y: 1, Type: tea.MouseMotion})
	m, _ = update(m, tea.MouseMsg{X: 5, Y: 10, Type: tea.MouseRelease})
	if m.canvas.Drawing() {
		t.Error("stroke still open after release on the status line")
	}
	if m.canvas.History().Len() != 2 {
		t.Errorf("history Len() = %d, want 2", m.canvas.History().Len())
	}
}

func TestModelUndoRedoKeys(t *testing.T) {
	m := newTestModel(t, nil)
	m = drag(t, m, 2)

	m, cmd := update(m, keys("u"))
	if cmd == nil {
		t.Fatal("undo returned no command")
	}
	if !m.canvas.Busy() {
		t.Error("Busy() = false after undo")
	}
	if !strings.Contains(m.statusLine(), "[restoring]") {
		t.Error("status line does not show the pending restore")
	}
	m, _ = update(m, cmd())
	if m.canvas.Busy() || m.canvas.History().Index() != 0 {
		t.Errorf("after restore Busy=%v Index=%d", m.canvas.Busy(), m.canvas.History().Index())
	}

	m, cmd = update(m, tea.KeyMsg{Type: tea.KeyCtrlY})
	if cmd == nil {
		t.Fatal("ctrl+y returned no command")
	}
	m, _ = update(m, cmd())
	if m.canvas.History().Index() != 1 {
		t.Errorf("Index() after redo = %d, want 1", m.canvas.History().Index())
	}
}

func TestModelDropsMouseStrokeWhileRestoring(t *testing.T) {
	m := newTestModel(t, nil)
	m = drag(t, m, 2)
	m, _ = update(m, keys("u"))

	m = drag(t, m, 5)
	if m.canvas.History().Len() != 2 {
		t.Errorf("history Len() = %d, want 2", m.canvas.History().Len())
	}
	if m.errorMessage == "" {
		t.Error("dropped stroke was not reported")
	}
}

func TestModelKeyboardPen(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = update(m, tea.KeyMsg{Type: tea.KeySpace})
	if !m.keyboardPen || !m.canvas.Drawing() {
		t.Fatal("space did not put the pen down")
	}
	for range 5 {
		m, _ = update(m, keys("l"))
	}
	m, _ = update(m, tea.KeyMsg{Type: tea.KeySpace})
	if m.keyboardPen || m.canvas.Drawing() {
		t.Error("second space did not lift the pen")
	}
	if m.cursorX != 5 {
		t.Errorf("cursorX = %d, want 5", m.cursorX)
	}
	if m.canvas.History().Len() != 2 {
		t.Errorf("history Len() = %d, want 2", m.canvas.History().Len())
	}
}

func TestModelToolAndColorKeys(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = update(m, keys("e"))
	if m.canvas.Tools().Tool != ToolEraser {
		t.Error("e did not select the eraser")
	}
	m, _ = update(m, keys("3"))
	tools := m.canvas.Tools()
	if tools.Tool != ToolPen || hexColor(tools.PenColor) != strings.ToLower(penPalette[2]) {
		t.Errorf("3 selected %s %s", tools.Tool, hexColor(tools.PenColor))
	}
	m, _ = update(m, keys("@"))
	if hexColor(tools.CanvasColor) != "#ffffff" {
		t.Errorf("canvas color = %s, want #ffffff", hexColor(tools.CanvasColor))
	}

	m, _ = update(m, keys("c"))
	m, _ = update(m, keys("#00ff00"))
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != ModeNormal || hexColor(tools.PenColor) != "#00ff00" {
		t.Errorf("mode = %v pen = %s, want normal #00ff00", m.mode, hexColor(tools.PenColor))
	}

	m, _ = update(m, keys("C"))
	m, _ = update(m, keys("zzz"))
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != ModeColorInput || m.errorMessage == "" {
		t.Error("invalid canvas color was accepted")
	}
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != ModeNormal {
		t.Error("esc did not cancel color input")
	}
}

func TestModelExportDelivers(t *testing.T) {
	d := &recordingDelivery{}
	m := newTestModel(t, d)
	m = drag(t, m, 4)
	if !m.canvas.Dirty() {
		t.Fatal("canvas not dirty after a stroke")
	}

	m, _ = update(m, keys("s"))
	if m.mode != ModeExport {
		t.Fatalf("mode = %v, want export", m.mode)
	}
	m, cmd := update(m, keys("v"))
	if cmd == nil {
		t.Fatal("export returned no command")
	}
	m, _ = update(m, cmd())

	if len(d.got) != 1 {
		t.Fatalf("delivered %d artifacts, want 1", len(d.got))
	}
	if d.got[0].Filename != "drawing.svg" {
		t.Errorf("Filename = %s, want drawing.svg", d.got[0].Filename)
	}
	if m.exporting || m.canvas.Dirty() || m.successMessage != "ok" {
		t.Errorf("after delivery exporting=%v dirty=%v message=%q", m.exporting, m.canvas.Dirty(), m.successMessage)
	}
}

func TestModelExportFailureKeepsDirty(t *testing.T) {
	m := newTestModel(t, &failingDelivery{})
	m = drag(t, m, 4)
	m, _ = update(m, keys("s"))
	m, cmd := update(m, keys("p"))
	m, _ = update(m, cmd())
	if m.errorMessage == "" || !m.canvas.Dirty() {
		t.Errorf("error=%q dirty=%v after a failed export", m.errorMessage, m.canvas.Dirty())
	}
}

func TestModelExportRefusedWhileRestoring(t *testing.T) {
	d := &recordingDelivery{}
	m := newTestModel(t, d)
	m = drag(t, m, 4)
	m, _ = update(m, keys("u"))
	m, _ = update(m, keys("s"))
	m, cmd := update(m, keys("p"))
	if cmd != nil {
		t.Error("export started while a restore was pending")
	}
	if !strings.Contains(m.errorMessage, "restoring") {
		t.Errorf("errorMessage = %q", m.errorMessage)
	}
}

func TestModelQuitConfirmation(t *testing.T) {
	m := newTestModel(t, nil)
	if _, cmd := update(m, keys("q")); cmd == nil {
		t.Error("q on a clean canvas did not quit")
	}

	m = drag(t, m, 4)
	m, cmd := update(m, keys("q"))
	if cmd != nil || m.mode != ModeConfirm {
		t.Fatal("q on a dirty canvas did not ask for confirmation")
	}
	m, _ = update(m, keys("n"))
	if m.mode != ModeNormal {
		t.Error("n did not cancel quit")
	}
}

func TestModelClearWithConfirmation(t *testing.T) {
	m := newTestModel(t, nil)
	m = drag(t, m, 4)
	m, _ = update(m, keys("x"))
	if m.mode != ModeConfirm {
		t.Fatal("x did not ask for confirmation")
	}
	m, _ = update(m, keys("y"))
	if m.canvas.History().Len() != 3 {
		t.Errorf("history Len() after clear = %d, want 3", m.canvas.History().Len())
	}
}

func TestModelStampText(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = update(m, keys("t"))
	if m.mode != ModeTextInput {
		t.Fatal("t did not open text input")
	}
	m, _ = update(m, keys("hi"))
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != ModeNormal || m.canvas.History().Len() != 2 {
		t.Errorf("mode = %v history Len() = %d", m.mode, m.canvas.History().Len())
	}
}

func TestModelDroppedGestureStaysDropped(t *testing.T) {
	m := newTestModel(t, nil)
	m = drag(t, m, 2)
	m, cmd := update(m, keys("u"))

	m, _ = update(m, tea.MouseMsg{X: 1, Y: 5, Type: tea.MouseLeft})
	m, _ = update(m, cmd())
	if m.canvas.Busy() {
		t.Fatal("restore still pending")
	}
	// bubbletea reports a held-button drag as further left-button events.
	m, _ = update(m, tea.MouseMsg{X: 5, Y: 5, Type: tea.MouseLeft})
	m, _ = update(m, tea.MouseMsg{X: 10, Y: 5, Type: tea.MouseLeft})
	m, _ = update(m, tea.MouseMsg{X: 10, Y: 5, Type: tea.MouseRelease})

	h := m.canvas.History()
	if h.Len() != 2 || h.Index() != 0 || !h.CanRedo() {
		t.Errorf("history len=%d index=%d canRedo=%v, want 2 0 true", h.Len(), h.Index(), h.CanRedo())
	}
	if m.strokeDropped {
		t.Error("release did not end the dropped gesture")
	}

	m = drag(t, m, 7)
	if h.Len() != 2 || h.Index() != 1 {
		t.Errorf("after a new stroke len=%d index=%d, want 2 1", h.Len(), h.Index())
	}
}

func TestModelUndoWithoutCanvasRows(t *testing.T) {
	m := newTestModel(t, nil)
	m = drag(t, m, 2)
	m, _ = update(m, tea.WindowSizeMsg{Width: 20, Height: 1})

	m, cmd := update(m, keys("u"))
	if cmd != nil {
		t.Error("undo without a surface returned a command")
	}
	if m.errorMessage != "" {
		t.Errorf("errorMessage = %q, want none", m.errorMessage)
	}
	if m.canvas.History().Len() != 0 {
		t.Errorf("history Len() = %d, want 0", m.canvas.History().Len())
	}

	m, _ = update(m, tea.WindowSizeMsg{Width: 20, Height: 11})
	if m.canvas.History().Len() != 1 {
		t.Errorf("history Len() after growing = %d, want 1", m.canvas.History().Len())
	}
}

func TestModelExportDefaultFormat(t *testing.T) {
	d := &recordingDelivery{}
	m := newTestModel(t, d)
	m.config.DefaultFormat = "jpeg"
	m = drag(t, m, 4)

	m, _ = update(m, keys("s"))
	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter in the export prompt returned no command")
	}
	update(m, cmd())
	if len(d.got) != 1 || d.got[0].Filename != "drawing.jpg" {
		t.Errorf("delivered %+v, want drawing.jpg", d.got)
	}
}

func TestRunReturnsStartupErrors(t *testing.T) {
	if err := run([]string{"-config", filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Error("run() with a missing config returned nil")
	}
	if err := run([]string{"-bogus"}); err == nil {
		t.Error("run() with an unknown flag returned nil")
	}
}
