package main

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	toolStyle    = lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E53935")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#43A047"))
	promptStyle  = lipgloss.NewStyle().Bold(true)
)

func (m model) View() string {
	if m.help {
		return m.helpView()
	}
	if m.width <= 0 || m.height <= 0 {
		return "Initializing..."
	}

	var src image.Image
	if m.canvas.HasContext() {
		src = m.canvas.Surface().Image()
	}
	showCursor := m.mode == ModeNormal || m.mode == ModeTextInput
	cursor := point{m.cursorX, m.cursorY}
	if m.mode == ModeTextInput {
		cursor = point{m.stampX, m.stampY}
	}
	lines := renderPreview(src, m.canvas.Tools().CanvasColor, m.width, m.canvasRows(), cursor, showCursor)

	status := lipgloss.NewStyle().MaxWidth(m.width).Render(m.statusLine())
	return strings.Join(append(lines, status), "\n")
}

func swatch(hex string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("■")
}

func (m model) statusLine() string {
	switch m.mode {
	case ModeColorInput:
		target := "Pen"
		if m.colorTarget == ColorTargetCanvas {
			target = "Canvas"
		}
		line := promptStyle.Render(target+" color (#RRGGBB): ") + m.inputWithCursor() + "  Enter=apply Esc=cancel"
		return m.withMessage(line)
	case ModeTextInput:
		return m.withMessage(promptStyle.Render("Text: ") + m.inputWithCursor() + "  Enter=stamp Esc=cancel")
	case ModeExport:
		return promptStyle.Render("Export as: ") + "p=PNG  j=JPEG  v=SVG  Enter=" + strings.ToUpper(m.config.DefaultFormat) + "  Esc=cancel"
	case ModeConfirm:
		switch m.confirmAction {
		case ConfirmQuit:
			return promptStyle.Render("Unsaved drawing. Quit anyway? (y/n)")
		case ConfirmClear:
			return promptStyle.Render("Clear the canvas? (y/n)")
		}
	}

	tools := m.canvas.Tools()
	history := m.canvas.History()
	pen, bg := hexColor(tools.PenColor), hexColor(tools.CanvasColor)
	var b strings.Builder
	b.WriteString(toolStyle.Render(strings.ToUpper(tools.Tool.String())))
	fmt.Fprintf(&b, " %s %s  canvas %s %s", swatch(pen), pen, swatch(bg), bg)
	fmt.Fprintf(&b, "  history %d/%d", history.Index()+1, history.Len())
	if m.keyboardPen {
		b.WriteString("  [pen down]")
	}
	if m.canvas.Busy() {
		b.WriteString("  [restoring]")
	}
	b.WriteString("  ?=help")
	return m.withMessage(b.String())
}

func (m model) withMessage(line string) string {
	if m.errorMessage != "" {
		return line + "  " + errorStyle.Render(m.errorMessage)
	}
	if m.successMessage != "" {
		return line + "  " + successStyle.Render(m.successMessage)
	}
	return line
}

func (m model) inputWithCursor() string {
	runes := []rune(m.inputText)
	pos := min(max(m.inputCursorPos, 0), len(runes))
	return string(runes[:pos]) + "|" + string(runes[pos:])
}

func (m model) helpView() string {
	helpLines := []string{
		"scrawl help",
		"===========",
		"",
		"Drawing:",
		"--------",
		"  mouse drag         Draw a stroke with the active tool",
		"  h/j/k/l, arrows    Move the cursor (Shift moves 2x faster)",
		"  space              Pen down / pen up at the cursor",
		"  p                  Pen tool",
		"  e                  Eraser tool (paints the canvas color)",
		"  t                  Stamp text at the cursor",
		"  x                  Clear the canvas",
		"",
		"Colors:",
		"-------",
		"  1-8                Pen palette",
		"  Shift+1-8          Canvas palette",
		"  c / C              Enter pen / canvas color as #RRGGBB",
		"  P                  Paste pen color from the clipboard",
		"",
		"History:",
		"--------",
		"  u, ctrl+z          Undo",
		"  r, ctrl+y          Redo",
		"",
		"Export:",
		"-------",
		"  s                  Export, then p=PNG j=JPEG v=SVG Enter=default",
		"",
		"  ?                  Toggle help",
		"  q, ctrl+c          Quit",
	}
	if m.height > 0 && len(helpLines) > m.height {
		helpLines = helpLines[:m.height]
	}
	return strings.Join(helpLines, "\n")
}
