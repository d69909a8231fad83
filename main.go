package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

// run returns instead of exiting so the deferred log file close always runs.
func run(args []string) error {
	fs := flag.NewFlagSet("scrawl", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to the YAML config file (default ~/.scrawl.yaml)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		return err
	}
	logFile, err := setupLogging(cfg.Log)
	if err != nil {
		return err
	}
	defer logFile.Close()
	Logger().Info("started", "delivery", cfg.Delivery, "width_profile", cfg.WidthProfile)

	p := tea.NewProgram(
		initialModel(cfg, SelectDelivery(cfg)),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		Logger().Error("program failed", "error", err)
		return err
	}
	Logger().Info("stopped")
	return nil
}

func initialModel(cfg *Config, delivery Delivery) model {
	return model{
		canvas:   NewCanvas(cfg.ToolSettings(), cfg.HistorySize),
		config:   cfg,
		delivery: delivery,
		mode:     ModeNormal,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.keyboardPen = false
		m.strokeDropped = false
		if err := m.canvas.Resize(m.width*m.config.CellWidth, m.canvasRows()*m.config.CellHeight); err != nil {
			Logger().Error("resize failed", "error", err)
			m.errorMessage = fmt.Sprintf("Resize failed: %v", err)
		}
		m.ensureCursorInBounds()
		return m, nil

	case restoredMsg:
		applied, err := m.canvas.ApplyRestore(msg)
		if applied && err != nil {
			m.errorMessage = "Undo/redo failed: snapshot could not be decoded"
		}
		return m, nil

	case deliveredMsg:
		m.exporting = false
		if msg.err != nil {
			Logger().Error("export failed", "error", msg.err)
			m.errorMessage = fmt.Sprintf("Export failed: %v", msg.err)
			return m, nil
		}
		Logger().Info("exported", "target", msg.receipt.Target, "location", msg.receipt.Location)
		m.canvas.MarkClean()
		m.successMessage = msg.receipt.Message
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		m.errorMessage = ""
		m.successMessage = ""
		if m.help {
			switch msg.String() {
			case "esc", "q", "?":
				m.help = false
			}
			return m, nil
		}
		switch m.mode {
		case ModeColorInput:
			return m, m.handleColorInput(msg)
		case ModeTextInput:
			return m, m.handleTextInput(msg)
		case ModeExport:
			return m, m.handleExportKey(msg.String())
		case ModeConfirm:
			return m, m.handleConfirmKey(msg.String())
		default:
			return m, m.handleNormalKey(msg)
		}
	}
	return m, nil
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	if m.mode != ModeNormal || m.help || m.keyboardPen {
		return
	}
	// A gesture whose press was dropped stays dropped until the button is
	// released, even if the restore finishes mid-drag.
	if m.strokeDropped {
		if msg.Type == tea.MouseRelease {
			m.strokeDropped = false
		}
		return
	}
	inside := msg.X >= 0 && msg.X < m.width && msg.Y >= 0 && msg.Y < m.canvasRows()
	if !inside {
		if msg.Type == tea.MouseRelease {
			m.endStroke()
		}
		return
	}
	m.cursorX, m.cursorY = msg.X, msg.Y
	p := m.cellCenter(msg.X, msg.Y)

	switch msg.Type {
	case tea.MouseLeft:
		if m.canvas.Drawing() {
			m.canvas.ExtendStroke(p)
			return
		}
		if !m.canvas.BeginStroke(p) && m.canvas.Busy() {
			m.strokeDropped = true
			m.errorMessage = "Restoring snapshot, stroke ignored"
		}
	case tea.MouseMotion:
		m.canvas.ExtendStroke(p)
	case tea.MouseRelease:
		m.endStroke()
	}
}

func (m *model) endStroke() {
	m.keyboardPen = false
	if err := m.canvas.EndStroke(); err != nil {
		Logger().Error("capture failed", "error", err)
		m.errorMessage = fmt.Sprintf("Could not record stroke: %v", err)
	}
}

func (m *model) handleNormalKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	tools := m.canvas.Tools()

	if i := paletteIndex(key, canvasPaletteKeys); i >= 0 {
		tools.SetCanvasColor(mustParseHexColor(canvasPalette[i]))
		return nil
	}

	switch key {
	case "ctrl+c":
		return tea.Quit
	case "q":
		if m.config.Confirmations && m.canvas.Dirty() {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return nil
		}
		return tea.Quit
	case "?":
		m.help = true
	case "p":
		tools.SetTool(ToolPen)
	case "e":
		tools.SetTool(ToolEraser)
	case "1", "2", "3", "4", "5", "6", "7", "8":
		tools.SetPenColor(mustParseHexColor(penPalette[key[0]-'1']))
		tools.SetTool(ToolPen)
	case "c", "C":
		m.mode = ModeColorInput
		m.colorTarget = ColorTargetPen
		if key == "C" {
			m.colorTarget = ColorTargetCanvas
		}
		m.inputText = ""
		m.inputCursorPos = 0
	case "P":
		c, err := pasteColor()
		if err != nil {
			m.errorMessage = fmt.Sprintf("Paste color failed: %v", err)
			return nil
		}
		tools.SetPenColor(c)
		m.successMessage = "Pen color " + hexColor(c)
	case "u", "ctrl+z":
		m.endStroke()
		return m.canvas.Undo()
	case "r", "ctrl+y":
		m.endStroke()
		return m.canvas.Redo()
	case "s":
		if m.exporting {
			m.errorMessage = "Export already in progress"
			return nil
		}
		m.endStroke()
		m.mode = ModeExport
	case "t":
		m.endStroke()
		m.mode = ModeTextInput
		m.stampX, m.stampY = m.cursorX, m.cursorY
		m.inputText = ""
		m.inputCursorPos = 0
	case "x":
		m.endStroke()
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmClear
			return nil
		}
		m.clearCanvas()
	case " ":
		if m.keyboardPen {
			m.endStroke()
			return nil
		}
		if m.canvas.Drawing() {
			return nil
		}
		if m.canvas.BeginStroke(m.cellCenter(m.cursorX, m.cursorY)) {
			m.keyboardPen = true
		} else if m.canvas.Busy() {
			m.errorMessage = "Restoring snapshot, stroke ignored"
		}
	case "esc":
		if m.keyboardPen {
			m.endStroke()
		}
	default:
		if isNavigationKey(key) {
			m.handleNavigation(key, m.getMoveSpeed(key))
		}
	}
	return nil
}

func (m *model) clearCanvas() {
	if err := m.canvas.Clear(); err != nil {
		m.errorMessage = fmt.Sprintf("Clear failed: %v", err)
		return
	}
	m.successMessage = "Canvas cleared"
}

// editInput applies an editing key to the single-line input. It reports
// whether the key submitted or cancelled the input.
func (m *model) editInput(msg tea.KeyMsg) (submitted, cancelled bool) {
	switch msg.Type {
	case tea.KeyEnter:
		return true, false
	case tea.KeyEsc:
		return false, true
	case tea.KeyLeft:
		if m.inputCursorPos > 0 {
			m.inputCursorPos--
		}
	case tea.KeyRight:
		if m.inputCursorPos < len([]rune(m.inputText)) {
			m.inputCursorPos++
		}
	case tea.KeyBackspace:
		if m.inputCursorPos > 0 {
			runes := []rune(m.inputText)
			m.inputText = string(append(runes[:m.inputCursorPos-1], runes[m.inputCursorPos:]...))
			m.inputCursorPos--
		}
	case tea.KeyRunes, tea.KeySpace:
		ins := msg.Runes
		if msg.Type == tea.KeySpace {
			ins = []rune{' '}
		}
		runes := []rune(m.inputText)
		tail := append([]rune{}, runes[m.inputCursorPos:]...)
		m.inputText = string(append(append(runes[:m.inputCursorPos], ins...), tail...))
		m.inputCursorPos += len(ins)
	}
	return false, false
}

func (m *model) handleColorInput(msg tea.KeyMsg) tea.Cmd {
	submitted, cancelled := m.editInput(msg)
	if cancelled {
		m.mode = ModeNormal
		return nil
	}
	if !submitted {
		return nil
	}
	c, err := parseHexColor(m.inputText)
	if err != nil {
		m.errorMessage = err.Error()
		return nil
	}
	if m.colorTarget == ColorTargetCanvas {
		m.canvas.Tools().SetCanvasColor(c)
		m.successMessage = "Canvas color " + hexColor(c)
	} else {
		m.canvas.Tools().SetPenColor(c)
		m.canvas.Tools().SetTool(ToolPen)
		m.successMessage = "Pen color " + hexColor(c)
	}
	m.mode = ModeNormal
	return nil
}

func (m *model) handleTextInput(msg tea.KeyMsg) tea.Cmd {
	submitted, cancelled := m.editInput(msg)
	if cancelled {
		m.mode = ModeNormal
		return nil
	}
	if !submitted {
		return nil
	}
	m.mode = ModeNormal
	if err := m.canvas.Stamp(m.cellOrigin(m.stampX, m.stampY), m.inputText); err != nil {
		Logger().Error("stamp failed", "error", err)
		m.errorMessage = fmt.Sprintf("Stamp failed: %v", err)
	}
	return nil
}

func (m *model) handleExportKey(key string) tea.Cmd {
	var f Format
	switch key {
	case "p":
		f = FormatPNG
	case "j":
		f = FormatJPEG
	case "v", "s":
		f = FormatSVG
	case "enter":
		var err error
		if f, err = ParseFormat(m.config.DefaultFormat); err != nil {
			m.mode = ModeNormal
			m.errorMessage = err.Error()
			return nil
		}
	case "esc", "q":
		m.mode = ModeNormal
		return nil
	default:
		return nil
	}
	m.mode = ModeNormal
	return m.startExport(f)
}

// startExport flattens the surface on the event loop and leaves encoding
// and delivery to a command.
func (m *model) startExport(f Format) tea.Cmd {
	flat, err := m.canvas.Flatten()
	if err != nil {
		if errors.Is(err, ErrRestorePending) {
			m.errorMessage = "Export unavailable while restoring a snapshot"
		} else {
			m.errorMessage = fmt.Sprintf("Export failed: %v", err)
		}
		return nil
	}
	bg := m.canvas.Tools().CanvasColor
	quality := m.config.JPEGQuality
	delivery := m.delivery
	m.exporting = true
	m.successMessage = "Exporting " + f.Filename() + "..."
	return func() tea.Msg {
		a, err := EncodeArtifact(flat, bg, f, quality)
		if err != nil {
			return deliveredMsg{err: err}
		}
		r, err := delivery.Deliver(context.Background(), a)
		return deliveredMsg{receipt: r, err: err}
	}
}

func (m *model) handleConfirmKey(key string) tea.Cmd {
	switch key {
	case "y", "Y", "enter":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			return tea.Quit
		case ConfirmClear:
			m.clearCanvas()
		}
	case "n", "N", "esc":
		m.mode = ModeNormal
	}
	return nil
}
