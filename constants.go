package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeColorInput
	ModeTextInput
	ModeExport
	ModeConfirm
)

type Tool int

const (
	ToolPen Tool = iota
	ToolEraser
)

type ColorTarget int

const (
	ColorTargetPen ColorTarget = iota
	ColorTargetCanvas
)

type ConfirmAction int

const (
	ConfirmClear ConfirmAction = iota
	ConfirmQuit
)

const (
	maxHistory         = 50
	defaultCellWidth   = 8
	defaultCellHeight  = 16
	defaultJPEGQuality = 0.9
	defaultPenColor    = "#000000"
	defaultCanvasColor = "#897ACB"
	stampFontSize      = 14.0
	numColors          = 8 // Number of palette slots
	statusRows         = 1
)
