package main

type model struct {
	width          int
	height         int
	cursorX        int
	cursorY        int
	keyboardPen    bool
	strokeDropped  bool
	canvas         *Canvas
	config         *Config
	delivery       Delivery
	mode           Mode
	help           bool
	colorTarget    ColorTarget
	confirmAction  ConfirmAction
	inputText      string
	inputCursorPos int
	stampX         int
	stampY         int
	exporting      bool
	errorMessage   string
	successMessage string
}

type point struct {
	X, Y int
}

// deliveredMsg reports the outcome of an export started from the UI.
type deliveredMsg struct {
	receipt Receipt
	err     error
}
