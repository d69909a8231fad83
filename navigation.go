package main

import "github.com/fogleman/gg"

func (m *model) handleNavigation(key string, speed int) {
	m.handleCursorMove(key, speed)
	if m.keyboardPen {
		m.canvas.ExtendStroke(m.cellCenter(m.cursorX, m.cursorY))
	}
}

func (m *model) handleCursorMove(key string, speed int) {
	switch key {
	case "h", "left", "H", "shift+left":
		m.cursorX -= speed
	case "l", "right", "L", "shift+right":
		m.cursorX += speed
	case "k", "up", "K", "shift+up":
		m.cursorY -= speed
	case "j", "down", "J", "shift+down":
		m.cursorY += speed
	}
	m.ensureCursorInBounds()
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

func isNavigationKey(key string) bool {
	switch key {
	case "h", "j", "k", "l", "H", "J", "K", "L",
		"left", "right", "up", "down",
		"shift+left", "shift+right", "shift+up", "shift+down":
		return true
	}
	return false
}

func (m *model) ensureCursorInBounds() {
	if m.cursorX < 0 {
		m.cursorX = 0
	}
	if m.cursorY < 0 {
		m.cursorY = 0
	}
	if m.width > 0 && m.cursorX >= m.width {
		m.cursorX = m.width - 1
	}
	// Leave room for status line
	maxY := m.canvasRows() - 1
	if maxY < 0 {
		maxY = 0
	}
	if m.cursorY > maxY {
		m.cursorY = maxY
	}
}

func (m *model) canvasRows() int {
	return max(0, m.height-statusRows)
}

// cellCenter maps a terminal cell to the surface pixel at its center.
func (m *model) cellCenter(x, y int) gg.Point {
	return gg.Point{
		X: (float64(x) + 0.5) * float64(m.config.CellWidth),
		Y: (float64(y) + 0.5) * float64(m.config.CellHeight),
	}
}

// cellOrigin maps a terminal cell to the surface pixel at its top-left.
func (m *model) cellOrigin(x, y int) gg.Point {
	return gg.Point{
		X: float64(x * m.config.CellWidth),
		Y: float64(y * m.config.CellHeight),
	}
}
