package main

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xdraw "golang.org/x/image/draw"
)

const halfBlock = "▀"

var cursorStyle = lipgloss.NewStyle().Reverse(true)

// renderPreview scales src over bg down to cols x rows terminal cells. Each
// cell shows two pixels: the upper one as foreground of a half block and
// the lower one as background.
func renderPreview(src image.Image, bg color.Color, cols, rows int, cursor point, showCursor bool) []string {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	scaled := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	xdraw.Draw(scaled, scaled.Bounds(), image.NewUniform(bg), image.Point{}, xdraw.Src)
	if src != nil {
		xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	}

	lines := make([]string, rows)
	for y := 0; y < rows; y++ {
		var b strings.Builder
		run := 0
		var top, bottom color.RGBA
		flush := func() {
			if run == 0 {
				return
			}
			b.WriteString(cellStyle(top, bottom).Render(strings.Repeat(halfBlock, run)))
			run = 0
		}
		for x := 0; x < cols; x++ {
			t, bt := scaled.RGBAAt(x, 2*y), scaled.RGBAAt(x, 2*y+1)
			if showCursor && cursor.X == x && cursor.Y == y {
				flush()
				b.WriteString(cursorStyle.Render("+"))
				continue
			}
			if run > 0 && (t != top || bt != bottom) {
				flush()
			}
			top, bottom = t, bt
			run++
		}
		flush()
		lines[y] = b.String()
	}
	return lines
}

func cellStyle(top, bottom color.RGBA) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(hexColor(top))).
		Background(lipgloss.Color(hexColor(bottom)))
}
