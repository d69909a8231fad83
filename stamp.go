package main

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

var stampFace = sync.OnceValues(func() (font.Face, error) {
	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return truetype.NewFace(ttfFont, &truetype.Options{
		Size:    stampFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
})

// Stamp draws one line of text with its top-left corner at p. It reports
// false when nothing was drawn.
func (s *Surface) Stamp(p gg.Point, text string, c color.Color, face font.Face) bool {
	if s.dc == nil || s.drawing || text == "" {
		return false
	}
	s.dc.SetFontFace(face)
	s.dc.SetColor(c)
	s.dc.DrawStringAnchored(text, p.X, p.Y, 0, 1)
	return true
}
