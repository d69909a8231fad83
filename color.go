package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var penPalette = [numColors]string{
	"#000000", "#FFFFFF", "#E53935", "#43A047",
	"#1E88E5", "#FDD835", "#8E24AA", "#00ACC1",
}

var canvasPalette = [numColors]string{
	"#897ACB", "#FFFFFF", "#000000", "#F5F5DC",
	"#FFF3E0", "#E3F2FD", "#E8F5E9", "#263238",
}

// canvasPaletteKeys are the shifted digits on a US layout.
var canvasPaletteKeys = [numColors]string{"!", "@", "#", "$", "%", "^", "&", "*"}

// parseHexColor accepts #RGB or #RRGGBB, with or without the leading #.
func parseHexColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

func mustParseHexColor(s string) color.RGBA {
	c, err := parseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// hexColor formats c as #rrggbb. Fully transparent colors format as black.
func hexColor(c color.Color) string {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "#000000"
	}
	return cf.Hex()
}

func paletteIndex(key string, keys [numColors]string) int {
	for i, k := range keys {
		if k == key {
			return i
		}
	}
	return -1
}

// pasteColor reads a hex color from the system clipboard.
func pasteColor() (color.RGBA, error) {
	text, err := readClipboardText()
	if err != nil {
		return color.RGBA{}, fmt.Errorf("read clipboard: %w", err)
	}
	return parseHexColor(cleanClipboardText(text))
}
