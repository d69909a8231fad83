package main

import (
	"fmt"
	"image/color"
	"sort"
)

// WidthProfile holds the stroke widths, in surface pixels, of each tool.
type WidthProfile struct {
	Pen    float64
	Eraser float64
}

var widthProfiles = map[string]WidthProfile{
	"standard": {Pen: 5, Eraser: 20},
	"hidpi":    {Pen: 8, Eraser: 40},
}

func lookupWidthProfile(name string) (WidthProfile, error) {
	if name == "" {
		name = "standard"
	}
	p, ok := widthProfiles[name]
	if !ok {
		names := make([]string, 0, len(widthProfiles))
		for n := range widthProfiles {
			names = append(names, n)
		}
		sort.Strings(names)
		return WidthProfile{}, fmt.Errorf("unknown width profile %q (use one of %v)", name, names)
	}
	return p, nil
}

func (t Tool) String() string {
	switch t {
	case ToolPen:
		return "pen"
	case ToolEraser:
		return "eraser"
	default:
		return "unknown"
	}
}

// ToolSettings is the user's current tool and color selection. It is only
// changed by explicit selection and read when a segment is drawn.
type ToolSettings struct {
	Tool        Tool
	PenColor    color.RGBA
	CanvasColor color.RGBA
	Widths      WidthProfile
}

// StrokeStyle is what a single segment is drawn with.
type StrokeStyle struct {
	Color color.Color
	Width float64
}

func NewToolSettings(pen, canvas color.RGBA, widths WidthProfile) *ToolSettings {
	return &ToolSettings{
		Tool:        ToolPen,
		PenColor:    pen,
		CanvasColor: canvas,
		Widths:      widths,
	}
}

// Style resolves the stroke style for the active tool. The eraser paints
// with the canvas color rather than clearing pixels.
func (t *ToolSettings) Style() StrokeStyle {
	if t.Tool == ToolEraser {
		return StrokeStyle{Color: t.CanvasColor, Width: t.Widths.Eraser}
	}
	return StrokeStyle{Color: t.PenColor, Width: t.Widths.Pen}
}

func (t *ToolSettings) SetTool(tool Tool) {
	t.Tool = tool
}

func (t *ToolSettings) SetPenColor(c color.RGBA) {
	t.PenColor = opaque(c)
}

func (t *ToolSettings) SetCanvasColor(c color.RGBA) {
	t.CanvasColor = opaque(c)
}

func opaque(c color.RGBA) color.RGBA {
	c.A = 255
	return c
}
