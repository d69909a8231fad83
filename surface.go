package main

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"

	"github.com/fogleman/gg"
)

var ErrNoContext = errors.New("no rendering context")

const snapshotPrefix = "data:image/png;base64,"

// Snapshot is an immutable PNG data URL of the surface at a point in time.
type Snapshot string

// Surface owns the raster that strokes are drawn onto. Strokes land on a
// transparent background; the canvas color is only applied when flattening.
type Surface struct {
	im      *image.RGBA
	dc      *gg.Context
	drawing bool
	last    gg.Point
}

func NewSurface(width, height int) *Surface {
	s := &Surface{}
	s.Resize(width, height)
	return s
}

// Resize replaces the raster with a cleared one of the given size. A
// non-positive dimension leaves the surface without a rendering context.
func (s *Surface) Resize(width, height int) {
	s.drawing = false
	if width <= 0 || height <= 0 {
		s.im = nil
		s.dc = nil
		return
	}
	s.im = image.NewRGBA(image.Rect(0, 0, width, height))
	s.dc = gg.NewContextForRGBA(s.im)
	s.dc.SetLineCapRound()
	s.dc.SetLineJoinRound()
}

func (s *Surface) Size() (int, int) {
	if s.im == nil {
		return 0, 0
	}
	b := s.im.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Surface) HasContext() bool {
	return s.dc != nil
}

func (s *Surface) Drawing() bool {
	return s.drawing
}

// Image returns the live raster. Callers must not keep it across strokes.
func (s *Surface) Image() *image.RGBA {
	return s.im
}

// Begin starts a new path at p. It reports false, and does nothing, when
// there is no rendering context.
func (s *Surface) Begin(p gg.Point) bool {
	if s.dc == nil {
		return false
	}
	s.drawing = true
	s.last = p
	return true
}

// Extend draws a segment from the last point to p.
func (s *Surface) Extend(p gg.Point, style StrokeStyle) {
	if s.dc == nil || !s.drawing {
		return
	}
	s.dc.SetColor(style.Color)
	s.dc.SetLineWidth(style.Width)
	s.dc.DrawLine(s.last.X, s.last.Y, p.X, p.Y)
	s.dc.Stroke()
	s.last = p
}

// End terminates the current path and reports whether one was in progress.
func (s *Surface) End() bool {
	was := s.drawing
	s.drawing = false
	return was
}

func (s *Surface) Clear() {
	if s.im == nil {
		return
	}
	draw.Draw(s.im, s.im.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

func (s *Surface) Encode() (Snapshot, error) {
	if s.dc == nil {
		return "", ErrNoContext
	}
	var buf bytes.Buffer
	if err := s.dc.EncodePNG(&buf); err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return Snapshot(dataURL("image/png", buf.Bytes())), nil
}

func DecodeSnapshot(snap Snapshot) (image.Image, error) {
	data, ok := strings.CutPrefix(string(snap), snapshotPrefix)
	if !ok {
		return nil, fmt.Errorf("decode snapshot: not a PNG data URL")
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return img, nil
}

// Restore clears the raster and copies img onto it at the origin. Any
// stroke in progress is abandoned.
func (s *Surface) Restore(img image.Image) error {
	if s.im == nil {
		return ErrNoContext
	}
	s.drawing = false
	s.Clear()
	src := img.Bounds()
	dst := image.Rectangle{Max: src.Size()}.Intersect(s.im.Bounds())
	draw.Draw(s.im, dst, img, src.Min, draw.Src)
	return nil
}
