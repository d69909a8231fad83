package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"strings"

	"github.com/fogleman/gg"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrQuality           = errors.New("jpeg quality must be within [0, 1]")
)

type Format int

const (
	FormatPNG Format = iota
	FormatJPEG
	FormatSVG
)

var formats = map[Format]struct {
	name     string
	filename string
	mimeType string
}{
	FormatPNG:  {"png", "drawing.png", "image/png"},
	FormatJPEG: {"jpeg", "drawing.jpg", "image/jpeg"},
	FormatSVG:  {"svg", "drawing.svg", "image/svg+xml"},
}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "svg":
		return FormatSVG, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

func (f Format) String() string {
	if info, ok := formats[f]; ok {
		return info.name
	}
	return "unknown"
}

func (f Format) Filename() string { return formats[f].filename }
func (f Format) MimeType() string { return formats[f].mimeType }

// Artifact is an encoded export ready to be delivered.
type Artifact struct {
	Bytes    []byte
	Filename string
	MimeType string
}

// Flatten composites src over a solid background into a new opaque image of
// the same size.
func Flatten(src image.Image, bg color.Color) *image.RGBA {
	b := src.Bounds()
	im := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	dc := gg.NewContextForRGBA(im)
	dc.SetColor(bg)
	dc.Clear()
	dc.DrawImage(src, -b.Min.X, -b.Min.Y)
	return im
}

// EncodeRaster writes img as PNG or JPEG. quality only applies to JPEG.
func EncodeRaster(w io.Writer, img image.Image, f Format, quality float64) error {
	switch f {
	case FormatPNG:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encode png: %w", err)
		}
		return nil
	case FormatJPEG:
		q, err := jpegQuality(quality)
		if err != nil {
			return err
		}
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: q}); err != nil {
			return fmt.Errorf("encode jpeg: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: %s is not a raster format", ErrUnsupportedFormat, f)
}

// jpegQuality maps [0, 1] onto the encoder's 1..100 scale.
func jpegQuality(q float64) (int, error) {
	if math.IsNaN(q) || q < 0 || q > 1 {
		return 0, fmt.Errorf("%w: got %v", ErrQuality, q)
	}
	return max(1, int(math.Round(q*100))), nil
}

// WrapSVG writes an SVG document the size of flat: a background rect in bg
// and flat inlined as a PNG data URL on top of it.
func WrapSVG(w io.Writer, flat image.Image, bg color.Color) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, flat); err != nil {
		return fmt.Errorf("encode svg image: %w", err)
	}
	b := flat.Bounds()
	href := dataURL("image/png", buf.Bytes())

	_, err := fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="%d" height="%d" viewBox="0 0 %d %d">
  <rect width="100%%" height="100%%" fill="%s"/>
  <image xlink:href="%s" width="100%%" height="100%%" preserveAspectRatio="none"/>
</svg>
`, b.Dx(), b.Dy(), b.Dx(), b.Dy(), hexColor(bg), href)
	if err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

// EncodeArtifact encodes an already flattened image in the requested format.
func EncodeArtifact(flat image.Image, bg color.Color, f Format, quality float64) (Artifact, error) {
	var buf bytes.Buffer
	var err error
	switch f {
	case FormatPNG, FormatJPEG:
		err = EncodeRaster(&buf, flat, f, quality)
	case FormatSVG:
		err = WrapSVG(&buf, flat, bg)
	default:
		err = fmt.Errorf("%w: %d", ErrUnsupportedFormat, int(f))
	}
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{
		Bytes:    buf.Bytes(),
		Filename: f.Filename(),
		MimeType: f.MimeType(),
	}, nil
}
