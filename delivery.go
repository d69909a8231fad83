package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
)

var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Receipt describes where an artifact ended up.
type Receipt struct {
	Target   string
	Location string
	Message  string
}

// Delivery hands an exported artifact to the user.
type Delivery interface {
	Deliver(ctx context.Context, a Artifact) (Receipt, error)
}

// ShareTarget puts the artifact on the system clipboard. SVG goes on as
// text; binary formats as a data URL.
type ShareTarget struct {
	write func(string) error
}

func NewShareTarget() (*ShareTarget, error) {
	if clipboard.Unsupported {
		return nil, ErrClipboardUnavailable
	}
	return &ShareTarget{write: clipboard.WriteAll}, nil
}

func (s *ShareTarget) Deliver(ctx context.Context, a Artifact) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}
	text := dataURL(a.MimeType, a.Bytes)
	if a.MimeType == FormatSVG.MimeType() {
		text = string(a.Bytes)
	}
	if err := s.write(text); err != nil {
		return Receipt{}, fmt.Errorf("copy %s to clipboard: %w", a.Filename, err)
	}
	return Receipt{
		Target:  "clipboard",
		Message: fmt.Sprintf("Copied %s to clipboard", a.Filename),
	}, nil
}

// DownloadTarget writes the artifact into a directory, never overwriting an
// existing file.
type DownloadTarget struct {
	config *Config
}

func NewDownloadTarget(cfg *Config) *DownloadTarget {
	return &DownloadTarget{config: cfg}
}

func (d *DownloadTarget) Deliver(ctx context.Context, a Artifact) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}
	path := d.config.SavePath(a.Filename)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Receipt{}, fmt.Errorf("create save directory: %w", err)
		}
	}
	f, err := createUnique(path)
	if err != nil {
		return Receipt{}, fmt.Errorf("create %s: %w", path, err)
	}
	path = f.Name()
	if _, err := f.Write(a.Bytes); err != nil {
		f.Close()
		return Receipt{}, fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return Receipt{}, fmt.Errorf("write %s: %w", path, err)
	}
	return Receipt{
		Target:   "file",
		Location: path,
		Message:  fmt.Sprintf("Saved %s", path),
	}, nil
}

// FallbackDelivery tries Primary and, if it fails, delivers through
// Fallback instead. The primary's error is only logged.
type FallbackDelivery struct {
	Primary  Delivery
	Fallback Delivery
}

func (f *FallbackDelivery) Deliver(ctx context.Context, a Artifact) (Receipt, error) {
	r, err := f.Primary.Deliver(ctx, a)
	if err == nil {
		return r, nil
	}
	Logger().Warn("delivery failed, falling back", "file", a.Filename, "error", err)
	return f.Fallback.Deliver(ctx, a)
}

// SelectDelivery picks the delivery once for the session: share with a
// download fallback when the clipboard works, otherwise download.
func SelectDelivery(cfg *Config) Delivery {
	download := NewDownloadTarget(cfg)
	if cfg.Delivery == "download" {
		return download
	}
	share, err := NewShareTarget()
	if err != nil {
		Logger().Info("share unavailable, using download", "error", err)
		return download
	}
	return &FallbackDelivery{Primary: share, Fallback: download}
}
