package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	SaveDirectory string    `yaml:"save_directory"`
	Delivery      string    `yaml:"delivery"` // share | download
	WidthProfile  string    `yaml:"width_profile"`
	CellWidth     int       `yaml:"cell_width"`
	CellHeight    int       `yaml:"cell_height"`
	PenColor      string    `yaml:"pen_color"`
	CanvasColor   string    `yaml:"canvas_color"`
	JPEGQuality   float64   `yaml:"jpeg_quality"`
	DefaultFormat string    `yaml:"default_format"` // png | jpeg | svg
	HistorySize   int       `yaml:"history_size"`
	Confirmations bool      `yaml:"confirmations"`
	Log           LogConfig `yaml:"log"`
}

func DefaultConfig() *Config {
	return &Config{
		SaveDirectory: "",
		Delivery:      "share",
		WidthProfile:  "standard",
		CellWidth:     defaultCellWidth,
		CellHeight:    defaultCellHeight,
		PenColor:      defaultPenColor,
		CanvasColor:   defaultCanvasColor,
		JPEGQuality:   defaultJPEGQuality,
		DefaultFormat: "png",
		HistorySize:   maxHistory,
		Confirmations: true,
		Log: LogConfig{
			Format: "text",
			Level:  "info",
		},
	}
}

func defaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".scrawl.yaml")
}

// LoadConfig reads a YAML config file over the defaults. An empty path means
// ~/.scrawl.yaml, which is optional; an explicit path must exist.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return cfg, nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.SaveDirectory = expandHome(cfg.SaveDirectory)
	if cfg.SaveDirectory != "" && !filepath.IsAbs(cfg.SaveDirectory) {
		if absPath, err := filepath.Abs(cfg.SaveDirectory); err == nil {
			cfg.SaveDirectory = absPath
		}
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	switch c.Delivery {
	case "share", "download":
	default:
		return fmt.Errorf("unsupported delivery %q (use share or download)", c.Delivery)
	}
	if _, err := lookupWidthProfile(c.WidthProfile); err != nil {
		return err
	}
	if c.CellWidth <= 0 || c.CellHeight <= 0 {
		return fmt.Errorf("cell_width and cell_height must be > 0")
	}
	if _, err := parseHexColor(c.PenColor); err != nil {
		return fmt.Errorf("pen_color: %w", err)
	}
	if _, err := parseHexColor(c.CanvasColor); err != nil {
		return fmt.Errorf("canvas_color: %w", err)
	}
	if _, err := jpegQuality(c.JPEGQuality); err != nil {
		return err
	}
	if _, err := ParseFormat(c.DefaultFormat); err != nil {
		return fmt.Errorf("default_format: %w", err)
	}
	if c.HistorySize < 2 || c.HistorySize > maxHistory {
		return fmt.Errorf("history_size must be within [2, %d]", maxHistory)
	}
	return c.Log.Validate()
}

// ToolSettings builds the initial tool state. Validate must have passed.
func (c *Config) ToolSettings() *ToolSettings {
	widths, _ := lookupWidthProfile(c.WidthProfile)
	return NewToolSettings(mustParseHexColor(c.PenColor), mustParseHexColor(c.CanvasColor), widths)
}

// SavePath resolves filename inside the save directory.
func (c *Config) SavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	return filepath.Join(c.SaveDirectory, filename)
}
