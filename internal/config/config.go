// Package config handles renderer and viewer configuration.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ErrBadColor is returned for colors that are not of the form #RRGGBB.
var ErrBadColor = errors.New("color must be #RRGGBB")

// Config holds all settings.
type Config struct {
	Render   RenderConfig   `yaml:"render"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Importer ImporterConfig `yaml:"importer"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// RenderConfig holds image size, camera and color settings.
type RenderConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Zoom       int     `yaml:"zoom"`
	RotateX    float64 `yaml:"rotate_x"` // degrees
	RotateY    float64 `yaml:"rotate_y"` // degrees
	Shadow     bool    `yaml:"shadow"`
	Background string  `yaml:"background"`
	Model      string  `yaml:"model"`
	ShadowTint string  `yaml:"shadow_color"`
	Output     string  `yaml:"output"`
}

// ViewerConfig holds interactive viewer settings.
type ViewerConfig struct {
	Title      string  `yaml:"title"`
	RotateStep float64 `yaml:"rotate_step"`
	ZoomStep   int     `yaml:"zoom_step"`
}

// ImporterConfig holds model importer settings.
type ImporterConfig struct {
	Legacy3DFace bool `yaml:"legacy_3dface"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Width:      800,
			Height:     600,
			Zoom:       10,
			RotateX:    30,
			RotateY:    30,
			Shadow:     true,
			Background: "#F0FFFF",
			Model:      "#F8F8FF",
			ShadowTint: "#808080",
			Output:     "render.png",
		},
		Viewer: ViewerConfig{
			Title:      "gosieraster",
			RotateStep: 5,
			ZoomStep:   1,
		},
		Importer: ImporterConfig{
			Legacy3DFace: false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// BackgroundColor returns the parsed background color.
func (r RenderConfig) BackgroundColor() (color.RGBA, error) {
	return ParseColor(r.Background)
}

// ModelColor returns the parsed model color.
func (r RenderConfig) ModelColor() (color.RGBA, error) {
	return ParseColor(r.Model)
}

// ShadowColor returns the parsed shadow color.
func (r RenderConfig) ShadowColor() (color.RGBA, error) {
	return ParseColor(r.ShadowTint)
}

// ParseColor parses an opaque #RRGGBB color.
func ParseColor(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(strings.TrimSpace(s), "#")
	if !ok || len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("%q: %w", s, ErrBadColor)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%q: %w", s, ErrBadColor)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// Validate checks ranges that the renderer relies on.
func (c *Config) Validate() error {
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("render size %dx%d must be positive", c.Render.Width, c.Render.Height)
	}
	for _, s := range []string{c.Render.Background, c.Render.Model, c.Render.ShadowTint} {
		if _, err := ParseColor(s); err != nil {
			return err
		}
	}
	return nil
}
