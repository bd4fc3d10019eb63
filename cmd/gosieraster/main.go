// Command gosieraster renders a model file to a PNG image without a window.
// An output path ending in .dxf converts the model instead.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/smasonuk/gosieraster"
	"github.com/smasonuk/gosieraster/internal/config"
	"github.com/smasonuk/gosieraster/internal/logger"
	"go.uber.org/zap"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if config.SaveRequested() {
		path, err := cfg.Save()
		if err != nil {
			logger.Fatal("could not save config", zap.Error(err))
		}
		logger.Info("config written", zap.String("file", path))
		return
	}

	modelPath := config.ModelPath()
	if modelPath == "" {
		fmt.Fprintln(os.Stderr, "usage: gosieraster [flags] <model.dxf|stl|obj|ply>")
		fmt.Fprintln(os.Stderr, "       gosieraster -save-config [flags]")
		os.Exit(2)
	}

	if err := run(cfg, modelPath); err != nil {
		logger.Error("render failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, modelPath string) error {
	registry := gosieraster.DefaultRegistry(cfg.Importer.DXFOptions())
	model, err := registry.Load(modelPath)
	if err != nil {
		return err
	}

	out := cfg.Render.Output
	if strings.EqualFold(filepath.Ext(out), ".dxf") {
		if err := gosieraster.SaveDXF(out, model); err != nil {
			return err
		}
		logger.Info("model written", zap.String("file", out))
		return nil
	}

	scene, err := cfg.Render.NewScene()
	if err != nil {
		return err
	}
	scene.SetModel(model)

	bitmap := gosieraster.NewBitmap(cfg.Render.Width, cfg.Render.Height)
	scene.Draw(bitmap)

	if err := bitmap.SavePNG(out); err != nil {
		return err
	}
	logger.Info("image written",
		zap.String("file", out),
		zap.Int("width", cfg.Render.Width),
		zap.Int("height", cfg.Render.Height),
		zap.Int("zoom", scene.Zoom()))
	return nil
}
