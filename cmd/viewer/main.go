// Command viewer shows a model in a window. Drag with the left mouse button
// to rotate, W/S and A/D rotate by a fixed step, E and Q zoom.
package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
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

	scene, err := cfg.Render.NewScene()
	if err != nil {
		logger.Fatal("bad render config", zap.Error(err))
	}

	if path := config.ModelPath(); path != "" {
		model, err := gosieraster.DefaultRegistry(cfg.Importer.DXFOptions()).Load(path)
		if err != nil {
			logger.Fatal("could not load model", zap.String("file", path), zap.Error(err))
		}
		scene.SetModel(model)
	}

	ebiten.SetWindowSize(cfg.Render.Width, cfg.Render.Height)
	ebiten.SetWindowTitle(cfg.Viewer.Title)
	if err := ebiten.RunGame(NewGame(scene, cfg)); err != nil {
		logger.Fatal("viewer stopped", zap.Error(err))
	}
}
