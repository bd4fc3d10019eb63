package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/smasonuk/gosieraster"
	"github.com/smasonuk/gosieraster/internal/config"
)

// Game adapts a Scene to ebiten. The scene is drawn into a Bitmap every
// frame and the bitmap is copied to the screen.
type Game struct {
	scene      *gosieraster.Scene
	bitmap     *gosieraster.Bitmap
	rotateStep float64
	zoomStep   int

	lastX, lastY int
	dragging     bool
}

func NewGame(scene *gosieraster.Scene, cfg *config.Config) *Game {
	return &Game{
		scene:      scene,
		bitmap:     gosieraster.NewBitmap(cfg.Render.Width, cfg.Render.Height),
		rotateStep: cfg.Viewer.RotateStep,
		zoomStep:   cfg.Viewer.ZoomStep,
	}
}

// keyState holds the held keys of one frame. Opposite keys held together
// cancel out.
type keyState struct {
	zoomIn, zoomOut bool
	left, right     bool
	down, up        bool
}

func (g *Game) applyKeys(k keyState) {
	switch {
	case k.zoomIn && !k.zoomOut:
		g.scene.ZoomIn(g.zoomStep)
	case k.zoomOut && !k.zoomIn:
		g.scene.ZoomOut(g.zoomStep)
	}
	switch {
	case k.left && !k.right:
		g.scene.RotateY(g.rotateStep)
	case k.right && !k.left:
		g.scene.RotateY(-g.rotateStep)
	}
	switch {
	case k.down && !k.up:
		g.scene.RotateX(g.rotateStep)
	case k.up && !k.down:
		g.scene.RotateX(-g.rotateStep)
	}
}

func (g *Game) Update() error {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.dragging = true
		g.lastX, g.lastY = ebiten.CursorPosition()
	}
	if g.dragging {
		x, y := ebiten.CursorPosition()
		if x != g.lastX || y != g.lastY {
			g.scene.Rotate(float64(x-g.lastX), float64(y-g.lastY))
		}
		g.lastX, g.lastY = x, y
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.dragging = false
	}

	g.applyKeys(keyState{
		zoomIn:  ebiten.IsKeyPressed(ebiten.KeyE),
		zoomOut: ebiten.IsKeyPressed(ebiten.KeyQ),
		left:    ebiten.IsKeyPressed(ebiten.KeyA),
		right:   ebiten.IsKeyPressed(ebiten.KeyD),
		down:    ebiten.IsKeyPressed(ebiten.KeyS),
		up:      ebiten.IsKeyPressed(ebiten.KeyW),
	})
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(g.bitmap)
	screen.WritePixels(g.bitmap.Pix())
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %0.2f  zoom: %d", ebiten.ActualFPS(), g.scene.Zoom()))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.bitmap.Width(), g.bitmap.Height()
}
