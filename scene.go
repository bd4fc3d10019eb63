package gosieraster

import (
	"image/color"

	"github.com/smasonuk/gosieraster/internal/logger"
	"go.uber.org/zap"
)

const (
	MinZoom     = 2
	MaxZoom     = 20
	DefaultZoom = 10

	// shadowDepth places the shadow behind any centered model.
	shadowDepth = -1000
	// shadowOffset is the shadow's screen offset at zoom 10.
	shadowOffset = 100
)

var (
	Azure      = color.RGBA{R: 240, G: 255, B: 255, A: 255}
	GhostWhite = color.RGBA{R: 248, G: 248, B: 255, A: 255}
	Gray       = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// Scene is the view state for one model: its accumulated rotation, zoom
// level and colors. Draw renders a lit model pass and a flattened,
// unlit shadow pass behind it.
type Scene struct {
	model    *Buffer
	rotation Matrix
	zoom     int

	Background  color.RGBA
	ModelColor  color.RGBA
	ShadowColor color.RGBA
	Shadow      bool
}

func NewScene() *Scene {
	s := &Scene{
		zoom:        DefaultZoom,
		Background:  Azure,
		ModelColor:  GhostWhite,
		ShadowColor: Gray,
		Shadow:      true,
	}
	s.ResetRotation(30, 30)
	return s
}

// SetModel replaces the model. The buffer is not modified by drawing.
func (s *Scene) SetModel(b *Buffer) {
	s.model = b
	if b != nil {
		logger.Debug("scene model set",
			zap.Int("triangles", b.Triangles()),
			zap.Stringer("volume", b.Volume()))
	}
}

func (s *Scene) Model() *Buffer {
	return s.model
}

// ResetRotation sets the rotation to RotX(x) followed by RotY(y).
func (s *Scene) ResetRotation(x, y float64) {
	s.rotation = IdentityMatrix().Multiply(RotateXMatrix(x)).Multiply(RotateYMatrix(y))
}

func (s *Scene) Rotation() Matrix {
	return s.rotation
}

// Rotate applies a mouse drag of dx, dy pixels, one degree per pixel.
func (s *Scene) Rotate(dx, dy float64) {
	s.rotation = s.rotation.Multiply(RotateXMatrix(dy)).Multiply(RotateYMatrix(-dx))
}

func (s *Scene) RotateX(deg float64) {
	s.rotation = s.rotation.Multiply(RotateXMatrix(deg))
}

func (s *Scene) RotateY(deg float64) {
	s.rotation = s.rotation.Multiply(RotateYMatrix(deg))
}

func (s *Scene) Zoom() int {
	return s.zoom
}

// SetZoom clamps z to [MinZoom, MaxZoom].
func (s *Scene) SetZoom(z int) {
	s.zoom = clamp(z, MinZoom, MaxZoom)
}

// ZoomIn reports whether the scene can zoom in further.
func (s *Scene) ZoomIn(step int) bool {
	s.SetZoom(s.zoom + step)
	return s.zoom < MaxZoom
}

// ZoomOut reports whether the scene can zoom out further.
func (s *Scene) ZoomOut(step int) bool {
	s.SetZoom(s.zoom - step)
	return s.zoom > MinZoom
}

// scale fits the model's largest extent to half the smaller screen side at
// zoom 10.
func (s *Scene) scale(width, height int) float64 {
	if s.model == nil {
		return 1
	}
	vol := s.model.Volume()
	largest := max(vol.X, vol.Y, vol.Z)
	if largest == 0 {
		return 1
	}
	return float64(min(width, height)) / 2 / largest * float64(s.zoom) / 10
}

// ModelMatrix scales, rotates and then moves the model to the screen center.
func (s *Scene) ModelMatrix(width, height int) Matrix {
	k := s.scale(width, height)
	return IdentityMatrix().
		Multiply(ScaleMatrix(k, k, k)).
		Multiply(s.rotation).
		Multiply(TranslateMatrix(float64(width)/2, float64(height)/2, 0))
}

// ShadowMatrix flattens the rotated model onto the XY plane and pushes it
// down-left and behind the model.
func (s *Scene) ShadowMatrix(width, height int) Matrix {
	k := s.scale(width, height)
	z := float64(s.zoom) / 10
	return IdentityMatrix().
		Multiply(ScaleMatrix(k, k, k)).
		Multiply(s.rotation).
		Multiply(ScaleMatrix(1, 1, 0)).
		Multiply(TranslateMatrix(-shadowOffset*z, shadowOffset*z, shadowDepth)).
		Multiply(TranslateMatrix(float64(width)/2, float64(height)/2, 0))
}

// Draw clears target and renders the model into it.
func (s *Scene) Draw(target RenderTarget) {
	target.Clear(s.Background)
	if s.model == nil {
		return
	}

	w, h := target.Width(), target.Height()

	lit := s.model.Transform(s.ModelMatrix(w, h))
	lit.ComputeTriangleNormals()
	lit.DrawTriangles(target, s.ModelColor, true)

	if s.Shadow {
		s.model.Transform(s.ShadowMatrix(w, h)).DrawTriangles(target, s.ShadowColor, false)
	}
}
