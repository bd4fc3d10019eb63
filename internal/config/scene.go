package config

import "github.com/smasonuk/gosieraster"

// NewScene builds a scene with the configured zoom, rotation and colors.
func (r RenderConfig) NewScene() (*gosieraster.Scene, error) {
	s := gosieraster.NewScene()

	var err error
	if s.Background, err = r.BackgroundColor(); err != nil {
		return nil, err
	}
	if s.ModelColor, err = r.ModelColor(); err != nil {
		return nil, err
	}
	if s.ShadowColor, err = r.ShadowColor(); err != nil {
		return nil, err
	}

	s.Shadow = r.Shadow
	s.SetZoom(r.Zoom)
	s.ResetRotation(r.RotateX, r.RotateY)
	return s, nil
}

// DXFOptions returns the importer switches.
func (i ImporterConfig) DXFOptions() gosieraster.DXFOptions {
	return gosieraster.DXFOptions{Legacy3DFace: i.Legacy3DFace}
}
