package renderer

import (
	"image"
	"image/png"
	"os"

	"github.com/rayforge/raytracer/pkg/core"
	"github.com/rayforge/raytracer/pkg/tonemap"
)

// TonemapMode selects the operator spec.md §4.7 names for the Camera's
// Tonemap element.
type TonemapMode string

const (
	TonemapReinhard TonemapMode = "reinhard"
	TonemapFilmic   TonemapMode = "filmic"
	TonemapACES     TonemapMode = "aces"
)

// TonemapConfig collects the per-camera tone-mapping parameters spec.md §6's
// Tonemap/TMOOptions element carries.
type TonemapConfig struct {
	Mode     TonemapMode
	Reinhard tonemap.ReinhardParams
	Bias     float64 // filmic
	Gamma    float64
}

// ToRGBA tone-maps the framebuffer per cfg into an 8-bit RGBA image,
// grounded on the teacher's main.go image.RGBA assembly, generalized to
// spec.md §4.7's three named operators.
func (fb *Framebuffer) ToRGBA(cfg TonemapConfig) *image.RGBA {
	var encoded []core.Vec3
	switch cfg.Mode {
	case TonemapFilmic:
		encoded = tonemap.Filmic(fb.Pixels, cfg.Bias, cfg.Gamma)
	case TonemapACES:
		encoded = tonemap.ACES(fb.Pixels, cfg.Gamma)
	default:
		params := cfg.Reinhard
		if params.Gamma == 0 {
			params.Gamma = cfg.Gamma
		}
		encoded = tonemap.ReinhardPhotographic(fb.Pixels, params)
	}
	return tonemap.ToRGBA(encoded, fb.Width, fb.Height)
}

// SavePNG tone-maps the framebuffer per cfg and writes it as an 8-bit PNG to
// path (spec.md §6's "Output: PNG (8-bit RGBA) via codec").
func (fb *Framebuffer) SavePNG(path string, cfg TonemapConfig) error {
	img := fb.ToRGBA(cfg)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}
