// Package tonemap converts an HDR float framebuffer to 8-bit RGBA via the
// Reinhard-photographic, filmic (Uncharted 2), and ACES operators spec.md
// §4.7 names, plus gamma/sRGB encoding. No teacher implementation was
// retrieved (pkg/renderer tone-maps nothing); written directly from
// spec.md's named formulas.
package tonemap

import (
	"math"
	"sort"

	"github.com/rayforge/raytracer/pkg/core"
)

// ReinhardParams configures the photographic operator (spec.md §6's
// Tonemap/TMOOptions element: "kv burn").
type ReinhardParams struct {
	KeyValue   float64 // KV
	BurnFrac   float64 // fraction of the brightest pixels mapped to pure white
	Saturation float64
	Gamma      float64
}

// ReinhardPhotographic implements spec.md §4.7's Reinhard tone mapper: the
// log-average luminance sets the exposure scale, a burn-percentile
// luminance sets Lwhite, and color is reconstructed by scaling RGB by
// (Cw/Lw)^sat * Ld before gamma encoding.
func ReinhardPhotographic(hdr []core.Vec3, params ReinhardParams) []core.Vec3 {
	n := len(hdr)
	if n == 0 {
		return nil
	}

	const delta = 1e-6
	sumLogL := 0.0
	luminances := make([]float64, n)
	for i, c := range hdr {
		l := c.Luminance()
		luminances[i] = l
		sumLogL += math.Log(delta + l)
	}
	avgLw := math.Exp(sumLogL / float64(n))
	if avgLw <= 0 {
		avgLw = delta
	}

	sorted := append([]float64(nil), luminances...)
	sort.Float64s(sorted)
	burn := params.BurnFrac
	if burn <= 0 {
		burn = 1.0
	}
	idx := int(float64(n-1) * (1 - burn))
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	lWhite := sorted[idx]
	lWhite2 := lWhite * lWhite
	if lWhite2 <= 0 {
		lWhite2 = 1
	}

	kv := params.KeyValue
	if kv <= 0 {
		kv = 0.18
	}
	sat := params.Saturation
	if sat <= 0 {
		sat = 1
	}
	gamma := params.Gamma
	if gamma <= 0 {
		gamma = 2.2
	}

	out := make([]core.Vec3, n)
	for i, c := range hdr {
		lw := luminances[i]
		if lw <= 0 {
			out[i] = core.Vec3{}
			continue
		}
		ld := (kv / avgLw) * lw
		lOut := ld * (1 + ld/lWhite2) / (1 + ld)

		factor := lOut / lw
		r := math.Pow(c.X/lw, sat) * factor * lw
		g := math.Pow(c.Y/lw, sat) * factor * lw
		b := math.Pow(c.Z/lw, sat) * factor * lw

		out[i] = GammaEncode(core.NewVec3(r, g, b), gamma)
	}
	return out
}
