package tonemap

import "github.com/rayforge/raytracer/pkg/core"

const (
	filmicA = 0.15
	filmicB = 0.50
	filmicC = 0.10
	filmicD = 0.20
	filmicE = 0.02
	filmicF = 0.30
	filmicW = 11.2
)

func filmicCurve(x float64) float64 {
	return ((x*(filmicA*x+filmicC*filmicB)+filmicD*filmicE)/(x*(filmicA*x+filmicB)+filmicD*filmicF)) - filmicE/filmicF
}

// Filmic implements the Uncharted 2 filmic operator (spec.md §4.7):
// tonemap(v*bias) / tonemap(W), per-channel, followed by gamma encoding.
func Filmic(hdr []core.Vec3, bias, gamma float64) []core.Vec3 {
	if bias <= 0 {
		bias = 2.0
	}
	if gamma <= 0 {
		gamma = 2.2
	}
	whiteScale := 1.0 / filmicCurve(filmicW)

	out := make([]core.Vec3, len(hdr))
	for i, c := range hdr {
		r := filmicCurve(c.X*bias) * whiteScale
		g := filmicCurve(c.Y*bias) * whiteScale
		b := filmicCurve(c.Z*bias) * whiteScale
		out[i] = GammaEncode(core.NewVec3(r, g, b), gamma)
	}
	return out
}
