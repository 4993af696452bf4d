package tonemap

import "github.com/rayforge/raytracer/pkg/core"

// acesInput/acesOutput are the standard ACES RRT/ODT fit matrices (Stephen
// Hill's narkowicz fit), applied row-major to a linear RGB column vector.
var acesInput = [3][3]float64{
	{0.59719, 0.35458, 0.04823},
	{0.07600, 0.90834, 0.01566},
	{0.02840, 0.13383, 0.83777},
}

var acesOutput = [3][3]float64{
	{1.60475, -0.53108, -0.07367},
	{-0.10208, 1.10813, -0.00605},
	{-0.00327, -0.07276, 1.07602},
}

func mulMat3(m [3][3]float64, v core.Vec3) core.Vec3 {
	return core.NewVec3(
		m[0][0]*v.X+m[0][1]*v.Y+m[0][2]*v.Z,
		m[1][0]*v.X+m[1][1]*v.Y+m[1][2]*v.Z,
		m[2][0]*v.X+m[2][1]*v.Y+m[2][2]*v.Z,
	)
}

func rttAndOdtFit(v core.Vec3) core.Vec3 {
	a := v.MultiplyVec(v.Add(core.NewVec3(0.0245786, 0.0245786, 0.0245786))).Subtract(core.NewVec3(0.000090537, 0.000090537, 0.000090537))
	b := v.MultiplyVec(v.Multiply(0.983729).Add(core.NewVec3(0.4329510, 0.4329510, 0.4329510))).Add(core.NewVec3(0.238081, 0.238081, 0.238081))
	return a.DivideVec(b)
}

// ACES implements the ACES filmic fit (spec.md §4.7): input transform,
// RRT+ODT fit, output transform, then gamma encoding.
func ACES(hdr []core.Vec3, gamma float64) []core.Vec3 {
	if gamma <= 0 {
		gamma = 2.2
	}
	out := make([]core.Vec3, len(hdr))
	for i, c := range hdr {
		v := mulMat3(acesInput, c)
		v = rttAndOdtFit(v)
		v = mulMat3(acesOutput, v)
		v = v.Clamp(0, 1)
		out[i] = GammaEncode(v, gamma)
	}
	return out
}
