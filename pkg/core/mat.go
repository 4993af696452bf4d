package core

import "math"

// Mat4 is a row-major 4x4 affine transform. Every constructor here except
// NewMat4RowMajor (which copies its 16 values as given) yields a bottom row
// of {0,0,0,1}; MulPoint and Inverse ignore the bottom row, matching the
// Transform<float,3,Affine> usage in the original C++ object-transform code
// (translate/scale/rotate composition, affine-specific inverse).
type Mat4 struct {
	m [4][4]float64
}

// Identity returns the identity transform.
func Identity() Mat4 {
	var m Mat4
	for i := 0; i < 4; i++ {
		m.m[i][i] = 1
	}
	return m
}

// Translation returns a pure translation transform.
func Translation(t Vec3) Mat4 {
	m := Identity()
	m.m[0][3], m.m[1][3], m.m[2][3] = t.X, t.Y, t.Z
	return m
}

// Scaling returns a pure (non-uniform) scale transform.
func Scaling(s Vec3) Mat4 {
	m := Identity()
	m.m[0][0], m.m[1][1], m.m[2][2] = s.X, s.Y, s.Z
	return m
}

// RotationXYZ returns the composite rotation Rz*Ry*Rx for angles in radians
// (rotate around X, then Y, then Z). The scene XML's Rotation element is
// built with RotationAxisAngle, not this.
func RotationXYZ(angles Vec3) Mat4 {
	return rotZ(angles.Z).Mul(rotY(angles.Y)).Mul(rotX(angles.X))
}

func rotX(a float64) Mat4 {
	m := Identity()
	c, s := math.Cos(a), math.Sin(a)
	m.m[1][1], m.m[1][2] = c, -s
	m.m[2][1], m.m[2][2] = s, c
	return m
}

func rotY(a float64) Mat4 {
	m := Identity()
	c, s := math.Cos(a), math.Sin(a)
	m.m[0][0], m.m[0][2] = c, s
	m.m[2][0], m.m[2][2] = -s, c
	return m
}

func rotZ(a float64) Mat4 {
	m := Identity()
	c, s := math.Cos(a), math.Sin(a)
	m.m[0][0], m.m[0][1] = c, -s
	m.m[1][0], m.m[1][1] = s, c
	return m
}

// NewMat4RowMajor builds a Mat4 from 16 row-major values, for the scene
// XML's Composite transform element (an arbitrary 4x4 matrix the format
// allows in addition to Translation/Rotation/Scaling).
func NewMat4RowMajor(v [16]float64) Mat4 {
	var m Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			m.m[i][j] = v[i*4+j]
		}
	}
	return m
}

// RotationAxisAngle returns a rotation of angle radians around the given
// (need not be unit) axis, via Rodrigues' formula. Used by the scene XML's
// Rotation element ("angle_deg x y z").
func RotationAxisAngle(axis Vec3, angle float64) Mat4 {
	a := axis.Normalize()
	c, s := math.Cos(angle), math.Sin(angle)
	t := 1 - c
	m := Identity()
	m.m[0][0] = t*a.X*a.X + c
	m.m[0][1] = t*a.X*a.Y - s*a.Z
	m.m[0][2] = t*a.X*a.Z + s*a.Y
	m.m[1][0] = t*a.X*a.Y + s*a.Z
	m.m[1][1] = t*a.Y*a.Y + c
	m.m[1][2] = t*a.Y*a.Z - s*a.X
	m.m[2][0] = t*a.X*a.Z - s*a.Y
	m.m[2][1] = t*a.Y*a.Z + s*a.X
	m.m[2][2] = t*a.Z*a.Z + c
	return m
}

// Mul composes two transforms: (a.Mul(b)).MulPoint(p) == a.MulPoint(b.MulPoint(p)).
func (a Mat4) Mul(b Mat4) Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += a.m[i][k] * b.m[k][j]
			}
			r.m[i][j] = sum
		}
	}
	return r
}

// MulPoint transforms a position (implicit w=1): translation applies.
func (a Mat4) MulPoint(p Vec3) Vec3 {
	return Vec3{
		X: a.m[0][0]*p.X + a.m[0][1]*p.Y + a.m[0][2]*p.Z + a.m[0][3],
		Y: a.m[1][0]*p.X + a.m[1][1]*p.Y + a.m[1][2]*p.Z + a.m[1][3],
		Z: a.m[2][0]*p.X + a.m[2][1]*p.Y + a.m[2][2]*p.Z + a.m[2][3],
	}
}

// MulDirection transforms a direction (implicit w=0): translation does not
// apply. Callers must renormalize if the transform has a non-uniform or
// non-orthonormal linear part (scaling, shear).
func (a Mat4) MulDirection(d Vec3) Vec3 {
	return Vec3{
		X: a.m[0][0]*d.X + a.m[0][1]*d.Y + a.m[0][2]*d.Z,
		Y: a.m[1][0]*d.X + a.m[1][1]*d.Y + a.m[1][2]*d.Z,
		Z: a.m[2][0]*d.X + a.m[2][1]*d.Y + a.m[2][2]*d.Z,
	}
}

// MulNormal transforms a surface normal by the transpose of the inverse of
// the linear (3x3) part — the standard rule that keeps normals
// perpendicular to transformed tangent planes under non-uniform scale.
// Callers must renormalize the result.
func (a Mat4) MulNormal(n Vec3) Vec3 {
	inv := a.linear3Inverse()
	// normal' = inverse^T * n
	return Vec3{
		X: inv[0][0]*n.X + inv[1][0]*n.Y + inv[2][0]*n.Z,
		Y: inv[0][1]*n.X + inv[1][1]*n.Y + inv[2][1]*n.Z,
		Z: inv[0][2]*n.X + inv[1][2]*n.Y + inv[2][2]*n.Z,
	}
}

// Translation returns the translation component of the transform.
func (a Mat4) Translation() Vec3 {
	return Vec3{a.m[0][3], a.m[1][3], a.m[2][3]}
}

// WithTranslation returns a copy of a with its translation column replaced.
func (a Mat4) WithTranslation(t Vec3) Mat4 {
	b := a
	b.m[0][3], b.m[1][3], b.m[2][3] = t.X, t.Y, t.Z
	return b
}

// Pretranslate returns t*a (translate applied after a), matching the
// original code's `ltw.pretranslate(v)` convention for offsetting an
// already-composed world-from-local transform by a motion-blur delta.
func (a Mat4) Pretranslate(t Vec3) Mat4 {
	return Translation(t).Mul(a)
}

// PostTranslate returns a translated in its own local frame before a's
// other transforms apply (a.Mul(Translation(t))), matching `wtl.translate(v)`.
func (a Mat4) PostTranslate(t Vec3) Mat4 {
	return a.Mul(Translation(t))
}

func (a Mat4) linear3() [3][3]float64 {
	return [3][3]float64{
		{a.m[0][0], a.m[0][1], a.m[0][2]},
		{a.m[1][0], a.m[1][1], a.m[1][2]},
		{a.m[2][0], a.m[2][1], a.m[2][2]},
	}
}

func (a Mat4) linear3Inverse() [3][3]float64 {
	r := a.linear3()
	det := r[0][0]*(r[1][1]*r[2][2]-r[1][2]*r[2][1]) -
		r[0][1]*(r[1][0]*r[2][2]-r[1][2]*r[2][0]) +
		r[0][2]*(r[1][0]*r[2][1]-r[1][1]*r[2][0])
	if det == 0 {
		return [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	}
	invDet := 1.0 / det
	var inv [3][3]float64
	inv[0][0] = (r[1][1]*r[2][2] - r[1][2]*r[2][1]) * invDet
	inv[0][1] = (r[0][2]*r[2][1] - r[0][1]*r[2][2]) * invDet
	inv[0][2] = (r[0][1]*r[1][2] - r[0][2]*r[1][1]) * invDet
	inv[1][0] = (r[1][2]*r[2][0] - r[1][0]*r[2][2]) * invDet
	inv[1][1] = (r[0][0]*r[2][2] - r[0][2]*r[2][0]) * invDet
	inv[1][2] = (r[0][2]*r[1][0] - r[0][0]*r[1][2]) * invDet
	inv[2][0] = (r[1][0]*r[2][1] - r[1][1]*r[2][0]) * invDet
	inv[2][1] = (r[0][1]*r[2][0] - r[0][0]*r[2][1]) * invDet
	inv[2][2] = (r[0][0]*r[1][1] - r[0][1]*r[1][0]) * invDet
	return inv
}

// Inverse returns the affine inverse: for M = [R|t], M^-1 = [R^-1 | -R^-1*t].
func (a Mat4) Inverse() Mat4 {
	inv := a.linear3Inverse()
	t := a.Translation()
	var r Mat4
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r.m[i][j] = inv[i][j]
		}
	}
	negRt := Vec3{
		X: -(inv[0][0]*t.X + inv[0][1]*t.Y + inv[0][2]*t.Z),
		Y: -(inv[1][0]*t.X + inv[1][1]*t.Y + inv[1][2]*t.Z),
		Z: -(inv[2][0]*t.X + inv[2][1]*t.Y + inv[2][2]*t.Z),
	}
	r.m[0][3], r.m[1][3], r.m[2][3] = negRt.X, negRt.Y, negRt.Z
	r.m[3][3] = 1
	return r
}
