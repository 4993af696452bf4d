package core

// Default numeric tolerances, overridable per Scene (spec.md §3, §9 Open
// Question #4: the sphere near-root epsilon is configurable rather than the
// original hard-coded 0.01).
const (
	DefaultShadowEpsilon       = 1e-4
	DefaultIntersectionEpsilon = 0.01
	DefaultDeterminantEpsilon  = 1e-9
)
