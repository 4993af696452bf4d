package core

import "sort"

// BVHNode is either an internal node with two Hittable children, or a leaf
// wrapping a single primitive. Construction is top-down median split, not
// bottom-up (spec.md §4.1).
type BVHNode struct {
	Box         AABB
	Left, Right Hittable // nil on a leaf
	Leaf        Hittable // nil on an internal node
}

// BoundingBox implements Hittable.
func (n *BVHNode) BoundingBox() AABB { return n.Box }

// Hit implements Hittable: recursive traversal, testing both children when
// the node is internal because either subtree may contain the closer
// primitive — there's no early-out for closest-hit queries. Leaves test
// their one primitive directly.
func (n *BVHNode) Hit(ray Ray, tMin, tMax float64) (*RayHit, bool) {
	if !n.Box.Hit(ray, tMin, tMax) {
		return nil, false
	}
	if n.Leaf != nil {
		return n.Leaf.Hit(ray, tMin, tMax)
	}

	closest := tMax
	var best *RayHit
	if hit, ok := n.Left.Hit(ray, tMin, closest); ok {
		best = hit
		closest = hit.T
	}
	if hit, ok := n.Right.Hit(ray, tMin, closest); ok {
		best = hit
	}
	return best, best != nil
}

// ShadowHit is like Hit but returns as soon as any hit closer than tMax is
// found, without determining the globally closest one — spec.md §4.1 allows
// this early exit for shadow (closest=false) queries since only occlusion
// matters, not identity of the occluder.
func (n *BVHNode) ShadowHit(ray Ray, tMin, tMax float64) bool {
	if !n.Box.Hit(ray, tMin, tMax) {
		return false
	}
	if n.Leaf != nil {
		_, ok := n.Leaf.Hit(ray, tMin, tMax)
		return ok
	}
	if sh, ok := n.Left.(interface {
		ShadowHit(Ray, float64, float64) bool
	}); ok {
		if sh.ShadowHit(ray, tMin, tMax) {
			return true
		}
	} else if _, ok := n.Left.Hit(ray, tMin, tMax); ok {
		return true
	}
	if sh, ok := n.Right.(interface {
		ShadowHit(Ray, float64, float64) bool
	}); ok {
		return sh.ShadowHit(ray, tMin, tMax)
	}
	_, ok := n.Right.Hit(ray, tMin, tMax)
	return ok
}

// BuildBVH builds a BVH over the given primitives using round-robin axis
// selection (x, y, z, x, ...) and a pivot-on-center-coordinate partition,
// per spec.md §4.1:
//   - 1 primitive:  leaf
//   - 2 primitives: internal node, each child a leaf
//   - otherwise: split on the node's bounding-box-center coordinate along
//     the round-robin axis; primitives with center == pivot go right;
//     if either side ends up empty, fall back to a straight median-index
//     split (still along the same axis ordering) instead of re-choosing an
//     axis, so output stays deterministic across runs.
func BuildBVH(items []Hittable) Hittable {
	return buildBVH(items, 0)
}

func buildBVH(items []Hittable, axis int) Hittable {
	switch len(items) {
	case 0:
		return nil
	case 1:
		return &BVHNode{Box: items[0].BoundingBox(), Leaf: items[0]}
	case 2:
		box := items[0].BoundingBox().Union(items[1].BoundingBox())
		return &BVHNode{
			Box:   box,
			Left:  &BVHNode{Box: items[0].BoundingBox(), Leaf: items[0]},
			Right: &BVHNode{Box: items[1].BoundingBox(), Leaf: items[1]},
		}
	}

	box := items[0].BoundingBox()
	for _, it := range items[1:] {
		box = box.Union(it.BoundingBox())
	}

	pivot := componentOf(box.Center(), axis)
	var left, right []Hittable
	for _, it := range items {
		c := componentOf(it.BoundingBox().Center(), axis)
		if c < pivot {
			left = append(left, it)
		} else {
			right = append(right, it)
		}
	}

	if len(left) == 0 || len(right) == 0 {
		sorted := make([]Hittable, len(items))
		copy(sorted, items)
		sort.Slice(sorted, func(i, j int) bool {
			return componentOf(sorted[i].BoundingBox().Center(), axis) <
				componentOf(sorted[j].BoundingBox().Center(), axis)
		})
		mid := len(sorted) / 2
		left, right = sorted[:mid], sorted[mid:]
	}

	nextAxis := (axis + 1) % 3
	return &BVHNode{
		Box:   box,
		Left:  buildBVH(left, nextAxis),
		Right: buildBVH(right, nextAxis),
	}
}

func componentOf(v Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// BruteForceHit scans every item linearly, used by tests to validate BVH
// equivalence (spec.md §8) and as the reference Scene.Cast fallback for
// scenes too small to benefit from acceleration.
func BruteForceHit(items []Hittable, ray Ray, tMin, tMax float64) (*RayHit, bool) {
	closest := tMax
	var best *RayHit
	for _, it := range items {
		if hit, ok := it.Hit(ray, tMin, closest); ok {
			best = hit
			closest = hit.T
		}
	}
	return best, best != nil
}
