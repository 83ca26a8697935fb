// Package intersection records where rays cross spheres and picks the
// visible hit.
package intersection

import "raykernel/geometry"

// Intersection is a parametric distance along a ray together with the
// sphere that was hit.
type Intersection struct {
	T      float64
	Object geometry.Sphere
}

// Intersections keeps intersections in the order they were produced.  It is
// not sorted by T.
type Intersections []Intersection

func Aggregate(xs ...Intersection) Intersections {
	return Intersections(xs)
}

// Merge concatenates several sets of intersections, preserving order.
func Merge(sets ...Intersections) Intersections {
	n := 0
	for _, s := range sets {
		n += len(s)
	}
	result := make(Intersections, 0, n)
	for _, s := range sets {
		result = append(result, s...)
	}
	return result
}

func (xs Intersections) Len() int {
	return len(xs)
}

// Hit returns the intersection with the smallest strictly positive T.  The
// second return value is false when every T is zero or negative.
func (xs Intersections) Hit() (Intersection, bool) {
	best := -1
	for i, x := range xs {
		if x.T <= 0 {
			continue
		}
		if best == -1 || x.T < xs[best].T {
			best = i
		}
	}
	if best == -1 {
		return Intersection{}, false
	}
	return xs[best], true
}
