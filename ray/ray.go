package ray

import (
	"math"

	"raykernel/geometry"
	"raykernel/intersection"
	"raykernel/vmath/matrix"
	"raykernel/vmath/tuple"
)

// Ray is a half-line from Origin (a point) along Direction (a vector).  The
// direction is not normalized, and must not be the zero vector.
type Ray struct {
	Origin    tuple.T
	Direction tuple.T
}

func New(origin, direction tuple.T) Ray {
	return Ray{Origin: origin, Direction: direction}
}

func (r Ray) Position(t float64) tuple.T {
	return tuple.Add(r.Origin, tuple.MulTS(r.Direction, t))
}

// Transform applies m to both the origin and the direction.  The direction
// is left unnormalized so that t values keep meaning across spaces.
func (r Ray) Transform(m matrix.T) Ray {
	return Ray{
		Origin:    matrix.MulMT(m, r.Origin),
		Direction: matrix.MulMT(m, r.Direction),
	}
}

// Intersect finds where r crosses s.
//
// The result is empty for a miss.  Otherwise it holds exactly two
// intersections with t1 <= t2 (equal for a tangent ray), in that order.
// Both carry a copy of s.
func (r Ray) Intersect(s geometry.Sphere) intersection.Intersections {
	mdl := r.Transform(s.WorldToModel())

	sphereToRay := tuple.Sub(mdl.Origin, tuple.Point(0, 0, 0))
	a := tuple.IProd(mdl.Direction, mdl.Direction)
	b := 2 * tuple.IProd(mdl.Direction, sphereToRay)
	c := tuple.IProd(sphereToRay, sphereToRay) - 1

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return intersection.Intersections{}
	}

	sqrtD := math.Sqrt(discriminant)
	t1 := (-b - sqrtD) / (2 * a)
	t2 := (-b + sqrtD) / (2 * a)

	return intersection.Aggregate(
		intersection.Intersection{T: t1, Object: s},
		intersection.Intersection{T: t2, Object: s},
	)
}
