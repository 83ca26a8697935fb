// Package tuple implements homogeneous 4-component points and vectors.
//
// The fourth component distinguishes points (w=1) from vectors (w=0).
// Arithmetic never re-validates w; subtracting two points legitimately
// produces a vector, and scaling a point produces neither.
package tuple

import "math"

type T [4]float64

func Point(x, y, z float64) T {
	return T{x, y, z, 1}
}

func Vector(x, y, z float64) T {
	return T{x, y, z, 0}
}

func (v T) X() float64 { return v[0] }
func (v T) Y() float64 { return v[1] }
func (v T) Z() float64 { return v[2] }
func (v T) W() float64 { return v[3] }

func (v T) IsPoint() bool {
	return v[3] == 1
}

func (v T) IsVector() bool {
	return v[3] == 0
}

// Norm is the Euclidean length over all four components.
func (v T) Norm() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2] + v[3]*v[3])
}

// Normalize divides v by its length.  A zero-length v yields non-finite
// components.
func Normalize(v T) T {
	l := v.Norm()
	return T{
		v[0] / l,
		v[1] / l,
		v[2] / l,
		v[3] / l,
	}
}

func Add(a, b T) T {
	return T{
		a[0] + b[0],
		a[1] + b[1],
		a[2] + b[2],
		a[3] + b[3],
	}
}

func Sub(a, b T) T {
	return T{
		a[0] - b[0],
		a[1] - b[1],
		a[2] - b[2],
		a[3] - b[3],
	}
}

func Neg(a T) T {
	return T{-a[0], -a[1], -a[2], -a[3]}
}

func MulTS(a T, b float64) T {
	return T{
		a[0] * b,
		a[1] * b,
		a[2] * b,
		a[3] * b,
	}
}

func DivTS(a T, b float64) T {
	return T{
		a[0] / b,
		a[1] / b,
		a[2] / b,
		a[3] / b,
	}
}

// IProd is the dot product, including w.
func IProd(a, b T) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]
}

// CProd is the cross product of the x, y, z parts.  The result is always a
// vector.
func CProd(a, b T) T {
	return Vector(
		a[1]*b[2]-a[2]*b[1],
		a[2]*b[0]-a[0]*b[2],
		a[0]*b[1]-a[1]*b[0],
	)
}

// Reflect mirrors v about the normal n.
func Reflect(v, n T) T {
	return Sub(v, MulTS(n, 2*IProd(v, n)))
}

// Round rounds x, y and z to 5 decimal places.  It exists for tolerant
// comparisons; w is left untouched.
func (v T) Round() T {
	return T{round5(v[0]), round5(v[1]), round5(v[2]), v[3]}
}

func round5(x float64) float64 {
	r := math.Round(x*1e5) / 1e5
	if r == 0 {
		// Collapse -0 so rounded tuples compare equal with ==.
		return 0
	}
	return r
}
