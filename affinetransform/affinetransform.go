// Package affinetransform builds 4x4 affine transforms for homogeneous
// tuples.
//
// The builder methods on AffineTransform left-multiply: appending T to a
// composite M yields T*M.  Calls therefore read in the order the transforms
// are applied to a point:
//
//	Identity().RotateX(a).Scale(5, 5, 5).Translate(10, 5, 7)
//
// is translate * scale * rotateX.
package affinetransform

import (
	"math"

	"raykernel/vmath/matrix"
	"raykernel/vmath/tuple"
)

func Translation(x, y, z float64) matrix.T {
	return matrix.New(4,
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	)
}

func Scaling(x, y, z float64) matrix.T {
	return matrix.New(4,
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	)
}

func RotationX(r float64) matrix.T {
	c, s := math.Cos(r), math.Sin(r)
	return matrix.New(4,
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	)
}

func RotationY(r float64) matrix.T {
	c, s := math.Cos(r), math.Sin(r)
	return matrix.New(4,
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	)
}

func RotationZ(r float64) matrix.T {
	c, s := math.Cos(r), math.Sin(r)
	return matrix.New(4,
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	)
}

// Shearing moves each coordinate in proportion to the other two; xy is
// how much x moves in proportion to y, and so on.
func Shearing(xy, xz, yx, yz, zx, zy float64) matrix.T {
	return matrix.New(4,
		1, xy, xz, 0,
		yx, 1, yz, 0,
		zx, zy, 1, 0,
		0, 0, 0, 1,
	)
}

type AffineTransform struct {
	M matrix.T
}

func Identity() AffineTransform {
	return AffineTransform{M: matrix.Identity(4)}
}

// Then appends an arbitrary 4x4 transform, applied after everything already
// in t.
func (t AffineTransform) Then(m matrix.T) AffineTransform {
	return AffineTransform{M: matrix.MulMM(m, t.M)}
}

func (t AffineTransform) Translate(x, y, z float64) AffineTransform {
	return t.Then(Translation(x, y, z))
}

func (t AffineTransform) Scale(x, y, z float64) AffineTransform {
	return t.Then(Scaling(x, y, z))
}

func (t AffineTransform) RotateX(r float64) AffineTransform {
	return t.Then(RotationX(r))
}

func (t AffineTransform) RotateY(r float64) AffineTransform {
	return t.Then(RotationY(r))
}

func (t AffineTransform) RotateZ(r float64) AffineTransform {
	return t.Then(RotationZ(r))
}

func (t AffineTransform) Shear(xy, xz, yx, yz, zx, zy float64) AffineTransform {
	return t.Then(Shearing(xy, xz, yx, yz, zx, zy))
}

// Compose returns the transform that applies b and then a.
func Compose(a, b AffineTransform) AffineTransform {
	return AffineTransform{M: matrix.MulMM(a.M, b.M)}
}

func (t AffineTransform) Matrix() matrix.T {
	return t.M
}

func (t AffineTransform) Invert() (AffineTransform, error) {
	inv, err := matrix.Inverse(t.M)
	if err != nil {
		return AffineTransform{}, err
	}
	return AffineTransform{M: inv}, nil
}

func TransformTuple(a AffineTransform, b tuple.T) tuple.T {
	return matrix.MulMT(a.M, b)
}
