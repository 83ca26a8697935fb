// Package geometry holds the unit-sphere primitive.
package geometry

import (
	"sync/atomic"

	"raykernel/vmath/matrix"
	"raykernel/vmath/tuple"

	"golang.org/x/xerrors"
)

// IDAllocator hands out sphere identities.  Identities start at 1 and are
// never reused; 0 marks a sphere that was not built by an allocator.
//
// An IDAllocator is safe for concurrent use.  The zero value is ready to
// use.
type IDAllocator struct {
	last atomic.Uint64
}

func (a *IDAllocator) Next() uint64 {
	return a.last.Add(1)
}

// Sphere is a unit sphere centered on the model-space origin, placed in the
// world by a model-to-world transform.
//
// Build spheres with NewSphere; the zero Sphere has no transform.  Sphere is
// a small value type and intersections hold copies.  The transform
// is only changed through SetTransform, and concurrent calls on the same
// Sphere must be serialized by the caller.
type Sphere struct {
	ID uint64

	// The transform that takes model space to world space.
	modelToWorld matrix.T

	// The transform that takes points and rays from world space to model
	// space.
	worldToModel matrix.T

	// The linear map that takes normal vectors from model space to world
	// space: the transpose of worldToModel.
	modelToWorldNormals matrix.T
}

func NewSphere(ids *IDAllocator) Sphere {
	return Sphere{
		ID:                  ids.Next(),
		modelToWorld:        matrix.Identity(4),
		worldToModel:        matrix.Identity(4),
		modelToWorldNormals: matrix.Identity(4),
	}
}

func (s *Sphere) Transform() matrix.T {
	return s.modelToWorld
}

// WorldToModel returns the inverse of the sphere's transform.
func (s *Sphere) WorldToModel() matrix.T {
	return s.worldToModel
}

// SetTransform replaces the model-to-world transform.  The new transform is
// not composed with the old one.
//
// A singular transform is rejected with an error wrapping
// matrix.ErrNotInvertible, and the sphere keeps its previous transform.
func (s *Sphere) SetTransform(m matrix.T) error {
	if m.N != 4 {
		return xerrors.Errorf("sphere transform must be 4x4, got %dx%d", m.N, m.N)
	}
	inv, err := matrix.Inverse(m)
	if err != nil {
		return xerrors.Errorf("while inverting sphere transform: %w", err)
	}

	s.modelToWorld = m
	s.worldToModel = inv
	s.modelToWorldNormals = matrix.Transpose(inv)
	return nil
}

// NormalAt returns the unit world-space surface normal at a world-space
// point on the sphere.
func (s *Sphere) NormalAt(worldPoint tuple.T) tuple.T {
	modelPoint := matrix.MulMT(s.worldToModel, worldPoint)
	modelNormal := tuple.Sub(modelPoint, tuple.Point(0, 0, 0))

	worldNormal := matrix.MulMT(s.modelToWorldNormals, modelNormal)
	// The inverse transpose carries the translation column into w.
	worldNormal[3] = 0

	return tuple.Normalize(worldNormal)
}
