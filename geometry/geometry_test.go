package geometry

import (
	"math"
	"sync"
	"testing"

	"raykernel/affinetransform"
	"raykernel/vmath/matrix"
	"raykernel/vmath/tuple"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/xerrors"
)

func TestNewSphereDefaults(t *testing.T) {
	ids := &IDAllocator{}
	s := NewSphere(ids)
	if s.ID != 1 {
		t.Errorf("First sphere ID = %d, want 1", s.ID)
	}
	if got := s.Transform(); got != matrix.Identity(4) {
		t.Errorf("Default transform = %v, want identity", got)
	}
	if got := s.WorldToModel(); got != matrix.Identity(4) {
		t.Errorf("Default inverse transform = %v, want identity", got)
	}
}

func TestIDsAreUniqueAndIncreasing(t *testing.T) {
	ids := &IDAllocator{}
	a := NewSphere(ids)
	b := NewSphere(ids)
	if b.ID <= a.ID {
		t.Errorf("IDs not increasing: %d then %d", a.ID, b.ID)
	}
	if a == b {
		t.Errorf("Distinct spheres compare equal")
	}
	if c := a; c != a {
		t.Errorf("Copied sphere does not compare equal to the original")
	}
}

func TestIDsAreUniqueAcrossGoroutines(t *testing.T) {
	ids := &IDAllocator{}
	const workers, perWorker = 8, 250

	var mu sync.Mutex
	seen := map[uint64]bool{}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]uint64, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				local = append(local, NewSphere(ids).ID)
			}
			mu.Lock()
			defer mu.Unlock()
			for _, id := range local {
				if seen[id] {
					t.Errorf("ID %d handed out twice", id)
				}
				seen[id] = true
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers*perWorker {
		t.Errorf("Got %d distinct IDs, want %d", len(seen), workers*perWorker)
	}
	if seen[0] {
		t.Errorf("ID 0 should be reserved")
	}
}

func TestSetTransformReplaces(t *testing.T) {
	s := NewSphere(&IDAllocator{})
	if err := s.SetTransform(affinetransform.Translation(2, 3, 4)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := s.SetTransform(affinetransform.Scaling(2, 2, 2)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got, want := s.Transform(), affinetransform.Scaling(2, 2, 2); got != want {
		t.Errorf("Transform = %v, want %v (not composed with the previous one)", got, want)
	}
}

func TestSetTransformRejectsSingular(t *testing.T) {
	s := NewSphere(&IDAllocator{})
	if err := s.SetTransform(affinetransform.Translation(1, 0, 0)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	err := s.SetTransform(affinetransform.Scaling(1, 0, 1))
	if !xerrors.Is(err, matrix.ErrNotInvertible) {
		t.Fatalf("SetTransform(singular) error = %v, want ErrNotInvertible", err)
	}
	if got, want := s.Transform(), affinetransform.Translation(1, 0, 0); got != want {
		t.Errorf("Rejected SetTransform changed the transform to %v", got)
	}

	if err := s.SetTransform(matrix.Identity(3)); err == nil {
		t.Errorf("SetTransform accepted a 3x3 matrix")
	}
}

func TestNormalAtUntransformed(t *testing.T) {
	s := NewSphere(&IDAllocator{})
	k := math.Sqrt(3) / 3
	testCases := []struct {
		desc string
		p    tuple.T
		want tuple.T
	}{
		{"x axis", tuple.Point(1, 0, 0), tuple.Vector(1, 0, 0)},
		{"y axis", tuple.Point(0, 1, 0), tuple.Vector(0, 1, 0)},
		{"z axis", tuple.Point(0, 0, 1), tuple.Vector(0, 0, 1)},
		{"nonaxial", tuple.Point(k, k, k), tuple.Vector(k, k, k)},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			got := s.NormalAt(tc.p)
			if got.Round() != tc.want.Round() {
				t.Errorf("NormalAt(%v) = %v, want %v", tc.p, got, tc.want)
			}
			if math.Abs(got.Norm()-1) > 1e-12 {
				t.Errorf("Normal %v is not normalized", got)
			}
		})
	}
}

func TestNormalAtTranslated(t *testing.T) {
	s := NewSphere(&IDAllocator{})
	if err := s.SetTransform(affinetransform.Translation(0, 1, 0)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	got := s.NormalAt(tuple.Point(0, 1.70711, -0.70711)).Round()
	if want := tuple.Vector(0, 0.70711, -0.70711); got != want {
		t.Errorf("NormalAt = %v, want %v", got, want)
	}
}

func TestNormalAtScaledAndRotated(t *testing.T) {
	s := NewSphere(&IDAllocator{})
	m := affinetransform.Identity().RotateZ(math.Pi/5).Scale(1, 0.5, 1).Matrix()
	if err := s.SetTransform(m); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	got := s.NormalAt(tuple.Point(0, math.Sqrt(2)/2, -math.Sqrt(2)/2)).Round()
	if want := tuple.Vector(0, 0.97014, -0.24254); got != want {
		t.Errorf("NormalAt = %v, want %v", got, want)
	}
	if !got.IsVector() {
		t.Errorf("Normal %v is not a vector", got)
	}
}

func TestNormalAtNonUniformScaleUsesInverseTranspose(t *testing.T) {
	s := NewSphere(&IDAllocator{})
	if err := s.SetTransform(affinetransform.Translation(5, 0, 0)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	s2 := s
	if err := s2.SetTransform(affinetransform.Identity().Scale(1, 4, 1).Translate(5, 0, 0).Matrix()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// On an ellipsoid stretched along y, a point halfway up the side
	// has a normal tilted less towards y than the point's offset.
	p := tuple.Point(5+math.Sqrt(2)/2, 4*math.Sqrt(2)/2, 0)
	n := s2.NormalAt(p)
	if n[3] != 0 {
		t.Errorf("Normal w = %v, want 0", n[3])
	}
	want := tuple.Normalize(tuple.Vector(math.Sqrt(2)/2, math.Sqrt(2)/8, 0))
	if diff := cmp.Diff(n.Round(), want.Round()); diff != "" {
		t.Errorf("Bad ellipsoid normal; diff (-got +want)\n%s", diff)
	}
}
