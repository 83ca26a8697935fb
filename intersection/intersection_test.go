package intersection

import (
	"testing"

	"raykernel/geometry"

	"github.com/google/go-cmp/cmp"
)

func TestIntersectionEncapsulatesTAndObject(t *testing.T) {
	s := geometry.NewSphere(&geometry.IDAllocator{})
	i := Intersection{T: 3.5, Object: s}
	if i.T != 3.5 {
		t.Errorf("T = %v, want 3.5", i.T)
	}
	if i.Object != s {
		t.Errorf("Object = %+v, want %+v", i.Object, s)
	}
}

func TestAggregate(t *testing.T) {
	s := geometry.NewSphere(&geometry.IDAllocator{})
	xs := Aggregate(Intersection{1, s}, Intersection{2, s})
	if xs.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", xs.Len())
	}
	if xs[0].T != 1 || xs[1].T != 2 {
		t.Errorf("Got T values %v, %v; want 1, 2", xs[0].T, xs[1].T)
	}
}

func TestMergeKeepsOrder(t *testing.T) {
	ids := &geometry.IDAllocator{}
	a := geometry.NewSphere(ids)
	b := geometry.NewSphere(ids)

	got := Merge(Aggregate(Intersection{7, a}, Intersection{-1, a}), nil, Aggregate(Intersection{3, b}))
	var gotT []float64
	for _, x := range got {
		gotT = append(gotT, x.T)
	}
	if diff := cmp.Diff(gotT, []float64{7, -1, 3}); diff != "" {
		t.Errorf("Bad merge order; diff (-got +want)\n%s", diff)
	}
	if got[2].Object.ID != b.ID {
		t.Errorf("Merged intersection lost its object: got ID %d, want %d", got[2].Object.ID, b.ID)
	}
}

func TestHit(t *testing.T) {
	s := geometry.NewSphere(&geometry.IDAllocator{})
	testCases := []struct {
		desc   string
		ts     []float64
		wantOK bool
		wantT  float64
	}{
		{"all positive", []float64{1, 2}, true, 1},
		{"some negative", []float64{-1, 1}, true, 1},
		{"all negative", []float64{-2, -1}, false, 0},
		{"lowest nonnegative", []float64{5, 7, -3, 2}, true, 2},
		{"zero is not a hit", []float64{0, 4}, true, 4},
		{"only zero", []float64{0}, false, 0},
		{"empty", nil, false, 0},
		{"tangent", []float64{5, 5}, true, 5},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			var xs Intersections
			for _, v := range tc.ts {
				xs = append(xs, Intersection{T: v, Object: s})
			}
			got, ok := xs.Hit()
			if ok != tc.wantOK {
				t.Fatalf("Hit() ok = %v, want %v", ok, tc.wantOK)
			}
			if ok && got.T != tc.wantT {
				t.Errorf("Hit().T = %v, want %v", got.T, tc.wantT)
			}
			if ok && got.Object != s {
				t.Errorf("Hit().Object = %+v, want %+v", got.Object, s)
			}
		})
	}
}

func TestHitReturnsTheRecordItself(t *testing.T) {
	ids := &geometry.IDAllocator{}
	a := geometry.NewSphere(ids)
	b := geometry.NewSphere(ids)
	i1 := Intersection{5, a}
	i2 := Intersection{7, a}
	i3 := Intersection{-3, b}
	i4 := Intersection{2, b}

	got, ok := Aggregate(i1, i2, i3, i4).Hit()
	if !ok || got != i4 {
		t.Errorf("Hit() = %+v, %v; want %+v, true", got, ok, i4)
	}
}
