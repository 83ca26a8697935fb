// Package matrix implements small square matrices (2x2, 3x3 and 4x4) with
// cofactor-expansion determinants and adjugate inverses.
//
// All sizes share one implementation.  Elements are stored row-major with a
// stride of N in a fixed backing array, so T is a comparable value type.
package matrix

import (
	"fmt"
	"math"

	"raykernel/vmath/tuple"

	"golang.org/x/xerrors"
)

// MaxN is the largest supported dimension.
const MaxN = 4

// ErrNotInvertible is returned when inverting a matrix whose determinant is
// zero.
var ErrNotInvertible = xerrors.New("matrix is not invertible")

type T struct {
	N    int
	Elts [MaxN * MaxN]float64
}

func checkN(n int) {
	if n < 2 || n > MaxN {
		panic(fmt.Sprintf("matrix: unsupported dimension %d", n))
	}
}

// New builds an n x n matrix from n*n row-major values.
func New(n int, elts ...float64) T {
	checkN(n)
	if len(elts) != n*n {
		panic(fmt.Sprintf("matrix: %dx%d matrix needs %d values, got %d", n, n, n*n, len(elts)))
	}
	m := T{N: n}
	copy(m.Elts[:], elts)
	return m
}

// FromRows builds a matrix from its rows, which must form a square.
func FromRows(rows ...[]float64) T {
	n := len(rows)
	checkN(n)
	m := T{N: n}
	for r, row := range rows {
		if len(row) != n {
			panic(fmt.Sprintf("matrix: row %d has %d values, want %d", r, len(row), n))
		}
		copy(m.Elts[r*n:], row)
	}
	return m
}

func Identity(n int) T {
	checkN(n)
	m := T{N: n}
	for i := 0; i < n; i++ {
		m.Elts[i*n+i] = 1
	}
	return m
}

func (m T) At(r, c int) float64 {
	if r < 0 || r >= m.N || c < 0 || c >= m.N {
		panic(fmt.Sprintf("matrix: index (%d, %d) out of range for %dx%d matrix", r, c, m.N, m.N))
	}
	return m.Elts[r*m.N+c]
}

// Rows returns a copy of the elements as a slice of rows.
func (m T) Rows() [][]float64 {
	rows := make([][]float64, m.N)
	for r := range rows {
		rows[r] = append([]float64(nil), m.Elts[r*m.N:(r+1)*m.N]...)
	}
	return rows
}

func (m T) String() string {
	return fmt.Sprint(m.Rows())
}

func MulMM(a, b T) T {
	if a.N != b.N {
		panic(fmt.Sprintf("matrix: cannot multiply %dx%d by %dx%d", a.N, a.N, b.N, b.N))
	}
	n := a.N
	result := T{N: n}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				result.Elts[i*n+j] += a.Elts[i*n+k] * b.Elts[k*n+j]
			}
		}
	}
	return result
}

// MulMT applies a 4x4 matrix to all four homogeneous components of b.
func MulMT(a T, b tuple.T) tuple.T {
	if a.N != 4 {
		panic(fmt.Sprintf("matrix: cannot apply %dx%d matrix to a tuple", a.N, a.N))
	}
	e := &a.Elts
	return tuple.T{
		e[0]*b[0] + e[1]*b[1] + e[2]*b[2] + e[3]*b[3],
		e[4]*b[0] + e[5]*b[1] + e[6]*b[2] + e[7]*b[3],
		e[8]*b[0] + e[9]*b[1] + e[10]*b[2] + e[11]*b[3],
		e[12]*b[0] + e[13]*b[1] + e[14]*b[2] + e[15]*b[3],
	}
}

func Transpose(m T) T {
	n := m.N
	transpose := T{N: n}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			transpose.Elts[c*n+r] = m.Elts[r*n+c]
		}
	}
	return transpose
}

// Submatrix removes one row and one column, keeping the remaining rows and
// columns in order.
func Submatrix(m T, row, col int) T {
	if m.N <= 2 {
		panic(fmt.Sprintf("matrix: no submatrix of a %dx%d matrix", m.N, m.N))
	}
	n := m.N
	sub := T{N: n - 1}
	i := 0
	for r := 0; r < n; r++ {
		if r == row {
			continue
		}
		for c := 0; c < n; c++ {
			if c == col {
				continue
			}
			sub.Elts[i] = m.Elts[r*n+c]
			i++
		}
	}
	return sub
}

func Minor(m T, row, col int) float64 {
	if m.N == 2 {
		// The submatrix of a 2x2 is the single opposite element.
		return m.Elts[(1-row)*2+(1-col)]
	}
	return Determinant(Submatrix(m, row, col))
}

func Cofactor(m T, row, col int) float64 {
	minor := Minor(m, row, col)
	if (row+col)%2 == 1 {
		return -minor
	}
	return minor
}

// Determinant expands along the first row, recursing down to the 2x2 case.
func Determinant(m T) float64 {
	checkN(m.N)
	if m.N == 2 {
		return m.Elts[0]*m.Elts[3] - m.Elts[1]*m.Elts[2]
	}
	det := 0.0
	for c := 0; c < m.N; c++ {
		det += m.Elts[c] * Cofactor(m, 0, c)
	}
	return det
}

func IsInvertible(m T) bool {
	return Determinant(m) != 0
}

// Inverse computes the adjugate inverse: the transposed cofactor matrix
// divided by the determinant.
func Inverse(m T) (T, error) {
	det := Determinant(m)
	if det == 0 {
		return T{}, xerrors.Errorf("%dx%d matrix %v has determinant 0: %w", m.N, m.N, m, ErrNotInvertible)
	}

	n := m.N
	inv := T{N: n}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			// Writing [c][r] transposes the cofactor matrix.
			inv.Elts[c*n+r] = Cofactor(m, r, c) / det
		}
	}
	return inv, nil
}

// MustInverse is Inverse for callers that have already checked
// IsInvertible.  It panics on a singular matrix.
func MustInverse(m T) T {
	inv, err := Inverse(m)
	if err != nil {
		panic(err)
	}
	return inv
}

// Round rounds every element to 5 decimal places, for tolerant comparisons.
func (m T) Round() T {
	result := m
	for i := 0; i < m.N*m.N; i++ {
		result.Elts[i] = round5(m.Elts[i])
	}
	return result
}

func round5(x float64) float64 {
	r := math.Round(x*1e5) / 1e5
	if r == 0 {
		return 0
	}
	return r
}
