package math

import (
	"gonum.org/v1/gonum/mat"
)

// Basis is an ordered frame of three vectors.
type Basis [3]Vec3

// StandardBasis returns (EX, EY, EZ).
func StandardBasis() Basis {
	return Basis{EX, EY, EZ}
}

// Orthonormalize returns the orthonormal frame nearest to b in the
// Frobenius sense: with b = U·Σ·Vᵀ the rows of U·Vᵀ.
// ok is false if the decomposition fails.
func (b Basis) Orthonormalize() (Basis, bool) {
	a := mat.NewDense(3, 3, []float64{
		b[0].X, b[0].Y, b[0].Z,
		b[1].X, b[1].Y, b[1].Z,
		b[2].X, b[2].Y, b[2].Z,
	})

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDFull) {
		return b, false
	}
	var u, v, q mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	q.Mul(&u, v.T())

	var out Basis
	for i := range out {
		out[i] = Vec3{q.At(i, 0), q.At(i, 1), q.At(i, 2)}
	}
	return out, true
}

// ApproxEqual compares the three vectors pairwise.
func (b Basis) ApproxEqual(other Basis, tol float64) bool {
	for i := range b {
		if !b[i].ApproxEqual(other[i], tol) {
			return false
		}
	}
	return true
}
