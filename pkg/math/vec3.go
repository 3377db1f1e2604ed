// Package math provides the vector and matrix types used by the viewer.
//
// All arithmetic is float64. Matrices are converted to float32 only when
// they are handed to OpenGL.
package math

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Vec3 is a 3D vector. It is a value type; every operation returns a new vector.
type Vec3 struct {
	X, Y, Z float64
}

// Standard basis.
var (
	EX = Vec3{1, 0, 0}
	EY = Vec3{0, 1, 0}
	EZ = Vec3{0, 0, 1}
)

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Norm returns the euclidean length.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Unit returns v scaled to length 1. The zero vector is returned unchanged.
func (v Vec3) Unit() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return v.Scale(1 / n)
}

// Parallel returns the component of v along axis.
func (v Vec3) Parallel(axis Vec3) Vec3 {
	aa := axis.Dot(axis)
	if aa == 0 {
		return Vec3{}
	}
	return axis.Scale(v.Dot(axis) / aa)
}

// Orthogonal returns the component of v perpendicular to axis.
func (v Vec3) Orthogonal(axis Vec3) Vec3 {
	return v.Sub(v.Parallel(axis))
}

// Rotate rotates v about axis by angle radians, right-handed.
//
// v is split into a part parallel to axis, which is kept, and an orthogonal
// part, which is turned inside the plane spanned by itself and
// unit(axis) x orthogonal.
func (v Vec3) Rotate(axis Vec3, angle float64) Vec3 {
	par := v.Parallel(axis)
	orth := v.Sub(par)
	w := axis.Unit().Cross(orth)
	sin, cos := math.Sincos(angle)
	return par.Add(orth.Scale(cos)).Add(w.Scale(sin))
}

// Component returns the i-th coordinate (0=X, 1=Y, 2=Z).
func (v Vec3) Component(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	}
	panic("math: Vec3 component out of range")
}

// Array returns the coordinates as an array.
func (v Vec3) Array() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// Float32 returns the coordinates narrowed for GPU upload.
func (v Vec3) Float32() [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

// ApproxEqual reports whether every coordinate of v and other differ by at most tol.
func (v Vec3) ApproxEqual(other Vec3, tol float64) bool {
	return scalar.EqualWithinAbs(v.X, other.X, tol) &&
		scalar.EqualWithinAbs(v.Y, other.Y, tol) &&
		scalar.EqualWithinAbs(v.Z, other.Z, tol)
}

// IsFinite reports whether no coordinate is NaN or infinite.
func (v Vec3) IsFinite() bool {
	for _, c := range v.Array() {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
