package math

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

// Mat4 is a 4x4 matrix in column-major order (OpenGL compatible).
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
//
// Matrices premultiply column vectors: M.MulVec4(v) = M·v.
type Mat4 [16]float64

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// FromRows builds a matrix from its rows as written on paper.
func FromRows(rows [4][4]float64) Mat4 {
	var m Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m[c*4+r] = rows[r][c]
		}
	}
	return m
}

// At returns the element in row r, column c.
func (m Mat4) At(r, c int) float64 {
	return m[c*4+r]
}

// Set stores v at row r, column c.
func (m *Mat4) Set(r, c int, v float64) {
	m[c*4+r] = v
}

// Translate returns a translation matrix.
func Translate(v Vec3) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		v.X, v.Y, v.Z, 1,
	}
}

// Scale returns a uniform scale matrix diag(f, f, f, 1).
func Scale(f float64) Mat4 {
	return Mat4{
		f, 0, 0, 0,
		0, f, 0, 0,
		0, 0, f, 0,
		0, 0, 0, 1,
	}
}

// Mul multiplies this matrix by another (m * other).
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			result[col*4+row] =
				m[0*4+row]*other[col*4+0] +
					m[1*4+row]*other[col*4+1] +
					m[2*4+row]*other[col*4+2] +
					m[3*4+row]*other[col*4+3]
		}
	}
	return result
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			t.Set(c, r, m.At(r, c))
		}
	}
	return t
}

// Vec4 is a 4-component homogeneous vector.
type Vec4 [4]float64

// XYZ drops the homogeneous coordinate.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// MulVec4 multiplies the matrix by a column vector.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v[0] + m[4]*v[1] + m[8]*v[2] + m[12]*v[3],
		m[1]*v[0] + m[5]*v[1] + m[9]*v[2] + m[13]*v[3],
		m[2]*v[0] + m[6]*v[1] + m[10]*v[2] + m[14]*v[3],
		m[3]*v[0] + m[7]*v[1] + m[11]*v[2] + m[15]*v[3],
	}
}

// TransformPoint transforms a 3D point by this matrix (assumes w=1).
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	r := m.MulVec4(Vec4{p.X, p.Y, p.Z, 1})
	if w := r[3]; w != 0 && w != 1 {
		return Vec3{r[0] / w, r[1] / w, r[2] / w}
	}
	return r.XYZ()
}

// Dense copies the matrix into a gonum dense matrix.
func (m Mat4) Dense() *mat.Dense {
	d := mat.NewDense(4, 4, nil)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			d.Set(r, c, m.At(r, c))
		}
	}
	return d
}

// FromDense copies a 4x4 gonum matrix.
func FromDense(d mat.Matrix) Mat4 {
	var m Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m.Set(r, c, d.At(r, c))
		}
	}
	return m
}

// Inverse returns the inverse of the matrix.
// ok is false if the matrix is singular, in which case the identity is returned.
func (m Mat4) Inverse() (inv Mat4, ok bool) {
	var d mat.Dense
	if err := d.Inverse(m.Dense()); err != nil {
		return Identity(), false
	}
	return FromDense(&d), true
}

// Float32 returns the matrix narrowed for glUniformMatrix4fv with transpose=false.
func (m Mat4) Float32() [16]float32 {
	var f [16]float32
	for i, v := range m {
		f[i] = float32(v)
	}
	return f
}

// ApproxEqual reports whether all elements differ by at most tol.
func (m Mat4) ApproxEqual(other Mat4, tol float64) bool {
	for i := range m {
		if !scalar.EqualWithinAbs(m[i], other[i], tol) {
			return false
		}
	}
	return true
}

// String formats the matrix row by row.
func (m Mat4) String() string {
	var b strings.Builder
	for r := 0; r < 4; r++ {
		fmt.Fprintf(&b, "[%g %g %g %g]", m.At(r, 0), m.At(r, 1), m.At(r, 2), m.At(r, 3))
		if r < 3 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
