package vmath

import "math"

// Mat4 is a 4x4 matrix stored column-major: m[col*4+row]. Mat4{}.Mul(v)
// composes the way OpenGL-style transform chains are usually written,
// left to right as "apply b, then a": a.Mul(b) means "b then a" when
// multiplying column vectors.
type Mat4 [16]float64

// Identity returns the 4x4 identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Get returns the element at (row, col).
func (m Mat4) Get(row, col int) float64 {
	return m[col*4+row]
}

// Set sets the element at (row, col).
func (m *Mat4) Set(row, col int, v float64) {
	m[col*4+row] = v
}

// Translate returns a translation matrix.
func Translate(x, y, z float64) Mat4 {
	m := Identity()
	m.Set(0, 3, x)
	m.Set(1, 3, y)
	m.Set(2, 3, z)
	return m
}

// Scale returns a non-uniform scaling matrix.
func Scale(x, y, z float64) Mat4 {
	m := Identity()
	m.Set(0, 0, x)
	m.Set(1, 1, y)
	m.Set(2, 2, z)
	return m
}

// ScaleUniform returns a uniform scaling matrix.
func ScaleUniform(s float64) Mat4 {
	return Scale(s, s, s)
}

// RotateX returns a rotation matrix about the X axis, angle in radians.
func RotateX(angle float64) Mat4 {
	s, c := math.Sin(angle), math.Cos(angle)
	m := Identity()
	m.Set(1, 1, c)
	m.Set(1, 2, -s)
	m.Set(2, 1, s)
	m.Set(2, 2, c)
	return m
}

// RotateY returns a rotation matrix about the Y axis, angle in radians.
func RotateY(angle float64) Mat4 {
	s, c := math.Sin(angle), math.Cos(angle)
	m := Identity()
	m.Set(0, 0, c)
	m.Set(0, 2, s)
	m.Set(2, 0, -s)
	m.Set(2, 2, c)
	return m
}

// RotateZ returns a rotation matrix about the Z axis, angle in radians.
func RotateZ(angle float64) Mat4 {
	s, c := math.Sin(angle), math.Cos(angle)
	m := Identity()
	m.Set(0, 0, c)
	m.Set(0, 1, -s)
	m.Set(1, 0, s)
	m.Set(1, 1, c)
	return m
}

// Rotate returns a rotation matrix about an arbitrary unit axis
// (Rodrigues' rotation formula).
func Rotate(axis Vec3, angle float64) Mat4 {
	a := axis.Normalize()
	s, c := math.Sin(angle), math.Cos(angle)
	t := 1 - c

	m := Identity()
	m.Set(0, 0, t*a.X*a.X+c)
	m.Set(0, 1, t*a.X*a.Y-s*a.Z)
	m.Set(0, 2, t*a.X*a.Z+s*a.Y)

	m.Set(1, 0, t*a.X*a.Y+s*a.Z)
	m.Set(1, 1, t*a.Y*a.Y+c)
	m.Set(1, 2, t*a.Y*a.Z-s*a.X)

	m.Set(2, 0, t*a.X*a.Z-s*a.Y)
	m.Set(2, 1, t*a.Y*a.Z+s*a.X)
	m.Set(2, 2, t*a.Z*a.Z+c)

	return m
}

// LookAt builds a right-handed view matrix.
func LookAt(eye, target, up Vec3) Mat4 {
	f := target.Sub(eye).Normalize()
	r := f.Cross(up).Normalize()
	u := r.Cross(f)

	m := Identity()
	m.Set(0, 0, r.X)
	m.Set(0, 1, r.Y)
	m.Set(0, 2, r.Z)
	m.Set(1, 0, u.X)
	m.Set(1, 1, u.Y)
	m.Set(1, 2, u.Z)
	m.Set(2, 0, -f.X)
	m.Set(2, 1, -f.Y)
	m.Set(2, 2, -f.Z)

	m.Set(0, 3, -r.Dot(eye))
	m.Set(1, 3, -u.Dot(eye))
	m.Set(2, 3, f.Dot(eye))

	return m
}

// Perspective builds a right-handed perspective projection matrix mapping
// the view-space frustum to clip space with fovY in radians.
func Perspective(fovY, aspect, near, far float64) Mat4 {
	f := 1.0 / math.Tan(fovY/2)
	m := Mat4{}
	m.Set(0, 0, f/aspect)
	m.Set(1, 1, f)
	m.Set(2, 2, -(far + near) / (far - near))
	m.Set(2, 3, -(2 * far * near) / (far - near))
	m.Set(3, 2, -1)
	return m
}

// Orthographic builds an orthographic projection matrix.
func Orthographic(left, right, bottom, top, near, far float64) Mat4 {
	m := Identity()
	m.Set(0, 0, 2/(right-left))
	m.Set(1, 1, 2/(top-bottom))
	m.Set(2, 2, -2/(far-near))
	m.Set(0, 3, -(right+left)/(right-left))
	m.Set(1, 3, -(top+bottom)/(top-bottom))
	m.Set(2, 3, -(far+near)/(far-near))
	return m
}

// Mul returns the matrix product a * b.
func (a Mat4) Mul(b Mat4) Mat4 {
	var r Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += a.Get(row, k) * b.Get(k, col)
			}
			r.Set(row, col, sum)
		}
	}
	return r
}

// MulVec4 transforms a homogeneous vector, keeping w.
func (a Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		a.Get(0, 0)*v.X + a.Get(0, 1)*v.Y + a.Get(0, 2)*v.Z + a.Get(0, 3)*v.W,
		a.Get(1, 0)*v.X + a.Get(1, 1)*v.Y + a.Get(1, 2)*v.Z + a.Get(1, 3)*v.W,
		a.Get(2, 0)*v.X + a.Get(2, 1)*v.Y + a.Get(2, 2)*v.Z + a.Get(2, 3)*v.W,
		a.Get(3, 0)*v.X + a.Get(3, 1)*v.Y + a.Get(3, 2)*v.Z + a.Get(3, 3)*v.W,
	}
}

// MulVec3 transforms v as a point (w=1) and divides through by the
// resulting w if it is non-zero.
func (a Mat4) MulVec3(v Vec3) Vec3 {
	r := a.MulVec4(v.V4(1))
	if r.W != 0 && r.W != 1 {
		return Vec3{r.X / r.W, r.Y / r.W, r.Z / r.W}
	}
	return r.Vec3()
}

// MulVec3Dir transforms v as a direction (w=0, no translation).
func (a Mat4) MulVec3Dir(v Vec3) Vec3 {
	return a.MulVec4(v.V4(0)).Vec3()
}

// Transpose returns the transpose of a.
func (a Mat4) Transpose() Mat4 {
	var r Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			r.Set(col, row, a.Get(row, col))
		}
	}
	return r
}

// Determinant returns the determinant of a via cofactor expansion.
func (a Mat4) Determinant() float64 {
	m := func(r, c int) float64 { return a.Get(r, c) }
	det3 := func(a00, a01, a02, a10, a11, a12, a20, a21, a22 float64) float64 {
		return a00*(a11*a22-a12*a21) - a01*(a10*a22-a12*a20) + a02*(a10*a21-a11*a20)
	}
	var det float64
	for c := 0; c < 4; c++ {
		sign := 1.0
		if c%2 == 1 {
			sign = -1.0
		}
		var cols [3]int
		i := 0
		for k := 0; k < 4; k++ {
			if k != c {
				cols[i] = k
				i++
			}
		}
		minor := det3(
			m(1, cols[0]), m(1, cols[1]), m(1, cols[2]),
			m(2, cols[0]), m(2, cols[1]), m(2, cols[2]),
			m(3, cols[0]), m(3, cols[1]), m(3, cols[2]),
		)
		det += sign * m(0, c) * minor
	}
	return det
}

// Inverse returns the inverse of a, or the identity matrix if a is
// singular (matching the teacher's fail-soft convention for a
// transform that should never be applied if it's degenerate).
func (a Mat4) Inverse() Mat4 {
	det := a.Determinant()
	if det == 0 {
		return Identity()
	}
	invDet := 1 / det

	var cof Mat4
	m := func(r, c int) float64 { return a.Get(r, c) }
	det3 := func(a00, a01, a02, a10, a11, a12, a20, a21, a22 float64) float64 {
		return a00*(a11*a22-a12*a21) - a01*(a10*a22-a12*a20) + a02*(a10*a21-a11*a20)
	}
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var rows, cols [3]int
			ri := 0
			for r := 0; r < 4; r++ {
				if r != row {
					rows[ri] = r
					ri++
				}
			}
			ci := 0
			for c := 0; c < 4; c++ {
				if c != col {
					cols[ci] = c
					ci++
				}
			}
			minor := det3(
				m(rows[0], cols[0]), m(rows[0], cols[1]), m(rows[0], cols[2]),
				m(rows[1], cols[0]), m(rows[1], cols[1]), m(rows[1], cols[2]),
				m(rows[2], cols[0]), m(rows[2], cols[1]), m(rows[2], cols[2]),
			)
			sign := 1.0
			if (row+col)%2 == 1 {
				sign = -1.0
			}
			// adjugate is the transpose of the cofactor matrix
			cof.Set(col, row, sign*minor*invDet)
		}
	}
	return cof
}

// Translation returns the translation component of a.
func (a Mat4) Translation() Vec3 {
	return Vec3{a.Get(0, 3), a.Get(1, 3), a.Get(2, 3)}
}

// SetTranslation overwrites the translation component of a in place.
func (a *Mat4) SetTranslation(v Vec3) {
	a.Set(0, 3, v.X)
	a.Set(1, 3, v.Y)
	a.Set(2, 3, v.Z)
}
