package vmath

import (
	"math"
	"testing"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func vec3Close(a, b Vec3, eps float64) bool {
	return almostEqual(a.X, b.X, eps) && almostEqual(a.Y, b.Y, eps) && almostEqual(a.Z, b.Z, eps)
}

func TestVec3Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec3
		want Vec3
	}{
		{"unit x", V3(1, 0, 0), V3(1, 0, 0)},
		{"scaled", V3(3, 0, 0), V3(1, 0, 0)},
		{"zero vector normalizes to itself", Vec3{}, Vec3{}},
		{"diagonal", V3(1, 1, 0), V3(1/math.Sqrt2, 1/math.Sqrt2, 0)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalize()
			if !vec3Close(got, tc.want, 1e-9) {
				t.Errorf("Normalize(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestVec3CrossOrthogonal(t *testing.T) {
	x, y := V3(1, 0, 0), V3(0, 1, 0)
	z := x.Cross(y)
	if !vec3Close(z, V3(0, 0, 1), 1e-9) {
		t.Errorf("x cross y = %v, want (0,0,1)", z)
	}
}

func TestVec4PerspectiveDivide(t *testing.T) {
	v := V4(2, 4, 6, 2)
	got := v.PerspectiveDivide()
	if !vec3Close(got, V3(1, 2, 3), 1e-9) {
		t.Errorf("PerspectiveDivide = %v, want (1,2,3)", got)
	}
}

func TestVec4PerspectiveDivideZeroW(t *testing.T) {
	v := V4(2, 4, 6, 0)
	got := v.PerspectiveDivide()
	if !vec3Close(got, V3(2, 4, 6), 1e-9) {
		t.Errorf("PerspectiveDivide with w=0 should pass xyz through unscaled, got %v", got)
	}
}

func TestMat4IdentityIsNoOp(t *testing.T) {
	v := V3(1, 2, 3)
	got := Identity().MulVec3(v)
	if !vec3Close(got, v, 1e-9) {
		t.Errorf("Identity().MulVec3(%v) = %v, want unchanged", v, got)
	}
}

func TestMat4TranslateThenInverseIsIdentity(t *testing.T) {
	m := Translate(3, -2, 5)
	inv := m.Inverse()
	got := inv.MulVec3(m.MulVec3(V3(1, 1, 1)))
	if !vec3Close(got, V3(1, 1, 1), 1e-6) {
		t.Errorf("Translate then Inverse roundtrip = %v, want (1,1,1)", got)
	}
}

func TestMat4RotateYPreservesLength(t *testing.T) {
	v := V3(1, 0, 0)
	got := RotateY(math.Pi / 2).MulVec3Dir(v)
	if !vec3Close(got, V3(0, 0, -1), 1e-9) {
		t.Errorf("RotateY(pi/2) applied to (1,0,0) = %v, want (0,0,-1)", got)
	}
}

func TestMat4SingularInverseIsIdentity(t *testing.T) {
	var zero Mat4
	got := zero.Inverse()
	if got != Identity() {
		t.Errorf("Inverse of a singular matrix should fail soft to Identity, got %v", got)
	}
}

func TestMat4MulAssociativity(t *testing.T) {
	a := Translate(1, 2, 3)
	b := RotateX(0.5)
	c := ScaleUniform(2)

	left := a.Mul(b).Mul(c)
	right := a.Mul(b.Mul(c))

	v := V3(1, 1, 1)
	lv := left.MulVec3(v)
	rv := right.MulVec3(v)
	if !vec3Close(lv, rv, 1e-9) {
		t.Errorf("matrix multiplication not associative: %v vs %v", lv, rv)
	}
}

func TestColorScaleSaturates(t *testing.T) {
	c := RGB(200, 200, 200)
	got := c.Scale(2.0)
	if got.R != 255 || got.G != 255 || got.B != 255 {
		t.Errorf("Scale(2.0) on (200,200,200) should saturate to 255s, got %v", got)
	}
}

func TestColorScaleLeavesAlphaUntouched(t *testing.T) {
	c := RGBA(100, 100, 100, 42)
	got := c.Scale(0.5)
	if got.A != 42 {
		t.Errorf("Scale should not touch alpha, got A=%d", got.A)
	}
}

func TestColorAddSaturates(t *testing.T) {
	got := RGB(200, 10, 0).Add(RGB(100, 10, 0))
	if got.R != 255 || got.G != 20 {
		t.Errorf("Add should saturate channel-wise, got %v", got)
	}
}

func TestColorMulIsModulation(t *testing.T) {
	white := RGB(255, 255, 255)
	half := RGB(128, 128, 128)
	got := white.Mul(half)
	if got.R < 126 || got.R > 129 {
		t.Errorf("white.Mul(half) should be approximately half, got R=%d", got.R)
	}
}

func TestColorPackUnpackRoundTrip(t *testing.T) {
	c := RGBA(10, 20, 30, 40)
	got := Unpack(c.Pack())
	if got != c {
		t.Errorf("Pack/Unpack round trip = %v, want %v", got, c)
	}
}

func TestColorLerpEndpoints(t *testing.T) {
	a, b := RGB(0, 0, 0), RGB(255, 255, 255)
	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp at t=0 should equal a, got %v", got)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp at t=1 should equal b, got %v", got)
	}
}
