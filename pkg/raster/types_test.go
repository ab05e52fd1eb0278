package raster

import (
	"testing"

	"github.com/lumenforge/raster3d/pkg/vmath"
)

func TestInterpolantLerpEndpoints(t *testing.T) {
	a := Interpolant{WorldPos: vmath.V3(0, 0, 0), Color: vmath.RGB(0, 0, 0)}
	b := Interpolant{WorldPos: vmath.V3(10, 0, 0), Color: vmath.RGB(255, 0, 0)}

	if got := a.Lerp(b, 0); got.WorldPos != a.WorldPos || got.Color != a.Color {
		t.Errorf("Lerp at t=0 should equal a, got %+v", got)
	}
	if got := a.Lerp(b, 1); got.WorldPos != b.WorldPos || got.Color != b.Color {
		t.Errorf("Lerp at t=1 should equal b, got %+v", got)
	}
}

func TestInterpolantLerpMidpoint(t *testing.T) {
	a := Interpolant{WorldPos: vmath.V3(0, 0, 0), Color: vmath.RGB(0, 0, 0)}
	b := Interpolant{WorldPos: vmath.V3(10, 0, 0), Color: vmath.RGB(100, 0, 0)}

	got := a.Lerp(b, 0.5)
	if got.WorldPos.X != 5 {
		t.Errorf("Lerp midpoint WorldPos.X = %v, want 5", got.WorldPos.X)
	}
	if got.Color.R != 50 {
		t.Errorf("Lerp midpoint Color.R = %v, want 50", got.Color.R)
	}
}

func TestInterpolantBaryAtVertex(t *testing.T) {
	a := Interpolant{Color: vmath.RGB(255, 0, 0)}
	b := Interpolant{Color: vmath.RGB(0, 255, 0)}
	c := Interpolant{Color: vmath.RGB(0, 0, 255)}

	got := Bary(a, b, c, 1, 0, 0)
	if got.Color != a.Color {
		t.Errorf("Bary with weight (1,0,0) should reproduce a exactly, got %v", got.Color)
	}
}

func TestInterpolantBaryWeightsPartitionColor(t *testing.T) {
	a := Interpolant{Color: vmath.RGB(255, 0, 0)}
	b := Interpolant{Color: vmath.RGB(0, 255, 0)}
	c := Interpolant{Color: vmath.RGB(0, 0, 255)}

	got := Bary(a, b, c, 1.0/3, 1.0/3, 1.0/3)
	if got.Color.R < 83 || got.Color.R > 86 {
		t.Errorf("equal-weight Bary should split each channel roughly evenly, got %v", got.Color)
	}
}

func TestCombineWeightsEachChannel(t *testing.T) {
	recs := []Interpolant{
		{Color: vmath.RGB(100, 0, 0)},
		{Color: vmath.RGB(0, 100, 0)},
	}
	got := Combine([]float64{0.25, 0.75}, recs)
	if got.Color.R != 25 || got.Color.G != 75 {
		t.Errorf("Combine should weight each channel by its given weight, got %v", got.Color)
	}
}
