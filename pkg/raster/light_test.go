package raster

import (
	"math"
	"testing"

	"github.com/lumenforge/raster3d/pkg/vmath"
)

func TestDirectionalLightAttenuationIsConstant(t *testing.T) {
	l := Light{Type: LightDirectional, Direction: vmath.V3(0, -1, 0)}
	_, att := l.attenuate(vmath.V3(100, 100, 100))
	if att != 1.0 {
		t.Errorf("directional light attenuation should always be 1.0, got %v", att)
	}
}

func TestDirectionalLightDirectionIsOppositeOfItsDirection(t *testing.T) {
	l := Light{Type: LightDirectional, Direction: vmath.V3(0, -1, 0)}
	dir, _ := l.attenuate(vmath.Zero3())
	if !vec3Close(dir, vmath.V3(0, 1, 0), 1e-9) {
		t.Errorf("directional light's toward-light direction should negate Direction, got %v", dir)
	}
}

func TestPointLightAttenuatesWithDistance(t *testing.T) {
	l := Light{Type: LightPoint, Position: vmath.V3(0, 0, 0), Range: 10}

	_, attNear := l.attenuate(vmath.V3(1, 0, 0))
	_, attFar := l.attenuate(vmath.V3(8, 0, 0))
	if attNear <= attFar {
		t.Errorf("closer fragment should get a larger attenuation factor: near=%v far=%v", attNear, attFar)
	}
}

func TestPointLightBeyondRangeIsZero(t *testing.T) {
	l := Light{Type: LightPoint, Position: vmath.V3(0, 0, 0), Range: 10}
	_, att := l.attenuate(vmath.V3(20, 0, 0))
	if att != 0 {
		t.Errorf("point light beyond its range should attenuate to 0, got %v", att)
	}
}

func TestSpotLightOutsideConeIsZero(t *testing.T) {
	l := Light{
		Type:      LightSpot,
		Position:  vmath.V3(0, 5, 0),
		Direction: vmath.V3(0, -1, 0),
		Range:     10,
		SpotAngle: math.Pi / 12, // narrow 15-degree cone
	}
	// Fragment far off to the side, well outside the cone.
	_, att := l.attenuate(vmath.V3(10, 0, 0))
	if att != 0 {
		t.Errorf("fragment outside the spot cone should attenuate to 0, got %v", att)
	}
}

func TestSpotLightInsideConeIsPositive(t *testing.T) {
	l := Light{
		Type:      LightSpot,
		Position:  vmath.V3(0, 5, 0),
		Direction: vmath.V3(0, -1, 0),
		Range:     10,
		SpotAngle: math.Pi / 4,
	}
	_, att := l.attenuate(vmath.V3(0, 0, 0))
	if att <= 0 {
		t.Errorf("fragment directly below a spot light should be lit, got att=%v", att)
	}
}

func vec3Close(a, b vmath.Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}
