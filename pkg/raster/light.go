package raster

import (
	"math"

	"github.com/lumenforge/raster3d/pkg/vmath"
)

// LightType tags which of the three variants a Light carries.
type LightType int

const (
	LightDirectional LightType = iota
	LightPoint
	LightSpot
)

// maxLights bounds the light list a ShaderState carries, matching
// spec.md §3's "up to a small bound, e.g. 8".
const maxLights = 8

// Light is a tagged record over the three supported light kinds.
// Which fields are meaningful depends on Type: Directional reads only
// Direction; Point reads Position and Range; Spot reads all four.
type Light struct {
	Type      LightType
	Color     vmath.Color
	Intensity float64

	Direction vmath.Vec3
	Position  vmath.Vec3
	Range     float64
	SpotAngle float64
}

// attenuate returns the unit direction from worldPos toward the light
// and the combined distance/cone attenuation factor, following the
// reference's per-light-type falloff exactly (original_source's
// PhongShader::fragmentShader / ToonShader::fragmentShader, both of
// which duplicate this switch verbatim).
func (l Light) attenuate(worldPos vmath.Vec3) (dir vmath.Vec3, att float64) {
	switch l.Type {
	case LightDirectional:
		return l.Direction.Normalize().Negate(), 1.0

	case LightPoint:
		toLight := l.Position.Sub(worldPos)
		dist := toLight.Len()
		dir = toLight.Normalize()
		if dist > l.Range {
			return dir, 0
		}
		falloff := 1 - dist/l.Range
		return dir, falloff * falloff

	case LightSpot:
		toLight := l.Position.Sub(worldPos)
		dist := toLight.Len()
		dir = toLight.Normalize()

		cosAngle := -dir.Dot(l.Direction.Normalize())
		spot := 0.0
		if cosAngle > math.Cos(l.SpotAngle) {
			spot = cosAngle * cosAngle * cosAngle * cosAngle
		}

		distAtt := 0.0
		if dist <= l.Range {
			falloff := 1 - dist/l.Range
			distAtt = falloff * falloff
		}
		return dir, spot * distAtt
	}
	return vmath.Vec3{}, 0
}
