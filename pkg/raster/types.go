package raster

import "github.com/lumenforge/raster3d/pkg/vmath"

// Interpolant is the vertex stage's output record: everything a
// fragment needs, bundled so it can be cut by the clipper and blended
// by the rasterizer without the two having to agree on field lists
// separately. ShadowPos is the zero Vec4 when shadows are disabled.
type Interpolant struct {
	ClipPos   vmath.Vec4
	WorldPos  vmath.Vec3
	Normal    vmath.Vec3
	TexCoord  vmath.Vec2
	Color     vmath.Color
	ShadowPos vmath.Vec4
}

// Combine produces the weighted sum of recs, weight-for-weight. Colors
// are weighted in linear 0-255 space and truncated, not weighted as
// normalized floats and rescaled — matching how the clipper and
// rasterizer both blend colors. Callers are responsible for ensuring
// weights sum to 1; Combine does not renormalize.
func Combine(weights []float64, recs []Interpolant) Interpolant {
	var out Interpolant
	var r, g, b, a float64
	for i, w := range weights {
		rec := recs[i]
		out.ClipPos = out.ClipPos.Add(rec.ClipPos.Scale(w))
		out.WorldPos = out.WorldPos.Add(rec.WorldPos.Scale(w))
		out.Normal = out.Normal.Add(rec.Normal.Scale(w))
		out.TexCoord = out.TexCoord.Add(rec.TexCoord.Scale(w))
		out.ShadowPos = out.ShadowPos.Add(rec.ShadowPos.Scale(w))
		r += float64(rec.Color.R) * w
		g += float64(rec.Color.G) * w
		b += float64(rec.Color.B) * w
		a += float64(rec.Color.A) * w
	}
	out.Color = vmath.RGBA(truncate8(r), truncate8(g), truncate8(b), truncate8(a))
	return out
}

func truncate8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Lerp returns the two-point linear interpolation of a and b at t,
// built on Combine so it obeys the same linear-combination law.
func (a Interpolant) Lerp(b Interpolant, t float64) Interpolant {
	return Combine([]float64{1 - t, t}, []Interpolant{a, b})
}

// Bary returns the three-point barycentric combination of a, b, c
// weighted by wa, wb, wc (expected to sum to 1).
func Bary(a, b, c Interpolant, wa, wb, wc float64) Interpolant {
	return Combine([]float64{wa, wb, wc}, []Interpolant{a, b, c})
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func min3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func max3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
