package raster

import "github.com/lumenforge/raster3d/pkg/vmath"

// clipPlane evaluates the signed boundary function for one of the six
// clip-space half-spaces; a point is inside the half-space iff the
// result is >= 0.
type clipPlane func(p vmath.Vec4) float64

// clipPlanes lists the six half-spaces in the same order the reference
// renderer clips against them: both X planes, both Y planes, the near
// plane, then the far plane. The reference's near/far inside-tests
// both special-cased away the sign parameter they were called with
// (case 2 always tested z >= -w regardless of sign, case 3 always
// tested z <= w); here that's just what the canonical planes are,
// with no leftover sign parameter to misread.
var clipPlanes = [6]clipPlane{
	func(p vmath.Vec4) float64 { return p.W - p.X },  // x <= w
	func(p vmath.Vec4) float64 { return p.W + p.X },  // -x <= w
	func(p vmath.Vec4) float64 { return p.W - p.Y },  // y <= w
	func(p vmath.Vec4) float64 { return p.W + p.Y },  // -y <= w
	func(p vmath.Vec4) float64 { return p.Z + p.W },  // z >= -w (near)
	func(p vmath.Vec4) float64 { return p.W - p.Z },  // z <= w (far)
}

// clipVertex pairs a clip-space position with the full interpolant
// record it was produced from; position and attributes are always cut
// together so attribute interpolation survives clipping.
type clipVertex struct {
	pos vmath.Vec4
	rec Interpolant
}

func lerpClipVertex(a, b clipVertex, t float64) clipVertex {
	return clipVertex{
		pos: a.pos.Lerp(b.pos, t),
		rec: a.rec.Lerp(b.rec, t),
	}
}

// clipAgainstPlane runs one pass of Sutherland-Hodgman against a
// single half-space.
func clipAgainstPlane(verts []clipVertex, plane clipPlane) []clipVertex {
	if len(verts) == 0 {
		return nil
	}
	out := make([]clipVertex, 0, len(verts)+1)
	prev := verts[len(verts)-1]
	prevF := plane(prev.pos)
	for _, curr := range verts {
		currF := plane(curr.pos)
		prevIn := prevF >= 0
		currIn := currF >= 0

		switch {
		case prevIn && currIn:
			out = append(out, curr)
		case !prevIn && currIn:
			t := clampf(prevF/(prevF-currF), 0, 1)
			out = append(out, lerpClipVertex(prev, curr, t), curr)
		case prevIn && !currIn:
			t := clampf(prevF/(prevF-currF), 0, 1)
			out = append(out, lerpClipVertex(prev, curr, t))
		}

		prev, prevF = curr, currF
	}
	return out
}

// clipTriangle clips a triangle against all six clip-space half-spaces
// in order, carrying the full interpolant record through every cut.
// The result is a convex polygon of at most 9 vertices; fewer than 3
// means the triangle is entirely outside the view volume and the
// caller should skip it.
func clipTriangle(a, b, c Interpolant) []clipVertex {
	verts := []clipVertex{
		{pos: a.ClipPos, rec: a},
		{pos: b.ClipPos, rec: b},
		{pos: c.ClipPos, rec: c},
	}
	for _, plane := range clipPlanes {
		verts = clipAgainstPlane(verts, plane)
		if len(verts) == 0 {
			return nil
		}
	}
	return verts
}
