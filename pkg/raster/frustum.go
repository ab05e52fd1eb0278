package raster

import (
	"math"

	"github.com/lumenforge/raster3d/pkg/vmath"
)

// plane is Ax+By+Cz+D=0 with (A,B,C) the unit normal; a point is inside
// the half-space the normal points into iff distanceToPoint is >= 0.
type plane struct {
	normal vmath.Vec3
	d      float64
}

func (p *plane) normalize() {
	l := p.normal.Len()
	if l == 0 {
		return
	}
	p.normal = p.normal.Scale(1 / l)
	p.d /= l
}

func (p plane) distanceToPoint(pt vmath.Vec3) float64 {
	return p.normal.Dot(pt) + p.d
}

// frustum is the six planes of a view frustum, normals pointing inward.
type frustum struct {
	planes [6]plane
}

const (
	frustumLeft = iota
	frustumRight
	frustumBottom
	frustumTop
	frustumNear
	frustumFar
)

// matRow reads row i of m as a Vec4, via Mat4.Get rather than raw
// array indices.
func matRow(m vmath.Mat4, i int) vmath.Vec4 {
	return vmath.V4(m.Get(i, 0), m.Get(i, 1), m.Get(i, 2), m.Get(i, 3))
}

func planeFromRow(v vmath.Vec4) plane {
	return plane{normal: vmath.V3(v.X, v.Y, v.Z), d: v.W}
}

// newFrustumFromMatrix extracts the six view-frustum planes from a
// combined projection*view matrix by the Gribb/Hartmann method: each
// opposing pair of planes is the last row of m plus or minus one of
// its first three rows. Grounded on the teacher's frustum.go, which
// hand-unrolls the same six sums/differences against raw array
// indices; here the three (row, opposing-plane-pair) combinations are
// walked in a loop instead.
func newFrustumFromMatrix(m vmath.Mat4) frustum {
	last := matRow(m, 3)

	axes := [3]struct {
		plus, minus int
		row         vmath.Vec4
	}{
		{frustumLeft, frustumRight, matRow(m, 0)},
		{frustumBottom, frustumTop, matRow(m, 1)},
		{frustumNear, frustumFar, matRow(m, 2)},
	}

	var f frustum
	for _, ax := range axes {
		f.planes[ax.plus] = planeFromRow(last.Add(ax.row))
		f.planes[ax.minus] = planeFromRow(last.Add(ax.row.Scale(-1)))
	}
	for i := range f.planes {
		f.planes[i].normalize()
	}
	return f
}

// aabb is an axis-aligned bounding box in whatever space its corners
// were last computed in.
type aabb struct {
	min, max vmath.Vec3
}

// transform returns the AABB that bounds all 8 corners of a after
// being carried through m — a conservative over-approximation when m
// rotates the box, grounded on the teacher's AABB.Transform.
func (a aabb) transform(m vmath.Mat4) aabb {
	corners := [8]vmath.Vec3{
		vmath.V3(a.min.X, a.min.Y, a.min.Z),
		vmath.V3(a.max.X, a.min.Y, a.min.Z),
		vmath.V3(a.min.X, a.max.Y, a.min.Z),
		vmath.V3(a.max.X, a.max.Y, a.min.Z),
		vmath.V3(a.min.X, a.min.Y, a.max.Z),
		vmath.V3(a.max.X, a.min.Y, a.max.Z),
		vmath.V3(a.min.X, a.max.Y, a.max.Z),
		vmath.V3(a.max.X, a.max.Y, a.max.Z),
	}
	t0 := m.MulVec3(corners[0])
	out := aabb{min: t0, max: t0}
	for i := 1; i < 8; i++ {
		t := m.MulVec3(corners[i])
		out.min = out.min.Min(t)
		out.max = out.max.Max(t)
	}
	return out
}

func (a aabb) center() vmath.Vec3 {
	return a.min.Add(a.max).Scale(0.5)
}

func (a aabb) halfExtents() vmath.Vec3 {
	return a.max.Sub(a.min).Scale(0.5)
}

// intersectAABB tests if box intersects or lies inside f using the
// box-radius test: projected onto a plane's normal, box is an interval
// centered on its own center with radius r = sum of
// |normal component|*half-extent; if the center sits more than r
// behind the plane, the whole box is behind it and the box is outside
// the frustum. Equivalent to (but structured differently from) the
// teacher's Frustum.IntersectAABB, which instead picks the single
// corner furthest along each plane's normal and tests that corner
// directly.
func (f frustum) intersectAABB(box aabb) bool {
	c := box.center()
	e := box.halfExtents()
	for _, p := range f.planes {
		r := math.Abs(p.normal.X)*e.X + math.Abs(p.normal.Y)*e.Y + math.Abs(p.normal.Z)*e.Z
		if p.distanceToPoint(c) < -r {
			return false
		}
	}
	return true
}
