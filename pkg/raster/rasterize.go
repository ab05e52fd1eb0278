package raster

import (
	"math"

	"github.com/lumenforge/raster3d/pkg/vmath"
)

const (
	// coverageEpsilon loosens the alpha+beta+gamma<=1 coverage test so
	// pixels sitting exactly on a shared triangle edge aren't dropped
	// by floating point rounding.
	coverageEpsilon = 1e-5

	// depthBiasScale scales the slope-scaled depth bias subtracted
	// before the depth test, matching the reference's 0.00001f factor.
	depthBiasScale = 1e-5

	// viewportZEpsilon keeps mapped depth off the exact 0/1 sentinels,
	// matching original_source/src/rasterizer.cpp's [0.0001, 0.9999]
	// clamp (spec.md generalizes this to an implementation-chosen ε;
	// this repo fixes ε at the original's value).
	viewportZEpsilon = 1e-4

	// barycentricDegenerateEpsilon below this triangle-area denominator
	// the 2D triangle is degenerate and every pixel is skipped.
	barycentricDegenerateEpsilon = 1e-6
)

// screenVertex is a clipped vertex after perspective divide and
// viewport mapping: screen-space x/y, NDC z, and the reciprocal of the
// original clip-space w (needed for perspective-correct interpolation).
type screenVertex struct {
	x, y float64
	z    float64
	invW float64
	rec  Interpolant
}

func viewportTransform(ndc vmath.Vec3, width, height int) (x, y, z float64) {
	x = (ndc.X + 1) * 0.5 * float64(width)
	y = (1 - ndc.Y) * 0.5 * float64(height)
	z = clampf((ndc.Z+1)*0.5, viewportZEpsilon, 1-viewportZEpsilon)
	return x, y, z
}

func toScreenVertex(cv clipVertex, width, height int) screenVertex {
	invW := 0.0
	if cv.pos.W != 0 {
		invW = 1 / cv.pos.W
	}
	ndc := cv.pos.PerspectiveDivide()
	x, y, z := viewportTransform(ndc, width, height)
	return screenVertex{x: x, y: y, z: z, invW: invW, rec: cv.rec}
}

// barycentric computes the 2D barycentric weights of p against the
// screen-space triangle (a, b, c) using the edge-vector dot-product
// method. ok is false for a degenerate (zero-area) triangle.
func barycentric(a, b, c, p [2]float64) (alpha, beta, gamma float64, ok bool) {
	v0 := [2]float64{b[0] - a[0], b[1] - a[1]}
	v1 := [2]float64{c[0] - a[0], c[1] - a[1]}
	v2 := [2]float64{p[0] - a[0], p[1] - a[1]}

	d00 := v0[0]*v0[0] + v0[1]*v0[1]
	d01 := v0[0]*v1[0] + v0[1]*v1[1]
	d11 := v1[0]*v1[0] + v1[1]*v1[1]
	d20 := v2[0]*v0[0] + v2[1]*v0[1]
	d21 := v2[0]*v1[0] + v2[1]*v1[1]

	denom := d00*d11 - d01*d01
	if math.Abs(denom) < barycentricDegenerateEpsilon {
		return 0, 0, 0, false
	}

	beta = (d11*d20 - d01*d21) / denom
	gamma = (d00*d21 - d01*d20) / denom
	alpha = 1 - beta - gamma
	return alpha, beta, gamma, true
}

// rasterizeTriangle scan-converts one screen-space triangle: every
// covered pixel gets a perspective-correct attribute blend, a
// slope-scaled depth test, and (on pass) a fragment shader call.
// facingRatio is the geometric face normal dotted with the view
// direction, reused from the backface test to drive the depth bias.
func (r *Rasterizer) rasterizeTriangle(a, b, c screenVertex, shader Shader, facingRatio float64) {
	minX := int(math.Floor(min3(a.x, b.x, c.x)))
	maxX := int(math.Ceil(max3(a.x, b.x, c.x)))
	minY := int(math.Floor(min3(a.y, b.y, c.y)))
	maxY := int(math.Ceil(max3(a.y, b.y, c.y)))

	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > r.fb.Width-1 {
		maxX = r.fb.Width - 1
	}
	if maxY > r.fb.Height-1 {
		maxY = r.fb.Height - 1
	}

	bias := depthBiasScale * (1 - facingRatio)

	triA := [2]float64{a.x, a.y}
	triB := [2]float64{b.x, b.y}
	triC := [2]float64{c.x, c.y}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := [2]float64{float64(x) + 0.5, float64(y) + 0.5}
			alpha, beta, gamma, ok := barycentric(triA, triB, triC, p)
			if !ok {
				continue
			}
			if alpha < 0 || beta < 0 || gamma < 0 || alpha+beta+gamma > 1+coverageEpsilon {
				continue
			}

			wInterp := alpha*a.invW + beta*b.invW + gamma*c.invW
			if wInterp == 0 {
				continue
			}

			zInterp := (alpha*a.z*a.invW + beta*b.z*b.invW + gamma*c.z*c.invW) / wInterp
			depthValue := zInterp - bias

			if float32(depthValue) >= r.fb.depthAt(x, y) {
				continue
			}

			aP := a.invW * alpha / wInterp
			bP := b.invW * beta / wInterp
			cP := c.invW * gamma / wInterp

			rec := Bary(a.rec, b.rec, c.rec, aP, bP, cP)

			shadowFactor := 1.0
			if r.shadowsEnabled {
				shadowFactor = r.sampleShadow(rec.WorldPos)
			}

			frag := FragmentInput{
				WorldPos:     rec.WorldPos,
				Normal:       rec.Normal.Normalize(),
				TexCoord:     rec.TexCoord,
				Color:        rec.Color,
				ShadowFactor: shadowFactor,
			}

			color := shader.Fragment(frag, &r.state)
			r.fb.setPixelDepth(x, y, color, float32(depthValue))
		}
	}
}
