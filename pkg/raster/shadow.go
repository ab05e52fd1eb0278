package raster

import (
	"math"

	"github.com/lumenforge/raster3d/pkg/vmath"
)

const (
	// ShadowMapSize is the side length in texels of the shadow depth
	// buffer. 2048 is the reference size (Carmen-Shannon-oxy-go's
	// light.ShadowMapResolution default), within spec.md's 1024-4096
	// typical range.
	ShadowMapSize = 2048

	// shadowHalfExtent, shadowNear, shadowFar size the orthographic
	// light frustum used to build the light projection matrix,
	// grounded on the same package's DefaultShadowHalfExtent/Near/Far.
	shadowHalfExtent = 20.0
	shadowNear       = 0.1
	shadowFar        = 100.0

	// shadowDepthBias is the constant bias subtracted from the fragment's
	// light-space depth before it is compared with the stored depth
	// during PCF occlusion testing (spec.md §4.6 step 4).
	shadowDepthBias = 1e-2

	// shadowWEpsilon below this |w| the light-clip transform is
	// considered degenerate and the fragment is treated as unshadowed.
	shadowWEpsilon = 1e-4

	// shadowPCFRadius gives a (2*radius+1)^2 = 49-sample kernel,
	// matching spec.md §4.6's reference k=3.
	shadowPCFRadius = 3
)

// ShadowMap is a square depth-only buffer rendered from a light's
// viewpoint, plus the matrices used to produce and sample it.
type ShadowMap struct {
	Size         int
	depth        []float32
	lightView    vmath.Mat4
	lightProj    vmath.Mat4
	shadowMatrix vmath.Mat4
}

func newShadowMap(size int) *ShadowMap {
	sm := &ShadowMap{Size: size, depth: make([]float32, size*size)}
	sm.reset()
	return sm
}

func (sm *ShadowMap) reset() {
	for i := range sm.depth {
		sm.depth[i] = 1.0
	}
}

func (sm *ShadowMap) setMatrices(view, proj vmath.Mat4) {
	sm.lightView = view
	sm.lightProj = proj
	sm.shadowMatrix = proj.Mul(view)
}

func (sm *ShadowMap) depthAt(x, y int) float32 {
	return sm.depth[y*sm.Size+x]
}

func (sm *ShadowMap) writeMin(x, y int, z float32) {
	idx := y*sm.Size + x
	if z < sm.depth[idx] {
		sm.depth[idx] = z
	}
}

// BeginShadowPass resets the shadow depth buffer to the far sentinel
// and enables shadow sampling for subsequent RenderMesh calls.
func (r *Rasterizer) BeginShadowPass() {
	r.shadowMap.reset()
	r.shadowsEnabled = true
	r.state.ShadowsEnabled = true
}

// RenderShadowMap renders mesh's depth into the shadow map as seen
// from a light at lightPos looking along lightDir, using an
// orthographic light projection (the reference design for directional
// and point-light shadow casters). Clipping against the light frustum
// is a bounding-box clamp rather than full Sutherland-Hodgman — over-draw
// outside the shadow map is bounded by the clamp, so the spec does not
// require more (§4.5 step 5).
func (r *Rasterizer) RenderShadowMap(mesh Mesh, lightPos, lightDir vmath.Vec3) {
	requireValidMesh(mesh)

	view := vmath.LookAt(lightPos, lightPos.Add(lightDir), vmath.Up())
	proj := vmath.Orthographic(-shadowHalfExtent, shadowHalfExtent, -shadowHalfExtent, shadowHalfExtent, shadowNear, shadowFar)
	r.shadowMap.setMatrices(view, proj)
	r.state.LightView = view
	r.state.LightProjection = proj

	model := mesh.ModelMatrix()
	lightClip := proj.Mul(view)
	verts := mesh.Vertices()

	for _, tri := range mesh.Triangles() {
		if !validTriangleIndices(tri, len(verts)) {
			r.logger.Debug("shadow pass: skipping triangle with out-of-range index")
			continue
		}

		p0 := model.MulVec3(verts[tri.A].Position)
		p1 := model.MulVec3(verts[tri.B].Position)
		p2 := model.MulVec3(verts[tri.C].Position)

		c0 := lightClip.MulVec4(p0.V4(1))
		c1 := lightClip.MulVec4(p1.V4(1))
		c2 := lightClip.MulVec4(p2.V4(1))

		if c0.W == 0 || c1.W == 0 || c2.W == 0 {
			continue
		}

		s0 := r.shadowScreen(c0)
		s1 := r.shadowScreen(c1)
		s2 := r.shadowScreen(c2)

		r.rasterizeShadowTriangle(s0, s1, s2)
	}
}

type shadowScreenVertex struct {
	x, y float64
	z    float64
}

func (r *Rasterizer) shadowScreen(clip vmath.Vec4) shadowScreenVertex {
	ndc := clip.PerspectiveDivide()
	size := float64(r.shadowMap.Size)
	return shadowScreenVertex{
		x: (ndc.X + 1) / 2 * size,
		y: (1 - ndc.Y) / 2 * size,
		z: (ndc.Z + 1) / 2,
	}
}

func (r *Rasterizer) rasterizeShadowTriangle(a, b, c shadowScreenVertex) {
	size := r.shadowMap.Size
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
	if maxX > size-1 {
		maxX = size - 1
	}
	if maxY > size-1 {
		maxY = size - 1
	}

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
			z := alpha*a.z + beta*b.z + gamma*c.z
			r.shadowMap.writeMin(x, y, float32(z))
		}
	}
}

// sampleShadow performs the percentage-closer-filtered shadow lookup
// for a world-space fragment position, returning a factor in
// [0.15, 1.0] (spec.md §8 property 7).
func (r *Rasterizer) sampleShadow(worldPos vmath.Vec3) float64 {
	sm := r.shadowMap
	clip := sm.shadowMatrix.MulVec4(worldPos.V4(1))
	if math.Abs(clip.W) < shadowWEpsilon {
		return 1.0
	}

	ndc := clip.PerspectiveDivide()
	x := (ndc.X + 1) * 0.5
	y := (1 - ndc.Y) * 0.5
	z := (ndc.Z + 1) * 0.5

	if x < 0 || x > 1 || y < 0 || y > 1 || z > 1 {
		return 1.0
	}

	tx := int(math.Floor(x * float64(sm.Size-1)))
	ty := int(math.Floor(y * float64(sm.Size-1)))

	occluded, total := 0, 0
	for dy := -shadowPCFRadius; dy <= shadowPCFRadius; dy++ {
		for dx := -shadowPCFRadius; dx <= shadowPCFRadius; dx++ {
			sx, sy := tx+dx, ty+dy
			if sx < 0 || sx >= sm.Size || sy < 0 || sy >= sm.Size {
				continue
			}
			total++
			stored := float64(sm.depthAt(sx, sy))
			if z-shadowDepthBias > stored {
				occluded++
			}
		}
	}

	if total == 0 {
		return 1.0
	}

	ratio := float64(occluded) / float64(total)
	factor := 1 - ratio*0.85
	if occluded > 0 && factor > 0.5 {
		factor = 0.5
	}
	return factor
}
