package raster

import (
	"fmt"

	"github.com/lumenforge/raster3d/pkg/vmath"
)

// Rasterizer is the pipeline orchestrator: it owns the framebuffer and
// shadow map exclusively (callers never mutate them directly) and
// exposes the draw primitives described in spec.md §6. It is not safe
// for concurrent use — see the single-threaded scheduling model of
// §5.
type Rasterizer struct {
	fb             *Framebuffer
	shadowMap      *ShadowMap
	state          ShaderState
	shadowsEnabled bool
	wireframeMode  bool
	logger         Logger
}

// New constructs a Rasterizer with a W x H framebuffer. W and H must
// both be positive; this is a configuration error and panics rather
// than failing at draw time, matching spec.md §7's "fail at
// construction... this is a programmer error".
func New(width, height int) *Rasterizer {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("raster: invalid framebuffer size %dx%d", width, height))
	}
	return &Rasterizer{
		fb:        newFramebuffer(width, height),
		shadowMap: newShadowMap(ShadowMapSize),
		logger:    noopLogger{},
	}
}

// SetLogger installs the sink used for Debug/Verbose diagnostics
// emitted by the inner loop (geometry-degenerate skips). A nil logger
// silences output.
func (r *Rasterizer) SetLogger(l Logger) {
	if l == nil {
		l = noopLogger{}
	}
	r.logger = l
}

// SetCamera pulls the view/projection matrices and world position from
// cam into the shader state consumed by the next RenderMesh call.
func (r *Rasterizer) SetCamera(cam Camera) {
	r.state.View = cam.ViewMatrix()
	r.state.Projection = cam.ProjectionMatrix()
	r.state.CameraPos = cam.Position()
}

// SetLights installs the light list consumed by the next RenderMesh
// call, truncating to maxLights and logging if the caller exceeded it.
func (r *Rasterizer) SetLights(lights []Light) {
	if len(lights) > maxLights {
		r.logger.Debug(fmt.Sprintf("truncating %d lights to the %d-light bound", len(lights), maxLights))
		lights = lights[:maxLights]
	}
	r.state.Lights = lights
}

// Clear resets the color buffer to c and the depth buffer to 1.0.
func (r *Rasterizer) Clear(c vmath.Color) {
	r.fb.Clear(c)
}

// SetShadowsEnabled toggles whether RenderMesh samples the shadow map.
// It does not reset the shadow map; call BeginShadowPass for that.
func (r *Rasterizer) SetShadowsEnabled(enabled bool) {
	r.shadowsEnabled = enabled
	r.state.ShadowsEnabled = enabled
}

// SetWireframeMode toggles wireframe overlay and disables backface
// culling while active, matching §4.4's "cull iff ... and wireframe
// mode is off".
func (r *Rasterizer) SetWireframeMode(enabled bool) {
	r.wireframeMode = enabled
}

// ColorBuffer returns the packed color buffer for presentation.
func (r *Rasterizer) ColorBuffer() []uint32 {
	return r.fb.ColorBuffer()
}

func requireValidMesh(mesh Mesh) {
	if mesh == nil {
		panic("raster: nil mesh")
	}
}

func requireValidShader(shader Shader) {
	if shader == nil {
		panic("raster: nil shader")
	}
}

func validTriangleIndices(tri MeshTriangle, vertexCount int) bool {
	return tri.A >= 0 && tri.A < vertexCount &&
		tri.B >= 0 && tri.B < vertexCount &&
		tri.C >= 0 && tri.C < vertexCount
}

func vertexInputFrom(v MeshVertex) VertexInput {
	return VertexInput{Position: v.Position, Normal: v.Normal, TexCoord: v.TexCoord, Color: v.Color}
}

// RenderMesh runs the full per-triangle pipeline of §4.8: vertex
// stage, backface cull, homogeneous clip, fan-triangulate, and
// perspective-correct scan conversion with depth test. Degenerate
// triangles (out-of-range indices, fully culled, fully clipped) are
// skipped silently with a Debug log line — nothing about a degenerate
// triangle is a raised failure.
func (r *Rasterizer) RenderMesh(mesh Mesh, shader Shader) {
	requireValidMesh(mesh)
	requireValidShader(shader)

	r.state.Model = mesh.ModelMatrix()

	if !r.meshInFrustum(mesh) {
		r.logger.Debug("skipping mesh entirely: bounds miss the camera frustum")
		return
	}

	verts := mesh.Vertices()
	tris := mesh.Triangles()

	r.logger.Debug(fmt.Sprintf("rendering mesh: %d vertices, %d triangles", len(verts), len(tris)))

	for _, tri := range tris {
		if !validTriangleIndices(tri, len(verts)) {
			r.logger.Debug("skipping triangle with out-of-range index")
			continue
		}

		in0 := vertexInputFrom(verts[tri.A])
		in1 := vertexInputFrom(verts[tri.B])
		in2 := vertexInputFrom(verts[tri.C])

		out0 := shader.Vertex(in0, &r.state)
		out1 := shader.Vertex(in1, &r.state)
		out2 := shader.Vertex(in2, &r.state)

		centroid := out0.WorldPos.Add(out1.WorldPos).Add(out2.WorldPos).Scale(1.0 / 3)
		viewDir := r.state.CameraPos.Sub(centroid).Normalize()

		faceNormal := out1.WorldPos.Sub(out0.WorldPos).Cross(out2.WorldPos.Sub(out0.WorldPos)).Normalize()
		avgNormal := out0.Normal.Add(out1.Normal).Add(out2.Normal).Normalize()

		facingRatio := faceNormal.Dot(viewDir)
		best := facingRatio
		if v := avgNormal.Dot(viewDir); v > best {
			best = v
		}

		if !r.wireframeMode && best < backfaceThreshold {
			r.logger.Debug("triangle culled by backface test")
			continue
		}

		clipped := clipTriangle(out0, out1, out2)
		if len(clipped) < 3 {
			r.logger.Debug("triangle clipped away entirely")
			continue
		}

		for i := 1; i < len(clipped)-1; i++ {
			sv0 := toScreenVertex(clipped[0], r.fb.Width, r.fb.Height)
			sv1 := toScreenVertex(clipped[i], r.fb.Width, r.fb.Height)
			sv2 := toScreenVertex(clipped[i+1], r.fb.Width, r.fb.Height)

			r.rasterizeTriangle(sv0, sv1, sv2, shader, facingRatio)

			if r.wireframeMode {
				r.drawWireframeEdges(sv0, sv1, sv2, facingRatio)
			}
		}
	}
}

// meshInFrustum is a cheap whole-mesh reject: it transforms mesh's
// local-space AABB into world space by the current model matrix and
// tests it against the camera's view frustum, extracted from the
// current projection*view matrix. It is a conservative
// over-approximation (a rotated box's transformed AABB is larger than
// the box itself), so it can only ever skip a mesh that would have
// produced zero pixels anyway; it never substitutes for per-triangle
// clipping against the near plane.
func (r *Rasterizer) meshInFrustum(mesh Mesh) bool {
	min, max := mesh.Bounds()
	box := aabb{min: min, max: max}.transform(r.state.Model)
	f := newFrustumFromMatrix(r.state.Projection.Mul(r.state.View))
	return f.intersectAABB(box)
}
