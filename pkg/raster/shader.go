package raster

import (
	"math"

	"github.com/lumenforge/raster3d/pkg/vmath"
)

// VertexInput is what the vertex stage consumes for one mesh vertex.
type VertexInput struct {
	Position vmath.Vec3
	Normal   vmath.Vec3
	TexCoord vmath.Vec2
	Color    vmath.Color
}

// FragmentInput is what a fragment shader consumes for one covered
// pixel: already perspective-correctly interpolated and with the
// shadow lookup resolved.
type FragmentInput struct {
	WorldPos     vmath.Vec3
	Normal       vmath.Vec3
	TexCoord     vmath.Vec2
	Color        vmath.Color
	ShadowFactor float64
}

// ShaderState holds everything a draw call needs besides the mesh
// itself: matrices, camera position, and lights. It is owned by the
// Rasterizer and mutated between draws by SetCamera/SetLights (Model is
// taken from each mesh as RenderMesh begins); it is read-only for the
// duration of a single draw call.
type ShaderState struct {
	Model, View, Projection    vmath.Mat4
	LightView, LightProjection vmath.Mat4
	CameraPos                  vmath.Vec3
	Lights                     []Light
	ShadowsEnabled             bool
}

// Shader is the capability set the pipeline orchestrator dispatches
// through for every triangle: a vertex stage producing an interpolant
// record, and a fragment stage producing a color. FlatColorShader,
// PhongBlinnShader, and ToonShader below are the contract — this is
// deliberately not a plugin system for arbitrary user shaders.
type Shader interface {
	Vertex(in VertexInput, state *ShaderState) Interpolant
	Fragment(in FragmentInput, state *ShaderState) vmath.Color
}

// vertexStage implements the §4.1 vertex contract shared by every
// built-in shader; each built-in embeds it and supplies its own
// fragment stage.
type vertexStage struct{}

func (vertexStage) Vertex(in VertexInput, state *ShaderState) Interpolant {
	worldPos := state.Model.MulVec4(in.Position.V4(1)).Vec3()
	clipPos := state.Projection.Mul(state.View).MulVec4(worldPos.V4(1))

	// Transformed directly by the model matrix, not its
	// inverse-transpose — exact under rigid/uniform-scale transforms,
	// and the spec reserves substituting the inverse-transpose under
	// non-uniform scaling without that being a behavior change for the
	// reference scenes.
	normal := state.Model.MulVec4(in.Normal.V4(0)).Vec3().Normalize()

	var shadowPos vmath.Vec4
	if state.ShadowsEnabled {
		shadowPos = state.LightProjection.Mul(state.LightView).MulVec4(worldPos.V4(1))
	}

	return Interpolant{
		ClipPos:   clipPos,
		WorldPos:  worldPos,
		Normal:    normal,
		TexCoord:  in.TexCoord,
		Color:     in.Color,
		ShadowPos: shadowPos,
	}
}

// FlatColorShader passes the vertex color through unshaded.
type FlatColorShader struct{ vertexStage }

func (FlatColorShader) Fragment(in FragmentInput, _ *ShaderState) vmath.Color {
	return in.Color
}

// PhongBlinnShader is ambient + per-light diffuse/specular with
// per-light-type attenuation, matching original_source's PhongShader.
type PhongBlinnShader struct {
	vertexStage
	Ambient   float64
	Diffuse   float64
	Specular  float64
	Shininess float64
}

// NewPhongBlinnShader returns a PhongBlinnShader with the reference's
// default material constants.
func NewPhongBlinnShader() *PhongBlinnShader {
	return &PhongBlinnShader{Ambient: 0.2, Diffuse: 0.7, Specular: 0.5, Shininess: 32}
}

func (s *PhongBlinnShader) Fragment(in FragmentInput, state *ShaderState) vmath.Color {
	base := in.Color
	result := base.Scale(s.Ambient)

	n := in.Normal
	viewDir := state.CameraPos.Sub(in.WorldPos).Normalize()

	for _, light := range state.Lights {
		dir, att := light.attenuate(in.WorldPos)
		if att <= 0 {
			continue
		}

		diffuseFactor := math.Max(0, n.Dot(dir))
		diffuse := base.Scale(diffuseFactor * s.Diffuse * light.Intensity * att)

		specular := vmath.Black
		if diffuseFactor > 0 {
			reflectDir := n.Scale(2 * n.Dot(dir)).Sub(dir).Normalize()
			specFactor := math.Pow(math.Max(0, viewDir.Dot(reflectDir)), s.Shininess)
			specular = vmath.White.Scale(specFactor * s.Specular * light.Intensity * att)
		}

		diffuse = diffuse.Mul(light.Color).Scale(in.ShadowFactor)
		specular = specular.Mul(light.Color).Scale(in.ShadowFactor)

		result = result.Add(diffuse).Add(specular)
	}
	return result
}

// ToonShader is a cel-shaded variant: quantized diffuse bands,
// binary-quantized specular, a black silhouette outline near grazing
// angles, and a stepped (rather than graded) shadow factor. Matches
// original_source's ToonShader exactly, including its near-horizontal
// special cases for ground-plane-like faces (|N.y| > 0.99).
type ToonShader struct {
	vertexStage
	Ambient          float64
	Diffuse          float64
	Specular         float64
	Shininess        float64
	Levels           float64
	OutlineThreshold float64
	OutlineColor     vmath.Color
	OutlineEnabled   bool
}

// NewToonShader returns a ToonShader with the reference's defaults.
func NewToonShader() *ToonShader {
	return &ToonShader{
		Ambient:          0.2,
		Diffuse:          0.8,
		Specular:         0.5,
		Shininess:        32,
		Levels:           4,
		OutlineThreshold: 0.3,
		OutlineColor:     vmath.Black,
		OutlineEnabled:   true,
	}
}

func (s *ToonShader) Fragment(in FragmentInput, state *ShaderState) vmath.Color {
	base := in.Color
	result := base.Scale(s.Ambient)

	n := in.Normal
	viewDir := state.CameraPos.Sub(in.WorldPos).Normalize()

	if s.OutlineEnabled {
		edge := n.Dot(viewDir)
		threshold := s.OutlineThreshold
		if math.Abs(n.Y) > 0.99 {
			threshold = 0.05
		}
		if edge < threshold {
			return s.OutlineColor
		}
	}

	for _, light := range state.Lights {
		dir, att := light.attenuate(in.WorldPos)
		if att <= 0 {
			continue
		}

		diffuseFactor := math.Max(0, n.Dot(dir))
		if diffuseFactor > 0 {
			levels := s.Levels
			if math.Abs(n.Y) > 0.99 {
				levels += 2
			}
			diffuseFactor = math.Ceil(diffuseFactor*levels) / levels
		}

		diffuse := base.Scale(diffuseFactor * s.Diffuse * light.Intensity * att)

		specular := vmath.Black
		if diffuseFactor > 0 {
			reflectDir := n.Scale(2 * n.Dot(dir)).Sub(dir).Normalize()
			specFactor := math.Pow(math.Max(0, viewDir.Dot(reflectDir)), s.Shininess)
			if specFactor > 0.7 {
				specFactor = 1
			} else {
				specFactor = 0
			}
			specular = vmath.White.Scale(specFactor * s.Specular * light.Intensity * att)
		}

		diffuse = diffuse.Mul(light.Color)
		specular = specular.Mul(light.Color)

		steppedShadow := 0.5
		if math.Abs(n.Y) > 0.99 {
			if in.ShadowFactor < 0.8 {
				steppedShadow = 0.4
			} else {
				steppedShadow = 1.0
			}
		} else if in.ShadowFactor < 0.75 {
			steppedShadow = 0.5
		} else {
			steppedShadow = 1.0
		}

		diffuse = diffuse.Scale(steppedShadow)
		specular = specular.Scale(steppedShadow)

		result = result.Add(diffuse).Add(specular)
	}
	return result
}
