package raster

import (
	"testing"

	"github.com/lumenforge/raster3d/pkg/vmath"
)

func TestFlatColorShaderPassesColorThrough(t *testing.T) {
	shader := FlatColorShader{}
	in := FragmentInput{Color: vmath.RGB(10, 20, 30), ShadowFactor: 1.0}
	got := shader.Fragment(in, &ShaderState{})
	if got != in.Color {
		t.Errorf("FlatColorShader.Fragment should pass the color through unchanged, got %v want %v", got, in.Color)
	}
}

func TestPhongBlinnAmbientOnlyWithNoLights(t *testing.T) {
	shader := NewPhongBlinnShader()
	in := FragmentInput{
		WorldPos:     vmath.Zero3(),
		Normal:       vmath.V3(0, 1, 0),
		Color:        vmath.RGB(200, 200, 200),
		ShadowFactor: 1.0,
	}
	state := &ShaderState{CameraPos: vmath.V3(0, 1, 0)}
	got := shader.Fragment(in, state)

	want := in.Color.Scale(shader.Ambient)
	if got != want {
		t.Errorf("with no lights, Phong-Blinn should emit exactly the ambient term: got %v, want %v", got, want)
	}
}

func TestPhongBlinnShadowFactorDimsLitSurface(t *testing.T) {
	shader := NewPhongBlinnShader()
	light := Light{Type: LightDirectional, Direction: vmath.V3(0, -1, 0), Color: vmath.White, Intensity: 1}
	state := &ShaderState{CameraPos: vmath.V3(0, 1, 0), Lights: []Light{light}}

	lit := FragmentInput{Normal: vmath.V3(0, 1, 0), Color: vmath.RGB(200, 200, 200), ShadowFactor: 1.0}
	shadowed := lit
	shadowed.ShadowFactor = 0.15

	brightColor := shader.Fragment(lit, state)
	dimColor := shader.Fragment(shadowed, state)

	brightness := func(c vmath.Color) int { return int(c.R) + int(c.G) + int(c.B) }
	if brightness(dimColor) >= brightness(brightColor) {
		t.Errorf("a lower shadow factor should darken the fragment: lit=%v shadowed=%v", brightColor, dimColor)
	}
}

func TestToonShaderQuantizesDiffuseIntoBands(t *testing.T) {
	shader := NewToonShader()
	shader.OutlineEnabled = false
	light := Light{Type: LightDirectional, Direction: vmath.V3(0, -1, 0), Color: vmath.White, Intensity: 1}
	state := &ShaderState{CameraPos: vmath.V3(0, 0, 1), Lights: []Light{light}}

	// Two slightly different normals facing the light should often land
	// in the same quantization band rather than producing a continuous
	// gradient of output colors.
	in1 := FragmentInput{Normal: vmath.V3(0, 1, 0).Normalize(), Color: vmath.RGB(200, 200, 200), ShadowFactor: 1.0}
	in2 := FragmentInput{Normal: vmath.V3(0.01, 1, 0).Normalize(), Color: vmath.RGB(200, 200, 200), ShadowFactor: 1.0}

	c1 := shader.Fragment(in1, state)
	c2 := shader.Fragment(in2, state)
	if c1 != c2 {
		t.Errorf("toon shading should quantize nearby normals into the same band: %v vs %v", c1, c2)
	}
}

func TestToonShaderOutlineAtGrazingAngle(t *testing.T) {
	shader := NewToonShader()
	// Normal nearly perpendicular to the view direction: grazing angle,
	// should hit the silhouette outline.
	in := FragmentInput{
		WorldPos:     vmath.Zero3(),
		Normal:       vmath.V3(1, 0, 0),
		Color:        vmath.RGB(200, 200, 200),
		ShadowFactor: 1.0,
	}
	state := &ShaderState{CameraPos: vmath.V3(0, 0, 1)} // viewDir is (0,0,1); N.viewDir = 0

	got := shader.Fragment(in, state)
	if got != shader.OutlineColor {
		t.Errorf("grazing-angle fragment should be painted the outline color, got %v want %v", got, shader.OutlineColor)
	}
}

func TestToonShaderNoOutlineWhenFacingCamera(t *testing.T) {
	shader := NewToonShader()
	in := FragmentInput{
		WorldPos:     vmath.Zero3(),
		Normal:       vmath.V3(0, 0, 1),
		Color:        vmath.RGB(200, 200, 200),
		ShadowFactor: 1.0,
	}
	state := &ShaderState{CameraPos: vmath.V3(0, 0, 1)}

	got := shader.Fragment(in, state)
	if got == shader.OutlineColor {
		t.Error("a fragment facing the camera head-on should not hit the outline")
	}
}
