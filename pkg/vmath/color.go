package vmath

// Color is an RGBA color in 8-bit channels. Unlike a plain color.RGBA
// alias, arithmetic on Color saturates at 0 and 255 instead of wrapping,
// since shader accumulation (ambient+diffuse+specular, PCF-weighted
// sums) routinely overshoots 1.0 before the final clamp.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 0xFF}
}

// RGBA returns a color with an explicit alpha channel.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// White, Black and Gray are commonly-reused constants.
var (
	White = RGB(255, 255, 255)
	Black = RGB(0, 0, 0)
	Gray  = RGB(128, 128, 128)
)

func saturate8(v int32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Add returns the saturating sum c + o, channel-wise.
func (c Color) Add(o Color) Color {
	return Color{
		R: saturate8(int32(c.R) + int32(o.R)),
		G: saturate8(int32(c.G) + int32(o.G)),
		B: saturate8(int32(c.B) + int32(o.B)),
		A: saturate8(int32(c.A) + int32(o.A)),
	}
}

// Scale returns c with each channel multiplied by s, saturated to [0,255].
// Alpha is left untouched — lighting accumulation never touches opacity.
func (c Color) Scale(s float64) Color {
	if s < 0 {
		s = 0
	}
	return Color{
		R: saturate8(int32(float64(c.R) * s)),
		G: saturate8(int32(float64(c.G) * s)),
		B: saturate8(int32(float64(c.B) * s)),
		A: c.A,
	}
}

// Mul returns the per-channel product of c and o, each normalized to
// [0,1] before multiplying (modulation, as used for light.color * albedo).
func (c Color) Mul(o Color) Color {
	mul := func(a, b uint8) uint8 {
		return uint8((uint32(a) * uint32(b)) / 255)
	}
	return Color{
		R: mul(c.R, o.R),
		G: mul(c.G, o.G),
		B: mul(c.B, o.B),
		A: c.A,
	}
}

// WithAlpha returns c with its alpha channel replaced.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// Pack encodes c into a single uint32 as 0xAABBGGRR (red in the low byte).
// The exact byte order is an implementation choice; Unpack(Pack(c)) == c
// is the only contract callers may rely on.
func (c Color) Pack() uint32 {
	return uint32(c.R) | uint32(c.G)<<8 | uint32(c.B)<<16 | uint32(c.A)<<24
}

// Unpack decodes a uint32 produced by Pack back into a Color.
func Unpack(v uint32) Color {
	return Color{
		R: uint8(v),
		G: uint8(v >> 8),
		B: uint8(v >> 16),
		A: uint8(v >> 24),
	}
}

// Lerp returns the linear interpolation between c and o at t, per channel.
func (c Color) Lerp(o Color, t float64) Color {
	lerp := func(a, b uint8) uint8 {
		return saturate8(int32(float64(a) + (float64(b)-float64(a))*t))
	}
	return Color{
		R: lerp(c.R, o.R),
		G: lerp(c.G, o.G),
		B: lerp(c.B, o.B),
		A: lerp(c.A, o.A),
	}
}
