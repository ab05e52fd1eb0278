package raster

import "github.com/lumenforge/raster3d/pkg/vmath"

// Framebuffer holds the color and depth rasters the pipeline writes
// into. Both buffers are always sized Width*Height; Clear resets color
// to a caller-supplied constant and depth to the far sentinel 1.0.
type Framebuffer struct {
	Width, Height int
	color         []uint32
	depth         []float32
}

func newFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{
		Width:  width,
		Height: height,
		color:  make([]uint32, width*height),
		depth:  make([]float32, width*height),
	}
	fb.Clear(vmath.Black)
	return fb
}

// Clear resets the color buffer to c and the depth buffer to the far
// sentinel 1.0.
func (fb *Framebuffer) Clear(c vmath.Color) {
	packed := c.Pack()
	for i := range fb.color {
		fb.color[i] = packed
	}
	for i := range fb.depth {
		fb.depth[i] = 1.0
	}
}

func (fb *Framebuffer) inBounds(x, y int) bool {
	return x >= 0 && x < fb.Width && y >= 0 && y < fb.Height
}

// SetPixel writes a color directly into the color buffer, ignoring the
// depth test. Out-of-bounds writes are silently dropped.
func (fb *Framebuffer) SetPixel(x, y int, c vmath.Color) {
	if !fb.inBounds(x, y) {
		return
	}
	fb.color[y*fb.Width+x] = c.Pack()
}

func (fb *Framebuffer) setPixelDepth(x, y int, c vmath.Color, z float32) {
	idx := y*fb.Width + x
	fb.color[idx] = c.Pack()
	fb.depth[idx] = z
}

func (fb *Framebuffer) depthAt(x, y int) float32 {
	return fb.depth[y*fb.Width+x]
}

// DrawLine rasterizes a line segment with Bresenham's algorithm,
// clipping each point against the buffer bounds as it goes.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c vmath.Color) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy

	x, y := x0, y0
	for {
		fb.SetPixel(x, y, c)
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ColorBuffer returns the packed color buffer for presentation.
func (fb *Framebuffer) ColorBuffer() []uint32 {
	return fb.color
}
