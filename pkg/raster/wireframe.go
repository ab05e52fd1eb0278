package raster

import "github.com/lumenforge/raster3d/pkg/vmath"

// drawWireframeEdges draws the three screen-space edges of a clipped
// sub-triangle with Bresenham, colored white for a front-facing edge
// and red for a back-facing one — matching original_source's
// wireframe debug coloring (normal.dot(viewDir) sign).
func (r *Rasterizer) drawWireframeEdges(a, b, c screenVertex, facingRatio float64) {
	color := vmath.White
	if facingRatio <= 0 {
		color = vmath.RGB(255, 0, 0)
	}
	r.fb.DrawLine(int(a.x), int(a.y), int(b.x), int(b.y), color)
	r.fb.DrawLine(int(b.x), int(b.y), int(c.x), int(c.y), color)
	r.fb.DrawLine(int(c.x), int(c.y), int(a.x), int(a.y), color)
}
