package raster

import (
	"testing"

	"github.com/lumenforge/raster3d/pkg/vmath"
)

func TestFramebufferClearSetsColorAndDepth(t *testing.T) {
	fb := newFramebuffer(4, 4)
	fb.Clear(vmath.RGB(10, 20, 30))

	if got := vmath.Unpack(fb.color[0]); got.R != 10 || got.G != 20 || got.B != 30 {
		t.Errorf("Clear did not set color buffer, got %v", got)
	}
	if fb.depthAt(0, 0) != 1.0 {
		t.Errorf("Clear should reset depth to the far sentinel 1.0, got %v", fb.depthAt(0, 0))
	}
}

func TestFramebufferSetPixelOutOfBoundsIsNoOp(t *testing.T) {
	fb := newFramebuffer(2, 2)
	fb.Clear(vmath.Black)
	fb.SetPixel(-1, 0, vmath.White) // must not panic
	fb.SetPixel(5, 5, vmath.White)  // must not panic
	fb.SetPixel(0, 0, vmath.White)

	if got := vmath.Unpack(fb.color[0]); got != vmath.White {
		t.Errorf("in-bounds SetPixel should still take effect, got %v", got)
	}
}

func TestFramebufferSetPixelDepthOverwritesColorAndDepth(t *testing.T) {
	fb := newFramebuffer(2, 2)
	fb.Clear(vmath.Black)
	fb.setPixelDepth(1, 1, vmath.RGB(1, 2, 3), 0.5)

	if fb.depthAt(1, 1) != 0.5 {
		t.Errorf("setPixelDepth should update depth, got %v", fb.depthAt(1, 1))
	}
	if got := vmath.Unpack(fb.color[1*2+1]); got.R != 1 {
		t.Errorf("setPixelDepth should update color, got %v", got)
	}
}

func TestFramebufferDrawLineStaysInBounds(t *testing.T) {
	fb := newFramebuffer(10, 10)
	fb.Clear(vmath.Black)
	fb.DrawLine(-5, -5, 15, 15, vmath.White) // must not panic despite out-of-range endpoints

	if vmath.Unpack(fb.color[0*10+0]) != vmath.White {
		t.Error("DrawLine should still paint the in-bounds portion of the segment")
	}
}

func TestFramebufferColorBufferLength(t *testing.T) {
	fb := newFramebuffer(8, 6)
	if got := len(fb.ColorBuffer()); got != 48 {
		t.Errorf("ColorBuffer length = %d, want 48", got)
	}
}
