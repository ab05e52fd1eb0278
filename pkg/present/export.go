package present

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"
)

// ToImage decodes a packed 0xAABBGGRR color buffer (as produced by
// raster.Rasterizer.ColorBuffer) into a standard image.Image for
// export or thumbnailing.
func ToImage(buffer []uint32, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := buffer[y*width+x]
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(v),
				G: uint8(v >> 8),
				B: uint8(v >> 16),
				A: uint8(v >> 24),
			})
		}
	}
	return img
}

// SaveScreenshot writes buffer to path, choosing the encoder by file
// extension. .webp and .tga are supported; any other extension is a
// configuration error.
func SaveScreenshot(buffer []uint32, width, height int, path string) error {
	img := ToImage(buffer, width, height)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("present: create %q: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".webp":
		return nativewebp.Encode(f, img, nil)
	case ".tga":
		return tga.Encode(f, img)
	default:
		return fmt.Errorf("present: unsupported screenshot extension %q", filepath.Ext(path))
	}
}

// Thumbnail downsamples buffer to the given width/height using
// bilinear filtering, for a quick-look preview alongside a full-size
// screenshot export.
func Thumbnail(buffer []uint32, width, height, thumbWidth, thumbHeight int) *image.RGBA {
	src := ToImage(buffer, width, height)
	dst := image.NewRGBA(image.Rect(0, 0, thumbWidth, thumbHeight))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
