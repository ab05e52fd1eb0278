package present

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func solidBuffer(width, height int, c color.RGBA) []uint32 {
	packed := uint32(c.R) | uint32(c.G)<<8 | uint32(c.B)<<16 | uint32(c.A)<<24
	buf := make([]uint32, width*height)
	for i := range buf {
		buf[i] = packed
	}
	return buf
}

func TestToImageDecodesPackedBuffer(t *testing.T) {
	buf := solidBuffer(4, 2, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	img := ToImage(buf, 4, 2)

	if got := img.Bounds().Dx(); got != 4 {
		t.Errorf("width = %d, want 4", got)
	}
	if got := img.Bounds().Dy(); got != 2 {
		t.Errorf("height = %d, want 2", got)
	}

	got := img.RGBAAt(1, 1)
	want := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	if got != want {
		t.Errorf("pixel at (1,1) = %v, want %v", got, want)
	}
}

func TestThumbnailResizesToRequestedDimensions(t *testing.T) {
	buf := solidBuffer(64, 32, color.RGBA{R: 200, G: 200, B: 200, A: 255})
	thumb := Thumbnail(buf, 64, 32, 16, 8)

	if got := thumb.Bounds().Dx(); got != 16 {
		t.Errorf("thumbnail width = %d, want 16", got)
	}
	if got := thumb.Bounds().Dy(); got != 8 {
		t.Errorf("thumbnail height = %d, want 8", got)
	}
}

func TestSaveScreenshotEncodesByExtension(t *testing.T) {
	buf := solidBuffer(8, 8, color.RGBA{R: 255, A: 255})
	dir := t.TempDir()

	for _, ext := range []string{".webp", ".tga"} {
		path := filepath.Join(dir, "shot"+ext)
		if err := SaveScreenshot(buf, 8, 8, path); err != nil {
			t.Fatalf("SaveScreenshot(%q): %v", ext, err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat %q: %v", path, err)
		}
		if info.Size() == 0 {
			t.Errorf("%s: expected a non-empty encoded file", ext)
		}
	}
}

func TestSaveScreenshotRejectsUnsupportedExtension(t *testing.T) {
	buf := solidBuffer(2, 2, color.RGBA{A: 255})
	path := filepath.Join(t.TempDir(), "shot.png")
	if err := SaveScreenshot(buf, 2, 2, path); err == nil {
		t.Error("expected an error for an unsupported extension, got nil")
	}
}
