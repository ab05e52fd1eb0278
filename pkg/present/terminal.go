// Package present implements raster.Presenter over a real terminal,
// grounded on the teacher repository's pkg/render/terminal.go: each
// terminal row packs two framebuffer rows into a half-block cell
// (▀, foreground = top pixel, background = bottom pixel), using
// github.com/charmbracelet/ultraviolet for the screen/cell model and
// github.com/charmbracelet/x/ansi for raw key-sequence matching.
package present

import (
	"context"
	"image/color"
	"sync"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
)

// Terminal presents a packed RGBA8888 color buffer to a real terminal
// using half-block cells, and surfaces key/quit state polled from a
// background event-reader goroutine. It implements raster.Presenter.
type Terminal struct {
	term   *uv.Terminal
	width  int // terminal columns
	height int // terminal rows; framebuffer is width x (height*2)

	mu      sync.Mutex
	keys    map[rune]bool
	quit    bool
	pending []uv.Cell

	cancel context.CancelFunc
}

// Open starts a terminal session in the alternate screen, hides the
// cursor, and begins reading input events in the background. Call
// Close when done to restore terminal state.
func Open() (*Terminal, error) {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return nil, err
	}
	if err := term.Start(); err != nil {
		return nil, err
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	ctx, cancel := context.WithCancel(context.Background())
	t := &Terminal{
		term:   term,
		width:  width,
		height: height,
		keys:   make(map[rune]bool),
		cancel: cancel,
	}

	go t.readEvents(ctx)

	return t, nil
}

// FramebufferSize returns the pixel dimensions a caller should
// allocate: one column per terminal column, two rows per terminal row
// (half-block packing).
func (t *Terminal) FramebufferSize() (width, height int) {
	return t.width, t.height * 2
}

func (t *Terminal) readEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-t.term.Events():
			if !ok {
				return
			}
			t.handleEvent(ev)
		}
	}
}

func (t *Terminal) handleEvent(ev uv.Event) {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		t.mu.Lock()
		t.width, t.height = ev.Width, ev.Height
		t.mu.Unlock()
	case uv.KeyPressEvent:
		t.mu.Lock()
		if ev.MatchString("escape", "ctrl+c") {
			t.quit = true
		}
		if r := keyRune(ev); r != 0 {
			t.keys[r] = true
		}
		t.mu.Unlock()
	}
}

// keyRune extracts the plain rune a single-character key press
// represents, using ansi's key-sequence decoding for keys that arrive
// as multi-byte escape sequences rather than a literal rune.
func keyRune(ev uv.KeyPressEvent) rune {
	if ev.Text != "" {
		for _, r := range ev.Text {
			return r
		}
	}
	if decoded := ansi.Key(ev.String()); decoded.Text != "" {
		for _, r := range decoded.Text {
			return r
		}
	}
	return 0
}

// UpdateFromRGBA implements raster.Presenter: buffer is a packed
// 0xAABBGGRR color buffer of width*height*2 pixels (two rows per
// terminal row) in row-major order.
func (t *Terminal) UpdateFromRGBA(buffer []uint32) {
	t.mu.Lock()
	width, rows := t.width, t.height
	t.mu.Unlock()

	pixel := func(x, y int) color.RGBA {
		idx := y*width + x
		if idx < 0 || idx >= len(buffer) {
			return color.RGBA{}
		}
		v := buffer[idx]
		return color.RGBA{
			R: uint8(v),
			G: uint8(v >> 8),
			B: uint8(v >> 16),
			A: uint8(v >> 24),
		}
	}

	cells := make([]uv.Cell, 0, width*rows)
	for row := 0; row < rows; row++ {
		topY := row * 2
		botY := topY + 1
		for col := 0; col < width; col++ {
			top := pixel(col, topY)
			bot := pixel(col, botY)
			cells = append(cells, uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: colorOrNil(top),
					Bg: colorOrNil(bot),
				},
			})
		}
	}

	t.mu.Lock()
	t.pending = cells
	t.mu.Unlock()
}

func colorOrNil(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}

// Swap implements raster.Presenter: paints the cells built by the last
// UpdateFromRGBA call into the terminal's screen and flushes.
func (t *Terminal) Swap() {
	t.mu.Lock()
	cells := t.pending
	width := t.width
	t.mu.Unlock()

	scr := t.term.Screen()
	for i, cell := range cells {
		x, y := i%width, i/width
		scr.SetCell(x, y, &cell)
	}
	t.term.Display()
}

// PollQuit implements raster.Presenter.
func (t *Terminal) PollQuit() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.quit
}

// PollKey implements raster.Presenter, consuming the pending state for
// key so repeated polls within a frame see it once.
func (t *Terminal) PollKey(key rune) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.keys[key] {
		t.keys[key] = false
		return true
	}
	return false
}

// Close restores terminal state and stops the event-reader goroutine.
func (t *Terminal) Close() {
	t.cancel()
	t.term.ExitAltScreen()
	t.term.ShowCursor()
	t.term.Shutdown(context.Background())
}

// Named colors, grounded on the teacher's render.Color palette.
var (
	ColorBlack   = color.RGBA{0, 0, 0, 255}
	ColorWhite   = color.RGBA{255, 255, 255, 255}
	ColorRed     = color.RGBA{255, 0, 0, 255}
	ColorGreen   = color.RGBA{0, 255, 0, 255}
	ColorBlue    = color.RGBA{0, 0, 255, 255}
	ColorSky     = color.RGBA{135, 206, 235, 255}
	ColorGray    = color.RGBA{128, 128, 128, 255}
)

// RGB builds an opaque color.RGBA.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
