// raster3d-demo is a terminal viewer for the rasterizer kernel: it
// spins a cube, a sphere, and a ground plane under a shadow-casting
// point light, toggling between the Flat, Phong-Blinn, and Toon
// fragment shaders. Grounded on the teacher's cmd/trophy/main.go event
// loop and original_source/src/main.cpp's scene setup.
//
// Controls:
//
//	W          toggle wireframe mode
//	T          cycle fragment shader (Phong -> Toon -> Flat)
//	L          raise the log level (Info -> Debug -> Verbose)
//	P          save a screenshot (screenshot-0001.webp, ...)
//	Esc/Ctrl-C quit
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/lumenforge/raster3d/internal/fixtures"
	"github.com/lumenforge/raster3d/pkg/camera"
	"github.com/lumenforge/raster3d/pkg/present"
	"github.com/lumenforge/raster3d/pkg/raster"
	"github.com/lumenforge/raster3d/pkg/vmath"
)

var fps = flag.Int("fps", 30, "target frames per second")

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "raster3d-demo:", err)
		os.Exit(1)
	}
}

func run() error {
	term, err := present.Open()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer term.Close()

	width, height := term.FramebufferSize()

	logger := raster.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
	logLevels := []slog.Level{slog.LevelInfo, slog.LevelDebug, -8}
	logLevelIdx := 0

	r := raster.New(width, height)
	r.SetLogger(logger)

	cam := camera.NewFly(math.Pi/3, float64(width)/float64(height), 0.1, 100)
	cam.SetPosition(vmath.V3(0, 2, 6))
	cam.SetRotation(-0.2, 0, 0)

	cube := fixtures.Cube(vmath.RGB(80, 80, 80))
	sphere := fixtures.Sphere(1, 24, 16, vmath.RGB(50, 50, 200))
	plane := fixtures.Plane(20, vmath.White)

	shaders := []raster.Shader{
		raster.NewPhongBlinnShader(),
		raster.NewToonShader(),
		&raster.FlatColorShader{},
	}
	shaderIdx := 0

	light := raster.Light{
		Type:      raster.LightPoint,
		Color:     vmath.White,
		Intensity: 1.0,
		Position:  vmath.V3(5, 4, 5),
		Range:     25,
	}
	lightDir := light.Position.Negate().Normalize()

	wireframe := false
	rotation := 0.0
	frameInterval := time.Second / time.Duration(*fps)
	last := time.Now()
	screenshotCount := 0

	for !term.PollQuit() {
		now := time.Now()
		dt := now.Sub(last).Seconds()
		last = now
		rotation += 0.4 * dt

		if term.PollKey('w') {
			wireframe = !wireframe
			r.SetWireframeMode(wireframe)
		}
		if term.PollKey('t') {
			shaderIdx = (shaderIdx + 1) % len(shaders)
		}
		if term.PollKey('l') {
			logLevelIdx = (logLevelIdx + 1) % len(logLevels)
			logger.Set(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevels[logLevelIdx]})))
		}
		if term.PollKey('p') {
			screenshotCount++
			path := fmt.Sprintf("screenshot-%04d.webp", screenshotCount)
			if err := present.SaveScreenshot(r.ColorBuffer(), width, height, path); err != nil {
				logger.Error(fmt.Sprintf("screenshot failed: %v", err))
			} else {
				logger.Info(fmt.Sprintf("saved %s", path))
			}
		}

		cube.Model = vmath.Translate(0, 1, 0).Mul(vmath.RotateY(rotation))
		sphere.Model = vmath.Translate(-3, 1, 0)
		plane.Model = vmath.Identity()

		shader := shaders[shaderIdx]

		r.BeginShadowPass()
		r.RenderShadowMap(cube, light.Position, lightDir)
		r.RenderShadowMap(sphere, light.Position, lightDir)

		r.SetCamera(cam)
		r.SetLights([]raster.Light{light})
		r.Clear(vmath.RGB(20, 20, 20))

		r.RenderMesh(plane, shader)
		r.RenderMesh(cube, shader)
		r.RenderMesh(sphere, shader)

		term.UpdateFromRGBA(r.ColorBuffer())
		term.Swap()

		elapsed := time.Since(now)
		if elapsed < frameInterval {
			time.Sleep(frameInterval - elapsed)
		}
	}

	return nil
}
