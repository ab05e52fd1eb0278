// Package camera provides a flying camera that implements
// raster.Camera, grounded on the teacher repository's
// pkg/render/camera.go (Euler-angle fly camera with dirty-flag matrix
// caching) with charmbracelet/harmonica spring-damped position easing
// layered on top — a feature the teacher's demo adds and the original
// C++ implementation lacks, reused here since smoothing isn't excluded
// by any non-goal.
package camera

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/lumenforge/raster3d/pkg/vmath"
)

const maxPitch = math.Pi/2 - 0.01

// Fly is a position + Euler-angle camera with lazily-rebuilt,
// dirty-flagged view/projection matrices — implements raster.Camera.
type Fly struct {
	pos              vmath.Vec3
	pitch, yaw, roll float64

	fov, aspect, near, far float64

	view, proj           vmath.Mat4
	viewDirty, projDirty bool

	// Spring-damped position easing, used by smoothed movement helpers
	// (SetTarget/Step) rather than by direct position writes (SetPosition).
	springX, springY, springZ harmonica.Spring
	springInit                bool
	velX, velY, velZ          float64
	target                    vmath.Vec3
}

// NewFly constructs a Fly camera at the origin looking down -Z.
func NewFly(fovRadians, aspect, near, far float64) *Fly {
	c := &Fly{fov: fovRadians, aspect: aspect, near: near, far: far}
	c.viewDirty = true
	c.projDirty = true
	return c
}

// SetPosition sets the camera's world position immediately (no
// easing) and invalidates the view matrix.
func (c *Fly) SetPosition(p vmath.Vec3) {
	c.pos = p
	c.target = p
	c.viewDirty = true
}

// SetRotation sets pitch/yaw/roll in radians, clamping pitch to avoid
// gimbal flip at the poles.
func (c *Fly) SetRotation(pitch, yaw, roll float64) {
	if pitch > maxPitch {
		pitch = maxPitch
	}
	if pitch < -maxPitch {
		pitch = -maxPitch
	}
	c.pitch, c.yaw, c.roll = pitch, yaw, roll
	c.viewDirty = true
}

// SetAspectRatio updates the projection's aspect ratio.
func (c *Fly) SetAspectRatio(aspect float64) {
	c.aspect = aspect
	c.projDirty = true
}

// SetClipPlanes updates the projection's near/far distances.
func (c *Fly) SetClipPlanes(near, far float64) {
	c.near, c.far = near, far
	c.projDirty = true
}

// Forward returns the camera's current forward direction.
func (c *Fly) Forward() vmath.Vec3 {
	return vmath.V3(
		math.Cos(c.pitch)*math.Sin(c.yaw),
		math.Sin(c.pitch),
		-math.Cos(c.pitch)*math.Cos(c.yaw),
	).Normalize()
}

// Right returns the camera's current right direction.
func (c *Fly) Right() vmath.Vec3 {
	return c.Forward().Cross(vmath.Up()).Normalize()
}

// MoveForward moves the camera along its forward vector by dist and
// invalidates the view matrix.
func (c *Fly) MoveForward(dist float64) {
	c.pos = c.pos.Add(c.Forward().Scale(dist))
	c.target = c.pos
	c.viewDirty = true
}

// MoveRight strafes the camera along its right vector by dist.
func (c *Fly) MoveRight(dist float64) {
	c.pos = c.pos.Add(c.Right().Scale(dist))
	c.target = c.pos
	c.viewDirty = true
}

// Rotate nudges yaw/pitch by the given deltas (radians), clamping pitch.
func (c *Fly) Rotate(deltaPitch, deltaYaw float64) {
	c.SetRotation(c.pitch+deltaPitch, c.yaw+deltaYaw, c.roll)
}

// SetTarget arms spring-damped easing toward a new position; call Step
// every frame to advance it. Unlike SetPosition, this does not move the
// camera immediately.
func (c *Fly) SetTarget(p vmath.Vec3, fps float64) {
	if !c.springInit {
		c.springX = harmonica.NewSpring(harmonica.FPS(int(fps)), 4.0, 1.0)
		c.springY = harmonica.NewSpring(harmonica.FPS(int(fps)), 4.0, 1.0)
		c.springZ = harmonica.NewSpring(harmonica.FPS(int(fps)), 4.0, 1.0)
		c.springInit = true
	}
	c.target = p
}

// Step advances the spring-damped position one frame toward the
// target set by SetTarget.
func (c *Fly) Step() {
	if !c.springInit {
		return
	}
	var x, y, z float64
	x, c.velX = c.springX.Update(c.pos.X, c.velX, c.target.X)
	y, c.velY = c.springY.Update(c.pos.Y, c.velY, c.target.Y)
	z, c.velZ = c.springZ.Update(c.pos.Z, c.velZ, c.target.Z)
	c.pos = vmath.V3(x, y, z)
	c.viewDirty = true
}

func (c *Fly) rebuildView() {
	forward := c.Forward()
	c.view = vmath.LookAt(c.pos, c.pos.Add(forward), vmath.Up())
	c.viewDirty = false
}

func (c *Fly) rebuildProjection() {
	c.proj = vmath.Perspective(c.fov, c.aspect, c.near, c.far)
	c.projDirty = false
}

// ViewMatrix implements raster.Camera.
func (c *Fly) ViewMatrix() vmath.Mat4 {
	if c.viewDirty {
		c.rebuildView()
	}
	return c.view
}

// ProjectionMatrix implements raster.Camera.
func (c *Fly) ProjectionMatrix() vmath.Mat4 {
	if c.projDirty {
		c.rebuildProjection()
	}
	return c.proj
}

// Position implements raster.Camera.
func (c *Fly) Position() vmath.Vec3 {
	return c.pos
}
