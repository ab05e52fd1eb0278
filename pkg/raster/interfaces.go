package raster

import "github.com/lumenforge/raster3d/pkg/vmath"

// MeshVertex is a single vertex as the mesh module stores it: position,
// normal, texture coordinate, and a per-vertex color.
type MeshVertex struct {
	Position vmath.Vec3
	Normal   vmath.Vec3
	TexCoord vmath.Vec2
	Color    vmath.Color
}

// MeshTriangle is three zero-based indices into a Mesh's vertex array.
// Index validity is a mesh invariant; the pipeline skips (and logs) any
// triangle whose indices fall outside the vertex array rather than
// panicking, since a single malformed triangle in an otherwise valid
// mesh is a geometry-degenerate case, not a configuration error.
type MeshTriangle struct {
	A, B, C int
}

// Mesh is the narrow surface the core consumes from the mesh module.
// Nothing about OBJ/glTF parsing or primitive construction is the
// core's concern; it only ever calls these four methods. Bounds
// reports the mesh's local-space axis-aligned bounding box, so
// RenderMesh can cheaply reject an off-screen mesh before doing any
// per-triangle work; whether it is cached at load time or recomputed
// on each call is up to the implementation.
type Mesh interface {
	Vertices() []MeshVertex
	Triangles() []MeshTriangle
	ModelMatrix() vmath.Mat4
	Bounds() (min, max vmath.Vec3)
}

// Camera is the narrow surface the core consumes from the camera
// controller. Dirty-flag caching, Euler angles, movement — all of that
// lives on the other side of this interface.
type Camera interface {
	ViewMatrix() vmath.Mat4
	ProjectionMatrix() vmath.Mat4
	Position() vmath.Vec3
}

// Presenter is the narrow surface the core consumes from whatever puts
// pixels on screen — a terminal, a window, a headless encoder. The
// core never constructs one; callers build a Presenter and feed the
// core's ColorBuffer into UpdateFromRGBA each frame.
type Presenter interface {
	UpdateFromRGBA(buffer []uint32)
	Swap()
	PollQuit() bool
	PollKey(key rune) bool
}
