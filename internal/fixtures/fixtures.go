// Package fixtures provides procedurally-built meshes for tests and
// demos: a single triangle, a ground plane, a cube, and a UV sphere.
// Grounded on original_source/src/mesh.cpp's createCube/createSphere
// and the teacher repository's models.Mesh, reshaped to satisfy
// raster.Mesh directly rather than going through a separate model type.
package fixtures

import (
	"math"

	"github.com/lumenforge/raster3d/pkg/raster"
	"github.com/lumenforge/raster3d/pkg/vmath"
)

// Static is a fixed-geometry mesh with an identity model matrix unless
// overridden, implementing raster.Mesh directly over plain slices.
type Static struct {
	Verts []raster.MeshVertex
	Tris  []raster.MeshTriangle
	Model vmath.Mat4
}

func (m *Static) Vertices() []raster.MeshVertex    { return m.Verts }
func (m *Static) Triangles() []raster.MeshTriangle { return m.Tris }
func (m *Static) ModelMatrix() vmath.Mat4 {
	if m.Model == (vmath.Mat4{}) {
		return vmath.Identity()
	}
	return m.Model
}

// Bounds returns the local-space AABB over Verts, recomputed from the
// current vertex positions each call.
func (m *Static) Bounds() (min, max vmath.Vec3) {
	if len(m.Verts) == 0 {
		return vmath.Zero3(), vmath.Zero3()
	}
	min, max = m.Verts[0].Position, m.Verts[0].Position
	for _, v := range m.Verts[1:] {
		min = min.Min(v.Position)
		max = max.Max(v.Position)
	}
	return min, max
}

// Triangle builds a single triangle in the given positions with a
// uniform color and a normal derived from winding order.
func Triangle(a, b, c vmath.Vec3, color vmath.Color) *Static {
	n := b.Sub(a).Cross(c.Sub(a)).Normalize()
	mk := func(p vmath.Vec3) raster.MeshVertex {
		return raster.MeshVertex{Position: p, Normal: n, Color: color}
	}
	return &Static{
		Verts: []raster.MeshVertex{mk(a), mk(b), mk(c)},
		Tris:  []raster.MeshTriangle{{A: 0, B: 1, C: 2}},
		Model: vmath.Identity(),
	}
}

// Plane builds a flat square of side length `size` centered at the
// origin in the XZ plane, facing +Y, colored uniformly.
func Plane(size float64, color vmath.Color) *Static {
	h := size / 2
	up := vmath.Up()
	verts := []raster.MeshVertex{
		{Position: vmath.V3(-h, 0, -h), Normal: up, TexCoord: vmath.V2(0, 0), Color: color},
		{Position: vmath.V3(h, 0, -h), Normal: up, TexCoord: vmath.V2(1, 0), Color: color},
		{Position: vmath.V3(h, 0, h), Normal: up, TexCoord: vmath.V2(1, 1), Color: color},
		{Position: vmath.V3(-h, 0, h), Normal: up, TexCoord: vmath.V2(0, 1), Color: color},
	}
	tris := []raster.MeshTriangle{{A: 0, B: 1, C: 2}, {A: 0, B: 2, C: 3}}
	return &Static{Verts: verts, Tris: tris, Model: vmath.Identity()}
}

// Cube builds a unit cube (side length 1) centered at the origin, each
// face with its own flat-shaded normal and independent 4-vertex quad —
// grounded directly on original_source's Mesh::createCube layout.
func Cube(color vmath.Color) *Static {
	positions := [8]vmath.Vec3{
		vmath.V3(-0.5, -0.5, -0.5),
		vmath.V3(0.5, -0.5, -0.5),
		vmath.V3(0.5, 0.5, -0.5),
		vmath.V3(-0.5, 0.5, -0.5),
		vmath.V3(-0.5, -0.5, 0.5),
		vmath.V3(0.5, -0.5, 0.5),
		vmath.V3(0.5, 0.5, 0.5),
		vmath.V3(-0.5, 0.5, 0.5),
	}
	normals := [6]vmath.Vec3{
		vmath.V3(0, 0, -1),
		vmath.V3(0, 0, 1),
		vmath.V3(1, 0, 0),
		vmath.V3(-1, 0, 0),
		vmath.V3(0, 1, 0),
		vmath.V3(0, -1, 0),
	}
	texCoords := [4]vmath.Vec2{
		vmath.V2(0, 0), vmath.V2(1, 0), vmath.V2(1, 1), vmath.V2(0, 1),
	}
	faces := [6][4]int{
		{0, 1, 2, 3},
		{4, 7, 6, 5},
		{1, 5, 6, 2},
		{0, 3, 7, 4},
		{3, 2, 6, 7},
		{0, 4, 5, 1},
	}

	var verts []raster.MeshVertex
	var tris []raster.MeshTriangle
	for f := 0; f < 6; f++ {
		base := len(verts)
		for v := 0; v < 4; v++ {
			verts = append(verts, raster.MeshVertex{
				Position: positions[faces[f][v]],
				Normal:   normals[f],
				TexCoord: texCoords[v],
				Color:    color,
			})
		}
		tris = append(tris,
			raster.MeshTriangle{A: base, B: base + 1, C: base + 2},
			raster.MeshTriangle{A: base, B: base + 2, C: base + 3},
		)
	}
	return &Static{Verts: verts, Tris: tris, Model: vmath.Identity()}
}

// Sphere builds a UV sphere of the given radius with `slices` meridians
// and `stacks` parallels, grounded on original_source's
// Mesh::createSphere parametrization.
func Sphere(radius float64, slices, stacks int, color vmath.Color) *Static {
	var verts []raster.MeshVertex
	for stack := 0; stack <= stacks; stack++ {
		phi := math.Pi * float64(stack) / float64(stacks)
		sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)

		for slice := 0; slice <= slices; slice++ {
			theta := 2 * math.Pi * float64(slice) / float64(slices)
			sinTheta, cosTheta := math.Sin(theta), math.Cos(theta)

			x := cosTheta * sinPhi
			y := cosPhi
			z := sinTheta * sinPhi

			dir := vmath.V3(x, y, z)
			verts = append(verts, raster.MeshVertex{
				Position: dir.Scale(radius),
				Normal:   dir.Normalize(),
				TexCoord: vmath.V2(float64(slice)/float64(slices), float64(stack)/float64(stacks)),
				Color:    color,
			})
		}
	}

	var tris []raster.MeshTriangle
	for stack := 0; stack < stacks; stack++ {
		for slice := 0; slice < slices; slice++ {
			topLeft := stack*(slices+1) + slice
			topRight := topLeft + 1
			bottomLeft := (stack+1)*(slices+1) + slice
			bottomRight := bottomLeft + 1

			tris = append(tris,
				raster.MeshTriangle{A: topLeft, B: bottomLeft, C: topRight},
				raster.MeshTriangle{A: topRight, B: bottomLeft, C: bottomRight},
			)
		}
	}
	return &Static{Verts: verts, Tris: tris, Model: vmath.Identity()}
}
