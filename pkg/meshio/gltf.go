// Package meshio ingests glTF/GLB assets into a raster.Mesh. Grounded
// on the teacher repository's pkg/models/gltf.go (manual accessor
// decoding against github.com/qmuntal/gltf, CCW->CW winding flip, and
// fallback normal generation), adapted to satisfy raster.Mesh directly
// instead of populating an intermediate model type.
//
// Per the kernel's texture-mapped-shading non-goal, a baseColorTexture
// reference is never sampled here — only a material's flat
// baseColorFactor reaches the mesh as a per-vertex color fallback.
package meshio

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"

	"github.com/lumenforge/raster3d/pkg/raster"
	"github.com/lumenforge/raster3d/pkg/vmath"
)

// GLTFMesh implements raster.Mesh over geometry loaded from a glTF/GLB
// document. The model matrix defaults to identity; set Model directly
// to place the asset in the scene.
type GLTFMesh struct {
	Name  string
	Verts []raster.MeshVertex
	Tris  []raster.MeshTriangle
	Model vmath.Mat4

	boundsMin, boundsMax vmath.Vec3
}

func (m *GLTFMesh) Vertices() []raster.MeshVertex    { return m.Verts }
func (m *GLTFMesh) Triangles() []raster.MeshTriangle { return m.Tris }
func (m *GLTFMesh) ModelMatrix() vmath.Mat4          { return m.Model }

// Bounds returns the local-space AABB computed once by calculateBounds
// when the mesh was loaded, grounded on the teacher's
// Mesh.CalculateBounds/GetBounds.
func (m *GLTFMesh) Bounds() (min, max vmath.Vec3) { return m.boundsMin, m.boundsMax }

func (m *GLTFMesh) calculateBounds() {
	if len(m.Verts) == 0 {
		return
	}
	m.boundsMin, m.boundsMax = m.Verts[0].Position, m.Verts[0].Position
	for _, v := range m.Verts[1:] {
		m.boundsMin = m.boundsMin.Min(v.Position)
		m.boundsMax = m.boundsMax.Max(v.Position)
	}
}

// Loader controls optional post-processing applied after geometry is
// read from the document.
type Loader struct {
	// GenerateNormals computes smooth per-vertex normals when the
	// document supplies none, matching the fallback in
	// original_source/src/mesh.cpp's Mesh::loadFromOBJ.
	GenerateNormals bool
}

// NewLoader returns a Loader with normal generation enabled.
func NewLoader() *Loader {
	return &Loader{GenerateNormals: true}
}

// LoadGLB loads a binary glTF (.glb) file with default loader options.
// Only buffers embedded in the GLB binary chunk are read, so a textual
// .gltf file whose buffers are referenced by URI fails to load.
func LoadGLB(path string) (*GLTFMesh, error) {
	return NewLoader().Load(path)
}

// Load reads path and returns the resulting mesh.
func (l *Loader) Load(path string) (*GLTFMesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("meshio: open %q: %w", path, err)
	}

	mesh := &GLTFMesh{Name: filepath.Base(path), Model: vmath.Identity()}

	for _, m := range doc.Meshes {
		if err := l.appendMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("meshio: process mesh %q: %w", m.Name, err)
		}
	}

	hasNormals := false
	for _, v := range mesh.Verts {
		if v.Normal.Len() > 1e-3 {
			hasNormals = true
			break
		}
	}
	if l.GenerateNormals && !hasNormals {
		generateSmoothNormals(mesh)
	}

	mesh.calculateBounds()

	return mesh, nil
}

func (l *Loader) appendMesh(doc *gltf.Document, m *gltf.Mesh, mesh *GLTFMesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var normals []vmath.Vec3
		if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = readVec3Accessor(doc, normIdx)
			if err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
		}

		var uvs []vmath.Vec2
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = readVec2Accessor(doc, uvIdx)
			if err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
		}

		baseColor := materialColor(doc, prim.Material)

		base := len(mesh.Verts)
		for i := range positions {
			v := raster.MeshVertex{Position: positions[i], Color: baseColor}
			if i < len(normals) {
				v.Normal = normals[i]
			}
			if i < len(uvs) {
				// glTF's V=0 is the top row; flip to a bottom-left origin.
				v.TexCoord = vmath.V2(uvs[i].X, 1-uvs[i].Y)
			}
			mesh.Verts = append(mesh.Verts, v)
		}

		if prim.Indices != nil {
			indices, err := readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
			// glTF uses CCW front-facing winding; our screen-space Y flip
			// makes CW front-facing, so the last two indices swap.
			for i := 0; i+2 < len(indices); i += 3 {
				mesh.Tris = append(mesh.Tris, raster.MeshTriangle{
					A: base + indices[i],
					B: base + indices[i+2],
					C: base + indices[i+1],
				})
			}
		} else {
			for i := 0; i+2 < len(positions); i += 3 {
				mesh.Tris = append(mesh.Tris, raster.MeshTriangle{
					A: base + i,
					B: base + i + 2,
					C: base + i + 1,
				})
			}
		}
	}
	return nil
}

func materialColor(doc *gltf.Document, materialIdx *int) vmath.Color {
	if materialIdx == nil || *materialIdx >= len(doc.Materials) {
		return vmath.White
	}
	mat := doc.Materials[*materialIdx]
	if mat.PBRMetallicRoughness == nil {
		return vmath.White
	}
	f := mat.PBRMetallicRoughness.BaseColorFactor
	if f == nil {
		return vmath.White
	}
	return vmath.RGBA(
		uint8(clamp01(float64(f[0]))*255),
		uint8(clamp01(float64(f[1]))*255),
		uint8(clamp01(float64(f[2]))*255),
		uint8(clamp01(float64(f[3]))*255),
	)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// generateSmoothNormals accumulates face normals onto their vertices
// and renormalizes, matching original_source's Mesh::generateNormals.
func generateSmoothNormals(mesh *GLTFMesh) {
	for i := range mesh.Verts {
		mesh.Verts[i].Normal = vmath.Vec3{}
	}
	for _, tri := range mesh.Tris {
		v1 := mesh.Verts[tri.A].Position
		v2 := mesh.Verts[tri.B].Position
		v3 := mesh.Verts[tri.C].Position
		n := v2.Sub(v1).Cross(v3.Sub(v1)).Normalize()
		mesh.Verts[tri.A].Normal = mesh.Verts[tri.A].Normal.Add(n)
		mesh.Verts[tri.B].Normal = mesh.Verts[tri.B].Normal.Add(n)
		mesh.Verts[tri.C].Normal = mesh.Verts[tri.C].Normal.Add(n)
	}
	for i := range mesh.Verts {
		mesh.Verts[i].Normal = mesh.Verts[i].Normal.Normalize()
	}
}
