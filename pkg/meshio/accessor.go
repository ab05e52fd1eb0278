package meshio

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"

	"github.com/lumenforge/raster3d/pkg/vmath"
)

// componentWidth reports the wire byte width of a glTF scalar
// component type, or 0 if ct isn't an integer component type.
func componentWidth(ct gltf.ComponentType) int {
	switch ct {
	case gltf.ComponentUbyte:
		return 1
	case gltf.ComponentUshort:
		return 2
	case gltf.ComponentUint:
		return 4
	default:
		return 0
	}
}

// bufferBytes resolves the raw bytes an accessor's buffer view reads
// from, plus the absolute byte offset of the accessor's first
// element. Only buffers embedded in the document (the GLB binary
// chunk) are supported; a buffer with an external URI is reported as
// unsupported rather than silently producing empty geometry.
func bufferBytes(doc *gltf.Document, accessor *gltf.Accessor) (data []byte, offset int, err error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("meshio: accessor has no buffer view")
	}
	view := doc.BufferViews[*accessor.BufferView]
	buf := doc.Buffers[view.Buffer]
	if buf.URI != "" {
		return nil, 0, fmt.Errorf("meshio: buffer %q is external; only embedded GLB buffers are read", buf.URI)
	}
	if len(buf.Data) == 0 {
		return nil, 0, fmt.Errorf("meshio: buffer %d carries no bytes", view.Buffer)
	}
	return buf.Data, view.ByteOffset + accessor.ByteOffset, nil
}

// readFloatTuples decodes count fixed-width float32 tuples from an
// accessor, widening each component to float64 as it's read. width is
// the tuple's component count (2 for VEC2, 3 for VEC3); stride falls
// back to the tightly packed width*4 bytes when the buffer view
// doesn't specify one.
func readFloatTuples(doc *gltf.Document, accessorIdx int, want gltf.AccessorType, width int) ([][]float64, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != want {
		return nil, fmt.Errorf("meshio: accessor %d has type %v, want %v", accessorIdx, accessor.Type, want)
	}

	raw, offset, err := bufferBytes(doc, accessor)
	if err != nil {
		return nil, err
	}

	stride := doc.BufferViews[*accessor.BufferView].ByteStride
	if stride == 0 {
		stride = width * 4
	}

	tuples := make([][]float64, accessor.Count)
	for i := range tuples {
		base := offset + i*stride
		tuple := make([]float64, width)
		for c := 0; c < width; c++ {
			at := base + c*4
			tuple[c] = float64(math.Float32frombits(binary.LittleEndian.Uint32(raw[at : at+4])))
		}
		tuples[i] = tuple
	}
	return tuples, nil
}

// readVec3Accessor reads a VEC3 float accessor into mesh-space Vec3s.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]vmath.Vec3, error) {
	tuples, err := readFloatTuples(doc, accessorIdx, gltf.AccessorVec3, 3)
	if err != nil {
		return nil, err
	}
	out := make([]vmath.Vec3, len(tuples))
	for i, t := range tuples {
		out[i] = vmath.V3(t[0], t[1], t[2])
	}
	return out, nil
}

// readVec2Accessor reads a VEC2 float accessor into texture-space Vec2s.
func readVec2Accessor(doc *gltf.Document, accessorIdx int) ([]vmath.Vec2, error) {
	tuples, err := readFloatTuples(doc, accessorIdx, gltf.AccessorVec2, 2)
	if err != nil {
		return nil, err
	}
	out := make([]vmath.Vec2, len(tuples))
	for i, t := range tuples {
		out[i] = vmath.V2(t[0], t[1])
	}
	return out, nil
}

// readIndices reads a SCALAR index accessor, widening whatever
// unsigned integer width the document stores (ubyte/ushort/uint) into
// plain ints so callers never branch on the source width.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]

	width := componentWidth(accessor.ComponentType)
	if width == 0 {
		return nil, fmt.Errorf("meshio: index accessor has non-integer component type %v", accessor.ComponentType)
	}

	raw, offset, err := bufferBytes(doc, accessor)
	if err != nil {
		return nil, err
	}

	stride := doc.BufferViews[*accessor.BufferView].ByteStride
	if stride == 0 {
		stride = width
	}

	indices := make([]int, accessor.Count)
	for i := range indices {
		at := offset + i*stride
		indices[i] = int(littleEndianUint(raw[at : at+width]))
	}
	return indices, nil
}

// littleEndianUint assembles an unsigned integer of arbitrary byte
// width (1, 2, or 4 bytes here) from its little-endian encoding.
func littleEndianUint(b []byte) uint32 {
	var v uint32
	for i, by := range b {
		v |= uint32(by) << (8 * i)
	}
	return v
}
