package meshing

import (
	"unsafe"

	"glescraft/internal/registry"
)

// Face identifies the direction a mesh face points to.
type Face uint8

const (
	FaceNegX Face = iota
	FacePosX
	FaceNegY
	FacePosY
	FaceNegZ
	FacePosZ
)

// Vertex is one packed mesh vertex: a local block corner (0..chunk size on
// each axis) and W = texture tile + 16*face.
type Vertex struct {
	X, Y, Z, W uint8
}

// VertexSize is the size in bytes of one Vertex.
const VertexSize = 4

// PackW encodes a texture tile and a face into the W component.
func PackW(tex registry.BlockType, face Face) uint8 {
	return uint8(tex)&0x0f | uint8(face)<<4
}

// UnpackW splits W back into texture tile and face.
func UnpackW(w uint8) (registry.BlockType, Face) {
	return registry.BlockType(w & 0x0f), Face(w >> 4)
}

// AsBytes reinterprets vertices as the raw byte slice uploaded to the GPU.
// The result aliases verts.
func AsBytes(verts []Vertex) []byte {
	if len(verts) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&verts[0])), len(verts)*VertexSize)
}
