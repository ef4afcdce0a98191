package graphics

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Buffer is an opaque vertex buffer handle. Zero is never a valid handle.
type Buffer uint32

// Usage is the upload hint passed with vertex data.
type Usage int

const (
	StaticDraw Usage = iota
	DynamicDraw
)

// Mode is the primitive type of a draw call.
type Mode int

const (
	Triangles Mode = iota
	Lines
)

// Format describes the layout of the single 4-component vertex attribute.
type Format int

const (
	// FormatByte4 is four signed bytes per vertex (chunk meshes).
	FormatByte4 Format = iota
	// FormatFloat4 is four float32 per vertex (cursor and overlay geometry).
	FormatFloat4
)

// Stride returns the size in bytes of one vertex.
func (f Format) Stride() int {
	if f == FormatFloat4 {
		return 16
	}
	return 4
}

// Device is the GPU surface the world renders through.
type Device interface {
	// GenBuffer allocates a new vertex buffer handle.
	GenBuffer() (Buffer, error)
	// DeleteBuffer frees a buffer handle.
	DeleteBuffer(b Buffer)
	// BufferData replaces the contents of b.
	BufferData(b Buffer, data []byte, usage Usage)
	// SetMVP sets the model-view-projection uniform for subsequent draws.
	SetMVP(mvp mgl32.Mat4)
	// Draw binds b with the given layout and draws count vertices.
	Draw(b Buffer, mode Mode, format Format, count int)
}

// Float32Bytes views v as raw bytes for BufferData without copying.
func Float32Bytes(v []float32) []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*4)
}
