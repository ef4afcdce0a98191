package graphics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// DrawCall is one recorded Draw.
type DrawCall struct {
	Buffer Buffer
	Mode   Mode
	Format Format
	Count  int
	MVP    mgl32.Mat4
}

// Recorder is a headless Device. It keeps buffer contents in memory and
// records every draw call, which makes it usable both for tests and for
// running the world without a window.
type Recorder struct {
	// MaxBuffers limits the number of live buffers; zero means unlimited.
	MaxBuffers int

	next     Buffer
	buffers  map[Buffer][]byte
	mvp      mgl32.Mat4
	calls    []DrawCall
	uploads  int
	allocs   int
	deletes  int
	peakLive int
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		buffers: make(map[Buffer][]byte),
		mvp:     mgl32.Ident4(),
	}
}

func (r *Recorder) GenBuffer() (Buffer, error) {
	if r.MaxBuffers > 0 && len(r.buffers) >= r.MaxBuffers {
		return 0, fmt.Errorf("recorder: buffer limit %d reached", r.MaxBuffers)
	}
	r.next++
	r.buffers[r.next] = nil
	r.allocs++
	if len(r.buffers) > r.peakLive {
		r.peakLive = len(r.buffers)
	}
	return r.next, nil
}

func (r *Recorder) DeleteBuffer(b Buffer) {
	if _, ok := r.buffers[b]; ok {
		delete(r.buffers, b)
		r.deletes++
	}
}

func (r *Recorder) BufferData(b Buffer, data []byte, usage Usage) {
	if _, ok := r.buffers[b]; !ok {
		return
	}
	r.buffers[b] = append(r.buffers[b][:0], data...)
	r.uploads++
}

func (r *Recorder) SetMVP(mvp mgl32.Mat4) {
	r.mvp = mvp
}

func (r *Recorder) Draw(b Buffer, mode Mode, format Format, count int) {
	r.calls = append(r.calls, DrawCall{Buffer: b, Mode: mode, Format: format, Count: count, MVP: r.mvp})
}

// Calls returns the draw calls recorded since the last Reset.
func (r *Recorder) Calls() []DrawCall {
	return r.calls
}

// Reset forgets recorded draw calls. Buffers are kept.
func (r *Recorder) Reset() {
	r.calls = r.calls[:0]
}

// Contents returns the bytes last uploaded into b.
func (r *Recorder) Contents(b Buffer) []byte {
	return r.buffers[b]
}

// Live returns the number of allocated, not yet deleted buffers.
func (r *Recorder) Live() int {
	return len(r.buffers)
}

// PeakLive returns the highest number of simultaneously live buffers.
func (r *Recorder) PeakLive() int {
	return r.peakLive
}

// Uploads returns the number of BufferData calls.
func (r *Recorder) Uploads() int {
	return r.uploads
}

// Allocations returns the number of GenBuffer calls that succeeded.
func (r *Recorder) Allocations() int {
	return r.allocs
}

// Deletes returns the number of buffers freed.
func (r *Recorder) Deletes() int {
	return r.deletes
}
