package graphics

import (
	_ "embed"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Chunk program sources.
//
//go:embed shaders/chunk.vert
var ChunkVertShader string

//go:embed shaders/chunk.frag
var ChunkFragShader string

// GLDevice implements Device on top of an OpenGL 4.1 core context. It must
// only be used from the thread that owns the context.
type GLDevice struct {
	program *Program
	vao     uint32
	coord   uint32
	mvp     int32
	atlas   uint32
}

// NewGLDevice compiles the chunk program, uploads the texture atlas and
// prepares the vertex array. gl.Init must have been called.
func NewGLDevice() (*GLDevice, error) {
	program, err := NewProgram(ChunkVertShader, ChunkFragShader,
		[]string{"coord"}, []string{"mvp", "atlas"})
	if err != nil {
		return nil, fmt.Errorf("chunk program: %w", err)
	}

	d := &GLDevice{
		program: program,
		coord:   program.Attrib("coord"),
		mvp:     program.Uniform("mvp"),
	}

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	gl.EnableVertexAttribArray(d.coord)

	program.Use()
	d.atlas = uploadAtlas(NewAtlas())
	program.SetInt("atlas", 0)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.PolygonOffset(1, 1)
	gl.ClearColor(0.6, 0.8, 1.0, 0.0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		d.Dispose()
		return nil, fmt.Errorf("gl error 0x%x during device setup", code)
	}
	return d, nil
}

func (d *GLDevice) GenBuffer() (Buffer, error) {
	var b uint32
	gl.GenBuffers(1, &b)
	if b == 0 {
		return 0, fmt.Errorf("glGenBuffers returned no handle (gl error 0x%x)", gl.GetError())
	}
	return Buffer(b), nil
}

func (d *GLDevice) DeleteBuffer(b Buffer) {
	id := uint32(b)
	gl.DeleteBuffers(1, &id)
}

func (d *GLDevice) BufferData(b Buffer, data []byte, usage Usage) {
	hint := uint32(gl.STATIC_DRAW)
	if usage == DynamicDraw {
		hint = gl.DYNAMIC_DRAW
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(b))
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, hint)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data), gl.Ptr(data), hint)
}

func (d *GLDevice) SetMVP(mvp mgl32.Mat4) {
	gl.UniformMatrix4fv(d.mvp, 1, false, &mvp[0])
}

func (d *GLDevice) Draw(b Buffer, mode Mode, format Format, count int) {
	if count <= 0 {
		return
	}
	gl.BindVertexArray(d.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(b))
	if format == FormatFloat4 {
		gl.VertexAttribPointerWithOffset(d.coord, 4, gl.FLOAT, false, 0, 0)
	} else {
		gl.VertexAttribPointerWithOffset(d.coord, 4, gl.BYTE, false, 0, 0)
	}
	prim := uint32(gl.TRIANGLES)
	if mode == Lines {
		prim = gl.LINES
	}
	gl.DrawArrays(prim, 0, int32(count))
}

// BeginFrame clears the framebuffer and sets the per-frame state for chunk
// drawing.
func (d *GLDevice) BeginFrame(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	d.program.Use()
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.POLYGON_OFFSET_FILL)
}

// BeginOverlay switches state for line overlays drawn on top of chunks.
func (d *GLDevice) BeginOverlay(depthTest bool) {
	gl.Disable(gl.POLYGON_OFFSET_FILL)
	gl.Disable(gl.CULL_FACE)
	if depthTest {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
}

// Dispose frees the program, vertex array and atlas texture.
func (d *GLDevice) Dispose() {
	if d.atlas != 0 {
		gl.DeleteTextures(1, &d.atlas)
		d.atlas = 0
	}
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
	if d.program != nil {
		d.program.Delete()
		d.program = nil
	}
}
