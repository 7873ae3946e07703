// Package opengl implements gfx.Renderer on top of an opengl 3.3 core context.
// The context must be current on the calling thread.
package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/oliverbestmann/stride/gfx"
	"github.com/oliverbestmann/stride/glm"
)

var meshProgram = ProgramConfig{
	Name: "mesh",
	VertexSource: `#version 330 core
layout(location = 0) in vec3 position;
uniform mat4 mvp;
void main() {
	gl_Position = mvp * vec4(position, 1.0);
}
`,
	FragmentSource: `#version 330 core
uniform vec4 color;
out vec4 fragColor;
void main() {
	fragColor = color;
}
`,
}

var trianglesProgram = ProgramConfig{
	Name: "triangles",
	VertexSource: `#version 330 core
layout(location = 0) in vec2 position;
uniform mat3 transform;
void main() {
	vec3 pos = transform * vec3(position, 1.0);
	gl_Position = vec4(pos.xy, 0.0, 1.0);
}
`,
	FragmentSource: meshProgram.FragmentSource,
}

type Renderer struct {
	programs *ProgramCache

	// vertex array and buffer used to stream 2d triangles
	streamVAO uint32
	streamVBO uint32
}

var _ gfx.Renderer = (*Renderer)(nil)

func NewRenderer() (gfx.Renderer, error) {
	r := &Renderer{programs: NewProgramCache()}

	// compile programs up front to fail early
	for _, conf := range []ProgramConfig{meshProgram, trianglesProgram} {
		if _, err := r.programs.Get(conf); err != nil {
			r.programs.Purge()
			return nil, fmt.Errorf("prepare renderer: %w", err)
		}
	}

	gl.GenVertexArrays(1, &r.streamVAO)
	gl.GenBuffers(1, &r.streamVBO)

	gl.BindVertexArray(r.streamVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.streamVBO)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 0, nil)
	gl.BindVertexArray(0)

	gl.Enable(gl.MULTISAMPLE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	return r, nil
}

func (r *Renderer) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (r *Renderer) Clear(color gfx.Color) {
	cr, cg, cb, ca := color.Components()
	gl.ClearColor(cr, cg, cb, ca)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (r *Renderer) CreateMesh(vertices []glm.Vec3f) (gfx.Mesh, error) {
	if len(vertices) == 0 || len(vertices)%3 != 0 {
		return gfx.Mesh{}, fmt.Errorf("mesh needs a multiple of three vertices, got %d", len(vertices))
	}

	var mesh gfx.Mesh
	mesh.VertexCount = len(vertices)

	gl.GenVertexArrays(1, &mesh.Handle)
	gl.GenBuffers(1, &mesh.Buffer)

	gl.BindVertexArray(mesh.Handle)
	gl.BindBuffer(gl.ARRAY_BUFFER, mesh.Buffer)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*3*4, gl.Ptr(&vertices[0][0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 0, nil)
	gl.BindVertexArray(0)

	return mesh, nil
}

func (r *Renderer) ReleaseMesh(mesh gfx.Mesh) {
	gl.DeleteBuffers(1, &mesh.Buffer)
	gl.DeleteVertexArrays(1, &mesh.Handle)
}

func (r *Renderer) DrawMesh(mesh gfx.Mesh, mvp glm.Mat4f, color gfx.Color) {
	program, err := r.programs.Get(meshProgram)
	if err != nil {
		// programs are compiled in NewRenderer, this can only fail after eviction
		panic(err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.UseProgram(program.ID)

	gl.UniformMatrix4fv(program.Uniform("mvp"), 1, false, &mvp[0])
	cr, cg, cb, ca := color.Components()
	gl.Uniform4f(program.Uniform("color"), cr, cg, cb, ca)

	gl.BindVertexArray(mesh.Handle)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(mesh.VertexCount))
	gl.BindVertexArray(0)
}

func (r *Renderer) DrawTriangles(vertices []glm.Vec2f, transform glm.Mat3f, color gfx.Color) {
	if len(vertices) == 0 {
		return
	}

	program, err := r.programs.Get(trianglesProgram)
	if err != nil {
		panic(err)
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.UseProgram(program.ID)

	gl.UniformMatrix3fv(program.Uniform("transform"), 1, false, &transform[0])
	cr, cg, cb, ca := color.Components()
	gl.Uniform4f(program.Uniform("color"), cr, cg, cb, ca)

	gl.BindVertexArray(r.streamVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.streamVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*2*4, gl.Ptr(&vertices[0][0]), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(vertices)))
	gl.BindVertexArray(0)
}

func (r *Renderer) Release() {
	r.programs.Purge()

	gl.DeleteBuffers(1, &r.streamVBO)
	gl.DeleteVertexArrays(1, &r.streamVAO)
}
