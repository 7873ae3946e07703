package gfx

import (
	"fmt"

	"github.com/oliverbestmann/stride/glm"
)

type Op int

const (
	OpViewport Op = iota
	OpClear
	OpDrawMesh
	OpDrawTriangles
)

// Call is a single recorded renderer invocation.
type Call struct {
	Op Op

	Width, Height int
	Color         Color
	Mesh          Mesh
	VertexCount   int
}

// Recorder is a Renderer that does not draw anything but remembers all calls.
// It is used to run scenes without a rendering context.
type Recorder struct {
	Calls []Call

	// current viewport size
	Width, Height int

	Released bool

	nextHandle uint32
	live       map[uint32]Mesh
}

var _ Renderer = (*Recorder)(nil)

func (r *Recorder) Viewport(width, height int) {
	r.Width = width
	r.Height = height
	r.Calls = append(r.Calls, Call{Op: OpViewport, Width: width, Height: height})
}

func (r *Recorder) Clear(color Color) {
	r.Calls = append(r.Calls, Call{Op: OpClear, Color: color})
}

func (r *Recorder) CreateMesh(vertices []glm.Vec3f) (Mesh, error) {
	if len(vertices) == 0 || len(vertices)%3 != 0 {
		return Mesh{}, fmt.Errorf("mesh needs a multiple of three vertices, got %d", len(vertices))
	}

	if r.live == nil {
		r.live = map[uint32]Mesh{}
	}

	r.nextHandle += 1

	mesh := Mesh{Handle: r.nextHandle, VertexCount: len(vertices)}
	r.live[mesh.Handle] = mesh

	return mesh, nil
}

func (r *Recorder) ReleaseMesh(mesh Mesh) {
	delete(r.live, mesh.Handle)
}

func (r *Recorder) DrawMesh(mesh Mesh, mvp glm.Mat4f, color Color) {
	r.Calls = append(r.Calls, Call{Op: OpDrawMesh, Mesh: mesh, Color: color, VertexCount: mesh.VertexCount})
}

func (r *Recorder) DrawTriangles(vertices []glm.Vec2f, transform glm.Mat3f, color Color) {
	r.Calls = append(r.Calls, Call{Op: OpDrawTriangles, Color: color, VertexCount: len(vertices)})
}

func (r *Recorder) Release() {
	r.Released = true
}

// LiveMeshes returns the number of meshes that were created but not yet released.
func (r *Recorder) LiveMeshes() int {
	return len(r.live)
}

// Count returns how often the given operation was recorded.
func (r *Recorder) Count(op Op) int {
	var count int
	for _, call := range r.Calls {
		if call.Op == op {
			count++
		}
	}

	return count
}
