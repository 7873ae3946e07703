// Package gfx defines the drawing surface that scenes render through.
package gfx

import "github.com/oliverbestmann/stride/glm"

// Mesh is a handle to vertex data that was uploaded to the gpu.
type Mesh struct {
	Handle      uint32
	Buffer      uint32
	VertexCount int
}

// Renderer issues draw operations against the current rendering context.
type Renderer interface {
	// Viewport sets the area of the framebuffer that is drawn into.
	Viewport(width, height int)

	Clear(color Color)

	// CreateMesh uploads a triangle list. The mesh must be released
	// with ReleaseMesh once it is not needed anymore.
	CreateMesh(vertices []glm.Vec3f) (Mesh, error)
	ReleaseMesh(mesh Mesh)

	// DrawMesh draws a mesh transformed by the given model-view-projection matrix.
	DrawMesh(mesh Mesh, mvp glm.Mat4f, color Color)

	// DrawTriangles draws a list of 2d triangles. The transform must map the
	// vertices into normalized device coordinates.
	DrawTriangles(vertices []glm.Vec2f, transform glm.Mat3f, color Color)

	// Release frees all resources held by the renderer.
	Release()
}
