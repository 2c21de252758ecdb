// Package kernel holds the flat, render-ready snapshot of a mesh that
// viewers read. A snapshot is built once per frame from a mesh.Mesh and
// never written back.
package kernel

import "github.com/chazu/facet/pkg/mesh"

// Mesh is a triangle mesh suitable for rendering.
// All arrays are flat: vertices, normals and colors have 3 floats per
// vertex, indices has 3 uint32s per triangle and lines has 2 uint32s per
// segment.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Colors   []float32 `json:"colors"`   // [r0,g0,b0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Lines    []uint32  `json:"lines"`    // [i0,i1, ...] segment faces
	Name     string    `json:"name"`     // which scene object this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// LineCount returns the number of line segments.
func (m *Mesh) LineCount() int {
	return len(m.Lines) / 2
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// palette maps point colors to linear RGB.
var palette = map[mesh.Color][3]float32{
	mesh.White:  {1, 1, 1},
	mesh.Black:  {0, 0, 0},
	mesh.Red:    {0.9, 0.1, 0.1},
	mesh.Green:  {0.1, 0.8, 0.2},
	mesh.Yellow: {0.95, 0.85, 0.1},
	mesh.Blue:   {0.15, 0.3, 0.9},
	mesh.Purple: {0.6, 0.2, 0.8},
	mesh.Cyan:   {0.1, 0.8, 0.85},
}

// RGB returns the render color for c. Unknown colors render white.
func RGB(c mesh.Color) [3]float32 {
	if rgb, ok := palette[c]; ok {
		return rgb
	}
	return palette[mesh.White]
}
