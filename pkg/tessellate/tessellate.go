// Package tessellate turns polygon meshes into triangle snapshots for
// renderers. Faces are fan-triangulated from their first corner, which
// is exact for the convex faces the mesh operations build.
package tessellate

import (
	"fmt"

	"github.com/deadsy/sdfx/sdf"

	"github.com/chazu/facet/pkg/geom"
	"github.com/chazu/facet/pkg/kernel"
	"github.com/chazu/facet/pkg/mesh"
)

// corners are the point indices of one fan triangle.
type corners [3]int

// fan calls fn for every triangle of every face with at least three
// points, skipping triangles whose corners are collinear. Scale plays no
// part: a tiny triangle is kept as long as its area is not zero.
func fan(m *mesh.Mesh, fn func(c corners, tri sdf.Triangle3)) {
	for _, f := range m.Faces {
		for j := 1; j+1 < len(f); j++ {
			c := corners{f[0], f[j], f[j+1]}
			a, b, d := m.Points[c[0]].Vec, m.Points[c[1]].Vec, m.Points[c[2]].Vec
			if b.Sub(a).Cross(d.Sub(a)).Length() == 0 {
				continue
			}
			fn(c, sdf.Triangle3{a, b, d})
		}
	}
}

// Triangles fan-triangulates every polygon face of m. Degenerate
// triangles are dropped.
func Triangles(m *mesh.Mesh) []*sdf.Triangle3 {
	var tris []*sdf.Triangle3
	fan(m, func(_ corners, tri sdf.Triangle3) {
		tris = append(tris, &tri)
	})
	return tris
}

// Tessellate builds the render snapshot of m under the given name.
//
// The first len(m.Points) vertices are m's points in order, carrying
// their colors and the average normal of the triangles around them;
// two-point faces become Lines over this block. Each triangle then gets
// three vertices of its own with the flat triangle normal, so Indices
// never point into the shared block.
func Tessellate(m *mesh.Mesh, name string) (*kernel.Mesh, error) {
	if m == nil {
		return nil, nil
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("tessellate: object %s: %w", name, err)
	}

	n := len(m.Points)
	out := &kernel.Mesh{
		Vertices: make([]float32, 0, n*3),
		Normals:  make([]float32, 0, n*3),
		Colors:   make([]float32, 0, n*3),
		Name:     name,
	}

	smooth := make([]geom.Vec, n)
	type flat struct {
		c   corners
		tri sdf.Triangle3
		n   geom.Vec
	}
	var flats []flat
	fan(m, func(c corners, tri sdf.Triangle3) {
		normal := tri.Normal()
		for _, idx := range c {
			smooth[idx] = smooth[idx].Add(normal)
		}
		flats = append(flats, flat{c: c, tri: tri, n: normal})
	})

	for i, p := range m.Points {
		normal := smooth[i]
		if normal.Length() > geom.NormalEpsilon {
			normal = normal.Normalize()
		}
		addVertex(out, p.Vec, normal, p.Color)
	}

	for _, f := range m.Faces {
		if len(f) == 2 {
			out.Lines = append(out.Lines, uint32(f[0]), uint32(f[1]))
		}
	}

	for _, fl := range flats {
		for j, idx := range fl.c {
			out.Indices = append(out.Indices, uint32(out.VertexCount()))
			addVertex(out, fl.tri[j], fl.n, m.Points[idx].Color)
		}
	}
	return out, nil
}

func addVertex(out *kernel.Mesh, v, n geom.Vec, c mesh.Color) {
	rgb := kernel.RGB(c)
	out.Vertices = append(out.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
	out.Normals = append(out.Normals, float32(n.X), float32(n.Y), float32(n.Z))
	out.Colors = append(out.Colors, rgb[0], rgb[1], rgb[2])
}
