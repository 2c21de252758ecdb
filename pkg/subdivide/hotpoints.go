package subdivide

import (
	"github.com/chazu/facet/pkg/geom"
	"github.com/chazu/facet/pkg/mesh"
)

// Hotpoints cuts the corners of a single polygon. Every edge a→b is
// replaced by the two points a quarter of its length either side of its
// midpoint, so a polygon with n corners becomes one with 2n corners and
// repeated application rounds it off. The new points are white and the
// old ones are dropped.
func Hotpoints(m *mesh.Mesh) *mesh.Mesh {
	mesh.Require(len(m.Faces) == 1, "Hotpoints", "need a single polygon, got %d faces", len(m.Faces))
	f := m.Faces[0]

	points := make([]mesh.Point, 0, 2*len(f))
	for j := range f {
		a := m.Points[f[j]].Vec
		b := m.Points[f.Next(j)].Vec
		mid := geom.Avg(a, b)
		quarter := b.Sub(a).DivScalar(4)
		points = append(points,
			mesh.Point{Vec: mid.Sub(quarter)},
			mesh.Point{Vec: mid.Add(quarter)},
		)
	}

	loop := make(mesh.Face, len(points))
	for i := range loop {
		loop[i] = i
	}
	m.Points = points
	m.Faces = []mesh.Face{loop}
	return m
}
