// Package shape builds new faces out of existing ones: extruding a
// polygon into a prism and insetting a face to leave a border ring.
package shape

import (
	"github.com/chazu/facet/pkg/geom"
	"github.com/chazu/facet/pkg/logging"
	"github.com/chazu/facet/pkg/mesh"
)

// CloneFaceWithPoints appends a copy of every point of face fi, in loop
// order, and a new face over the copies. It returns the new face's index;
// position j of the new loop is the copy of position j of the old one.
func CloneFaceWithPoints(m *mesh.Mesh, fi int) int {
	mesh.Require(fi >= 0 && fi < len(m.Faces), "CloneFaceWithPoints",
		"face index %d out of range [0,%d)", fi, len(m.Faces))
	src := m.Faces[fi]
	dup := make(mesh.Face, len(src))
	for j, idx := range src {
		dup[j] = m.AddPoint(m.Points[idx])
	}
	return m.AddFace(dup)
}

// ReverseFace flips the winding of face fi in place.
func ReverseFace(m *mesh.Mesh, fi int) {
	mesh.Require(fi >= 0 && fi < len(m.Faces), "ReverseFace",
		"face index %d out of range [0,%d)", fi, len(m.Faces))
	f := m.Faces[fi]
	for i, j := 0, len(f)-1; i < j; i, j = i+1, j-1 {
		f[i], f[j] = f[j], f[i]
	}
}

// StitchRings appends one quad per position of outer joining it to inner:
// [outer(i), outer(i+1), inner(i+1), inner(i)]. The rings must have the
// same length and correspond position by position.
func StitchRings(m *mesh.Mesh, outer, inner mesh.Face) {
	mesh.Require(len(outer) == len(inner), "StitchRings",
		"rings differ in length: %d and %d", len(outer), len(inner))
	for i := range outer {
		m.AddFace(mesh.Face{outer[i], outer.Next(i), inner.Next(i), inner[i]})
	}
}

// Extrude turns a single polygon into a closed prism of height h along
// +Z. The result holds the original face, a reversed copy lifted by h,
// and one quad side face per edge.
func Extrude(m *mesh.Mesh, h float64) *mesh.Mesh {
	mesh.Require(len(m.Faces) == 1, "Extrude", "need exactly 1 face, got %d", len(m.Faces))

	top := CloneFaceWithPoints(m, 0)
	ring := m.Faces[top].Clone()
	lift := geom.XYZ(0, 0, h)
	for _, idx := range ring {
		m.Points[idx].Vec = m.Points[idx].Add(lift)
	}
	ReverseFace(m, top)
	StitchRings(m, m.Faces[0], ring)

	logging.Logger().Debug("extrude", "height", h, "faces", len(m.Faces))
	return m
}

// InsetFace shrinks face fi toward its centroid and fills the gap with a
// border of quads. amount 0 leaves the inner ring on the original corners
// and amount 1 collapses it onto the centroid.
//
// Afterwards face fi is the inner face and the n border quads of an
// n-sided face are appended at indices len(m.Faces)..len(m.Faces)+n-1 as
// they were before the call. Border j is [outer(j), outer(j+1),
// inner(j+1), inner(j)]; all other faces keep their indices.
func InsetFace(m *mesh.Mesh, fi int, amount float64) *mesh.Mesh {
	mesh.Require(fi >= 0 && fi < len(m.Faces), "InsetFace",
		"face index %d out of range [0,%d)", fi, len(m.Faces))
	mesh.Require(amount >= 0 && amount <= 1, "InsetFace",
		"amount %v outside [0,1]", amount)

	outer := m.Faces[fi]
	center := m.FaceCenter(fi)
	inner := make(mesh.Face, len(outer))
	for j, idx := range outer {
		p := m.Points[idx]
		p.Vec = geom.Lerp(p.Vec, center, amount)
		inner[j] = m.AddPoint(p)
	}
	m.Faces[fi] = inner
	StitchRings(m, outer, inner)
	return m
}
