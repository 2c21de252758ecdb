package mesh

import (
	"github.com/deadsy/sdfx/sdf"

	"github.com/chazu/facet/pkg/geom"
)

// Translate moves every point by v.
func (m *Mesh) Translate(v geom.Vec) *Mesh {
	for i := range m.Points {
		m.Points[i].Vec = m.Points[i].Add(v)
	}
	return m
}

// Rotate turns every point about the origin. deg holds roll (X), pitch
// (Y) and yaw (Z) in degrees, applied in that order.
func (m *Mesh) Rotate(deg geom.Vec) *Mesh {
	for i := range m.Points {
		m.Points[i].Vec = geom.Rotate(m.Points[i].Vec, deg)
	}
	return m
}

// Scale multiplies every point component-wise by v.
func (m *Mesh) Scale(v geom.Vec) *Mesh {
	for i := range m.Points {
		m.Points[i].Vec = m.Points[i].Mul(v)
	}
	return m
}

// ScaleUniform multiplies every point by s.
func (m *Mesh) ScaleUniform(s float64) *Mesh {
	for i := range m.Points {
		m.Points[i].Vec = m.Points[i].MulScalar(s)
	}
	return m
}

// SetColor paints every point c.
func (m *Mesh) SetColor(c Color) *Mesh {
	for i := range m.Points {
		m.Points[i].Color = c
	}
	return m
}

// FaceCenter returns the mean of face i's corners.
func (m *Mesh) FaceCenter(i int) geom.Vec {
	Require(i >= 0 && i < len(m.Faces), "FaceCenter", "face index %d out of range [0,%d)", i, len(m.Faces))
	return geom.Mean(m.FaceVecs(i)...)
}

// FaceNormal returns the normal of face i from its first three corners:
// cross(p1-p0, p2-p0), normalized unless it is nearly zero.
func (m *Mesh) FaceNormal(i int) geom.Vec {
	Require(i >= 0 && i < len(m.Faces), "FaceNormal", "face index %d out of range [0,%d)", i, len(m.Faces))
	f := m.Faces[i]
	Require(len(f) >= 3, "FaceNormal", "face %d has %d points, need at least 3", i, len(f))
	return geom.Normal(m.Points[f[0]].Vec, m.Points[f[1]].Vec, m.Points[f[2]].Vec)
}

// Bounds returns the axis-aligned box around every point.
func (m *Mesh) Bounds() sdf.Box3 {
	return geom.Bounds(m.Vecs())
}

// Size returns the extent of Bounds on each axis.
func (m *Mesh) Size() geom.Vec {
	b := m.Bounds()
	return b.Max.Sub(b.Min)
}
