// Package mesh defines the polygon mesh data model: points, face loops,
// and the Mesh that owns both. Mutating operations change a mesh in place
// and return it so calls can be chained.
package mesh

import (
	"fmt"

	"github.com/chazu/facet/internal/da"
	"github.com/chazu/facet/pkg/geom"
)

// Color is the render color carried by a point. Geometry never reads it;
// the boolean operations write it to show how each point was classified.
type Color int

const (
	White Color = iota
	Black
	Red
	Green
	Yellow
	Blue
	Purple
	Cyan
)

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	case Red:
		return "red"
	case Green:
		return "green"
	case Yellow:
		return "yellow"
	case Blue:
		return "blue"
	case Purple:
		return "purple"
	case Cyan:
		return "cyan"
	default:
		return "unknown"
	}
}

// ParseColor returns the Color with the given name.
func ParseColor(name string) (Color, error) {
	for c := White; c <= Cyan; c++ {
		if c.String() == name {
			return c, nil
		}
	}
	return White, fmt.Errorf("unknown color %q", name)
}

// Point is a mesh vertex.
type Point struct {
	geom.Vec
	Color Color
}

// P builds a white point.
func P(x, y, z float64) Point {
	return Point{Vec: geom.XYZ(x, y, z)}
}

// Face is a cyclic loop of point indices. Consecutive entries, including
// last-to-first, are the face's edges; the order is its winding.
type Face []int

// F builds a face from indices.
func F(idx ...int) Face {
	return Face(da.Clone(idx))
}

// Clone returns an independent copy of f.
func (f Face) Clone() Face {
	return Face(da.Clone([]int(f)))
}

// Contains reports whether f references point i.
func (f Face) Contains(i int) bool {
	for _, j := range f {
		if j == i {
			return true
		}
	}
	return false
}

// Next returns the index that follows position j in the loop.
func (f Face) Next(j int) int {
	return f[(j+1)%len(f)]
}

// Mesh owns a point list and a face list. Every face index must be less
// than len(Points). A mesh with no faces is a line or point cloud.
type Mesh struct {
	Points []Point
	Faces  []Face
}

// Clone returns a deep copy of m; no face loop is shared with m.
func (m *Mesh) Clone() *Mesh {
	out := &Mesh{
		Points: da.Clone(m.Points),
	}
	if m.Faces != nil {
		out.Faces = make([]Face, len(m.Faces), cap(m.Faces))
		for i, f := range m.Faces {
			out.Faces[i] = f.Clone()
		}
	}
	return out
}

// CloneInto overwrites dst with a deep copy of m, reusing the point array,
// face array and face loops dst already holds wherever they are large
// enough. Callers that clone every frame keep one dst around to avoid
// reallocating.
func (m *Mesh) CloneInto(dst *Mesh) {
	dst.Points = da.CopyInto(dst.Points, m.Points)
	dst.Faces = da.Resize(dst.Faces, len(m.Faces))
	for i, f := range m.Faces {
		dst.Faces[i] = Face(da.CopyInto([]int(dst.Faces[i]), []int(f)))
	}
}

// AddPoint appends p and returns its index.
func (m *Mesh) AddPoint(p Point) int {
	m.Points = da.Append(m.Points, p)
	return len(m.Points) - 1
}

// AddFace appends f and returns its index.
func (m *Mesh) AddFace(f Face) int {
	m.Faces = da.Append(m.Faces, f)
	return len(m.Faces) - 1
}

// DeleteFace removes face i, shifting later faces down by one.
func (m *Mesh) DeleteFace(i int) {
	Require(i >= 0 && i < len(m.Faces), "DeleteFace", "face index %d out of range [0,%d)", i, len(m.Faces))
	m.Faces = da.Delete(m.Faces, i)
}

// Append adds every point and face of o to m. The faces of o are
// re-indexed to follow m's existing points.
func (m *Mesh) Append(o *Mesh) *Mesh {
	base := len(m.Points)
	m.Points = da.Concat(m.Points, o.Points)
	for _, f := range o.Faces {
		nf := make(Face, len(f))
		for j, idx := range f {
			nf[j] = idx + base
		}
		m.AddFace(nf)
	}
	return m
}

// Vecs returns the coordinates of every point.
func (m *Mesh) Vecs() []geom.Vec {
	vs := make([]geom.Vec, len(m.Points))
	for i, p := range m.Points {
		vs[i] = p.Vec
	}
	return vs
}

// FaceVecs returns the coordinates of face i's corners in loop order.
func (m *Mesh) FaceVecs(i int) []geom.Vec {
	f := m.Faces[i]
	vs := make([]geom.Vec, len(f))
	for j, idx := range f {
		vs[j] = m.Points[idx].Vec
	}
	return vs
}

// Validate checks that every face index refers to an existing point.
func (m *Mesh) Validate() error {
	for i, f := range m.Faces {
		if len(f) == 0 {
			return fmt.Errorf("mesh: face %d is empty", i)
		}
		for j, idx := range f {
			if idx < 0 || idx >= len(m.Points) {
				return fmt.Errorf("mesh: face %d position %d: index %d out of range [0,%d)", i, j, idx, len(m.Points))
			}
		}
	}
	return nil
}

// Release drops the mesh's storage.
func (m *Mesh) Release() {
	m.Points = nil
	m.Faces = nil
}
