// Package topology answers adjacency questions about a mesh: which edges
// it has, which faces touch an edge or a point. Edges are never stored;
// every query walks the face loops again. Meshes at subdivision-surface
// scale are small enough that linear scans are the whole strategy.
package topology

import (
	"fmt"

	"github.com/chazu/facet/internal/da"
	"github.com/chazu/facet/pkg/mesh"
)

// Edge is an unordered pair of point indices. A and B keep the order in
// which the edge was first met in a face loop, but Equal ignores it.
type Edge struct {
	A, B int
}

// Equal reports whether e and o join the same two points.
func (e Edge) Equal(o Edge) bool {
	return (e.A == o.A && e.B == o.B) || (e.A == o.B && e.B == o.A)
}

// Key returns e with the smaller index first, for use as a map key.
func (e Edge) Key() Edge {
	if e.A > e.B {
		return Edge{A: e.B, B: e.A}
	}
	return e
}

func (e Edge) String() string {
	return fmt.Sprintf("%d - %d", e.A, e.B)
}

// TopologyError is the panic value raised when the mesh contradicts
// itself, such as an edge that no face contains. There is no sensible
// recovery from a malformed mesh, so the edge is reported and the
// operation stops.
type TopologyError struct {
	Edge Edge
	Msg  string
}

func (e *TopologyError) Error() string {
	return fmt.Sprintf("topology: %s (edge %s)", e.Msg, e.Edge)
}

// faceEdges calls fn for every consecutive index pair of f, wrapping
// around from the last entry to the first. Returning false stops the walk.
func faceEdges(f mesh.Face, fn func(j int, e Edge) bool) {
	for j := range f {
		if !fn(j, Edge{A: f[j], B: f.Next(j)}) {
			return
		}
	}
}

// containsEdge reports whether es already holds an edge equal to e.
func containsEdge(es []Edge, e Edge) bool {
	for _, x := range es {
		if x.Equal(e) {
			return true
		}
	}
	return false
}

// AllEdges returns every distinct edge of m in first-discovery order.
func AllEdges(m *mesh.Mesh) []Edge {
	var edges []Edge
	seen := make(map[Edge]struct{})
	for _, f := range m.Faces {
		faceEdges(f, func(_ int, e Edge) bool {
			if _, ok := seen[e.Key()]; !ok {
				seen[e.Key()] = struct{}{}
				edges = da.Append(edges, e)
			}
			return true
		})
	}
	return edges
}

// AdjacentFaces returns the indices of the faces that contain e, stopping
// at two. It panics with a *TopologyError when no face contains e.
func AdjacentFaces(m *mesh.Mesh, e Edge) []int {
	var faces []int
	for i, f := range m.Faces {
		faceEdges(f, func(_ int, cur Edge) bool {
			if cur.Equal(e) {
				faces = da.Append(faces, i)
				return false
			}
			return true
		})
		if len(faces) >= 2 {
			return faces
		}
	}
	if len(faces) == 0 {
		panic(&TopologyError{Edge: e, Msg: "no face is adjacent to edge"})
	}
	return faces
}

// FacesContainingPoint returns the indices of the faces whose loop
// includes point p.
func FacesContainingPoint(m *mesh.Mesh, p int) []int {
	var faces []int
	for i, f := range m.Faces {
		if f.Contains(p) {
			faces = da.Append(faces, i)
		}
	}
	return faces
}

// EdgesContainingPoint returns the distinct edges that start at p while
// walking each face loop: for every face holding p, the edge from p to
// the entry after it. The edge arriving at p is not counted, so with
// inconsistent winding some edges touching p can be missed.
//
// TODO(review): callers depend on this start-only rule for the
// Catmull–Clark vertex average; decide whether it should count both
// directions before changing it.
func EdgesContainingPoint(m *mesh.Mesh, p int) []Edge {
	var edges []Edge
	for _, f := range m.Faces {
		faceEdges(f, func(_ int, e Edge) bool {
			if e.A != p {
				return true
			}
			if !containsEdge(edges, e) {
				edges = da.Append(edges, e)
			}
			return false
		})
	}
	return edges
}

// SplitEdge inserts point index p between the endpoints of e in every
// face loop that contains e.
func SplitEdge(m *mesh.Mesh, e Edge, p int) {
	for i := range m.Faces {
		f := m.Faces[i]
		faceEdges(f, func(j int, cur Edge) bool {
			if cur.Equal(e) {
				m.Faces[i] = mesh.Face(da.Insert([]int(f), j+1, p))
				return false
			}
			return true
		})
	}
}
