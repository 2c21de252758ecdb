// Package subdivide implements mesh refinement: Catmull–Clark for
// polyhedra and corner cutting for single polygons.
package subdivide

import (
	"github.com/chazu/facet/internal/da"
	"github.com/chazu/facet/pkg/geom"
	"github.com/chazu/facet/pkg/logging"
	"github.com/chazu/facet/pkg/mesh"
	"github.com/chazu/facet/pkg/topology"
)

// role records what a point is during one Catmull–Clark step. Points
// appended after the edge pass (the face points) are never looked up.
type role int

const (
	roleOriginal role = iota + 1
	roleEdge
)

// CatmullClark runs one Catmull–Clark step on m and returns m with its
// points and faces replaced. A mesh with F faces, E edges and P points
// ends up with P+E+F points and one quad per original face corner.
//
// m must have at least two faces; single polygons are rejected with a
// *mesh.PreconditionError panic.
func CatmullClark(m *mesh.Mesh) *mesh.Mesh {
	mesh.Require(len(m.Faces) > 1, "CatmullClark",
		"need a polyhedron with at least 2 faces, got %d; use Hotpoints for polygons", len(m.Faces))
	old := m.Clone()
	step(old, m)
	return m
}

// CatmullClarkN runs n Catmull–Clark steps on m.
func CatmullClarkN(m *mesh.Mesh, n int) *mesh.Mesh {
	for i := 0; i < n; i++ {
		CatmullClark(m)
	}
	return m
}

// step subdivides live, which must start out identical to old. Face loops
// of live are split in place, so every adjacency question is asked of
// old, which is never modified.
func step(old, live *mesh.Mesh) {
	roles := make(map[int]role, len(live.Points))
	for i := range live.Points {
		roles[i] = roleOriginal
	}

	facePoints := make([]geom.Vec, len(old.Faces))
	for i := range old.Faces {
		facePoints[i] = old.FaceCenter(i)
	}

	edges := topology.AllEdges(old)
	for _, e := range edges {
		adjacent := topology.AdjacentFaces(old, e)
		terms := []geom.Vec{old.Points[e.A].Vec, old.Points[e.B].Vec}
		for _, f := range adjacent {
			terms = append(terms, facePoints[f])
		}
		p := live.AddPoint(mesh.Point{Vec: geom.Mean(terms...)})
		roles[p] = roleEdge
		topology.SplitEdge(live, e, p)
	}

	for i := range old.Points {
		if roles[i] != roleOriginal {
			continue
		}
		live.Points[i].Vec = movedOriginal(old, facePoints, i)
	}

	faces := make([]mesh.Face, 0, len(live.Faces)*4)
	for i, f := range live.Faces {
		fp := live.AddPoint(mesh.Point{Vec: facePoints[i]})
		for j, idx := range f {
			if roles[idx] != roleEdge {
				continue
			}
			faces = da.Append(faces, mesh.Face{
				idx,
				f[(j+1)%len(f)],
				f[(j+2)%len(f)],
				fp,
			})
		}
	}
	live.Faces = faces

	logging.Logger().Debug("catmull-clark step",
		"edges", len(edges),
		"points", len(live.Points),
		"faces", len(live.Faces))
}

// movedOriginal applies the Catmull–Clark vertex rule to point i:
//
//	(F + 2R + (n-3)P) / n
//
// where F averages the face points around i, R averages the midpoints of
// the edges starting at i, P is the old position and n counts the faces
// touching i. The formula is used as-is for every n >= 1.
func movedOriginal(old *mesh.Mesh, facePoints []geom.Vec, i int) geom.Vec {
	touching := topology.FacesContainingPoint(old, i)
	if len(touching) == 0 {
		// Not part of any face; nothing to average.
		return old.Points[i].Vec
	}
	n := float64(len(touching))

	var f geom.Vec
	for _, fi := range touching {
		f = f.Add(facePoints[fi])
	}
	f = f.DivScalar(n)

	edges := topology.EdgesContainingPoint(old, i)
	var r geom.Vec
	for _, e := range edges {
		r = r.Add(geom.Avg(old.Points[e.A].Vec, old.Points[e.B].Vec))
	}
	r = r.DivScalar(float64(len(edges)))

	p := old.Points[i].Vec
	return f.Add(r.MulScalar(2)).Add(p.MulScalar(n - 3)).DivScalar(n)
}
