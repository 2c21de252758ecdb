// Package boolean clips one planar polygon against another. It is a
// simple clip for two non-self-intersecting, roughly convex polygons
// lying in the same XY plane, not a general solid boolean.
package boolean

import (
	"slices"

	"github.com/chazu/facet/internal/da"
	"github.com/chazu/facet/pkg/geom"
	"github.com/chazu/facet/pkg/logging"
	"github.com/chazu/facet/pkg/mesh"
)

// Class is a point's position relative to the other polygon.
type Class int

const (
	Outside Class = iota
	Inside
)

func (c Class) String() string {
	if c == Inside {
		return "inside"
	}
	return "outside"
}

func (c Class) color() mesh.Color {
	if c == Inside {
		return mesh.Red
	}
	return mesh.Cyan
}

// Remap maps point indices of B to the indices of their copies in A.
type Remap map[int]int

// Get returns the index mapped from k, or def when k has no copy.
func (r Remap) Get(k, def int) int {
	if v, ok := r[k]; ok {
		return v
	}
	return def
}

// Result describes what Subtract did.
type Result struct {
	// A and B classify every original point of each mesh against the
	// other polygon, by point index.
	A []Class
	B []Class
	// Merged holds the copies of B's inside points appended to A.
	Merged Remap
	// Crossings holds A's new edge crossing points in loop order.
	Crossings []int
}

type crossing struct {
	at    geom.Vec
	t     float64
	edgeA int // loop position of the A edge start
	edgeB int // loop position of the B edge start
	idx   int // point index in A once added
}

// Subtract removes polygon b from polygon a, rewriting a's face loop in
// place. The new loop keeps a's points outside b, adds a point wherever
// an edge of a crosses an edge of b, and follows b's boundary between
// those crossings through copies of b's points that lie inside a.
//
// Points of a are colored cyan (outside b) or red (inside b); merged
// copies are red and crossing points purple. b is not modified. If no
// part of a survives, a is left with no faces.
//
// Every edge of a is tested against b, so an edge whose endpoints both
// lie outside b is still clipped where b cuts across it.
//
// Both meshes must be a single polygon with at least three points, and
// a and b must be distinct meshes.
func Subtract(a, b *mesh.Mesh) *Result {
	mesh.Require(a != b, "Subtract", "A and B must be distinct meshes")
	mesh.Require(len(a.Faces) == 1 && len(a.Faces[0]) >= 3, "Subtract",
		"A must be a single polygon, got %d faces", len(a.Faces))
	mesh.Require(len(b.Faces) == 1 && len(b.Faces[0]) >= 3, "Subtract",
		"B must be a single polygon, got %d faces", len(b.Faces))

	af := a.Faces[0].Clone()
	bf := b.Faces[0]

	res := &Result{
		A:      classify(a.Points, b.FaceVecs(0)),
		B:      classify(b.Points, a.FaceVecs(0)),
		Merged: make(Remap),
	}
	for i, c := range res.A {
		a.Points[i].Color = c.color()
	}

	for _, idx := range bf {
		if res.B[idx] != Inside {
			continue
		}
		if _, ok := res.Merged[idx]; ok {
			continue
		}
		res.Merged[idx] = a.AddPoint(mesh.Point{Vec: b.Points[idx].Vec, Color: mesh.Red})
	}

	crossings := findCrossings(a, af, b, bf)
	for i := range crossings {
		crossings[i].idx = a.AddPoint(mesh.Point{Vec: crossings[i].at, Color: mesh.Purple})
		res.Crossings = da.Append(res.Crossings, crossings[i].idx)
	}

	loop := make(mesh.Face, 0, len(af)+len(res.Merged)+len(crossings))
	g := 0
	for k, v := range af {
		inside := res.A[v] == Inside
		if !inside {
			loop = da.Append(loop, v)
		}
		for ; g < len(crossings) && crossings[g].edgeA == k; g++ {
			c := crossings[g]
			loop = da.Append(loop, c.idx)
			if !inside {
				exit := crossings[(g+1)%len(crossings)]
				for _, pos := range insidePath(bf, res.B, c.edgeB, exit.edgeB) {
					loop = da.Append(loop, res.Merged[bf[pos]])
				}
			}
			inside = !inside
		}
	}

	if len(loop) < 3 {
		a.Faces = a.Faces[:0]
	} else {
		a.Faces[0] = loop
	}

	logging.Logger().Debug("subtract",
		"merged", len(res.Merged),
		"crossings", len(res.Crossings),
		"loop", len(loop))
	return res
}

func classify(points []mesh.Point, poly []geom.Vec) []Class {
	out := make([]Class, len(points))
	for i, p := range points {
		if PointInPolygon(p.Vec, poly) {
			out[i] = Inside
		}
	}
	return out
}

// findCrossings intersects every edge of loop af with every edge of loop
// bf. The result is ordered by A edge, then by distance along it.
func findCrossings(a *mesh.Mesh, af mesh.Face, b *mesh.Mesh, bf mesh.Face) []crossing {
	var out []crossing
	for k := range af {
		p := a.Points[af[k]].Vec
		q := a.Points[af.Next(k)].Vec
		start := len(out)
		for l := range bf {
			r := b.Points[bf[l]].Vec
			s := b.Points[bf.Next(l)].Vec
			if !SegmentsIntersect(p, q, r, s) {
				continue
			}
			at, t, ok := LineIntersection(p, q, r, s)
			if !ok {
				continue
			}
			out = da.Append(out, crossing{at: at, t: t, edgeA: k, edgeB: l})
		}
		slices.SortFunc(out[start:], func(x, y crossing) int {
			switch {
			case x.t < y.t:
				return -1
			case x.t > y.t:
				return 1
			}
			return 0
		})
	}
	return out
}

// insidePath returns the loop positions of bf to walk between a crossing
// on B edge in and the next crossing on B edge out. Both directions
// around B are candidates; only one whose points all lie inside A is
// usable, and the shorter wins when both are.
func insidePath(bf mesh.Face, cls []Class, in, out int) []int {
	n := len(bf)
	fwd := make([]int, 0, n)
	for i, c := 0, ((out-in)%n+n)%n; i < c; i++ {
		fwd = append(fwd, (in+1+i)%n)
	}
	back := make([]int, 0, n)
	for i, c := 0, ((in-out)%n+n)%n; i < c; i++ {
		back = append(back, ((in-i)%n+n)%n)
	}

	allInside := func(path []int) bool {
		for _, pos := range path {
			if cls[bf[pos]] != Inside {
				return false
			}
		}
		return true
	}
	fwdOK, backOK := allInside(fwd), allInside(back)
	switch {
	case fwdOK && backOK:
		if len(back) < len(fwd) {
			return back
		}
		return fwd
	case fwdOK:
		return fwd
	case backOK:
		return back
	}
	return nil
}
