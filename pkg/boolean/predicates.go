package boolean

import (
	"math"

	"github.com/chazu/facet/pkg/geom"
)

// RayEpsilon nudges a polygon vertex that lies exactly on a classification
// ray to just above it, so a ray through a vertex is counted once.
const RayEpsilon = 1e-15

// Turn is the direction of the path p→q→r seen from +Z.
type Turn int

const (
	Collinear Turn = iota
	Clockwise
	CounterClockwise
)

func (t Turn) String() string {
	switch t {
	case Collinear:
		return "collinear"
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counter-clockwise"
	default:
		return "unknown"
	}
}

// Orientation returns the turn p→q→r makes in the XY plane. Only an exact
// zero cross product counts as collinear.
func Orientation(p, q, r geom.Vec) Turn {
	v := (q.Y-p.Y)*(r.X-q.X) - (q.X-p.X)*(r.Y-q.Y)
	switch {
	case v > 0:
		return Clockwise
	case v < 0:
		return CounterClockwise
	default:
		return Collinear
	}
}

// onSegment reports whether q, already known to be collinear with p and
// r, lies within the box spanned by segment pr.
func onSegment(p, q, r geom.Vec) bool {
	return q.X <= math.Max(p.X, r.X) && q.X >= math.Min(p.X, r.X) &&
		q.Y <= math.Max(p.Y, r.Y) && q.Y >= math.Min(p.Y, r.Y)
}

// SegmentsIntersect reports whether segments p1q1 and p2q2 share a point
// in the XY plane, touching and collinear overlap included.
func SegmentsIntersect(p1, q1, p2, q2 geom.Vec) bool {
	o1 := Orientation(p1, q1, p2)
	o2 := Orientation(p1, q1, q2)
	o3 := Orientation(p2, q2, p1)
	o4 := Orientation(p2, q2, q1)

	if o1 != o2 && o3 != o4 {
		return true
	}
	switch {
	case o1 == Collinear && onSegment(p1, p2, q1):
		return true
	case o2 == Collinear && onSegment(p1, q2, q1):
		return true
	case o3 == Collinear && onSegment(p2, p1, q2):
		return true
	case o4 == Collinear && onSegment(p2, q1, q2):
		return true
	}
	return false
}

// LineIntersection solves for the point where the line through a1 and a2
// meets the line through b1 and b2 in the XY plane. t is the position of
// that point along a1→a2 (0 at a1, 1 at a2) and the returned Z is
// interpolated along the same segment. ok is false for parallel lines.
func LineIntersection(a1, a2, b1, b2 geom.Vec) (p geom.Vec, t float64, ok bool) {
	d := a2.Sub(a1)
	e := b2.Sub(b1)
	det := d.X*e.Y - d.Y*e.X
	if det == 0 {
		return geom.Vec{}, 0, false
	}
	w := b1.Sub(a1)
	t = (w.X*e.Y - w.Y*e.X) / det
	return geom.Lerp(a1, a2, t), t, true
}

// PointInPolygon reports whether p lies inside the closed polygon poly,
// using an even-odd count of crossings along a ray from p toward +X.
// Only X and Y are considered.
func PointInPolygon(p geom.Vec, poly []geom.Vec) bool {
	inside := false
	for i := range poly {
		a := poly[i].Sub(p)
		b := poly[(i+1)%len(poly)].Sub(p)
		if a.Y == 0 {
			a.Y = RayEpsilon
		}
		if b.Y == 0 {
			b.Y = RayEpsilon
		}
		if (a.Y > 0) == (b.Y > 0) {
			continue
		}
		x := a.X - a.Y*(b.X-a.X)/(b.Y-a.Y)
		if x > 0 {
			inside = !inside
		}
	}
	return inside
}
