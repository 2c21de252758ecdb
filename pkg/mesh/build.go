package mesh

import "github.com/chazu/facet/pkg/geom"

// New builds a polyhedron from literal points and faces. The slices are
// taken over by the mesh.
func New(points []Point, faces []Face) *Mesh {
	return &Mesh{Points: points, Faces: faces}
}

// Polygon builds a single-face mesh whose loop visits points in order.
func Polygon(points []Point) *Mesh {
	f := make(Face, len(points))
	for i := range f {
		f[i] = i
	}
	return &Mesh{Points: points, Faces: []Face{f}}
}

// PolygonFromPoints builds a white single-face polygon from coordinates.
func PolygonFromPoints(vs ...geom.Vec) *Mesh {
	points := make([]Point, len(vs))
	for i, v := range vs {
		points[i] = Point{Vec: v}
	}
	return Polygon(points)
}

// Line builds a mesh of points with no faces.
func Line(points []Point) *Mesh {
	return &Mesh{Points: points}
}

// Curve is Line under the name used for sampled curves.
func Curve(points []Point) *Mesh {
	return Line(points)
}

// Segment builds a two-point mesh with a single two-index face.
func Segment(a, b Point) *Mesh {
	return &Mesh{
		Points: []Point{a, b},
		Faces:  []Face{{0, 1}},
	}
}

// PointObject builds a mesh holding a single point and no faces.
func PointObject(p Point) *Mesh {
	return &Mesh{Points: []Point{p}}
}

// CurveFromFunc samples y = fn(x) at steps+1 evenly spaced x values and
// returns the samples as a faceless curve in the XY plane. The sampled
// range is [from-to, 0]: its width is to-from and it ends at x = 0, which
// is how curves have always been laid out for the terminal previews.
func CurveFromFunc(fn func(float64) float64, from, to float64, steps int) *Mesh {
	Require(steps > 0, "CurveFromFunc", "steps must be positive, got %d", steps)
	points := make([]Point, steps+1)
	for i := 0; i <= steps; i++ {
		x := (to-from)/float64(steps)*float64(i) - to
		points[i] = P(x, fn(x), 0)
	}
	return Curve(points)
}

// CurveToPolygon closes a faceless curve into a single polygon face that
// visits every point in order.
func CurveToPolygon(m *Mesh) *Mesh {
	f := make(Face, len(m.Points))
	for i := range f {
		f[i] = i
	}
	m.Faces = []Face{f}
	return m
}

// Cube builds an axis-aligned cube of side l centered on the origin. All
// six faces share one winding sense, with normals pointing at the center.
func Cube(l float64) *Mesh {
	a := l / 2
	return New(
		[]Point{
			P(-a, -a, -a),
			P(-a, -a, a),
			P(-a, a, a),
			P(-a, a, -a),

			P(a, -a, -a),
			P(a, -a, a),
			P(a, a, a),
			P(a, a, -a),
		},
		[]Face{
			// Each pair are opposites.
			{3, 2, 1, 0},
			{4, 5, 6, 7},

			{0, 1, 5, 4},
			{2, 3, 7, 6},

			{1, 2, 6, 5},
			{7, 3, 0, 4},
		},
	)
}

// Square builds a square of side l centered on the origin in the z=0
// plane, wound counter-clockwise seen from +Z.
func Square(l float64) *Mesh {
	a := l / 2
	return New(
		[]Point{
			P(-a, -a, 0),
			P(a, -a, 0),
			P(a, a, 0),
			P(-a, a, 0),
		},
		[]Face{{0, 1, 2, 3}},
	)
}
