// Package geom provides the vector arithmetic used by the mesh kernel.
// Coordinates are sdfx v3.Vec values; this package adds the pieces the
// kernel needs on top of them: averaging, polar round-trip rotation,
// face normals and bounds.
package geom

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// NormalEpsilon is the cross-product length below which Normal skips
// normalization and returns the raw cross product.
const NormalEpsilon = 1e-4

// Vec is the coordinate type shared by every package in the kernel.
type Vec = v3.Vec

// XYZ builds a Vec from its components.
func XYZ(x, y, z float64) Vec {
	return Vec{X: x, Y: y, Z: z}
}

// Avg returns the midpoint of a and b.
func Avg(a, b Vec) Vec {
	return a.Add(b).DivScalar(2)
}

// Mean returns the average of vs. It returns the zero vector for an empty list.
func Mean(vs ...Vec) Vec {
	var sum Vec
	if len(vs) == 0 {
		return sum
	}
	for _, v := range vs {
		sum = sum.Add(v)
	}
	return sum.DivScalar(float64(len(vs)))
}

// Lerp interpolates from a toward b by t (t=0 gives a, t=1 gives b).
func Lerp(a, b Vec, t float64) Vec {
	return a.MulScalar(1 - t).Add(b.MulScalar(t))
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(rad float64) float64 {
	return rad * (180.0 / math.Pi)
}

// Polar is a 2D vector in magnitude/angle form.
type Polar struct {
	Mag float64
	Ang float64 // radians
}

// ToPolar converts the planar pair (a, b) to polar form.
func ToPolar(a, b float64) Polar {
	return Polar{Mag: math.Hypot(a, b), Ang: math.Atan2(b, a)}
}

// Cartesian converts p back to a planar pair.
func (p Polar) Cartesian() (a, b float64) {
	return p.Mag * math.Cos(p.Ang), p.Mag * math.Sin(p.Ang)
}

// rotatePair rotates the pair (a, b) by ang radians through polar form.
func rotatePair(a, b, ang float64) (float64, float64) {
	p := ToPolar(a, b)
	p.Ang += ang
	return p.Cartesian()
}

// RotateRoll rotates v about the X axis (the Y/Z pair) by roll radians.
func RotateRoll(v Vec, roll float64) Vec {
	v.Y, v.Z = rotatePair(v.Y, v.Z, roll)
	return v
}

// RotatePitch rotates v about the Y axis (the X/Z pair) by pitch radians.
func RotatePitch(v Vec, pitch float64) Vec {
	v.X, v.Z = rotatePair(v.X, v.Z, pitch)
	return v
}

// RotateYaw rotates v about the Z axis (the X/Y pair) by yaw radians.
func RotateYaw(v Vec, yaw float64) Vec {
	v.X, v.Y = rotatePair(v.X, v.Y, yaw)
	return v
}

// Rotate applies roll, pitch and yaw to v in that fixed order. The angles
// are read from deg.X (roll), deg.Y (pitch) and deg.Z (yaw), in degrees.
func Rotate(v, deg Vec) Vec {
	v = RotateRoll(v, Deg2Rad(deg.X))
	v = RotatePitch(v, Deg2Rad(deg.Y))
	v = RotateYaw(v, Deg2Rad(deg.Z))
	return v
}

// Normal returns the normal of the triangle a, b, c: the cross product of
// b-a and c-a. The result is normalized only when its length exceeds
// NormalEpsilon; near-degenerate triangles get the raw cross product.
func Normal(a, b, c Vec) Vec {
	n := b.Sub(a).Cross(c.Sub(a))
	if l := n.Length(); l > NormalEpsilon {
		return n.DivScalar(l)
	}
	return n
}

// Bounds returns the axis-aligned box around vs. An empty list gives a box
// with Min at +Inf and Max at -Inf.
func Bounds(vs []Vec) sdf.Box3 {
	inf := math.Inf(1)
	b := sdf.Box3{
		Min: XYZ(inf, inf, inf),
		Max: XYZ(-inf, -inf, -inf),
	}
	for _, v := range vs {
		b.Min = b.Min.Min(v)
		b.Max = b.Max.Max(v)
	}
	return b
}

// ApproxEqual reports whether a and b differ by at most tol on every axis.
func ApproxEqual(a, b Vec, tol float64) bool {
	d := a.Sub(b)
	return math.Abs(d.X) <= tol && math.Abs(d.Y) <= tol && math.Abs(d.Z) <= tol
}
