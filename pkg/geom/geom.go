package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a panel-local coordinate in centimetres. The origin is the
// bottom-left corner of the panel with Y pointing up.
type Point = r2.Vec

// Pt is shorthand for constructing a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// MirrorX reflects x about the vertical midline of a panel of the given width.
func MirrorX(x, width float64) float64 {
	return width - x
}

// MirrorPoint reflects p about the vertical midline, keeping Y.
func MirrorPoint(p Point, width float64) Point {
	return Point{X: MirrorX(p.X, width), Y: p.Y}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// Polar returns the point at distance d from p along angle deg (degrees,
// counter-clockwise from +X).
func Polar(p Point, d, deg float64) Point {
	rad := deg * math.Pi / 180
	return r2.Add(p, Point{X: d * math.Cos(rad), Y: d * math.Sin(rad)})
}

// Reflect mirrors p across the line through a and b. The result is
// undefined when a == b.
func Reflect(p, a, b Point) Point {
	u := r2.Unit(r2.Sub(b, a))
	foot := r2.Add(a, r2.Scale(r2.Dot(r2.Sub(p, a), u), u))
	return r2.Sub(r2.Scale(2, foot), p)
}

// ApproxEqual reports whether a and b are within tol of each other on both axes.
func ApproxEqual(a, b Point, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}
