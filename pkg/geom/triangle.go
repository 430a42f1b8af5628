package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ThirdVertex returns both apexes of the equilateral triangle whose base is
// p1-p2. The first apex lies counter-clockwise from the direction p1 -> p2
// (above a base walked in +X); the second is its reflection across the base.
//
// Coincident base points have no defined perpendicular and yield a
// *GeometryError wrapping ErrDegenerate.
func ThirdVertex(p1, p2 Point) (right, left Point, err error) {
	d := Distance(p1, p2)
	if d == 0 {
		return Point{}, Point{}, &GeometryError{
			Op:     "third vertex",
			Points: []Point{p1, p2},
			Err:    ErrDegenerate,
		}
	}

	mid := r2.Scale(0.5, r2.Add(p1, p2))
	h := d * math.Sqrt(3) / 2

	// Unit normal, rotated counter-clockwise from the base direction.
	n := Point{X: (p1.Y - p2.Y) / d, Y: -(p1.X - p2.X) / d}

	right = r2.Add(mid, r2.Scale(h, n))
	left = r2.Sub(mid, r2.Scale(h, n))
	return right, left, nil
}
