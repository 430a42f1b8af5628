package shape

import "github.com/chazu/hitbox/pkg/geom"

// RoundedRect is a closed rounded-rectangle boundary. It is drawn as four
// straight edges joined by four quarter arcs; see Segments.
type RoundedRect struct {
	Origin        geom.Point // bottom-left corner of the bounding box
	Width, Height float64
	Radius        float64
}

func (RoundedRect) Kind() Kind { return KindRoundedRect }
func (RoundedRect) shape()     {}

func (r RoundedRect) Bounds() Box {
	return Box{Min: r.Origin, Max: geom.Pt(r.Origin.X+r.Width, r.Origin.Y+r.Height)}
}

// Outline returns the rounded-rectangle boundary at origin.
func Outline(origin geom.Point, w, h, r float64) RoundedRect {
	return RoundedRect{Origin: origin, Width: w, Height: h, Radius: r}
}

// Inset returns a frame nested d inside r on every side, keeping the corner
// radius.
func (r RoundedRect) Inset(d float64) RoundedRect {
	return RoundedRect{
		Origin: geom.Pt(r.Origin.X+d, r.Origin.Y+d),
		Width:  r.Width - 2*d,
		Height: r.Height - 2*d,
		Radius: r.Radius,
	}
}

// Segments expands the boundary into primitives, walking counter-clockwise
// from the bottom edge: bottom, bottom-right arc (270-360), right, top-right
// arc (0-90), top, top-left arc (90-180), left, bottom-left arc (180-270).
func (r RoundedRect) Segments() []Shape {
	x0, y0 := r.Origin.X, r.Origin.Y
	x1, y1 := x0+r.Width, y0+r.Height
	c := r.Radius

	return []Shape{
		Segment(geom.Pt(x0+c, y0), geom.Pt(x1-c, y0)),
		Arc{Center: geom.Pt(x1-c, y0+c), Radius: c, Start: 270, End: 360},
		Segment(geom.Pt(x1, y0+c), geom.Pt(x1, y1-c)),
		Arc{Center: geom.Pt(x1-c, y1-c), Radius: c, Start: 0, End: 90},
		Segment(geom.Pt(x1-c, y1), geom.Pt(x0+c, y1)),
		Arc{Center: geom.Pt(x0+c, y1-c), Radius: c, Start: 90, End: 180},
		Segment(geom.Pt(x0, y1-c), geom.Pt(x0, y0+c)),
		Arc{Center: geom.Pt(x0+c, y0+c), Radius: c, Start: 180, End: 270},
	}
}

// Perimeter returns the boundary length.
func (r RoundedRect) Perimeter() float64 {
	var l float64
	for _, s := range r.Segments() {
		switch v := s.(type) {
		case Polyline:
			l += v.Length()
		case Arc:
			l += v.Length()
		}
	}
	return l
}

// Primitives flattens composite shapes into lines and arcs; other shapes
// are returned unchanged.
func Primitives(s Shape) []Shape {
	if rr, ok := s.(RoundedRect); ok {
		return rr.Segments()
	}
	return []Shape{s}
}
