// Package shape defines the closed set of vector primitives that make up a
// panel layer, and the outline composer that draws rounded panel borders.
package shape

import (
	"math"

	"github.com/chazu/hitbox/pkg/geom"
)

// Kind enumerates the shape variants.
type Kind int

const (
	KindCircle Kind = iota
	KindRect
	KindRoundedRect
	KindPolyline
	KindArc
)

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindRect:
		return "rect"
	case KindRoundedRect:
		return "rounded-rect"
	case KindPolyline:
		return "polyline"
	case KindArc:
		return "arc"
	default:
		return "unknown"
	}
}

// Shape is a vector primitive. Shapes are immutable values with no identity
// beyond their geometry.
type Shape interface {
	Kind() Kind
	Bounds() Box
	shape() // restricts implementations to this package
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max geom.Point
}

// Union returns the smallest box containing b and o.
func (b Box) Union(o Box) Box {
	return Box{
		Min: geom.Pt(math.Min(b.Min.X, o.Min.X), math.Min(b.Min.Y, o.Min.Y)),
		Max: geom.Pt(math.Max(b.Max.X, o.Max.X), math.Max(b.Max.Y, o.Max.Y)),
	}
}

// Circle is a full circle, used for button and screw holes and footprint pins.
type Circle struct {
	Center geom.Point
	Radius float64
}

func (Circle) Kind() Kind { return KindCircle }
func (Circle) shape()     {}

func (c Circle) Bounds() Box {
	return Box{
		Min: geom.Pt(c.Center.X-c.Radius, c.Center.Y-c.Radius),
		Max: geom.Pt(c.Center.X+c.Radius, c.Center.Y+c.Radius),
	}
}

// Rect is an axis-aligned rectangle anchored at its bottom-left corner.
type Rect struct {
	Corner        geom.Point
	Width, Height float64
}

func (Rect) Kind() Kind { return KindRect }
func (Rect) shape()     {}

func (r Rect) Bounds() Box {
	return Box{Min: r.Corner, Max: geom.Pt(r.Corner.X+r.Width, r.Corner.Y+r.Height)}
}

// Corners returns the four corners counter-clockwise from bottom-left.
func (r Rect) Corners() []geom.Point {
	x, y := r.Corner.X, r.Corner.Y
	return []geom.Point{
		geom.Pt(x, y),
		geom.Pt(x+r.Width, y),
		geom.Pt(x+r.Width, y+r.Height),
		geom.Pt(x, y+r.Height),
	}
}

// CenteredRect returns a w x h rectangle centred on c.
func CenteredRect(c geom.Point, w, h float64) Rect {
	return Rect{Corner: geom.Pt(c.X-w/2, c.Y-h/2), Width: w, Height: h}
}

// HangingRect returns a w x h rectangle centred horizontally on x whose top
// edge sits drop below top.
func HangingRect(x, top, w, h, drop float64) Rect {
	return Rect{Corner: geom.Pt(x-w/2, top-h-drop), Width: w, Height: h}
}

// Polyline is an ordered point sequence, optionally closed back to its start.
type Polyline struct {
	Points []geom.Point
	Closed bool
}

func (Polyline) Kind() Kind { return KindPolyline }
func (Polyline) shape()     {}

func (p Polyline) Bounds() Box {
	if len(p.Points) == 0 {
		return Box{}
	}
	b := Box{Min: p.Points[0], Max: p.Points[0]}
	for _, q := range p.Points[1:] {
		b = b.Union(Box{Min: q, Max: q})
	}
	return b
}

// Length returns the path length, including the closing edge when closed.
func (p Polyline) Length() float64 {
	var l float64
	for i := 1; i < len(p.Points); i++ {
		l += geom.Distance(p.Points[i-1], p.Points[i])
	}
	if p.Closed && len(p.Points) > 2 {
		l += geom.Distance(p.Points[len(p.Points)-1], p.Points[0])
	}
	return l
}

// Segment returns an open two-point polyline.
func Segment(a, b geom.Point) Polyline {
	return Polyline{Points: []geom.Point{a, b}}
}

// Square returns a closed square polyline of the given side centred on c.
func Square(c geom.Point, side float64) Polyline {
	h := side / 2
	return Polyline{
		Points: []geom.Point{
			geom.Pt(c.X-h, c.Y-h),
			geom.Pt(c.X+h, c.Y-h),
			geom.Pt(c.X+h, c.Y+h),
			geom.Pt(c.X-h, c.Y+h),
		},
		Closed: true,
	}
}

// Arc is a circular arc swept counter-clockwise from Start to End degrees.
type Arc struct {
	Center     geom.Point
	Radius     float64
	Start, End float64 // degrees
}

func (Arc) Kind() Kind { return KindArc }
func (Arc) shape()     {}

// Sweep returns the counter-clockwise angular extent in degrees, in (0, 360].
func (a Arc) Sweep() float64 {
	s := math.Mod(a.End-a.Start, 360)
	if s <= 0 {
		s += 360
	}
	return s
}

// StartPoint returns the point at the Start angle.
func (a Arc) StartPoint() geom.Point {
	return geom.Polar(a.Center, a.Radius, a.Start)
}

// EndPoint returns the point at the End angle.
func (a Arc) EndPoint() geom.Point {
	return geom.Polar(a.Center, a.Radius, a.End)
}

// Length returns the arc length.
func (a Arc) Length() float64 {
	return a.Radius * a.Sweep() * math.Pi / 180
}

// Bounds is conservative: it returns the box of the full circle.
func (a Arc) Bounds() Box {
	return Circle{Center: a.Center, Radius: a.Radius}.Bounds()
}
