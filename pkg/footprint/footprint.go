// Package footprint holds the keyswitch hole patterns stamped onto the
// switch plate layer. A template is a fixed set of offsets from the switch
// centre; stamping only translates it.
package footprint

import (
	"errors"
	"fmt"
	"sort"

	"github.com/chazu/hitbox/pkg/geom"
	"github.com/chazu/hitbox/pkg/shape"
	"gonum.org/v1/gonum/spatial/r2"
)

// ErrUnknownFootprint is returned by Lookup for unregistered names.
var ErrUnknownFootprint = errors.New("unknown footprint")

// Pin is a round hole relative to the switch centre.
type Pin struct {
	Offset geom.Point
	Radius float64
}

// Window is a square hole relative to the switch centre.
type Window struct {
	Offset geom.Point
	Side   float64
}

// Template is a named hole pattern.
type Template struct {
	Name    string
	Pins    []Pin
	Windows []Window
}

// Stamp returns the template's holes translated to at, pins first.
func (t Template) Stamp(at geom.Point) []shape.Shape {
	out := make([]shape.Shape, 0, len(t.Pins)+len(t.Windows))
	for _, p := range t.Pins {
		out = append(out, shape.Circle{Center: r2.Add(at, p.Offset), Radius: p.Radius})
	}
	for _, w := range t.Windows {
		out = append(out, shape.Square(r2.Add(at, w.Offset), w.Side))
	}
	return out
}

// Len returns the number of shapes one stamp produces.
func (t Template) Len() int {
	return len(t.Pins) + len(t.Windows)
}

const (
	stabRadius    = 0.095
	hotswapRadius = 0.15
	solderRadius  = 0.12
)

var templates = map[string]Template{
	// Choc v2 centre with Choc and MX hot-swap sockets.
	"hotswap": {
		Name: "hotswap",
		Pins: []Pin{
			{Offset: geom.Pt(0, 0), Radius: 0.25},
			{Offset: geom.Pt(-0.5, -0.515), Radius: stabRadius},
			{Offset: geom.Pt(0, 0.59), Radius: hotswapRadius},
			{Offset: geom.Pt(0.5, 0.38), Radius: hotswapRadius},
			{Offset: geom.Pt(0.55, 0), Radius: stabRadius},
			{Offset: geom.Pt(-0.55, 0), Radius: stabRadius},
			{Offset: geom.Pt(0.254, -0.508), Radius: hotswapRadius},
			{Offset: geom.Pt(-0.381, -0.254), Radius: hotswapRadius},
		},
	},
	// Choc v1 centre, soldered pins and an LED window.
	"soldered": {
		Name: "soldered",
		Pins: []Pin{
			{Offset: geom.Pt(0, 0), Radius: 0.17},
			{Offset: geom.Pt(-0.5, -0.515), Radius: stabRadius},
			{Offset: geom.Pt(0, 0.59), Radius: solderRadius},
			{Offset: geom.Pt(0.5, 0.38), Radius: solderRadius},
		},
		Windows: []Window{
			{Offset: geom.Pt(0, -0.493), Side: 0.3},
		},
	},
}

// Lookup returns the named template.
func Lookup(name string) (Template, error) {
	t, ok := templates[name]
	if !ok {
		return Template{}, fmt.Errorf("footprint: %q: %w (have %v)", name, ErrUnknownFootprint, Names())
	}
	return t, nil
}

// Names returns the registered template names in sorted order.
func Names() []string {
	names := make([]string, 0, len(templates))
	for n := range templates {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Stamp looks up the named template and stamps it at at.
func Stamp(name string, at geom.Point) ([]shape.Shape, error) {
	t, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return t.Stamp(at), nil
}
