package recipe

import (
	"github.com/chazu/hitbox/pkg/footprint"
	"github.com/chazu/hitbox/pkg/geom"
	"github.com/chazu/hitbox/pkg/layout"
	"github.com/chazu/hitbox/pkg/panel"
	"github.com/chazu/hitbox/pkg/shape"
	"github.com/samber/lo"
)

// Fixed cutout sizes in centimetres.
const (
	usbHalfWidth     = 0.5  // half-width of the cable channel from the top edge
	wireChannelWidth = 0.3  // controller wire channels either side of the board
	portSide         = 1.45 // console port cutout
	portPocketSide   = 1.75 // console port PCB pocket
	portPocketDrop   = 0.6
	displayWireW     = 1.4 // display ribbon slot
	displayWireH     = 0.3
	displayWireGap   = 0.1 // between the display window and the ribbon slot
)

// env is what every step sees: the spec, its anchors and its footprint.
type env struct {
	spec    panel.Spec
	anchors layout.Set
	fp      footprint.Template
}

func newEnv(s panel.Spec) (*env, error) {
	anchors, err := layout.All(s)
	if err != nil {
		return nil, err
	}
	fp, err := footprint.Lookup(s.Footprint)
	if err != nil {
		return nil, err
	}
	return &env{spec: s, anchors: anchors, fp: fp}, nil
}

// Step is one generator in a recipe. Steps are pure; they read the env and
// return new shapes.
type Step struct {
	Name string
	gen  func(e *env) []shape.Shape
}

func (s Step) run(e *env) []shape.Shape {
	return s.gen(e)
}

func circlesAt(anchors layout.Set) []shape.Shape {
	return lo.Map(anchors, func(a layout.Anchor, _ int) shape.Shape {
		return shape.Circle{Center: a.Pos, Radius: a.Radius}
	})
}

// BigButtons cuts the 18 main-cluster holes.
func BigButtons() Step {
	return Step{Name: "big-buttons", gen: func(e *env) []shape.Shape {
		return circlesAt(e.anchors.WithRole(layout.RoleButton))
	}}
}

// AuxButtons cuts the Select/Start holes.
func AuxButtons() Step {
	return Step{Name: "aux-buttons", gen: func(e *env) []shape.Shape {
		return circlesAt(e.anchors.WithRole(layout.RoleAux))
	}}
}

// ScrewHoles cuts the seven screw holes.
func ScrewHoles() Step {
	return Step{Name: "screws", gen: func(e *env) []shape.Shape {
		return circlesAt(e.anchors.WithRole(layout.RoleScrew))
	}}
}

// SwitchSquares cuts a square of side SwitchWidth+extra at each anchor with
// one of the given roles.
func SwitchSquares(extra float64, roles ...layout.Role) Step {
	return Step{Name: "switch-squares", gen: func(e *env) []shape.Shape {
		var out []shape.Shape
		for _, r := range roles {
			for _, a := range e.anchors.WithRole(r) {
				out = append(out, shape.Square(a.Pos, e.spec.SwitchWidth+extra))
			}
		}
		return out
	}}
}

// Footprints stamps the spec's footprint template at each anchor with one
// of the given roles.
func Footprints(roles ...layout.Role) Step {
	return Step{Name: "footprints", gen: func(e *env) []shape.Shape {
		var out []shape.Shape
		for _, r := range roles {
			for _, a := range e.anchors.WithRole(r) {
				out = append(out, e.fp.Stamp(a.Pos)...)
			}
		}
		return out
	}}
}

// Border draws the panel outline.
func Border() Step {
	return Step{Name: "outline", gen: func(e *env) []shape.Shape {
		return []shape.Shape{outline(e.spec)}
	}}
}

// InsetBorder draws a second outline d inside the panel edge.
func InsetBorder(d float64) Step {
	return Step{Name: "inset-outline", gen: func(e *env) []shape.Shape {
		return []shape.Shape{outline(e.spec).Inset(d)}
	}}
}

func outline(s panel.Spec) shape.RoundedRect {
	return shape.Outline(geom.Pt(0, 0), s.Width, s.Height, s.CornerRadius)
}

// USBChannel draws the open cable channel from the top edge down to the
// controller.
func USBChannel() Step {
	return Step{Name: "usb-channel", gen: func(e *env) []shape.Shape {
		s := e.spec
		x0, x1 := s.Width/2-usbHalfWidth, s.Width/2+usbHalfWidth
		y := s.Height - s.ControllerYFromTop
		return []shape.Shape{shape.Polyline{Points: []geom.Point{
			geom.Pt(x0, s.Height),
			geom.Pt(x0, y),
			geom.Pt(x1, y),
			geom.Pt(x1, s.Height),
		}}}
	}}
}

// Controller cuts the board pocket, centred horizontally and hung from the
// top edge. Zero w or h uses the spec's controller size.
func Controller(w, h float64) Step {
	return Step{Name: "controller", gen: func(e *env) []shape.Shape {
		s := e.spec
		w, h := w, h
		if w == 0 {
			w = s.ControllerWidth
		}
		if h == 0 {
			h = s.ControllerHeight
		}
		return []shape.Shape{shape.HangingRect(s.Width/2, s.Height, w, h, s.ControllerYFromTop)}
	}}
}

// WireChannels cuts two narrow slots along the controller's long edges.
func WireChannels() Step {
	return Step{Name: "controller-wires", gen: func(e *env) []shape.Shape {
		s := e.spec
		off := s.ControllerWidth/2 - wireChannelWidth/2
		return []shape.Shape{
			shape.HangingRect(s.Width/2-off, s.Height, wireChannelWidth, s.ControllerHeight, s.ControllerYFromTop),
			shape.HangingRect(s.Width/2+off, s.Height, wireChannelWidth, s.ControllerHeight, s.ControllerYFromTop),
		}
	}}
}

// Port cuts the console port opening at the top edge.
func Port() Step {
	return Step{Name: "port", gen: func(e *env) []shape.Shape {
		s := e.spec
		return []shape.Shape{shape.HangingRect(s.Width-s.PortInset, s.Height, portSide, portSide, 0)}
	}}
}

// PortPocket cuts the pocket for the port's PCB.
func PortPocket() Step {
	return Step{Name: "port-pocket", gen: func(e *env) []shape.Shape {
		s := e.spec
		return []shape.Shape{shape.HangingRect(s.Width-s.PortInset, s.Height, portPocketSide, portPocketSide, portPocketDrop)}
	}}
}

// Display cuts the display window centred on the panel. Zero w or h uses
// the spec's display size.
func Display(w, h float64) Step {
	return Step{Name: "display", gen: func(e *env) []shape.Shape {
		s := e.spec
		w, h := w, h
		if w == 0 {
			w = s.DisplayWidth
		}
		if h == 0 {
			h = s.DisplayHeight
		}
		return []shape.Shape{shape.CenteredRect(s.Center(), w, h)}
	}}
}

// DisplayLowerPocket cuts a pocket of the given depth below the display.
func DisplayLowerPocket(depth float64) Step {
	return Step{Name: "display-lower", gen: func(e *env) []shape.Shape {
		s := e.spec
		c := s.Center()
		return []shape.Shape{shape.Rect{
			Corner: geom.Pt(c.X-s.DisplayWidth/2, c.Y-s.DisplayHeight/2-depth),
			Width:  s.DisplayWidth,
			Height: depth,
		}}
	}}
}

// DisplayUpperPocket cuts a pocket of the given depth above the display.
func DisplayUpperPocket(depth float64) Step {
	return Step{Name: "display-upper", gen: func(e *env) []shape.Shape {
		s := e.spec
		c := s.Center()
		return []shape.Shape{shape.Rect{
			Corner: geom.Pt(c.X-s.DisplayWidth/2, c.Y+s.DisplayHeight/2),
			Width:  s.DisplayWidth,
			Height: depth,
		}}
	}}
}

// DisplayWire cuts the ribbon slot just above the display window.
func DisplayWire() Step {
	return Step{Name: "display-wire", gen: func(e *env) []shape.Shape {
		s := e.spec
		c := s.Center()
		return []shape.Shape{shape.Rect{
			Corner: geom.Pt(c.X-displayWireW/2, c.Y+s.DisplayHeight/2+displayWireGap),
			Width:  displayWireW,
			Height: displayWireH,
		}}
	}}
}
