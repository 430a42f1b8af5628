package export

import (
	"fmt"
	"io"
	"math"

	"github.com/ajstarks/svgo"
	"github.com/chazu/hitbox/pkg/panel"
	"github.com/chazu/hitbox/pkg/shape"
)

// svgScale is SVG user units per centimetre.
const svgScale = 1000

const svgStroke = "fill:none;stroke:black;stroke-width:20"

// SVG is a Sink that writes a single SVG document with one group per
// layer. Coordinates are flipped so panel Y points up.
type SVG struct {
	canvas  *svg.SVG
	spec    panel.Spec
	started bool
	group   string
}

// NewSVG returns a sink writing to w. The document is sized from the spec
// and carries its design ID.
func NewSVG(w io.Writer, s panel.Spec) *SVG {
	return &SVG{canvas: svg.New(w), spec: s}
}

func u(v float64) int {
	return int(math.Round(v * svgScale))
}

func (x *SVG) start() {
	w, h := x.spec.Width, x.spec.Height
	// Startview and friends take integer sizes; panels may be fractional cm.
	x.canvas.Startraw(
		fmt.Sprintf(` width="%gcm"`, w),
		fmt.Sprintf(` height="%gcm"`, h),
		fmt.Sprintf(` viewBox="0 0 %d %d"`, u(w), u(h)),
	)
	x.canvas.Title("hitbox panel")
	x.canvas.Desc("design " + x.spec.DesignID().String())
	x.canvas.Gtransform(fmt.Sprintf("translate(0,%d) scale(1,-1)", u(h)))
	x.started = true
}

// Append writes s inside the group for layer.
func (x *SVG) Append(layer string, s shape.Shape) error {
	if !x.started {
		x.start()
	}
	if layer != x.group {
		if x.group != "" {
			x.canvas.Gend()
		}
		x.canvas.Gid(layer)
		x.group = layer
	}

	for _, p := range shape.Primitives(s) {
		if err := x.element(p); err != nil {
			return fmt.Errorf("svg: %w", err)
		}
	}
	return nil
}

func (x *SVG) element(s shape.Shape) error {
	c := x.canvas
	switch v := s.(type) {
	case shape.Circle:
		c.Circle(u(v.Center.X), u(v.Center.Y), u(v.Radius), svgStroke)
	case shape.Rect:
		c.Rect(u(v.Corner.X), u(v.Corner.Y), u(v.Width), u(v.Height), svgStroke)
	case shape.Polyline:
		xs := make([]int, len(v.Points))
		ys := make([]int, len(v.Points))
		for i, p := range v.Points {
			xs[i], ys[i] = u(p.X), u(p.Y)
		}
		if v.Closed {
			c.Polygon(xs, ys, svgStroke)
		} else {
			c.Polyline(xs, ys, svgStroke)
		}
	case shape.Arc:
		// Sweep is positive-angle in the unflipped user space, which is
		// counter-clockwise once the group transform flips Y.
		a, b := v.StartPoint(), v.EndPoint()
		c.Arc(u(a.X), u(a.Y), u(v.Radius), u(v.Radius), 0,
			v.Sweep() > 180, true, u(b.X), u(b.Y), svgStroke)
	default:
		return fmt.Errorf("unsupported shape %T", s)
	}
	return nil
}

// Finalize closes all open groups and the document.
func (x *SVG) Finalize() error {
	if !x.started {
		x.start()
	}
	if x.group != "" {
		x.canvas.Gend()
	}
	x.canvas.Gend()
	x.canvas.End()
	return nil
}
