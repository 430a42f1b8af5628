package export

import (
	"fmt"

	"github.com/chazu/hitbox/pkg/shape"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// layerColors cycles through AutoCAD index colours so stacked layers are
// distinguishable in a viewer.
var layerColors = []color.ColorNumber{
	color.White, color.Red, color.Yellow, color.Green, color.Cyan, color.Blue, color.Magenta,
}

// DXF is a Sink writing one DXF layer per panel layer.
type DXF struct {
	path    string
	d       *drawing.Drawing
	layers  map[string]bool
	current string
}

// NewDXF returns a sink that saves to path on Finalize.
func NewDXF(path string) *DXF {
	return &DXF{
		path:   path,
		d:      dxf.NewDrawing(),
		layers: make(map[string]bool),
	}
}

func (x *DXF) useLayer(name string) error {
	if name == x.current {
		return nil
	}
	if !x.layers[name] {
		c := layerColors[len(x.layers)%len(layerColors)]
		if _, err := x.d.AddLayer(name, c, dxf.DefaultLineType, true); err != nil {
			return err
		}
		x.layers[name] = true
	} else if err := x.d.ChangeLayer(name); err != nil {
		return err
	}
	x.current = name
	return nil
}

// Append writes s on the named layer. Rounded rectangles become LINE and
// ARC entities, other polylines LWPOLYLINE.
func (x *DXF) Append(layer string, s shape.Shape) error {
	if err := x.useLayer(layer); err != nil {
		return fmt.Errorf("dxf: layer %s: %w", layer, err)
	}
	for _, p := range shape.Primitives(s) {
		if err := x.entity(p); err != nil {
			return fmt.Errorf("dxf: %w", err)
		}
	}
	return nil
}

func (x *DXF) entity(s shape.Shape) error {
	var err error
	switch v := s.(type) {
	case shape.Circle:
		_, err = x.d.Circle(v.Center.X, v.Center.Y, 0, v.Radius)
	case shape.Arc:
		_, err = x.d.Arc(v.Center.X, v.Center.Y, 0, v.Radius, v.Start, v.End)
	case shape.Rect:
		c := v.Corners()
		_, err = x.d.LwPolyline(true,
			[]float64{c[0].X, c[0].Y}, []float64{c[1].X, c[1].Y},
			[]float64{c[2].X, c[2].Y}, []float64{c[3].X, c[3].Y})
	case shape.Polyline:
		if len(v.Points) == 2 && !v.Closed {
			a, b := v.Points[0], v.Points[1]
			_, err = x.d.Line(a.X, a.Y, 0, b.X, b.Y, 0)
			break
		}
		vs := make([][]float64, len(v.Points))
		for i, p := range v.Points {
			vs[i] = []float64{p.X, p.Y}
		}
		_, err = x.d.LwPolyline(v.Closed, vs...)
	default:
		err = fmt.Errorf("unsupported shape %T", s)
	}
	return err
}

// Finalize saves the drawing.
func (x *DXF) Finalize() error {
	if err := x.d.SaveAs(x.path); err != nil {
		return fmt.Errorf("dxf: save %s: %w", x.path, err)
	}
	return nil
}
