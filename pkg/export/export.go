// Package export writes panel layers to vector documents for laser
// cutters: DXF through yofu/dxf and SVG through ajstarks/svgo.
package export

import (
	"fmt"

	"github.com/chazu/hitbox/pkg/shape"
)

// Sink consumes shapes layer by layer. Finalize flushes the document; a
// sink must not be used afterwards.
type Sink interface {
	Append(layer string, s shape.Shape) error
	Finalize() error
}

// WriteLayer appends every shape of l to sink in order.
func WriteLayer(sink Sink, l *shape.Layer) error {
	for i, s := range l.Shapes {
		if err := sink.Append(l.Name, s); err != nil {
			return fmt.Errorf("export: layer %s shape %d (%s): %w", l.Name, i, s.Kind(), err)
		}
	}
	return nil
}

// WriteDesign appends the named layers of d, or every layer when names is
// empty, then finalizes the sink.
func WriteDesign(sink Sink, d *shape.Design, names ...string) error {
	if len(names) == 0 {
		names = d.Names()
	}
	for _, n := range names {
		l := d.Layer(n)
		if l == nil {
			return fmt.Errorf("export: design has no layer %q", n)
		}
		if err := WriteLayer(sink, l); err != nil {
			return err
		}
	}
	return sink.Finalize()
}
