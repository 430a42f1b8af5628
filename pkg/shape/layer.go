package shape

import "fmt"

// Layer is one manufacturable sheet of geometry. Shape order is raster
// z-order only.
type Layer struct {
	Name   string
	Shapes []Shape
}

// Add appends shapes to the layer.
func (l *Layer) Add(shapes ...Shape) {
	l.Shapes = append(l.Shapes, shapes...)
}

// Bounds returns the union of all shape bounds. An empty layer has a zero box.
func (l *Layer) Bounds() Box {
	if len(l.Shapes) == 0 {
		return Box{}
	}
	b := l.Shapes[0].Bounds()
	for _, s := range l.Shapes[1:] {
		b = b.Union(s.Bounds())
	}
	return b
}

// Count returns the number of shapes of each kind.
func (l *Layer) Count() map[Kind]int {
	counts := make(map[Kind]int)
	for _, s := range l.Shapes {
		counts[s.Kind()]++
	}
	return counts
}

// Design is an ordered set of layers derived from one panel spec.
type Design struct {
	ID     string
	Layers []*Layer
}

// Layer returns the named layer, or nil.
func (d *Design) Layer(name string) *Layer {
	for _, l := range d.Layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// MustLayer returns the named layer, or panics.
func (d *Design) MustLayer(name string) *Layer {
	l := d.Layer(name)
	if l == nil {
		panic(fmt.Sprintf("shape: no layer named %q", name))
	}
	return l
}

// Names returns layer names in design order.
func (d *Design) Names() []string {
	names := make([]string, len(d.Layers))
	for i, l := range d.Layers {
		names[i] = l.Name
	}
	return names
}
