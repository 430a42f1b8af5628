// Package recipe assembles panel layers from a declarative table of
// generator steps.
package recipe

import (
	"errors"
	"fmt"
	"sync"

	"github.com/chazu/hitbox/pkg/layout"
	"github.com/chazu/hitbox/pkg/panel"
	"github.com/chazu/hitbox/pkg/shape"
	"github.com/samber/lo"
)

// ErrUnknownLayer is returned by Build for names not in the catalog.
var ErrUnknownLayer = errors.New("unknown layer")

// TotalName is the aggregate of all structural layers.
const TotalName = "total"

// Recipe is the ordered step list for one layer.
type Recipe struct {
	Name       string
	Thickness  float64 // sheet thickness in mm, 0 for art layers
	Structural bool    // part of the physical stack and of total
	Steps      []Step
}

var (
	bigAndAux = []layout.Role{layout.RoleButton, layout.RoleAux}
)

// Catalog lists every layer recipe, top sheet first.
var Catalog = []Recipe{
	{Name: "layer1", Thickness: 3, Structural: true, Steps: []Step{
		BigButtons(), AuxButtons(), ScrewHoles(), Border(),
	}},
	{Name: "layer2", Thickness: 3, Structural: true, Steps: []Step{
		BigButtons(), AuxButtons(), ScrewHoles(), Border(),
		USBChannel(), Controller(0, 0), Port(),
		DisplayWire(), Display(0, 0), DisplayLowerPocket(0.8),
	}},
	{Name: "layer3", Thickness: 2, Structural: true, Steps: []Step{
		SwitchSquares(0, layout.RoleButton), SwitchSquares(0, layout.RoleAux), ScrewHoles(), Border(),
		USBChannel(), Controller(0, 0), Port(),
		Display(0, 0), DisplayLowerPocket(1), DisplayUpperPocket(0.5),
	}},
	{Name: "layer4", Thickness: 2, Structural: true, Steps: []Step{
		Footprints(bigAndAux...), ScrewHoles(), Border(),
		WireChannels(), Port(), DisplayWire(),
	}},
	{Name: "layer5", Thickness: 3, Structural: true, Steps: []Step{
		ScrewHoles(), SwitchSquares(0.37, layout.RoleAux), Border(), InsetBorder(panel.FrameInset),
		Controller(3, 6), PortPocket(),
	}},
	{Name: "layer6", Thickness: 3, Structural: true, Steps: []Step{
		ScrewHoles(), Border(),
	}},
	{Name: "art", Steps: []Step{
		BigButtons(), AuxButtons(), ScrewHoles(), Border(), Display(3.4, 1.9),
	}},
	{Name: "art-bottom", Steps: []Step{
		ScrewHoles(), Border(),
	}},
}

// Lookup returns the named recipe.
func Lookup(name string) (Recipe, bool) {
	return lo.Find(Catalog, func(r Recipe) bool { return r.Name == name })
}

// Names returns every buildable layer name, including total.
func Names() []string {
	names := lo.Map(Catalog, func(r Recipe, _ int) string { return r.Name })
	return append(names, TotalName)
}

func (r Recipe) build(e *env) *shape.Layer {
	l := &shape.Layer{Name: r.Name}
	for _, st := range r.Steps {
		l.Add(st.run(e)...)
	}
	return l
}

func prepare(s panel.Spec) (*env, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("recipe: invalid spec: %w", err)
	}
	e, err := newEnv(s)
	if err != nil {
		return nil, fmt.Errorf("recipe: %w", err)
	}
	return e, nil
}

// Assemble builds every catalog layer, one goroutine per layer, then
// appends total. Layers come back in catalog order.
func Assemble(s panel.Spec) (*shape.Design, error) {
	e, err := prepare(s)
	if err != nil {
		return nil, err
	}

	layers := make([]*shape.Layer, len(Catalog))
	var wg sync.WaitGroup
	for i, r := range Catalog {
		wg.Add(1)
		go func(i int, r Recipe) {
			defer wg.Done()
			layers[i] = r.build(e)
		}(i, r)
	}
	wg.Wait()

	layers = append(layers, Total(structural(layers)))
	return &shape.Design{ID: s.DesignID().String(), Layers: layers}, nil
}

// Build builds a single named layer. Building total builds every
// structural layer.
func Build(s panel.Spec, name string) (*shape.Layer, error) {
	r, ok := Lookup(name)
	if !ok && name != TotalName {
		return nil, fmt.Errorf("recipe: %q: %w", name, ErrUnknownLayer)
	}
	e, err := prepare(s)
	if err != nil {
		return nil, err
	}
	if name == TotalName {
		var layers []*shape.Layer
		for _, r := range Catalog {
			if r.Structural {
				layers = append(layers, r.build(e))
			}
		}
		return Total(layers), nil
	}
	return r.build(e), nil
}

func structural(layers []*shape.Layer) []*shape.Layer {
	return lo.Filter(layers, func(l *shape.Layer, i int) bool {
		return i < len(Catalog) && Catalog[i].Structural
	})
}

// Total concatenates the shapes of layers in order.
func Total(layers []*shape.Layer) *shape.Layer {
	return &shape.Layer{
		Name: TotalName,
		Shapes: lo.Flatten(lo.Map(layers, func(l *shape.Layer, _ int) []shape.Shape {
			return l.Shapes
		})),
	}
}
