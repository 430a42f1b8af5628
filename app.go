package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/hitbox/pkg/composite"
	"github.com/chazu/hitbox/pkg/engine"
	"github.com/chazu/hitbox/pkg/export"
	"github.com/chazu/hitbox/pkg/kernel"
	"github.com/chazu/hitbox/pkg/kernel/sdfx"
	"github.com/chazu/hitbox/pkg/panel"
	"github.com/chazu/hitbox/pkg/recipe"
	"github.com/chazu/hitbox/pkg/render"
	"github.com/chazu/hitbox/pkg/shape"
	"github.com/samber/lo"
)

// App drives the pipeline: config script -> spec -> layers -> files.
type App struct {
	engine *engine.Engine
	kernel kernel.Kernel
}

// EvalErrorData is a JSON-serializable eval error or warning.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// LayerData summarizes one built layer.
type LayerData struct {
	Name       string  `json:"name"`
	Thickness  float64 `json:"thicknessMM"`
	Structural bool    `json:"structural"`
	Shapes     int     `json:"shapes"`
}

// EvalResult is the outcome of evaluating a config script.
type EvalResult struct {
	Spec     *panel.Spec     `json:"spec"`
	Design   string          `json:"design"`
	Layers   []LayerData     `json:"layers"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// NewApp creates a new App with an engine and the sdfx kernel.
func NewApp() *App {
	return &App{
		engine: engine.NewEngine(),
		kernel: sdfx.New(),
	}
}

// Evaluate runs a config script and assembles the design it describes.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Layers:   []LayerData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	// Step 1: Evaluate the script into a spec.
	res, err := a.engine.Run(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	for _, w := range res.Warnings {
		result.Warnings = append(result.Warnings, EvalErrorData{Line: w.Line, Col: w.Col, Message: w.Message})
	}

	// Step 2: Convert eval errors to the result format.
	if len(res.Errors) > 0 {
		for _, e := range res.Errors {
			result.Errors = append(result.Errors, EvalErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
		}
		return result
	}

	// Step 3: Build every layer.
	d, err := recipe.Assemble(*res.Spec)
	if err != nil {
		log.Printf("Assemble error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: "assembly failed: " + err.Error()})
		return result
	}

	result.Spec = res.Spec
	result.Design = d.ID
	result.Layers = summarize(d)
	return result
}

func summarize(d *shape.Design) []LayerData {
	out := make([]LayerData, 0, len(d.Layers))
	for _, l := range d.Layers {
		ld := LayerData{Name: l.Name, Shapes: len(l.Shapes)}
		if r, ok := recipe.Lookup(l.Name); ok {
			ld.Thickness = r.Thickness
			ld.Structural = r.Structural
		}
		out = append(out, ld)
	}
	return out
}

// LoadSpec reads a config script, or returns the defaults when path is
// empty. Warnings are logged; eval errors are joined into the error.
func (a *App) LoadSpec(path string) (panel.Spec, error) {
	if path == "" {
		return panel.Default(), nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return panel.Spec{}, fmt.Errorf("read config: %w", err)
	}
	res, err := a.engine.Run(string(src))
	if err != nil {
		return panel.Spec{}, fmt.Errorf("%s: %w", path, err)
	}
	for _, w := range res.Warnings {
		log.Printf("%s: warning: %s", path, w.Message)
	}
	if len(res.Errors) > 0 {
		msgs := make([]string, len(res.Errors))
		for i, e := range res.Errors {
			msgs[i] = e.Error()
		}
		return panel.Spec{}, fmt.Errorf("%s: %s", path, strings.Join(msgs, "; "))
	}
	return *res.Spec, nil
}

// Generate writes one DXF per layer plus a combined SVG into dir. With
// names set, only those layers are written. It returns the paths written.
func (a *App) Generate(s panel.Spec, dir string, names ...string) ([]string, error) {
	d, err := recipe.Assemble(s)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		names = d.Names()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var written []string
	for _, n := range names {
		l := d.Layer(n)
		if l == nil {
			return written, fmt.Errorf("unknown layer %q (have %s)", n, strings.Join(d.Names(), ", "))
		}
		path := filepath.Join(dir, n+".dxf")
		if err := export.WriteDesign(export.NewDXF(path), d, n); err != nil {
			return written, err
		}
		log.Printf("wrote %s (%d shapes)", path, len(l.Shapes))
		written = append(written, path)
	}

	path := filepath.Join(dir, "hitbox.svg")
	f, err := os.Create(path)
	if err != nil {
		return written, fmt.Errorf("create svg: %w", err)
	}
	// total repeats the structural layers; keep it out of the combined
	// document unless it is the only layer asked for.
	svgNames := lo.Without(names, recipe.TotalName)
	if len(svgNames) == 0 {
		svgNames = names
	}
	if err := export.WriteDesign(export.NewSVG(f, s), d, svgNames...); err != nil {
		f.Close()
		return written, err
	}
	if err := f.Close(); err != nil {
		return written, fmt.Errorf("close svg: %w", err)
	}
	log.Printf("wrote %s (design %s)", path, d.ID)
	return append(written, path), nil
}

// PreviewOptions selects the artwork and raster settings for Preview.
type PreviewOptions struct {
	Art       string // artwork behind the art layer, skipped when empty
	ArtBottom string // artwork behind the art-bottom layer, skipped when empty
	DPI       float64
	Sheet     bool
}

// Preview renders the art layers and composites them over the artwork,
// writing final.png and final-bottom.png into dir.
func (a *App) Preview(s panel.Spec, dir string, o PreviewOptions) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	ro := render.Options{DPI: o.DPI}
	if o.Sheet {
		ro.Kernel = a.kernel
	}

	jobs := []struct{ layer, art, out string }{
		{"art", o.Art, "final.png"},
		{"art-bottom", o.ArtBottom, "final-bottom.png"},
	}
	var written []string
	for _, j := range jobs {
		if j.art == "" {
			continue
		}
		path, err := a.preview(s, j.layer, j.art, filepath.Join(dir, j.out), ro)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func (a *App) preview(s panel.Spec, layer, art, out string, ro render.Options) (string, error) {
	l, err := recipe.Build(s, layer)
	if err != nil {
		return "", err
	}
	img, err := render.Render(l, s, ro)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", layer, err)
	}
	artwork, err := composite.Load(art)
	if err != nil {
		return "", err
	}
	final, err := composite.Compose(img, artwork)
	if err != nil {
		return "", fmt.Errorf("compose %s: %w", layer, err)
	}
	if err := composite.Save(final, out); err != nil {
		return "", err
	}
	log.Printf("wrote %s (%dx%d)", out, final.Bounds().Dx(), final.Bounds().Dy())
	return out, nil
}
