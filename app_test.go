package main

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/hitbox/pkg/composite"
	"github.com/chazu/hitbox/pkg/panel"
)

// TestE2EReferenceConfig exercises the full pipeline: config script ->
// engine -> spec -> recipe -> layers.
func TestE2EReferenceConfig(t *testing.T) {
	app := NewApp()

	source, err := os.ReadFile("examples/reference.hitbox")
	if err != nil {
		t.Fatalf("failed to read reference.hitbox: %v", err)
	}

	result := app.Evaluate(string(source))

	// No errors expected.
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}

	if result.Design != panel.Default().DesignID().String() {
		t.Errorf("design = %s, want the default design", result.Design)
	}

	want := []string{"layer1", "layer2", "layer3", "layer4", "layer5", "layer6", "art", "art-bottom", "total"}
	if len(result.Layers) != len(want) {
		t.Fatalf("expected %d layers, got %d", len(want), len(result.Layers))
	}
	for i, l := range result.Layers {
		if l.Name != want[i] {
			t.Errorf("layer %d = %q, want %q", i, l.Name, want[i])
		}
		if l.Shapes == 0 {
			t.Errorf("layer %q: no shapes", l.Name)
		}
	}
	if got := result.Layers[len(want)-1].Shapes; got != 313 {
		t.Errorf("total has %d shapes, want 313", got)
	}
}

// TestE2EEmptySource builds the reference layout from an empty script.
func TestE2EEmptySource(t *testing.T) {
	app := NewApp()
	result := app.Evaluate("")

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors for empty source: %v", result.Errors)
	}
	if len(result.Layers) != 9 {
		t.Errorf("expected 9 layers for empty source, got %d", len(result.Layers))
	}
	if result.Spec == nil || result.Spec.Width != 40 {
		t.Errorf("expected the default spec, got %+v", result.Spec)
	}
}

// TestE2ESyntaxError ensures eval errors are reported, not fatal errors.
func TestE2ESyntaxError(t *testing.T) {
	app := NewApp()
	result := app.Evaluate("(panel :width 30")

	if len(result.Errors) == 0 {
		t.Fatal("expected eval errors for syntax error")
	}
	if len(result.Layers) != 0 {
		t.Errorf("expected 0 layers on error, got %d", len(result.Layers))
	}
	if result.Spec != nil {
		t.Error("expected nil spec on error")
	}
}

func TestGenerate(t *testing.T) {
	app := NewApp()
	dir := t.TempDir()

	written, err := app.Generate(panel.Default(), dir)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// 9 DXF files plus the combined SVG.
	if len(written) != 10 {
		t.Fatalf("expected 10 files, got %d: %v", len(written), written)
	}
	for _, p := range written {
		fi, err := os.Stat(p)
		if err != nil {
			t.Errorf("%s: %v", p, err)
			continue
		}
		if fi.Size() == 0 {
			t.Errorf("%s is empty", p)
		}
	}

	svg, err := os.ReadFile(filepath.Join(dir, "hitbox.svg"))
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	doc := string(svg)
	for _, id := range []string{"layer1", "layer6", "art", "art-bottom"} {
		if !strings.Contains(doc, `id="`+id+`"`) {
			t.Errorf("svg missing group %q", id)
		}
	}
	if strings.Contains(doc, `id="total"`) {
		t.Error("combined svg should leave out total")
	}
}

func TestGenerateSelectedLayers(t *testing.T) {
	app := NewApp()
	dir := t.TempDir()

	written, err := app.Generate(panel.Default(), dir, "layer2", "total")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := []string{
		filepath.Join(dir, "layer2.dxf"),
		filepath.Join(dir, "total.dxf"),
		filepath.Join(dir, "hitbox.svg"),
	}
	if strings.Join(written, " ") != strings.Join(want, " ") {
		t.Errorf("written = %v, want %v", written, want)
	}
	if _, err := os.Stat(filepath.Join(dir, "layer1.dxf")); !os.IsNotExist(err) {
		t.Error("layer1.dxf should not be written")
	}
}

func TestGenerateUnknownLayer(t *testing.T) {
	app := NewApp()

	_, err := app.Generate(panel.Default(), t.TempDir(), "layer7")
	if err == nil {
		t.Fatal("expected error for unknown layer")
	}
	if !strings.Contains(err.Error(), "layer7") {
		t.Errorf("error should name the layer, got: %v", err)
	}
}

func TestGenerateInvalidSpec(t *testing.T) {
	app := NewApp()
	s := panel.Default()
	s.Width = 0

	if _, err := app.Generate(s, t.TempDir()); err == nil {
		t.Fatal("expected error for invalid spec")
	}
}

// writeArtwork saves a flat grey image to use as preview artwork.
func writeArtwork(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 180, G: 180, B: 180, A: 255})
		}
	}
	if err := composite.Save(img, path); err != nil {
		t.Fatalf("save artwork: %v", err)
	}
}

func TestPreview(t *testing.T) {
	app := NewApp()
	dir := t.TempDir()
	art := filepath.Join(dir, "stock.png")
	writeArtwork(t, art, 200, 100)

	written, err := app.Preview(panel.Default(), dir, PreviewOptions{Art: art, DPI: 20})
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if len(written) != 1 || filepath.Base(written[0]) != "final.png" {
		t.Fatalf("expected final.png, got %v", written)
	}

	img, err := composite.Load(written[0])
	if err != nil {
		t.Fatalf("load final.png: %v", err)
	}
	if img.Bounds().Empty() {
		t.Error("final.png is empty")
	}
}

func TestPreviewBothSides(t *testing.T) {
	app := NewApp()
	dir := t.TempDir()
	art := filepath.Join(dir, "stock.png")
	writeArtwork(t, art, 200, 100)

	written, err := app.Preview(panel.Default(), dir, PreviewOptions{Art: art, ArtBottom: art, DPI: 20, Sheet: true})
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("expected 2 files, got %v", written)
	}
	if filepath.Base(written[1]) != "final-bottom.png" {
		t.Errorf("second file = %s, want final-bottom.png", written[1])
	}
}

func TestPreviewMissingArtwork(t *testing.T) {
	app := NewApp()
	dir := t.TempDir()

	_, err := app.Preview(panel.Default(), dir, PreviewOptions{Art: filepath.Join(dir, "nope.png"), DPI: 20})
	if err == nil {
		t.Fatal("expected error for missing artwork")
	}
}

func TestLoadSpec(t *testing.T) {
	app := NewApp()

	s, err := app.LoadSpec("")
	if err != nil {
		t.Fatalf("LoadSpec(\"\"): %v", err)
	}
	if s.DesignID() != panel.Default().DesignID() {
		t.Error("empty path should give the defaults")
	}

	path := filepath.Join(t.TempDir(), "wide.hitbox")
	if err := os.WriteFile(path, []byte("(panel :width 48)"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err = app.LoadSpec(path)
	if err != nil {
		t.Fatalf("LoadSpec: %v", err)
	}
	if s.Width != 48 {
		t.Errorf("width = %f, want 48", s.Width)
	}
}

func TestLoadSpecErrorsNamePath(t *testing.T) {
	app := NewApp()

	path := filepath.Join(t.TempDir(), "bad.hitbox")
	if err := os.WriteFile(path, []byte("(panel :corner-radius 30)"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := app.LoadSpec(path)
	if err == nil {
		t.Fatal("expected error for invalid config")
	}
	if !strings.Contains(err.Error(), "bad.hitbox") || !strings.Contains(err.Error(), "corner_radius") {
		t.Errorf("error should name the file and field, got: %v", err)
	}

	if _, err := app.LoadSpec(filepath.Join(t.TempDir(), "missing.hitbox")); err == nil {
		t.Error("expected error for missing config")
	}
}
