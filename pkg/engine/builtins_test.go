package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/hitbox/pkg/geom"
	"github.com/chazu/hitbox/pkg/panel"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "simple keyword",
			input:  `(port :inset 5)`,
			expect: `(port "__kw_inset" 5)`,
		},
		{
			name:   "multiple keywords",
			input:  `(panel :width 40 :height 20)`,
			expect: `(panel "__kw_width" 40 "__kw_height" 20)`,
		},
		{
			name:   "keyword in string preserved",
			input:  `"thing with :keyword inside"`,
			expect: `"thing with :keyword inside"`,
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "kebab-case identifier",
			input:  `(def kick-row :kick-offset)`,
			expect: `(def kick_row "__kw_kick-offset")`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "negative number preserved",
			input:  `(vec2 -0.5 -2.8)`,
			expect: `(vec2 -0.5 -2.8)`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; comment with :keyword`,
			expect: `// comment with :keyword`,
		},
		{
			name:   "single semicolon comment",
			input:  `; simple comment`,
			expect: `// simple comment`,
		},
		{
			name:   "hyphen in keyword preserved",
			input:  `:corner-radius`,
			expect: `"__kw_corner-radius"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Config form tests
// ---------------------------------------------------------------------------

func TestPanelForm(t *testing.T) {
	eng := NewEngine()

	source := `
(panel :width 44 :height 22 :corner-radius 1.5)
(controller :width 2.1 :height 5.1 :from-top 0.5)
(display :width 3 :height 1.5)
(keyswitch :width 1.5 :footprint :soldered)
(port :inset 6)
(screws :margin 1.2 :radius 0.25)
`
	spec, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}

	checks := []struct {
		name      string
		got, want float64
	}{
		{"width", spec.Width, 44},
		{"height", spec.Height, 22},
		{"corner radius", spec.CornerRadius, 1.5},
		{"controller width", spec.ControllerWidth, 2.1},
		{"controller height", spec.ControllerHeight, 5.1},
		{"controller from top", spec.ControllerYFromTop, 0.5},
		{"display width", spec.DisplayWidth, 3},
		{"display height", spec.DisplayHeight, 1.5},
		{"switch width", spec.SwitchWidth, 1.5},
		{"port inset", spec.PortInset, 6},
		{"screw margin", spec.ScrewMargin, 1.2},
		{"screw radius", spec.Cluster.ScrewRadius, 0.25},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %f, want %f", c.name, c.got, c.want)
		}
	}
	if spec.Footprint != "soldered" {
		t.Errorf("expected footprint=soldered, got %q", spec.Footprint)
	}
}

func TestClusterForm(t *testing.T) {
	eng := NewEngine()

	source := `
(def d 3)
(cluster :origin (vec2 27 14) :spacing d :angles (list 15 5)
         :button-radius 1.2 :kick-offset (vec2 -0.4 -3) :l1-offset (vec2 -1 -3.2))
(aux :radius 1 :inset 2 :spacing 2.4 :from-top 1.6)
`
	spec, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}

	c := spec.Cluster
	if c.Origin != geom.Pt(27, 14) {
		t.Errorf("origin = %v, want (27, 14)", c.Origin)
	}
	if c.Spacing != 3 {
		t.Errorf("spacing = %f, want 3 (from variable)", c.Spacing)
	}
	if len(c.PunchAngles) != 2 || c.PunchAngles[0] != 15 || c.PunchAngles[1] != 5 {
		t.Errorf("angles = %v, want [15 5]", c.PunchAngles)
	}
	if c.ButtonRadius != 1.2 {
		t.Errorf("button radius = %f, want 1.2", c.ButtonRadius)
	}
	if c.KickOffset != geom.Pt(-0.4, -3) {
		t.Errorf("kick offset = %v, want (-0.4, -3)", c.KickOffset)
	}
	if c.L1Offset != geom.Pt(-1, -3.2) {
		t.Errorf("l1 offset = %v, want (-1, -3.2)", c.L1Offset)
	}
	if c.AuxRadius != 1 || c.AuxInset != 2 || c.AuxSpacing != 2.4 || c.AuxFromTop != 1.6 {
		t.Errorf("aux = %+v", c)
	}
}

func TestDefaultsUntouched(t *testing.T) {
	eng := NewEngine()

	spec, evalErrs, err := eng.Evaluate(`(port :inset 4)`)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	want := panel.Default()
	want.PortInset = 4
	if spec.Width != want.Width || spec.Cluster.Origin != want.Cluster.Origin || spec.PortInset != 4 {
		t.Errorf("unexpected spec %+v", spec)
	}

	// A later evaluation starts from the defaults again.
	spec, _, err = eng.Evaluate("")
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if spec.PortInset != panel.Default().PortInset {
		t.Errorf("port inset leaked between evaluations: %f", spec.PortInset)
	}
}

func TestUnknownKeywordWarns(t *testing.T) {
	eng := NewEngine()

	res, err := eng.Run(`(panel :widht 30)`)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(res.Errors) > 0 {
		t.Fatalf("eval errors: %v", res.Errors)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d: %v", len(res.Warnings), res.Warnings)
	}
	w := res.Warnings[0]
	if w.Form != "panel" || !strings.Contains(w.Message, ":widht") {
		t.Errorf("unexpected warning %+v", w)
	}
	if res.Spec.Width != 40 {
		t.Errorf("misspelt keyword should leave width at default, got %f", res.Spec.Width)
	}
}

func TestRepeatedFormWarns(t *testing.T) {
	eng := NewEngine()

	res, err := eng.Run("(port :inset 4)\n(port :inset 6)")
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", res.Warnings)
	}
	if res.Spec.PortInset != 6 {
		t.Errorf("later value should win, got %f", res.Spec.PortInset)
	}
}

func TestWrongTypeIsEvalError(t *testing.T) {
	eng := NewEngine()

	spec, evalErrs, err := eng.Evaluate(`(panel :width "wide")`)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if spec != nil {
		t.Fatal("expected nil spec on eval error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval error for string width")
	}
	// zygomys decorates builtin errors; the form or the cause must survive.
	msg := evalErrs[0].Message
	if !strings.Contains(msg, "expected number") && !strings.Contains(msg, "panel") {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestPositionalArgumentRejected(t *testing.T) {
	eng := NewEngine()

	_, evalErrs, err := eng.Evaluate(`(panel 40 20)`)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval error for positional argument")
	}
}

func TestInvalidSpecIsEvalError(t *testing.T) {
	eng := NewEngine()

	spec, evalErrs, err := eng.Evaluate(`(panel :corner-radius 12) (keyswitch :footprint :alps)`)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if spec != nil {
		t.Fatal("expected nil spec for invalid geometry")
	}
	if len(evalErrs) != 2 {
		t.Fatalf("expected 2 validation errors, got %v", evalErrs)
	}
	if !strings.Contains(evalErrs[0].Message, "corner_radius") {
		t.Errorf("first error should name corner_radius, got %q", evalErrs[0].Message)
	}
	if !strings.Contains(evalErrs[1].Message, "footprint") {
		t.Errorf("second error should name footprint, got %q", evalErrs[1].Message)
	}
}

func TestNaNSpecIsEvalError(t *testing.T) {
	eng := NewEngine()

	spec, evalErrs, err := eng.Evaluate(`(def z 0.0) (panel :corner-radius (/ z z))`)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if spec != nil {
		t.Fatal("expected nil spec for a NaN corner radius")
	}
	if len(evalErrs) == 0 || !strings.Contains(evalErrs[0].Message, "corner_radius") {
		t.Fatalf("expected a corner_radius error, got %v", evalErrs)
	}
}

func TestVec2Arity(t *testing.T) {
	eng := NewEngine()

	_, evalErrs, err := eng.Evaluate(`(cluster :origin (vec2 1 2 3))`)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval error for vec2 with 3 arguments")
	}
}

func TestFormNames(t *testing.T) {
	got := strings.Join(FormNames(), " ")
	want := "aux cluster controller display keyswitch panel port screws"
	if got != want {
		t.Errorf("FormNames() = %q, want %q", got, want)
	}
}

// The shipped reference config reproduces the defaults.
func TestReferenceConfig(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("..", "..", "examples", "reference.hitbox"))
	if err != nil {
		t.Fatalf("read reference config: %v", err)
	}

	res, err := NewEngine().Run(string(src))
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(res.Errors) > 0 {
		t.Fatalf("eval errors: %v", res.Errors)
	}
	if len(res.Warnings) > 0 {
		t.Fatalf("warnings: %v", res.Warnings)
	}
	if res.Spec.DesignID() != panel.Default().DesignID() {
		t.Errorf("reference config differs from defaults: %+v", res.Spec)
	}
}
