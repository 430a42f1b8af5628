package engine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/chazu/hitbox/pkg/geom"
	"github.com/chazu/hitbox/pkg/panel"
	zygo "github.com/glycerine/zygomys/zygo"
)

// specBuilder accumulates the spec while a script runs. Every evaluation
// gets its own builder, starting from panel.Default().
type specBuilder struct {
	spec     panel.Spec
	warnings []EvalWarning
	seen     map[string]bool
}

func newSpecBuilder() *specBuilder {
	return &specBuilder{spec: panel.Default(), seen: make(map[string]bool)}
}

func (b *specBuilder) warn(form, format string, args ...any) {
	b.warnings = append(b.warnings, EvalWarning{Form: form, Message: fmt.Sprintf(format, args...)})
}

// result validates the accumulated spec. Validation findings are reported
// as eval errors since the script produced unbuildable geometry.
func (b *specBuilder) result() *EvalResult {
	if err := b.spec.Validate(); err != nil {
		var verrs panel.ValidationErrors
		if !errors.As(err, &verrs) {
			return &EvalResult{Errors: []EvalError{{Message: err.Error()}}, Warnings: b.warnings}
		}
		out := make([]EvalError, len(verrs))
		for i, v := range verrs {
			out[i] = EvalError{Message: v.Error()}
		}
		return &EvalResult{Errors: out, Warnings: b.warnings}
	}
	spec := b.spec.Clone()
	return &EvalResult{Spec: &spec, Warnings: b.warnings}
}

// setter stores one keyword value into the spec.
type setter func(v zygo.Sexp) error

func num(dst *float64) setter {
	return func(v zygo.Sexp) error {
		f, err := toFloat64(v)
		if err != nil {
			return err
		}
		*dst = f
		return nil
	}
}

func point(dst *geom.Point) setter {
	return func(v zygo.Sexp) error {
		p, err := toVec2(v)
		if err != nil {
			return err
		}
		*dst = p
		return nil
	}
}

func floats(dst *[]float64) setter {
	return func(v zygo.Sexp) error {
		fs, err := toFloats(v)
		if err != nil {
			return err
		}
		*dst = fs
		return nil
	}
}

func keyword(dst *string) setter {
	return func(v zygo.Sexp) error {
		s, err := toKeywordString(v)
		if err != nil {
			return err
		}
		*dst = s
		return nil
	}
}

// forms maps each config form to its keyword setters.
func forms(s *panel.Spec) map[string]map[string]setter {
	c := &s.Cluster
	return map[string]map[string]setter{
		// (panel :width 40 :height 20 :corner-radius 1)
		"panel": {
			"width":         num(&s.Width),
			"height":        num(&s.Height),
			"corner-radius": num(&s.CornerRadius),
		},
		// (controller :width 2.3 :height 5.3 :from-top 0.38)
		"controller": {
			"width":    num(&s.ControllerWidth),
			"height":   num(&s.ControllerHeight),
			"from-top": num(&s.ControllerYFromTop),
		},
		// (display :width 3.6 :height 1.9)
		"display": {
			"width":  num(&s.DisplayWidth),
			"height": num(&s.DisplayHeight),
		},
		// (keyswitch :width 1.4 :footprint :hotswap)
		"keyswitch": {
			"width":     num(&s.SwitchWidth),
			"footprint": keyword(&s.Footprint),
		},
		// (port :inset 5)
		"port": {
			"inset": num(&s.PortInset),
		},
		// (screws :margin 1 :radius 0.2)
		"screws": {
			"margin": num(&s.ScrewMargin),
			"radius": num(&c.ScrewRadius),
		},
		// (cluster :origin (vec2 28 15) :spacing 2.8 :angles (list 20 0) ...)
		"cluster": {
			"origin":        point(&c.Origin),
			"spacing":       num(&c.Spacing),
			"angles":        floats(&c.PunchAngles),
			"button-radius": num(&c.ButtonRadius),
			"kick-offset":   point(&c.KickOffset),
			"l1-offset":     point(&c.L1Offset),
		},
		// (aux :radius 1.05 :inset 2.5 :spacing 2.5 :from-top 1.5)
		"aux": {
			"radius":   num(&c.AuxRadius),
			"inset":    num(&c.AuxInset),
			"spacing":  num(&c.AuxSpacing),
			"from-top": num(&c.AuxFromTop),
		},
	}
}

// FormNames lists the config forms a script may use.
func FormNames() []string {
	var s panel.Spec
	names := make([]string, 0, 8)
	for n := range forms(&s) {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// registerBuiltins installs the config forms into a zygomys environment.
// The forms write into b's spec as the script runs.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, b *specBuilder) {
	for name, fields := range forms(&b.spec) {
		registerForm(env, b, name, fields)
	}

	// (vec2 28 15)
	env.AddFunction("vec2", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("vec2 requires exactly 2 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec2: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec2: y: %w", err)
		}
		return &sexpVec2{vec: geom.Pt(x, y)}, nil
	})
}

func registerForm(env *zygo.Zlisp, b *specBuilder, form string, fields map[string]setter) {
	env.AddFunction(form, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) > 0 {
			return zygo.SexpNull, fmt.Errorf("%s: takes keyword arguments only, got %s",
				form, pa.positional[0].SexpString(nil))
		}
		if b.seen[form] {
			b.warn(form, "%s given more than once; later values win", form)
		}
		b.seen[form] = true

		kws := make([]string, 0, len(pa.kw))
		for kw := range pa.kw {
			kws = append(kws, kw)
		}
		sort.Strings(kws)

		for _, kw := range kws {
			set, ok := fields[kw]
			if !ok {
				b.warn(form, "%s: unknown keyword :%s", form, kw)
				continue
			}
			if err := set(pa.kw[kw]); err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %s: %w", form, kw, err)
			}
		}
		return zygo.SexpNull, nil
	})
}
