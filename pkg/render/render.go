// Package render rasterizes panel layers with draw2d: black strokes on a
// transparent canvas sized from the panel at a given DPI, optionally over a
// translucent fill of the remaining sheet material.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/chazu/hitbox/pkg/kernel"
	"github.com/chazu/hitbox/pkg/panel"
	"github.com/chazu/hitbox/pkg/shape"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
)

const cmPerInch = 2.54

// Options control rasterization.
type Options struct {
	DPI       float64       // pixels per inch, default 300
	LineWidth float64       // stroke width in pixels, default 2
	Stroke    color.Color   // default opaque black
	Kernel    kernel.Kernel // when set, the sheet material is filled first
	Fill      color.Color   // sheet fill, default translucent plywood
}

// DefaultOptions returns the preview settings.
func DefaultOptions() Options {
	return Options{DPI: 300, LineWidth: 2}
}

func (o Options) withDefaults() Options {
	if o.DPI == 0 {
		o.DPI = 300
	}
	if o.LineWidth == 0 {
		o.LineWidth = 2
	}
	if o.Stroke == nil {
		o.Stroke = color.Black
	}
	if o.Fill == nil {
		o.Fill = color.NRGBA{R: 222, G: 184, B: 135, A: 160}
	}
	return o
}

// Size returns the canvas size in pixels for a panel of w x h cm.
func Size(w, h, dpi float64) (int, int) {
	return int(math.Round(w / cmPerInch * dpi)), int(math.Round(h / cmPerInch * dpi))
}

// ErrEmptyCanvas is returned when the panel is too small for the DPI.
var ErrEmptyCanvas = errors.New("render: empty canvas")

// canvas maps panel centimetres (Y up) onto pixels (Y down).
type canvas struct {
	w, h   int
	sx, sy float64
}

func (c canvas) px(x, y float64) (float64, float64) {
	return x * c.sx, float64(c.h) - y*c.sy
}

// Render draws l onto a transparent RGBA canvas for a panel of spec's size.
func Render(l *shape.Layer, s panel.Spec, o Options) (*image.RGBA, error) {
	o = o.withDefaults()
	w, h := Size(s.Width, s.Height, o.DPI)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d px for %.2fx%.2f cm at %.0f dpi", ErrEmptyCanvas, w, h, s.Width, s.Height, o.DPI)
	}
	c := canvas{w: w, h: h, sx: float64(w) / s.Width, sy: float64(h) / s.Height}
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	if o.Kernel != nil {
		if err := fillSheet(img, l, s, o); err != nil {
			return nil, err
		}
	}

	gc := draw2dimg.NewGraphicContext(img)
	gc.SetStrokeColor(o.Stroke)
	gc.SetLineWidth(o.LineWidth)

	for _, sh := range l.Shapes {
		for _, p := range shape.Primitives(sh) {
			gc.BeginPath()
			trace(gc, c, p)
			gc.Stroke()
		}
	}
	return img, nil
}

func trace(gc *draw2dimg.GraphicContext, c canvas, s shape.Shape) {
	switch v := s.(type) {
	case shape.Circle:
		x, y := c.px(v.Center.X, v.Center.Y)
		draw2dkit.Ellipse(gc, x, y, v.Radius*c.sx, v.Radius*c.sy)
	case shape.Rect:
		x0, y0 := c.px(v.Corner.X, v.Corner.Y)
		x1, y1 := c.px(v.Corner.X+v.Width, v.Corner.Y+v.Height)
		draw2dkit.Rectangle(gc, x0, y1, x1, y0)
	case shape.Polyline:
		for i, p := range v.Points {
			x, y := c.px(p.X, p.Y)
			if i == 0 {
				gc.MoveTo(x, y)
			} else {
				gc.LineTo(x, y)
			}
		}
		if v.Closed {
			gc.Close()
		}
	case shape.Arc:
		// Y flips, so counter-clockwise in the panel is negative on screen.
		x, y := c.px(v.Center.X, v.Center.Y)
		sx, sy := c.px(v.StartPoint().X, v.StartPoint().Y)
		gc.MoveTo(sx, sy)
		gc.ArcTo(x, y, v.Radius*c.sx, v.Radius*c.sy, -v.Start*math.Pi/180, -v.Sweep()*math.Pi/180)
	}
}

func fillSheet(img *image.RGBA, l *shape.Layer, s panel.Spec, o Options) error {
	region, err := kernel.Sheet(o.Kernel, l)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	b := img.Bounds()
	mask, err := o.Kernel.ToMask(region, [2]float64{0, 0}, [2]float64{s.Width, s.Height}, b.Dx(), b.Dy())
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	for y := 0; y < mask.Rows; y++ {
		for x := 0; x < mask.Cols; x++ {
			if mask.At(x, y) {
				img.Set(x, y, o.Fill)
			}
		}
	}
	return nil
}
