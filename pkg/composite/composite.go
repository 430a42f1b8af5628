// Package composite merges a rendered layer with reference artwork: the
// artwork is padded, scaled to the layer, overlaid with the layer's alpha
// and cropped to its non-black content.
package composite

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // artwork may be webp
)

// Padding fractions applied to artwork before scaling.
const (
	PadX = 0.06
	PadY = 0.07
)

// ErrEmptyImage marks a zero-sized input.
var ErrEmptyImage = errors.New("empty image")

// CompositionError reports a failed compositing step.
type CompositionError struct {
	Op     string
	Reason string
	Err    error
}

func (e *CompositionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("composite: %s: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("composite: %s: %v", e.Op, e.Err)
}

func (e *CompositionError) Unwrap() error {
	return e.Err
}

func checkSize(op, what string, img image.Image) error {
	if img == nil || img.Bounds().Empty() {
		return &CompositionError{Op: op, Reason: what, Err: ErrEmptyImage}
	}
	return nil
}

// Pad surrounds img with an opaque black border of int(0.06*w) pixels left
// and right and int(0.07*h) pixels top and bottom.
func Pad(img image.Image) (*image.NRGBA, error) {
	if err := checkSize("pad", "artwork", img); err != nil {
		return nil, err
	}
	b := img.Bounds()
	px, py := int(float64(b.Dx())*PadX), int(float64(b.Dy())*PadY)
	dst := imaging.New(b.Dx()+2*px, b.Dy()+2*py, color.Black)
	return imaging.Paste(dst, img, image.Pt(px, py)), nil
}

// Resize scales img to exactly w x h with Catmull-Rom resampling.
func Resize(img image.Image, w, h int) (*image.NRGBA, error) {
	if err := checkSize("resize", "source", img); err != nil {
		return nil, err
	}
	if w <= 0 || h <= 0 {
		return nil, &CompositionError{Op: "resize", Reason: fmt.Sprintf("target %dx%d", w, h), Err: ErrEmptyImage}
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst, nil
}

// Overlay draws fg over bg at the origin, blending by fg's alpha.
func Overlay(bg, fg image.Image) *image.NRGBA {
	return imaging.Overlay(bg, fg, image.Pt(0, 0), 1.0)
}

// CropToContent crops img to the bounding box of pixels whose luminance is
// non-zero. An all-black image is returned unchanged.
func CropToContent(img image.Image) *image.NRGBA {
	gray := imaging.Grayscale(img)
	b := gray.Bounds()
	minX, minY, maxX, maxY := b.Max.X, b.Max.Y, b.Min.X-1, b.Min.Y-1

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if gray.Pix[gray.PixOffset(x, y)] == 0 {
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}

	if maxX < minX {
		return imaging.Clone(img)
	}
	// gray is rebased to the origin; shift the box back onto img.
	o := img.Bounds().Min
	return imaging.Crop(img, image.Rect(minX, minY, maxX+1, maxY+1).Add(o))
}

// Compose pads the artwork, scales it to the layer's size, overlays the
// layer and crops the result to content.
func Compose(layer, artwork image.Image) (*image.NRGBA, error) {
	if err := checkSize("compose", "layer", layer); err != nil {
		return nil, err
	}
	padded, err := Pad(artwork)
	if err != nil {
		return nil, err
	}
	lb := layer.Bounds()
	bg, err := Resize(padded, lb.Dx(), lb.Dy())
	if err != nil {
		return nil, err
	}
	return CropToContent(Overlay(bg, layer)), nil
}

// Load decodes an image file; the format is sniffed from its content.
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, &CompositionError{Op: "load", Reason: path, Err: err}
	}
	return img, nil
}

// Save encodes img to path; the format follows the file extension.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return &CompositionError{Op: "save", Reason: path, Err: err}
	}
	return nil
}
