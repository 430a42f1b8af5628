// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"
	"math"

	"github.com/chazu/hitbox/pkg/kernel"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// sdfxRegion wraps an sdf.SDF2 to implement kernel.Region.
type sdfxRegion struct {
	s sdf.SDF2
}

// BoundingBox returns the axis-aligned bounding box.
func (r *sdfxRegion) BoundingBox() (min, max [2]float64) {
	bb := r.s.BoundingBox()
	return [2]float64{bb.Min.X, bb.Min.Y}, [2]float64{bb.Max.X, bb.Max.Y}
}

// Contains reports whether the signed distance at (x, y) is not positive.
func (r *sdfxRegion) Contains(x, y float64) bool {
	return r.s.Evaluate(v2.Vec{X: x, Y: y}) <= 0
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct{}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{}
}

// unwrap extracts the underlying sdf.SDF2 from a kernel.Region.
func unwrap(r kernel.Region) sdf.SDF2 {
	return r.(*sdfxRegion).s
}

// wrap creates a kernel.Region from an sdf.SDF2.
func wrap(s sdf.SDF2) kernel.Region {
	return &sdfxRegion{s: s}
}

// Rect creates a w x h rectangle with its minimum corner at the origin.
// sdf.Box2D centres the box on the origin, so we translate by half-dimensions.
func (k *SdfxKernel) Rect(w, h float64) kernel.Region {
	return k.RoundedRect(w, h, 0)
}

// RoundedRect creates a w x h rectangle with corner radius r and its
// minimum corner at the origin.
func (k *SdfxKernel) RoundedRect(w, h, r float64) kernel.Region {
	s := sdf.Box2D(v2.Vec{X: w, Y: h}, r)
	m := sdf.Translate2d(v2.Vec{X: w / 2, Y: h / 2})
	return wrap(sdf.Transform2D(s, m))
}

// Circle creates a circle of radius r centred on the origin.
func (k *SdfxKernel) Circle(r float64) (kernel.Region, error) {
	if !(r > 0) || math.IsInf(r, 0) {
		return nil, fmt.Errorf("sdfx: circle r=%.4f: radius must be positive and finite", r)
	}
	s, err := sdf.Circle2D(r)
	if err != nil {
		return nil, fmt.Errorf("sdfx: circle r=%.4f: %w", r, err)
	}
	return wrap(s), nil
}

// Polygon creates a closed polygon from its vertices.
func (k *SdfxKernel) Polygon(pts [][2]float64) (kernel.Region, error) {
	vs := make([]v2.Vec, len(pts))
	for i, p := range pts {
		vs[i] = v2.Vec{X: p[0], Y: p[1]}
	}
	s, err := sdf.Polygon2D(vs)
	if err != nil {
		return nil, fmt.Errorf("sdfx: polygon: %w", err)
	}
	return wrap(s), nil
}

// Union returns the union of the given regions. It panics when called
// with no regions.
func (k *SdfxKernel) Union(rs ...kernel.Region) kernel.Region {
	if len(rs) == 0 {
		panic("sdfx: union of no regions")
	}
	if len(rs) == 1 {
		return rs[0]
	}
	ss := make([]sdf.SDF2, len(rs))
	for i, r := range rs {
		ss[i] = unwrap(r)
	}
	return wrap(sdf.Union2D(ss...))
}

// Difference returns the difference a - b.
func (k *SdfxKernel) Difference(a, b kernel.Region) kernel.Region {
	return wrap(sdf.Difference2D(unwrap(a), unwrap(b)))
}

// Intersection returns the intersection of two regions.
func (k *SdfxKernel) Intersection(a, b kernel.Region) kernel.Region {
	return wrap(sdf.Intersect2D(unwrap(a), unwrap(b)))
}

// Translate moves a region by (x, y).
func (k *SdfxKernel) Translate(r kernel.Region, x, y float64) kernel.Region {
	m := sdf.Translate2d(v2.Vec{X: x, Y: y})
	return wrap(sdf.Transform2D(unwrap(r), m))
}

// Rotate rotates a region counter-clockwise about the origin by deg degrees.
func (k *SdfxKernel) Rotate(r kernel.Region, deg float64) kernel.Region {
	m := sdf.Rotate2d(deg * math.Pi / 180.0)
	return wrap(sdf.Transform2D(unwrap(r), m))
}

// ToMask samples the region at the centres of a cols x rows grid spanning
// the window [min, max]. Row 0 is the top of the window.
func (k *SdfxKernel) ToMask(r kernel.Region, min, max [2]float64, cols, rows int) (*kernel.Mask, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("sdfx: mask size %dx%d must be positive", cols, rows)
	}
	if max[0] <= min[0] || max[1] <= min[1] {
		return nil, fmt.Errorf("sdfx: empty mask window %v-%v", min, max)
	}

	s := unwrap(r)
	dx := (max[0] - min[0]) / float64(cols)
	dy := (max[1] - min[1]) / float64(rows)

	cells := make([]bool, cols*rows)
	for row := 0; row < rows; row++ {
		y := max[1] - (float64(row)+0.5)*dy
		for col := 0; col < cols; col++ {
			x := min[0] + (float64(col)+0.5)*dx
			cells[row*cols+col] = s.Evaluate(v2.Vec{X: x, Y: y}) <= 0
		}
	}

	return &kernel.Mask{Cols: cols, Rows: rows, Cells: cells}, nil
}
