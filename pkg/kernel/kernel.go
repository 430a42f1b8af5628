// Package kernel defines the abstract 2D region kernel used to compute the
// material left on a cut sheet. Implementations (sdfx) provide primitives
// and boolean operations behind this interface.
package kernel

// Region is an opaque handle to a kernel region in the panel plane.
type Region interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [2]float64)
	// Contains reports whether (x, y) is inside or on the boundary.
	Contains(x, y float64) bool
}

// Kernel is the abstract region kernel interface.
type Kernel interface {
	// Primitives. Rect and RoundedRect have their minimum corner at the
	// origin; Circle is centred on it.
	Rect(w, h float64) Region
	RoundedRect(w, h, r float64) Region
	Circle(r float64) (Region, error)
	Polygon(pts [][2]float64) (Region, error)

	// Boolean operations
	Union(rs ...Region) Region
	Difference(a, b Region) Region
	Intersection(a, b Region) Region

	// Transforms
	Translate(r Region, x, y float64) Region
	Rotate(r Region, deg float64) Region

	// Raster output
	ToMask(r Region, min, max [2]float64, cols, rows int) (*Mask, error)
}
