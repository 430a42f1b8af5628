package kernel

import (
	"fmt"

	"github.com/chazu/hitbox/pkg/shape"
)

// Sheet returns the material left on a layer: the largest outline minus
// every closed cutout. Open polylines and loose arcs carve nothing.
func Sheet(k Kernel, l *shape.Layer) (Region, error) {
	outer, ok := largestOutline(l)
	if !ok {
		return nil, fmt.Errorf("kernel: layer %s has no outline", l.Name)
	}
	material := roundedRect(k, outer)

	var holes []Region
	for i, s := range l.Shapes {
		h, err := cutout(k, s)
		if err != nil {
			return nil, fmt.Errorf("kernel: layer %s shape %d: %w", l.Name, i, err)
		}
		if h == nil {
			continue
		}
		if rr, ok := s.(shape.RoundedRect); ok && rr == outer {
			continue
		}
		holes = append(holes, h)
	}
	if len(holes) == 0 {
		return material, nil
	}
	return k.Difference(material, k.Union(holes...)), nil
}

func largestOutline(l *shape.Layer) (shape.RoundedRect, bool) {
	var best shape.RoundedRect
	found := false
	for _, s := range l.Shapes {
		rr, ok := s.(shape.RoundedRect)
		if !ok {
			continue
		}
		if !found || rr.Width*rr.Height > best.Width*best.Height {
			best, found = rr, true
		}
	}
	return best, found
}

func roundedRect(k Kernel, rr shape.RoundedRect) Region {
	return k.Translate(k.RoundedRect(rr.Width, rr.Height, rr.Radius), rr.Origin.X, rr.Origin.Y)
}

// cutout returns the region removed by s, or nil if s removes nothing.
func cutout(k Kernel, s shape.Shape) (Region, error) {
	switch v := s.(type) {
	case shape.Circle:
		c, err := k.Circle(v.Radius)
		if err != nil {
			return nil, err
		}
		return k.Translate(c, v.Center.X, v.Center.Y), nil
	case shape.Rect:
		return k.Translate(k.Rect(v.Width, v.Height), v.Corner.X, v.Corner.Y), nil
	case shape.RoundedRect:
		return roundedRect(k, v), nil
	case shape.Polyline:
		if !v.Closed || len(v.Points) < 3 {
			return nil, nil
		}
		pts := make([][2]float64, len(v.Points))
		for i, p := range v.Points {
			pts[i] = [2]float64{p.X, p.Y}
		}
		return k.Polygon(pts)
	default:
		return nil, nil
	}
}
