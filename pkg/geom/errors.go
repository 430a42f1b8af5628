package geom

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDegenerate marks input whose geometry is undefined, such as a triangle
// base of zero length.
var ErrDegenerate = errors.New("degenerate geometry")

// GeometryError reports a failed geometric construction together with the
// input points that caused it.
type GeometryError struct {
	Op     string  // construction that failed
	Anchor string  // anchor being computed, if known
	Points []Point // offending input
	Err    error
}

func (e *GeometryError) Error() string {
	pts := make([]string, len(e.Points))
	for i, p := range e.Points {
		pts[i] = fmt.Sprintf("(%.4f, %.4f)", p.X, p.Y)
	}
	msg := fmt.Sprintf("geom: %s: %v at %s", e.Op, e.Err, strings.Join(pts, " "))
	if e.Anchor != "" {
		msg = fmt.Sprintf("geom: anchor %s: %s: %v at %s", e.Anchor, e.Op, e.Err, strings.Join(pts, " "))
	}
	return msg
}

func (e *GeometryError) Unwrap() error {
	return e.Err
}
