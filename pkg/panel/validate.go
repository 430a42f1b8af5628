package panel

import (
	"fmt"
	"math"

	"github.com/chazu/hitbox/pkg/footprint"
)

// ValidationError describes one problem with a Spec.
type ValidationError struct {
	Field   string // dotted field name, e.g. "cluster.spacing"
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("panel: %s: %s", e.Field, e.Message)
}

// ValidationErrors is the full list of findings for a Spec.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	switch len(v) {
	case 0:
		return "panel: no validation errors"
	case 1:
		return v[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", v[0].Error(), len(v)-1)
	}
}

// Validate checks that the Spec describes buildable geometry. It returns nil
// when the Spec is valid; otherwise a non-empty ValidationErrors.
func (s Spec) Validate() error {
	var errs ValidationErrors
	errs = append(errs, validateDimensions(s)...)
	errs = append(errs, validateCorner(s)...)
	errs = append(errs, validateCluster(s.Cluster)...)

	if _, err := footprint.Lookup(s.Footprint); err != nil {
		errs = append(errs, ValidationError{Field: "footprint", Message: err.Error()})
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// FrameInset is the distance of the layer5 inner frame from the panel edge.
const FrameInset = 2.0

func finite(field string, vs ...float64) []ValidationError {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return []ValidationError{{Field: field, Message: fmt.Sprintf("is %v, must be finite", v)}}
		}
	}
	return nil
}

func positive(field string, v float64) []ValidationError {
	if v > 0 && !math.IsInf(v, 0) {
		return nil
	}
	return []ValidationError{{Field: field, Message: fmt.Sprintf("is %.4f, must be positive", v)}}
}

func validateDimensions(s Spec) []ValidationError {
	var errs []ValidationError
	errs = append(errs, positive("width", s.Width)...)
	errs = append(errs, positive("height", s.Height)...)
	errs = append(errs, positive("controller_width", s.ControllerWidth)...)
	errs = append(errs, positive("controller_height", s.ControllerHeight)...)
	errs = append(errs, positive("switch_width", s.SwitchWidth)...)
	errs = append(errs, positive("display_width", s.DisplayWidth)...)
	errs = append(errs, positive("display_height", s.DisplayHeight)...)

	errs = append(errs, finite("controller_y_from_top", s.ControllerYFromTop)...)
	errs = append(errs, finite("screw_margin", s.ScrewMargin)...)

	if s.ControllerYFromTop < 0 {
		errs = append(errs, ValidationError{Field: "controller_y_from_top", Message: "must not be negative"})
	}
	if s.ScrewMargin < 0 {
		errs = append(errs, ValidationError{Field: "screw_margin", Message: "must not be negative"})
	}
	if s.ControllerWidth >= s.Width {
		errs = append(errs, ValidationError{
			Field:   "controller_width",
			Message: fmt.Sprintf("%.4f does not fit in panel width %.4f", s.ControllerWidth, s.Width),
		})
	}
	if s.ControllerHeight+s.ControllerYFromTop > s.Height {
		errs = append(errs, ValidationError{
			Field:   "controller_height",
			Message: fmt.Sprintf("%.4f below the top edge exceeds panel height %.4f", s.ControllerHeight+s.ControllerYFromTop, s.Height),
		})
	}
	if !(s.PortInset > 0 && s.PortInset < s.Width) {
		errs = append(errs, ValidationError{
			Field:   "port_inset",
			Message: fmt.Sprintf("%.4f must lie inside the panel width %.4f", s.PortInset, s.Width),
		})
	}
	return errs
}

// validateCorner enforces 2r <= min(w, h) so the outline arcs meet the
// straight edges, and the same for the inner frame FrameInset inside it.
func validateCorner(s Spec) []ValidationError {
	if errs := finite("corner_radius", s.CornerRadius); errs != nil {
		return errs
	}
	if s.CornerRadius < 0 {
		return []ValidationError{{Field: "corner_radius", Message: "must not be negative"}}
	}
	short := math.Min(s.Width, s.Height)
	if 2*s.CornerRadius > short {
		return []ValidationError{{
			Field:   "corner_radius",
			Message: fmt.Sprintf("%.4f is more than half of the shorter side %.4f", s.CornerRadius, short),
		}}
	}
	if inner := short - 2*FrameInset; !(inner >= 2*s.CornerRadius) {
		return []ValidationError{{
			Field:   "inset_frame",
			Message: fmt.Sprintf("shorter side %.4f leaves %.4f for a frame with corner radius %.4f", short, inner, s.CornerRadius),
		}}
	}
	return nil
}

func validateCluster(c Cluster) []ValidationError {
	var errs []ValidationError
	errs = append(errs, positive("cluster.button_radius", c.ButtonRadius)...)
	errs = append(errs, positive("cluster.spacing", c.Spacing)...)
	errs = append(errs, positive("cluster.aux_radius", c.AuxRadius)...)
	errs = append(errs, positive("cluster.screw_radius", c.ScrewRadius)...)
	errs = append(errs, finite("cluster.origin", c.Origin.X, c.Origin.Y)...)
	errs = append(errs, finite("cluster.aux_inset", c.AuxInset)...)
	errs = append(errs, finite("cluster.aux_spacing", c.AuxSpacing)...)
	errs = append(errs, finite("cluster.aux_from_top", c.AuxFromTop)...)
	errs = append(errs, finite("cluster.l1_offset", c.L1Offset.X, c.L1Offset.Y)...)
	if len(c.PunchAngles) != 2 {
		errs = append(errs, ValidationError{
			Field:   "cluster.punch_angles",
			Message: fmt.Sprintf("need 2 angles (LP->MP, MP->HP), got %d", len(c.PunchAngles)),
		})
	} else {
		errs = append(errs, finite("cluster.punch_angles", c.PunchAngles...)...)
	}
	// A zero kick offset puts each kick on its punch and collapses the
	// special-button triangles.
	if e := finite("cluster.kick_offset", c.KickOffset.X, c.KickOffset.Y); e != nil {
		errs = append(errs, e...)
	} else if c.KickOffset.X == 0 && c.KickOffset.Y == 0 {
		errs = append(errs, ValidationError{Field: "cluster.kick_offset", Message: "must not be zero"})
	}
	return errs
}
