package layout

import (
	"errors"
	"fmt"

	"github.com/chazu/hitbox/pkg/geom"
	"github.com/chazu/hitbox/pkg/panel"
	"gonum.org/v1/gonum/spatial/r2"
)

// MainNames is the player-one order of the main cluster.
var MainNames = []string{"LP", "MP", "HP", "LK", "MK", "HK", "DI", "L1", "L2"}

// Main returns the 18 main-cluster anchors: the player-one nine in
// MainNames order followed by their mirrored copies in the same order.
//
// The punch row starts at the cluster origin and steps Spacing along each
// PunchAngles entry. Kicks are the punches shifted by KickOffset. DI sits on
// the right apex of the equilateral triangle over (HP, HK), L2 on the right
// apex over (MK, LK), and L1 is LK shifted by L1Offset.
func Main(s panel.Spec) ([]Anchor, error) {
	c := s.Cluster
	if len(c.PunchAngles) != 2 {
		return nil, fmt.Errorf("layout: cluster needs 2 punch angles, got %d", len(c.PunchAngles))
	}

	lp := c.Origin
	mp := geom.Polar(lp, c.Spacing, c.PunchAngles[0])
	hp := geom.Polar(mp, c.Spacing, c.PunchAngles[1])
	lk := r2.Add(lp, c.KickOffset)
	mk := r2.Add(mp, c.KickOffset)
	hk := r2.Add(hp, c.KickOffset)

	di, _, err := geom.ThirdVertex(hp, hk)
	if err != nil {
		return nil, anchorError("DI", err)
	}
	l2, _, err := geom.ThirdVertex(mk, lk)
	if err != nil {
		return nil, anchorError("L2", err)
	}
	l1 := r2.Add(lk, c.L1Offset)

	pos := []geom.Point{lp, mp, hp, lk, mk, hk, di, l1, l2}
	left := make([]Anchor, len(pos))
	for i, p := range pos {
		left[i] = Anchor{Name: MainNames[i], Pos: p, Radius: c.ButtonRadius, Role: RoleButton}
	}
	return append(left, Mirror(left, s.Width)...), nil
}

func anchorError(name string, err error) error {
	var ge *geom.GeometryError
	if errors.As(err, &ge) {
		cp := *ge
		cp.Anchor = name
		return fmt.Errorf("layout: %w", &cp)
	}
	return fmt.Errorf("layout: anchor %s: %w", name, err)
}

// Aux returns Select, Start, Select_reverse, Start_reverse. Select sits
// AuxInset left of the controller's left edge, AuxFromTop below the top;
// Start is AuxSpacing further left.
func Aux(s panel.Spec) []Anchor {
	c := s.Cluster
	sel := geom.Pt(s.Width/2-s.ControllerWidth/2-c.AuxInset, s.Height-c.AuxFromTop)
	start := geom.Pt(sel.X-c.AuxSpacing, sel.Y)

	left := []Anchor{
		{Name: "Select", Pos: sel, Radius: c.AuxRadius, Role: RoleAux},
		{Name: "Start", Pos: start, Radius: c.AuxRadius, Role: RoleAux},
	}
	return append(left, Mirror(left, s.Width)...)
}

// Screws returns the seven screw anchors, named by clock position:
// 10h, 2h, 8h, 4h, 6h, 11h, 1h. 11h and 1h flank the controller.
func Screws(s panel.Spec) []Anchor {
	m, w, h := s.ScrewMargin, s.Width, s.Height
	x11 := w/2 - s.ControllerWidth/2 - m

	pts := []struct {
		name string
		pos  geom.Point
	}{
		{"screw_10h", geom.Pt(m, h-m)},
		{"screw_2h", geom.Pt(w-m, h-m)},
		{"screw_8h", geom.Pt(m, m)},
		{"screw_4h", geom.Pt(w-m, m)},
		{"screw_6h", geom.Pt(w/2, m)},
		{"screw_11h", geom.Pt(x11, h-m)},
		{"screw_1h", geom.Pt(geom.MirrorX(x11, w), h-m)},
	}

	out := make([]Anchor, len(pts))
	for i, p := range pts {
		out[i] = Anchor{Name: p.name, Pos: p.pos, Radius: s.Cluster.ScrewRadius, Role: RoleScrew}
	}
	return out
}

// All returns Main, Aux and Screws concatenated.
func All(s panel.Spec) (Set, error) {
	main, err := Main(s)
	if err != nil {
		return nil, err
	}
	all := make(Set, 0, len(main)+11)
	all = append(all, main...)
	all = append(all, Aux(s)...)
	all = append(all, Screws(s)...)
	return all, nil
}
