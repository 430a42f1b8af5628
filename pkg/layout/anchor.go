// Package layout computes the named anchor points of a panel: the main
// button cluster for both players, the auxiliary buttons and the screw
// holes. Every function is pure and returns anchors in a fixed order.
package layout

import (
	"fmt"
	"strings"

	"github.com/chazu/hitbox/pkg/geom"
	"github.com/samber/lo"
)

// ReverseSuffix marks the mirrored (player two) copy of an anchor.
const ReverseSuffix = "_reverse"

// Role groups anchors by what is drilled at them.
type Role int

const (
	RoleButton Role = iota // main cluster
	RoleAux                // Select/Start
	RoleScrew
)

func (r Role) String() string {
	switch r {
	case RoleButton:
		return "button"
	case RoleAux:
		return "aux"
	case RoleScrew:
		return "screw"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Anchor is a named centre point with the hole radius to cut there.
type Anchor struct {
	Name   string
	Pos    geom.Point
	Radius float64
	Role   Role
}

// Reversed reports whether a is a mirrored anchor.
func (a Anchor) Reversed() bool {
	return strings.HasSuffix(a.Name, ReverseSuffix)
}

// Mirror reflects each anchor about the vertical midline of a panel of the
// given width and appends ReverseSuffix to its name. Y, radius and role are
// unchanged.
func Mirror(anchors []Anchor, width float64) []Anchor {
	return lo.Map(anchors, func(a Anchor, _ int) Anchor {
		return Anchor{
			Name:   a.Name + ReverseSuffix,
			Pos:    geom.MirrorPoint(a.Pos, width),
			Radius: a.Radius,
			Role:   a.Role,
		}
	})
}

// Set is an ordered anchor list with name lookup.
type Set []Anchor

// Lookup returns the named anchor.
func (s Set) Lookup(name string) (Anchor, bool) {
	return lo.Find(s, func(a Anchor) bool { return a.Name == name })
}

// Names returns anchor names in order.
func (s Set) Names() []string {
	return lo.Map(s, func(a Anchor, _ int) string { return a.Name })
}

// Points returns anchor positions in order.
func (s Set) Points() []geom.Point {
	return lo.Map(s, func(a Anchor, _ int) geom.Point { return a.Pos })
}

// WithRole returns the anchors with role r, in order.
func (s Set) WithRole(r Role) Set {
	return lo.Filter(s, func(a Anchor, _ int) bool { return a.Role == r })
}

// Duplicates returns names that occur more than once.
func (s Set) Duplicates() []string {
	return lo.FindDuplicates(s.Names())
}
