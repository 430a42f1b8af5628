package panel

import "github.com/chazu/hitbox/pkg/geom"

// Spec is the complete parameter set for one enclosure. All lengths are in
// centimetres.
type Spec struct {
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	CornerRadius float64 `json:"corner_radius"`

	// Microcontroller board (Pico) footprint, centred horizontally and hung
	// ControllerYFromTop below the top edge.
	ControllerWidth    float64 `json:"controller_width"`
	ControllerHeight   float64 `json:"controller_height"`
	ControllerYFromTop float64 `json:"controller_y_from_top"`

	SwitchWidth float64 `json:"switch_width"` // keyswitch cutout side

	DisplayWidth  float64 `json:"display_width"` // OLED window, centred on the panel
	DisplayHeight float64 `json:"display_height"`

	PortInset   float64 `json:"port_inset"`   // console port centre, measured from the right edge
	ScrewMargin float64 `json:"screw_margin"` // screw centre distance from the panel edges

	Footprint string  `json:"footprint"` // footprint template name, see package footprint
	Cluster   Cluster `json:"cluster"`
}

// Cluster holds the constants of the button recipe: where the punch row
// starts and how the kick row and specials hang off it.
type Cluster struct {
	ButtonRadius float64    `json:"button_radius"`
	Origin       geom.Point `json:"origin"`       // low punch (LP) centre
	Spacing      float64    `json:"spacing"`      // centre-to-centre punch distance
	PunchAngles  []float64  `json:"punch_angles"` // degrees for LP->MP, MP->HP
	KickOffset   geom.Point `json:"kick_offset"`  // punch -> kick shift
	L1Offset     geom.Point `json:"l1_offset"`    // low kick -> L1 shift

	AuxRadius  float64 `json:"aux_radius"`
	AuxInset   float64 `json:"aux_inset"`    // Select distance from the controller edge
	AuxSpacing float64 `json:"aux_spacing"`  // Select -> Start distance
	AuxFromTop float64 `json:"aux_from_top"` // aux row distance from the top edge

	ScrewRadius float64 `json:"screw_radius"`
}

// Default returns the reference 40x20 cm layout.
func Default() Spec {
	return Spec{
		Width:              40,
		Height:             20,
		CornerRadius:       1,
		ControllerWidth:    2.3,
		ControllerHeight:   5.3,
		ControllerYFromTop: 0.38,
		SwitchWidth:        1.4,
		DisplayWidth:       3.6,
		DisplayHeight:      1.9,
		PortInset:          5,
		ScrewMargin:        1,
		Footprint:          "hotswap",
		Cluster:            DefaultCluster(),
	}
}

// DefaultCluster returns the reference button recipe constants.
func DefaultCluster() Cluster {
	return Cluster{
		ButtonRadius: 1.315,
		Origin:       geom.Pt(28, 15),
		Spacing:      2.8,
		PunchAngles:  []float64{20, 0},
		KickOffset:   geom.Pt(-0.5, -2.8),
		L1Offset:     geom.Pt(-1, -3.5),
		AuxRadius:    1.05,
		AuxInset:     2.5,
		AuxSpacing:   2.5,
		AuxFromTop:   1.5,
		ScrewRadius:  0.2,
	}
}

// Center returns the panel centre.
func (s Spec) Center() geom.Point {
	return geom.Pt(s.Width/2, s.Height/2)
}

// Clone returns a deep copy; the PunchAngles slice is not shared.
func (s Spec) Clone() Spec {
	c := s
	c.Cluster.PunchAngles = append([]float64(nil), s.Cluster.PunchAngles...)
	return c
}
