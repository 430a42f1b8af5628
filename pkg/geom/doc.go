// Package geom holds the primitive 2D geometry shared by the layout
// generators: points in panel-local centimetres, mirroring about the panel
// midline and the equilateral apex solver used to place the special buttons.
package geom
