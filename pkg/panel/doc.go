// Package panel defines the immutable parameter set from which every piece
// of enclosure geometry is derived. A Spec is a plain value: generators take
// it explicitly and never consult package state.
package panel
