package footprint

import (
	"errors"
	"testing"

	"github.com/chazu/hitbox/pkg/geom"
	"github.com/chazu/hitbox/pkg/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	for _, name := range []string{"hotswap", "soldered"} {
		tmpl, err := Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, tmpl.Name)
	}

	_, err := Lookup("alps")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownFootprint))
	assert.Contains(t, err.Error(), "alps")
}

func TestNamesSorted(t *testing.T) {
	assert.Equal(t, []string{"hotswap", "soldered"}, Names())
}

func TestHotswapStamp(t *testing.T) {
	shapes, err := Stamp("hotswap", geom.Pt(10, 5))
	require.NoError(t, err)
	require.Len(t, shapes, 8)

	centre, ok := shapes[0].(shape.Circle)
	require.True(t, ok)
	assert.Equal(t, geom.Pt(10, 5), centre.Center)
	assert.InDelta(t, 0.25, centre.Radius, 1e-12)

	pin, ok := shapes[1].(shape.Circle)
	require.True(t, ok)
	assert.InDelta(t, 9.5, pin.Center.X, 1e-12)
	assert.InDelta(t, 4.485, pin.Center.Y, 1e-12)
}

func TestSolderedHasWindow(t *testing.T) {
	tmpl, err := Lookup("soldered")
	require.NoError(t, err)
	shapes := tmpl.Stamp(geom.Pt(0, 0))
	require.Len(t, shapes, tmpl.Len())

	win, ok := shapes[len(shapes)-1].(shape.Polyline)
	require.True(t, ok)
	assert.True(t, win.Closed)
	b := win.Bounds()
	assert.InDelta(t, 0.3, b.Max.X-b.Min.X, 1e-12)
	assert.InDelta(t, -0.493, (b.Min.Y+b.Max.Y)/2, 1e-12)
}

// Stamping at two points differs only by the translation.
func TestStampIsTranslation(t *testing.T) {
	tmpl, err := Lookup("hotswap")
	require.NoError(t, err)

	a := tmpl.Stamp(geom.Pt(0, 0))
	b := tmpl.Stamp(geom.Pt(3.5, -1.25))
	require.Len(t, b, len(a))
	for i := range a {
		ca, cb := a[i].(shape.Circle), b[i].(shape.Circle)
		assert.InDelta(t, ca.Center.X+3.5, cb.Center.X, 1e-12)
		assert.InDelta(t, ca.Center.Y-1.25, cb.Center.Y, 1e-12)
		assert.Equal(t, ca.Radius, cb.Radius)
	}
}
