package morph

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeshDraw(t *testing.T) {
	p := catPair(160, 120)

	for _, mode := range []int{WithoutWireframe, WithWireframe, WireframeOnly} {
		m := &Mesh{Wireframe: mode, LineWidth: 1, Grayscale: mode == WithWireframe, Labels: true}
		img, err := m.Draw(p.A, p.Source)
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 160, 120), img.Bounds())
	}

	m := &Mesh{Wireframe: WithoutWireframe}
	img, err := m.Draw(p.A, p.Source)
	require.NoError(t, err)
	r, g, b, _ := img.At(150, 60).RGBA()
	assert.Equal(t, uint32(0xffff), r, "filled with the centroid colour")
	assert.Zero(t, g)
	assert.Zero(t, b)
}

func TestMeshNeedsRaster(t *testing.T) {
	p := catPair(160, 120)
	_, err := (&Mesh{}).Draw(nil, p.Source)
	assert.ErrorIs(t, err, ErrRasterNotReady)
}

func TestGrayscale(t *testing.T) {
	g := Grayscale(solid(2, 2, color.NRGBA{R: 255, A: 255}))
	c := g.NRGBAAt(1, 1)
	assert.Equal(t, c.R, c.G)
	assert.Equal(t, c.G, c.B)
	assert.InDelta(t, 76, c.R, 1)
}
