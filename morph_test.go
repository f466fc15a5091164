package morph

import (
	"context"
	"image"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestdataPair(t *testing.T) *Pair {
	t.Helper()
	cfg, err := LoadConfig("testdata/morph.yaml")
	require.NoError(t, err)

	src, err := cfg.Features(cfg.Source)
	require.NoError(t, err)
	dst, err := cfg.Features(cfg.Target)
	require.NoError(t, err)
	require.Len(t, src, 11)
	require.Len(t, dst, 11)

	open := func(name string) *Raster {
		f, err := os.Open(cfg.Resolve(name))
		require.NoError(t, err)
		t.Cleanup(func() { f.Close() })
		return LoadRaster(f)
	}
	p := NewPair(src, dst, nil)
	require.NoError(t, p.Load(context.Background(), open(cfg.Source.Image), open(cfg.Target.Image), cfg.MaxSize))
	return p
}

func TestMorphRender(t *testing.T) {
	p := loadTestdataPair(t)
	assert.Equal(t, Size{W: 300, H: 300}, *p.Size)

	m, err := NewMorph(p, nil)
	require.NoError(t, err)
	assert.Same(t, p, m.Pair())

	for _, tt := range []float64{0, 0.25, 0.5, 1} {
		img, err := m.Render(tt)
		require.NoError(t, err)
		assert.Equal(t, 300, img.Bounds().Dx())

		// Deep inside the triangle on the right edge, away from any seam.
		c := img.NRGBAAt(295, 150)
		assert.Equal(t, uint8(255), c.A, "t=%v", tt)
	}
}

func TestMorphRenderFailsOnEditedPair(t *testing.T) {
	p := loadTestdataPair(t)
	m, err := NewMorph(p, nil)
	require.NoError(t, err)

	p.Source.Add(10, 10)
	_, err = m.Render(0.5)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestMorphRenderKeepsFrameWhenTargetNotReady(t *testing.T) {
	p := catPair(160, 120)
	m, err := NewMorph(p, nil)
	require.NoError(t, err)

	frame, err := m.Render(0.5)
	require.NoError(t, err)
	want := image.NewNRGBA(frame.Bounds())
	copy(want.Pix, frame.Pix)

	pr, pw := io.Pipe()
	defer pw.Close()
	p.B = LoadRaster(pr)

	_, err = m.Render(0.2)
	assert.ErrorIs(t, err, ErrRasterNotReady)
	assert.Equal(t, want.Pix, frame.Pix, "a failed render must not repaint the last frame")
}
