package morph

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, img))
	return buf
}

func TestLoadRaster(t *testing.T) {
	r := LoadRaster(encodePNG(t, solid(30, 20, color.NRGBA{R: 255, A: 255})))
	require.NoError(t, r.Wait(context.Background()))

	assert.True(t, r.Ready())
	w, h, ok := r.Size()
	assert.True(t, ok)
	assert.Equal(t, 30, w)
	assert.Equal(t, 20, h)
	assert.NotNil(t, r.Image())
}

func TestLoadRasterFailure(t *testing.T) {
	r := LoadRaster(strings.NewReader("not an image"))
	assert.Error(t, r.Wait(context.Background()))
	assert.False(t, r.Ready())
	assert.Nil(t, r.Image())

	_, _, ok := r.Size()
	assert.False(t, ok)
}

func TestRasterPending(t *testing.T) {
	pr, pw := io.Pipe()
	r := LoadRaster(pr)
	assert.False(t, r.Ready())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, r.Wait(ctx), context.DeadlineExceeded)

	_, _, err := r.ClampSize(100, 100)
	assert.ErrorIs(t, err, ErrRasterNotReady)
	_, err = r.Fit(10, 10)
	assert.ErrorIs(t, err, ErrRasterNotReady)

	go func() {
		png.Encode(pw, solid(4, 4, color.NRGBA{A: 255}))
		pw.Close()
	}()
	require.NoError(t, r.Wait(context.Background()))
	assert.True(t, r.Ready())
}

func TestClampSize(t *testing.T) {
	r := NewRaster(image.NewNRGBA(image.Rect(0, 0, 1000, 500)))
	w, h, err := r.ClampSize(500, 500)
	require.NoError(t, err)
	assert.Equal(t, 500.0, w)
	assert.Equal(t, 250.0, h)

	r = NewRaster(image.NewNRGBA(image.Rect(0, 0, 200, 100)))
	w, h, err = r.ClampSize(500, 500)
	require.NoError(t, err)
	assert.Equal(t, 200.0, w, "never enlarged")
	assert.Equal(t, 100.0, h)
}

func TestFitLetterboxes(t *testing.T) {
	r := NewRaster(solid(100, 50, color.NRGBA{G: 255, A: 255}))
	fit, err := r.Fit(100, 100)
	require.NoError(t, err)

	img := fit.Image().(*image.NRGBA)
	assert.Equal(t, image.Rect(0, 0, 100, 100), img.Bounds())
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(50, 10), "padding")
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, img.NRGBAAt(50, 50))
}

func TestPairLoad(t *testing.T) {
	p := NewPair(catSource, catTarget, nil)
	a := LoadRaster(encodePNG(t, solid(1000, 800, color.NRGBA{R: 255, A: 255})))
	b := NewRaster(solid(300, 300, color.NRGBA{B: 255, A: 255}))

	require.NoError(t, p.Load(context.Background(), a, b, 500))
	assert.Equal(t, Size{W: 500, H: 400}, *p.Size)
	assert.Equal(t, Point{500, 400}, p.Target.EffectivePoints()[3])

	for _, r := range []*Raster{p.A, p.B} {
		w, h, ok := r.Size()
		require.True(t, ok)
		assert.Equal(t, 500, w)
		assert.Equal(t, 400, h)
	}
}

func TestImgToNRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 15, 10))
	src.Set(5, 5, color.RGBA{R: 255, A: 255})

	dst := ImgToNRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 10, 5), dst.Bounds())
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, dst.NRGBAAt(0, 0))

	same := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	assert.Same(t, same, ImgToNRGBA(same))
}
