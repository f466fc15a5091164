package morph

import (
	"context"
	"image"
	"io"
	"math"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// Raster is an image whose decoding may still be in flight. Its dimensions
// are only known once it is ready.
type Raster struct {
	img   image.Image
	err   error
	ready chan struct{}
}

// NewRaster wraps an already decoded image.
func NewRaster(img image.Image) *Raster {
	r := &Raster{img: img, ready: make(chan struct{})}
	if img == nil {
		r.err = errors.New("morph: nil image")
	}
	close(r.ready)
	return r
}

// LoadRaster decodes src in the background. The decoders for the wanted
// formats have to be registered by the caller.
func LoadRaster(src io.Reader) *Raster {
	r := &Raster{ready: make(chan struct{})}
	go func() {
		defer close(r.ready)
		img, _, err := image.Decode(src)
		if err != nil {
			r.err = errors.Wrap(err, "morph: decode raster")
			return
		}
		r.img = img
	}()
	return r
}

// Ready reports whether the raster has been decoded successfully.
func (r *Raster) Ready() bool {
	select {
	case <-r.ready:
		return r.err == nil
	default:
		return false
	}
}

// Wait blocks until decoding is finished or ctx is done.
func (r *Raster) Wait(ctx context.Context) error {
	select {
	case <-r.ready:
		return r.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Image returns the decoded image, or nil while the raster is not ready.
func (r *Raster) Image() image.Image {
	if !r.Ready() {
		return nil
	}
	return r.img
}

// Size returns the natural dimensions of the raster.
func (r *Raster) Size() (w, h int, ok bool) {
	if !r.Ready() {
		return 0, 0, false
	}
	b := r.img.Bounds()
	return b.Dx(), b.Dy(), true
}

// ClampSize fits the raster into maxW x maxH preserving the aspect ratio.
// The raster is never enlarged.
func (r *Raster) ClampSize(maxW, maxH float64) (float64, float64, error) {
	w, h, ok := r.Size()
	if !ok {
		return 0, 0, ErrRasterNotReady
	}
	cw, ch := clampSize(float64(w), float64(h), maxW, maxH)
	return cw, ch, nil
}

func clampSize(w, h, maxW, maxH float64) (float64, float64) {
	shrinkage := math.Min(maxW/w, maxH/h)
	if shrinkage < 1 {
		return w * shrinkage, h * shrinkage
	}
	return w, h
}

// Fit renders the raster centred on a w x h canvas, shrunk to fit if needed.
// The returned raster is ready.
func (r *Raster) Fit(w, h int) (*Raster, error) {
	if !r.Ready() {
		return nil, ErrRasterNotReady
	}
	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))

	iw, ih, _ := r.Size()
	cw, ch := clampSize(float64(iw), float64(ih), float64(w), float64(h))
	padW := (float64(w) - cw) / 2
	padH := (float64(h) - ch) / 2

	dr := image.Rect(
		int(math.Round(padW)), int(math.Round(padH)),
		int(math.Round(padW+cw)), int(math.Round(padH+ch)),
	)
	draw.CatmullRom.Scale(canvas, dr, r.img, r.img.Bounds(), draw.Over, nil)

	return NewRaster(canvas), nil
}
