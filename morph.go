package morph

import (
	"context"
	"image"
	"math"

	"github.com/pkg/errors"
)

// Pair holds the two images of a morph and their corresponding point sets.
// Both point sets share Size.
type Pair struct {
	Size   *Size
	Source *PointSet
	Target *PointSet
	A, B   *Raster
}

// NewPair creates a pair over a shared, still empty, rectangle.
func NewPair(source, target []Feature, tri Triangulator) *Pair {
	size := &Size{}
	return &Pair{
		Size:   size,
		Source: NewPointSet(size, source, tri),
		Target: NewPointSet(size, target, tri),
	}
}

// Load waits for both rasters, sizes the shared rectangle after a clamped to
// maxSize and renders both images onto canvases of that size.
func (p *Pair) Load(ctx context.Context, a, b *Raster, maxSize float64) error {
	if err := a.Wait(ctx); err != nil {
		return errors.Wrap(err, "morph: load source raster")
	}
	if err := b.Wait(ctx); err != nil {
		return errors.Wrap(err, "morph: load target raster")
	}
	w, h, err := a.ClampSize(maxSize, maxSize)
	if err != nil {
		return err
	}
	cw, ch := int(math.Round(w)), int(math.Round(h))

	fa, err := a.Fit(cw, ch)
	if err != nil {
		return err
	}
	fb, err := b.Fit(cw, ch)
	if err != nil {
		return err
	}
	p.A, p.B = fa, fb
	p.Size.Set(float64(cw), float64(ch))

	return nil
}

// Morph renders cross-faded frames of a Pair.
type Morph struct {
	pair     *Pair
	renderer *Renderer

	front, back *image.NRGBA
}

// NewMorph checks that the point sets of pair correspond and returns a Morph
// drawing with r. A nil renderer uses NewRenderer.
func NewMorph(pair *Pair, r *Renderer) (*Morph, error) {
	if n, m := pair.Source.Len(), pair.Target.Len(); n != m {
		return nil, errors.Wrapf(ErrLengthMismatch, "pair of %d and %d points", n, m)
	}
	if r == nil {
		r = NewRenderer()
	}
	return &Morph{pair: pair, renderer: r}, nil
}

// Pair returns the pair the morph renders.
func (m *Morph) Pair() *Pair {
	return m.pair
}

// Render draws the frame at t: the source image warped t of the way towards
// the target configuration, blended with the target image warped 1-t of the
// way back, at opacity t. The returned image is reused by the next call.
func (m *Morph) Render(t float64) (*image.NRGBA, error) {
	p := m.pair
	m.resize()

	// Both warps are checked before either surface is painted, so a failure
	// leaves the previous frame intact.
	wa, err := m.renderer.prepare(p.A, p.Source, p.Target, t, true)
	if err != nil {
		return nil, err
	}
	wb, err := m.renderer.prepare(p.B, p.Target, p.Source, 1-t, true)
	if err != nil {
		return nil, err
	}
	wa.paint(m.front)
	wb.paint(m.back)
	Crossfade(m.front, m.back, t)

	return m.front, nil
}

func (m *Morph) resize() {
	r := image.Rect(0, 0, int(math.Ceil(m.pair.Size.W)), int(math.Ceil(m.pair.Size.H)))
	if m.front == nil || m.front.Bounds() != r {
		m.front = image.NewNRGBA(r)
		m.back = image.NewNRGBA(r)
	}
}
