package morph

import (
	"image"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"gonum.org/v1/gonum/mat"
)

// Blitter copies the triangular region of src bounded by the source corners
// onto dst, affinely mapped so that each source corner lands on the
// matching destination corner.
type Blitter interface {
	DrawTriangle(dst draw.Image, src image.Image, s, d Corners)
}

// defaultOverdraw grows destination triangles slightly so that adjacent
// triangles overlap and no hairline cracks show between them.
const defaultOverdraw = 0.3

// AffineBlitter is the default Blitter. The destination triangle is
// rasterised into a clip mask and the source is resampled through it.
type AffineBlitter struct {
	// Transformer resamples the source. Defaults to draw.ApproxBiLinear.
	Transformer draw.Transformer
	// Overdraw is the distance in pixels each destination corner is pushed
	// away from the centroid.
	Overdraw float64
}

// NewAffineBlitter returns a blitter with the default settings.
func NewAffineBlitter() *AffineBlitter {
	return &AffineBlitter{
		Transformer: draw.ApproxBiLinear,
		Overdraw:    defaultOverdraw,
	}
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// DrawTriangle implements Blitter. Degenerate triangles draw nothing.
func (b *AffineBlitter) DrawTriangle(dst draw.Image, src image.Image, s, d Corners) {
	if area(s) == 0 || area(d) == 0 {
		return
	}
	s2d, ok := affine(s, d)
	if !ok {
		return
	}

	clip := d
	if b.Overdraw > 0 {
		clip = expand(d, b.Overdraw)
	}
	r := bounds(clip).Intersect(dst.Bounds())
	if r.Empty() {
		return
	}

	target := dst
	if si, ok := dst.(subImager); ok {
		if sub, ok := si.SubImage(r).(draw.Image); ok {
			target = sub
		}
	}
	tr := b.Transformer
	if tr == nil {
		tr = draw.ApproxBiLinear
	}
	tr.Transform(target, s2d, src, src.Bounds(), draw.Over, &draw.Options{
		DstMask: mask(clip, r),
	})
}

// affine solves for the transform taking the corners of s onto d.
func affine(s, d Corners) (f64.Aff3, bool) {
	a := mat.NewDense(3, 3, []float64{
		s[0].X, s[0].Y, 1,
		s[1].X, s[1].Y, 1,
		s[2].X, s[2].Y, 1,
	})
	rhs := mat.NewDense(3, 2, []float64{
		d[0].X, d[0].Y,
		d[1].X, d[1].Y,
		d[2].X, d[2].Y,
	})

	var x mat.Dense
	if err := x.Solve(a, rhs); err != nil {
		return f64.Aff3{}, false
	}
	return f64.Aff3{
		x.At(0, 0), x.At(1, 0), x.At(2, 0),
		x.At(0, 1), x.At(1, 1), x.At(2, 1),
	}, true
}

// mask rasterises the triangle into an alpha mask covering r, in dst space.
func mask(c Corners, r image.Rectangle) *image.Alpha {
	ox, oy := float64(r.Min.X), float64(r.Min.Y)

	dc := gg.NewContext(r.Dx(), r.Dy())
	dc.MoveTo(c[0].X-ox, c[0].Y-oy)
	dc.LineTo(c[1].X-ox, c[1].Y-oy)
	dc.LineTo(c[2].X-ox, c[2].Y-oy)
	dc.ClosePath()
	dc.SetRGBA(0, 0, 0, 1)
	dc.Fill()

	m := dc.AsMask()
	m.Rect = m.Rect.Add(r.Min)
	return m
}

// area returns the signed doubled area of the triangle.
func area(c Corners) float64 {
	return (c[1].X-c[0].X)*(c[2].Y-c[0].Y) - (c[2].X-c[0].X)*(c[1].Y-c[0].Y)
}

func expand(c Corners, px float64) Corners {
	cx := (c[0].X + c[1].X + c[2].X) / 3
	cy := (c[0].Y + c[1].Y + c[2].Y) / 3

	var out Corners
	for i, p := range c {
		dx, dy := p.X-cx, p.Y-cy
		l := math.Hypot(dx, dy)
		if l == 0 {
			out[i] = p
			continue
		}
		out[i] = Point{p.X + dx/l*px, p.Y + dy/l*px}
	}
	return out
}

func bounds(c Corners) image.Rectangle {
	minX := Min(c[0].X, c[1].X, c[2].X)
	minY := Min(c[0].Y, c[1].Y, c[2].Y)
	maxX := Max(c[0].X, c[1].X, c[2].X)
	maxY := Max(c[0].Y, c[1].Y, c[2].Y)

	return image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	)
}
