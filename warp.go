package morph

import (
	"image"
	"image/color"
	"math"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// Renderer draws a raster warped from one point configuration towards another.
type Renderer struct {
	Blitter Blitter
}

// NewRenderer returns a renderer using the default AffineBlitter.
func NewRenderer() *Renderer {
	return &Renderer{Blitter: NewAffineBlitter()}
}

// Warp draws raster onto surface with every vertex of src moved to the
// corresponding vertex of dst.
func (r *Renderer) Warp(raster *Raster, src, dst *PointSet, surface draw.Image) error {
	return r.warp(raster, src, dst, surface, 1, false)
}

// WarpAt draws raster onto surface with the vertices moved from src towards
// dst by t. The triangle topology always comes from src.
func (r *Renderer) WarpAt(raster *Raster, src, dst *PointSet, surface draw.Image, t float64) error {
	return r.warp(raster, src, dst, surface, t, true)
}

// warp validates every precondition before it touches surface, so a failed
// call leaves no half drawn frame behind.
func (r *Renderer) warp(raster *Raster, src, dst *PointSet, surface draw.Image, t float64, interp bool) error {
	w, err := r.prepare(raster, src, dst, t, interp)
	if err != nil {
		return err
	}
	w.paint(surface)
	return nil
}

// warpPlan is a validated warp, ready to be painted.
type warpPlan struct {
	img      image.Image
	blit     Blitter
	co1, co2 []Point
	tris     []Triangle
	size     Size
}

func (r *Renderer) prepare(raster *Raster, src, dst *PointSet, t float64, interp bool) (*warpPlan, error) {
	if raster == nil || !raster.Ready() {
		return nil, ErrRasterNotReady
	}
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return nil, errors.Wrapf(ErrInvalidParameter, "warp t=%v", t)
	}

	co1 := src.EffectivePoints()
	co2 := dst.EffectivePoints()
	if len(co1) != len(co2) {
		return nil, errors.Wrapf(ErrLengthMismatch, "warp %d onto %d points", len(co1), len(co2))
	}
	if interp {
		var err error
		if co2, err = Lerp(co1, co2, t); err != nil {
			return nil, err
		}
	}
	tris := GroupTriangles(src.tri.Triangulate(co1))
	for _, tri := range tris {
		for _, i := range tri {
			if i < 0 || i >= len(co1) {
				return nil, errors.Errorf("morph: triangle index %d out of range", i)
			}
		}
	}

	blit := r.Blitter
	if blit == nil {
		blit = NewAffineBlitter()
	}
	return &warpPlan{
		img:  raster.Image(),
		blit: blit,
		co1:  co1,
		co2:  co2,
		tris: tris,
		size: *dst.Size(),
	}, nil
}

// paint clears the target rectangle of surface and blits every triangle.
func (w *warpPlan) paint(surface draw.Image) {
	dirty := image.Rect(0, 0, int(math.Ceil(w.size.W)), int(math.Ceil(w.size.H))).Intersect(surface.Bounds())
	draw.Draw(surface, dirty, image.Transparent, image.Point{}, draw.Src)

	for _, tri := range w.tris {
		s := Corners{w.co1[tri[0]], w.co1[tri[1]], w.co1[tri[2]]}
		d := Corners{w.co2[tri[0]], w.co2[tri[1]], w.co2[tri[2]]}
		w.blit.DrawTriangle(surface, w.img, s, d)
	}
}

// Crossfade composites top over base with the given opacity.
func Crossfade(base draw.Image, top image.Image, opacity float64) {
	a := uint8(math.Round(Clamp(opacity, 0, 1) * 0xff))
	if a == 0 {
		return
	}
	mask := image.NewUniform(color.Alpha{A: a})
	draw.DrawMask(base, base.Bounds(), top, top.Bounds().Min, mask, image.Point{}, draw.Over)
}
