package morph

import (
	"image"
	"image/color"
	"strconv"

	"github.com/fogleman/gg"
)

const (
	WithoutWireframe = iota
	WithWireframe
	WireframeOnly
)

// Mesh draws the triangulation of a point set over its raster, which is
// handy when placing corresponding feature points by hand.
type Mesh struct {
	Wireframe int
	LineWidth float64
	IsSolid   bool
	Grayscale bool
	// Labels draws every effective point with its index.
	Labels bool
}

// Draw renders the mesh of ps over raster. In the filled modes each triangle
// takes the colour sampled at its centroid.
func (m *Mesh) Draw(raster *Raster, ps *PointSet) (image.Image, error) {
	if raster == nil || !raster.Ready() {
		return nil, ErrRasterNotReady
	}
	src := ImgToNRGBA(raster.Image())
	if m.Grayscale {
		src = Grayscale(src)
	}
	width, height := src.Bounds().Dx(), src.Bounds().Dy()

	ctx := gg.NewContext(width, height)
	ctx.DrawImage(src, 0, 0)

	for _, t := range ps.TriangleCorners() {
		p0, p1, p2 := t[0], t[1], t[2]

		ctx.Push()
		ctx.MoveTo(p0.X, p0.Y)
		ctx.LineTo(p1.X, p1.Y)
		ctx.LineTo(p2.X, p2.Y)
		ctx.LineTo(p0.X, p0.Y)

		cx := int((p0.X + p1.X + p2.X) / 3)
		cy := int((p0.Y + p1.Y + p2.Y) / 3)
		c := src.NRGBAAt(Clamp(cx, 0, width-1), Clamp(cy, 0, height-1))
		fill := color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}

		var lineColor color.Color = fill
		if m.IsSolid {
			lineColor = color.Black
		}

		switch m.Wireframe {
		case WithoutWireframe:
			ctx.SetFillStyle(gg.NewSolidPattern(fill))
			ctx.Fill()
		case WithWireframe:
			ctx.SetFillStyle(gg.NewSolidPattern(fill))
			ctx.SetStrokeStyle(gg.NewSolidPattern(color.RGBA{R: 0, G: 0, B: 0, A: 20}))
			ctx.SetLineWidth(m.LineWidth)
			ctx.FillPreserve()
			ctx.Stroke()
		case WireframeOnly:
			ctx.SetStrokeStyle(gg.NewSolidPattern(lineColor))
			ctx.SetLineWidth(m.LineWidth)
			ctx.Stroke()
		}
		ctx.Pop()
	}

	if m.Labels {
		ctx.SetRGB(1, 0, 0)
		for i, p := range ps.EffectivePoints() {
			ctx.DrawCircle(p.X, p.Y, 2)
			ctx.Fill()
			ctx.DrawStringAnchored(strconv.Itoa(i), p.X+4, p.Y-4, 0, 0)
		}
	}
	return ctx.Image(), nil
}
