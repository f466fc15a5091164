package morph

import (
	"math"

	"github.com/pkg/errors"
)

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// Feature is a user supplied landmark. Removed features are kept in the
// backing list so that the indices of the remaining ones stay stable.
type Feature struct {
	Point
	Removed bool
}

// NewFeature creates a feature snapped to the integer pixel grid.
// Halves round up, also for negative coordinates.
func NewFeature(x, y float64) Feature {
	return Feature{Point: Point{X: round(x), Y: round(y)}}
}

func round(v float64) float64 {
	return math.Floor(v + 0.5)
}

// Size is the rectangle both point sets of a morph pair are defined on.
type Size struct {
	W, H float64
}

// Set updates the rectangle dimensions. It is called when a new raster pair is loaded.
func (s *Size) Set(w, h float64) {
	s.W, s.H = w, h
}

// Triangle holds three indices into an effective point set.
type Triangle [3]int

// Corners holds the three vertices of a triangle.
type Corners [3]Point

// PointSet keeps the feature points of one image slot. It does not cache
// anything: the effective points and the triangulation are recomputed on
// every query.
type PointSet struct {
	size     *Size
	features []Feature
	tri      Triangulator
}

// NewPointSet creates a point set over size. The features are snapped to the
// integer grid. A nil triangulator falls back to Delaunay.
func NewPointSet(size *Size, features []Feature, tri Triangulator) *PointSet {
	if tri == nil {
		tri = Delaunay{}
	}
	ps := &PointSet{
		size:     size,
		features: make([]Feature, 0, len(features)),
		tri:      tri,
	}
	for _, f := range features {
		nf := NewFeature(f.X, f.Y)
		nf.Removed = f.Removed
		ps.features = append(ps.features, nf)
	}
	return ps
}

// Size returns the shared rectangle.
func (ps *PointSet) Size() *Size {
	return ps.size
}

// Add appends a new feature and returns its index in the backing list.
func (ps *PointSet) Add(x, y float64) int {
	ps.features = append(ps.features, NewFeature(x, y))
	return len(ps.features) - 1
}

// Move repositions the feature at index i.
func (ps *PointSet) Move(i int, x, y float64) error {
	if i < 0 || i >= len(ps.features) {
		return errors.Wrapf(ErrIndexOutOfRange, "move %d of %d", i, len(ps.features))
	}
	removed := ps.features[i].Removed
	ps.features[i] = NewFeature(x, y)
	ps.features[i].Removed = removed
	return nil
}

// Remove marks the feature at index i for removal.
func (ps *PointSet) Remove(i int) error {
	if i < 0 || i >= len(ps.features) {
		return errors.Wrapf(ErrIndexOutOfRange, "remove %d of %d", i, len(ps.features))
	}
	ps.features[i].Removed = true
	return nil
}

// Features returns a copy of the backing list, tombstones included.
func (ps *PointSet) Features() []Feature {
	out := make([]Feature, len(ps.features))
	copy(out, ps.features)
	return out
}

// Len returns the number of effective points.
func (ps *PointSet) Len() int {
	n := 4
	for _, f := range ps.features {
		if !f.Removed {
			n++
		}
	}
	return n
}

// EffectivePoints returns the four rectangle corners followed by the live
// features in insertion order. The corner order is fixed, which is what lets
// two sets sharing a Size correspond index by index.
func (ps *PointSet) EffectivePoints() []Point {
	w, h := round(ps.size.W), round(ps.size.H)

	points := make([]Point, 0, len(ps.features)+4)
	points = append(points,
		Point{0, 0},
		Point{w, 0},
		Point{0, h},
		Point{w, h},
	)
	for _, f := range ps.features {
		if !f.Removed {
			points = append(points, f.Point)
		}
	}
	return points
}

// Triangles triangulates the effective points and returns index triplets.
func (ps *PointSet) Triangles() []Triangle {
	return GroupTriangles(ps.tri.Triangulate(ps.EffectivePoints()))
}

// TriangleCorners returns the same triangles as Triangles, as coordinates.
func (ps *PointSet) TriangleCorners() []Corners {
	coords := ps.EffectivePoints()
	tris := GroupTriangles(ps.tri.Triangulate(coords))

	out := make([]Corners, len(tris))
	for i, t := range tris {
		out[i] = Corners{coords[t[0]], coords[t[1]], coords[t[2]]}
	}
	return out
}
