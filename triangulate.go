package morph

// Triangulator is a planar triangulation primitive. It returns a flat list of
// indices into points, arranged in triplets, each triplet denoting a triangle.
type Triangulator interface {
	Triangulate(points []Point) []int
}

// TriangulatorFunc adapts a plain function to the Triangulator interface.
type TriangulatorFunc func(points []Point) []int

// Triangulate calls f(points).
func (f TriangulatorFunc) Triangulate(points []Point) []int {
	return f(points)
}

// GroupTriangles consumes the flat output of a Triangulator in runs of three,
// preserving the emission order. A trailing incomplete run is dropped.
func GroupTriangles(flat []int) []Triangle {
	tris := make([]Triangle, 0, len(flat)/3)
	for i := 0; i+2 < len(flat); i += 3 {
		tris = append(tris, Triangle{flat[i], flat[i+1], flat[i+2]})
	}
	return tris
}
