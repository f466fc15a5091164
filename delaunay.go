package morph

import "math"

type circle struct {
	x, y, radius float64
}

type edge struct {
	a, b int
}

func (e edge) isEq(o edge) bool {
	return e.a == o.a && e.b == o.b || e.a == o.b && e.b == o.a
}

type triangle struct {
	nodes  [3]int
	edges  [3]edge
	circle circle
}

// newTriangle builds a triangle over the vertex indices p0, p1, p2 and
// precomputes its circumcircle. The radius is stored squared.
func newTriangle(pts []Point, p0, p1, p2 int) triangle {
	t := triangle{
		nodes: [3]int{p0, p1, p2},
		edges: [3]edge{{p0, p1}, {p1, p2}, {p2, p0}},
	}
	a, b, c := pts[p0], pts[p1], pts[p2]

	ax, ay := b.X-a.X, b.Y-a.Y
	bx, by := c.X-a.X, c.Y-a.Y
	m := b.X*b.X - a.X*a.X + b.Y*b.Y - a.Y*a.Y
	u := c.X*c.X - a.X*a.X + c.Y*c.Y - a.Y*a.Y
	d := 2 * (ax*by - ay*bx)

	if d == 0 {
		// Collinear vertices: any later point invalidates the triangle.
		t.circle = circle{
			x:      (a.X + b.X + c.X) / 3,
			y:      (a.Y + b.Y + c.Y) / 3,
			radius: math.Inf(1),
		}
		return t
	}
	s := 1 / d
	cx := ((c.Y-a.Y)*m + (a.Y-b.Y)*u) * s
	cy := ((a.X-c.X)*m + (b.X-a.X)*u) * s
	dx, dy := a.X-cx, a.Y-cy

	t.circle = circle{x: cx, y: cy, radius: dx*dx + dy*dy}
	return t
}

const superScale = 1000

// Delaunay is a Bowyer-Watson triangulation primitive. For a fixed input
// order the output is deterministic.
type Delaunay struct{}

// Triangulate returns the triangulation of points as a flat list of index
// triplets. Exact duplicate points are skipped and do not appear in the output.
func (Delaunay) Triangulate(points []Point) []int {
	n := len(points)
	if n < 3 {
		return nil
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	dmax := math.Max(maxX-minX, maxY-minY)
	if dmax == 0 {
		return nil
	}
	midX, midY := (minX+maxX)/2, (minY+maxY)/2

	// The super triangle vertices live after the input points. It has to be
	// large enough that its circumcircles do not bulge past the hull edges
	// by more than a fraction of a pixel.
	pts := make([]Point, n, n+3)
	copy(pts, points)
	pts = append(pts,
		Point{midX - superScale*dmax, midY - dmax},
		Point{midX, midY + superScale*dmax},
		Point{midX + superScale*dmax, midY - dmax},
	)
	triangles := []triangle{newTriangle(pts, n, n+1, n+2)}

	seen := make(map[Point]struct{}, n)
	for k := 0; k < n; k++ {
		p := pts[k]
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}

		var (
			edges []edge
			temps = make([]triangle, 0, len(triangles)+2)
		)
		for _, t := range triangles {
			dx, dy := t.circle.x-p.X, t.circle.y-p.Y
			if dx*dx+dy*dy < t.circle.radius {
				edges = append(edges, t.edges[:]...)
			} else {
				temps = append(temps, t)
			}
		}

		// Edges shared by two invalidated triangles are interior to the
		// cavity; only the boundary survives.
		polygon := make([]edge, 0, len(edges))
	edgesLoop:
		for _, e := range edges {
			for j := range polygon {
				if e.isEq(polygon[j]) {
					polygon = append(polygon[:j], polygon[j+1:]...)
					continue edgesLoop
				}
			}
			polygon = append(polygon, e)
		}

		for _, e := range polygon {
			temps = append(temps, newTriangle(pts, e.a, e.b, k))
		}
		triangles = temps
	}

	flat := make([]int, 0, len(triangles)*3)
	for _, t := range triangles {
		if t.nodes[0] >= n || t.nodes[1] >= n || t.nodes[2] >= n {
			continue
		}
		flat = append(flat, t.nodes[0], t.nodes[1], t.nodes[2])
	}
	return flat
}
