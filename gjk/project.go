package gjk

import "github.com/go-gl/mathgl/mgl64"

// LocationKind tells which part of a segment or triangle holds a projected point.
type LocationKind uint8

const (
	OnVertex LocationKind = iota
	OnEdge
	OnFace
)

// SegmentLocation describes where a point projects on a segment [a, b].
type SegmentLocation struct {
	Kind LocationKind
	// Vertex is 0 for a, 1 for b when Kind is OnVertex.
	Vertex int
	// Coords are the barycentric weights of a and b when Kind is OnEdge.
	Coords [2]float64
}

// TriangleLocation describes where a point projects on a triangle (a, b, c).
//
// Edges are numbered 0 for ab, 1 for bc and 2 for ac. Coords holds the two edge
// weights in that vertex order when Kind is OnEdge, and the three weights of a, b, c
// when Kind is OnFace.
type TriangleLocation struct {
	Kind   LocationKind
	Vertex int
	Edge   int
	Coords [3]float64
}

// ProjectOnSegment returns the closest point to p on the segment [a, b].
func ProjectOnSegment(a, b, p mgl64.Vec3) (mgl64.Vec3, SegmentLocation) {
	ab := b.Sub(a)
	ap := p.Sub(a)

	abab := ab.Dot(ab)
	abap := ab.Dot(ap)

	if abap <= 0 || abab == 0 {
		return a, SegmentLocation{Kind: OnVertex, Vertex: 0}
	}
	if abap >= abab {
		return b, SegmentLocation{Kind: OnVertex, Vertex: 1}
	}

	u := abap / abab
	return a.Add(ab.Mul(u)), SegmentLocation{Kind: OnEdge, Coords: [2]float64{1 - u, u}}
}

// ProjectOnTriangle returns the closest point to p on the triangle (a, b, c), testing
// the Voronoi regions of the vertices, then the edges, then the face.
func ProjectOnTriangle(a, b, c, p mgl64.Vec3) (mgl64.Vec3, TriangleLocation) {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)

	// Region A
	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a, TriangleLocation{Kind: OnVertex, Vertex: 0}
	}

	// Region B
	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b, TriangleLocation{Kind: OnVertex, Vertex: 1}
	}

	// Region AB
	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return a.Add(ab.Mul(v)), TriangleLocation{Kind: OnEdge, Edge: 0, Coords: [3]float64{1 - v, v, 0}}
	}

	// Region C
	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c, TriangleLocation{Kind: OnVertex, Vertex: 2}
	}

	// Region AC
	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return a.Add(ac.Mul(w)), TriangleLocation{Kind: OnEdge, Edge: 2, Coords: [3]float64{1 - w, w, 0}}
	}

	// Region BC
	va := d3*d6 - d5*d4
	if va <= 0 && d4-d3 >= 0 && d5-d6 >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).Mul(w)), TriangleLocation{Kind: OnEdge, Edge: 1, Coords: [3]float64{1 - w, w, 0}}
	}

	denom := va + vb + vc
	if denom == 0 {
		// Flat triangle: the closest of the three edges
		return projectOnFlatTriangle(a, b, c, p)
	}

	// Region ABC
	v := vb / denom
	w := vc / denom
	return a.Add(ab.Mul(v)).Add(ac.Mul(w)), TriangleLocation{Kind: OnFace, Coords: [3]float64{1 - v - w, v, w}}
}

func projectOnFlatTriangle(a, b, c, p mgl64.Vec3) (mgl64.Vec3, TriangleLocation) {
	edges := [3][2]mgl64.Vec3{{a, b}, {b, c}, {a, c}}
	vertexOf := [3][2]int{{0, 1}, {1, 2}, {0, 2}}

	var best mgl64.Vec3
	var bestLoc TriangleLocation
	bestDist := -1.0
	for i, e := range edges {
		proj, loc := ProjectOnSegment(e[0], e[1], p)
		d := proj.Sub(p).LenSqr()
		if bestDist >= 0 && d >= bestDist {
			continue
		}
		best, bestDist = proj, d
		if loc.Kind == OnVertex {
			bestLoc = TriangleLocation{Kind: OnVertex, Vertex: vertexOf[i][loc.Vertex]}
		} else {
			bestLoc = TriangleLocation{Kind: OnEdge, Edge: i, Coords: [3]float64{loc.Coords[0], loc.Coords[1], 0}}
		}
	}
	return best, bestLoc
}
