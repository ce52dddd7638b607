package gjk

import (
	"math"

	"github.com/akmonengine/narrowphase/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// ClosestPointsMaxIterations bounds the distance query.
	ClosestPointsMaxIterations = 64
	// ClosestPointsTolerance is the relative tolerance on the squared distance used to
	// stop the distance query, and the absolute distance under which shapes touch.
	ClosestPointsTolerance = 1e-6
)

// Proximity classifies two shapes relative to a margin.
type Proximity uint8

const (
	Intersecting Proximity = iota
	WithinMargin
	Disjoint
)

// ClosestPointsResult holds the outcome of ClosestPoints. PointA, PointB and Distance
// are only meaningful when Proximity is WithinMargin.
type ClosestPointsResult struct {
	Proximity Proximity
	PointA    mgl64.Vec3
	PointB    mgl64.Vec3
	Distance  float64
}

// Normal returns the unit direction from PointA to PointB.
func (r ClosestPointsResult) Normal() mgl64.Vec3 {
	d := r.PointB.Sub(r.PointA)
	if l := d.Len(); l > 0 {
		return d.Mul(1 / l)
	}
	return mgl64.Vec3{}
}

// ClosestPoints computes the closest points between g1 at m1 and g2 at m2 when they are
// separated by no more than margin. It stops as soon as a separating plane farther than
// margin is found, or when the origin is enclosed by the Minkowski difference.
func ClosestPoints(m1 actor.Transform, g1 actor.ShapeInterface, m2 actor.Transform, g2 actor.ShapeInterface, margin float64) ClosestPointsResult {
	direction := m1.Position.Sub(m2.Position)
	if direction.LenSqr() < 1e-12 {
		direction = mgl64.Vec3{1, 0, 0}
	}

	sp := MinkowskiSupport(m1, g1, m2, g2, direction)
	simplex := NewSimplex(sp.Point(), sp)

	for i := 0; i < ClosestPointsMaxIterations; i++ {
		v := simplex.ProjectOriginAndReduce()
		vv := v.LenSqr()
		if vv <= ClosestPointsTolerance*ClosestPointsTolerance {
			return ClosestPointsResult{Proximity: Intersecting}
		}

		sp = MinkowskiSupport(m1, g1, m2, g2, v.Mul(-1))
		w := sp.Point()
		vw := v.Dot(w)

		// v.w / |v| is a lower bound of the distance
		if vw > 0 && vw*vw > vv*margin*margin {
			return ClosestPointsResult{Proximity: Disjoint}
		}

		if vv-vw <= ClosestPointsTolerance*vv {
			break
		}

		if simplex.Dimension() < 2 {
			if !simplex.AddPoint(w, sp) {
				break
			}
			continue
		}

		if simplex.ContainsPoint(w) {
			break
		}
		if originInTetrahedron(simplex.Point(0), simplex.Point(1), simplex.Point(2), w) {
			return ClosestPointsResult{Proximity: Intersecting}
		}
		*simplex = bestFace(simplex, w, sp)
	}

	v := simplex.ProjectOriginAndReduce()
	distance := v.Len()
	if distance <= ClosestPointsTolerance {
		return ClosestPointsResult{Proximity: Intersecting}
	}
	if distance > margin {
		return ClosestPointsResult{Proximity: Disjoint}
	}

	var pointA, pointB mgl64.Vec3
	for i := 0; i <= simplex.Dimension(); i++ {
		data := simplex.Data(i)
		weight := simplex.ProjCoord(i)
		pointA = pointA.Add(data.A.Mul(weight))
		pointB = pointB.Add(data.B.Mul(weight))
	}

	return ClosestPointsResult{
		Proximity: WithinMargin,
		PointA:    pointA,
		PointB:    pointB,
		Distance:  distance,
	}
}

// bestFace returns the triangle made of w and an edge of the simplex whose closest
// point to the origin is nearest.
func bestFace(s *Simplex[SupportPoint], w mgl64.Vec3, sp SupportPoint) Simplex[SupportPoint] {
	edges := [3][2]int{{0, 1}, {1, 2}, {0, 2}}

	var best Simplex[SupportPoint]
	bestSqDist := math.Inf(1)
	for _, e := range edges {
		candidate := NewSimplex(s.Point(e[0]), s.Data(e[0]))
		candidate.AddPoint(s.Point(e[1]), s.Data(e[1]))
		candidate.AddPoint(w, sp)

		if d := candidate.ProjectOrigin().LenSqr(); d < bestSqDist {
			bestSqDist = d
			best = *candidate
		}
	}
	return best
}

// originInTetrahedron reports whether the origin lies strictly inside the tetrahedron.
// A flat tetrahedron never contains it.
func originInTetrahedron(a, b, c, d mgl64.Vec3) bool {
	faces := [4][4]mgl64.Vec3{
		{a, b, c, d},
		{a, c, d, b},
		{a, d, b, c},
		{b, d, c, a},
	}
	for _, f := range faces {
		n := f[1].Sub(f[0]).Cross(f[2].Sub(f[0]))
		sideOpposite := n.Dot(f[3].Sub(f[0]))
		sideOrigin := n.Dot(f[0].Mul(-1))
		if sideOpposite == 0 || sideOpposite*sideOrigin < 0 {
			return false
		}
	}
	return true
}
