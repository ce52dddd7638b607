// Package epa implements the Expanding Polytope Algorithm for computing penetration depth.
//
// EPA runs after GJK reports an intersection. It expands a polytope inside the
// Minkowski difference, starting from the GJK tetrahedron, until the face closest to
// the origin lies on the boundary of the difference. That face gives the minimum
// translation: its normal, its distance (the depth) and, through the barycentric
// weights of the closest point, a witness point on each shape.
//
// References:
//   - Van den Bergen: "Proximity Queries and Penetration Depth Computation on 3D Game Objects" (2001)
package epa

import (
	"fmt"

	"github.com/akmonengine/narrowphase/actor"
	"github.com/akmonengine/narrowphase/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// EPAMaxIterations limits polytope expansion. Reaching it is reported as an error.
	EPAMaxIterations = 32

	// EPAConvergenceTolerance stops the expansion when a new support point improves the
	// closest face distance by less than this.
	EPAConvergenceTolerance = 0.001

	// EPAMinFaceDistance is the smallest face distance kept by the polytope.
	EPAMinFaceDistance = 0.0001

	// NormalSnapThreshold clamps nearly-zero normal components to zero.
	NormalSnapThreshold = 1e-8

	// DegeneratePenetrationEstimate is the depth reported when GJK ends on a single point.
	DegeneratePenetrationEstimate = 0.01

	polytopeInitialCapacity = 4
)

// Penetration describes how two overlapping shapes interpenetrate.
type Penetration struct {
	// Normal is the unit direction from the first shape toward the second.
	Normal mgl64.Vec3
	// Depth is positive for overlapping shapes.
	Depth float64
	// PointA is the deepest point of the first shape inside the second, PointB the
	// matching point on the surface of the second: PointA - PointB = Normal * Depth.
	PointA mgl64.Vec3
	PointB mgl64.Vec3
}

// EPA computes the penetration of g1 at m1 and g2 at m2 from the GJK simplex that
// proved their intersection.
func EPA(m1 actor.Transform, g1 actor.ShapeInterface, m2 actor.Transform, g2 actor.ShapeInterface, simplex *gjk.IntersectionSimplex) (Penetration, error) {
	if simplex.Count < 4 {
		return handleDegenerateSimplex(m1, g1, m2, g2, simplex), nil
	}

	builder := polytopeBuilderPool.Get().(*PolytopeBuilder)
	defer polytopeBuilderPool.Put(builder)
	builder.Reset()

	if err := builder.BuildInitialFaces(simplex); err != nil {
		return Penetration{}, err
	}

	for i := 0; i < EPAMaxIterations; i++ {
		if len(builder.faces) == 0 {
			break
		}

		closestFaceIndex := builder.FindClosestFaceIndex()
		closestFace := builder.faces[closestFaceIndex]

		if closestFace.Distance < EPAMinFaceDistance {
			builder.faces[closestFaceIndex] = builder.faces[len(builder.faces)-1]
			builder.faces = builder.faces[:len(builder.faces)-1]
			continue
		}

		support := gjk.MinkowskiSupport(m1, g1, m2, g2, closestFace.Normal)
		distance := support.Point().Dot(closestFace.Normal)

		if distance-closestFace.Distance < EPAConvergenceTolerance {
			pointA, pointB := closestFace.witnessPoints()
			return Penetration{
				Normal: closestFace.Normal,
				Depth:  closestFace.Distance,
				PointA: pointA,
				PointB: pointB,
			}, nil
		}

		builder.AddPointAndRebuildFaces(support, closestFaceIndex)
	}

	return Penetration{}, fmt.Errorf("EPA failed to converge after %d iterations", EPAMaxIterations)
}

// handleDegenerateSimplex estimates the penetration when GJK stopped before building a
// tetrahedron, which happens for shapes touching at a point or along an edge.
func handleDegenerateSimplex(m1 actor.Transform, g1 actor.ShapeInterface, m2 actor.Transform, g2 actor.ShapeInterface, simplex *gjk.IntersectionSimplex) Penetration {
	if simplex.Count >= 2 {
		closest := simplex.Points[0]
		if simplex.Points[1].Point().LenSqr() < closest.Point().LenSqr() {
			closest = simplex.Points[1]
		}

		if p := closest.Point(); p.Len() > NormalSnapThreshold {
			return Penetration{
				Normal: p.Normalize(),
				Depth:  p.Len(),
				PointA: closest.A,
				PointB: closest.B,
			}
		}
	}

	normal := m2.Position.Sub(m1.Position)
	if normal.Len() < NormalSnapThreshold {
		normal = mgl64.Vec3{0, 1, 0}
	} else {
		normal = normal.Normalize()
	}

	pointA := actor.SupportWorld(m1, g1, normal)
	return Penetration{
		Normal: normal,
		Depth:  DegeneratePenetrationEstimate,
		PointA: pointA,
		PointB: pointA.Sub(normal.Mul(DegeneratePenetrationEstimate)),
	}
}
