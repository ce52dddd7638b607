// Package gjk holds the Gilbert-Johnson-Keerthi machinery used by the narrow phase:
// a boolean intersection test on a 4-point simplex (the seed of EPA), a Voronoi
// simplex of dimension 0 to 2 with barycentric projection, and a closest-points query
// built on top of it.
//
// References:
//   - Gilbert, Johnson, Keerthi: "A Fast Procedure for Computing the Distance Between
//     Complex Objects in Three-Dimensional Space" (1988)
//   - Ericson: "Real-Time Collision Detection" (2004), 5.1.2 and 5.1.5
package gjk

import (
	"sync"

	"github.com/akmonengine/narrowphase/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// GJKMaxIterations bounds the boolean intersection test.
const GJKMaxIterations = 32

// IntersectionSimplex is the 1 to 4 point simplex evolved by GJK. When GJK reports an
// intersection it is a tetrahedron enclosing the origin.
type IntersectionSimplex struct {
	Points [4]SupportPoint
	Count  int
}

func (s *IntersectionSimplex) Reset() {
	s.Count = 0
}

var SimplexPool = sync.Pool{
	New: func() interface{} {
		return &IntersectionSimplex{}
	},
}

// SupportPoint is a vertex of the Minkowski difference A - B with the world support
// points of both shapes it was built from.
type SupportPoint struct {
	A, B mgl64.Vec3
}

// Point returns A - B.
func (sp SupportPoint) Point() mgl64.Vec3 {
	return sp.A.Sub(sp.B)
}

// MinkowskiSupport returns the support point of A - B in the given world direction,
// with shape g1 posed at m1 and g2 at m2.
func MinkowskiSupport(m1 actor.Transform, g1 actor.ShapeInterface, m2 actor.Transform, g2 actor.ShapeInterface, direction mgl64.Vec3) SupportPoint {
	return SupportPoint{
		A: actor.SupportWorld(m1, g1, direction),
		B: actor.SupportWorld(m2, g2, direction.Mul(-1)),
	}
}

// GJK reports whether g1 at m1 and g2 at m2 overlap. The simplex is modified in place.
func GJK(m1 actor.Transform, g1 actor.ShapeInterface, m2 actor.Transform, g2 actor.ShapeInterface, simplex *IntersectionSimplex) bool {
	direction := m2.Position.Sub(m1.Position)
	if direction.LenSqr() < 1e-8 {
		direction = mgl64.Vec3{1, 0, 0}
	}

	simplex.Points[0] = MinkowskiSupport(m1, g1, m2, g2, direction)
	simplex.Count = 1

	direction = simplex.Points[0].Point().Mul(-1)
	if direction.LenSqr() < 1e-16 {
		// touching at a single point
		return true
	}

	for i := 0; i < GJKMaxIterations; i++ {
		newPoint := MinkowskiSupport(m1, g1, m2, g2, direction)

		// the new point does not pass the origin: separated
		if newPoint.Point().Dot(direction) <= 0 {
			return false
		}

		simplex.Points[simplex.Count] = newPoint
		simplex.Count++

		if containsOrigin(simplex, &direction) {
			return true
		}
	}

	return false
}

// containsOrigin reduces the simplex to the feature closest to the origin and updates
// the search direction. Only a tetrahedron can contain the origin.
func containsOrigin(simplex *IntersectionSimplex, direction *mgl64.Vec3) bool {
	switch simplex.Count {
	case 2:
		return line(simplex, direction)
	case 3:
		return triangle(simplex, direction)
	case 4:
		return tetrahedron(simplex, direction)
	}
	return false
}

func line(simplex *IntersectionSimplex, direction *mgl64.Vec3) bool {
	a := simplex.Points[1]
	ab := simplex.Points[0].Point().Sub(a.Point())
	ao := a.Point().Mul(-1)

	if ab.LenSqr() < 1e-8 {
		if ao.LenSqr() < 1e-8 {
			return true
		}
		simplex.Points[0] = a
		simplex.Count = 1
		*direction = ao
		return false
	}

	if ab.Dot(ao) <= 0 {
		simplex.Points[0] = a
		simplex.Count = 1
		*direction = ao
		return false
	}

	abPerp := ab.Cross(ao).Cross(ab)
	if abPerp.LenSqr() < 1e-8 {
		// origin on the segment
		return true
	}

	*direction = abPerp
	return false
}

func triangle(simplex *IntersectionSimplex, direction *mgl64.Vec3) bool {
	a := simplex.Points[2]
	b := simplex.Points[1]
	c := simplex.Points[0]

	ab := b.Point().Sub(a.Point())
	ac := c.Point().Sub(a.Point())
	ao := a.Point().Mul(-1)
	abc := ab.Cross(ac)

	// collinear: fall back to the newest edge
	if abc.LenSqr() < 1e-10 {
		simplex.Points[0] = b
		simplex.Points[1] = a
		simplex.Count = 2
		return line(simplex, direction)
	}

	if ab.Cross(abc).Dot(ao) > 0 {
		simplex.Points[0] = b
		simplex.Points[1] = a
		simplex.Count = 2
		*direction = ab.Cross(ao).Cross(ab)
		return false
	}

	if abc.Cross(ac).Dot(ao) > 0 {
		simplex.Points[0] = c
		simplex.Points[1] = a
		simplex.Count = 2
		*direction = ac.Cross(ao).Cross(ac)
		return false
	}

	if abc.Dot(ao) > 0 {
		*direction = abc
	} else {
		// keep the winding consistent with the search direction
		simplex.Points[0] = a
		simplex.Points[1] = c
		simplex.Points[2] = b
		*direction = abc.Mul(-1)
	}

	return false
}

func tetrahedron(simplex *IntersectionSimplex, direction *mgl64.Vec3) bool {
	a := simplex.Points[3]
	b := simplex.Points[2]
	c := simplex.Points[1]
	d := simplex.Points[0]

	ab := b.Point().Sub(a.Point())
	ac := c.Point().Sub(a.Point())
	ad := d.Point().Sub(a.Point())
	ao := a.Point().Mul(-1)

	// outward normals, pointing away from the opposite vertex
	abc := outward(ab.Cross(ac), ad)
	acd := outward(ac.Cross(ad), ab)
	adb := outward(ad.Cross(ab), ac)

	if abc.LenSqr() < 1e-10 || acd.LenSqr() < 1e-10 || adb.LenSqr() < 1e-10 {
		setTriangle(simplex, c, b, a)
		return triangle(simplex, direction)
	}

	switch {
	case abc.Dot(ao) > 0:
		setTriangle(simplex, c, b, a)
	case acd.Dot(ao) > 0:
		setTriangle(simplex, d, c, a)
	case adb.Dot(ao) > 0:
		setTriangle(simplex, b, d, a)
	default:
		return true
	}
	return triangle(simplex, direction)
}

func outward(normal, toOpposite mgl64.Vec3) mgl64.Vec3 {
	if normal.Dot(toOpposite) > 0 {
		return normal.Mul(-1)
	}
	return normal
}

func setTriangle(simplex *IntersectionSimplex, p0, p1, p2 SupportPoint) {
	simplex.Points[0] = p0
	simplex.Points[1] = p1
	simplex.Points[2] = p2
	simplex.Count = 3
}
