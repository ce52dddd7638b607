package epa

import (
	"math"

	"github.com/akmonengine/narrowphase/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

// Face is a triangle of the polytope, with its outward unit normal and its distance
// to the origin.
type Face struct {
	Points   [3]gjk.SupportPoint
	Normal   mgl64.Vec3
	Distance float64
}

// newFace builds a face whose normal points away from the reference point, which must
// lie inside the polytope.
func newFace(p0, p1, p2 gjk.SupportPoint, inside mgl64.Vec3) Face {
	face := Face{Points: [3]gjk.SupportPoint{p0, p1, p2}}

	a := p0.Point()
	normal := p1.Point().Sub(a).Cross(p2.Point().Sub(a))

	normalLength := normal.Len()
	if normalLength < 1e-8 {
		// zero area
		face.Normal = mgl64.Vec3{0, 1, 0}
		face.Distance = EPAMinFaceDistance
		return face
	}
	normal = normal.Mul(1.0 / normalLength)

	if normal.Dot(inside.Sub(a)) > 0 {
		normal = normal.Mul(-1)
	}

	distance := a.Dot(normal)
	if distance < 0 {
		normal = normal.Mul(-1)
		distance = -distance
	}
	if distance < EPAMinFaceDistance {
		distance = EPAMinFaceDistance
	}

	face.Normal = snapNormalToAxis(normal)
	face.Distance = distance
	return face
}

// closestWeights returns the barycentric weights of the face point closest to the
// origin.
func (f *Face) closestWeights() [3]float64 {
	_, loc := gjk.ProjectOnTriangle(f.Points[0].Point(), f.Points[1].Point(), f.Points[2].Point(), mgl64.Vec3{})

	var w [3]float64
	switch loc.Kind {
	case gjk.OnVertex:
		w[loc.Vertex] = 1
	case gjk.OnEdge:
		switch loc.Edge {
		case 0:
			w[0], w[1] = loc.Coords[0], loc.Coords[1]
		case 1:
			w[1], w[2] = loc.Coords[0], loc.Coords[1]
		case 2:
			w[0], w[2] = loc.Coords[0], loc.Coords[1]
		}
	case gjk.OnFace:
		w = loc.Coords
	}
	return w
}

// witnessPoints interpolates the support points of both shapes at the face point
// closest to the origin.
func (f *Face) witnessPoints() (mgl64.Vec3, mgl64.Vec3) {
	w := f.closestWeights()

	var pointA, pointB mgl64.Vec3
	for i, sp := range f.Points {
		pointA = pointA.Add(sp.A.Mul(w[i]))
		pointB = pointB.Add(sp.B.Mul(w[i]))
	}
	return pointA, pointB
}

// snapNormalToAxis clamps nearly-zero components to zero and renormalizes, so
// axis-aligned contacts keep an exactly axis-aligned normal.
func snapNormalToAxis(normal mgl64.Vec3) mgl64.Vec3 {
	for i := range normal {
		if math.Abs(normal[i]) < NormalSnapThreshold {
			normal[i] = 0
		}
	}

	length := normal.Len()
	if length <= 1e-8 {
		return mgl64.Vec3{0, 1, 0}
	}
	return normal.Mul(1.0 / length)
}

func compareVec3(a, b mgl64.Vec3) int {
	for i := 0; i < 3; i++ {
		if a[i] < b[i] {
			return -1
		}
		if a[i] > b[i] {
			return 1
		}
	}
	return 0
}
