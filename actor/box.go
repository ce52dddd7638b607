package actor

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box represents an oriented box collision shape
// The box is defined by its half-extents (half-width, half-height, half-depth)
//
// Feature numbering:
//   - faces: 2*axis for the positive side, 2*axis+1 for the negative side
//     (+X, -X, +Y, -Y, +Z, -Z)
//   - edges: 4*axis + 2*s1 + s2, where axis is the edge direction and s1, s2 are 1 when
//     the edge lies on the positive side of the two other axes (in increasing order)
//   - vertices: sx | sy<<1 | sz<<2, with s = 1 on the positive side
type Box struct {
	HalfExtents mgl64.Vec3
	aabb        AABB
}

const (
	boxFaceCount   = 6
	boxEdgeCount   = 12
	boxVertexCount = 8
)

func (b *Box) ComputeAABB(transform Transform) {
	worldCorner := transform.TransformPoint(b.corner(0))
	min := worldCorner
	max := worldCorner

	for i := 1; i < boxVertexCount; i++ {
		worldCorner = transform.TransformPoint(b.corner(i))

		min[0] = math.Min(min[0], worldCorner[0])
		min[1] = math.Min(min[1], worldCorner[1])
		min[2] = math.Min(min[2], worldCorner[2])

		max[0] = math.Max(max[0], worldCorner[0])
		max[1] = math.Max(max[1], worldCorner[1])
		max[2] = math.Max(max[2], worldCorner[2])
	}

	b.aabb = AABB{Min: min, Max: max}
}

func (b *Box) GetAABB() AABB {
	return b.aabb
}

func (b *Box) Support(direction mgl64.Vec3) mgl64.Vec3 {
	hx, hy, hz := b.HalfExtents.X(), b.HalfExtents.Y(), b.HalfExtents.Z()

	if direction.X() < 0 {
		hx = -hx
	}
	if direction.Y() < 0 {
		hy = -hy
	}
	if direction.Z() < 0 {
		hz = -hz
	}

	return mgl64.Vec3{hx, hy, hz}
}

// ProjectPointWithFeature projects a world point on the box boundary.
// Outside points are clamped to the box: one clamped axis lands on a face, two on an
// edge, three on a vertex. Inside points are pushed to the nearest face.
func (b *Box) ProjectPointWithFeature(m Transform, point mgl64.Vec3) (PointProjection, FeatureID) {
	local := m.InverseTransformPoint(point)
	h := b.HalfExtents

	projected := local
	var clamped [3]bool
	count := 0
	for i := 0; i < 3; i++ {
		if local[i] > h[i] {
			projected[i] = h[i]
			clamped[i] = true
			count++
		} else if local[i] < -h[i] {
			projected[i] = -h[i]
			clamped[i] = true
			count++
		}
	}

	var feature FeatureID
	switch count {
	case 0:
		// Inside: the nearest face wins, first axis on ties
		best := 0
		bestDist := h[0] - math.Abs(local[0])
		for i := 1; i < 3; i++ {
			if d := h[i] - math.Abs(local[i]); d < bestDist {
				best, bestDist = i, d
			}
		}
		positive := local[best] >= 0
		if positive {
			projected[best] = h[best]
		} else {
			projected[best] = -h[best]
		}
		feature = Face(boxFaceIndex(best, positive))
	case 1:
		for i := 0; i < 3; i++ {
			if clamped[i] {
				feature = Face(boxFaceIndex(i, projected[i] > 0))
			}
		}
	case 2:
		for i := 0; i < 3; i++ {
			if !clamped[i] {
				feature = Edge(boxEdgeIndex(i, projected))
			}
		}
	case 3:
		feature = Vertex(boxVertexIndex(projected))
	}

	return PointProjection{
		Point:    m.TransformPoint(projected),
		IsInside: count == 0,
	}, feature
}

// NormalCone returns the outward normals at a face, an edge or a vertex of the box.
func (b *Box) NormalCone(feature FeatureID) PolyhedralCone {
	switch feature.Kind {
	case FeatureFace:
		checkFeatureIndex(feature, boxFaceCount)
		return NewPolyhedralCone(boxFaceNormal(feature.Index))
	case FeatureEdge:
		checkFeatureIndex(feature, boxEdgeCount)
		axis := feature.Index / 4
		u, v := otherAxes(axis)
		nu := mgl64.Vec3{}
		nv := mgl64.Vec3{}
		nu[u] = signFromBit(feature.Index >> 1 & 1)
		nv[v] = signFromBit(feature.Index & 1)
		return NewPolyhedralCone(nu, nv)
	case FeatureVertex:
		checkFeatureIndex(feature, boxVertexCount)
		return NewPolyhedralCone(
			mgl64.Vec3{signFromBit(feature.Index & 1), 0, 0},
			mgl64.Vec3{0, signFromBit(feature.Index >> 1 & 1), 0},
			mgl64.Vec3{0, 0, signFromBit(feature.Index >> 2 & 1)},
		)
	}
	panic(fmt.Sprintf("box normal cone: invalid feature %v", feature))
}

// Edge returns the endpoints of an edge, the first one on the negative side of the
// edge axis.
func (b *Box) Edge(feature FeatureID) (mgl64.Vec3, mgl64.Vec3) {
	if feature.Kind != FeatureEdge {
		panic(fmt.Sprintf("box edge: feature %v is not an edge", feature))
	}
	checkFeatureIndex(feature, boxEdgeCount)

	axis := feature.Index / 4
	u, v := otherAxes(axis)
	var a mgl64.Vec3
	a[u] = signFromBit(feature.Index>>1&1) * b.HalfExtents[u]
	a[v] = signFromBit(feature.Index&1) * b.HalfExtents[v]
	c := a
	a[axis] = -b.HalfExtents[axis]
	c[axis] = b.HalfExtents[axis]

	return a, c
}

func (b *Box) Vertex(feature FeatureID) mgl64.Vec3 {
	if feature.Kind != FeatureVertex {
		panic(fmt.Sprintf("box vertex: feature %v is not a vertex", feature))
	}
	checkFeatureIndex(feature, boxVertexCount)
	return b.corner(feature.Index)
}

func (b *Box) corner(index int) mgl64.Vec3 {
	return mgl64.Vec3{
		signFromBit(index&1) * b.HalfExtents.X(),
		signFromBit(index>>1&1) * b.HalfExtents.Y(),
		signFromBit(index>>2&1) * b.HalfExtents.Z(),
	}
}

func boxFaceIndex(axis int, positive bool) int {
	if positive {
		return 2 * axis
	}
	return 2*axis + 1
}

func boxFaceNormal(index int) mgl64.Vec3 {
	var n mgl64.Vec3
	if index%2 == 0 {
		n[index/2] = 1
	} else {
		n[index/2] = -1
	}
	return n
}

func boxEdgeIndex(axis int, point mgl64.Vec3) int {
	u, v := otherAxes(axis)
	return 4*axis + 2*bitFromSign(point[u]) + bitFromSign(point[v])
}

func boxVertexIndex(point mgl64.Vec3) int {
	return bitFromSign(point[0]) | bitFromSign(point[1])<<1 | bitFromSign(point[2])<<2
}

func otherAxes(axis int) (int, int) {
	switch axis {
	case 0:
		return 1, 2
	case 1:
		return 0, 2
	default:
		return 0, 1
	}
}

func bitFromSign(x float64) int {
	if x > 0 {
		return 1
	}
	return 0
}

func signFromBit(bit int) float64 {
	if bit == 1 {
		return 1
	}
	return -1
}

func checkFeatureIndex(feature FeatureID, count int) {
	if feature.Index < 0 || feature.Index >= count {
		panic(fmt.Sprintf("box has no feature %v", feature))
	}
}
