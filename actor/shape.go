package actor

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ShapeInterface is the interface that all collision shapes must implement
type ShapeInterface interface {
	// ComputeAABB calculates the axis-aligned bounding box for the shape
	// at the given transform
	ComputeAABB(transform Transform)
	GetAABB() AABB
	// Support returns the furthest local point of the shape in the given local direction.
	Support(direction mgl64.Vec3) mgl64.Vec3
}

// PointProjection is the result of projecting a point on the boundary of a shape.
type PointProjection struct {
	// Point is the closest boundary point, in world space.
	Point mgl64.Vec3
	// IsInside is true when the projected point was inside the shape.
	IsInside bool
}

// PointQuery is implemented by shapes able to project a point on their boundary.
type PointQuery interface {
	// ProjectPointWithFeature projects a world point on the boundary of the shape
	// placed at m, and returns the feature holding the projection.
	ProjectPointWithFeature(m Transform, point mgl64.Vec3) (PointProjection, FeatureID)
}

// ConvexPolyhedron is implemented by shapes exposing faces, edges and vertices.
// All results are expressed in the shape's local frame.
type ConvexPolyhedron interface {
	ShapeInterface
	// NormalCone returns the cone of outward normals at the feature.
	NormalCone(feature FeatureID) PolyhedralCone
	// Edge returns the two endpoints of an edge feature.
	Edge(feature FeatureID) (mgl64.Vec3, mgl64.Vec3)
	// Vertex returns the position of a vertex feature.
	Vertex(feature FeatureID) mgl64.Vec3
}

// Sphere represents a spherical collision shape
type Sphere struct {
	Radius float64
	aabb   AABB
}

// ComputeAABB calculates the axis-aligned bounding box for the sphere
func (s *Sphere) ComputeAABB(transform Transform) {
	// Sphere AABB is not affected by rotation, only by position
	radiusVec := mgl64.Vec3{s.Radius, s.Radius, s.Radius}

	s.aabb = AABB{
		Min: transform.Position.Sub(radiusVec),
		Max: transform.Position.Add(radiusVec),
	}
}

func (s *Sphere) GetAABB() AABB {
	return s.aabb
}

func (s *Sphere) Support(direction mgl64.Vec3) mgl64.Vec3 {
	if direction.LenSqr() == 0 {
		return mgl64.Vec3{s.Radius, 0, 0}
	}
	return direction.Normalize().Mul(s.Radius)
}

// Plane represents an infinite plane collision shape
// The plane is defined by the equation: Normal · p + Distance = 0
// where Normal is the plane's normal vector (must be normalized)
// and Distance is the signed distance from the origin along the normal.
// Everything below the plane is solid.
type Plane struct {
	Normal   mgl64.Vec3 // Plane normal (must be normalized)
	Distance float64    // Plane constant (signed distance from origin)
	aabb     AABB
}

const (
	// planeSupportHalfSize is the tangential half-size of the slab standing in for the
	// plane in support-map queries.
	planeSupportHalfSize = 1000.0
	// planeSupportThickness is the depth of that slab below the plane.
	planeSupportThickness = 1.0
)

func (p *Plane) ComputeAABB(transform Transform) {
	const infinity = 1e10 // grande valeur pour les dimensions infinies

	normal := transform.TransformVector(p.Normal)
	// Point on the plane closest to the local origin, in world space
	planePoint := transform.TransformPoint(p.Normal.Mul(-p.Distance))

	// Create base bounds with thickness along the normal
	min := planePoint.Sub(normal.Mul(planeSupportThickness))
	max := planePoint
	for i := 0; i < 3; i++ {
		if min[i] > max[i] {
			min[i], max[i] = max[i], min[i]
		}
	}

	// Axes not aligned with the normal extend to infinity
	for i := 0; i < 3; i++ {
		if math.Abs(normal[i]) < 1.0-1e-9 {
			min[i] = -infinity
			max[i] = infinity
		}
	}

	p.aabb = AABB{Min: min, Max: max}
}

func (p *Plane) GetAABB() AABB {
	return p.aabb
}

// Support treats the plane as a large slab of half-size planeSupportHalfSize whose
// top face is the plane. Can obviously break for bigger scenes.
func (p *Plane) Support(direction mgl64.Vec3) mgl64.Vec3 {
	tangent1, tangent2 := getTangentBasis(p.Normal)
	support := p.Normal.Mul(-p.Distance)

	if direction.Dot(tangent1) < 0 {
		support = support.Sub(tangent1.Mul(planeSupportHalfSize))
	} else {
		support = support.Add(tangent1.Mul(planeSupportHalfSize))
	}
	if direction.Dot(tangent2) < 0 {
		support = support.Sub(tangent2.Mul(planeSupportHalfSize))
	} else {
		support = support.Add(tangent2.Mul(planeSupportHalfSize))
	}
	if direction.Dot(p.Normal) < 0 {
		support = support.Sub(p.Normal.Mul(planeSupportThickness))
	}

	return support
}

// ProjectPointWithFeature projects the point on the plane surface. The only feature of
// a plane is Face(0).
func (p *Plane) ProjectPointWithFeature(m Transform, point mgl64.Vec3) (PointProjection, FeatureID) {
	local := m.InverseTransformPoint(point)
	signedDistance := p.Normal.Dot(local) + p.Distance
	projected := local.Sub(p.Normal.Mul(signedDistance))

	return PointProjection{
		Point:    m.TransformPoint(projected),
		IsInside: signedDistance < 0,
	}, Face(0)
}

func (p *Plane) NormalCone(feature FeatureID) PolyhedralCone {
	if feature != Face(0) {
		panic(fmt.Sprintf("plane has no feature %v", feature))
	}
	return NewPolyhedralCone(p.Normal)
}

func (p *Plane) Edge(feature FeatureID) (mgl64.Vec3, mgl64.Vec3) {
	panic(fmt.Sprintf("plane has no edge %v", feature))
}

func (p *Plane) Vertex(feature FeatureID) mgl64.Vec3 {
	panic(fmt.Sprintf("plane has no vertex %v", feature))
}

// getTangentBasis returns two unit vectors orthogonal to normal and to each other.
func getTangentBasis(normal mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	var tangent1 mgl64.Vec3
	if math.Abs(normal.X()) > 0.9 {
		tangent1 = mgl64.Vec3{0, 1, 0}
	} else {
		tangent1 = mgl64.Vec3{1, 0, 0}
	}

	tangent1 = tangent1.Sub(normal.Mul(tangent1.Dot(normal))).Normalize()
	tangent2 := normal.Cross(tangent1).Normalize()

	return tangent1, tangent2
}

// TangentBasis returns an orthonormal pair of directions perpendicular to the unit
// vector normal.
func TangentBasis(normal mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	return getTangentBasis(normal)
}
