package actor

import "github.com/go-gl/mathgl/mgl64"

// BodyType represents the type of rigid body
type BodyType int

const (
	// BodyTypeDynamic bodies move between steps and are tested against every other body
	BodyTypeDynamic BodyType = iota

	// BodyTypeStatic bodies never move; two static bodies are never paired
	// (e.g., ground, walls)
	BodyTypeStatic
)

// RigidBody is a collision object: a shape placed in the world by a transform.
// Motion is driven from outside; the narrow phase only reads the pose.
type RigidBody struct {
	Transform Transform
	BodyType  BodyType
	// IsTrigger bodies report trigger events instead of collision events
	IsTrigger bool

	// Collision shape
	Shape ShapeInterface
}

// NewRigidBody creates a new rigid body and computes its bounding box
func NewRigidBody(transform Transform, shape ShapeInterface, bodyType BodyType) *RigidBody {
	rb := &RigidBody{
		Transform: transform,
		Shape:     shape,
		BodyType:  bodyType,
	}
	rb.Shape.ComputeAABB(rb.Transform)

	return rb
}

// SetTransform moves the body and refreshes its bounding box.
func (rb *RigidBody) SetTransform(transform Transform) {
	rb.Transform = transform
	rb.Shape.ComputeAABB(rb.Transform)
}

func (rb *RigidBody) SupportWorld(direction mgl64.Vec3) mgl64.Vec3 {
	return SupportWorld(rb.Transform, rb.Shape, direction)
}

// SupportWorld returns the furthest world point of shape, placed at m, in the world
// direction.
func SupportWorld(m Transform, shape ShapeInterface, direction mgl64.Vec3) mgl64.Vec3 {
	// 1. Transformer la direction en espace local (rotation inverse)
	localDirection := m.InverseTransformVector(direction)

	// 2. Trouver le support en espace local
	localSupport := shape.Support(localDirection)

	// 3. Transformer le point support en espace monde (rotation + translation)
	return m.TransformPoint(localSupport)
}
