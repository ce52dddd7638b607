package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform represents a rigid pose in 3D space: a rotation followed by a translation.
// It maps points from the shape's local frame to world space.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
	}
}

// NewTransformAt creates a transform with the given position and rotation.
// The rotation is normalized.
func NewTransformAt(position mgl64.Vec3, rotation mgl64.Quat) Transform {
	return Transform{
		Position: position,
		Rotation: rotation.Normalize(),
	}
}

// rotation returns the transform rotation, treating the zero quaternion as identity
// so that a zero-valued Transform behaves like NewTransform.
func (t Transform) rotation() mgl64.Quat {
	if t.Rotation == (mgl64.Quat{}) {
		return mgl64.QuatIdent()
	}
	return t.Rotation
}

// Translation returns the translation component of the transform.
func (t Transform) Translation() mgl64.Vec3 {
	return t.Position
}

// TransformPoint maps a local point to world space.
func (t Transform) TransformPoint(p mgl64.Vec3) mgl64.Vec3 {
	return t.rotation().Rotate(p).Add(t.Position)
}

// InverseTransformPoint maps a world point to the local frame.
func (t Transform) InverseTransformPoint(p mgl64.Vec3) mgl64.Vec3 {
	return t.rotation().Conjugate().Rotate(p.Sub(t.Position))
}

// TransformVector rotates a local direction to world space (no translation).
func (t Transform) TransformVector(v mgl64.Vec3) mgl64.Vec3 {
	return t.rotation().Rotate(v)
}

// InverseTransformVector rotates a world direction to the local frame.
func (t Transform) InverseTransformVector(v mgl64.Vec3) mgl64.Vec3 {
	return t.rotation().Conjugate().Rotate(v)
}

// RotatedAroundCenter returns the transform rotated about its own position.
// The rotation axis is axisAngle normalized and the angle is its length.
// A zero axisAngle returns t unchanged.
func (t Transform) RotatedAroundCenter(axisAngle mgl64.Vec3) Transform {
	angle := axisAngle.Len()
	if angle == 0 {
		return t
	}

	delta := mgl64.QuatRotate(angle, axisAngle.Mul(1.0/angle))
	return Transform{
		Position: t.Position,
		Rotation: delta.Mul(t.rotation()).Normalize(),
	}
}
