package actor

import "github.com/go-gl/mathgl/mgl64"

// unboundedExtent is the half-size above which an AABB is treated as infinite.
const unboundedExtent = 1e9

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// ContainsPoint checks if a point is inside the AABB
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y() &&
		point.Z() >= a.Min.Z() && point.Z() <= a.Max.Z()
}

// Overlaps checks if two AABBs overlap
func (a AABB) Overlaps(other AABB) bool {
	// AABBs overlap if they overlap on all three axes
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y() &&
		a.Max.Z() >= other.Min.Z() && a.Min.Z() <= other.Max.Z()
}

// Loosened returns the box grown by margin on every side.
// Used to keep pairs tracked while they are within the prediction margin.
func (a AABB) Loosened(margin float64) AABB {
	m := mgl64.Vec3{margin, margin, margin}
	return AABB{Min: a.Min.Sub(m), Max: a.Max.Add(m)}
}

// IsUnbounded reports whether the box spans an effectively infinite range on any axis,
// as produced by a Plane.
func (a AABB) IsUnbounded() bool {
	for i := 0; i < 3; i++ {
		if a.Max[i]-a.Min[i] >= unboundedExtent {
			return true
		}
	}
	return false
}
