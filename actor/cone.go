package actor

import "github.com/go-gl/mathgl/mgl64"

// PolyhedralCone is the set of outward normal directions valid at a feature,
// described by its generators (unit vectors, in the shape's local frame).
//
//   - face: one generator, the face normal
//   - edge: two generators, the normals of the adjacent faces
//   - vertex: one generator per adjacent face
//
// The empty cone carries no direction; it is used for rounded shapes whose
// normal is recovered from the contact itself.
type PolyhedralCone struct {
	generators []mgl64.Vec3
}

// NewPolyhedralCone creates a cone from its generators.
func NewPolyhedralCone(generators ...mgl64.Vec3) PolyhedralCone {
	if len(generators) == 0 {
		return PolyhedralCone{}
	}
	g := make([]mgl64.Vec3, len(generators))
	copy(g, generators)
	return PolyhedralCone{generators: g}
}

// Generators returns the cone generators.
func (c PolyhedralCone) Generators() []mgl64.Vec3 {
	return c.generators
}

// Len returns the number of generators.
func (c PolyhedralCone) Len() int {
	return len(c.generators)
}

// IsEmpty reports whether the cone has no generator.
func (c PolyhedralCone) IsEmpty() bool {
	return len(c.generators) == 0
}

// Axis returns the normalized sum of the generators, a direction strictly
// inside the cone. The empty cone returns the zero vector.
func (c PolyhedralCone) Axis() mgl64.Vec3 {
	var sum mgl64.Vec3
	for _, g := range c.generators {
		sum = sum.Add(g)
	}
	if sum.LenSqr() == 0 {
		return mgl64.Vec3{}
	}
	return sum.Normalize()
}

// Transformed returns the cone with every generator rotated by t.
func (c PolyhedralCone) Transformed(t Transform) PolyhedralCone {
	if c.IsEmpty() {
		return c
	}
	g := make([]mgl64.Vec3, len(c.generators))
	for i, v := range c.generators {
		g[i] = t.TransformVector(v)
	}
	return PolyhedralCone{generators: g}
}
