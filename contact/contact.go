// Package contact defines the data exchanged between the narrow phase and a contact
// solver: single contacts, their anchoring on each shape, the bounded per-pair
// manifold and the shared pool of contact ids used for warm starting.
package contact

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Contact is a single contact between two shapes.
type Contact struct {
	// World1 is the contact point on the first shape, World2 on the second.
	World1 mgl64.Vec3
	World2 mgl64.Vec3
	// Normal is the unit direction from the first shape toward the second.
	Normal mgl64.Vec3
	// Depth is positive when the shapes interpenetrate, negative for a speculative
	// contact between separated shapes.
	Depth float64
}

func NewContact(world1, world2, normal mgl64.Vec3, depth float64) Contact {
	return Contact{
		World1: world1,
		World2: world2,
		Normal: normal,
		Depth:  depth,
	}
}

// Flipped returns the same contact seen from the second shape.
func (c Contact) Flipped() Contact {
	return Contact{
		World1: c.World2,
		World2: c.World1,
		Normal: c.Normal.Mul(-1),
		Depth:  c.Depth,
	}
}

// ContactPrediction holds the margin under which separated shapes still produce
// speculative contacts.
type ContactPrediction struct {
	// Linear is the distance margin.
	Linear float64
}

func NewContactPrediction(linear float64) ContactPrediction {
	return ContactPrediction{Linear: linear}
}
