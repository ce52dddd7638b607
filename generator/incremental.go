package generator

import (
	"github.com/akmonengine/narrowphase/actor"
	"github.com/akmonengine/narrowphase/contact"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultContactMergeDistance is the distance under which a new contact is considered
// already tracked, and the tangential drift past which a tracked contact is dropped.
const DefaultContactMergeDistance = 0.05

// replaceDepthFraction scales MergeDistance into the extra depth a new contact needs to
// replace a tracked one in a full generator. Tracked depths are measured along their own
// detection normals and drift slightly from a fresh detection at the same pose.
const replaceDepthFraction = 0.1

type trackedPoint struct {
	local1  mgl64.Vec3
	local2  mgl64.Vec3
	contact contact.Contact
}

// IncrementalGenerator builds a manifold over several steps from a single-point
// detector. Each detected contact is anchored in both bodies' frames and followed as
// they move, until the bodies separate beyond the prediction margin or slide apart.
type IncrementalGenerator struct {
	detector      Detector
	MergeDistance float64

	points   []trackedPoint
	manifold *contact.ContactManifold
}

func NewIncrementalGenerator(detector Detector) *IncrementalGenerator {
	return &IncrementalGenerator{
		detector:      detector,
		MergeDistance: DefaultContactMergeDistance,
		manifold:      contact.NewContactManifold(contact.DefaultManifoldCapacity),
	}
}

func (g *IncrementalGenerator) Update(_ Dispatcher, id1 int, m1 actor.Transform, g1 actor.ShapeInterface, id2 int, m2 actor.Transform, g2 actor.ShapeInterface, prediction contact.ContactPrediction, alloc *contact.IdAllocator) bool {
	g.manifold.SetSubshapeID1(id1)
	g.manifold.SetSubshapeID2(id2)

	g.UpdateContacts(m1, m2, prediction)
	g.AddNewContacts(m1, g1, m2, g2, prediction)
	g.syncManifold(alloc)
	return true
}

// AddNewContacts runs the detector and tracks its contact, unless it is within
// MergeDistance of a tracked one. When the generator is full, the new contact replaces
// the shallowest tracked one if it is deeper by more than a tenth of MergeDistance.
func (g *IncrementalGenerator) AddNewContacts(m1 actor.Transform, g1 actor.ShapeInterface, m2 actor.Transform, g2 actor.ShapeInterface, prediction contact.ContactPrediction) (contact.Contact, bool) {
	c, ok := g.detector.Detect(m1, g1, m2, g2, prediction)
	if !ok {
		return contact.Contact{}, false
	}

	mergeSqr := g.MergeDistance * g.MergeDistance
	for _, p := range g.points {
		if p.contact.World1.Sub(c.World1).LenSqr() <= mergeSqr && p.contact.World2.Sub(c.World2).LenSqr() <= mergeSqr {
			return c, true
		}
	}

	point := trackedPoint{
		local1:  m1.InverseTransformPoint(c.World1),
		local2:  m2.InverseTransformPoint(c.World2),
		contact: c,
	}

	if len(g.points) < g.manifold.Capacity() {
		g.points = append(g.points, point)
		return c, true
	}

	shallowest := 0
	for i := 1; i < len(g.points); i++ {
		if g.points[i].contact.Depth < g.points[shallowest].contact.Depth {
			shallowest = i
		}
	}
	if c.Depth > g.points[shallowest].contact.Depth+g.MergeDistance*replaceDepthFraction {
		g.points[shallowest] = point
	}
	return c, true
}

// UpdateContacts moves the tracked contacts with the bodies. The normal found at
// detection is kept. Contacts separated beyond the prediction margin, or whose anchors
// drifted apart tangentially by more than MergeDistance, are dropped.
func (g *IncrementalGenerator) UpdateContacts(m1, m2 actor.Transform, prediction contact.ContactPrediction) {
	kept := g.points[:0]
	for _, p := range g.points {
		world1 := m1.TransformPoint(p.local1)
		world2 := m2.TransformPoint(p.local2)
		normal := p.contact.Normal

		gap := world1.Sub(world2)
		depth := gap.Dot(normal)
		if depth < -prediction.Linear {
			continue
		}
		if gap.Sub(normal.Mul(depth)).Len() > g.MergeDistance {
			continue
		}

		p.contact = contact.NewContact(world1, world2, normal, depth)
		kept = append(kept, p)
	}
	g.points = kept
}

// syncManifold mirrors the tracked contacts into the manifold. Anchors do not move in
// the body frames, so each contact keeps its id across steps.
func (g *IncrementalGenerator) syncManifold(alloc *contact.IdAllocator) {
	g.manifold.SaveCacheAndClear(alloc)

	for _, p := range g.points {
		kinematic := contact.NewContactKinematic()
		kinematic.SetPoint1(actor.UnknownFeature(), p.local1, actor.NewPolyhedralCone())
		kinematic.SetPoint2(actor.UnknownFeature(), p.local2, actor.NewPolyhedralCone())
		g.manifold.Push(p.contact, kinematic, alloc)
	}
}

func (g *IncrementalGenerator) NumContacts() int {
	return g.manifold.Len()
}

func (g *IncrementalGenerator) Contacts(out []*contact.ContactManifold) []*contact.ContactManifold {
	if g.manifold.Len() != 0 {
		out = append(out, g.manifold)
	}
	return out
}

func (g *IncrementalGenerator) Release(alloc *contact.IdAllocator) {
	g.points = g.points[:0]
	g.manifold.Clear(alloc)
}
