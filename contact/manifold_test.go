package contact

import (
	"testing"

	"github.com/akmonengine/narrowphase/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// faceContact builds a contact of the given depth anchored on vertex v of the first
// shape and face f of the second.
func faceContact(v, f int, depth float64) (Contact, ContactKinematic) {
	k := NewContactKinematic()
	k.SetPoint1(actor.Vertex(v), mgl64.Vec3{float64(v), 0, 0}, actor.NewPolyhedralCone())
	k.SetPlane2(actor.Face(f), mgl64.Vec3{0, float64(f), 0}, mgl64.Vec3{0, 1, 0})

	c := NewContact(mgl64.Vec3{float64(v), 0, 0}, mgl64.Vec3{float64(v), depth, 0}, mgl64.Vec3{0, 1, 0}, depth)
	return c, k
}

// anchoredContact builds a contact with unknown features anchored at p on both sides.
func anchoredContact(p mgl64.Vec3, depth float64) (Contact, ContactKinematic) {
	k := NewContactKinematic()
	k.SetPoint1(actor.UnknownFeature(), p, actor.NewPolyhedralCone())
	k.SetPoint2(actor.UnknownFeature(), p, actor.NewPolyhedralCone())
	return NewContact(p, p, mgl64.Vec3{0, 1, 0}, depth), k
}

func TestContactManifold_NeverExceedsCapacity(t *testing.T) {
	alloc := NewIdAllocator()
	manifold := NewContactManifold(0)

	if manifold.Capacity() != DefaultManifoldCapacity {
		t.Fatalf("Capacity = %d, want %d", manifold.Capacity(), DefaultManifoldCapacity)
	}

	depths := []float64{0.3, -0.1, 0.5, 0.2, 0.9, 0.05, 0.4, 1.2, 0.0, 0.7}
	for step := 0; step < 3; step++ {
		manifold.SaveCacheAndClear(alloc)
		for i, depth := range depths {
			c, k := faceContact(i, step, depth)
			manifold.Push(c, k, alloc)

			if manifold.Len() > manifold.Capacity() {
				t.Fatalf("Len = %d exceeds capacity %d", manifold.Len(), manifold.Capacity())
			}
		}
	}

	// the four deepest survive
	got := map[float64]bool{}
	for _, tc := range manifold.Contacts() {
		got[tc.Contact.Depth] = true
	}
	for _, want := range []float64{1.2, 0.9, 0.7, 0.5} {
		if !got[want] {
			t.Errorf("depth %v missing from %v", want, got)
		}
	}

	// current entries plus the unused previous step
	if alloc.InUse() != manifold.Len()+DefaultManifoldCapacity {
		t.Errorf("InUse = %d, want %d", alloc.InUse(), manifold.Len()+DefaultManifoldCapacity)
	}
	manifold.SaveCacheAndClear(alloc)
	if alloc.InUse() != DefaultManifoldCapacity {
		t.Errorf("InUse after SaveCacheAndClear = %d, want %d", alloc.InUse(), DefaultManifoldCapacity)
	}
}

func TestContactManifold_EvictionIsDeterministic(t *testing.T) {
	tests := []struct {
		name     string
		depths   []float64
		pushed   float64
		accepted bool
		replaced int
	}{
		{"replaces the shallowest", []float64{0.3, 0.1}, 0.2, true, 1},
		{"first shallowest on ties", []float64{0.1, 0.1}, 0.2, true, 0},
		{"rejects an equal depth", []float64{0.3, 0.1}, 0.1, false, -1},
		{"rejects a shallower contact", []float64{0.3, 0.1}, 0.05, false, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc := NewIdAllocator()
			manifold := NewContactManifold(2)

			for i, depth := range tt.depths {
				c, k := faceContact(i, 0, depth)
				manifold.Push(c, k, alloc)
			}
			before := append([]TrackedContact(nil), manifold.Contacts()...)

			c, k := faceContact(9, 0, tt.pushed)
			id, ok := manifold.Push(c, k, alloc)
			if ok != tt.accepted {
				t.Fatalf("Push accepted = %v, want %v", ok, tt.accepted)
			}
			if manifold.Len() != 2 {
				t.Fatalf("Len = %d, want 2", manifold.Len())
			}

			if !tt.accepted {
				if id != -1 {
					t.Errorf("rejected Push returned id %d", id)
				}
				for i, tc := range manifold.Contacts() {
					if tc.ID != before[i].ID || tc.Contact != before[i].Contact {
						t.Errorf("entry %d changed on rejection", i)
					}
				}
				if alloc.InUse() != 2 {
					t.Errorf("InUse = %d, want 2", alloc.InUse())
				}
				return
			}

			replaced := manifold.At(tt.replaced)
			if replaced.Contact.Depth != tt.pushed || replaced.ID != id {
				t.Errorf("entry %d = %+v, want the pushed contact", tt.replaced, replaced)
			}
			// the evicted id is released and handed out again
			if id != before[tt.replaced].ID {
				t.Errorf("id = %d, want the evicted id %d", id, before[tt.replaced].ID)
			}
			if alloc.InUse() != 2 {
				t.Errorf("InUse = %d, want 2", alloc.InUse())
			}
		})
	}
}

func TestContactManifold_ReusesIDsByFeature(t *testing.T) {
	alloc := NewIdAllocator()
	manifold := NewContactManifold(4)

	manifold.SaveCacheAndClear(alloc)
	cA, kA := faceContact(1, 2, 0.1)
	cB, kB := faceContact(3, 2, 0.2)
	idA, _ := manifold.Push(cA, kA, alloc)
	idB, _ := manifold.Push(cB, kB, alloc)

	// same features in another order, with new depths
	manifold.SaveCacheAndClear(alloc)
	cB, kB = faceContact(3, 2, 0.25)
	cA, kA = faceContact(1, 2, 0.15)
	if id, _ := manifold.Push(cB, kB, alloc); id != idB {
		t.Errorf("B id = %d, want %d", id, idB)
	}
	if id, _ := manifold.Push(cA, kA, alloc); id != idA {
		t.Errorf("A id = %d, want %d", id, idA)
	}

	// B disappears: its id stays reserved for one more step, then is released
	manifold.SaveCacheAndClear(alloc)
	cA, kA = faceContact(1, 2, 0.1)
	manifold.Push(cA, kA, alloc)
	if alloc.InUse() != 2 {
		t.Errorf("InUse = %d, want 2", alloc.InUse())
	}
	manifold.SaveCacheAndClear(alloc)
	if alloc.InUse() != 1 {
		t.Errorf("InUse = %d, want 1", alloc.InUse())
	}
	if alloc.IsAllocated(idB) {
		t.Errorf("id %d of the vanished contact is still allocated", idB)
	}
}

func TestContactManifold_ReusesIDsByAnchor(t *testing.T) {
	alloc := NewIdAllocator()
	manifold := NewContactManifold(4)

	c, k := anchoredContact(mgl64.Vec3{1, 0, 0}, 0.1)
	id, _ := manifold.Push(c, k, alloc)

	manifold.SaveCacheAndClear(alloc)
	c, k = anchoredContact(mgl64.Vec3{1, AnchorMatchTolerance / 2, 0}, 0.1)
	if got, _ := manifold.Push(c, k, alloc); got != id {
		t.Errorf("id = %d, want %d for a nearby anchor", got, id)
	}

	manifold.SaveCacheAndClear(alloc)
	c, k = anchoredContact(mgl64.Vec3{1, 1, 0}, 0.1)
	if got, _ := manifold.Push(c, k, alloc); got == id {
		t.Errorf("distant anchor reused id %d", id)
	}
}

func TestContactManifold_Clear(t *testing.T) {
	alloc := NewIdAllocator()
	manifold := NewContactManifold(4)

	for i := 0; i < 3; i++ {
		c, k := faceContact(i, 0, 0.1)
		manifold.Push(c, k, alloc)
	}
	manifold.SaveCacheAndClear(alloc)
	c, k := faceContact(0, 0, 0.1)
	manifold.Push(c, k, alloc)
	c, k = faceContact(7, 0, 0.1)
	manifold.Push(c, k, alloc)

	manifold.Clear(alloc)
	if manifold.Len() != 0 {
		t.Errorf("Len = %d, want 0", manifold.Len())
	}
	if alloc.InUse() != 0 {
		t.Errorf("InUse = %d, want 0", alloc.InUse())
	}
}

func TestContactManifold_DeepestAndSubshapes(t *testing.T) {
	alloc := NewIdAllocator()
	manifold := NewContactManifold(4)
	manifold.SetSubshapeID1(3)
	manifold.SetSubshapeID2(7)

	if _, ok := manifold.DeepestContact(); ok {
		t.Error("empty manifold reported a deepest contact")
	}
	for i, depth := range []float64{0.1, 0.4, 0.2} {
		c, k := faceContact(i, 0, depth)
		manifold.Push(c, k, alloc)
	}

	deepest, ok := manifold.DeepestContact()
	if !ok || deepest.Contact.Depth != 0.4 {
		t.Errorf("DeepestContact = %+v, want depth 0.4", deepest)
	}
	if manifold.SubshapeID1() != 3 || manifold.SubshapeID2() != 7 {
		t.Errorf("subshape ids = %d, %d", manifold.SubshapeID1(), manifold.SubshapeID2())
	}
}
