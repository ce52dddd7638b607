package contact

const (
	// DefaultManifoldCapacity is the number of contacts kept per shape pair.
	DefaultManifoldCapacity = 4

	// AnchorMatchTolerance is the distance under which two local anchors are
	// considered the same point when matching contacts with unknown features.
	AnchorMatchTolerance = 1e-3
)

// TrackedContact is a manifold entry.
type TrackedContact struct {
	Contact   Contact
	Kinematic ContactKinematic
	ID        int
}

// ContactManifold is the bounded set of contacts of one shape pair.
//
// Each step, the owner calls SaveCacheAndClear then pushes the new contacts. A pushed
// contact matching an entry of the previous step gets back its id; ids of previous
// entries that found no match are released on the next SaveCacheAndClear or Clear.
//
// When the manifold is full, Push replaces the shallowest entry (the first one on
// ties) if the new contact is strictly deeper and rejects it otherwise.
type ContactManifold struct {
	subshapeID1 int
	subshapeID2 int

	capacity  int
	contacts  []TrackedContact
	cache     []TrackedContact
	cacheUsed []bool
}

// NewContactManifold creates an empty manifold. A non positive capacity selects
// DefaultManifoldCapacity.
func NewContactManifold(capacity int) *ContactManifold {
	if capacity <= 0 {
		capacity = DefaultManifoldCapacity
	}
	return &ContactManifold{
		capacity: capacity,
		contacts: make([]TrackedContact, 0, capacity),
		cache:    make([]TrackedContact, 0, capacity),
	}
}

func (m *ContactManifold) SetSubshapeID1(id int) { m.subshapeID1 = id }
func (m *ContactManifold) SetSubshapeID2(id int) { m.subshapeID2 = id }
func (m *ContactManifold) SubshapeID1() int      { return m.subshapeID1 }
func (m *ContactManifold) SubshapeID2() int      { return m.subshapeID2 }

func (m *ContactManifold) Len() int {
	return len(m.contacts)
}

func (m *ContactManifold) Capacity() int {
	return m.capacity
}

// Contacts returns the current entries. The slice is owned by the manifold and is only
// valid until its next modification.
func (m *ContactManifold) Contacts() []TrackedContact {
	return m.contacts
}

// At returns the i-th entry.
func (m *ContactManifold) At(i int) TrackedContact {
	return m.contacts[i]
}

// DeepestContact returns the entry with the largest depth.
func (m *ContactManifold) DeepestContact() (TrackedContact, bool) {
	if len(m.contacts) == 0 {
		return TrackedContact{}, false
	}

	deepest := 0
	for i := 1; i < len(m.contacts); i++ {
		if m.contacts[i].Contact.Depth > m.contacts[deepest].Contact.Depth {
			deepest = i
		}
	}
	return m.contacts[deepest], true
}

// SaveCacheAndClear moves the current entries to the cache so their ids can be reused
// by the next pushes. Ids left unused in the previous cache are released.
func (m *ContactManifold) SaveCacheAndClear(alloc *IdAllocator) {
	m.releaseUnusedCache(alloc)

	m.cache, m.contacts = m.contacts, m.cache[:0]
	m.cacheUsed = m.cacheUsed[:0]
	for range m.cache {
		m.cacheUsed = append(m.cacheUsed, false)
	}
}

// Push inserts a contact and returns its id. The id of a matching cached entry is
// reused, otherwise one is drawn from alloc. It returns (-1, false) when the manifold
// is full and the contact is not deeper than its shallowest entry.
func (m *ContactManifold) Push(c Contact, kinematic ContactKinematic, alloc *IdAllocator) (int, bool) {
	cached := m.findCached(kinematic)

	if len(m.contacts) < m.capacity {
		id := m.takeID(cached, alloc)
		m.contacts = append(m.contacts, TrackedContact{Contact: c, Kinematic: kinematic, ID: id})
		return id, true
	}

	shallowest := 0
	for i := 1; i < len(m.contacts); i++ {
		if m.contacts[i].Contact.Depth < m.contacts[shallowest].Contact.Depth {
			shallowest = i
		}
	}
	if c.Depth <= m.contacts[shallowest].Contact.Depth {
		return -1, false
	}

	alloc.Free(m.contacts[shallowest].ID)
	id := m.takeID(cached, alloc)
	m.contacts[shallowest] = TrackedContact{Contact: c, Kinematic: kinematic, ID: id}
	return id, true
}

// Clear releases every id held by the manifold, current and cached.
func (m *ContactManifold) Clear(alloc *IdAllocator) {
	m.releaseUnusedCache(alloc)
	for _, tc := range m.contacts {
		alloc.Free(tc.ID)
	}

	m.contacts = m.contacts[:0]
	m.cache = m.cache[:0]
	m.cacheUsed = m.cacheUsed[:0]
}

func (m *ContactManifold) takeID(cached int, alloc *IdAllocator) int {
	if cached >= 0 {
		m.cacheUsed[cached] = true
		return m.cache[cached].ID
	}
	return alloc.Alloc()
}

func (m *ContactManifold) findCached(kinematic ContactKinematic) int {
	for i, tc := range m.cache {
		if !m.cacheUsed[i] && sameAnchoring(tc.Kinematic, kinematic) {
			return i
		}
	}
	return -1
}

func (m *ContactManifold) releaseUnusedCache(alloc *IdAllocator) {
	for i, tc := range m.cache {
		if !m.cacheUsed[i] {
			alloc.Free(tc.ID)
		}
	}
	for i := range m.cacheUsed {
		m.cacheUsed[i] = true
	}
}

// sameAnchoring matches feature pairs when all four features are known, and local
// anchors otherwise.
func sameAnchoring(a, b ContactKinematic) bool {
	if knownFeatures(a) && knownFeatures(b) {
		return a.approx1.Feature == b.approx1.Feature && a.approx2.Feature == b.approx2.Feature
	}

	tolSqr := AnchorMatchTolerance * AnchorMatchTolerance
	return a.approx1.Point.Sub(b.approx1.Point).LenSqr() <= tolSqr &&
		a.approx2.Point.Sub(b.approx2.Point).LenSqr() <= tolSqr
}

func knownFeatures(k ContactKinematic) bool {
	return !k.approx1.Feature.IsUnknown() && !k.approx2.Feature.IsUnknown()
}
