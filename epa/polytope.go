package epa

import (
	"fmt"
	"sort"
	"sync"

	"github.com/akmonengine/narrowphase/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

// PolytopeBuilder holds the faces of the expanding polytope and the scratch buffers of
// an expansion step. The polytope always encloses the origin, which is therefore used
// as the interior reference to orient new faces.
type PolytopeBuilder struct {
	faces          []Face
	edges          []EdgeEntry
	visibleIndices []int
}

// EdgeEntry counts how many visible faces share an edge: boundary edges of the
// visible region appear exactly once.
type EdgeEntry struct {
	A, B  gjk.SupportPoint
	Count int
}

var polytopeBuilderPool = sync.Pool{
	New: func() interface{} {
		return &PolytopeBuilder{
			faces:          make([]Face, 0, polytopeInitialCapacity),
			edges:          make([]EdgeEntry, 0, polytopeInitialCapacity),
			visibleIndices: make([]int, 0, polytopeInitialCapacity),
		}
	},
}

func (b *PolytopeBuilder) Reset() {
	b.faces = b.faces[:0]
	b.edges = b.edges[:0]
	b.visibleIndices = b.visibleIndices[:0]
}

// BuildInitialFaces creates the four faces of a GJK tetrahedron, dropping those too
// close to the origin unless fewer than three would remain.
func (b *PolytopeBuilder) BuildInitialFaces(simplex *gjk.IntersectionSimplex) error {
	if simplex.Count != 4 {
		return fmt.Errorf("invalid simplex count: %d (expected 4)", simplex.Count)
	}

	p := simplex.Points
	candidates := [4]Face{
		newFace(p[0], p[1], p[2], p[3].Point()),
		newFace(p[0], p[2], p[3], p[1].Point()),
		newFace(p[0], p[3], p[1], p[2].Point()),
		newFace(p[1], p[3], p[2], p[0].Point()),
	}

	for _, face := range candidates {
		if face.Distance >= EPAMinFaceDistance {
			b.faces = append(b.faces, face)
		}
	}
	if len(b.faces) < 3 {
		b.faces = append(b.faces[:0], candidates[:]...)
	}

	return nil
}

// FindClosestFaceIndex returns the index of the face closest to the origin, or -1.
func (b *PolytopeBuilder) FindClosestFaceIndex() int {
	if len(b.faces) == 0 {
		return -1
	}

	closestIndex := 0
	for i := 1; i < len(b.faces); i++ {
		if b.faces[i].Distance < b.faces[closestIndex].Distance {
			closestIndex = i
		}
	}
	return closestIndex
}

func (b *PolytopeBuilder) findVisibleFaces(support mgl64.Vec3) {
	b.visibleIndices = b.visibleIndices[:0]

	for i := range b.faces {
		face := &b.faces[i]
		if support.Sub(face.Points[0].Point()).Dot(face.Normal) > 0 {
			b.visibleIndices = append(b.visibleIndices, i)
		}
	}
}

func (b *PolytopeBuilder) findBoundaryEdges() {
	b.edges = b.edges[:0]

	for _, faceIdx := range b.visibleIndices {
		p := b.faces[faceIdx].Points
		for _, edge := range [3][2]gjk.SupportPoint{{p[0], p[1]}, {p[1], p[2]}, {p[2], p[0]}} {
			edgeA, edgeB := edge[0], edge[1]
			if compareVec3(edgeA.Point(), edgeB.Point()) > 0 {
				edgeA, edgeB = edgeB, edgeA
			}

			if i := b.findEdgeIndex(edgeA.Point(), edgeB.Point()); i >= 0 {
				b.edges[i].Count++
				continue
			}
			b.edges = append(b.edges, EdgeEntry{A: edgeA, B: edgeB, Count: 1})
		}
	}
}

func (b *PolytopeBuilder) findEdgeIndex(a, c mgl64.Vec3) int {
	for i := range b.edges {
		if b.edges[i].A.Point() == a && b.edges[i].B.Point() == c {
			return i
		}
	}
	return -1
}

// removeVisibleFaces swaps each visible face with the last one, highest index first.
func (b *PolytopeBuilder) removeVisibleFaces() {
	sort.Sort(sort.Reverse(sort.IntSlice(b.visibleIndices)))

	for _, idx := range b.visibleIndices {
		last := len(b.faces) - 1
		b.faces[idx] = b.faces[last]
		b.faces = b.faces[:last]
	}
}

// AddPointAndRebuildFaces expands the polytope with a new support point: faces seeing
// it are removed and the hole is closed by connecting its boundary to the point.
func (b *PolytopeBuilder) AddPointAndRebuildFaces(support gjk.SupportPoint, closestIndex int) {
	b.findVisibleFaces(support.Point())

	// at least the closest face goes, never all of them
	if len(b.visibleIndices) == 0 || len(b.visibleIndices) >= len(b.faces) {
		b.visibleIndices = append(b.visibleIndices[:0], closestIndex)
	}

	b.findBoundaryEdges()
	b.removeVisibleFaces()

	for _, edge := range b.edges {
		if edge.Count == 1 {
			b.faces = append(b.faces, newFace(edge.A, edge.B, support, mgl64.Vec3{}))
		}
	}
}
