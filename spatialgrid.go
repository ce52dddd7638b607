package narrowphase

import (
	"math"
	"sort"
	"sync"

	"github.com/akmonengine/narrowphase/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DEFAULT_CELL_SIZE is the cell size of the grid created by a World without one.
	DEFAULT_CELL_SIZE = 4.0
	// DEFAULT_CELL_COUNT is the number of hash buckets of that grid.
	DEFAULT_CELL_COUNT = 1024
)

// CellKey are the integer coordinates of a cell in 3D space
type CellKey struct {
	X, Y, Z int
}

// Cell holds the indices of the bodies overlapping a hash bucket
type Cell struct {
	bodyIndices []int
}

// Pair is a candidate pair of bodies. IndexA is always lower than IndexB.
type Pair struct {
	BodyA  *actor.RigidBody
	BodyB  *actor.RigidBody
	IndexA int
	IndexB int
}

// SpatialGrid is a uniform hashed grid for the broad phase.
// Unbounded boxes, such as those of planes, are never inserted: the broad phase pairs
// them separately.
type SpatialGrid struct {
	cellSize float64
	cells    []Cell
	cellMask int
}

// NewSpatialGrid creates a grid of numCells buckets, rounded up to a power of two
func NewSpatialGrid(cellSize float64, numCells int) *SpatialGrid {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].bodyIndices = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// Insert adds the body index to every cell covered by aabb
func (sg *SpatialGrid) Insert(bodyIndex int, aabb actor.AABB) {
	minCell := sg.worldToCell(aabb.Min)
	maxCell := sg.worldToCell(aabb.Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				cellIdx := sg.hashCell(CellKey{x, y, z})
				sg.cells[cellIdx].bodyIndices = append(sg.cells[cellIdx].bodyIndices, bodyIndex)
			}
		}
	}
}

func (sg *SpatialGrid) Clear() {
	for i := range sg.cells {
		sg.cells[i].bodyIndices = sg.cells[i].bodyIndices[:0]
	}
}

func (sg *SpatialGrid) SortCells() {
	for i := range sg.cells {
		if len(sg.cells[i].bodyIndices) > 1 {
			sort.Ints(sg.cells[i].bodyIndices)
		}
	}
}

// FindPairs returns the pairs of inserted bodies whose boxes overlap, each once, in
// increasing (IndexA, IndexB) order. aabbs[i] is the box of bodies[i].
func (sg *SpatialGrid) FindPairs(bodies []*actor.RigidBody, aabbs []actor.AABB) []Pair {
	pairs := make([]Pair, 0, len(bodies)/2)
	seen := make([]bool, len(bodies))
	for bodyIdx := range bodies {
		pairs = sg.appendPairs(pairs, bodies, aabbs, bodyIdx, seen)
	}
	return pairs
}

// FindPairsParallel splits FindPairs between numWorkers goroutines. Pairs arrive in no
// particular order.
func (sg *SpatialGrid) FindPairsParallel(bodies []*actor.RigidBody, aabbs []actor.AABB, numWorkers int) <-chan Pair {
	var wg sync.WaitGroup
	pairsChan := make(chan Pair, numWorkers*10)

	bodiesPerWorker := len(bodies) / numWorkers
	if bodiesPerWorker == 0 {
		bodiesPerWorker = 1
	}

	for w := 0; w < numWorkers; w++ {
		startIdx := w * bodiesPerWorker
		endIdx := startIdx + bodiesPerWorker
		if w == numWorkers-1 {
			endIdx = len(bodies)
		}
		if startIdx >= endIdx {
			continue
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()

			seen := make([]bool, len(bodies))
			var pairs []Pair
			for bodyIdx := start; bodyIdx < end; bodyIdx++ {
				pairs = sg.appendPairs(pairs[:0], bodies, aabbs, bodyIdx, seen)
				for _, pair := range pairs {
					pairsChan <- pair
				}
			}
		}(startIdx, endIdx)
	}

	go func() {
		wg.Wait()
		close(pairsChan)
	}()

	return pairsChan
}

// appendPairs appends the pairs (bodyIdx, other) with other > bodyIdx, sorted by other.
// seen is scratch space of len(bodies).
func (sg *SpatialGrid) appendPairs(pairs []Pair, bodies []*actor.RigidBody, aabbs []actor.AABB, bodyIdx int, seen []bool) []Pair {
	bodyA := bodies[bodyIdx]
	if aabbs[bodyIdx].IsUnbounded() {
		return pairs
	}

	clear(seen)
	start := len(pairs)
	minCell := sg.worldToCell(aabbs[bodyIdx].Min)
	maxCell := sg.worldToCell(aabbs[bodyIdx].Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				for _, otherIdx := range sg.cells[sg.hashCell(CellKey{x, y, z})].bodyIndices {
					// (A,B) only, and once per pair
					if otherIdx <= bodyIdx || seen[otherIdx] {
						continue
					}
					seen[otherIdx] = true

					bodyB := bodies[otherIdx]
					if bodyA.BodyType == actor.BodyTypeStatic && bodyB.BodyType == actor.BodyTypeStatic {
						continue
					}
					if aabbs[bodyIdx].Overlaps(aabbs[otherIdx]) {
						pairs = append(pairs, Pair{BodyA: bodyA, BodyB: bodyB, IndexA: bodyIdx, IndexB: otherIdx})
					}
				}
			}
		}
	}

	found := pairs[start:]
	sort.Slice(found, func(i, j int) bool { return found[i].IndexB < found[j].IndexB })
	return pairs
}

func (sg *SpatialGrid) worldToCell(pos mgl64.Vec3) CellKey {
	return CellKey{
		X: int(math.Floor(pos.X() / sg.cellSize)),
		Y: int(math.Floor(pos.Y() / sg.cellSize)),
		Z: int(math.Floor(pos.Z() / sg.cellSize)),
	}
}

func (sg *SpatialGrid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663) ^ (key.Z * 83492791)
	return h & sg.cellMask
}
