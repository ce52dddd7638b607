package contact

import "fmt"

// IdAllocator hands out small integer ids to contacts. Released ids are reused, the
// most recently released first.
//
// An IdAllocator is shared by every generator of a world and is not safe for
// concurrent use.
type IdAllocator struct {
	free  []int
	inUse []bool
	count int
}

func NewIdAllocator() *IdAllocator {
	return &IdAllocator{}
}

// Alloc returns an unused id.
func (a *IdAllocator) Alloc() int {
	a.count++

	if n := len(a.free); n > 0 {
		id := a.free[n-1]
		a.free = a.free[:n-1]
		a.inUse[id] = true
		return id
	}

	a.inUse = append(a.inUse, true)
	return len(a.inUse) - 1
}

// Free releases id. Releasing an id that is not in use panics.
func (a *IdAllocator) Free(id int) {
	if id < 0 || id >= len(a.inUse) || !a.inUse[id] {
		panic(fmt.Sprintf("contact: freeing id %d which is not allocated", id))
	}

	a.inUse[id] = false
	a.free = append(a.free, id)
	a.count--
}

// InUse returns the number of allocated ids.
func (a *IdAllocator) InUse() int {
	return a.count
}

// IsAllocated reports whether id is currently in use.
func (a *IdAllocator) IsAllocated(id int) bool {
	return id >= 0 && id < len(a.inUse) && a.inUse[id]
}
