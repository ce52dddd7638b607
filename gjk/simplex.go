package gjk

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Simplex is a point set of dimension 0 (point), 1 (segment) or 2 (triangle) able to
// compute the point of its convex hull closest to the origin through Voronoi regions.
// Each vertex carries a payload of type T, typically the support points it was built
// from.
//
// The previous vertices, dimension and projection coordinates are kept from the last
// AddPoint so an iterative caller can detect a lack of progress.
//
// The zero value is an empty simplex ready for Reset.
type Simplex[T any] struct {
	prevVertices [3]int
	prevDim      int
	prevProj     [3]float64

	vertices [3]mgl64.Vec3
	data     [3]T
	proj     [3]float64
	dim      int
}

// NewSimplex creates a simplex holding the single point p.
func NewSimplex[T any](p mgl64.Vec3, data T) *Simplex[T] {
	s := &Simplex[T]{}
	s.Reset(p, data)
	return s
}

func (s *Simplex[T]) swap(i1, i2 int) {
	s.vertices[i1], s.vertices[i2] = s.vertices[i2], s.vertices[i1]
	s.data[i1], s.data[i2] = s.data[i2], s.data[i1]

	for k := range s.prevVertices {
		switch s.prevVertices[k] {
		case i1:
			s.prevVertices[k] = i2
		case i2:
			s.prevVertices[k] = i1
		}
	}
}

// Reset collapses the simplex to the single vertex p.
func (s *Simplex[T]) Reset(p mgl64.Vec3, data T) {
	s.prevVertices = [3]int{0, 1, 2}
	s.prevDim = 0
	s.dim = 0
	s.vertices[0] = p
	s.data[0] = data
	s.proj = [3]float64{1, 0, 0}
}

// AddPoint appends p to the simplex. It returns false, leaving the vertices untouched,
// when p is exactly equal to an existing vertex: an iterative caller has converged.
// Adding to a 2-simplex panics.
func (s *Simplex[T]) AddPoint(p mgl64.Vec3, data T) bool {
	s.prevDim = s.dim
	s.prevProj = s.proj
	s.prevVertices = [3]int{0, 1, 2}

	for i := 0; i <= s.dim; i++ {
		if s.vertices[i] == p {
			return false
		}
	}

	if s.dim == 2 {
		panic("gjk: cannot add a point to a full 2-simplex")
	}

	s.dim++
	s.vertices[s.dim] = p
	s.data[s.dim] = data
	return true
}

// ProjectOriginAndReduce returns the point of the simplex closest to the origin and
// reduces the simplex to the smallest sub-simplex holding it. Surviving vertices are
// moved to the lowest slots and their barycentric weights stored.
func (s *Simplex[T]) ProjectOriginAndReduce() mgl64.Vec3 {
	switch s.dim {
	case 0:
		s.proj[0] = 1
		return s.vertices[0]
	case 1:
		p, loc := ProjectOnSegment(s.vertices[0], s.vertices[1], mgl64.Vec3{})
		switch loc.Kind {
		case OnVertex:
			if loc.Vertex == 1 {
				s.swap(0, 1)
			}
			s.proj[0] = 1
			s.dim = 0
		case OnEdge:
			s.proj[0] = loc.Coords[0]
			s.proj[1] = loc.Coords[1]
		}
		return p
	case 2:
		p, loc := ProjectOnTriangle(s.vertices[0], s.vertices[1], s.vertices[2], mgl64.Vec3{})
		switch loc.Kind {
		case OnVertex:
			s.swap(0, loc.Vertex)
			s.proj[0] = 1
			s.dim = 0
		case OnEdge:
			switch loc.Edge {
			case 0:
				s.proj[0] = loc.Coords[0]
				s.proj[1] = loc.Coords[1]
			case 1:
				s.swap(0, 2)
				s.proj[0] = loc.Coords[1]
				s.proj[1] = loc.Coords[0]
			case 2:
				s.swap(1, 2)
				s.proj[0] = loc.Coords[0]
				s.proj[1] = loc.Coords[1]
			}
			s.dim = 1
		case OnFace:
			s.proj = loc.Coords
		}
		return p
	}
	panic(fmt.Sprintf("gjk: invalid simplex dimension %d", s.dim))
}

// ProjectOrigin returns the point of the simplex closest to the origin without
// modifying the simplex.
func (s *Simplex[T]) ProjectOrigin() mgl64.Vec3 {
	switch s.dim {
	case 0:
		return s.vertices[0]
	case 1:
		p, _ := ProjectOnSegment(s.vertices[0], s.vertices[1], mgl64.Vec3{})
		return p
	case 2:
		p, _ := ProjectOnTriangle(s.vertices[0], s.vertices[1], s.vertices[2], mgl64.Vec3{})
		return p
	}
	panic(fmt.Sprintf("gjk: invalid simplex dimension %d", s.dim))
}

// ContainsPoint reports whether p is exactly one of the vertices.
func (s *Simplex[T]) ContainsPoint(p mgl64.Vec3) bool {
	for i := 0; i <= s.dim; i++ {
		if s.vertices[i] == p {
			return true
		}
	}
	return false
}

func (s *Simplex[T]) Dimension() int {
	return s.dim
}

func (s *Simplex[T]) PrevDimension() int {
	return s.prevDim
}

// MaxSqLen returns the largest squared distance between a vertex and the origin.
func (s *Simplex[T]) MaxSqLen() float64 {
	var maxSqLen float64
	for i := 0; i <= s.dim; i++ {
		if l := s.vertices[i].LenSqr(); l > maxSqLen {
			maxSqLen = l
		}
	}
	return maxSqLen
}

func (s *Simplex[T]) Point(i int) mgl64.Vec3 {
	s.checkIndex(i, s.dim)
	return s.vertices[i]
}

func (s *Simplex[T]) Data(i int) T {
	s.checkIndex(i, s.dim)
	return s.data[i]
}

// ProjCoord returns the barycentric weight of the i-th vertex computed by the last
// ProjectOriginAndReduce.
func (s *Simplex[T]) ProjCoord(i int) float64 {
	s.checkIndex(i, s.dim)
	return s.proj[i]
}

func (s *Simplex[T]) PrevPoint(i int) mgl64.Vec3 {
	s.checkIndex(i, s.prevDim)
	return s.vertices[s.prevVertices[i]]
}

func (s *Simplex[T]) PrevData(i int) T {
	s.checkIndex(i, s.prevDim)
	return s.data[s.prevVertices[i]]
}

func (s *Simplex[T]) PrevProjCoord(i int) float64 {
	s.checkIndex(i, s.prevDim)
	return s.prevProj[i]
}

// ModifyPoints applies f to every vertex, e.g. to move the simplex to another frame.
func (s *Simplex[T]) ModifyPoints(f func(p *mgl64.Vec3)) {
	for i := 0; i <= s.dim; i++ {
		f(&s.vertices[i])
	}
}

func (s *Simplex[T]) checkIndex(i, dim int) {
	if i < 0 || i > dim {
		panic(fmt.Sprintf("gjk: simplex index %d out of bounds (dimension %d)", i, dim))
	}
}
