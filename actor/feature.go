package actor

import "fmt"

// FeatureKind is the topological kind of a polyhedron feature.
type FeatureKind uint8

const (
	// FeatureUnknown marks a point that is not attached to any feature.
	// It must never reach contact synthesis on a polyhedron.
	FeatureUnknown FeatureKind = iota
	FeatureFace
	FeatureEdge
	FeatureVertex
)

// FeatureID identifies a face, edge or vertex of a convex polyhedron.
// The zero value is the unknown feature.
type FeatureID struct {
	Kind  FeatureKind
	Index int
}

// Face returns the id of the i-th face.
func Face(i int) FeatureID { return FeatureID{Kind: FeatureFace, Index: i} }

// Edge returns the id of the i-th edge.
func Edge(i int) FeatureID { return FeatureID{Kind: FeatureEdge, Index: i} }

// Vertex returns the id of the i-th vertex.
func Vertex(i int) FeatureID { return FeatureID{Kind: FeatureVertex, Index: i} }

// UnknownFeature returns the unknown feature id.
func UnknownFeature() FeatureID { return FeatureID{} }

// IsUnknown reports whether the id designates no feature.
func (f FeatureID) IsUnknown() bool {
	return f.Kind == FeatureUnknown
}

func (f FeatureID) String() string {
	switch f.Kind {
	case FeatureFace:
		return fmt.Sprintf("Face(%d)", f.Index)
	case FeatureEdge:
		return fmt.Sprintf("Edge(%d)", f.Index)
	case FeatureVertex:
		return fmt.Sprintf("Vertex(%d)", f.Index)
	case FeatureUnknown:
		return "Unknown"
	}
	panic(fmt.Sprintf("invalid feature kind %d", f.Kind))
}
