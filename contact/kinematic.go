package contact

import (
	"github.com/akmonengine/narrowphase/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// ApproximationKind is the local shape of a feature around a contact anchor.
type ApproximationKind uint8

const (
	// ApproxPoint is a vertex, or the centre of a rounded shape.
	ApproxPoint ApproximationKind = iota
	// ApproxLine is an edge: the anchor slides along Direction.
	ApproxLine
	// ApproxPlane is a face: the anchor slides in the plane of normal Direction.
	ApproxPlane
)

// Approximation anchors one side of a contact on a feature, in the shape's local frame.
type Approximation struct {
	Kind    ApproximationKind
	Feature actor.FeatureID
	// Point is the local anchor.
	Point mgl64.Vec3
	// Direction is the edge direction for ApproxLine and the face normal for ApproxPlane.
	Direction mgl64.Vec3
	// Cone holds the normals the feature admits, empty for a rounded shape's centre.
	Cone actor.PolyhedralCone
}

// ContactKinematic records how a contact is anchored on both shapes so it can be
// rebuilt from new poses without querying the shapes again.
type ContactKinematic struct {
	approx1   Approximation
	approx2   Approximation
	dilation1 float64
	dilation2 float64
}

func NewContactKinematic() ContactKinematic {
	return ContactKinematic{}
}

func (k *ContactKinematic) SetPoint1(feature actor.FeatureID, point mgl64.Vec3, cone actor.PolyhedralCone) {
	k.approx1 = Approximation{Kind: ApproxPoint, Feature: feature, Point: point, Cone: cone}
}

func (k *ContactKinematic) SetPoint2(feature actor.FeatureID, point mgl64.Vec3, cone actor.PolyhedralCone) {
	k.approx2 = Approximation{Kind: ApproxPoint, Feature: feature, Point: point, Cone: cone}
}

func (k *ContactKinematic) SetLine1(feature actor.FeatureID, point, direction mgl64.Vec3, cone actor.PolyhedralCone) {
	k.approx1 = Approximation{Kind: ApproxLine, Feature: feature, Point: point, Direction: direction, Cone: cone}
}

func (k *ContactKinematic) SetLine2(feature actor.FeatureID, point, direction mgl64.Vec3, cone actor.PolyhedralCone) {
	k.approx2 = Approximation{Kind: ApproxLine, Feature: feature, Point: point, Direction: direction, Cone: cone}
}

// SetPlane1 anchors the first side on a face of local normal n.
func (k *ContactKinematic) SetPlane1(feature actor.FeatureID, point, normal mgl64.Vec3) {
	k.approx1 = Approximation{Kind: ApproxPlane, Feature: feature, Point: point, Direction: normal, Cone: actor.NewPolyhedralCone(normal)}
}

// SetPlane2 anchors the second side on a face of local normal n.
func (k *ContactKinematic) SetPlane2(feature actor.FeatureID, point, normal mgl64.Vec3) {
	k.approx2 = Approximation{Kind: ApproxPlane, Feature: feature, Point: point, Direction: normal, Cone: actor.NewPolyhedralCone(normal)}
}

// SetDilation1 sets the radius the first shape extends beyond its anchor along the
// contact normal.
func (k *ContactKinematic) SetDilation1(radius float64) {
	k.dilation1 = radius
}

func (k *ContactKinematic) SetDilation2(radius float64) {
	k.dilation2 = radius
}

func (k ContactKinematic) Approx1() Approximation { return k.approx1 }
func (k ContactKinematic) Approx2() Approximation { return k.approx2 }
func (k ContactKinematic) Dilation1() float64     { return k.dilation1 }
func (k ContactKinematic) Dilation2() float64     { return k.dilation2 }
func (k ContactKinematic) Feature1() actor.FeatureID {
	return k.approx1.Feature
}
func (k ContactKinematic) Feature2() actor.FeatureID {
	return k.approx2.Feature
}
func (k ContactKinematic) Local1() mgl64.Vec3 { return k.approx1.Point }
func (k ContactKinematic) Local2() mgl64.Vec3 { return k.approx2.Point }

// Flipped swaps both sides.
func (k ContactKinematic) Flipped() ContactKinematic {
	return ContactKinematic{
		approx1:   k.approx2,
		approx2:   k.approx1,
		dilation1: k.dilation2,
		dilation2: k.dilation1,
	}
}

// Contact rebuilds the contact for the poses m1 and m2 from the stored anchors.
//
// A face approximation imposes its world normal. Otherwise the normal follows the
// anchors' separation, with the components along edges removed, oriented like
// defaultNormal, and falls back to defaultNormal when the anchors coincide. Anchors on
// a face slide in the face plane to stay in front of the other side. It returns false
// when no normal can be found.
func (k ContactKinematic) Contact(m1, m2 actor.Transform, defaultNormal mgl64.Vec3) (Contact, bool) {
	world1 := m1.TransformPoint(k.approx1.Point)
	world2 := m2.TransformPoint(k.approx2.Point)

	normal, ok := k.normal(m1, m2, world1, world2, defaultNormal)
	if !ok {
		return Contact{}, false
	}

	world1 = world1.Add(normal.Mul(k.dilation1))
	world2 = world2.Sub(normal.Mul(k.dilation2))
	depth := world1.Sub(world2).Dot(normal)

	switch {
	case k.approx2.Kind == ApproxPlane:
		world2 = world1.Sub(normal.Mul(depth))
	case k.approx1.Kind == ApproxPlane:
		world1 = world2.Add(normal.Mul(depth))
	}

	return NewContact(world1, world2, normal, depth), true
}

func (k ContactKinematic) normal(m1, m2 actor.Transform, world1, world2, defaultNormal mgl64.Vec3) (mgl64.Vec3, bool) {
	if k.approx1.Kind == ApproxPlane {
		return m1.TransformVector(k.approx1.Direction).Normalize(), true
	}
	if k.approx2.Kind == ApproxPlane {
		return m2.TransformVector(k.approx2.Direction).Normalize().Mul(-1), true
	}

	separation := world2.Sub(world1)
	if k.approx1.Kind == ApproxLine {
		separation = removeAlong(separation, m1.TransformVector(k.approx1.Direction))
	}
	if k.approx2.Kind == ApproxLine {
		separation = removeAlong(separation, m2.TransformVector(k.approx2.Direction))
	}

	if length := separation.Len(); length > anchorEpsilon {
		normal := separation.Mul(1 / length)
		if normal.Dot(defaultNormal) < 0 {
			normal = normal.Mul(-1)
		}
		return normal, true
	}

	if length := defaultNormal.Len(); length > anchorEpsilon {
		return defaultNormal.Mul(1 / length), true
	}
	return mgl64.Vec3{}, false
}

func removeAlong(v, direction mgl64.Vec3) mgl64.Vec3 {
	lenSqr := direction.LenSqr()
	if lenSqr == 0 {
		return v
	}
	return v.Sub(direction.Mul(v.Dot(direction) / lenSqr))
}

const anchorEpsilon = 1e-12
