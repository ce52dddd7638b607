package generator

import (
	"fmt"

	"github.com/akmonengine/narrowphase/actor"
	"github.com/akmonengine/narrowphase/contact"
	"github.com/go-gl/mathgl/mgl64"
)

// surfaceEpsilon is the distance under which a ball centre is on the polyhedron surface.
const surfaceEpsilon = 1e-12

// BallConvexPolyhedronGenerator computes the single contact between a ball and a convex
// polyhedron in closed form. With flip set, the ball is the second shape.
type BallConvexPolyhedronGenerator struct {
	flip     bool
	manifold *contact.ContactManifold
}

func NewBallConvexPolyhedronGenerator(flip bool) *BallConvexPolyhedronGenerator {
	return &BallConvexPolyhedronGenerator{
		flip:     flip,
		manifold: contact.NewContactManifold(1),
	}
}

func (g *BallConvexPolyhedronGenerator) Update(_ Dispatcher, id1 int, m1 actor.Transform, g1 actor.ShapeInterface, id2 int, m2 actor.Transform, g2 actor.ShapeInterface, prediction contact.ContactPrediction, alloc *contact.IdAllocator) bool {
	g.manifold.SetSubshapeID1(id1)
	g.manifold.SetSubshapeID2(id2)

	ballPose, ballShape, polyPose, polyShape := m1, g1, m2, g2
	if g.flip {
		ballPose, ballShape, polyPose, polyShape = m2, g2, m1, g1
	}

	ball, ok := ballShape.(*actor.Sphere)
	if !ok {
		return false
	}
	poly, ok := polyShape.(polyhedron)
	if !ok {
		return false
	}

	g.manifold.SaveCacheAndClear(alloc)

	center := ballPose.Translation()
	projection, feature := poly.ProjectPointWithFeature(polyPose, center)
	if feature.IsUnknown() {
		panic(fmt.Sprintf("generator: projection of %v on a polyhedron has no feature", center))
	}

	var normal mgl64.Vec3
	var depth float64

	displacement := projection.Point.Sub(center)
	if distance := displacement.Len(); distance > surfaceEpsilon {
		direction := displacement.Mul(1 / distance)
		if projection.IsInside {
			depth = distance + ball.Radius
			normal = direction.Mul(-1)
		} else {
			depth = ball.Radius - distance
			normal = direction
		}
	} else {
		// centre on the surface: push along the feature's outward normal
		normal = polyPose.TransformVector(poly.NormalCone(feature).Axis()).Mul(-1)
		depth = ball.Radius
	}

	if depth < -prediction.Linear {
		return true
	}

	c := contact.NewContact(center.Add(normal.Mul(ball.Radius)), projection.Point, normal, depth)

	kinematic := contact.NewContactKinematic()
	kinematic.SetPoint1(actor.Face(0), mgl64.Vec3{}, actor.NewPolyhedralCone())
	kinematic.SetDilation1(ball.Radius)

	local := polyPose.InverseTransformPoint(projection.Point)
	switch feature.Kind {
	case actor.FeatureFace:
		kinematic.SetPlane2(feature, local, poly.NormalCone(feature).Axis())
	case actor.FeatureEdge:
		a, b := poly.Edge(feature)
		kinematic.SetLine2(feature, local, b.Sub(a).Normalize(), poly.NormalCone(feature))
	case actor.FeatureVertex:
		kinematic.SetPoint2(feature, local, poly.NormalCone(feature))
	default:
		panic(fmt.Sprintf("generator: unexpected feature %v in contact synthesis", feature))
	}

	if g.flip {
		c = c.Flipped()
		kinematic = kinematic.Flipped()
	}

	g.manifold.Push(c, kinematic, alloc)
	return true
}

func (g *BallConvexPolyhedronGenerator) NumContacts() int {
	return g.manifold.Len()
}

func (g *BallConvexPolyhedronGenerator) Contacts(out []*contact.ContactManifold) []*contact.ContactManifold {
	if g.manifold.Len() != 0 {
		out = append(out, g.manifold)
	}
	return out
}

func (g *BallConvexPolyhedronGenerator) Release(alloc *contact.IdAllocator) {
	g.manifold.Clear(alloc)
}
