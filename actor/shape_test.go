package actor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestBox_ProjectPointWithFeature(t *testing.T) {
	box := &Box{HalfExtents: mgl64.Vec3{1, 2, 3}}
	identity := NewTransform()

	tests := []struct {
		name     string
		point    mgl64.Vec3
		expected mgl64.Vec3
		feature  FeatureID
		inside   bool
	}{
		{"outside +X face", mgl64.Vec3{5, 0.5, 1}, mgl64.Vec3{1, 0.5, 1}, Face(0), false},
		{"outside -Y face", mgl64.Vec3{0, -4, 0}, mgl64.Vec3{0, -2, 0}, Face(3), false},
		{"outside -Z face", mgl64.Vec3{0.2, 0, -10}, mgl64.Vec3{0.2, 0, -3}, Face(5), false},
		// X free, +Y and -Z clamped: axis 0, s1 (y) = 1, s2 (z) = 0
		{"outside edge along X", mgl64.Vec3{0.5, 3, -4}, mgl64.Vec3{0.5, 2, -3}, Edge(2), false},
		// Z free, -X and +Y clamped: axis 2, s1 (x) = 0, s2 (y) = 1
		{"outside edge along Z", mgl64.Vec3{-2, 3, 1}, mgl64.Vec3{-1, 2, 1}, Edge(9), false},
		{"outside vertex +++", mgl64.Vec3{2, 3, 4}, mgl64.Vec3{1, 2, 3}, Vertex(7), false},
		{"outside vertex -+-", mgl64.Vec3{-2, 3, -4}, mgl64.Vec3{-1, 2, -3}, Vertex(2), false},
		{"inside nearest +X", mgl64.Vec3{0.9, 0, 0}, mgl64.Vec3{1, 0, 0}, Face(0), true},
		{"inside nearest -Z", mgl64.Vec3{0, 0, -2.8}, mgl64.Vec3{0, 0, -3}, Face(5), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proj, feature := box.ProjectPointWithFeature(identity, tt.point)
			if !vec3Equal(proj.Point, tt.expected, 1e-12) {
				t.Errorf("projection = %v, want %v", proj.Point, tt.expected)
			}
			if feature != tt.feature {
				t.Errorf("feature = %v, want %v", feature, tt.feature)
			}
			if proj.IsInside != tt.inside {
				t.Errorf("IsInside = %v, want %v", proj.IsInside, tt.inside)
			}
		})
	}
}

func TestBox_ProjectPointWithFeature_Transformed(t *testing.T) {
	box := &Box{HalfExtents: mgl64.Vec3{1, 1, 1}}
	// Quarter turn about Z: local +X face points toward world +Y
	m := NewTransformAt(mgl64.Vec3{0, 10, 0}, mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1}))

	proj, feature := box.ProjectPointWithFeature(m, mgl64.Vec3{0, 13, 0})
	if !vec3Equal(proj.Point, mgl64.Vec3{0, 11, 0}, 1e-9) {
		t.Errorf("projection = %v, want %v", proj.Point, mgl64.Vec3{0, 11, 0})
	}
	if feature != Face(0) {
		t.Errorf("feature = %v, want Face(0)", feature)
	}
}

func TestBox_NormalCone(t *testing.T) {
	box := &Box{HalfExtents: mgl64.Vec3{1, 1, 1}}

	t.Run("face", func(t *testing.T) {
		cone := box.NormalCone(Face(3))
		if cone.Len() != 1 || cone.Generators()[0] != (mgl64.Vec3{0, -1, 0}) {
			t.Errorf("Face(3) cone = %v", cone.Generators())
		}
	})

	t.Run("edge", func(t *testing.T) {
		cone := box.NormalCone(Edge(2))
		want := []mgl64.Vec3{{0, 1, 0}, {0, 0, -1}}
		if cone.Len() != 2 || cone.Generators()[0] != want[0] || cone.Generators()[1] != want[1] {
			t.Errorf("Edge(2) cone = %v, want %v", cone.Generators(), want)
		}
	})

	t.Run("vertex", func(t *testing.T) {
		cone := box.NormalCone(Vertex(5))
		want := []mgl64.Vec3{{1, 0, 0}, {0, -1, 0}, {0, 0, 1}}
		for i, g := range cone.Generators() {
			if g != want[i] {
				t.Errorf("Vertex(5) generator %d = %v, want %v", i, g, want[i])
			}
		}
	})

	t.Run("unknown panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected a panic for the unknown feature")
			}
		}()
		box.NormalCone(UnknownFeature())
	})
}

func TestBox_EdgeAndVertex(t *testing.T) {
	box := &Box{HalfExtents: mgl64.Vec3{1, 2, 3}}

	a, b := box.Edge(Edge(9))
	if a != (mgl64.Vec3{-1, 2, -3}) || b != (mgl64.Vec3{-1, 2, 3}) {
		t.Errorf("Edge(9) = %v, %v", a, b)
	}

	if v := box.Vertex(Vertex(6)); v != (mgl64.Vec3{-1, 2, 3}) {
		t.Errorf("Vertex(6) = %v", v)
	}

	// Every edge endpoint must be a box vertex
	for i := 0; i < boxEdgeCount; i++ {
		a, b := box.Edge(Edge(i))
		if a.Sub(b).Len() == 0 {
			t.Errorf("Edge(%d) is degenerate", i)
		}
		for _, p := range []mgl64.Vec3{a, b} {
			if math.Abs(p.X()) != 1 || math.Abs(p.Y()) != 2 || math.Abs(p.Z()) != 3 {
				t.Errorf("Edge(%d) endpoint %v is not a vertex", i, p)
			}
		}
	}
}

func TestBox_ComputeAABB_Rotated(t *testing.T) {
	box := &Box{HalfExtents: mgl64.Vec3{1, 1, 1}}
	box.ComputeAABB(NewTransformAt(mgl64.Vec3{}, mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 0, 1})))

	aabb := box.GetAABB()
	if math.Abs(aabb.Max.X()-math.Sqrt2) > 1e-9 || math.Abs(aabb.Max.Z()-1) > 1e-9 {
		t.Errorf("rotated AABB = %v", aabb)
	}
}

func TestPlane_ProjectPointWithFeature(t *testing.T) {
	plane := &Plane{Normal: mgl64.Vec3{0, 1, 0}, Distance: -1} // y = 1

	tests := []struct {
		name     string
		point    mgl64.Vec3
		expected mgl64.Vec3
		inside   bool
	}{
		{"above", mgl64.Vec3{3, 4, -2}, mgl64.Vec3{3, 1, -2}, false},
		{"below", mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{0, 1, 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proj, feature := plane.ProjectPointWithFeature(NewTransform(), tt.point)
			if !vec3Equal(proj.Point, tt.expected, 1e-12) {
				t.Errorf("projection = %v, want %v", proj.Point, tt.expected)
			}
			if proj.IsInside != tt.inside {
				t.Errorf("IsInside = %v, want %v", proj.IsInside, tt.inside)
			}
			if feature != Face(0) {
				t.Errorf("feature = %v, want Face(0)", feature)
			}
		})
	}

	if cone := plane.NormalCone(Face(0)); cone.Generators()[0] != plane.Normal {
		t.Errorf("plane cone = %v", cone.Generators())
	}
}

func TestPlane_Support(t *testing.T) {
	plane := &Plane{Normal: mgl64.Vec3{0, 1, 0}}

	up := plane.Support(mgl64.Vec3{0, 1, 0})
	if math.Abs(up.Y()) > 1e-12 {
		t.Errorf("support along the normal should lie on the plane, got %v", up)
	}
	down := plane.Support(mgl64.Vec3{0, -1, 0})
	if math.Abs(down.Y()+planeSupportThickness) > 1e-12 {
		t.Errorf("support against the normal should lie at the slab bottom, got %v", down)
	}
}

func TestSphere_Support(t *testing.T) {
	s := &Sphere{Radius: 2}

	if got := s.Support(mgl64.Vec3{0, 3, 0}); !vec3Equal(got, mgl64.Vec3{0, 2, 0}, 1e-12) {
		t.Errorf("Support() = %v", got)
	}
	if got := s.Support(mgl64.Vec3{}); got.Len() != 2 {
		t.Errorf("Support(0) should stay on the sphere, got %v", got)
	}
}

func TestSupportWorld(t *testing.T) {
	body := NewRigidBody(
		NewTransformAt(mgl64.Vec3{0, 5, 0}, mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})),
		&Box{HalfExtents: mgl64.Vec3{2, 1, 1}},
		BodyTypeDynamic,
	)

	// Long local X axis now points along world Y
	got := body.SupportWorld(mgl64.Vec3{0, 1, 0})
	if math.Abs(got.Y()-7) > 1e-9 {
		t.Errorf("SupportWorld() = %v, want y = 7", got)
	}
}

func TestFeatureID_String(t *testing.T) {
	tests := map[FeatureID]string{
		Face(1):          "Face(1)",
		Edge(4):          "Edge(4)",
		Vertex(0):        "Vertex(0)",
		UnknownFeature(): "Unknown",
	}
	for f, want := range tests {
		if f.String() != want {
			t.Errorf("String() = %q, want %q", f.String(), want)
		}
	}
	if !UnknownFeature().IsUnknown() || Face(0).IsUnknown() {
		t.Error("IsUnknown mismatch")
	}
}

func TestPolyhedralCone_Axis(t *testing.T) {
	cone := NewPolyhedralCone(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0})
	want := mgl64.Vec3{1, 1, 0}.Normalize()
	if !vec3Equal(cone.Axis(), want, 1e-12) {
		t.Errorf("Axis() = %v, want %v", cone.Axis(), want)
	}
	if !NewPolyhedralCone().IsEmpty() {
		t.Error("cone without generators should be empty")
	}
}
