package epa

import (
	"math"
	"testing"

	"github.com/akmonengine/narrowphase/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

func vec3ApproxEqual(a, b mgl64.Vec3, tolerance float64) bool {
	return math.Abs(a.X()-b.X()) < tolerance &&
		math.Abs(a.Y()-b.Y()) < tolerance &&
		math.Abs(a.Z()-b.Z()) < tolerance
}

func isNormalized(v mgl64.Vec3, tolerance float64) bool {
	return math.Abs(v.Len()-1.0) < tolerance
}

// pointOnly builds a support point whose Minkowski point is p.
func pointOnly(p mgl64.Vec3) gjk.SupportPoint {
	return gjk.SupportPoint{A: p}
}

func TestNewFace(t *testing.T) {
	tests := []struct {
		name     string
		p0       mgl64.Vec3
		p1       mgl64.Vec3
		p2       mgl64.Vec3
		inside   mgl64.Vec3
		normal   mgl64.Vec3
		distance float64
	}{
		{
			name: "counter clockwise above origin",
			p0:   mgl64.Vec3{-1, 2, -1}, p1: mgl64.Vec3{1, 2, -1}, p2: mgl64.Vec3{0, 2, 1},
			inside: mgl64.Vec3{}, normal: mgl64.Vec3{0, 1, 0}, distance: 2,
		},
		{
			name: "clockwise above origin",
			p0:   mgl64.Vec3{0, 2, 1}, p1: mgl64.Vec3{1, 2, -1}, p2: mgl64.Vec3{-1, 2, -1},
			inside: mgl64.Vec3{}, normal: mgl64.Vec3{0, 1, 0}, distance: 2,
		},
		{
			name: "below origin",
			p0:   mgl64.Vec3{-1, -3, -1}, p1: mgl64.Vec3{1, -3, -1}, p2: mgl64.Vec3{0, -3, 1},
			inside: mgl64.Vec3{0, -1, 0}, normal: mgl64.Vec3{0, -1, 0}, distance: 3,
		},
		{
			name: "degenerate",
			p0:   mgl64.Vec3{0, 1, 0}, p1: mgl64.Vec3{0, 2, 0}, p2: mgl64.Vec3{0, 3, 0},
			inside: mgl64.Vec3{}, normal: mgl64.Vec3{0, 1, 0}, distance: EPAMinFaceDistance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			face := newFace(pointOnly(tt.p0), pointOnly(tt.p1), pointOnly(tt.p2), tt.inside)

			if !vec3ApproxEqual(face.Normal, tt.normal, 1e-9) {
				t.Errorf("Normal = %v, want %v", face.Normal, tt.normal)
			}
			if math.Abs(face.Distance-tt.distance) > 1e-9 {
				t.Errorf("Distance = %v, want %v", face.Distance, tt.distance)
			}
			if !isNormalized(face.Normal, 1e-9) {
				t.Errorf("normal %v is not unit length", face.Normal)
			}
		})
	}
}

func TestFace_WitnessPoints(t *testing.T) {
	// B side fixed at the origin, so the witness on A is the closest point itself
	tests := []struct {
		name     string
		p0       mgl64.Vec3
		p1       mgl64.Vec3
		p2       mgl64.Vec3
		expected mgl64.Vec3
	}{
		{"face interior", mgl64.Vec3{-1, 1, -1}, mgl64.Vec3{1, 1, -1}, mgl64.Vec3{0, 1, 2}, mgl64.Vec3{0, 1, 0}},
		{"edge bc", mgl64.Vec3{0, 3, 5}, mgl64.Vec3{-1, 1, 0}, mgl64.Vec3{3, 1, 0}, mgl64.Vec3{0, 1, 0}},
		{"vertex", mgl64.Vec3{3, 0, 0}, mgl64.Vec3{3, 1, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			face := Face{Points: [3]gjk.SupportPoint{pointOnly(tt.p0), pointOnly(tt.p1), pointOnly(tt.p2)}}

			pointA, pointB := face.witnessPoints()
			if !vec3ApproxEqual(pointA, tt.expected, 1e-12) {
				t.Errorf("PointA = %v, want %v", pointA, tt.expected)
			}
			if pointB != (mgl64.Vec3{}) {
				t.Errorf("PointB = %v, want origin", pointB)
			}

			w := face.closestWeights()
			if math.Abs(w[0]+w[1]+w[2]-1) > 1e-12 {
				t.Errorf("weights %v do not sum to 1", w)
			}
		})
	}
}

func TestSnapNormalToAxis(t *testing.T) {
	tests := []struct {
		name     string
		input    mgl64.Vec3
		expected mgl64.Vec3
	}{
		{"small_x_component", mgl64.Vec3{1e-9, 1.0, 0.0}, mgl64.Vec3{0.0, 1.0, 0.0}},
		{"small_z_component", mgl64.Vec3{0.0, 1.0, 1e-9}, mgl64.Vec3{0.0, 1.0, 0.0}},
		{"already_axis_aligned_x", mgl64.Vec3{1.0, 0.0, 0.0}, mgl64.Vec3{1.0, 0.0, 0.0}},
		{"diagonal_normal", mgl64.Vec3{1.0, 1.0, 1.0}.Normalize(), mgl64.Vec3{1.0, 1.0, 1.0}.Normalize()},
		{"near_zero_vector", mgl64.Vec3{1e-9, 1e-9, 1e-9}, mgl64.Vec3{0.0, 1.0, 0.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := snapNormalToAxis(tt.input)
			if !vec3ApproxEqual(result, tt.expected, 1e-6) {
				t.Errorf("snapNormalToAxis(%v) = %v, want %v", tt.input, result, tt.expected)
			}
			if !isNormalized(result, 1e-6) {
				t.Errorf("result is not normalized: length = %v", result.Len())
			}
		})
	}
}
