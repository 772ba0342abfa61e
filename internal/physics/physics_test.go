package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name     string
		x1, y1   float64
		x2, y2   float64
		expected float64
	}{
		{"same point", 0, 0, 0, 0, 0},
		{"horizontal", 0, 0, 3, 0, 3},
		{"vertical", 0, 0, 0, 4, 4},
		{"diagonal 3-4-5", 0, 0, 3, 4, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Distance(tt.x1, tt.y1, tt.x2, tt.y2), 0.001)
			assert.InDelta(t, tt.expected*tt.expected, DistanceSquared(tt.x1, tt.y1, tt.x2, tt.y2), 0.001)
		})
	}
}

func TestCirclesOverlap(t *testing.T) {
	tests := []struct {
		name     string
		p1       Vector2
		r1       float64
		p2       Vector2
		r2       float64
		expected bool
	}{
		{"same centre", Vec(10, 10), 1, Vec(10, 10), 1, true},
		{"overlapping", Vec(0, 0), 5, Vec(8, 0), 4, true},
		{"touching is not overlapping", Vec(0, 0), 5, Vec(9, 0), 4, false},
		{"apart", Vec(0, 0), 5, Vec(20, 20), 4, false},
		{"diagonal overlap", Vec(100, 100), 12, Vec(110, 110), 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CirclesOverlap(tt.p1, tt.r1, tt.p2, tt.r2))
			assert.Equal(t, tt.expected, CirclesOverlap(tt.p2, tt.r2, tt.p1, tt.r1), "collision must be symmetric")
		})
	}
}

func TestVectorOps(t *testing.T) {
	a := Vec(3, 4)
	b := Vec(1, -2)

	assert.Equal(t, Vec(4, 2), a.Add(b))
	assert.Equal(t, Vec(2, 6), a.Sub(b))
	assert.Equal(t, Vec(6, 8), a.Scale(2))
	assert.InDelta(t, 5.0, a.Length(), 1e-9)
	assert.InDelta(t, 1.0, a.Normalize().Length(), 1e-9)
	assert.InDelta(t, math.Sqrt(40), a.DistanceTo(b), 1e-9)
	assert.InDelta(t, 5.0, Vec(0, 0).DistanceTo(a), 1e-9)
	assert.InDelta(t, 5.0, a.DistanceTo(Vec(0, 0)), 1e-9)
}

func TestNormalizeZero(t *testing.T) {
	assert.Equal(t, Vector2{}, Vector2{}.Normalize())
}

func TestFromAngle(t *testing.T) {
	up := FromAngle(-math.Pi/2, 500)
	assert.InDelta(t, 0, up.X, 1e-9)
	assert.InDelta(t, -500, up.Y, 1e-9)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5.0, Clamp(1, 5, 10))
	assert.Equal(t, 10.0, Clamp(11, 5, 10))
	assert.Equal(t, 7.0, Clamp(7, 5, 10))
}
