package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func collect(g *SpatialGrid, p Vector2) []int {
	var found []int
	g.QueryAround(p, func(i int) bool {
		found = append(found, i)
		return false
	})
	return found
}

func TestSpatialGridQueryAround(t *testing.T) {
	g := NewSpatialGrid(1024, 768, 48)
	g.Insert(Vec(100, 100), 0)
	g.Insert(Vec(130, 100), 1)
	g.Insert(Vec(900, 700), 2)

	found := collect(g, Vec(110, 105))
	assert.ElementsMatch(t, []int{0, 1}, found)

	assert.Equal(t, []int{2}, collect(g, Vec(920, 690)))
}

func TestSpatialGridClampsOutsidePositions(t *testing.T) {
	g := NewSpatialGrid(1024, 768, 48)
	g.Insert(Vec(500, -50), 7)

	assert.Equal(t, []int{7}, collect(g, Vec(510, -20)))
	assert.Equal(t, []int{7}, collect(g, Vec(510, 10)))
}

func TestSpatialGridDoesNotWrap(t *testing.T) {
	g := NewSpatialGrid(1024, 768, 48)
	g.Insert(Vec(1020, 400), 3)

	assert.Empty(t, collect(g, Vec(2, 400)))
}

func TestSpatialGridClearAndEarlyStop(t *testing.T) {
	g := NewSpatialGrid(200, 200, 50)
	for i := 0; i < 5; i++ {
		g.Insert(Vec(60, 60), i)
	}

	calls := 0
	g.QueryAround(Vec(60, 60), func(int) bool {
		calls++
		return calls == 2
	})
	assert.Equal(t, 2, calls)

	g.Clear()
	assert.Empty(t, collect(g, Vec(60, 60)))
}
