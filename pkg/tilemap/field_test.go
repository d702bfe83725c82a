package tilemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testGeometry = Geometry{TileSize: 32, OffsetX: 16, OffsetY: 16}

func newTestField(w, h int) *Field {
	return NewField(w, h, Location{0, h / 2}, Location{w - 1, h / 2}, testGeometry)
}

func TestNewField(t *testing.T) {
	f := newTestField(5, 3)
	assert.Equal(t, Spawner, f.Contents(Location{0, 1}))
	assert.True(t, f.IsGoal(Location{4, 1}))
	assert.True(t, f.IsPathable(Location{0, 1}))
	assert.Equal(t, BaseCost, f.Cost(Location{2, 2}))
	assert.Panics(t, func() { NewField(0, 3, Location{}, Location{}, testGeometry) })
}

func TestOutOfBoundsPanics(t *testing.T) {
	f := newTestField(5, 3)
	for _, loc := range []Location{{-1, 0}, {5, 0}, {0, 3}, {0, -1}} {
		assert.False(t, f.InBounds(loc))
		assert.Panics(t, func() { f.Cost(loc) }, loc.String())
	}
}

func TestOccupyAndVacate(t *testing.T) {
	f := newTestField(5, 3)
	loc := Location{2, 1}

	require.True(t, f.Occupy(loc, 7))
	assert.False(t, f.IsPathable(loc))
	owner, ok := f.Owner(loc)
	assert.True(t, ok)
	assert.Equal(t, uint64(7), owner)
	assert.False(t, f.Occupy(loc, 8), "occupied tile")
	assert.False(t, f.Occupy(f.Source(), 8), "spawner")
	assert.False(t, f.Occupy(f.Target(), 8), "goal")
	assert.False(t, f.Occupy(Location{9, 9}, 8), "out of bounds")

	owner, ok = f.Vacate(loc)
	assert.True(t, ok)
	assert.Equal(t, uint64(7), owner)
	assert.True(t, f.IsPathable(loc))
	_, ok = f.Vacate(loc)
	assert.False(t, ok)
}

func TestTileCostFloor(t *testing.T) {
	f := newTestField(5, 3)
	loc := Location{1, 1}

	f.IncrementTileCost(loc, 3)
	assert.Equal(t, 4, f.Cost(loc))
	for range 10 {
		f.DecrementTileCost(loc)
	}
	assert.Equal(t, BaseCost, f.Cost(loc))

	f.IncrementTileCost(loc, -5)
	assert.Equal(t, BaseCost, f.Cost(loc))
}

func TestDecayCosts(t *testing.T) {
	f := newTestField(5, 3)
	f.IncrementTileCost(Location{1, 1}, 2)
	f.IncrementTileCost(Location{3, 0}, 1)

	assert.Equal(t, 2, f.DecayCosts())
	assert.Equal(t, 2, f.Cost(Location{1, 1}))
	assert.Equal(t, 1, f.DecayCosts())
	assert.Equal(t, 0, f.DecayCosts())
}

func TestNeighbors(t *testing.T) {
	f := newTestField(5, 3)
	f.Occupy(Location{2, 0}, 1)
	f.IncrementTileCost(Location{3, 1}, 4)

	assert.Equal(t, []Step{
		{To: Location{1, 1}, Cost: 1},
		{To: Location{3, 1}, Cost: 5},
		{To: Location{2, 2}, Cost: 1},
	}, f.Neighbors(Location{2, 1}))

	assert.Equal(t, []Step{
		{To: Location{1, 1}, Cost: 1},
		{To: Location{3, 1}, Cost: 1},
		{To: Location{2, 2}, Cost: 1},
	}, f.FlatNeighbors(Location{2, 1}))

	// bottom-right corner only has -x and -y
	assert.Equal(t, []Step{
		{To: Location{3, 2}, Cost: 1},
		{To: Location{4, 1}, Cost: 1},
	}, f.Neighbors(Location{4, 2}))
}

func TestNeighborsRespectHeightOnTallField(t *testing.T) {
	f := NewField(2, 6, Location{0, 0}, Location{1, 5}, testGeometry)
	steps := f.Neighbors(Location{0, 4})
	require.Len(t, steps, 3)
	assert.Equal(t, Location{0, 5}, steps[2].To)
}

func TestDistanceToGoal(t *testing.T) {
	f := newTestField(5, 3)
	assert.Equal(t, 5, f.EstimateDistanceToGoal(Location{0, 0}))
	assert.Equal(t, 17, f.SquaredDistanceToGoal(Location{0, 0}))
	assert.Zero(t, f.EstimateDistanceToGoal(f.Target()))
}

func TestGeometry(t *testing.T) {
	x, y := testGeometry.Center(Location{2, 1})
	assert.Equal(t, 80.0, x)
	assert.Equal(t, 48.0, y)

	assert.Equal(t, Location{2, 1}, testGeometry.Locate(80, 48))
	assert.Equal(t, Location{0, 0}, testGeometry.Locate(0, 0))
	assert.Equal(t, Location{0, 0}, testGeometry.Locate(31.9, 31.9))
	assert.Equal(t, Location{1, 1}, testGeometry.Locate(32, 32))
	assert.Equal(t, Location{-1, 0}, testGeometry.Locate(-0.5, 3))
}

func TestEachVisitsRowMajor(t *testing.T) {
	f := newTestField(3, 2)
	var locs []Location
	f.Each(func(loc Location, _ Tile) { locs = append(locs, loc) })
	assert.Equal(t, []Location{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {1, 1}, {2, 1}}, locs)
}
