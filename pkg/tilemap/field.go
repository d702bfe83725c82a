// pkg/tilemap/field.go
package tilemap

import (
	"fmt"

	"ten-second-towers/pkg/utils"
)

// Contents is what occupies a tile.
type Contents int

const (
	Empty Contents = iota
	Blocked
	Spawner
	Goal
)

func (c Contents) String() string {
	switch c {
	case Empty:
		return "empty"
	case Blocked:
		return "blocked"
	case Spawner:
		return "spawner"
	case Goal:
		return "goal"
	default:
		return "contents(?)"
	}
}

// Pathable reports whether units may walk through a tile with these contents.
func (c Contents) Pathable() bool { return c != Blocked }

// BaseCost is the traversal cost of an untouched tile and the decay floor.
const BaseCost = 1

// Tile is one cell of the field. Owner is the entity blocking the tile and
// is meaningful only when Contents is Blocked.
type Tile struct {
	Contents Contents
	Owner    uint64
	Pathable bool
	Cost     int
}

// Step is an edge from a tile to a neighbor.
type Step struct {
	To   Location
	Cost int
}

// Field is the rectangular tile grid shared by enemies and towers.
// Accessors panic on out-of-bounds locations; use InBounds to check first.
type Field struct {
	width, height int
	tiles         []Tile
	source        Location
	target        Location
	geometry      Geometry
}

// NewField builds a width x height grid with a spawner at source and the
// goal at target.
func NewField(width, height int, source, target Location, geometry Geometry) *Field {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("tilemap: invalid field size %dx%d", width, height))
	}
	f := &Field{
		width:    width,
		height:   height,
		tiles:    make([]Tile, width*height),
		source:   source,
		target:   target,
		geometry: geometry,
	}
	for i := range f.tiles {
		f.tiles[i] = Tile{Contents: Empty, Pathable: true, Cost: BaseCost}
	}
	f.setContents(source, Spawner, 0)
	f.setContents(target, Goal, 0)
	return f
}

func (f *Field) Width() int         { return f.width }
func (f *Field) Height() int        { return f.height }
func (f *Field) Source() Location   { return f.source }
func (f *Field) Target() Location   { return f.target }
func (f *Field) Geometry() Geometry { return f.geometry }

func (f *Field) InBounds(loc Location) bool {
	return loc.X >= 0 && loc.Y >= 0 && loc.X < f.width && loc.Y < f.height
}

func (f *Field) index(loc Location) int {
	if !f.InBounds(loc) {
		panic(fmt.Sprintf("tilemap: %v outside %dx%d field", loc, f.width, f.height))
	}
	return loc.Y*f.width + loc.X
}

// Tile returns a copy of the tile at loc.
func (f *Field) Tile(loc Location) Tile { return f.tiles[f.index(loc)] }

func (f *Field) Contents(loc Location) Contents { return f.tiles[f.index(loc)].Contents }
func (f *Field) IsPathable(loc Location) bool   { return f.tiles[f.index(loc)].Pathable }
func (f *Field) IsGoal(loc Location) bool       { return f.Contents(loc) == Goal }
func (f *Field) Cost(loc Location) int          { return f.tiles[f.index(loc)].Cost }

// Owner returns the blocking entity at loc, if any.
func (f *Field) Owner(loc Location) (uint64, bool) {
	t := f.tiles[f.index(loc)]
	return t.Owner, t.Contents == Blocked
}

func (f *Field) setContents(loc Location, c Contents, owner uint64) {
	t := &f.tiles[f.index(loc)]
	t.Contents = c
	t.Owner = owner
	t.Pathable = c.Pathable()
}

// CanOccupy reports whether a blocker could be placed at loc.
func (f *Field) CanOccupy(loc Location) bool {
	return f.InBounds(loc) && f.Contents(loc) == Empty
}

// Occupy blocks an empty tile on behalf of owner.
func (f *Field) Occupy(loc Location, owner uint64) bool {
	if !f.CanOccupy(loc) {
		return false
	}
	f.setContents(loc, Blocked, owner)
	return true
}

// Vacate clears a blocked tile and returns its previous owner.
func (f *Field) Vacate(loc Location) (uint64, bool) {
	owner, ok := f.Owner(loc)
	if !ok {
		return 0, false
	}
	f.setContents(loc, Empty, 0)
	return owner, true
}

// IncrementTileCost adds delta to the tile cost, never going below BaseCost.
func (f *Field) IncrementTileCost(loc Location, delta int) {
	t := &f.tiles[f.index(loc)]
	t.Cost = utils.AtLeast(t.Cost+delta, BaseCost)
}

// DecrementTileCost lowers the tile cost by one, never going below BaseCost.
func (f *Field) DecrementTileCost(loc Location) {
	f.IncrementTileCost(loc, -1)
}

// DecayCosts lowers every raised tile by one and returns how many changed.
func (f *Field) DecayCosts() int {
	changed := 0
	for i := range f.tiles {
		if f.tiles[i].Cost > BaseCost {
			f.tiles[i].Cost--
			changed++
		}
	}
	return changed
}

// Neighbors returns pathable neighbors in -x, -y, +x, +y order. Each step
// costs the cost of the tile entered.
func (f *Field) Neighbors(loc Location) []Step {
	steps := make([]Step, 0, len(neighborOffsets))
	for _, d := range neighborOffsets {
		n := loc.Add(d)
		if !f.InBounds(n) {
			continue
		}
		t := f.tiles[f.index(n)]
		if t.Pathable {
			steps = append(steps, Step{To: n, Cost: t.Cost})
		}
	}
	return steps
}

// FlatNeighbors is Neighbors with every step costing one.
func (f *Field) FlatNeighbors(loc Location) []Step {
	steps := f.Neighbors(loc)
	for i := range steps {
		steps[i].Cost = 1
	}
	return steps
}

// EstimateDistanceToGoal is the Manhattan distance from loc to the goal.
func (f *Field) EstimateDistanceToGoal(loc Location) int {
	return loc.ManhattanDistance(f.target)
}

// SquaredDistanceToGoal is the squared Euclidean distance from loc to the goal.
func (f *Field) SquaredDistanceToGoal(loc Location) int {
	return loc.SquaredDistance(f.target)
}

// Each visits every location in row-major order.
func (f *Field) Each(visit func(loc Location, t Tile)) {
	for i, t := range f.tiles {
		visit(Location{i % f.width, i / f.width}, t)
	}
}
