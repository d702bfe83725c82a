// pkg/tilemap/pathfinding.go
package tilemap

import (
	"container/heap"
	"slices"
)

// MaxPathsPerBag caps how many equal-cost paths a search reports. Open
// fields have combinatorially many ties; a few dozen are plenty to pick from.
const MaxPathsPerBag = 32

// NeighborFunc enumerates the outgoing steps of a tile. Costs must be >= 1.
type NeighborFunc func(Location) []Step

// PathBag is every minimal-cost path from one origin to the goal, up to
// MaxPathsPerBag. Each path starts at the origin and ends on a goal tile.
// Paths are sorted lexicographically. Bags are shared by the path cache and
// must be treated as read-only.
type PathBag struct {
	Paths [][]Location
	Cost  int
}

// Empty reports whether the bag holds no path.
func (b PathBag) Empty() bool { return len(b.Paths) == 0 }

// First returns the preferred path, or nil.
func (b PathBag) First() []Location {
	if len(b.Paths) == 0 {
		return nil
	}
	return b.Paths[0]
}

// NextStep returns the tile after the origin on the preferred path. It is
// false for an empty bag and for an origin already on the goal.
func (b PathBag) NextStep() (Location, bool) {
	p := b.First()
	if len(p) < 2 {
		return Location{}, false
	}
	return p[1], true
}

// ShortestPaths runs A* from origin toward the field's goal and collects
// every path of minimal total cost. The heuristic is the Manhattan distance,
// which is admissible because every step costs at least one.
func ShortestPaths(f *Field, origin Location, neighbors NeighborFunc) (PathBag, bool) {
	if !f.InBounds(origin) {
		return PathBag{}, false
	}
	if f.IsGoal(origin) {
		return PathBag{Paths: [][]Location{{origin}}}, true
	}

	pq := &PriorityQueue{}
	heap.Init(pq)
	heap.Push(pq, &Node{Loc: origin, Cost: 0, Priority: f.EstimateDistanceToGoal(origin)})
	costSoFar := map[Location]int{origin: 0}
	parents := make(map[Location][]Location)
	best := -1
	var goals []Location

	for pq.Len() > 0 {
		current := heap.Pop(pq).(*Node)
		if best >= 0 && current.Priority > best {
			break
		}
		if current.Cost > costSoFar[current.Loc] {
			continue // superseded entry
		}
		if f.IsGoal(current.Loc) {
			if best < 0 {
				best = current.Cost
			}
			if current.Cost == best {
				goals = append(goals, current.Loc)
			}
			continue
		}
		for _, step := range neighbors(current.Loc) {
			newCost := current.Cost + step.Cost
			old, seen := costSoFar[step.To]
			switch {
			case !seen || newCost < old:
				costSoFar[step.To] = newCost
				parents[step.To] = []Location{current.Loc}
				heap.Push(pq, &Node{
					Loc:      step.To,
					Cost:     newCost,
					Priority: newCost + f.EstimateDistanceToGoal(step.To),
				})
			case newCost == old && !slices.Contains(parents[step.To], current.Loc):
				parents[step.To] = append(parents[step.To], current.Loc)
			}
		}
	}
	if best < 0 {
		return PathBag{}, false
	}

	for _, ps := range parents {
		slices.SortFunc(ps, compareLocations)
	}
	slices.SortFunc(goals, compareLocations)

	var paths [][]Location
	for _, g := range goals {
		paths = collectPaths(origin, g, parents, []Location{g}, paths)
		if len(paths) >= MaxPathsPerBag {
			break
		}
	}
	for _, p := range paths {
		slices.Reverse(p)
	}
	slices.SortFunc(paths, comparePaths)
	return PathBag{Paths: paths, Cost: best}, true
}

// collectPaths walks the parent graph backward from the tail of suffix and
// appends each complete origin path (in reverse order) to out.
func collectPaths(origin, at Location, parents map[Location][]Location, suffix []Location, out [][]Location) [][]Location {
	if len(out) >= MaxPathsPerBag {
		return out
	}
	if at == origin {
		return append(out, slices.Clone(suffix))
	}
	for _, p := range parents[at] {
		out = collectPaths(origin, p, parents, append(suffix, p), out)
		if len(out) >= MaxPathsPerBag {
			break
		}
	}
	return out
}

func compareLocations(a, b Location) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	default:
		return 0
	}
}

func comparePaths(a, b []Location) int {
	return slices.CompareFunc(a, b, compareLocations)
}

// PriorityQueue orders search nodes by estimated total cost.
type PriorityQueue []*Node

type Node struct {
	Loc      Location
	Cost     int
	Priority int
}

func (pq PriorityQueue) Len() int { return len(pq) }
func (pq PriorityQueue) Less(i, j int) bool {
	if pq[i].Priority != pq[j].Priority {
		return pq[i].Priority < pq[j].Priority
	}
	if pq[i].Cost != pq[j].Cost {
		return pq[i].Cost > pq[j].Cost
	}
	return pq[i].Loc.Less(pq[j].Loc)
}
func (pq PriorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *PriorityQueue) Push(x interface{}) {
	*pq = append(*pq, x.(*Node))
}
func (pq *PriorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}
