// pkg/tilemap/pathcache.go
package tilemap

// DefaultStaleWindow is how long, in seconds, a cached bag stays fresh.
const DefaultStaleWindow = 1.0

// Outcome classifies a cache lookup.
type Outcome int

const (
	Hit Outcome = iota
	Miss
	Unreachable
)

func (o Outcome) String() string {
	switch o {
	case Hit:
		return "hit"
	case Miss:
		return "miss"
	case Unreachable:
		return "unreachable"
	default:
		return "outcome(?)"
	}
}

// IsStale reports whether an entry stamped at stamp is too old at now.
func IsStale(stamp, now, window float64) bool {
	return !(now-stamp < window)
}

// SearchFunc computes a fresh bag for origin.
type SearchFunc func(origin Location) (PathBag, bool)

type cacheEntry struct {
	stamp float64
	bag   PathBag
}

// PathCache memoizes path bags by origin tile for a short window. Failed
// searches are not cached, so an origin that becomes reachable is picked up
// on the next lookup. Not safe for concurrent use.
type PathCache struct {
	window  float64
	entries map[Location]cacheEntry
}

// NewPathCache returns a cache with the given freshness window. A
// non-positive window means DefaultStaleWindow.
func NewPathCache(window float64) *PathCache {
	if window <= 0 {
		window = DefaultStaleWindow
	}
	return &PathCache{window: window, entries: make(map[Location]cacheEntry)}
}

func (c *PathCache) Window() float64 { return c.window }
func (c *PathCache) Len() int        { return len(c.entries) }

// Lookup returns the cached bag for origin when fresh, otherwise runs
// search, stores a successful result stamped at now and returns it.
func (c *PathCache) Lookup(origin Location, now float64, search SearchFunc) (PathBag, Outcome) {
	if e, ok := c.entries[origin]; ok && !IsStale(e.stamp, now, c.window) {
		return e.bag, Hit
	}
	bag, ok := search(origin)
	if !ok {
		return PathBag{}, Unreachable
	}
	c.entries[origin] = cacheEntry{stamp: now, bag: bag}
	return bag, Miss
}

// Prune drops stale entries and returns how many were removed.
func (c *PathCache) Prune(now float64) int {
	removed := 0
	for loc, e := range c.entries {
		if IsStale(e.stamp, now, c.window) {
			delete(c.entries, loc)
			removed++
		}
	}
	return removed
}

// Clear drops every entry.
func (c *PathCache) Clear() {
	clear(c.entries)
}
