// pkg/tilemap/location.go
package tilemap

import (
	"fmt"
	"math"

	"ten-second-towers/pkg/utils"
)

// Location is an integer tile coordinate.
type Location struct {
	X, Y int
}

// Neighbor offsets in the order they are expanded: -x, -y, +x, +y.
var neighborOffsets = [4]Location{{-1, 0}, {0, -1}, {1, 0}, {0, 1}}

func (l Location) Add(o Location) Location { return Location{l.X + o.X, l.Y + o.Y} }
func (l Location) Sub(o Location) Location { return Location{l.X - o.X, l.Y - o.Y} }

func (l Location) ManhattanDistance(o Location) int {
	return utils.Abs(l.X-o.X) + utils.Abs(l.Y-o.Y)
}

func (l Location) SquaredDistance(o Location) int {
	dx, dy := l.X-o.X, l.Y-o.Y
	return dx*dx + dy*dy
}

// Less orders locations by X, then Y.
func (l Location) Less(o Location) bool {
	if l.X != o.X {
		return l.X < o.X
	}
	return l.Y < o.Y
}

func (l Location) String() string { return fmt.Sprintf("(%d,%d)", l.X, l.Y) }

// Geometry maps tiles to world pixels. Offset is the pixel position of the
// center of tile (0,0).
type Geometry struct {
	TileSize float64
	OffsetX  float64
	OffsetY  float64
}

// Center returns the pixel center of loc.
func (g Geometry) Center(loc Location) (x, y float64) {
	return float64(loc.X)*g.TileSize + g.OffsetX, float64(loc.Y)*g.TileSize + g.OffsetY
}

// Locate returns the tile containing pixel (x, y). The result may be out of
// bounds for any particular field.
func (g Geometry) Locate(x, y float64) Location {
	fx := (x - g.OffsetX + g.TileSize/2) / g.TileSize
	fy := (y - g.OffsetY + g.TileSize/2) / g.TileSize
	return Location{int(math.Floor(fx)), int(math.Floor(fy))}
}
