// internal/defs/types.go
package defs

import (
	"errors"
	"image/color"
)

var (
	// ErrUnknownLeaf is returned when a tree names a leaf kind that is not
	// available to the agent it is attached to.
	ErrUnknownLeaf = errors.New("unknown leaf kind")
	// ErrInvalidTree is returned for malformed tree shapes or parameters.
	ErrInvalidTree = errors.New("invalid tree")
)

// Resources is the three-currency economy of the game.
type Resources struct {
	Minerals int `yaml:"minerals"`
	Dust     int `yaml:"dust"`
	Tech     int `yaml:"tech"`
}

func (r Resources) Add(o Resources) Resources {
	return Resources{r.Minerals + o.Minerals, r.Dust + o.Dust, r.Tech + o.Tech}
}

func (r Resources) Sub(o Resources) Resources {
	return Resources{r.Minerals - o.Minerals, r.Dust - o.Dust, r.Tech - o.Tech}
}

// Covers reports whether r can pay for cost.
func (r Resources) Covers(cost Resources) bool {
	return r.Minerals >= cost.Minerals && r.Dust >= cost.Dust && r.Tech >= cost.Tech
}

// Visuals contains parameters for drawing an entity.
type Visuals struct {
	Color        color.RGBA `yaml:"color"`
	RadiusFactor float64    `yaml:"radius_factor"`
}
