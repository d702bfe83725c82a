// component/movement.go
package component

import "ten-second-towers/internal/utils"

// Position is a world position in pixels.
type Position struct {
	X, Y float64
}

func (p Position) Vec() utils.Vec2 { return utils.Vec2{X: p.X, Y: p.Y} }

func (p *Position) Set(v utils.Vec2) {
	p.X, p.Y = v.X, v.Y
}

// Velocity is how fast an enemy walks and where it went last tick.
type Velocity struct {
	Speed     float64
	Direction utils.Vec2 // unit vector or zero
}

// Vector is the displacement per second.
func (v Velocity) Vector() utils.Vec2 { return v.Direction.Scale(v.Speed) }
