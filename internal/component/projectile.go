// internal/component/projectile.go
package component

import (
	"image/color"

	"ten-second-towers/internal/types"
	"ten-second-towers/internal/utils"
)

// Projectile is a bullet in flight. It moves in a straight line until it
// hits an enemy or its lifetime runs out.
type Projectile struct {
	BulletID  string
	Owner     types.EntityID
	Velocity  utils.Vec2
	Remaining float64 // seconds left to live
	Damage    int
	HitRadius float64
	Color     color.RGBA
}
