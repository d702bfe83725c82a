// internal/component/turret.go
package component

import "ten-second-towers/internal/types"

// Turret is the rotating head of a tower.
type Turret struct {
	// Angle is the current facing in radians.
	Angle float64
	// TargetAngle is the facing the turret turns toward.
	TargetAngle float64
	// TurnSpeed in radians per second.
	TurnSpeed float64
	// TargetID is the enemy the last shot was aimed at.
	TargetID types.EntityID
}
