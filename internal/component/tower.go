// component/tower.go
package component

import "ten-second-towers/pkg/tilemap"

type Tower struct {
	DefID string
	Tile  tilemap.Location
	// ShotsFired counts shots applied over the tower's life.
	ShotsFired uint64
}

// TowerCooldowns tracks ammo and the shot timer of a tower.
type TowerCooldowns struct {
	Ammo          int
	MaxAmmo       int
	TimeSinceShot float64
}

func NewTowerCooldowns(maxAmmo int) *TowerCooldowns {
	// a fresh tower may shoot right away
	return &TowerCooldowns{Ammo: maxAmmo, MaxAmmo: maxAmmo, TimeSinceShot: 1e9}
}

func (c *TowerCooldowns) HasAmmo() bool     { return c.Ammo > 0 }
func (c *TowerCooldowns) CanGainAmmo() bool { return c.Ammo < c.MaxAmmo }
func (c *TowerCooldowns) PassTime(dt float64) {
	c.TimeSinceShot += dt
}

// UseAmmo spends one shot and restarts the timer. It reports false when
// the tower is empty.
func (c *TowerCooldowns) UseAmmo() bool {
	if c.Ammo <= 0 {
		return false
	}
	c.Ammo--
	c.TimeSinceShot = 0
	return true
}

// GainAmmo adds up to n shots without exceeding MaxAmmo and returns how
// many were added.
func (c *TowerCooldowns) GainAmmo(n int) int {
	room := c.MaxAmmo - c.Ammo
	if n > room {
		n = room
	}
	if n < 0 {
		n = 0
	}
	c.Ammo += n
	return n
}

// Refresh refills the tower at the end of a wave.
func (c *TowerCooldowns) Refresh() {
	c.Ammo = c.MaxAmmo
}
