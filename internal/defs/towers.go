// internal/defs/towers.go
package defs

// TowerDefinition holds all the static data for a specific type of tower.
type TowerDefinition struct {
	ID      string    `yaml:"id"`
	Name    string    `yaml:"name"`
	Flavor  string    `yaml:"flavor"`
	Hotkey  int       `yaml:"hotkey"`
	Health  int       `yaml:"health"`
	Ammo    int       `yaml:"ammo"`
	Cost    Resources `yaml:"cost"`
	Refund  Resources `yaml:"refund"`
	Visuals Visuals   `yaml:"visuals"`
	Tree    TreeDef   `yaml:"tree"`
}

// BulletDefinition describes a projectile fired by fire leaves.
type BulletDefinition struct {
	ID        string  `yaml:"id"`
	Speed     float64 `yaml:"speed"`    // pixels per second
	Lifetime  float64 `yaml:"lifetime"` // seconds
	Damage    int     `yaml:"damage"`
	HitRadius float64 `yaml:"hit_radius"`
	Visuals   Visuals `yaml:"visuals"`
}

// Range is the farthest distance the bullet travels.
func (b BulletDefinition) Range() float64 {
	return b.Speed * b.Lifetime
}
