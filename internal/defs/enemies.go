// internal/defs/enemies.go
package defs

// EnemyDefinition holds all the static data for a specific type of enemy.
type EnemyDefinition struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Health      int     `yaml:"health"`
	BoostHealth int     `yaml:"boost_health"` // extra health per boost level
	Speed       float64 `yaml:"speed"`        // pixels per second
	// FlatPaths enemies ignore tile costs when pathing.
	FlatPaths bool `yaml:"flat_paths"`
	// DeathCost is added to the tile cost where the enemy dies.
	DeathCost     int       `yaml:"death_cost"`
	AttackDamage  int       `yaml:"attack_damage"`
	ExplodeDamage int       `yaml:"explode_damage"`
	StealsAmmo    bool      `yaml:"steals_ammo"`
	Loot          Resources `yaml:"loot"`
	Visuals       Visuals   `yaml:"visuals"`
	Tree          TreeDef   `yaml:"tree"`
}
