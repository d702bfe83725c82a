// internal/defs/waves.go
package defs

// Spawn is Count enemies of one kind, each with Boosts extra health levels.
type Spawn struct {
	Enemy  string `yaml:"enemy"`
	Count  int    `yaml:"count"`
	Boosts int    `yaml:"boosts"`
}

// WaveDefinition is one scripted wave.
type WaveDefinition struct {
	Spawns []Spawn `yaml:"spawns"`
}

// RandomEntry is one option when rolling a random wave. An entry with Cost
// above one is only affordable while the remaining budget exceeds its cost;
// otherwise the fallback enemy is taken.
type RandomEntry struct {
	Enemy  string `yaml:"enemy"`
	Weight int    `yaml:"weight"`
	Cost   int    `yaml:"cost"`
	Count  int    `yaml:"count"`
}

// RandomWaves describes the waves after the scripted ones. A wave n gets a
// budget of n*BudgetPerWave; while more than BoostAbove remains, each roll
// also boosts one random spawn for BoostCost.
type RandomWaves struct {
	BudgetPerWave int           `yaml:"budget_per_wave"`
	BoostAbove    int           `yaml:"boost_above"`
	BoostCost     int           `yaml:"boost_cost"`
	Fallback      string        `yaml:"fallback"`
	Entries       []RandomEntry `yaml:"entries"`
}

// WaveTable is wave 1..len(Scripted) followed by random waves. Wave 0 is
// the opening build phase and spawns nothing.
type WaveTable struct {
	Scripted []WaveDefinition `yaml:"scripted"`
	Random   RandomWaves      `yaml:"random"`
}

// ScriptedWave returns the scripted wave with the given number, if any.
func (t WaveTable) ScriptedWave(wave int) (WaveDefinition, bool) {
	if wave < 1 || wave > len(t.Scripted) {
		return WaveDefinition{}, false
	}
	return t.Scripted[wave-1], true
}
