// internal/defs/loader.go
package defs

import (
	"cmp"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embedded embed.FS

const (
	enemiesFile = "enemies.yaml"
	towersFile  = "towers.yaml"
	bulletsFile = "bullets.yaml"
	wavesFile   = "waves.yaml"
)

// Library is one consistent set of game definitions.
type Library struct {
	Enemies map[string]EnemyDefinition
	Towers  map[string]TowerDefinition
	Bullets map[string]BulletDefinition
	Waves   WaveTable
}

// LoadEmbedded loads the definitions compiled into the binary.
func LoadEmbedded() (*Library, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded definitions: %w", err)
	}
	return Load(sub)
}

// LoadDir loads definitions from a directory on disk.
func LoadDir(dir string) (*Library, error) {
	return Load(os.DirFS(dir))
}

// Load reads the four definition files from fsys and validates them.
func Load(fsys fs.FS) (*Library, error) {
	var (
		enemies []EnemyDefinition
		towers  []TowerDefinition
		bullets []BulletDefinition
		waves   WaveTable
	)
	if err := readYAML(fsys, bulletsFile, &bullets); err != nil {
		return nil, err
	}
	if err := readYAML(fsys, enemiesFile, &enemies); err != nil {
		return nil, err
	}
	if err := readYAML(fsys, towersFile, &towers); err != nil {
		return nil, err
	}
	if err := readYAML(fsys, wavesFile, &waves); err != nil {
		return nil, err
	}

	lib := &Library{
		Enemies: make(map[string]EnemyDefinition, len(enemies)),
		Towers:  make(map[string]TowerDefinition, len(towers)),
		Bullets: make(map[string]BulletDefinition, len(bullets)),
		Waves:   waves,
	}
	for _, def := range bullets {
		if _, dup := lib.Bullets[def.ID]; dup {
			return nil, fmt.Errorf("duplicate bullet id %q", def.ID)
		}
		lib.Bullets[def.ID] = def
	}
	for _, def := range enemies {
		if _, dup := lib.Enemies[def.ID]; dup {
			return nil, fmt.Errorf("duplicate enemy id %q", def.ID)
		}
		lib.Enemies[def.ID] = def
	}
	for _, def := range towers {
		if _, dup := lib.Towers[def.ID]; dup {
			return nil, fmt.Errorf("duplicate tower id %q", def.ID)
		}
		lib.Towers[def.ID] = def
	}
	lib.normalize()
	if err := lib.validate(); err != nil {
		return nil, fmt.Errorf("invalid definitions: %w", err)
	}
	return lib, nil
}

func readYAML(fsys fs.FS, name string, out any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", name, err)
	}
	return nil
}

func (l *Library) normalize() {
	for i := range l.Waves.Scripted {
		for j := range l.Waves.Scripted[i].Spawns {
			if s := &l.Waves.Scripted[i].Spawns[j]; s.Count == 0 {
				s.Count = 1
			}
		}
	}
	for i := range l.Waves.Random.Entries {
		e := &l.Waves.Random.Entries[i]
		if e.Count == 0 {
			e.Count = 1
		}
		if e.Cost == 0 {
			e.Cost = 1
		}
	}
}

func (l *Library) validate() error {
	for _, id := range sortedKeys(l.Bullets) {
		b := l.Bullets[id]
		if b.Speed <= 0 || b.Lifetime <= 0 {
			return fmt.Errorf("bullet %q: speed and lifetime must be positive", id)
		}
		if b.HitRadius <= 0 {
			return fmt.Errorf("bullet %q: hit_radius must be positive", id)
		}
	}
	for _, id := range sortedKeys(l.Enemies) {
		e := l.Enemies[id]
		if e.Health <= 0 || e.Speed <= 0 {
			return fmt.Errorf("enemy %q: health and speed must be positive", id)
		}
		if err := e.Tree.Validate(EnemyLeaves, l.Bullets); err != nil {
			return fmt.Errorf("enemy %q tree: %w", id, err)
		}
	}
	hotkeys := make(map[int]string)
	for _, id := range sortedKeys(l.Towers) {
		t := l.Towers[id]
		if t.Health <= 0 || t.Ammo < 0 {
			return fmt.Errorf("tower %q: health must be positive and ammo non-negative", id)
		}
		if other, dup := hotkeys[t.Hotkey]; dup && t.Hotkey != 0 {
			return fmt.Errorf("tower %q: hotkey %d already used by %q", id, t.Hotkey, other)
		}
		hotkeys[t.Hotkey] = id
		if err := t.Tree.Validate(TowerLeaves, l.Bullets); err != nil {
			return fmt.Errorf("tower %q tree: %w", id, err)
		}
	}
	for i, w := range l.Waves.Scripted {
		for _, s := range w.Spawns {
			if _, ok := l.Enemies[s.Enemy]; !ok {
				return fmt.Errorf("wave %d: unknown enemy %q", i+1, s.Enemy)
			}
		}
	}
	r := l.Waves.Random
	if r.BudgetPerWave <= 0 {
		return fmt.Errorf("random waves: budget_per_wave must be positive")
	}
	if _, ok := l.Enemies[r.Fallback]; !ok {
		return fmt.Errorf("random waves: unknown fallback enemy %q", r.Fallback)
	}
	for _, e := range r.Entries {
		if _, ok := l.Enemies[e.Enemy]; !ok {
			return fmt.Errorf("random waves: unknown enemy %q", e.Enemy)
		}
	}
	return nil
}

// TowerIDs returns tower ids ordered by hotkey, then id.
func (l *Library) TowerIDs() []string {
	ids := sortedKeys(l.Towers)
	slices.SortStableFunc(ids, func(a, b string) int {
		return cmp.Compare(l.Towers[a].Hotkey, l.Towers[b].Hotkey)
	})
	return ids
}

// TowerByHotkey finds the tower bound to a number key.
func (l *Library) TowerByHotkey(key int) (TowerDefinition, bool) {
	for _, id := range l.TowerIDs() {
		if t := l.Towers[id]; t.Hotkey == key {
			return t, true
		}
	}
	return TowerDefinition{}, false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
