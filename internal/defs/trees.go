// internal/defs/trees.go
package defs

import "fmt"

// NodeKind names a composite or leaf in a tree definition.
type NodeKind string

const (
	KindSequence NodeKind = "sequence"
	KindSelector NodeKind = "selector"
	KindInverter NodeKind = "inverter"

	KindCondition NodeKind = "condition"
	KindIdle      NodeKind = "idle"

	KindPathfind    NodeKind = "pathfind"
	KindAttackTower NodeKind = "attack_tower"
	KindExplode     NodeKind = "explode"

	KindFire      NodeKind = "fire"
	KindFireFixed NodeKind = "fire_fixed"
	KindAssist    NodeKind = "assist"
)

// EnemyLeaves and TowerLeaves list the leaf kinds each agent family accepts.
var (
	EnemyLeaves = []NodeKind{KindCondition, KindIdle, KindPathfind, KindAttackTower, KindExplode}
	TowerLeaves = []NodeKind{KindCondition, KindIdle, KindFire, KindFireFixed, KindAssist}
)

func (k NodeKind) IsComposite() bool {
	return k == KindSequence || k == KindSelector || k == KindInverter
}

type Direction struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// TreeDef is the declarative form of a behavior tree. Only the parameters
// relevant to Kind are read.
type TreeDef struct {
	Kind     NodeKind  `yaml:"kind"`
	Name     string    `yaml:"name,omitempty"`
	Children []TreeDef `yaml:"children,omitempty"`

	Expr      string     `yaml:"expr,omitempty"`     // condition
	Bullet    string     `yaml:"bullet,omitempty"`   // fire, fire_fixed
	Cooldown  float64    `yaml:"cooldown,omitempty"` // fire, fire_fixed
	Direction *Direction `yaml:"direction,omitempty"`
}

// Validate checks the shape of def against the allowed leaves and the known
// bullets. Expressions are compiled later by the tree factory.
func (def TreeDef) Validate(leaves []NodeKind, bullets map[string]BulletDefinition) error {
	return def.validate("", leaves, bullets)
}

func (def TreeDef) validate(path string, leaves []NodeKind, bullets map[string]BulletDefinition) error {
	path = path + "/" + string(def.Kind)
	switch def.Kind {
	case KindSequence, KindSelector:
		if len(def.Children) == 0 {
			return fmt.Errorf("%w: %s has no children", ErrInvalidTree, path)
		}
	case KindInverter:
		if len(def.Children) != 1 {
			return fmt.Errorf("%w: %s needs exactly one child, has %d", ErrInvalidTree, path, len(def.Children))
		}
	case "":
		return fmt.Errorf("%w: %s: missing kind", ErrInvalidTree, path)
	default:
		if !containsKind(leaves, def.Kind) {
			return fmt.Errorf("%w: %s", ErrUnknownLeaf, path)
		}
		if len(def.Children) > 0 {
			return fmt.Errorf("%w: leaf %s cannot have children", ErrInvalidTree, path)
		}
		if err := def.validateLeaf(path, bullets); err != nil {
			return err
		}
	}
	for i, child := range def.Children {
		if err := child.validate(fmt.Sprintf("%s[%d]", path, i), leaves, bullets); err != nil {
			return err
		}
	}
	return nil
}

func (def TreeDef) validateLeaf(path string, bullets map[string]BulletDefinition) error {
	switch def.Kind {
	case KindCondition:
		if def.Expr == "" {
			return fmt.Errorf("%w: %s: empty expr", ErrInvalidTree, path)
		}
	case KindFire, KindFireFixed:
		if _, ok := bullets[def.Bullet]; !ok {
			return fmt.Errorf("%w: %s: unknown bullet %q", ErrInvalidTree, path, def.Bullet)
		}
		if def.Cooldown < 0 {
			return fmt.Errorf("%w: %s: negative cooldown", ErrInvalidTree, path)
		}
		if def.Kind == KindFireFixed && (def.Direction == nil || (def.Direction.X == 0 && def.Direction.Y == 0)) {
			return fmt.Errorf("%w: %s: fire_fixed needs a non-zero direction", ErrInvalidTree, path)
		}
	}
	return nil
}

func containsKind(kinds []NodeKind, k NodeKind) bool {
	for _, kind := range kinds {
		if kind == k {
			return true
		}
	}
	return false
}
