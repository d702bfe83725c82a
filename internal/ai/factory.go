// internal/ai/factory.go
package ai

import (
	"fmt"

	"github.com/expr-lang/expr/vm"

	"ten-second-towers/internal/defs"
	"ten-second-towers/internal/utils"
	"ten-second-towers/pkg/bt"
)

// leafBuilder turns a leaf definition into fresh behavior state.
type leafBuilder[M, C any] func(def defs.TreeDef) (bt.Behavior[M, C], error)

// Factory compiles declarative trees into live ones. Every call returns a
// new tree owned by the caller; compiled condition programs are shared.
type Factory struct {
	lib   *defs.Library
	progs map[string]*vm.Program
}

func NewFactory(lib *defs.Library) *Factory {
	return &Factory{lib: lib, progs: make(map[string]*vm.Program)}
}

func (f *Factory) Library() *defs.Library { return f.lib }

// EnemyTree builds the tree for one enemy of the given type.
func (f *Factory) EnemyTree(enemyID string) (*EnemyTree, error) {
	def, ok := f.lib.Enemies[enemyID]
	if !ok {
		return nil, fmt.Errorf("unknown enemy %q", enemyID)
	}
	root, err := compile(def.Tree, f.enemyLeaves())
	if err != nil {
		return nil, fmt.Errorf("enemy %q: %w", enemyID, err)
	}
	return bt.NewTree(root), nil
}

// TowerTree builds the tree for one tower of the given type.
func (f *Factory) TowerTree(towerID string) (*TowerTree, error) {
	def, ok := f.lib.Towers[towerID]
	if !ok {
		return nil, fmt.Errorf("unknown tower %q", towerID)
	}
	root, err := compile(def.Tree, f.towerLeaves())
	if err != nil {
		return nil, fmt.Errorf("tower %q: %w", towerID, err)
	}
	return bt.NewTree(root), nil
}

// Check compiles every tree of the library once so expression errors show
// up at load time rather than at spawn.
func (f *Factory) Check() error {
	for id := range f.lib.Enemies {
		if _, err := f.EnemyTree(id); err != nil {
			return err
		}
	}
	for id := range f.lib.Towers {
		if _, err := f.TowerTree(id); err != nil {
			return err
		}
	}
	return nil
}

func (f *Factory) enemyLeaves() map[defs.NodeKind]leafBuilder[EnemyView, EnemyIntent] {
	return map[defs.NodeKind]leafBuilder[EnemyView, EnemyIntent]{
		defs.KindPathfind:    stateless[EnemyView, EnemyIntent](PathfindNode{}),
		defs.KindAttackTower: stateless[EnemyView, EnemyIntent](AttackTowerNode{}),
		defs.KindExplode:     stateless[EnemyView, EnemyIntent](ExplodeNode{}),
		defs.KindIdle:        stateless[EnemyView, EnemyIntent](Idle[EnemyView, EnemyIntent]{}),
		defs.KindCondition:   conditionBuilder[EnemyView, EnemyIntent](f),
	}
}

func (f *Factory) towerLeaves() map[defs.NodeKind]leafBuilder[TowerView, TowerIntent] {
	return map[defs.NodeKind]leafBuilder[TowerView, TowerIntent]{
		defs.KindFire: func(def defs.TreeDef) (bt.Behavior[TowerView, TowerIntent], error) {
			bullet, err := f.bullet(def)
			if err != nil {
				return nil, err
			}
			return NewFireBulletNode(bullet, def.Cooldown), nil
		},
		defs.KindFireFixed: func(def defs.TreeDef) (bt.Behavior[TowerView, TowerIntent], error) {
			bullet, err := f.bullet(def)
			if err != nil {
				return nil, err
			}
			if def.Direction == nil {
				return nil, fmt.Errorf("%w: fire_fixed without direction", defs.ErrInvalidTree)
			}
			return NewFireFixedNode(bullet, def.Cooldown, utils.Vec2{X: def.Direction.X, Y: def.Direction.Y}), nil
		},
		defs.KindAssist: func(defs.TreeDef) (bt.Behavior[TowerView, TowerIntent], error) {
			return &AssistNode{}, nil
		},
		defs.KindIdle:      stateless[TowerView, TowerIntent](Idle[TowerView, TowerIntent]{}),
		defs.KindCondition: conditionBuilder[TowerView, TowerIntent](f),
	}
}

func (f *Factory) bullet(def defs.TreeDef) (defs.BulletDefinition, error) {
	b, ok := f.lib.Bullets[def.Bullet]
	if !ok {
		return defs.BulletDefinition{}, fmt.Errorf("%w: unknown bullet %q", defs.ErrInvalidTree, def.Bullet)
	}
	return b, nil
}

func stateless[M, C any](b bt.Behavior[M, C]) leafBuilder[M, C] {
	return func(defs.TreeDef) (bt.Behavior[M, C], error) { return b, nil }
}

func conditionBuilder[M, C any](f *Factory) leafBuilder[M, C] {
	return func(def defs.TreeDef) (bt.Behavior[M, C], error) {
		var zero M
		key := fmt.Sprintf("%T:%s", zero, def.Expr)
		if program, ok := f.progs[key]; ok {
			return &Condition[M, C]{source: def.Expr, program: program}, nil
		}
		program, err := compileProgram[M](def.Expr)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", defs.ErrInvalidTree, err)
		}
		f.progs[key] = program
		return &Condition[M, C]{source: def.Expr, program: program}, nil
	}
}

func compile[M, C any](def defs.TreeDef, leaves map[defs.NodeKind]leafBuilder[M, C]) (bt.Node[M, C], error) {
	switch def.Kind {
	case defs.KindSequence, defs.KindSelector:
		if len(def.Children) == 0 {
			return nil, fmt.Errorf("%w: %s without children", defs.ErrInvalidTree, def.Kind)
		}
		children := make([]bt.Node[M, C], 0, len(def.Children))
		for _, c := range def.Children {
			child, err := compile(c, leaves)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		if def.Kind == defs.KindSequence {
			return bt.NewSequence(def.Name, children...), nil
		}
		return bt.NewSelector(def.Name, children...), nil

	case defs.KindInverter:
		if len(def.Children) != 1 {
			return nil, fmt.Errorf("%w: inverter needs exactly one child", defs.ErrInvalidTree)
		}
		child, err := compile(def.Children[0], leaves)
		if err != nil {
			return nil, err
		}
		return bt.NewInverter(def.Name, child), nil
	}

	build, ok := leaves[def.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", defs.ErrUnknownLeaf, def.Kind)
	}
	behavior, err := build(def)
	if err != nil {
		return nil, err
	}
	name := def.Name
	if name == "" {
		name = string(def.Kind)
	}
	return bt.NewLeaf(name, behavior), nil
}
