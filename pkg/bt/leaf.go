// pkg/bt/leaf.go
package bt

// Behavior is user-defined leaf logic. It owns whatever progress state it
// needs and must clear it on Reset.
type Behavior[M, C any] interface {
	Resume(model *M, ctrl *C, gas *int, mark Marker) State
	Reset(model *M)
}

// BehaviorFunc adapts a stateless function into a Behavior.
type BehaviorFunc[M, C any] func(model *M, ctrl *C, gas *int, mark Marker) State

func (f BehaviorFunc[M, C]) Resume(model *M, ctrl *C, gas *int, mark Marker) State {
	return f(model, ctrl, gas, mark)
}

func (f BehaviorFunc[M, C]) Reset(*M) {}

// Leaf is the node variant that hosts a Behavior.
type Leaf[M, C any] struct {
	name     string
	behavior Behavior[M, C]
}

// NewLeaf wraps behavior. An empty name gets a generated one.
func NewLeaf[M, C any](name string, behavior Behavior[M, C]) *Leaf[M, C] {
	return &Leaf[M, C]{
		name:     nameOr(name, "leaf"),
		behavior: behavior,
	}
}

func (l *Leaf[M, C]) ResumeWith(model *M, ctrl *C, gas *int, audit *Audit) State {
	audit.Enter(l.name)
	state := l.behavior.Resume(model, ctrl, gas, Marker{audit: audit, name: l.name})
	audit.Exit(l.name, state)
	return state
}

func (l *Leaf[M, C]) Reset(model *M) {
	l.behavior.Reset(model)
}

func (l *Leaf[M, C]) Name() string { return l.name }
func (l *Leaf[M, C]) Kind() Kind   { return KindLeaf }
func (l *Leaf[M, C]) sealed()      {}

// Behavior returns the hosted logic.
func (l *Leaf[M, C]) Behavior() Behavior[M, C] { return l.behavior }
