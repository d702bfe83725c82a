// pkg/bt/inverter.go
package bt

// Inverter swaps Complete and Failed of its child. Waiting and NeedsGas pass
// through unchanged.
type Inverter[M, C any] struct {
	name  string
	child Node[M, C]
}

// NewInverter wraps child. An empty name gets a generated one.
func NewInverter[M, C any](name string, child Node[M, C]) *Inverter[M, C] {
	return &Inverter[M, C]{
		name:  nameOr(name, "inverter"),
		child: child,
	}
}

func (n *Inverter[M, C]) ResumeWith(model *M, ctrl *C, gas *int, audit *Audit) State {
	audit.Enter(n.name)
	state := n.child.ResumeWith(model, ctrl, gas, audit)
	switch state {
	case Complete:
		state = Failed
	case Failed:
		state = Complete
	}
	audit.Exit(n.name, state)
	return state
}

func (n *Inverter[M, C]) Reset(model *M) {
	n.child.Reset(model)
}

func (n *Inverter[M, C]) Name() string { return n.name }
func (n *Inverter[M, C]) Kind() Kind   { return KindInverter }
func (n *Inverter[M, C]) sealed()      {}

// Child returns the wrapped node.
func (n *Inverter[M, C]) Child() Node[M, C] { return n.child }
