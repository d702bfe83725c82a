// pkg/bt/selector.go
package bt

// Selector tries its children in order until one does not fail. The position
// of a Waiting or NeedsGas child is remembered across ticks.
type Selector[M, C any] struct {
	name     string
	children []Node[M, C]
	running  int
}

// NewSelector builds a selector. An empty name gets a generated one.
func NewSelector[M, C any](name string, children ...Node[M, C]) *Selector[M, C] {
	return &Selector[M, C]{
		name:     nameOr(name, "selector"),
		children: children,
		running:  -1,
	}
}

func (s *Selector[M, C]) ResumeWith(model *M, ctrl *C, gas *int, audit *Audit) State {
	audit.Enter(s.name)
	i := 0
	if s.running >= 0 {
		i = s.running
	}
	for ; i < len(s.children); i++ {
		switch state := s.children[i].ResumeWith(model, ctrl, gas, audit); state {
		case Failed:
			continue
		case Complete:
			s.running = -1
			audit.Exit(s.name, Complete)
			return Complete
		default:
			s.running = i
			audit.Exit(s.name, state)
			return state
		}
	}
	s.running = -1
	audit.Exit(s.name, Failed)
	return Failed
}

// Reset forgets the remembered child and resets every child.
func (s *Selector[M, C]) Reset(model *M) {
	s.running = -1
	for _, child := range s.children {
		child.Reset(model)
	}
}

func (s *Selector[M, C]) Name() string { return s.name }
func (s *Selector[M, C]) Kind() Kind   { return KindSelector }
func (s *Selector[M, C]) sealed()      {}

// Children returns the child nodes in order. Callers must not modify it.
func (s *Selector[M, C]) Children() []Node[M, C] { return s.children }

// Running returns the remembered child index, if any.
func (s *Selector[M, C]) Running() (int, bool) {
	return s.running, s.running >= 0
}
