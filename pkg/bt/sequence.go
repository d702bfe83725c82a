// pkg/bt/sequence.go
package bt

// Sequence runs its children in order until one does not complete. The
// position of a Waiting or NeedsGas child is remembered across ticks.
type Sequence[M, C any] struct {
	name     string
	children []Node[M, C]
	running  int
}

// NewSequence builds a sequence. An empty name gets a generated one.
func NewSequence[M, C any](name string, children ...Node[M, C]) *Sequence[M, C] {
	return &Sequence[M, C]{
		name:     nameOr(name, "sequence"),
		children: children,
		running:  -1,
	}
}

func (s *Sequence[M, C]) ResumeWith(model *M, ctrl *C, gas *int, audit *Audit) State {
	audit.Enter(s.name)
	i := 0
	if s.running >= 0 {
		i = s.running
	}
	for ; i < len(s.children); i++ {
		switch state := s.children[i].ResumeWith(model, ctrl, gas, audit); state {
		case Complete:
			continue
		case Failed:
			s.running = -1
			audit.Exit(s.name, Failed)
			return Failed
		default:
			s.running = i
			audit.Exit(s.name, state)
			return state
		}
	}
	s.running = -1
	audit.Exit(s.name, Complete)
	return Complete
}

// Reset forgets the remembered child and resets every child.
func (s *Sequence[M, C]) Reset(model *M) {
	s.running = -1
	for _, child := range s.children {
		child.Reset(model)
	}
}

func (s *Sequence[M, C]) Name() string { return s.name }
func (s *Sequence[M, C]) Kind() Kind   { return KindSequence }
func (s *Sequence[M, C]) sealed()      {}

// Children returns the child nodes in order. Callers must not modify it.
func (s *Sequence[M, C]) Children() []Node[M, C] { return s.children }

// Running returns the remembered child index, if any.
func (s *Sequence[M, C]) Running() (int, bool) {
	return s.running, s.running >= 0
}
