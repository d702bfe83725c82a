// pkg/bt/state.go
package bt

// State is the outcome of resuming a node for one tick.
type State int

const (
	// Complete finishes the node for this tick; a parent composite advances.
	Complete State = iota
	// Failed finishes the node for this tick; a parent composite reacts to it.
	Failed
	// Waiting keeps the node's place; call again next tick.
	Waiting
	// NeedsGas means the step budget ran out; resume at the same point later.
	NeedsGas
)

func (s State) String() string {
	switch s {
	case Complete:
		return "Complete"
	case Failed:
		return "Failed"
	case Waiting:
		return "Waiting"
	case NeedsGas:
		return "NeedsGas"
	default:
		return "State(?)"
	}
}

// IsTerminal reports whether s ends the node's work for this tick.
func (s State) IsTerminal() bool {
	return s == Complete || s == Failed
}
