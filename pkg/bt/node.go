// pkg/bt/node.go
package bt

import (
	"strconv"
	"sync/atomic"
)

// Kind enumerates the node variants. The set is closed: composites are
// defined here, domain logic plugs in through Leaf.
type Kind int

const (
	KindSequence Kind = iota
	KindSelector
	KindInverter
	KindLeaf
)

func (k Kind) String() string {
	switch k {
	case KindSequence:
		return "sequence"
	case KindSelector:
		return "selector"
	case KindInverter:
		return "inverter"
	case KindLeaf:
		return "leaf"
	default:
		return "kind(?)"
	}
}

// Node is one vertex of a behavior tree over a world view M and an intent C.
//
// ResumeWith is called at most once per agent per tick. The model is a
// read-only snapshot that must not be retained past the call; ctrl is the
// only output channel. gas is an optional step budget (nil means unbounded)
// and audit an optional trace sink (nil costs nothing).
type Node[M, C any] interface {
	ResumeWith(model *M, ctrl *C, gas *int, audit *Audit) State
	Reset(model *M)
	Name() string
	Kind() Kind

	sealed()
}

var nodeSeq atomic.Uint64

// generatedName returns a process-unique node name such as "selector-12".
func generatedName(prefix string) string {
	return prefix + "-" + strconv.FormatUint(nodeSeq.Add(1), 10)
}

func nameOr(name, prefix string) string {
	if name != "" {
		return name
	}
	return generatedName(prefix)
}
