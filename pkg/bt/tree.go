// pkg/bt/tree.go
package bt

import (
	"fmt"
	"strings"
)

// Tree is the per-agent owner of a root node. A tree is never shared
// between agents.
type Tree[M, C any] struct {
	root  Node[M, C]
	last  State
	ticks uint64
}

func NewTree[M, C any](root Node[M, C]) *Tree[M, C] {
	return &Tree[M, C]{root: root, last: Complete}
}

// Tick resumes the root once.
func (t *Tree[M, C]) Tick(model *M, ctrl *C, gas *int, audit *Audit) State {
	t.last = t.root.ResumeWith(model, ctrl, gas, audit)
	t.ticks++
	return t.last
}

// Reset discards all in-flight progress. It is the only cancellation
// primitive and takes effect immediately.
func (t *Tree[M, C]) Reset(model *M) {
	t.root.Reset(model)
	t.last = Complete
}

func (t *Tree[M, C]) Root() Node[M, C] { return t.root }

// LastState is the result of the most recent Tick (Complete before any).
func (t *Tree[M, C]) LastState() State { return t.last }

// Ticks counts Tick calls since construction.
func (t *Tree[M, C]) Ticks() uint64 { return t.ticks }

// Walk visits node and its descendants depth first.
func Walk[M, C any](node Node[M, C], visit func(n Node[M, C], depth int)) {
	walk(node, 0, visit)
}

func walk[M, C any](node Node[M, C], depth int, visit func(Node[M, C], int)) {
	visit(node, depth)
	switch n := node.(type) {
	case *Sequence[M, C]:
		for _, child := range n.children {
			walk(child, depth+1, visit)
		}
	case *Selector[M, C]:
		for _, child := range n.children {
			walk(child, depth+1, visit)
		}
	case *Inverter[M, C]:
		walk(n.child, depth+1, visit)
	case *Leaf[M, C]:
	}
}

// Describe renders the tree shape, one node per line.
func Describe[M, C any](node Node[M, C]) string {
	var b strings.Builder
	Walk(node, func(n Node[M, C], depth int) {
		fmt.Fprintf(&b, "%s%s %s\n", strings.Repeat("  ", depth), n.Kind(), n.Name())
	})
	return b.String()
}
