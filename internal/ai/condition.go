// internal/ai/condition.go
package ai

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"ten-second-towers/pkg/bt"
)

// Condition completes when a boolean expression over the world view holds.
// Field names of the view are the expression variables, for example
// "len(NeighborTowers) > 0 && Health < MaxHealth".
type Condition[M, C any] struct {
	source  string
	program *vm.Program
}

// CompileCondition type-checks source against M.
func CompileCondition[M, C any](source string) (*Condition[M, C], error) {
	program, err := compileProgram[M](source)
	if err != nil {
		return nil, err
	}
	return &Condition[M, C]{source: source, program: program}, nil
}

func compileProgram[M any](source string) (*vm.Program, error) {
	var env M
	program, err := expr.Compile(source, expr.Env(env), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("failed to compile condition %q: %w", source, err)
	}
	return program, nil
}

func (c *Condition[M, C]) Source() string { return c.source }

func (c *Condition[M, C]) Resume(model *M, _ *C, _ *int, mark bt.Marker) bt.State {
	out, err := expr.Run(c.program, *model)
	if err != nil {
		if mark.Enabled() {
			mark.Mark("error: " + err.Error())
		}
		return bt.Failed
	}
	if ok, _ := out.(bool); ok {
		return bt.Complete
	}
	return bt.Failed
}

func (c *Condition[M, C]) Reset(*M) {}
