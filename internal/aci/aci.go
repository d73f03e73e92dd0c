// Package aci implements the independent commutativity/idempotence
// checker spec.md §4.6 and §6 describe: given a reference next_state
// routine, it builds the commutativity and idempotence obligations as
// quantifier-free formulas, serializes them to SMT-LIB, and dispatches
// to an external solver. Ported from
// _examples/original_source/katara/aci.py.
package aci

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/hydro-project/katara/internal/ir"
	"github.com/hydro-project/katara/internal/reference"
	"github.com/hydro-project/katara/internal/smtlib"
)

// Checker runs ACI obligations against an external SMT-LIB 2 solver.
type Checker struct {
	// SolverPath is the solver executable (spec.md §6: invoked with
	// "--lang=smt --produce-models --tlimit=<TimeLimit>").
	SolverPath string
	// ScratchDir is where the .smt scratch files are written; each
	// worker in a concurrent run must use a distinct directory (spec.md
	// §5's scratch-file discipline) since aci's own filenames are fixed.
	ScratchDir string
	// TimeLimit is the solver's --tlimit value, in milliseconds.
	TimeLimit int
	// Run executes the solver; overridable in tests.
	Run func(ctx context.Context, name string, args ...string) ([]byte, error)
}

func NewChecker(solverPath string) *Checker {
	return &Checker{
		SolverPath: solverPath,
		ScratchDir: "./synthesisLogs",
		TimeLimit:  100000,
		Run:        runSubprocess,
	}
}

func runSubprocess(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	err := cmd.Run()
	return out.Bytes(), err
}

// Verdict is the outcome of one ACI obligation. Per spec.md §7, "unknown"
// (solver timeout) is treated as Refuted: Katara never claims a property
// holds on a solver timeout.
type Verdict struct {
	Holds          bool
	RawStatus      string
	Counterexample map[string]string
}

func implies(a, b ir.Expr) ir.Expr { return ir.Or(ir.Not(a), b) }

// CheckCommutativity proves or refutes N(N(s,op1),op2) = N(N(s,op2),op1)
// for the given next_state routine.
func (c *Checker) CheckCommutativity(ctx context.Context, routine reference.Routine) (*Verdict, error) {
	tracker := reference.NewTracker()
	args := routine.Arguments()
	stateType := args[0].Type()
	opArgs := args[1:]

	initial := tracker.Variable("initial_state", stateType)
	op1 := groupVars(tracker, "op1", opArgs)
	op2 := groupVars(tracker, "op2", opArgs)

	after0op1 := tracker.Variable("afterState_0_op1", stateType)
	after0op2 := tracker.Variable("afterState_0_op2", stateType)
	after1op2 := tracker.Variable("afterState_1_op2", stateType)
	after1op1 := tracker.Variable("afterState_1_op1", stateType)

	call := func(state ir.Expr, ops []ir.Expr) reference.Continuation {
		return routine.Call(append([]ir.Expr{state}, ops...)...)
	}

	vc := call(initial, op1)(tracker, func(obj0AfterOp1 ir.Expr) ir.Expr {
		return implies(ir.Eq(obj0AfterOp1, after0op1),
			call(obj0AfterOp1, op2)(tracker, func(obj0AfterOp2 ir.Expr) ir.Expr {
				return implies(ir.Eq(obj0AfterOp2, after0op2),
					call(initial, op2)(tracker, func(obj1AfterOp2 ir.Expr) ir.Expr {
						return implies(ir.Eq(obj1AfterOp2, after1op2),
							call(obj1AfterOp2, op1)(tracker, func(obj1AfterOp1 ir.Expr) ir.Expr {
								return implies(ir.Eq(obj1AfterOp1, after1op1),
									ir.Eq(after0op2, after1op1))
							}))
					}))
			}))
	})

	watch := append([]ir.Expr{initial}, append(append(append([]ir.Expr{}, op1...), op2...),
		after0op1, after0op2, after1op2, after1op1)...)

	return c.evaluate(ctx, "aci-test", tracker, vc, watch)
}

// CheckIdempotence proves or refutes N(N(s,op),op) = N(s,op).
func (c *Checker) CheckIdempotence(ctx context.Context, routine reference.Routine) (*Verdict, error) {
	tracker := reference.NewTracker()
	args := routine.Arguments()
	stateType := args[0].Type()
	opArgs := args[1:]

	initial := tracker.Variable("initial_state", stateType)
	op := groupVars(tracker, "op", opArgs)

	afterOp := tracker.Variable("afterState_op", stateType)
	afterOpOp := tracker.Variable("afterState_op_op", stateType)

	call := func(state ir.Expr) reference.Continuation {
		return routine.Call(append([]ir.Expr{state}, op...)...)
	}

	vc := call(initial)(tracker, func(obj0AfterOp ir.Expr) ir.Expr {
		return implies(ir.Eq(obj0AfterOp, afterOp),
			call(obj0AfterOp)(tracker, func(obj0AfterOpOp ir.Expr) ir.Expr {
				return implies(ir.Eq(obj0AfterOpOp, afterOpOp), ir.Eq(obj0AfterOp, obj0AfterOpOp))
			}))
	})

	watch := append([]ir.Expr{initial}, append(append([]ir.Expr{}, op...), afterOp, afterOpOp)...)

	return c.evaluate(ctx, "aci-test", tracker, vc, watch)
}

func groupVars(tracker *reference.Tracker, prefix string, formal []ir.Expr) []ir.Expr {
	g := tracker.Group(prefix)
	out := make([]ir.Expr, len(formal))
	for i, a := range formal {
		out[i] = g.Variable(a.Name(), a.Type())
	}
	return out
}

func (c *Checker) evaluate(ctx context.Context, basename string, tracker *reference.Tracker, vc ir.Expr, watch []ir.Expr) (*Verdict, error) {
	if err := os.MkdirAll(c.ScratchDir, 0o755); err != nil {
		return nil, fmt.Errorf("aci: creating scratch dir: %w", err)
	}
	script := smtlib.Serialize(tracker.All(), vc)
	path := filepath.Join(c.ScratchDir, basename+".smt")
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		return nil, fmt.Errorf("aci: writing %s: %w", path, err)
	}

	out, err := c.Run(ctx, c.SolverPath, "--lang=smt", "--produce-models",
		fmt.Sprintf("--tlimit=%d", c.TimeLimit), path)
	if err != nil {
		return nil, fmt.Errorf("aci: running solver: %w", err)
	}

	lines := splitLines(string(out))
	if len(lines) == 0 {
		return nil, fmt.Errorf("aci: empty solver output")
	}

	status := lines[0]
	if status == "unsat" {
		return &Verdict{Holds: true, RawStatus: status}, nil
	}
	// "sat" or "unknown": treated as refutation, never claimed proven.
	return &Verdict{
		Holds:          false,
		RawStatus:      status,
		Counterexample: parseModel(lines, watch),
	}, nil
}
