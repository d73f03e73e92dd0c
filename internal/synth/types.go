// Package synth implements synthesize_crdt, the synthesis driver
// spec.md §4.4 specifies: it builds the verification condition relating
// a sequential reference design to a candidate replicated design over a
// lattice structure, dispatches to a Backend, and drives the
// bounded-verification / unbounded-invariant refinement loop.
package synth

import (
	"github.com/hydro-project/katara/internal/ir"
	"github.com/hydro-project/katara/internal/lattice"
	"github.com/hydro-project/katara/internal/reference"
)

// Spec bundles the sequential reference design and the user-supplied
// order/precondition predicates synthesize_crdt needs, independent of
// any particular candidate lattice structure.
type Spec struct {
	InitState reference.Routine
	NextState reference.Routine // arguments: state, op...
	Response  reference.Routine // arguments: state, query...

	// InOrder is the causal-order predicate ≺(op1, op2) over unpacked
	// operation argument lists.
	InOrder func(op1, op2 []ir.Expr) ir.Expr
	// OpPrecondition is pre(op) over an unpacked operation argument list.
	OpPrecondition func(op []ir.Expr) ir.Expr
	// NonIdempotent marks reference routines whose next_state is not
	// idempotent (spec.md §3, §8 scenario 4): informs structure search's
	// node-id filter, not the driver itself.
	NonIdempotent bool
}

// Grammars are the five user-supplied callbacks spec.md §4.4 names, each
// producing an expression typed against the candidate state type.
// DefaultGrammars builds the canonical implementation every benchmark in
// pkg/katara uses.
type Grammars struct {
	// InitState returns a literal expression of the core (log-free)
	// state type, built from structure's lattices' Bottom().
	InitState func(structure lattice.Structure) ir.Expr
	// StateTransition returns an expression of the core state type: a
	// per-component Li.merge(current, candidate) fold (spec.md §4.4),
	// reading the current per-component values out of s via TupleGet
	// regardless of whether s carries a trailing op-log.
	StateTransition func(s ir.Expr, opArgs []ir.Expr, structure lattice.Structure, depth int) (ir.Expr, error)
	// Query returns a Bool/EnumInt/etc. expression for the response
	// function's body.
	Query func(s ir.Expr, queryArgs []ir.Expr, retType ir.Type, depth int) (ir.Expr, error)
	// Equivalence returns a Bool expression relating sequential state to
	// replicated state.
	Equivalence func(seq, syn ir.Expr, queryParams []ir.Expr, depth int) (ir.Expr, error)
	// StateInvariant augments structural validity
	// (structure[i].CheckIsValid) with a grammar-built Bool expression,
	// used only in the unbounded (useOpList=false) phase.
	StateInvariant func(s ir.Expr, structure lattice.Structure, depth, boost int) (ir.Expr, error)
	// SupportedCommand returns a Bool expression asserting an operation
	// is valid in the current state, used only in the unbounded phase
	// (the op-log invariant replaces it during bounded verification).
	SupportedCommand func(s ir.Expr, opArgs []ir.Expr, depth, boost int) (ir.Expr, error)
}

// opType returns the Type used for one log entry: the single argument
// type if next_state takes exactly one operation argument, else a Tuple
// of all of them (spec.md §3's Op).
func opType(nextState reference.Routine) ir.Type {
	args := nextState.Arguments()[1:]
	if len(args) == 1 {
		return args[0].Type()
	}
	types := make([]ir.Type, len(args))
	for i, a := range args {
		types[i] = a.Type()
	}
	return ir.TupleT(types...)
}

func packOp(opArgs []ir.Expr) ir.Expr {
	if len(opArgs) == 1 {
		return opArgs[0]
	}
	return ir.Tuple(opArgs...)
}

func unpackOp(op ir.Expr) []ir.Expr {
	if op.Type().Kind() != ir.KindTuple {
		return []ir.Expr{op}
	}
	elems := op.Type().TupleElems()
	out := make([]ir.Expr, len(elems))
	for i := range elems {
		out[i] = ir.TupleGet(op, i)
	}
	return out
}

// coreOf projects the first k (lattice) components out of a state value
// that may or may not carry a trailing op-log.
func coreOf(s ir.Expr, k int) []ir.Expr {
	out := make([]ir.Expr, k)
	for i := 0; i < k; i++ {
		out[i] = ir.TupleGet(s, i)
	}
	return out
}

func logOf(s ir.Expr, k int) ir.Expr { return ir.TupleGet(s, k) }
