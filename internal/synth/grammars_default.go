package synth

import (
	"github.com/hydro-project/katara/internal/grammar"
	"github.com/hydro-project/katara/internal/ir"
	"github.com/hydro-project/katara/internal/lattice"
)

// DefaultGrammars builds the canonical grammar callbacks every benchmark in
// pkg/katara shares (_examples/original_source/katara/synthesize_crdt.py
// defines one grammarEquivalence/grammarStateInvariant/... per run, not per
// benchmark — only init_state/next_state/response/inOrder/opPrecondition
// vary across benchmarks).
func DefaultGrammars() Grammars {
	return Grammars{
		InitState:        defaultInitState,
		StateTransition:  defaultStateTransition,
		Query:            defaultQuery,
		Equivalence:      defaultEquivalence,
		StateInvariant:   defaultStateInvariant,
		SupportedCommand: defaultSupportedCommand,
	}
}

func defaultInitState(structure lattice.Structure) ir.Expr {
	elems := make([]ir.Expr, len(structure))
	for i, l := range structure {
		elems[i] = l.Bottom()
	}
	return ir.Tuple(elems...)
}

// defaultStateTransition builds, per lattice component, a candidate
// expression via AutoGrammar over the operation arguments (plus any
// node-id-keyed projections reachable from s), folds each candidate
// through the operation's EnumInt discriminator conditions (spec.md §8
// scenario 2's "insert unions, delete is identity", ported from
// synthesize_crdt.py's grammar()/fold_conditions — the discriminator
// conditions let the backend pick a different Choose resolution per
// branch of the folded Ite, not a single synthesis-time-fixed merge
// choice), then folds the result through ExpandLatticeLogic.
func defaultStateTransition(s ir.Expr, opArgs []ir.Expr, structure lattice.Structure, depth int) (ir.Expr, error) {
	seeds := append([]ir.Expr(nil), opArgs...)
	if nodeID, ok := findNodeIDArg(opArgs); ok {
		seeds = append(seeds, grammar.AllNodeIDGets(s, nodeID)...)
	}
	conditions := grammar.EnumArgConditions(opArgs)

	components := make([]grammar.LatticeComponent, len(structure))
	for i, l := range structure {
		candidate, err := grammar.AutoGrammar(l.IRType(), depth, seeds, grammar.Options{})
		if err != nil {
			return ir.Expr{}, err
		}
		components[i] = grammar.LatticeComponent{
			Lattice:   l,
			Current:   ir.TupleGet(s, i),
			Candidate: grammar.FoldConditions(candidate, conditions),
		}
	}
	return ir.Tuple(grammar.ExpandLatticeLogic(components)...), nil
}

func defaultQuery(s ir.Expr, queryArgs []ir.Expr, retType ir.Type, depth int) (ir.Expr, error) {
	args := append([]ir.Expr{s}, queryArgs...)
	return grammar.QueryGrammar(args, retType, depth)
}

func defaultEquivalence(seq, syn ir.Expr, queryParams []ir.Expr, depth int) (ir.Expr, error) {
	args := append([]ir.Expr{seq, syn}, queryParams...)
	return grammar.AutoGrammar(ir.Bool(), depth, args, grammar.Options{EnableITE: true, AllowNodeIDReductions: true})
}

func defaultStateInvariant(s ir.Expr, structure lattice.Structure, depth, boost int) (ir.Expr, error) {
	structural := make([]ir.Expr, len(structure))
	for i, l := range structure {
		structural[i] = l.CheckIsValid(ir.TupleGet(s, i))
	}
	grammarInvariant, err := grammar.AutoGrammar(ir.Bool(), depth+boost, []ir.Expr{s},
		grammar.Options{EnableITE: true, AllowNodeIDReductions: true})
	if err != nil {
		return ir.Expr{}, err
	}
	return ir.And(append(structural, grammarInvariant)...), nil
}

func defaultSupportedCommand(s ir.Expr, opArgs []ir.Expr, depth, boost int) (ir.Expr, error) {
	args := append([]ir.Expr{s}, opArgs...)
	return grammar.AutoGrammar(ir.Bool(), depth+boost, args, grammar.Options{EnableITE: true, AllowNodeIDReductions: true})
}

func findNodeIDArg(args []ir.Expr) (ir.Expr, bool) {
	for _, a := range args {
		if a.Type().Kind() == ir.KindNodeIDInt {
			return a, true
		}
	}
	return ir.Expr{}, false
}
