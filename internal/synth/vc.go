package synth

import (
	"fmt"

	"github.com/hydro-project/katara/internal/ir"
	"github.com/hydro-project/katara/internal/lattice"
	"github.com/hydro-project/katara/internal/reference"
)

func implies(a, b ir.Expr) ir.Expr { return ir.Or(ir.Not(a), b) }

func typesOf(args []ir.Expr) []ir.Type {
	out := make([]ir.Type, len(args))
	for i, a := range args {
		out[i] = a.Type()
	}
	return out
}

func freshVars(tracker *reference.Tracker, prefix string, types []ir.Type) []ir.Expr {
	g := tracker.Group(prefix)
	out := make([]ir.Expr, len(types))
	for i, t := range types {
		out[i] = g.Variable(fmt.Sprintf("%d", i), t)
	}
	return out
}

// compiledHoles are the five grammar-built Synth nodes for one synthesis
// attempt, each keyed by its own name (the name a Backend's Result.FnDecls
// map and every VC-level Call reference it by).
type compiledHoles struct {
	initState        ir.Expr
	nextState        ir.Expr
	response         ir.Expr
	equivalence      ir.Expr
	stateInvariant   ir.Expr // zero value when withLog (bounded phase uses the op-log instead)
	supportedCommand ir.Expr // zero value when withLog
	all              []ir.Expr
}

// compileHoles builds the five Synth nodes over fresh formal parameters.
// withLog selects the bounded-phase signature (state carries a trailing
// List<Op>) versus the unbounded-phase signature (state is exactly
// structure's core tuple type, log dropped) — spec.md §4.4's "op-log vs
// supported-command dual encoding".
func compileHoles(spec *Spec, structure lattice.Structure, grammars Grammars, withLog bool, baseDepth, boost int) (*compiledHoles, error) {
	k := len(structure)
	coreType := structure.IRType()
	opT := opType(spec.NextState)
	stateType := coreType
	if withLog {
		stateType = ir.TupleT(append(append([]ir.Type{}, coreType.TupleElems()...), ir.ListT(opT))...)
	}

	formalS := ir.Var("state", stateType)
	opArgTypes := typesOf(spec.NextState.Arguments()[1:])
	formalOpArgs := make([]ir.Expr, len(opArgTypes))
	for i, t := range opArgTypes {
		formalOpArgs[i] = ir.Var(fmt.Sprintf("op_arg_%d", i), t)
	}
	queryParamTypes := typesOf(spec.Response.Arguments()[1:])
	formalQueryParams := make([]ir.Expr, len(queryParamTypes))
	for i, t := range queryParamTypes {
		formalQueryParams[i] = ir.Var(fmt.Sprintf("query_arg_%d", i), t)
	}
	formalSeq := ir.Var("seq_state", spec.NextState.Arguments()[0].Type())

	candidate, err := grammars.StateTransition(formalS, formalOpArgs, structure, baseDepth)
	if err != nil {
		return nil, fmt.Errorf("synth: building state-transition grammar: %w", err)
	}
	nextBody := candidate
	if withLog {
		comps := append([]ir.Expr{}, candidate.Args()...)
		comps = append(comps, listPrepend(logOf(formalS, k), packOp(formalOpArgs)))
		nextBody = ir.Tuple(comps...)
	}
	nextState := ir.Synth("next_state", stateType, nextBody, append([]ir.Expr{formalS}, formalOpArgs...)...)

	queryBody, err := grammars.Query(formalS, formalQueryParams, spec.Response.ReturnType(), baseDepth)
	if err != nil {
		return nil, fmt.Errorf("synth: building query grammar: %w", err)
	}
	response := ir.Synth("response", spec.Response.ReturnType(), queryBody, append([]ir.Expr{formalS}, formalQueryParams...)...)

	equivBody, err := grammars.Equivalence(formalSeq, formalS, formalQueryParams, baseDepth)
	if err != nil {
		return nil, fmt.Errorf("synth: building equivalence grammar: %w", err)
	}
	equivalence := ir.Synth("equivalence", ir.Bool(), equivBody, append([]ir.Expr{formalSeq, formalS}, formalQueryParams...)...)

	initBody := grammars.InitState(structure)
	if withLog {
		comps := append([]ir.Expr{}, initBody.Args()...)
		comps = append(comps, listEmpty(opT))
		initBody = ir.Tuple(comps...)
	}
	initState := ir.Synth("init_state", stateType, initBody)

	holes := &compiledHoles{
		initState:   initState,
		nextState:   nextState,
		response:    response,
		equivalence: equivalence,
		all:         []ir.Expr{initState, nextState, response, equivalence},
	}

	if !withLog {
		siBody, err := grammars.StateInvariant(formalS, structure, baseDepth, boost)
		if err != nil {
			return nil, fmt.Errorf("synth: building state-invariant grammar: %w", err)
		}
		holes.stateInvariant = ir.Synth("state_invariant", ir.Bool(), siBody, formalS)

		scBody, err := grammars.SupportedCommand(formalS, formalOpArgs, baseDepth, boost)
		if err != nil {
			return nil, fmt.Errorf("synth: building supported-command grammar: %w", err)
		}
		holes.supportedCommand = ir.Synth("supported_command", ir.Bool(), scBody, append([]ir.Expr{formalS}, formalOpArgs...)...)
		holes.all = append(holes.all, holes.stateInvariant, holes.supportedCommand)
	}

	return holes, nil
}

// buildBoundedVC builds the op-log-encoded obligation: a replicated state
// carries its own operation history, and "this operation may be applied
// next" is discharged by checking the history (extended with the
// candidate operation) stays causally ordered — no inductive invariant is
// needed yet because the log witnesses the entire reachable past
// directly (spec.md §4.4's state-transition and init-state obligations).
func buildBoundedVC(spec *Spec, structure lattice.Structure, holes *compiledHoles, opsInOrderName string) (vc ir.Expr, vars []ir.Expr) {
	k := len(structure)
	stateType := holes.nextState.Type().Params()[0]

	tracker := reference.NewTracker()
	sigma := tracker.Variable("sigma", spec.NextState.Arguments()[0].Type())
	s := tracker.Variable("s", stateType)
	qp := freshVars(tracker, "qp", typesOf(spec.Response.Arguments()[1:]))
	op1 := freshVars(tracker, "op1", typesOf(spec.NextState.Arguments()[1:]))

	equivNow := ir.Call("equivalence", ir.Bool(), append([]ir.Expr{sigma, s}, qp...)...)
	sPrime := ir.Call("next_state", stateType, append([]ir.Expr{s}, op1...)...)
	suppOp1 := opListInvariant(sPrime, k, opsInOrderName)
	precond1 := spec.OpPrecondition(op1)

	responseObligation := spec.Response.Call(append([]ir.Expr{sigma}, qp...)...)(tracker, func(respSeq ir.Expr) ir.Expr {
		respSyn := ir.Call("response", spec.Response.ReturnType(), append([]ir.Expr{s}, qp...)...)
		return implies(equivNow, ir.Eq(respSeq, respSyn))
	})

	transitionObligation := spec.NextState.Call(append([]ir.Expr{sigma}, op1...)...)(tracker, func(sigmaPrime ir.Expr) ir.Expr {
		return implies(ir.And(equivNow, precond1, suppOp1),
			ir.Call("equivalence", ir.Bool(), append([]ir.Expr{sigmaPrime, sPrime}, qp...)...))
	})

	initObligation := spec.InitState.Call()(tracker, func(sigmaInit ir.Expr) ir.Expr {
		return ir.Call("equivalence", ir.Bool(), append([]ir.Expr{sigmaInit, ir.Call("init_state", stateType)}, qp...)...)
	})

	vc = ir.And(responseObligation, transitionObligation, initObligation)
	vars = append([]ir.Expr{sigma, s}, append(append([]ir.Expr{}, qp...), op1...)...)
	return vc, vars
}

// buildUnboundedVC replaces the op-log check with the synthesized
// state_invariant/supported_command pair: the same equivalence/response
// obligations, now guarded by state_invariant(s) instead of a concrete
// history, plus the inductive step and base case that make the invariant
// sound for arbitrarily long (unbounded) operation histories.
func buildUnboundedVC(spec *Spec, structure lattice.Structure, holes *compiledHoles) (vc ir.Expr, vars []ir.Expr) {
	stateType := holes.nextState.Type().Params()[0]

	tracker := reference.NewTracker()
	sigma := tracker.Variable("sigma", spec.NextState.Arguments()[0].Type())
	s := tracker.Variable("s", stateType)
	qp := freshVars(tracker, "qp", typesOf(spec.Response.Arguments()[1:]))
	op1 := freshVars(tracker, "op1", typesOf(spec.NextState.Arguments()[1:]))

	invNow := ir.Call("state_invariant", ir.Bool(), s)
	equivNow := ir.Call("equivalence", ir.Bool(), append([]ir.Expr{sigma, s}, qp...)...)
	sPrime := ir.Call("next_state", stateType, append([]ir.Expr{s}, op1...)...)
	suppOp1 := ir.Call("supported_command", ir.Bool(), append([]ir.Expr{s}, op1...)...)
	precond1 := spec.OpPrecondition(op1)

	responseObligation := spec.Response.Call(append([]ir.Expr{sigma}, qp...)...)(tracker, func(respSeq ir.Expr) ir.Expr {
		respSyn := ir.Call("response", spec.Response.ReturnType(), append([]ir.Expr{s}, qp...)...)
		return implies(ir.And(invNow, equivNow), ir.Eq(respSeq, respSyn))
	})

	transitionObligation := spec.NextState.Call(append([]ir.Expr{sigma}, op1...)...)(tracker, func(sigmaPrime ir.Expr) ir.Expr {
		return implies(ir.And(invNow, equivNow, precond1, suppOp1),
			ir.Call("equivalence", ir.Bool(), append([]ir.Expr{sigmaPrime, sPrime}, qp...)...))
	})

	inductiveStep := implies(ir.And(invNow, precond1, suppOp1), ir.Call("state_invariant", ir.Bool(), sPrime))

	initObligation := spec.InitState.Call()(tracker, func(sigmaInit ir.Expr) ir.Expr {
		initS := ir.Call("init_state", stateType)
		return ir.And(
			ir.Call("state_invariant", ir.Bool(), initS),
			ir.Call("equivalence", ir.Bool(), append([]ir.Expr{sigmaInit, initS}, qp...)...))
	})

	vc = ir.And(responseObligation, transitionObligation, inductiveStep, initObligation)
	vars = append([]ir.Expr{sigma, s}, append(append([]ir.Expr{}, qp...), op1...)...)
	return vc, vars
}
