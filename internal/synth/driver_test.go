package synth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hydro-project/katara/internal/config"
	"github.com/hydro-project/katara/internal/ir"
	"github.com/hydro-project/katara/internal/kerrors"
	"github.com/hydro-project/katara/internal/lattice"
	"github.com/hydro-project/katara/internal/reference"
)

// resolveChoose rebuilds e with every Choose descendant replaced by its
// first alternative, preserving every other node shape exactly. Only the
// node kinds the grammar/lattice packages actually emit into a Synth body
// (the arithmetic/logic primitives, Let, Tuple/TupleGet, Call) need a
// reconstruction case; every other kind is returned unchanged.
func resolveChoose(e ir.Expr) ir.Expr {
	switch e.Kind() {
	case ir.EChoose:
		return resolveChoose(e.Args()[0])
	case ir.EVar, ir.ELit:
		return e
	case ir.ELet:
		args := e.Args()
		value := resolveChoose(args[1])
		body := resolveChoose(*e.Body())
		return ir.Let(args[0], value, body)
	default:
		if len(e.Args()) == 0 {
			return e
		}
		kids := make([]ir.Expr, len(e.Args()))
		for i, k := range e.Args() {
			kids[i] = resolveChoose(k)
		}
		return rebuildWithArgs(e, kids)
	}
}

// rebuildWithArgs is the only place that needs to know each node kind's
// constructor shape; every other helper in this file stays kind-agnostic.
func rebuildWithArgs(e ir.Expr, kids []ir.Expr) ir.Expr {
	switch e.Kind() {
	case ir.EAnd:
		return ir.And(kids...)
	case ir.EOr:
		return ir.Or(kids...)
	case ir.ENot:
		return ir.Not(kids[0])
	case ir.EEq:
		return ir.Eq(kids[0], kids[1])
	case ir.EGt:
		return ir.Gt(kids[0], kids[1])
	case ir.EGe:
		return ir.Ge(kids[0], kids[1])
	case ir.EAdd:
		return ir.Add(kids[0], kids[1])
	case ir.ESub:
		return ir.Sub(kids[0], kids[1])
	case ir.EIte:
		return ir.Ite(kids[0], kids[1], kids[2])
	case ir.ETuple:
		return ir.Tuple(kids...)
	case ir.ETupleGet:
		return ir.TupleGet(kids[0], e.Index())
	case ir.ECall:
		return ir.Call(e.Name(), e.Type(), kids...)
	default:
		return e
	}
}

// fakeBackend resolves every hole by picking the first grammar alternative
// throughout its body, regardless of whether the result is actually valid
// — it exists to exercise the driver's control flow and body-rewriting,
// not to stand in for a real solver.
type fakeBackend struct {
	onSynthesize func(req Request) (BackendResult, error)
}

func (f *fakeBackend) Synthesize(req Request) (BackendResult, error) {
	if f.onSynthesize != nil {
		return f.onSynthesize(req)
	}
	out := map[string]ir.Expr{}
	for _, hole := range req.Holes {
		body := resolveChoose(*hole.Body())
		out[hole.Name()] = ir.FnDecl(hole.Name(), hole.Type().Ret(), body, hole.Args()...)
	}
	return BackendResult{FnDecls: out}, nil
}

func counterSpec() *Spec {
	s := ir.Var("s", ir.Int())
	amount := ir.Var("amount", ir.Int())
	nextState := reference.NewExprRoutine("next_state", ir.Int(), ir.Add(s, amount), s, amount)
	response := reference.NewExprRoutine("response", ir.Int(), s, s)
	initState := reference.NewExprRoutine("init_state", ir.Int(), ir.IntLit(0))

	return &Spec{
		InitState:      initState,
		NextState:      nextState,
		Response:       response,
		InOrder:        func(a, b []ir.Expr) ir.Expr { return ir.BoolLit(true) },
		OpPrecondition: func(a []ir.Expr) ir.Expr { return ir.BoolLit(true) },
	}
}

func TestDriverSynthesizeNarrowsStateAcrossPhases(t *testing.T) {
	spec := counterSpec()
	structure := lattice.Structure{lattice.NewMaxInt(ir.Int())}
	cfg := config.Default()
	cfg.BaseDepth = 1

	driver := NewDriver(&fakeBackend{})
	result, err := driver.Synthesize(cfg, spec, structure, DefaultGrammars())
	require.NoError(t, err)
	require.Equal(t, 1, result.Attempts)

	nextState, ok := result.FnDecls["next_state"]
	require.True(t, ok)
	paramType := nextState.Args()[0].Type()
	require.Equal(t, ir.KindTuple, paramType.Kind())
	require.Equal(t, 1, len(paramType.TupleElems()), "trailing op-log must be stripped after the bounded phase")

	initState, ok := result.FnDecls["init_state"]
	require.True(t, ok)
	require.Equal(t, 1, len(initState.Type().Ret().TupleElems()))
}

func TestDriverWidensListBoundOnSynthesisFailure(t *testing.T) {
	spec := counterSpec()
	structure := lattice.Structure{lattice.NewMaxInt(ir.Int())}
	cfg := config.Default()
	cfg.BaseDepth = 1
	cfg.ListBound = 1

	calls := 0
	backend := &fakeBackend{
		onSynthesize: func(req Request) (BackendResult, error) {
			calls++
			if calls == 1 {
				return BackendResult{}, kerrors.NewSynthesisFailedError(req.ListBound, "no candidate fit the grammar")
			}
			out := map[string]ir.Expr{}
			for _, hole := range req.Holes {
				body := resolveChoose(*hole.Body())
				out[hole.Name()] = ir.FnDecl(hole.Name(), hole.Type().Ret(), body, hole.Args()...)
			}
			return BackendResult{FnDecls: out}, nil
		},
	}

	driver := NewDriver(backend)
	result, err := driver.Synthesize(cfg, spec, structure, DefaultGrammars())
	require.NoError(t, err)
	require.Equal(t, cfg.ListBound+1, result.ListBound)
}
