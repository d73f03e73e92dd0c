package katara

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hydro-project/katara/internal/aci"
	"github.com/hydro-project/katara/internal/config"
	"github.com/hydro-project/katara/internal/ir"
	"github.com/hydro-project/katara/internal/synth"
)

func TestCatalogueHasNineBenchmarksEachWithAFixedStructure(t *testing.T) {
	cat := Catalogue()
	require.Len(t, cat, 9)

	names := map[string]bool{}
	for _, b := range cat {
		names[b.Name] = true
		require.NotEmpty(t, b.FixedStructure, "%s: missing fixed lattice structure", b.Name)
		require.NotNil(t, b.Spec.InitState)
		require.NotNil(t, b.Spec.NextState)
		require.NotNil(t, b.Spec.Response)
	}
	for _, want := range []string{
		"flag_dw", "flag_ew", "lww_register", "g_set", "2p_set",
		"add_wins_set", "remove_wins_set", "grow_only_counter", "general_counter",
	} {
		require.True(t, names[want], "catalogue missing %s", want)
	}
}

func TestGrowOnlyCounterAndGeneralCounterAreNonIdempotentWithNodeIDStructures(t *testing.T) {
	for _, name := range []string{"grow_only_counter", "general_counter"} {
		b := findBenchmark(t, name)
		require.True(t, b.Spec.NonIdempotent, "%s must be marked non-idempotent", name)
		require.True(t, b.FixedStructure.HasNodeID(), "%s's fixed structure must carry a node id", name)
	}
}

func findBenchmark(t *testing.T, name string) Benchmark {
	t.Helper()
	for _, b := range Catalogue() {
		if b.Name == name {
			return b
		}
	}
	t.Fatalf("no benchmark named %s", name)
	return Benchmark{}
}

// fakeBackend resolves every grammar hole by taking its first grammar
// alternative, exercising SynthesizeFixed's driver wiring without a real
// solver (same pattern as internal/synth's driver_test.go fakeBackend).
type fakeBackend struct{}

func (fakeBackend) Synthesize(req synth.Request) (synth.BackendResult, error) {
	out := map[string]ir.Expr{}
	for _, hole := range req.Holes {
		body := resolveChoose(*hole.Body())
		out[hole.Name()] = ir.FnDecl(hole.Name(), hole.Type().Ret(), body, hole.Args()...)
	}
	return synth.BackendResult{FnDecls: out}, nil
}

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

func TestSynthesizeFixedNarrowsLWWRegisterAcrossPhases(t *testing.T) {
	b := findBenchmark(t, "lww_register")
	cfg := config.Default()
	cfg.BaseDepth = 1

	result, err := SynthesizeFixed(b, fakeBackend{}, cfg)
	require.NoError(t, err)

	nextState, ok := result.FnDecls["next_state"]
	require.True(t, ok)
	paramType := nextState.Args()[0].Type()
	require.Equal(t, ir.KindTuple, paramType.Kind())
	require.Equal(t, 1, len(paramType.TupleElems()), "bounded phase's op-log must be stripped")
}

// TestACIPositiveGSetInsertIsIdempotent and the grow-only-counter negative
// case below exercise the catalogue's reference routines against
// aci.Checker directly, independent of the synthesis driver, as one ACI
// positive and one ACI negative scenario.
func TestACIPositiveGSetInsertIsIdempotent(t *testing.T) {
	_, next, _ := sequential1(false)
	checker := aci.NewChecker("cvc5")
	checker.ScratchDir = t.TempDir()
	checker.Run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte("unsat\n"), nil
	}

	verdict, err := checker.CheckIdempotence(context.Background(), next)
	require.NoError(t, err)
	require.True(t, verdict.Holds)
}

func TestACINegativeCounterIsNotIdempotent(t *testing.T) {
	_, next, _ := sequential2()
	checker := aci.NewChecker("cvc5")
	checker.ScratchDir = t.TempDir()
	checker.Run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte("sat\n" +
			"(define-fun initial_state () Int 0)\n" +
			"(define-fun op_action () Int 1)\n" +
			"(define-fun op_node () Int 0)\n"), nil
	}

	verdict, err := checker.CheckIdempotence(context.Background(), next)
	require.NoError(t, err)
	require.False(t, verdict.Holds, "incrementing twice must not equal incrementing once")
}
