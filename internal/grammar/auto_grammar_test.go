package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hydro-project/katara/internal/grammar"
	"github.com/hydro-project/katara/internal/ir"
)

func TestAutoGrammarDepth0ReturnsExactlyTheInput(t *testing.T) {
	x := ir.Var("x", ir.Int())
	got, err := grammar.AutoGrammar(ir.Int(), 0, []ir.Expr{x}, grammar.Options{})
	require.NoError(t, err)

	// depth 0 runs no expansion iteration, so the result is a Choose
	// whose only alternative is the seed x.
	require.Contains(t, got.Args(), x)
}

func TestAutoGrammarMissingTypeIsGrammarHoleError(t *testing.T) {
	x := ir.Var("x", ir.Bool())
	_, err := grammar.AutoGrammar(ir.SetT(ir.OpaqueInt()), 1, []ir.Expr{x}, grammar.Options{})
	require.Error(t, err)
}

func TestAutoGrammarMonotonicityAcrossDepth(t *testing.T) {
	x := ir.Var("x", ir.Int())
	shallow, err := grammar.AutoGrammar(ir.Int(), 1, []ir.Expr{x}, grammar.Options{})
	require.NoError(t, err)

	deeper, err := grammar.AutoGrammar(ir.Int(), 2, []ir.Expr{x}, grammar.Options{})
	require.NoError(t, err)

	shallowKeys := map[string]bool{}
	for _, e := range shallow.Args() {
		shallowKeys[e.Key()] = true
	}
	deeperKeys := map[string]bool{}
	for _, e := range deeper.Args() {
		deeperKeys[e.Key()] = true
	}
	for k := range shallowKeys {
		require.True(t, deeperKeys[k], "depth-1 alternative %s missing at depth 2", k)
	}
}

func TestAutoGrammarTupleOutTypeRecursesPerComponent(t *testing.T) {
	x := ir.Var("x", ir.Int())
	y := ir.Var("y", ir.Bool())
	out := ir.TupleT(ir.Int(), ir.Bool())
	got, err := grammar.AutoGrammar(out, 1, []ir.Expr{x, y}, grammar.Options{})
	require.NoError(t, err)
	require.Equal(t, ir.ETuple, got.Kind())
	require.Len(t, got.Args(), 2)
}

func TestAutoGrammarSetExpansionUsesKnownElements(t *testing.T) {
	s := ir.Var("s", ir.SetT(ir.OpaqueInt()))
	e := ir.Var("e", ir.OpaqueInt())
	got, err := grammar.AutoGrammar(ir.SetT(ir.OpaqueInt()), 1, []ir.Expr{s, e}, grammar.Options{})
	require.NoError(t, err)
	require.NotEmpty(t, got.Args())
}

// TestEnableITESharesOneAggregateAcrossBothBranches pins addIteCandidates'
// actual contract: both branches of the added Ite must be the *same*
// aggregate Choose node holding every Int candidate the pool had before
// the widening pass, not two copies of a
// single leaf candidate. Ite(cond, x, x) over one fixed leaf x is always
// equal to x regardless of cond, so it would add nothing; the aggregate
// form is what lets a backend specialize each branch independently.
func TestEnableITESharesOneAggregateAcrossBothBranches(t *testing.T) {
	x := ir.Var("x", ir.Int())
	y := ir.Var("y", ir.Int())
	b := ir.Var("b", ir.Bool())
	pool := grammar.BuildPool(0, []ir.Expr{x, y, b}, grammar.Options{EnableITE: true})

	all, ok := pool.Choose(ir.Int())
	require.True(t, ok)
	var leaves []ir.Expr
	for _, e := range all.Args() {
		if e.Kind() != ir.EIte {
			leaves = append(leaves, e)
		}
	}
	aggregate := ir.Choose(leaves...)

	var ite ir.Expr
	found := false
	for _, e := range pool.All(ir.Int()) {
		if e.Kind() == ir.EIte {
			ite = e
			found = true
			break
		}
	}
	require.True(t, found, "expected an Ite(cond, pool[Int], pool[Int]) candidate")

	then, els := ite.Args()[1], ite.Args()[2]
	require.True(t, then.Equal(aggregate), "then-branch must be the full Int aggregate, not a single leaf")
	require.True(t, els.Equal(aggregate), "else-branch must be the full Int aggregate, not a single leaf")
}
