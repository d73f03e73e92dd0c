package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hydro-project/katara/internal/grammar"
	"github.com/hydro-project/katara/internal/ir"
)

func TestEnumArgConditionsOnlyPicksEnumIntArgs(t *testing.T) {
	action := ir.Var("action", ir.EnumInt())
	value := ir.Var("value", ir.Int())

	got := grammar.EnumArgConditions([]ir.Expr{action, value})
	require.Len(t, got, 1)
	require.Equal(t, ir.EEq, got[0].Kind())
	require.True(t, got[0].Args()[0].Equal(action))
	require.True(t, got[0].Args()[1].Equal(ir.EnumLit(1)))
}

func TestFoldConditionsNestsOneItePerConditionSharingTheSameSubtree(t *testing.T) {
	candidate := ir.Var("candidate", ir.Int())
	c1 := ir.Eq(ir.Var("a", ir.EnumInt()), ir.EnumLit(1))
	c2 := ir.Eq(ir.Var("b", ir.EnumInt()), ir.EnumLit(1))

	got := grammar.FoldConditions(candidate, []ir.Expr{c1, c2})

	require.Equal(t, ir.EIte, got.Kind())
	require.True(t, got.Args()[0].Equal(c2), "outermost Ite folds the last condition")
	inner := got.Args()[1]
	require.True(t, inner.Equal(got.Args()[2]), "both branches of the outer Ite must be identical")
	require.Equal(t, ir.EIte, inner.Kind())
	require.True(t, inner.Args()[0].Equal(c1))
	require.True(t, inner.Args()[1].Equal(candidate))
	require.True(t, inner.Args()[2].Equal(candidate))
}

func TestFoldConditionsWithNoConditionsIsIdentity(t *testing.T) {
	candidate := ir.Var("candidate", ir.Int())
	got := grammar.FoldConditions(candidate, nil)
	require.True(t, got.Equal(candidate))
}
