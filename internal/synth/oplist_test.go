package synth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hydro-project/katara/internal/ir"
	"github.com/hydro-project/katara/internal/smtlib"
)

func TestOpsInOrderEmptyLogTriviallyHolds(t *testing.T) {
	opT := ir.Int()
	inOrder := func(a, b []ir.Expr) ir.Expr { return ir.Ge(b[0], a[0]) }
	precond := func(a []ir.Expr) ir.Expr { return ir.BoolLit(true) }

	helper := opsInOrderHelperFn("ops_in_order_helper", opT, inOrder, precond)
	wrapper := opsInOrderFn("ops_in_order", "ops_in_order_helper", opT)

	require.Equal(t, ir.EFnDecl, helper.Kind())
	require.Equal(t, ir.EFnDecl, wrapper.Kind())

	log := ir.Var("log", ir.ListT(opT))
	require.True(t, wrapper.Body().Args()[1].Equal(ir.BoolLit(true)), "empty-log branch must be true")
	script := smtlib.Serialize([]ir.Expr{log}, *wrapper.Body())
	require.True(t, strings.Contains(script, "list-length"))
	require.True(t, strings.Contains(script, "declare-const log"))
}

func TestApplyStateTransitionsRecursesOnTail(t *testing.T) {
	coreType := ir.Int()
	opT := ir.Int()
	fn := applyStateTransitionsFn("apply_state_transitions", "next_state", coreType, opT)
	require.Equal(t, ir.EFnDecl, fn.Kind())
	require.Equal(t, 1, len(fn.Args()))
	require.Equal(t, ir.ListT(opT).Key(), fn.Args()[0].Type().Key())
}
