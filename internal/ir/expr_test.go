package ir_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/hydro-project/katara/internal/ir"
)

// exprComparer lets cmp.Diff walk Expr trees using the algebra's own
// structural equality instead of panicking on Expr's unexported fields.
var exprComparer = cmp.Comparer(func(a, b ir.Expr) bool { return a.Equal(b) })

var typeComparer = cmp.Comparer(func(a, b ir.Type) bool { return a.Equal(b) })

func TestRewriteSubstitutesFreeVariables(t *testing.T) {
	x := ir.Var("x", ir.Int())
	expr := ir.Add(x, ir.IntLit(1))

	got := expr.Rewrite(map[string]ir.Expr{"x": ir.IntLit(41)})

	require.True(t, got.Equal(ir.Add(ir.IntLit(41), ir.IntLit(1))))
}

func TestRewriteIsCaptureAvoidingUnderLet(t *testing.T) {
	x := ir.Var("x", ir.Int())
	// let x = 1 in x + y  --  substituting x should not touch the bound x.
	body := ir.Let(x, ir.IntLit(1), ir.Add(x, ir.Var("y", ir.Int())))

	got := body.Rewrite(map[string]ir.Expr{"x": ir.IntLit(99), "y": ir.IntLit(2)})

	want := ir.Let(x, ir.IntLit(1), ir.Add(x, ir.IntLit(2)))
	if diff := cmp.Diff(want, got, exprComparer); diff != "" {
		t.Fatalf("Rewrite result mismatch (-want +got):\n%s", diff)
	}
}

func TestRewriteIsIdempotentOnGroundTerms(t *testing.T) {
	ground := ir.And(ir.BoolLit(true), ir.Not(ir.BoolLit(false)))
	once := ground.Rewrite(map[string]ir.Expr{"anything": ir.IntLit(1)})
	twice := once.Rewrite(map[string]ir.Expr{"anything": ir.IntLit(1)})
	require.True(t, once.Equal(twice))
	require.True(t, once.Equal(ground))
}

func TestChooseRequiresAtLeastOneAlternative(t *testing.T) {
	require.Panics(t, func() {
		ir.Choose()
	})
}

func TestChooseDedupByStructuralEquality(t *testing.T) {
	a := ir.IntLit(1)
	b := ir.IntLit(1)
	require.True(t, a.Equal(b))
	require.Equal(t, a.Key(), b.Key())
}

func TestTupleGetType(t *testing.T) {
	tup := ir.Tuple(ir.IntLit(1), ir.BoolLit(true))
	get1 := ir.TupleGet(tup, 1)
	require.True(t, get1.Type().Equal(ir.Bool()))
}

func TestEraseCollapsesIntFlavours(t *testing.T) {
	structured := ir.TupleT(ir.ClockInt(), ir.SetT(ir.OpaqueInt()), ir.NodeIDInt())
	erased := structured.Erase()
	want := ir.TupleT(ir.Int(), ir.SetT(ir.Int()), ir.Int())
	if diff := cmp.Diff(want, erased, typeComparer); diff != "" {
		t.Fatalf("Erase result mismatch (-want +got):\n%s", diff)
	}
}
