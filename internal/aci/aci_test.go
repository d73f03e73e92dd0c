package aci_test

import (
	"context"
	"testing"

	"github.com/kylelemons/godebug/pretty"
	"github.com/stretchr/testify/require"

	"github.com/hydro-project/katara/internal/aci"
	"github.com/hydro-project/katara/internal/ir"
	"github.com/hydro-project/katara/internal/reference"
)

// counterRoutine models next_state(s, amount) = s + amount over Int. The
// solver is stubbed in every test below, so the routine only supplies
// the VC shape and argument names; each stubbed reply ("unsat", "sat"
// plus a model, or "unknown") selects the verdict path under test.
func counterRoutine() reference.Routine {
	s := ir.Var("s", ir.Int())
	amount := ir.Var("amount", ir.Int())
	body := ir.Add(s, amount)
	return reference.NewExprRoutine("next_state", ir.Int(), body, s, amount)
}

func TestCheckCommutativityUnsatMeansProven(t *testing.T) {
	checker := aci.NewChecker("cvc5")
	checker.ScratchDir = t.TempDir()
	checker.Run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte("unsat\n"), nil
	}

	verdict, err := checker.CheckCommutativity(context.Background(), counterRoutine())
	require.NoError(t, err)
	require.True(t, verdict.Holds)
}

func TestCheckCommutativitySatMeansRefutedWithCounterexample(t *testing.T) {
	checker := aci.NewChecker("cvc5")
	checker.ScratchDir = t.TempDir()
	checker.Run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte("sat\n" +
			"(define-fun initial_state () Int 0)\n" +
			"(define-fun op1_amount () Int 1)\n" +
			"(define-fun op2_amount () Int 2)\n"), nil
	}

	verdict, err := checker.CheckCommutativity(context.Background(), counterRoutine())
	require.NoError(t, err)
	require.False(t, verdict.Holds)

	want := map[string]string{
		"initial_state": "0",
		"op1_amount":    "1",
		"op2_amount":    "2",
	}
	if diff := pretty.Compare(want, verdict.Counterexample); diff != "" {
		t.Fatalf("counterexample mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckIdempotenceUnknownIsTreatedAsRefuted(t *testing.T) {
	checker := aci.NewChecker("cvc5")
	checker.ScratchDir = t.TempDir()
	checker.Run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte("unknown\n"), nil
	}

	verdict, err := checker.CheckIdempotence(context.Background(), counterRoutine())
	require.NoError(t, err)
	require.False(t, verdict.Holds, "unknown must never be reported as proven")
}
