package synth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hydro-project/katara/internal/ir"
	"github.com/hydro-project/katara/internal/lattice"
)

// TestDefaultStateTransitionGatesOnEnumArgDiscriminator pins spec.md §8
// scenario 2's "insert unions, delete is identity" shape down at the
// grammar level: an operation carrying an EnumInt discriminator (action)
// must produce a state-transition candidate whose per-component body is
// folded through Eq(action, EnumLit(1)), not a single condition-blind
// merge choice.
func TestDefaultStateTransitionGatesOnEnumArgDiscriminator(t *testing.T) {
	structure := lattice.Structure{lattice.NewSet(ir.OpaqueInt())}
	s := ir.Var("s", structure.IRType())
	action := ir.Var("action", ir.EnumInt())
	elem := ir.Var("elem", ir.OpaqueInt())

	got, err := defaultStateTransition(s, []ir.Expr{action, elem}, structure, 1)
	require.NoError(t, err)
	require.Equal(t, ir.ETuple, got.Kind())

	component := got.Args()[0]
	require.Equal(t, ir.EChoose, component.Kind(), "ExpandLatticeLogic still wraps every alternative in a Choose")

	foundFoldedAlternative := false
	for _, alt := range component.Args() {
		if containsEnumArgCondition(alt, action) {
			foundFoldedAlternative = true
			break
		}
	}
	require.True(t, foundFoldedAlternative,
		"no state-transition alternative depends on the EnumInt discriminator: insert/delete cannot be distinguished")
}

func containsEnumArgCondition(e ir.Expr, action ir.Expr) bool {
	if e.Kind() == ir.EIte {
		cond := e.Args()[0]
		if cond.Kind() == ir.EEq && cond.Args()[0].Equal(action) && cond.Args()[1].Equal(ir.EnumLit(1)) {
			return true
		}
	}
	for _, k := range e.Args() {
		if containsEnumArgCondition(k, action) {
			return true
		}
	}
	if e.Body() != nil && containsEnumArgCondition(*e.Body(), action) {
		return true
	}
	return false
}
