package katara

import "github.com/hydro-project/katara/internal/ir"

// clockAugmentedOrder wraps a benchmark's raw causal-order predicate with
// a clock comparison whenever the operation's last argument is
// ClockInt-typed: clocks that are strictly ordered settle ≺ outright;
// concurrent clocks (equal) fall through to raw; clocks out of order
// never satisfy ≺. Ported verbatim from synthesize_crdt.py's
// clock_augmented_order closure (SPEC_FULL.md §C.3).
func clockAugmentedOrder(raw func(op1, op2 []ir.Expr) ir.Expr, hasClock bool) func(op1, op2 []ir.Expr) ir.Expr {
	if !hasClock {
		return raw
	}
	return func(op1, op2 []ir.Expr) ir.Expr {
		c1, c2 := op1[len(op1)-1], op2[len(op2)-1]
		return ir.Ite(
			ir.Gt(c2, c1), // c1 < c2: clocks in order
			ir.BoolLit(true),
			ir.Ite(
				ir.Eq(c1, c2), // clocks concurrent
				raw(op1, op2),
				ir.BoolLit(false), // clocks out of order
			),
		)
	}
}
