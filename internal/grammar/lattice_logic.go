package grammar

import (
	"github.com/hydro-project/katara/internal/ir"
	"github.com/hydro-project/katara/internal/lattice"
)

// LatticeComponent pairs one lattice component of a replicated state
// structure with its current value and a grammar-built candidate update,
// for ExpandLatticeLogic to fold into a final per-component Choose.
type LatticeComponent struct {
	Lattice   lattice.Lattice
	Current   ir.Expr
	Candidate ir.Expr
}

// ExpandLatticeLogic builds, for each lattice component, the final
// state-transition Choose tree: the straightforward merge of current
// state against the grammar-built candidate, the self-merge (no-op)
// alternative, and — for Map-structured components — a "concurrent
// value" alternative that rolls the map's values up through the value
// lattice's own merge (SPEC_FULL.md §C.5, ported from
// auto_grammar.py's expand_lattice_logic). Every state-transition
// grammar alternative is therefore monotone by construction: each
// candidate is itself built from L.merge, never an arbitrary rewrite of
// the state.
func ExpandLatticeLogic(components []LatticeComponent) []ir.Expr {
	out := make([]ir.Expr, len(components))
	for i, c := range components {
		alts := []ir.Expr{
			c.Lattice.Merge(c.Current, c.Candidate),
			c.Lattice.Merge(c.Current, c.Current),
		}
		if m, ok := c.Lattice.(lattice.Map); ok {
			alts = append(alts, concurrentValueReduction(m, c.Current))
		}
		out[i] = ir.Choose(dedupExprs(alts)...)
	}
	return out
}

// concurrentValueReduction folds a Map lattice's current value through
// its own value-lattice merge, yielding "the join of every replica's
// concurrently-visible value at this key" — the shape add_wins_set /
// general_counter's supported-command grammar relies on.
func concurrentValueReduction(m lattice.Map, current ir.Expr) ir.Expr {
	valArg := ir.Var("reduce_v", m.Value.IRType())
	accArg := ir.Var("reduce_acc", m.Value.IRType())
	values := ir.Call("map-values", ir.ListT(m.Value.IRType()), current)
	lambda := ir.Lambda(m.Value.IRType(), m.Value.Merge(accArg, valArg), valArg, accArg)
	return ir.Call("reduce_value", m.Value.IRType(), values, lambda, m.Value.Bottom())
}

// EnumArgConditions returns Eq(a, EnumLit(1)) for every EnumInt-typed
// argument in args — the discriminator tests synthesize_crdt.py's
// grammar()/grammarSupportedCommand() build from an operation's args
// before folding a candidate through them (SPEC_FULL.md §C.6).
func EnumArgConditions(args []ir.Expr) []ir.Expr {
	var out []ir.Expr
	for _, a := range args {
		if a.Type().Kind() == ir.KindEnumInt {
			out = append(out, ir.Eq(a, ir.EnumLit(1)))
		}
	}
	return out
}

// FoldConditions wraps out in Ite(c, out, out) once per condition,
// ported verbatim from synthesize_crdt.py's fold_conditions. out is the
// same subtree placed at both the then- and else-branch of each Ite, so
// a backend resolving Choose holes by tree position — not object
// identity — can specialize each occurrence independently: this is what
// lets a state-transition candidate depend on an operation's EnumInt
// discriminator (e.g. g_set's insert vs. delete) even though out itself
// was built without ever seeing that discriminator as a type-directed
// grammar input.
func FoldConditions(out ir.Expr, conditions []ir.Expr) ir.Expr {
	for _, c := range conditions {
		out = ir.Ite(c, out, out)
	}
	return out
}

func dedupExprs(in []ir.Expr) []ir.Expr {
	seen := map[string]bool{}
	out := make([]ir.Expr, 0, len(in))
	for _, e := range in {
		k := e.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, e)
	}
	return out
}

// AllNodeIDGets recursively drills into Map/Tuple-typed values reachable
// from input, building every map-get(..., nodeID, default) expression
// whose key position is node-id-typed — the "non-associative-data
// injection" the benchmark grammar layer uses so the state-transition
// candidate can see "my own prior value" even when the lattice structure
// buries it several Tuple/Map levels deep (ported from auto_grammar.py's
// all_node_id_gets).
func AllNodeIDGets(input ir.Expr, nodeID ir.Expr) []ir.Expr {
	var out []ir.Expr
	var walk func(e ir.Expr)
	walk = func(e ir.Expr) {
		switch e.Type().Kind() {
		case ir.KindMap:
			if e.Type().MapKey().Kind() == ir.KindNodeIDInt {
				out = append(out, ir.Call("map-get", e.Type().MapValue(), e, nodeID,
					defaultForNodeIDGet(e.Type().MapValue())))
			}
		case ir.KindTuple:
			for i := range e.Type().TupleElems() {
				walk(ir.TupleGet(e, i))
			}
		}
	}
	walk(input)
	return out
}

func defaultForNodeIDGet(t ir.Type) ir.Expr {
	switch t.Kind() {
	case ir.KindBool:
		return ir.BoolLit(false)
	case ir.KindMap:
		return ir.Call("map-create", t)
	default:
		return ir.Lit(int64(0), t)
	}
}
