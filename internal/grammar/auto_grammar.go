package grammar

import (
	"github.com/hydro-project/katara/internal/ir"
	"github.com/hydro-project/katara/internal/kerrors"
)

// Options configures a single AutoGrammar call: whether to add the
// Ite(cond,x,x) widening pass (spec.md §4.2), and whether node-id
// rollup reductions are permitted (only ever true for query/state
// grammars, never for the state-transition grammar itself).
type Options struct {
	EnableITE             bool
	AllowNodeIDReductions bool
}

// BuildPool runs depth iterations of expansion over the seed inputs and
// returns the resulting pool, without selecting any particular output
// type. This is the "out_type is None" branch of auto_grammar's
// contract: callers needing several related output types (the synthesis
// driver building state-transition grammars per lattice component) use
// this directly rather than re-running expansion once per type.
func BuildPool(depth int, inputs []ir.Expr, opts Options) *Pool {
	pool := NewPool()
	for _, in := range inputs {
		addRecursive(pool, in)
	}
	for i := 0; i < depth; i++ {
		extendPool(pool, opts)
	}
	if opts.EnableITE {
		addIteCandidates(pool)
	}
	return pool
}

// AutoGrammar returns an expression of outType whose leaf set reaches
// every seed input and whose internal nodes come from the fixed
// type-directed expansion table (spec.md §4.2). A Tuple outType recurses
// per component. outType is registered in the pool before expansion, so
// its own expansion rules run even when no seed input has that type.
// Returns a GrammarHoleError when the pool ends up with
// no candidate of outType at all — callers (typically the synthesis
// driver's dry-run gate) treat that as non-fatal and skip the candidate.
func AutoGrammar(outType ir.Type, depth int, inputs []ir.Expr, opts Options) (ir.Expr, error) {
	if outType.Kind() == ir.KindTuple {
		elems := make([]ir.Expr, len(outType.TupleElems()))
		for i, et := range outType.TupleElems() {
			e, err := AutoGrammar(et, depth, inputs, opts)
			if err != nil {
				return ir.Expr{}, err
			}
			elems[i] = e
		}
		return ir.Tuple(elems...), nil
	}

	pool := NewPool()
	pool.RegisterType(outType)
	for _, in := range inputs {
		addRecursive(pool, in)
	}
	for i := 0; i < depth; i++ {
		extendPool(pool, opts)
	}
	if opts.EnableITE {
		addIteCandidates(pool)
	}
	expr, ok := pool.Choose(outType)
	if !ok {
		return ir.Expr{}, kerrors.NewGrammarHoleError(outType.String())
	}
	return expr, nil
}

// extendPool performs one expansion iteration: every rule reads a
// snapshot of the current pool and proposes candidates, which are only
// added once the full pass finishes — matching "extending each type's
// pool with the results of all applicable expansions on the previous
// pool" (spec.md §4.2), so a single iteration never lets a brand-new
// Bool feed a brand-new Int within the same depth step.
func extendPool(pool *Pool, opts Options) {
	typesSnapshot := append([]ir.Type(nil), pool.Types()...)

	var fresh []ir.Expr
	for _, t := range typesSnapshot {
		switch t.Kind() {
		case ir.KindBool:
			fresh = append(fresh, candidatesForBool(pool)...)
		case ir.KindInt:
			fresh = append(fresh, candidatesForInt(pool)...)
		case ir.KindEnumInt:
			fresh = append(fresh, candidatesForEnumInt(pool)...)
		case ir.KindClockInt:
			fresh = append(fresh, candidatesForClockInt(pool)...)
		case ir.KindSet:
			fresh = append(fresh, candidatesForSet(t, pool)...)
		case ir.KindMap:
			fresh = append(fresh, candidatesForMap(t, pool)...)
		}
		fresh = append(fresh, candidatesForMapGet(t, pool)...)
		if opts.AllowNodeIDReductions {
			fresh = append(fresh, candidatesForNodeIDReductions(t, pool)...)
		}
	}

	for _, e := range fresh {
		pool.Add(e)
	}
}

// addIteCandidates implements "when enable_ite and Bool ∈ pool, also add
// Ite(cond, pool[t], pool[t]) for every non-set, non-map type t in the
// pool" (spec.md §4.2): the *same* aggregate Choose-of-everything node
// for t, not each individual leaf, goes into both branches. Placing one
// shared node at two distinct tree positions is what lets a backend
// resolving Choose holes by tree position specialize the then- and
// else-branch independently, which is the entire point of the widening
// pass — Ite(cond, x, x) over one fixed leaf x is a no-op.
func addIteCandidates(pool *Pool) {
	cond, ok := pool.Choose(ir.Bool())
	if !ok {
		return
	}
	for _, t := range append([]ir.Type(nil), pool.Types()...) {
		if t.Kind() == ir.KindSet || t.Kind() == ir.KindMap {
			continue
		}
		cand, ok := pool.Choose(t)
		if !ok {
			continue
		}
		pool.Add(ir.Ite(cond, cand, cand))
	}
}
