// Package grammar implements auto_grammar, the type-directed,
// depth-bounded candidate-expression builder spec.md §4.2 specifies.
// Ported from _examples/original_source/katara/auto_grammar.py.
package grammar

import "github.com/hydro-project/katara/internal/ir"

// Pool is the per-type working set auto_grammar builds up over depth
// iterations. Each bucket deduplicates its candidates by structural key
// as they are added, which is what keeps Choose alternatives finite
// across iterations (spec.md §4.1).
type Pool struct {
	byType map[string]*bucket
}

type bucket struct {
	typ   ir.Type
	exprs []ir.Expr
	seen  map[string]bool
}

func NewPool() *Pool {
	return &Pool{byType: map[string]*bucket{}}
}

func (p *Pool) bucketFor(t ir.Type) *bucket {
	key := t.Key()
	b, ok := p.byType[key]
	if !ok {
		b = &bucket{typ: t, seen: map[string]bool{}}
		p.byType[key] = b
	}
	return b
}

// RegisterType ensures t is tracked as a known (possibly still empty)
// output type, without adding any candidate expression. This is how
// Set/Map component types reachable from a tuple-typed input become
// eligible output types even before any seed expression of that exact
// type exists (spec.md §4.2: "recording set/map component types as
// known but empty").
func (p *Pool) RegisterType(t ir.Type) { p.bucketFor(t) }

// Add inserts e into its type's bucket, deduplicating by structural
// equality. Reports whether e was newly added.
func (p *Pool) Add(e ir.Expr) bool {
	b := p.bucketFor(e.Type())
	key := e.Key()
	if b.seen[key] {
		return false
	}
	b.seen[key] = true
	b.exprs = append(b.exprs, e)
	return true
}

// All returns every candidate expression currently known for t.
func (p *Pool) All(t ir.Type) []ir.Expr {
	b, ok := p.byType[t.Key()]
	if !ok {
		return nil
	}
	return b.exprs
}

// Types returns every type the pool currently tracks, including types
// registered with no candidates yet.
func (p *Pool) Types() []ir.Type {
	out := make([]ir.Type, 0, len(p.byType))
	for _, b := range p.byType {
		out = append(out, b.typ)
	}
	return out
}

// Choose wraps every candidate for t in a single non-deterministic
// grammar hole. Reports false if t has no candidates at all.
func (p *Pool) Choose(t ir.Type) (ir.Expr, bool) {
	exprs := p.All(t)
	if len(exprs) == 0 {
		return ir.Expr{}, false
	}
	return ir.Choose(exprs...), true
}

// addRecursive seeds the pool with e, and — when e is Tuple-typed —
// recursively with its positional projections (via TupleGet), matching
// auto_grammar's extract_inputs: an input tuple makes every one of its
// components (transitively) available to the expansion rules too.
func addRecursive(pool *Pool, e ir.Expr) {
	pool.Add(e)
	registerComponentTypes(pool, e.Type())
	if e.Type().Kind() == ir.KindTuple {
		for i := range e.Type().TupleElems() {
			addRecursive(pool, ir.TupleGet(e, i))
		}
	}
}

// registerComponentTypes walks t's structure registering every Set,
// Map, and Tuple type reachable within it as a known output type, even
// when the pool holds no value of that exact type yet.
func registerComponentTypes(pool *Pool, t ir.Type) {
	pool.RegisterType(t)
	switch t.Kind() {
	case ir.KindSet, ir.KindList:
		registerComponentTypes(pool, t.Elem())
	case ir.KindMap:
		registerComponentTypes(pool, t.MapKey())
		registerComponentTypes(pool, t.MapValue())
	case ir.KindTuple:
		for _, e := range t.TupleElems() {
			registerComponentTypes(pool, e)
		}
	}
}
