package grammar

import "github.com/hydro-project/katara/internal/ir"

// candidatesForBool implements spec.md §4.2's Bool expansion rule: true,
// false, and, or, not, equality over equality-supported types, >/>= over
// comparable integer types, plus per-Set<T> membership/subset/emptiness
// checks.
func candidatesForBool(pool *Pool) []ir.Expr {
	out := []ir.Expr{ir.BoolLit(true), ir.BoolLit(false)}

	bools := pool.All(ir.Bool())
	for _, a := range bools {
		out = append(out, ir.Not(a))
		for _, b := range bools {
			out = append(out, ir.And(a, b), ir.Or(a, b))
		}
	}

	for _, t := range pool.Types() {
		if !t.IsEqualitySupported() {
			continue
		}
		vals := pool.All(t)
		for i, a := range vals {
			for j, b := range vals {
				if i == j {
					continue
				}
				out = append(out, ir.Eq(a, b))
			}
		}
		if t.IsComparableInt() {
			for _, a := range vals {
				for _, b := range vals {
					out = append(out, ir.Gt(a, b), ir.Ge(a, b))
				}
			}
		}
		if t.Kind() == ir.KindSet {
			out = append(out, candidatesForSetPredicates(t, pool)...)
		}
	}
	return out
}

func candidatesForSetPredicates(t ir.Type, pool *Pool) []ir.Expr {
	var out []ir.Expr
	sets := pool.All(t)
	elems := pool.All(t.Elem())
	empty := ir.Call("set-create", t)
	for _, s := range sets {
		out = append(out, ir.Eq(s, empty))
		for _, e := range elems {
			out = append(out, ir.Call("set-member", ir.Bool(), e, s))
		}
		for _, s2 := range sets {
			out = append(out, ir.Call("set-subset", ir.Bool(), s, s2))
		}
	}
	return out
}

func candidatesForInt(pool *Pool) []ir.Expr {
	out := []ir.Expr{ir.IntLit(0), ir.IntLit(1)}
	ints := pool.All(ir.Int())
	for _, a := range ints {
		for _, b := range ints {
			out = append(out, ir.Add(a, b), ir.Sub(a, b))
		}
	}
	return out
}

func candidatesForEnumInt(pool *Pool) []ir.Expr {
	_ = pool
	return []ir.Expr{ir.EnumLit(0), ir.EnumLit(1)}
}

func candidatesForClockInt(pool *Pool) []ir.Expr {
	_ = pool
	return []ir.Expr{ir.ClockLit(0)}
}

// candidatesForSet implements the Set<T> expansion rule: set-minus,
// set-union, set-insert over known sets, plus set-create/set-singleton
// when T itself is present in the pool.
func candidatesForSet(t ir.Type, pool *Pool) []ir.Expr {
	var out []ir.Expr
	sets := pool.All(t)
	for _, a := range sets {
		for _, b := range sets {
			out = append(out, ir.Call("set-minus", t, a, b), ir.Call("set-union", t, a, b))
		}
	}
	elems := pool.All(t.Elem())
	for _, s := range sets {
		for _, e := range elems {
			out = append(out, ir.Call("set-insert", t, s, e))
		}
	}
	if len(elems) > 0 {
		out = append(out, ir.Call("set-create", t))
	}
	for _, e := range elems {
		out = append(out, ir.Call("set-singleton", t, e))
	}
	return out
}

// candidatesForMap implements the Map<K,V> expansion rule: map-create,
// map-singleton over known key/value pairs.
func candidatesForMap(t ir.Type, pool *Pool) []ir.Expr {
	k, v := t.MapKey(), t.MapValue()
	out := []ir.Expr{ir.Call("map-create", t)}
	for _, kk := range pool.All(k) {
		for _, vv := range pool.All(v) {
			out = append(out, ir.Call("map-singleton", t, kk, vv))
		}
	}
	return out
}

// candidatesForMapGet implements "V (when Map<K,V> is in inputs):
// map-get(m,k,default)": for every Map<K,outType> known to the pool,
// build map-get expressions over every known map/key/default triple.
func candidatesForMapGet(outType ir.Type, pool *Pool) []ir.Expr {
	var out []ir.Expr
	defaults := defaultsFor(outType, pool)
	if len(defaults) == 0 {
		return nil
	}
	for _, mt := range pool.Types() {
		if mt.Kind() != ir.KindMap || !mt.MapValue().Equal(outType) {
			continue
		}
		maps := pool.All(mt)
		keys := pool.All(mt.MapKey())
		for _, m := range maps {
			for _, k := range keys {
				for _, d := range defaults {
					out = append(out, ir.Call("map-get", outType, m, k, d))
				}
			}
		}
	}
	return out
}

// defaultsFor enumerates the default values map-get may fall back to for
// a given value type: 0 for integer flavours, {false,true} for Bool, an
// empty map for Map, per spec.md §4.2.
func defaultsFor(t ir.Type, pool *Pool) []ir.Expr {
	switch t.Kind() {
	case ir.KindInt, ir.KindClockInt, ir.KindEnumInt, ir.KindOpaqueInt, ir.KindNodeIDInt:
		return []ir.Expr{ir.Lit(int64(0), t)}
	case ir.KindBool:
		return []ir.Expr{ir.BoolLit(false), ir.BoolLit(true)}
	case ir.KindMap:
		return []ir.Expr{ir.Call("map-create", t)}
	default:
		_ = pool
		return nil
	}
}

// candidatesForNodeIDReductions implements "when K = NodeIDInt and
// allow_node_id_reductions: add reduce_int/reduce_bool folding
// map-values with the value-lattice's merge and bottom" for the two
// output types the fold can target (Bool via reduce_bool, Int via
// reduce_int). The fold operator here is the grammar-level Or/Add, not
// a specific value lattice's merge; the lattice-aware version (used by
// the supported-command grammar) is ExpandLatticeLogic.
func candidatesForNodeIDReductions(outType ir.Type, pool *Pool) []ir.Expr {
	if outType.Kind() != ir.KindBool && outType.Kind() != ir.KindInt {
		return nil
	}
	var out []ir.Expr
	for _, mt := range pool.Types() {
		if mt.Kind() != ir.KindMap || mt.MapKey().Kind() != ir.KindNodeIDInt {
			continue
		}
		if !mt.MapValue().Equal(outType) {
			continue
		}
		reduceName := "reduce_int"
		if outType.Kind() == ir.KindBool {
			reduceName = "reduce_bool"
		}
		accArg := ir.Var("reduce_acc", outType)
		valArg := ir.Var("reduce_v", outType)
		var combine ir.Expr
		if outType.Kind() == ir.KindBool {
			combine = ir.Or(accArg, valArg)
		} else {
			combine = ir.Add(accArg, valArg)
		}
		lambda := ir.Lambda(outType, combine, valArg, accArg)
		for _, m := range pool.All(mt) {
			values := ir.Call("map-values", ir.ListT(outType), m)
			for _, init := range defaultsFor(outType, pool) {
				out = append(out, ir.Call(reduceName, outType, values, lambda, init))
			}
		}
	}
	return out
}
