// Package lattice implements the closed catalogue of join-semilattices
// spec.md §4.3 names, grounded line-for-line on
// _examples/original_source/katara/lattices.py.
package lattice

import (
	"fmt"

	"github.com/hydro-project/katara/internal/ir"
)

// Lattice is the capability set every concrete lattice in the catalogue
// implements: ir_type, merge, bottom, check_is_valid, has_node_id.
type Lattice interface {
	IRType() ir.Type
	Merge(a, b ir.Expr) ir.Expr
	Bottom() ir.Expr
	CheckIsValid(v ir.Expr) ir.Expr
	HasNodeID() bool
	// Key is the canonical structural identity used for gen_structures
	// dedup and for human-readable reports.
	Key() string
}

// OrBool is the boolean-or lattice: merge = ∨, bottom = false.
type OrBool struct{}

func (OrBool) IRType() ir.Type { return ir.Bool() }
func (OrBool) Merge(a, b ir.Expr) ir.Expr { return ir.Or(a, b) }
func (OrBool) Bottom() ir.Expr { return ir.BoolLit(false) }
func (OrBool) CheckIsValid(ir.Expr) ir.Expr { return ir.BoolLit(true) }
func (OrBool) HasNodeID() bool { return false }
func (OrBool) Key() string { return "OrBool" }

// MaxInt is the max lattice over any comparable integer flavour:
// merge = max, bottom = 0.
type MaxInt struct {
	IntType ir.Type
}

func NewMaxInt(t ir.Type) MaxInt { return MaxInt{IntType: t} }

func (m MaxInt) IRType() ir.Type { return m.IntType }

func (m MaxInt) Merge(a, b ir.Expr) ir.Expr {
	av := ir.Var("max_merge_a", m.IntType)
	bv := ir.Var("max_merge_b", m.IntType)
	return ir.Let(av, a, ir.Let(bv, b, ir.Ite(ir.Ge(av, bv), av, bv)))
}

func (m MaxInt) Bottom() ir.Expr { return ir.Lit(int64(0), m.IntType) }

func (m MaxInt) CheckIsValid(v ir.Expr) ir.Expr { return ir.Ge(v, m.Bottom()) }

func (m MaxInt) HasNodeID() bool { return m.IntType.Kind() == ir.KindNodeIDInt }

func (m MaxInt) Key() string { return fmt.Sprintf("MaxInt<%s>", m.IntType) }

// Set is the set-union lattice: merge = ∪, bottom = ∅.
type Set struct {
	Inner ir.Type
}

func NewSet(inner ir.Type) Set { return Set{Inner: inner} }

func (s Set) IRType() ir.Type { return ir.SetT(s.Inner) }

func (s Set) Merge(a, b ir.Expr) ir.Expr {
	return ir.Call("set-union", s.IRType(), a, b)
}

func (s Set) Bottom() ir.Expr { return ir.Call("set-create", s.IRType()) }

func (s Set) CheckIsValid(ir.Expr) ir.Expr { return ir.BoolLit(true) }

func (s Set) HasNodeID() bool { return s.Inner.Kind() == ir.KindNodeIDInt }

func (s Set) Key() string { return fmt.Sprintf("Set<%s>", s.Inner) }

// Map is the pointwise-join lattice over a value lattice: merge is
// key-wise Value.Merge, with absent keys treated as Value.Bottom().
type Map struct {
	KeyType ir.Type
	Value   Lattice
}

func NewMap(key ir.Type, value Lattice) Map { return Map{KeyType: key, Value: value} }

func (m Map) IRType() ir.Type { return ir.MapT(m.KeyType, m.Value.IRType()) }

func (m Map) Merge(a, b ir.Expr) ir.Expr {
	va := ir.Var("map_merge_a", m.Value.IRType())
	vb := ir.Var("map_merge_b", m.Value.IRType())
	return ir.Call("map-union", m.IRType(), a, b,
		ir.Lambda(m.Value.IRType(), m.Value.Merge(va, vb), va, vb))
}

func (m Map) Bottom() ir.Expr { return ir.Call("map-create", m.IRType()) }

func (m Map) CheckIsValid(v ir.Expr) ir.Expr {
	accArg := ir.Var("merge_into", ir.Bool())
	valArg := ir.Var("merge_v", m.Value.IRType())
	return ir.Call("reduce_bool", ir.Bool(),
		ir.Call("map-values", ir.ListT(m.Value.IRType()), v),
		ir.Lambda(ir.Bool(), ir.And(accArg, m.Value.CheckIsValid(valArg)), valArg, accArg),
		ir.BoolLit(true))
}

func (m Map) HasNodeID() bool {
	return m.KeyType.Kind() == ir.KindNodeIDInt || m.Value.HasNodeID()
}

func (m Map) Key() string { return fmt.Sprintf("Map<%s,%s>", m.KeyType, m.Value.Key()) }

// LexicalProduct is the lexicographic-cascade product of two lattices:
// the key component (L1) is merged first; if the keys agree, or if
// neither input's key equals the merged key (a concurrent overwrite by a
// third, larger key), the value component merges normally. Otherwise the
// side whose key survived the merge keeps its value merged against
// L2.bottom() — a reset cascade that implements last-writer-wins-by-key.
// This precise semantics is a contract (spec.md §3) and is ported
// unchanged from lattices.py's LexicalProduct.merge.
type LexicalProduct struct {
	L1, L2 Lattice
}

func NewLexicalProduct(l1, l2 Lattice) LexicalProduct { return LexicalProduct{L1: l1, L2: l2} }

func (l LexicalProduct) IRType() ir.Type { return ir.TupleT(l.L1.IRType(), l.L2.IRType()) }

func (l LexicalProduct) Merge(a, b ir.Expr) ir.Expr {
	mergeA := ir.Var("cascade_merge_a", a.Type())
	mergeB := ir.Var("cascade_merge_b", b.Type())

	keyA := ir.TupleGet(mergeA, 0)
	keyB := ir.TupleGet(mergeB, 0)
	valueA := ir.TupleGet(mergeA, 1)
	valueB := ir.TupleGet(mergeB, 1)

	keyMerged := l.L1.Merge(keyA, keyB)
	valueMerged := l.L2.Merge(valueA, valueB)

	return ir.Let(mergeA, a, ir.Let(mergeB, b, ir.Tuple(
		keyMerged,
		ir.Ite(
			ir.Or(
				ir.Eq(keyA, keyB),
				ir.And(ir.Not(ir.Eq(keyA, keyMerged)), ir.Not(ir.Eq(keyB, keyMerged))),
			),
			valueMerged,
			l.L2.Merge(ir.Ite(ir.Eq(keyA, keyMerged), valueA, valueB), l.L2.Bottom()),
		),
	)))
}

func (l LexicalProduct) Bottom() ir.Expr { return ir.Tuple(l.L1.Bottom(), l.L2.Bottom()) }

func (l LexicalProduct) CheckIsValid(v ir.Expr) ir.Expr {
	return ir.And(l.L1.CheckIsValid(ir.TupleGet(v, 0)), l.L2.CheckIsValid(ir.TupleGet(v, 1)))
}

func (l LexicalProduct) HasNodeID() bool { return l.L1.HasNodeID() || l.L2.HasNodeID() }

func (l LexicalProduct) Key() string {
	return fmt.Sprintf("LexicalProduct<%s,%s>", l.L1.Key(), l.L2.Key())
}

// Structure is a replicated state shape: an ordered tuple of lattices.
// The replicated state type is Tuple(L1.IRType(), ..., Lk.IRType()).
type Structure []Lattice

// IRType returns the Tuple type of the structure's components.
func (s Structure) IRType() ir.Type {
	types := make([]ir.Type, len(s))
	for i, l := range s {
		types[i] = l.IRType()
	}
	return ir.TupleT(types...)
}

// HasNodeID reports whether any component lattice carries a node id,
// either as a Map key or in a nested inner lattice.
func (s Structure) HasNodeID() bool {
	for _, l := range s {
		if l.HasNodeID() {
			return true
		}
	}
	return false
}

// Key is the canonical structural identity of the whole tuple, used by
// gen_structures' dedup and by the search report.
func (s Structure) Key() string {
	parts := make([]string, len(s))
	for i, l := range s {
		parts[i] = l.Key()
	}
	out := "("
	for i, p := range parts {
		if i > 0 {
			out += ","
		}
		out += p
	}
	return out + ")"
}

func (s Structure) String() string { return s.Key() }
