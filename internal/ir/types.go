// Package ir implements Katara's typed expression algebra: the tagged
// value/type system shared by reference-routine analysis, the lattice
// catalogue, the grammar builder and the synthesis driver.
package ir

import "strings"

// Kind discriminates the base and constructed type shapes. Int-flavoured
// kinds (Int, ClockInt, EnumInt, OpaqueInt, NodeIDInt) all share the same
// underlying integer domain but are kept distinct: the grammar's expansion
// rules and the lattice catalogue dispatch on the discrimination.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindClockInt
	KindEnumInt
	KindOpaqueInt
	KindNodeIDInt
	KindSet
	KindMap
	KindTuple
	KindList
	KindFn
)

var kindNames = [...]string{
	KindBool: "Bool", KindInt: "Int", KindClockInt: "ClockInt",
	KindEnumInt: "EnumInt", KindOpaqueInt: "OpaqueInt", KindNodeIDInt: "NodeIDInt",
	KindSet: "Set", KindMap: "Map", KindTuple: "Tuple", KindList: "List", KindFn: "Fn",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "?"
}

// Type is a tagged value: a Kind plus, for constructed types, ordered
// argument types. Two Types are the same type iff Equal reports true;
// Type is comparable only in the structural sense (it carries a slice),
// so code needing it as a map key should use Key().
type Type struct {
	kind Kind
	args []Type
}

func Bool() Type       { return Type{kind: KindBool} }
func Int() Type        { return Type{kind: KindInt} }
func ClockInt() Type   { return Type{kind: KindClockInt} }
func EnumInt() Type    { return Type{kind: KindEnumInt} }
func OpaqueInt() Type  { return Type{kind: KindOpaqueInt} }
func NodeIDInt() Type  { return Type{kind: KindNodeIDInt} }

func SetT(elem Type) Type             { return Type{kind: KindSet, args: []Type{elem}} }
func MapT(key, val Type) Type         { return Type{kind: KindMap, args: []Type{key, val}} }
func ListT(elem Type) Type            { return Type{kind: KindList, args: []Type{elem}} }
func TupleT(elems ...Type) Type       { return Type{kind: KindTuple, args: append([]Type(nil), elems...)} }
func FnT(ret Type, params ...Type) Type {
	return Type{kind: KindFn, args: append([]Type{ret}, params...)}
}

func (t Type) Kind() Kind   { return t.kind }
func (t Type) Args() []Type { return t.args }

// Elem returns the element type of a Set or List.
func (t Type) Elem() Type { return t.args[0] }

// MapKey and MapValue return the key/value types of a Map.
func (t Type) MapKey() Type   { return t.args[0] }
func (t Type) MapValue() Type { return t.args[1] }

// TupleElems returns the positional component types of a Tuple.
func (t Type) TupleElems() []Type { return t.args }

// Ret and Params describe a Fn type.
func (t Type) Ret() Type      { return t.args[0] }
func (t Type) Params() []Type { return t.args[1:] }

// Equal reports structural type equality.
func (t Type) Equal(other Type) bool {
	if t.kind != other.kind || len(t.args) != len(other.args) {
		return false
	}
	for i := range t.args {
		if !t.args[i].Equal(other.args[i]) {
			return false
		}
	}
	return true
}

// Erase collapses integer-flavoured types to Int, recursively.
func (t Type) Erase() Type {
	switch t.kind {
	case KindClockInt, KindEnumInt, KindOpaqueInt, KindNodeIDInt:
		return Int()
	case KindSet:
		return SetT(t.args[0].Erase())
	case KindList:
		return ListT(t.args[0].Erase())
	case KindMap:
		return MapT(t.args[0].Erase(), t.args[1].Erase())
	case KindTuple:
		out := make([]Type, len(t.args))
		for i, a := range t.args {
			out[i] = a.Erase()
		}
		return TupleT(out...)
	default:
		return t
	}
}

// Key returns a canonical string key suitable for map lookups and for the
// structural dedup that auto_grammar and gen_structures rely on.
func (t Type) Key() string { return t.String() }

func (t Type) String() string {
	switch t.kind {
	case KindSet, KindList:
		return t.kind.String() + "<" + t.args[0].String() + ">"
	case KindMap:
		return "Map<" + t.args[0].String() + "," + t.args[1].String() + ">"
	case KindTuple:
		parts := make([]string, len(t.args))
		for i, a := range t.args {
			parts[i] = a.String()
		}
		return "Tuple<" + strings.Join(parts, ",") + ">"
	case KindFn:
		parts := make([]string, len(t.args)-1)
		for i, a := range t.args[1:] {
			parts[i] = a.String()
		}
		return "Fn<" + t.args[0].String() + ";" + strings.Join(parts, ",") + ">"
	default:
		return t.kind.String()
	}
}

// IsIntLike reports membership in {Int, ClockInt, EnumInt, OpaqueInt},
// the set the original source calls int_like.
func (t Type) IsIntLike() bool {
	switch t.kind {
	case KindInt, KindClockInt, KindEnumInt, KindOpaqueInt:
		return true
	default:
		return false
	}
}

// IsComparableInt reports membership in {Int, ClockInt, OpaqueInt}: the
// int flavours MaxInt and the ">"/"≥" grammar rules accept. EnumInt is
// deliberately excluded, matching lattices.py's comparable_int.
func (t Type) IsComparableInt() bool {
	switch t.kind {
	case KindInt, KindClockInt, KindOpaqueInt:
		return true
	default:
		return false
	}
}

// IsSetSupportedElem reports membership in {Int, OpaqueInt}: the element
// types gen_lattice_types allows for Set lattices.
func (t Type) IsSetSupportedElem() bool {
	return t.kind == KindInt || t.kind == KindOpaqueInt
}

// IsMapSupportedElem reports membership in {OpaqueInt, NodeIDInt}: the
// key types gen_lattice_types allows for Map lattices.
func (t Type) IsMapSupportedElem() bool {
	return t.kind == KindOpaqueInt || t.kind == KindNodeIDInt
}

// IsEqualitySupported reports whether the grammar's Eq expansion rule may
// compare two values of this type. All base scalar types plus Set and Map
// support equality; Fn does not.
func (t Type) IsEqualitySupported() bool {
	switch t.kind {
	case KindFn:
		return false
	default:
		return true
	}
}

// GenTypes yields the base types reachable at the given type-depth,
// mirroring lattices.py's gen_types: the six base types at depth 1, and
// (by recursion) the same set at any depth, since the original never adds
// new base types below depth 1.
func GenTypes(depth int) []Type {
	base := []Type{Int(), ClockInt(), EnumInt(), OpaqueInt(), NodeIDInt(), Bool()}
	if depth <= 1 {
		return base
	}
	return GenTypes(depth - 1)
}
