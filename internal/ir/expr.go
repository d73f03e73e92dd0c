package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// ExprKind discriminates the expression-tree node shapes spec.md §3
// enumerates: Var, Lit, And, Or, Not, Eq, Gt, Ge, Add, Sub, Ite, Let,
// Lambda, Call, CallValue, Tuple, TupleGet, Choose, Synth, FnDecl,
// FnDeclNonRecursive, Axiom, MLInst.
type ExprKind int

const (
	EVar ExprKind = iota
	ELit
	EAnd
	EOr
	ENot
	EEq
	EGt
	EGe
	EAdd
	ESub
	EIte
	ELet
	ELambda
	ECall
	ECallValue
	ETuple
	ETupleGet
	EChoose
	ESynth
	EFnDecl
	EFnDeclNonRecursive
	EAxiom
	EMLInst
)

// Expr is the algebraic datatype of Katara's expression language. Every
// node records its result Type. Expr is an immutable value; Rewrite
// returns a new tree rather than mutating in place.
type Expr struct {
	kind  ExprKind
	typ   Type
	name  string
	index int
	value any
	kids  []Expr
	body  *Expr
}

func (e Expr) Kind() ExprKind { return e.kind }
func (e Expr) Type() Type     { return e.typ }
func (e Expr) Name() string   { return e.name }
func (e Expr) Index() int     { return e.index }
func (e Expr) Value() any     { return e.value }
func (e Expr) Args() []Expr   { return e.kids }
func (e Expr) Body() *Expr    { return e.body }

// --- constructors ---

func Var(name string, typ Type) Expr { return Expr{kind: EVar, typ: typ, name: name} }

func Lit(value any, typ Type) Expr { return Expr{kind: ELit, typ: typ, value: value} }

func BoolLit(v bool) Expr   { return Lit(v, Bool()) }
func IntLit(v int64) Expr   { return Lit(v, Int()) }
func ClockLit(v int64) Expr { return Lit(v, ClockInt()) }
func EnumLit(v int64) Expr  { return Lit(v, EnumInt()) }

func And(args ...Expr) Expr {
	if len(args) == 0 {
		return BoolLit(true)
	}
	return Expr{kind: EAnd, typ: Bool(), kids: args}
}

func Or(args ...Expr) Expr {
	if len(args) == 0 {
		return BoolLit(false)
	}
	return Expr{kind: EOr, typ: Bool(), kids: args}
}

func Not(a Expr) Expr { return Expr{kind: ENot, typ: Bool(), kids: []Expr{a}} }
func Eq(a, b Expr) Expr { return Expr{kind: EEq, typ: Bool(), kids: []Expr{a, b}} }
func Gt(a, b Expr) Expr { return Expr{kind: EGt, typ: Bool(), kids: []Expr{a, b}} }
func Ge(a, b Expr) Expr { return Expr{kind: EGe, typ: Bool(), kids: []Expr{a, b}} }
func Add(a, b Expr) Expr { return Expr{kind: EAdd, typ: a.typ, kids: []Expr{a, b}} }
func Sub(a, b Expr) Expr { return Expr{kind: ESub, typ: a.typ, kids: []Expr{a, b}} }

func Ite(cond, then, els Expr) Expr {
	return Expr{kind: EIte, typ: then.typ, kids: []Expr{cond, then, els}}
}

// Let binds v (a Var expr) to value within body.
func Let(v, value, body Expr) Expr {
	return Expr{kind: ELet, typ: body.typ, kids: []Expr{v, value}, body: &body}
}

// Lambda constructs an anonymous function value of type Fn<retType; params...>.
func Lambda(retType Type, body Expr, params ...Expr) Expr {
	paramTypes := make([]Type, len(params))
	for i, p := range params {
		paramTypes[i] = p.typ
	}
	return Expr{kind: ELambda, typ: FnT(retType, paramTypes...), kids: params, body: &body}
}

// Call invokes a named primitive (library function, e.g. "set-union") or
// a previously declared FnDecl by name.
func Call(name string, retType Type, args ...Expr) Expr {
	return Expr{kind: ECall, typ: retType, name: name, kids: args}
}

// CallValue invokes a function-valued expression (e.g. a Lambda bound by Let).
func CallValue(fn Expr, args ...Expr) Expr {
	kids := append([]Expr{fn}, args...)
	return Expr{kind: ECallValue, typ: fn.typ.Ret(), kids: kids}
}

func Tuple(elems ...Expr) Expr {
	types := make([]Type, len(elems))
	for i, e := range elems {
		types[i] = e.typ
	}
	return Expr{kind: ETuple, typ: TupleT(types...), kids: elems}
}

func TupleGet(tup Expr, index int) Expr {
	return Expr{kind: ETupleGet, typ: tup.typ.TupleElems()[index], index: index, kids: []Expr{tup}}
}

// Choose represents a non-deterministic grammar hole: a set of syntactic
// alternatives at one tree position, all of the same type. An empty
// Choose is a grammar-build bug (spec.md §4.1) and panics rather than
// silently producing an empty synthesis space.
func Choose(alts ...Expr) Expr {
	if len(alts) == 0 {
		panic("ir: Choose with no alternatives")
	}
	return Expr{kind: EChoose, typ: alts[0].typ, kids: alts}
}

// Synth is a named grammar hole consumed by the synthesis backend and
// replaced, on success, by a concrete FnDecl.
func Synth(name string, retType Type, body Expr, params ...Expr) Expr {
	paramTypes := make([]Type, len(params))
	for i, p := range params {
		paramTypes[i] = p.typ
	}
	return Expr{kind: ESynth, typ: FnT(retType, paramTypes...), name: name, kids: params, body: &body}
}

func FnDecl(name string, retType Type, body Expr, params ...Expr) Expr {
	paramTypes := make([]Type, len(params))
	for i, p := range params {
		paramTypes[i] = p.typ
	}
	return Expr{kind: EFnDecl, typ: FnT(retType, paramTypes...), name: name, kids: params, body: &body}
}

func FnDeclNonRecursive(name string, retType Type, body Expr, params ...Expr) Expr {
	paramTypes := make([]Type, len(params))
	for i, p := range params {
		paramTypes[i] = p.typ
	}
	return Expr{kind: EFnDeclNonRecursive, typ: FnT(retType, paramTypes...), name: name, kids: params, body: &body}
}

func Axiom(body Expr) Expr { return Expr{kind: EAxiom, typ: Bool(), body: &body} }

// MLInst carries opaque low-level instantiation metadata threaded through
// from the (out-of-scope) IR frontend; the driver never interprets it,
// only rewrites and re-serializes it like any other node.
func MLInst(name string, retType Type, args ...Expr) Expr {
	return Expr{kind: EMLInst, typ: retType, name: name, kids: args}
}

// --- rewrite ---

// Rewrite deep-substitutes named variables throughout the tree. It is
// capture-avoiding: substitutions for a name are suppressed inside the
// scope of a binder (Let, Lambda, FnDecl, Synth) that rebinds that name.
func (e Expr) Rewrite(subst map[string]Expr) Expr {
	if len(subst) == 0 {
		return e
	}
	switch e.kind {
	case EVar:
		if r, ok := subst[e.name]; ok {
			return r
		}
		return e
	case ELit:
		return e
	case ELet:
		boundName := e.kids[0].name
		value := e.kids[1].Rewrite(subst)
		inner := withoutKeys(subst, boundName)
		body := e.body.Rewrite(inner)
		out := e
		out.kids = []Expr{e.kids[0], value}
		out.body = &body
		return out
	case ELambda, EFnDecl, EFnDeclNonRecursive, ESynth:
		names := make([]string, len(e.kids))
		for i, p := range e.kids {
			names[i] = p.name
		}
		inner := withoutKeys(subst, names...)
		body := e.body.Rewrite(inner)
		out := e
		out.body = &body
		return out
	default:
		out := e
		if len(e.kids) > 0 {
			newKids := make([]Expr, len(e.kids))
			for i, k := range e.kids {
				newKids[i] = k.Rewrite(subst)
			}
			out.kids = newKids
		}
		if e.body != nil {
			nb := e.body.Rewrite(subst)
			out.body = &nb
		}
		return out
	}
}

func withoutKeys(subst map[string]Expr, names ...string) map[string]Expr {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	out := make(map[string]Expr, len(subst))
	for k, v := range subst {
		if !drop[k] {
			out[k] = v
		}
	}
	return out
}

// --- structural equality ---

// Equal reports structural equality: same shape, same type, same leaf
// values. Choose-alternative dedup during grammar construction relies on
// this.
func (e Expr) Equal(o Expr) bool {
	if e.kind != o.kind || !e.typ.Equal(o.typ) || e.name != o.name || e.index != o.index {
		return false
	}
	if !valueEqual(e.value, o.value) {
		return false
	}
	if len(e.kids) != len(o.kids) {
		return false
	}
	for i := range e.kids {
		if !e.kids[i].Equal(o.kids[i]) {
			return false
		}
	}
	if (e.body == nil) != (o.body == nil) {
		return false
	}
	if e.body != nil && !e.body.Equal(*o.body) {
		return false
	}
	return true
}

func valueEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a == b
}

// --- canonical printing ---

// String renders a canonical, deterministic textual form used both for
// human-readable diagnostics and as the structural dedup key for Choose
// alternatives and pool entries.
func (e Expr) String() string {
	switch e.kind {
	case EVar:
		return e.name
	case ELit:
		return literalString(e.value)
	case EAnd:
		return joinOp("and", e.kids)
	case EOr:
		return joinOp("or", e.kids)
	case ENot:
		return "(not " + e.kids[0].String() + ")"
	case EEq:
		return binOp("=", e.kids)
	case EGt:
		return binOp(">", e.kids)
	case EGe:
		return binOp(">=", e.kids)
	case EAdd:
		return binOp("+", e.kids)
	case ESub:
		return binOp("-", e.kids)
	case EIte:
		return fmt.Sprintf("(ite %s %s %s)", e.kids[0], e.kids[1], e.kids[2])
	case ELet:
		return fmt.Sprintf("(let ((%s %s)) %s)", e.kids[0].name, e.kids[1], e.body)
	case ELambda:
		return fmt.Sprintf("(lambda (%s) %s)", joinNames(e.kids), e.body)
	case ECall:
		return fmt.Sprintf("(%s%s)", e.name, argsString(e.kids))
	case ECallValue:
		return fmt.Sprintf("(%s%s)", e.kids[0], argsString(e.kids[1:]))
	case ETuple:
		return fmt.Sprintf("(tuple%s)", argsString(e.kids))
	case ETupleGet:
		return fmt.Sprintf("(tuple-get %s %d)", e.kids[0], e.index)
	case EChoose:
		return fmt.Sprintf("(choose%s)", argsString(e.kids))
	case ESynth:
		return fmt.Sprintf("(synth %s (%s) %s)", e.name, joinNames(e.kids), e.body)
	case EFnDecl:
		return fmt.Sprintf("(fn %s (%s) %s)", e.name, joinNames(e.kids), e.body)
	case EFnDeclNonRecursive:
		return fmt.Sprintf("(fn-nonrec %s (%s) %s)", e.name, joinNames(e.kids), e.body)
	case EAxiom:
		return fmt.Sprintf("(axiom %s)", e.body)
	case EMLInst:
		return fmt.Sprintf("(mlinst %s%s)", e.name, argsString(e.kids))
	default:
		return "?"
	}
}

func literalString(v any) string {
	switch x := v.(type) {
	case bool:
		if x {
			return "true"
		}
		return "false"
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func joinOp(op string, kids []Expr) string {
	return fmt.Sprintf("(%s%s)", op, argsString(kids))
}

func binOp(op string, kids []Expr) string {
	return fmt.Sprintf("(%s %s %s)", op, kids[0], kids[1])
}

func argsString(kids []Expr) string {
	var b strings.Builder
	for _, k := range kids {
		b.WriteByte(' ')
		b.WriteString(k.String())
	}
	return b.String()
}

func joinNames(kids []Expr) string {
	names := make([]string, len(kids))
	for i, k := range kids {
		names[i] = k.name
	}
	return strings.Join(names, " ")
}

// Key returns the canonical dedup key for this expression (its String
// form). Distinct from Type.Key but named identically by convention.
func (e Expr) Key() string { return e.String() }
