// Package smtlib serializes Katara's expression algebra to SMT-LIB 2, the
// wire format spec.md §6 pins for the ACI checker ("writes an SMT-LIB-2
// file to ./synthesisLogs/aci-test.smt"). Full axiomatizations of the
// Set/Map library calls are out of scope (spec.md §1 excludes the
// SMT/synthesis backends themselves); those calls serialize as
// uninterpreted functions over an uninterpreted sort so the emitted file
// is always well-formed, matching "we specify only the
// verification-condition schema given to them".
package smtlib

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hydro-project/katara/internal/ir"
)

// Serialize renders vars (the VC's free variables) and vc (a Bool-typed
// expression) as a complete SMT-LIB 2 script: sort/function
// declarations, one assertion of vc's negation (a satisfying model is a
// counterexample to vc), check-sat, and get-model.
func Serialize(vars []ir.Expr, vc ir.Expr) string {
	var b strings.Builder
	b.WriteString("(set-logic ALL)\n")

	collected := newSortCollector()
	for _, v := range vars {
		collected.visitType(v.Type())
	}
	collected.visitExpr(vc)
	collected.emitDeclarations(&b)

	declared := map[string]bool{}
	for _, v := range vars {
		name := v.Name()
		if declared[name] {
			continue
		}
		declared[name] = true
		fmt.Fprintf(&b, "(declare-const %s %s)\n", name, sortOf(v.Type()))
	}

	fmt.Fprintf(&b, "(assert (not %s))\n", render(vc))
	b.WriteString("(check-sat)\n")
	b.WriteString("(get-model)\n")
	return b.String()
}

// sortOf maps a Katara Type to its SMT-LIB sort. Integer flavours erase
// to Int (spec.md §3's erase()); constructed types beyond Tuple become
// uninterpreted sorts named after their canonical Key().
func sortOf(t ir.Type) string {
	switch t.Erase().Kind() {
	case ir.KindBool:
		return "Bool"
	case ir.KindInt:
		return "Int"
	case ir.KindTuple:
		parts := make([]string, len(t.TupleElems()))
		for i, e := range t.TupleElems() {
			parts[i] = sanitize(sortOf(e))
		}
		return "Tuple_" + strings.Join(parts, "_")
	default:
		return sanitize(t.String())
	}
}

func sanitize(s string) string {
	r := strings.NewReplacer("<", "_", ">", "_", ",", "_", " ", "")
	return r.Replace(s)
}

func render(e ir.Expr) string {
	switch e.Kind() {
	case ir.EVar:
		return e.Name()
	case ir.ELit:
		switch v := e.Value().(type) {
		case bool:
			if v {
				return "true"
			}
			return "false"
		case int64:
			if v < 0 {
				return fmt.Sprintf("(- %d)", -v)
			}
			return fmt.Sprintf("%d", v)
		default:
			return fmt.Sprintf("%v", v)
		}
	case ir.EAnd:
		return wrap("and", e.Args())
	case ir.EOr:
		return wrap("or", e.Args())
	case ir.ENot:
		return fmt.Sprintf("(not %s)", render(e.Args()[0]))
	case ir.EEq:
		return fmt.Sprintf("(= %s %s)", render(e.Args()[0]), render(e.Args()[1]))
	case ir.EGt:
		return fmt.Sprintf("(> %s %s)", render(e.Args()[0]), render(e.Args()[1]))
	case ir.EGe:
		return fmt.Sprintf("(>= %s %s)", render(e.Args()[0]), render(e.Args()[1]))
	case ir.EAdd:
		return fmt.Sprintf("(+ %s %s)", render(e.Args()[0]), render(e.Args()[1]))
	case ir.ESub:
		return fmt.Sprintf("(- %s %s)", render(e.Args()[0]), render(e.Args()[1]))
	case ir.EIte:
		a := e.Args()
		return fmt.Sprintf("(ite %s %s %s)", render(a[0]), render(a[1]), render(a[2]))
	case ir.ELet:
		a := e.Args()
		return fmt.Sprintf("(let ((%s %s)) %s)", a[0].Name(), render(a[1]), render(*e.Body()))
	case ir.ETuple:
		return fmt.Sprintf("(%s %s)", sortOf(e.Type()), renderAll(e.Args()))
	case ir.ETupleGet:
		return fmt.Sprintf("(%s_get%d %s)", sortOf(e.Args()[0].Type()), e.Index(), render(e.Args()[0]))
	case ir.ECall:
		if len(e.Args()) == 0 {
			return uninterpretedName(e.Name(), e.Type())
		}
		return fmt.Sprintf("(%s %s)", uninterpretedName(e.Name(), e.Type()), renderAll(e.Args()))
	default:
		return fmt.Sprintf(";; unsupported node %s", e)
	}
}

func wrap(op string, args []ir.Expr) string {
	return fmt.Sprintf("(%s %s)", op, renderAll(args))
}

func renderAll(args []ir.Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = render(a)
	}
	return strings.Join(parts, " ")
}

func uninterpretedName(callName string, retType ir.Type) string {
	return callName + "__" + sanitize(sortOf(retType))
}

// sortCollector walks the VC collecting the uninterpreted sorts and
// functions (library calls over Set/Map types, and tuple accessors) that
// must be declared before the assertion.
type sortCollector struct {
	sorts map[string]bool
	funcs map[string]funcSig
	order []string
}

type funcSig struct {
	name   string
	params []string
	ret    string
}

func newSortCollector() *sortCollector {
	return &sortCollector{sorts: map[string]bool{}, funcs: map[string]funcSig{}}
}

func (c *sortCollector) visitType(t ir.Type) {
	switch t.Erase().Kind() {
	case ir.KindBool, ir.KindInt:
		return
	case ir.KindTuple:
		for _, e := range t.TupleElems() {
			c.visitType(e)
		}
		c.registerTupleSort(t)
	default:
		c.registerSort(sortOf(t))
	}
}

func (c *sortCollector) registerSort(name string) {
	if !c.sorts[name] {
		c.sorts[name] = true
		c.order = append(c.order, "sort:"+name)
	}
}

func (c *sortCollector) registerTupleSort(t ir.Type) {
	name := sortOf(t)
	if c.sorts[name] {
		return
	}
	c.sorts[name] = true
	c.order = append(c.order, "tuple:"+name)
}

func (c *sortCollector) visitExpr(e ir.Expr) {
	c.visitType(e.Type())
	if e.Kind() == ir.ETupleGet {
		tupType := e.Args()[0].Type()
		name := fmt.Sprintf("%s_get%d", sortOf(tupType), e.Index())
		sig := funcSig{name: name, params: []string{sortOf(tupType)}, ret: sortOf(e.Type())}
		if _, ok := c.funcs[name]; !ok {
			c.funcs[name] = sig
			c.order = append(c.order, "func:"+name)
		}
	}
	if e.Kind() == ir.ECall {
		sig := funcSig{name: uninterpretedName(e.Name(), e.Type()), ret: sortOf(e.Type())}
		for _, a := range e.Args() {
			sig.params = append(sig.params, sortOf(a.Type()))
		}
		if _, ok := c.funcs[sig.name]; !ok {
			c.funcs[sig.name] = sig
			c.order = append(c.order, "func:"+sig.name)
		}
	}
	for _, a := range e.Args() {
		c.visitExpr(a)
	}
	if e.Body() != nil {
		c.visitExpr(*e.Body())
	}
}

func (c *sortCollector) emitDeclarations(b *strings.Builder) {
	sort.Strings(c.order) // deterministic output
	for _, key := range c.order {
		kind, name, _ := strings.Cut(key, ":")
		switch kind {
		case "sort":
			fmt.Fprintf(b, "(declare-sort %s 0)\n", name)
		case "tuple":
			// Tuple sorts are represented as uninterpreted sorts with
			// uninterpreted projection functions; full datatype
			// declarations are unnecessary for the equality-only use
			// the VC makes of them.
			fmt.Fprintf(b, "(declare-sort %s 0)\n", name)
		case "func":
			sig := c.funcs[name]
			fmt.Fprintf(b, "(declare-fun %s (%s) %s)\n", sig.name, strings.Join(sig.params, " "), sig.ret)
		}
	}
}
