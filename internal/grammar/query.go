package grammar

import "github.com/hydro-project/katara/internal/ir"

// QueryGrammar builds the grammar for a query/response function's body.
// When the return type is EnumInt, the original builds Ite(condition, 1,
// 0) over a one-deeper boolean grammar rather than asking auto_grammar
// for an EnumInt directly (SPEC_FULL.md §C.4, ported from
// synthesize_crdt.py's grammarQuery): EnumInt's own expansion rules only
// offer the literals 0 and 1, so asking for EnumInt directly would never
// let the synthesized query depend on the input state at all.
func QueryGrammar(args []ir.Expr, retType ir.Type, depth int) (ir.Expr, error) {
	opts := Options{EnableITE: true, AllowNodeIDReductions: true}
	if retType.Kind() == ir.KindEnumInt {
		cond, err := AutoGrammar(ir.Bool(), depth+1, args, opts)
		if err != nil {
			return ir.Expr{}, err
		}
		return ir.Ite(cond, ir.EnumLit(1), ir.EnumLit(0)), nil
	}
	return AutoGrammar(retType, depth, args, opts)
}
