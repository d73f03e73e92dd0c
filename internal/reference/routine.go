package reference

import "github.com/hydro-project/katara/internal/ir"

// Continuation is the CPS shape spec.md §6 requires of a routine's call
// operation: given the shared Tracker (for fresh-name allocation) and a
// continuation k, it returns an expression inlining the routine's
// verification-condition contribution before invoking k on the result.
type Continuation func(tracker *Tracker, k func(result ir.Expr) ir.Expr) ir.Expr

// Routine is the reference-routine frontend's per-function analysis
// object: arguments (first is always the state), return type, symbolic
// name, and the CPS call operation itself.
type Routine interface {
	Arguments() []ir.Expr
	ReturnType() ir.Type
	Name() string
	Call(args ...ir.Expr) Continuation
}

// ExprRoutine is a Routine backed directly by an expression tree over
// named formal parameters — the shape every benchmark in pkg/katara
// uses to describe init_state/next_state/response, and the shape a real
// IR-lifting frontend (out of this module's scope, spec.md §1) would
// produce after compiling a host-language function.
type ExprRoutine struct {
	name    string
	args    []ir.Expr
	retType ir.Type
	body    ir.Expr
}

// NewExprRoutine builds a Routine named name, returning retType, whose
// body is an expression over the given formal parameter Vars (the first
// of which is conventionally the state parameter).
func NewExprRoutine(name string, retType ir.Type, body ir.Expr, args ...ir.Expr) *ExprRoutine {
	return &ExprRoutine{name: name, args: args, retType: retType, body: body}
}

func (r *ExprRoutine) Arguments() []ir.Expr { return r.args }
func (r *ExprRoutine) ReturnType() ir.Type  { return r.retType }
func (r *ExprRoutine) Name() string         { return r.name }

// Call inlines r's body with args substituted for its formal parameters,
// binds the result to a tracker-allocated fresh variable (so repeated
// calls to the same routine within one VC never collide), and continues
// with k.
func (r *ExprRoutine) Call(args ...ir.Expr) Continuation {
	return func(tracker *Tracker, k func(ir.Expr) ir.Expr) ir.Expr {
		subst := make(map[string]ir.Expr, len(r.args))
		for i, formal := range r.args {
			subst[formal.Name()] = args[i]
		}
		inlined := r.body.Rewrite(subst)
		resultVar := tracker.Variable(r.name+"_result", r.retType)
		return ir.Let(resultVar, inlined, k(resultVar))
	}
}
