package synth

import "github.com/hydro-project/katara/internal/ir"

// The bounded (useOpList=true) phase represents replicated state as
// Tuple(core lattice components..., List<Op>): a log of every operation
// applied so far, in delivery order. listLength/listGet/listTail/
// listPrepend/listEmpty are uninterpreted list primitives (spec.md §1
// scopes list-theory axiomatization to the backend, out of this module);
// smtlib emits them as declared-but-uninterpreted functions.
func listLength(lst ir.Expr) ir.Expr { return ir.Call("list-length", ir.Int(), lst) }

func listGet(lst ir.Expr, i ir.Expr, opT ir.Type) ir.Expr {
	return ir.Call("list-get", opT, lst, i)
}

func listTail(lst ir.Expr) ir.Expr { return ir.Call("list-tail", lst.Type(), lst) }

func listPrepend(lst, op ir.Expr) ir.Expr {
	return ir.Call("list-prepend", lst.Type(), op, lst)
}

func listEmpty(opT ir.Type) ir.Expr { return ir.Call("list-empty", ir.ListT(opT)) }

// applyStateTransitionsFn builds the recursive apply_state_transitions
// function: apply_state_transitions(log) folds nextState over log from its
// tail, returning initState when the log is empty (spec.md §4.4's op-log
// encoding). nextState is called by name ("next_state"), consistent with a
// Synth hole the backend has already committed to a concrete FnDecl for.
func applyStateTransitionsFn(name, nextStateName string, coreStateType, opT ir.Type) ir.Expr {
	log := ir.Var("log", ir.ListT(opT))
	length := listLength(log)
	head := listGet(log, ir.IntLit(0), opT)
	tail := listTail(log)
	recurse := ir.Call(name, coreStateType, tail)
	body := ir.Ite(ir.Eq(length, ir.IntLit(0)),
		ir.Call("init_state", coreStateType),
		ir.Call(nextStateName, coreStateType, append([]ir.Expr{recurse}, unpackOp(head)...)...))
	return ir.FnDecl(name, coreStateType, body, log)
}

// opsInOrderHelperFn recursively checks that every operation in restLog
// is causally after curOp and satisfies the precondition, mirroring
// aci.py/synthesize_crdt.py's ops_in_order_helper: true on an empty tail.
func opsInOrderHelperFn(name string, opT ir.Type, inOrder func(a, b []ir.Expr) ir.Expr, opPrecondition func(a []ir.Expr) ir.Expr) ir.Expr {
	curOp := ir.Var("cur_op", opT)
	restLog := ir.Var("rest_log", ir.ListT(opT))
	length := listLength(restLog)
	nextOp := listGet(restLog, ir.IntLit(0), opT)
	tail := listTail(restLog)
	recurse := ir.Call(name, ir.Bool(), nextOp, tail)
	cond := ir.And(opPrecondition(unpackOp(nextOp)), inOrder(unpackOp(curOp), unpackOp(nextOp)), recurse)
	body := ir.Ite(ir.Eq(length, ir.IntLit(0)), ir.BoolLit(true), cond)
	return ir.FnDecl(name, ir.Bool(), body, curOp, restLog)
}

// opsInOrderFn wraps opsInOrderHelperFn so the empty log trivially
// satisfies the causal-order invariant (spec.md §8's boundary case).
func opsInOrderFn(name, helperName string, opT ir.Type) ir.Expr {
	log := ir.Var("log", ir.ListT(opT))
	length := listLength(log)
	head := listGet(log, ir.IntLit(0), opT)
	tail := listTail(log)
	body := ir.Ite(ir.Eq(length, ir.IntLit(0)), ir.BoolLit(true), ir.Call(helperName, ir.Bool(), head, tail))
	return ir.FnDecl(name, ir.Bool(), body, log)
}

// opListInvariant is the op-log supported-command replacement used during
// the bounded phase: a state is "supported" iff its log respects causal
// order end-to-end, i.e. ops_in_order(log(s)).
func opListInvariant(s ir.Expr, k int, opsInOrderName string) ir.Expr {
	return ir.Call(opsInOrderName, ir.Bool(), logOf(s, k))
}
