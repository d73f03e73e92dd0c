package katara

import (
	"github.com/hydro-project/katara/internal/ir"
	"github.com/hydro-project/katara/internal/reference"
)

// The reference designs below mirror synthesize_crdt.py's four
// "ll_name" sequential implementations: each is a plain, non-CRDT
// design (a flag, a register, a set, a counter) that behaves correctly
// only because its calls arrive in the one true issue order. Driving
// synth.Driver against one of these plus a candidate lattice structure
// discharges "is there a replicated design equivalent to this sequential
// one, for every causally-consistent op interleaving ≺ allows".

// sequentialFlag: state is the last-applied EnumInt action (1 = enable,
// 0 = disable); the trailing clock argument only matters to ≺, not to
// the reference's own transition. Backs both flag_dw and flag_ew, which
// differ only in ≺ and in the fixed lattice structure.
func sequentialFlag() (init, next, resp reference.Routine) {
	s := ir.Var("s", ir.EnumInt())
	action := ir.Var("action", ir.EnumInt())
	clock := ir.Var("clock", ir.ClockInt())

	init = reference.NewExprRoutine("init_state", ir.EnumInt(), ir.EnumLit(0))
	next = reference.NewExprRoutine("next_state", ir.EnumInt(), action, s, action, clock)
	resp = reference.NewExprRoutine("response", ir.EnumInt(), s, s)
	return
}

// sequentialRegister: state is the last-written OpaqueInt value; the
// trailing clock exists only to order concurrent writes. Backs
// lww_register.
func sequentialRegister() (init, next, resp reference.Routine) {
	s := ir.Var("s", ir.OpaqueInt())
	value := ir.Var("value", ir.OpaqueInt())
	clock := ir.Var("clock", ir.ClockInt())

	init = reference.NewExprRoutine("init_state", ir.OpaqueInt(), ir.Lit(int64(0), ir.OpaqueInt()))
	next = reference.NewExprRoutine("next_state", ir.OpaqueInt(), value, s, value, clock)
	resp = reference.NewExprRoutine("response", ir.OpaqueInt(), s, s)
	return
}

// sequential1: a real insert/delete Set<OpaqueInt>. action 1 = insert, 2
// = delete. withClock additionally accepts (and ignores) a trailing
// ClockInt argument, for add_wins_set/remove_wins_set which need the
// clock only to order concurrent inserts and deletes. Backs g_set,
// 2p_set, add_wins_set, remove_wins_set.
func sequential1(withClock bool) (init, next, resp reference.Routine) {
	elemT := ir.OpaqueInt()
	setT := ir.SetT(elemT)

	s := ir.Var("s", setT)
	action := ir.Var("action", ir.EnumInt())
	elem := ir.Var("elem", elemT)

	inserted := ir.Call("set-insert", setT, s, elem)
	deleted := ir.Call("set-minus", setT, s, ir.Call("set-singleton", setT, elem))
	nextBody := ir.Ite(ir.Eq(action, ir.EnumLit(1)), inserted, deleted)

	queryElem := ir.Var("query_elem", elemT)
	respBody := ir.Ite(ir.Call("set-member", ir.Bool(), queryElem, s), ir.EnumLit(1), ir.EnumLit(0))

	init = reference.NewExprRoutine("init_state", setT, ir.Call("set-create", setT))
	if withClock {
		clock := ir.Var("clock", ir.ClockInt())
		next = reference.NewExprRoutine("next_state", setT, nextBody, s, action, elem, clock)
	} else {
		next = reference.NewExprRoutine("next_state", setT, nextBody, s, action, elem)
	}
	resp = reference.NewExprRoutine("response", ir.EnumInt(), respBody, s, queryElem)
	return
}

// sequential2: a plain Int counter. action 1 = increment, 2 = decrement;
// the node-id argument exists only so the replicated structure can key a
// per-node Map, and is unused by the sequential reference itself. Backs
// grow_only_counter and general_counter.
func sequential2() (init, next, resp reference.Routine) {
	s := ir.Var("s", ir.Int())
	action := ir.Var("action", ir.EnumInt())
	node := ir.Var("node", ir.NodeIDInt())

	nextBody := ir.Ite(ir.Eq(action, ir.EnumLit(1)), ir.Add(s, ir.IntLit(1)), ir.Sub(s, ir.IntLit(1)))

	init = reference.NewExprRoutine("init_state", ir.Int(), ir.IntLit(0))
	next = reference.NewExprRoutine("next_state", ir.Int(), nextBody, s, action, node)
	resp = reference.NewExprRoutine("response", ir.Int(), s, s)
	return
}
