// Package reference models the reference-routine frontend collaborator
// spec.md §6 describes: an analysis object exposing a routine's typed
// arguments, return type, name, and a CPS-style call operation that
// inlines the routine into a larger verification-condition expression
// while allocating fresh variable names through a shared tracker.
package reference

import (
	"fmt"

	"github.com/hydro-project/katara/internal/ir"
)

// Tracker allocates fresh, collision-free variable names across a single
// verification-condition construction. Grounded on metalift's
// VariableTracker (referenced throughout synthesis.py and aci.py): every
// inlined routine call and every lattice merge wants its own scratch
// variables, and the same base name (e.g. "next_state_result") is reused
// at many call sites within one VC.
type Tracker struct {
	seen []ir.Expr
	used map[string]bool
}

func NewTracker() *Tracker { return &Tracker{used: map[string]bool{}} }

// Variable allocates a fresh Var of typ, named base or base_N for the
// smallest N making it unique within this tracker.
func (t *Tracker) Variable(base string, typ ir.Type) ir.Expr {
	name := t.freshName(base)
	v := ir.Var(name, typ)
	t.seen = append(t.seen, v)
	return v
}

func (t *Tracker) freshName(base string) string {
	if !t.used[base] {
		t.used[base] = true
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d", base, i)
		if !t.used[candidate] {
			t.used[candidate] = true
			return candidate
		}
	}
}

// Group returns a namespace that prefixes every variable it allocates,
// mirroring aci.py's tracker.group("op1") / tracker.group("op2") used to
// keep two inlinings of the same routine's arguments textually distinct.
func (t *Tracker) Group(prefix string) *Group { return &Group{tracker: t, prefix: prefix} }

// All returns every variable this tracker has allocated, in allocation
// order — the set passed to the SMT-LIB serializer as the VC's free
// variables.
func (t *Tracker) All() []ir.Expr { return t.seen }

type Group struct {
	tracker *Tracker
	prefix  string
}

func (g *Group) Variable(name string, typ ir.Type) ir.Expr {
	return g.tracker.Variable(g.prefix+"_"+name, typ)
}
