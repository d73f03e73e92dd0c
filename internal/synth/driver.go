package synth

import (
	"errors"
	"fmt"

	"github.com/hydro-project/katara/internal/config"
	"github.com/hydro-project/katara/internal/ir"
	"github.com/hydro-project/katara/internal/kerrors"
	"github.com/hydro-project/katara/internal/lattice"
)

// Outcome names the three-way result spec.md §9 suggests modeling the
// refinement loop as an explicit state machine over.
type Outcome int

const (
	Synthesized Outcome = iota
	NeedLargerBound
	NeedInvariantRetry
)

func (o Outcome) String() string {
	switch o {
	case Synthesized:
		return "Synthesized"
	case NeedLargerBound:
		return "NeedLargerBound"
	case NeedInvariantRetry:
		return "NeedInvariantRetry"
	default:
		return "?"
	}
}

// Result is a completed synthesis run's output: one concrete FnDecl per
// grammar hole, plus the bound parameters the refinement loop settled on.
type Result struct {
	FnDecls        map[string]ir.Expr
	ListBound      int
	InvariantBoost int
	Attempts       int
}

// Driver runs synthesize_crdt's bounded/unbounded refinement loop against
// a Backend.
type Driver struct {
	Backend     Backend
	MaxAttempts int
}

func NewDriver(backend Backend) *Driver {
	return &Driver{Backend: backend, MaxAttempts: 20}
}

// Synthesize builds the verification condition from spec's reference
// routines, structure's candidate lattice structure, and grammars' five
// callbacks; invokes the backend; and drives the bounded (op-log) to
// unbounded (inductive invariant) refinement loop: a synthesis or
// verification failure in the bounded phase widens listBound, and one in
// the unbounded phase widens both listBound and invariantBoost, before
// the next attempt (spec.md §4.4, §9).
func (d *Driver) Synthesize(cfg config.RunConfig, spec *Spec, structure lattice.Structure, grammars Grammars) (*Result, error) {
	listBound := cfg.ListBound
	boost := cfg.InvariantBoost
	k := len(structure)
	opT := opType(spec.NextState)

	for attempt := 1; attempt <= d.MaxAttempts; attempt++ {
		boundedHoles, err := compileHoles(spec, structure, grammars, true, cfg.BaseDepth, 0)
		if err != nil {
			return nil, err
		}

		helperFn := opsInOrderHelperFn("ops_in_order_helper", opT, spec.InOrder, spec.OpPrecondition)
		wrapperFn := opsInOrderFn("ops_in_order", "ops_in_order_helper", opT)

		vc, vars := buildBoundedVC(spec, structure, boundedHoles, "ops_in_order")

		boundedResult, err := d.Backend.Synthesize(Request{
			Basename:   fmt.Sprintf("synth-uid%d-attempt%d-bounded", cfg.UpToUID, attempt),
			UID:        cfg.UpToUID,
			Vars:       vars,
			VC:         vc,
			Holes:      boundedHoles.all,
			AuxFnDecls: []ir.Expr{helperFn, wrapperFn},
			ListBound:  listBound,
		})
		if err != nil {
			var synthErr *kerrors.SynthesisFailedError
			var verifErr *kerrors.VerificationFailedError
			if errors.As(err, &synthErr) || errors.As(err, &verifErr) {
				listBound++
				continue
			}
			return nil, err
		}

		coreType := structure.IRType()
		narrowed := narrowResult(boundedResult, k, coreType)

		unboundedHoles, err := compileHoles(spec, structure, grammars, false, cfg.BaseDepth, boost)
		if err != nil {
			return nil, err
		}

		vc2, vars2 := buildUnboundedVC(spec, structure, unboundedHoles)
		aux := make([]ir.Expr, 0, len(narrowed))
		for _, fn := range narrowed {
			aux = append(aux, fn)
		}
		unboundedResult, err := d.Backend.Synthesize(Request{
			Basename:   fmt.Sprintf("synth-uid%d-attempt%d-unbounded", cfg.UpToUID, attempt),
			UID:        cfg.UpToUID,
			Vars:       vars2,
			VC:         vc2,
			Holes:      []ir.Expr{unboundedHoles.stateInvariant, unboundedHoles.supportedCommand},
			AuxFnDecls: aux,
		})
		if err != nil {
			var synthErr *kerrors.SynthesisFailedError
			var verifErr *kerrors.VerificationFailedError
			if errors.As(err, &synthErr) || errors.As(err, &verifErr) {
				listBound++
				boost++
				continue
			}
			return nil, err
		}

		final := map[string]ir.Expr{}
		for name, fn := range narrowed {
			final[name] = fn
		}
		for name, fn := range unboundedResult.FnDecls {
			final[name] = fn
		}
		return &Result{FnDecls: final, ListBound: listBound, InvariantBoost: boost, Attempts: attempt}, nil
	}

	return nil, fmt.Errorf("synth: exceeded %d refinement attempts without converging", d.MaxAttempts)
}

// narrowResult implements the body-rewrite pass between phases: each
// bounded-phase FnDecl that carries the trailing op-log in its state type
// has that component stripped from both its state-typed parameter and (for
// next_state/init_state, whose own return is a state) its return type,
// with every in-body reference to the old, wider parameter rewritten to
// the narrower one.
func narrowResult(result BackendResult, k int, coreType ir.Type) map[string]ir.Expr {
	out := make(map[string]ir.Expr, len(result.FnDecls))
	for name, fn := range result.FnDecls {
		out[name] = fn
	}
	if fn, ok := out["next_state"]; ok {
		fn = narrowParam(fn, 0, coreType)
		fn = narrowReturnTuple(fn, k, coreType)
		out["next_state"] = fn
	}
	if fn, ok := out["response"]; ok {
		out["response"] = narrowParam(fn, 0, coreType)
	}
	if fn, ok := out["equivalence"]; ok {
		out["equivalence"] = narrowParam(fn, 1, coreType)
	}
	if fn, ok := out["init_state"]; ok {
		out["init_state"] = narrowReturnTuple(fn, k, coreType)
	}
	return out
}

func narrowParam(fn ir.Expr, idx int, newType ir.Type) ir.Expr {
	params := append([]ir.Expr{}, fn.Args()...)
	oldVar := params[idx]
	newVar := ir.Var(oldVar.Name(), newType)
	newBody := fn.Body().Rewrite(map[string]ir.Expr{oldVar.Name(): newVar})
	params[idx] = newVar
	return ir.FnDecl(fn.Name(), fn.Type().Ret(), newBody, params...)
}

func narrowReturnTuple(fn ir.Expr, k int, newRetType ir.Type) ir.Expr {
	body := *fn.Body()
	newBody := body
	if body.Kind() == ir.ETuple {
		newBody = ir.Tuple(body.Args()[:k]...)
	}
	return ir.FnDecl(fn.Name(), newRetType, newBody, fn.Args()...)
}
