package lattice

import (
	"github.com/hydro-project/katara/internal/dedup"
	"github.com/hydro-project/katara/internal/ir"
)

// GenLatticeTypes enumerates all lattices reachable by composition up to
// maxDepth: OrBool and MaxInt at depth 1; Set, Map and LexicalProduct
// introduced at depth >= 2 over inner lattices of depth-1. Ported from
// lattices.py's gen_lattice_types, including its pruning constraints
// (Map keys only from {OpaqueInt, NodeIDInt}; Set elements only from
// {Int, OpaqueInt}; MaxInt only over {Int, ClockInt, OpaqueInt}).
func GenLatticeTypes(maxDepth int) []Lattice {
	var out []Lattice
	if maxDepth == 1 {
		out = append(out, OrBool{})
	}
	for _, t := range ir.GenTypes(maxDepth) {
		if t.IsComparableInt() {
			out = append(out, NewMaxInt(t))
		}
	}
	if maxDepth > 1 {
		inner := GenLatticeTypes(maxDepth - 1)
		out = append(out, inner...)

		for _, t := range ir.GenTypes(maxDepth - 1) {
			if t.IsSetSupportedElem() {
				out = append(out, NewSet(t))
			}
		}

		for _, keyType := range ir.GenTypes(maxDepth - 1) {
			if !keyType.IsMapSupportedElem() {
				continue
			}
			for _, valueLattice := range GenLatticeTypes(maxDepth - 1) {
				out = append(out, NewMap(keyType, valueLattice))
			}
		}

		for _, a := range inner {
			for _, b := range inner {
				if a.Key() == b.Key() {
					continue // itertools.permutations excludes a pairing with itself
				}
				out = append(out, NewLexicalProduct(a, b))
			}
		}
	}
	return out
}

// GenStructures enumerates tuples of lattices in deduplicated
// combination-with-replacement order, widening the tuple size within a
// type-depth before advancing to the next depth — ported from
// lattices.py's gen_structures. Each distinct structure (by structural
// key) is yielded exactly once.
func GenStructures(maxDepth int) []Structure {
	seen := dedup.NewSeen()
	var out []Structure
	for curDepth := 1; curDepth <= maxDepth; curDepth++ {
		lattices := GenLatticeTypes(curDepth)
		for tupleSize := 1; tupleSize <= curDepth; tupleSize++ {
			combinationsWithReplacement(lattices, tupleSize, func(combo []Lattice) {
				st := Structure(append([]Lattice(nil), combo...))
				if !seen.Add(st.Key()) {
					out = append(out, st)
				}
			})
		}
	}
	return out
}

// combinationsWithReplacement calls emit once for every
// non-decreasing-index k-combination (with repetition) of items,
// mirroring itertools.combinations_with_replacement's iteration order.
func combinationsWithReplacement(items []Lattice, k int, emit func([]Lattice)) {
	if k == 0 {
		emit(nil)
		return
	}
	n := len(items)
	if n == 0 {
		return
	}
	indices := make([]int, k)
	combo := make([]Lattice, k)
	var rec func(pos, start int)
	rec = func(pos, start int) {
		if pos == k {
			emit(combo)
			return
		}
		for i := start; i < n; i++ {
			indices[pos] = i
			combo[pos] = items[i]
			rec(pos+1, i)
		}
	}
	rec(0, 0)
}

// IncreasingDepthStructures returns a channel yielding (baseDepth,
// structure) pairs of strictly increasing type-depth, for as long as the
// caller keeps receiving. This is the lazy, unbounded producer
// search.Coordinator consumes (spec.md §4.5's "possibly infinite
// sequence"), wrapping GenStructures with an ever-growing max-depth and,
// for non-idempotent reference routines, filtering to structures that
// carry a node id (spec.md §3, §8 scenario 4; the filter's status as a
// heuristic rather than a soundness property is spec.md §9's open
// question).
func IncreasingDepthStructures(ctxDone <-chan struct{}, nonIdempotent bool) <-chan StructureCandidate {
	out := make(chan StructureCandidate)
	go func() {
		defer close(out)
		emitted := dedup.NewSeen()
		for depth := 1; ; depth++ {
			for _, st := range GenStructures(depth) {
				if emitted.Add(st.Key()) {
					continue
				}
				if nonIdempotent && !st.HasNodeID() {
					continue
				}
				select {
				case out <- StructureCandidate{BaseDepth: depth, Structure: st}:
				case <-ctxDone:
					return
				}
			}
		}
	}()
	return out
}

// StructureCandidate pairs a candidate replicated-state shape with the
// grammar search depth it should be attempted at.
type StructureCandidate struct {
	BaseDepth int
	Structure Structure
}
