package synth

import "github.com/hydro-project/katara/internal/lattice"

// DryRunGrammars cheaply rejects a candidate structure before a structure
// search worker commits to the full bounded/unbounded refinement loop: it
// runs only the grammar-building half of the bounded phase, never
// invoking a Backend, and reports the first GrammarHoleError encountered
// (spec.md §5's dry-run gate, ported from search_crdt_structures.py's
// use of a trial auto_grammar call to skip unproductive structures).
func DryRunGrammars(spec *Spec, structure lattice.Structure, grammars Grammars, depth int) error {
	_, err := compileHoles(spec, structure, grammars, true, depth, 0)
	return err
}
