// Package katara is the public entry point for the synthesis driver and
// structure search: it bundles the nine reference CRDT benchmarks
// _examples/original_source/tests/synthesize_crdt.py defines, plus the
// two convenience entry points (SynthesizeFixed for a known lattice
// structure, Search for the full structure search) every benchmark in
// this package's table-driven tests drives.
package katara

import (
	"context"

	"github.com/hydro-project/katara/internal/config"
	"github.com/hydro-project/katara/internal/lattice"
	"github.com/hydro-project/katara/internal/search"
	"github.com/hydro-project/katara/internal/synth"
)

// Benchmark bundles one reference CRDT design with the fixed lattice
// structure the original test harness pins it to (synthesize_crdt.py's
// per-benchmark "fixedLatticeType" entry, used whenever the caller asks
// for a known structure rather than a full search).
type Benchmark struct {
	Name           string
	Spec           *synth.Spec
	FixedStructure lattice.Structure
}

// SynthesizeFixed drives the synthesis refinement loop directly against
// b's fixed structure, skipping structure search entirely — the
// "fixed_structure" mode of synthesize_crdt.py's command-line harness.
func SynthesizeFixed(b Benchmark, backend synth.Backend, cfg config.RunConfig) (*synth.Result, error) {
	driver := synth.NewDriver(backend)
	return driver.Synthesize(cfg, b.Spec, b.FixedStructure, synth.DefaultGrammars())
}

// Search runs the full structure search over b's reference design,
// enumerating candidate lattice structures in increasing depth order
// rather than committing to b.FixedStructure. report may be nil to skip
// CSV logging.
func Search(ctx context.Context, b Benchmark, backend synth.Backend, cfg config.RunConfig, report *search.Report) ([]search.Finding, error) {
	coord := &search.Coordinator{
		Cfg:      cfg,
		Spec:     b.Spec,
		Grammars: synth.DefaultGrammars(),
		Backend:  backend,
		Report:   report,
		Registry: search.NewProcessRegistry(),
	}
	return coord.Search(ctx, b.Spec.NonIdempotent)
}
