package cmd

import (
	"fmt"

	"github.com/hydro-project/katara/internal/synth"
)

// backend is the synthesis Backend this binary dispatches to. synth.Backend
// is deliberately left abstract by this module (SPEC_FULL.md §D: "the full
// CRDT-synthesis backend remains an interface with no bundled
// implementation") — an embedder links a real program-synthesis engine in
// by calling SetBackend from their own main before cmd.Main(), the same
// way the teacher's cmd/cue is itself just one assembly of the cue
// package's pieces rather than the only possible one.
var backend synth.Backend

// SetBackend registers the synth.Backend the synth/search subcommands
// dispatch to. Must be called before Main.
func SetBackend(b synth.Backend) { backend = b }

func requireBackend() (synth.Backend, error) {
	if backend == nil {
		return nil, fmt.Errorf("katara: no synthesis backend registered (call cmd.SetBackend before cmd.Main)")
	}
	return backend, nil
}
