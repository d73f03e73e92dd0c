package search

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hydro-project/katara/internal/config"
	"github.com/hydro-project/katara/internal/lattice"
	"github.com/hydro-project/katara/internal/synth"
)

// Finding is one structure the synthesis driver succeeded on.
type Finding struct {
	UID       string
	Structure lattice.Structure
	Result    *synth.Result
}

// Coordinator runs search_crdt_structures: enumerate candidate lattice
// structures in increasing depth order, dry-run gate each one against the
// grammar builder, and fan the survivors out across a bounded worker pool
// of full synthesis driver attempts.
type Coordinator struct {
	Cfg      config.RunConfig
	Spec     *synth.Spec
	Grammars synth.Grammars
	Backend  synth.Backend
	Report   *Report
	Registry *ProcessRegistry
}

// Search consumes lattice.IncreasingDepthStructures, capping in-flight
// driver attempts at max(maxThreads/2, 1) — half of MaxThreads is held
// back for the solver subprocesses each attempt itself spawns — and
// stops handing out candidates after the first success when
// Cfg.ExitFirstSuccess is set; attempts already running are waited for,
// and every subprocess still in Registry is killed before Search
// returns. A candidate that fails the dry-run gate is recorded as a
// failed row without taking a worker slot. nonIdempotent threads through to
// IncreasingDepthStructures, restricting the search to has_node_id
// structures when the candidate's next_state isn't itself idempotent
// (spec.md §9: "a benchmark-level hint, not a soundness property").
func (c *Coordinator) Search(ctx context.Context, nonIdempotent bool) ([]Finding, error) {
	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if c.Registry != nil {
		defer c.Registry.KillAll()
	}

	maxInFlight := c.Cfg.MaxThreads / 2
	if maxInFlight < 1 {
		maxInFlight = 1
	}
	sem := make(chan struct{}, maxInFlight)

	structures := lattice.IncreasingDepthStructures(ctx.Done(), nonIdempotent)

	var (
		mu       sync.Mutex
		findings []Finding
		wg       sync.WaitGroup
	)

	considered := 0
	for cand := range structures {
		if c.Cfg.UpToUID > 0 && considered >= c.Cfg.UpToUID {
			break
		}
		considered++
		structure := cand.Structure

		if err := synth.DryRunGrammars(c.Spec, structure, c.Grammars, c.Cfg.BaseDepth); err != nil {
			c.record(uuid.NewString(), time.Now(), structure, 0, false)
			continue
		}

		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			wg.Wait()
			return findings, parent.Err()
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			c.attempt(structure, &mu, &findings, cancel)
		}()
	}
	wg.Wait()
	return findings, nil
}

func (c *Coordinator) attempt(structure lattice.Structure, mu *sync.Mutex, findings *[]Finding, cancel context.CancelFunc) {
	uid := uuid.NewString()
	start := time.Now()

	driverCfg := c.Cfg
	driver := synth.NewDriver(c.Backend)
	result, err := driver.Synthesize(driverCfg, c.Spec, structure, c.Grammars)
	if err != nil {
		c.record(uid, start, structure, 0, false)
		return
	}

	c.record(uid, start, structure, result.ListBound, true)

	mu.Lock()
	*findings = append(*findings, Finding{UID: uid, Structure: structure, Result: result})
	mu.Unlock()

	if c.Cfg.ExitFirstSuccess {
		cancel()
	}
}

func (c *Coordinator) record(uid string, start time.Time, structure lattice.Structure, listBound int, success bool) {
	if c.Report == nil {
		return
	}
	_ = c.Report.Row(uid, start, structure.Key(), listBound, success)
}
