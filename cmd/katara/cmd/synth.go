package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hydro-project/katara/pkg/katara"
)

func newSynthCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "synth <benchmark>",
		Short: "synthesize a replicated design against a benchmark's fixed lattice structure",
		Args:  cobra.ExactArgs(1),
		RunE:  mkRunE(c, doSynth),
	}
	return cmd
}

func doSynth(cmd *Command, args []string) error {
	b, err := findBenchmark(args[0])
	if err != nil {
		return err
	}

	be, err := requireBackend()
	if err != nil {
		return err
	}

	cfg, err := runConfig(cmd)
	if err != nil {
		return err
	}

	result, err := katara.SynthesizeFixed(b, be, cfg)
	if err != nil {
		return fmt.Errorf("katara: synthesizing %s: %w", b.Name, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: synthesized in %d attempt(s), listBound=%d, invariantBoost=%d\n",
		b.Name, result.Attempts, result.ListBound, result.InvariantBoost)
	for _, name := range []string{"init_state", "next_state", "response", "equivalence", "state_invariant", "supported_command"} {
		if fn, ok := result.FnDecls[name]; ok {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s := %s\n", name, fn.String())
		}
	}
	return nil
}

func findBenchmark(name string) (katara.Benchmark, error) {
	for _, b := range katara.Catalogue() {
		if b.Name == name {
			return b, nil
		}
	}
	return katara.Benchmark{}, fmt.Errorf("katara: unknown benchmark %q (see \"katara list\")", name)
}
