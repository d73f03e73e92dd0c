package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/hydro-project/katara/internal/aci"
	"github.com/hydro-project/katara/pkg/katara"
)

func doACI(cmd *Command, args []string) error {
	basename := args[0]
	mode := ""
	if len(args) == 2 {
		mode = args[1]
	}
	if mode != "" && mode != "c" && mode != "i" {
		return fmt.Errorf("aci: unknown mode %q, want \"c\" or \"i\"", mode)
	}

	b, err := findBenchmark(basename)
	if err != nil {
		return err
	}

	checker := aci.NewChecker(flagSolverPath.String(cmd))
	checker.ScratchDir = flagScratchDir.String(cmd)
	checker.TimeLimit = flagTimeLimit.Int(cmd)

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if mode == "" || mode == "c" {
		verdict, err := checker.CheckCommutativity(ctx, b.Spec.NextState)
		if err != nil {
			return fmt.Errorf("aci: checking commutativity of %s: %w", basename, err)
		}
		if verdict.Holds {
			fmt.Fprintln(out, "Actor is commutative")
		} else {
			printCommutativityCounterexample(out, verdict)
		}
	}

	if mode == "" || mode == "i" {
		verdict, err := checker.CheckIdempotence(ctx, b.Spec.NextState)
		if err != nil {
			return fmt.Errorf("aci: checking idempotence of %s: %w", basename, err)
		}
		if verdict.Holds {
			fmt.Fprintln(out, "Actor is Idempotent")
		} else {
			printIdempotenceCounterexample(out, verdict)
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
	return katara.Benchmark{}, fmt.Errorf("aci: unknown benchmark %q (see pkg/katara.Catalogue)", name)
}

func printCommutativityCounterexample(w io.Writer, v *aci.Verdict) {
	fmt.Fprintln(w, "Commutativity counterexample:")
	printGroup(w, "Operation 1", v.Counterexample, "op1_")
	printGroup(w, "Operation 2", v.Counterexample, "op2_")
	fmt.Fprintf(w, "  Initial state: %s\n", v.Counterexample["initial_state"])
	fmt.Fprintf(w, "  Actor 1 (op1 then op2): %s\n", v.Counterexample["afterState_0_op2"])
	fmt.Fprintf(w, "  Actor 2 (op2 then op1): %s\n", v.Counterexample["afterState_1_op1"])
}

func printIdempotenceCounterexample(w io.Writer, v *aci.Verdict) {
	fmt.Fprintln(w, "Idempotence counterexample:")
	printGroup(w, "Operation 1", v.Counterexample, "op_")
	fmt.Fprintf(w, "  Initial state: %s\n", v.Counterexample["initial_state"])
	fmt.Fprintf(w, "  Actor 1 (applied once): %s\n", v.Counterexample["afterState_op"])
	fmt.Fprintf(w, "  Actor 2 (applied twice): %s\n", v.Counterexample["afterState_op_op"])
}

func printGroup(w io.Writer, label string, cex map[string]string, prefix string) {
	var keys []string
	for k := range cex {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		return
	}
	fmt.Fprintf(w, "  %s:\n", label)
	for _, k := range keys {
		fmt.Fprintf(w, "    %s = %s\n", strings.TrimPrefix(k, prefix), cex[k])
	}
}
