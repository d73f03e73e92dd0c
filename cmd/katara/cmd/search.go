package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hydro-project/katara/internal/search"
	"github.com/hydro-project/katara/pkg/katara"
)

func newSearchCmd(c *Command) *cobra.Command {
	return &cobra.Command{
		Use:   "search <benchmark>",
		Short: "search candidate lattice structures in increasing depth order for a working replicated design",
		Args:  cobra.ExactArgs(1),
		RunE:  mkRunE(c, doSearch),
	}
}

func doSearch(cmd *Command, args []string) error {
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

	var report *search.Report
	if cfg.ReportPath != "" {
		report, err = search.NewReport(cfg.ReportPath)
		if err != nil {
			return fmt.Errorf("katara: opening report: %w", err)
		}
		defer report.Close()
	}

	verbose := flagVerbose.Bool(cmd) && isTerminal(cmd)

	findings, err := katara.Search(cmd.Context(), b, be, cfg, report)
	if err != nil {
		return fmt.Errorf("katara: searching %s: %w", b.Name, err)
	}

	for _, f := range findings {
		if verbose {
			fmt.Fprintf(cmd.OutOrStdout(), "uid=%s structure=%s attempts=%d\n", f.UID, f.Structure.Key(), f.Result.Attempts)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d successful structure(s)\n", b.Name, len(findings))
	return nil
}
