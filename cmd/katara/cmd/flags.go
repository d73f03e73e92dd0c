package cmd

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

// Common flags, named the way the teacher's cmd/cue/cmd/flags.go names
// its own (a flagName string constant plus typed accessors).
const (
	flagConfig           flagName = "config"
	flagMaxThreads       flagName = "max-threads"
	flagExitFirstSuccess flagName = "exit-first-success"
	flagUpToUID          flagName = "up-to-uid"
	flagSolverPath       flagName = "solver-path"
	flagReportPath       flagName = "report-path"
	flagVerbose          flagName = "verbose"
)

func addGlobalFlags(f *pflag.FlagSet) {
	f.String(string(flagConfig), "", "path to a YAML run-configuration file (overlays internal/config.Default())")
	f.Int(string(flagMaxThreads), 0, "worker cap for structure search (0 = runtime.NumCPU())")
	f.Bool(string(flagExitFirstSuccess), true, "cancel outstanding structure-search attempts after the first success")
	f.Int(string(flagUpToUID), 0, "cap the number of candidate structures considered (0 = unbounded)")
	f.String(string(flagSolverPath), "", "solver executable path, stored in the run configuration's SolverPath")
	f.String(string(flagReportPath), "", "CSV report path for a structure search run")
	f.BoolP(string(flagVerbose), "v", false, "after a structure search, print one line per successful structure (terminal output only)")
}

type flagName string

func (f flagName) Bool(cmd *Command) bool {
	v, _ := cmd.Flags().GetBool(string(f))
	return v
}

func (f flagName) String(cmd *Command) string {
	v, _ := cmd.Flags().GetString(string(f))
	return v
}

func (f flagName) Int(cmd *Command) int {
	v, _ := cmd.Flags().GetInt(string(f))
	return v
}

// isTerminal reports whether cmd's configured output stream is an
// interactive terminal — per-finding lines (uid/structure/attempts) are only
// worth emitting there; a redirected or piped run gets just the final
// report.
func isTerminal(cmd *Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
