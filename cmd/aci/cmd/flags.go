package cmd

import "github.com/spf13/pflag"

const (
	flagSolverPath flagName = "solver-path"
	flagScratchDir flagName = "scratch-dir"
	flagTimeLimit  flagName = "tlimit"
)

func addGlobalFlags(f *pflag.FlagSet) {
	f.String(string(flagSolverPath), "cvc5", "SMT-LIB 2 solver executable")
	f.String(string(flagScratchDir), "./synthesisLogs", "directory for the .smt scratch file")
	f.Int(string(flagTimeLimit), 100000, "solver --tlimit in milliseconds")
}

type flagName string

func (f flagName) String(cmd *Command) string {
	v, _ := cmd.Flags().GetString(string(f))
	return v
}

func (f flagName) Int(cmd *Command) int {
	v, _ := cmd.Flags().GetInt(string(f))
	return v
}
