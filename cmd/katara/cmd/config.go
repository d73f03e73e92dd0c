package cmd

import (
	"runtime"

	"github.com/hydro-project/katara/internal/config"
)

// runConfig builds the effective RunConfig for this invocation: a
// --config YAML file (or internal/config.Default()) overlaid with any
// explicitly-set flags, mirroring the teacher's convention of flags
// taking precedence over file-based configuration.
func runConfig(cmd *Command) (config.RunConfig, error) {
	cfg := config.Default()
	if path := flagConfig.String(cmd); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed(string(flagMaxThreads)) {
		cfg.MaxThreads = flagMaxThreads.Int(cmd)
		if cfg.MaxThreads == 0 {
			cfg.MaxThreads = runtime.NumCPU()
		}
	}
	if cmd.Flags().Changed(string(flagExitFirstSuccess)) {
		cfg.ExitFirstSuccess = flagExitFirstSuccess.Bool(cmd)
	}
	if cmd.Flags().Changed(string(flagUpToUID)) {
		cfg.UpToUID = flagUpToUID.Int(cmd)
	}
	if cmd.Flags().Changed(string(flagSolverPath)) {
		cfg.SolverPath = flagSolverPath.String(cmd)
	}
	if cmd.Flags().Changed(string(flagReportPath)) {
		cfg.ReportPath = flagReportPath.String(cmd)
	}
	return cfg, nil
}
