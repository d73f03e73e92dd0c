// Package config loads driver run configuration from YAML, the format
// convention the example corpus favours (the teacher's own go.mod
// already depends on gopkg.in/yaml.v3).
package config

import (
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// RunConfig configures one invocation of the synthesis driver or the
// structure search coordinator. Defaults match
// _examples/original_source/katara/tests/synthesize_crdt.py's benchmark
// table: baseDepth=2, listBound starting at 1, one worker per CPU.
type RunConfig struct {
	BaseDepth       int    `yaml:"baseDepth"`
	ListBound       int    `yaml:"listBound"`
	InvariantBoost  int    `yaml:"invariantBoost"`
	MaxThreads      int    `yaml:"maxThreads"`
	ExitFirstSuccess bool  `yaml:"exitFirstSuccess"`
	UpToUID         int    `yaml:"upToUid"`
	SolverPath      string `yaml:"solverPath"`
	ReportPath      string `yaml:"reportPath"`
	ScratchDir      string `yaml:"scratchDir"`
}

// Default returns the driver's baseline configuration.
func Default() RunConfig {
	return RunConfig{
		BaseDepth:        2,
		ListBound:        1,
		InvariantBoost:   0,
		MaxThreads:       runtime.NumCPU(),
		ExitFirstSuccess: true,
		UpToUID:          0,
		SolverPath:       "cvc5",
		ReportPath:       "./synthesisLogs/report.csv",
		ScratchDir:       "./synthesisLogs",
	}
}

// Load reads a RunConfig from a YAML file at path, overlaying it onto
// Default() so an omitted field keeps its default rather than becoming
// the zero value.
func Load(path string) (RunConfig, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
