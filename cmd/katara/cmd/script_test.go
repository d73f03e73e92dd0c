package cmd_test

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/hydro-project/katara/cmd/katara/cmd"
)

// TestMain lets testscript re-exec this test binary as "katara" inside
// each script, the same harness the teacher uses for cmd/cue
// (cmd/cue/cmd/script_test.go's TestScript), minus the CUE-specific
// module-proxy setup this CLI has no equivalent of.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"katara": cmd.Main,
	}))
}

func TestScript(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
	})
}
