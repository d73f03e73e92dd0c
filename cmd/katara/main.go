// Command katara drives synthesize_crdt over the reference CRDT
// benchmark catalogue: "katara list", "katara synth <benchmark>",
// "katara search <benchmark>".
package main

import (
	"os"

	"github.com/hydro-project/katara/cmd/katara/cmd"
)

func main() {
	os.Exit(cmd.Main())
}
