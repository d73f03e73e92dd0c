// Command aci proves or refutes that a reference benchmark's next_state
// routine is commutative and idempotent (spec.md §6's "aci <basename>
// [c|i]").
package main

import (
	"os"

	"github.com/hydro-project/katara/cmd/aci/cmd"
)

func main() {
	os.Exit(cmd.Main())
}
