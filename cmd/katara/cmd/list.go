package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hydro-project/katara/pkg/katara"
)

func newListCmd(c *Command) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list the reference CRDT benchmarks and their fixed lattice structures",
		RunE:  mkRunE(c, doList),
	}
}

func doList(cmd *Command, args []string) error {
	for _, b := range katara.Catalogue() {
		fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s\n", b.Name, b.FixedStructure.Key())
	}
	return nil
}
