// Package cmd implements the aci command-line tool: spec.md §6's
// "aci <basename> [c|i]" interface, adapted to read basename out of the
// pkg/katara reference benchmark catalogue rather than a compiled
// tests/<basename>.ll file — this module carries no IR-lifting frontend
// (spec.md §1 Non-goals), so a benchmark name is the closest equivalent
// "compiled reference routine" handle it can accept from the command
// line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

type runFunction func(cmd *Command, args []string) error

func mkRunE(c *Command, f runFunction) func(*cobra.Command, []string) error {
	return func(cc *cobra.Command, args []string) error {
		c.Command = cc
		err := f(c, args)
		if err != nil {
			exitOnErr(c, err, true)
		}
		return err
	}
}

// Command mirrors cmd/katara/cmd.Command's shape (itself mirroring the
// teacher's cmd/cue/cmd.Command): an errWriter marks the run failed on
// any stderr write even when RunE itself returns nil.
type Command struct {
	*cobra.Command
	root   *cobra.Command
	hasErr bool
}

type errWriter Command

func (w *errWriter) Write(b []byte) (int, error) {
	c := (*Command)(w)
	c.hasErr = true
	return c.Command.OutOrStderr().Write(b)
}

func (c *Command) Stderr() io.Writer { return (*errWriter)(c) }

var ErrPrintedError = errors.New("aci: terminating because of errors")

type panicError struct{ Err error }

func exit() { panic(panicError{ErrPrintedError}) }

func exitOnErr(c *Command, err error, fatal bool) {
	if err == nil {
		return
	}
	fmt.Fprintln(c.Stderr(), err)
	if fatal {
		exit()
	}
}

func recoverError(err *error) {
	switch e := recover().(type) {
	case nil:
	case panicError:
		*err = e.Err
	default:
		panic(e)
	}
}

func newRootCmd() *Command {
	root := &cobra.Command{
		Use:           "aci <basename> [c|i]",
		Short:         "prove or refute that a reference routine's next_state is commutative and idempotent",
		Long:          `aci runs the commutativity and/or idempotence obligations against an external SMT-LIB 2 solver for a pkg/katara reference benchmark's next_state routine. With no second argument it runs both checks; "c" runs commutativity only, "i" runs idempotence only.`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c := &Command{Command: root, root: root}
	root.RunE = mkRunE(c, doACI)
	addGlobalFlags(root.PersistentFlags())
	return c
}

// Main runs the aci CLI and returns the process exit code.
func Main() int {
	if err := mainErr(context.Background(), os.Args[1:]); err != nil {
		if !errors.Is(err, ErrPrintedError) {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}
	return 0
}

func mainErr(ctx context.Context, args []string) (err error) {
	defer recoverError(&err)
	c := newRootCmd()
	c.root.SetArgs(args)
	if err := c.root.ExecuteContext(ctx); err != nil {
		return err
	}
	if c.hasErr {
		return ErrPrintedError
	}
	return nil
}
