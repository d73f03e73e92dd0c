// Package cmd implements the katara command-line tool: structure-fixed
// and full structure-search synthesis runs over the reference CRDT
// catalogue in pkg/katara. Command/mkRunE/Main mirror the teacher's
// cmd/cue/cmd/root.go shape (errWriter capturing stderr writes to set a
// non-zero exit code, panic/recover instead of os.Exit for testability).
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

// Command wraps the active cobra.Command the way the teacher's Command
// does, adding an errWriter so any write to Stderr() marks the run as
// failed even when the underlying RunE itself returns nil (e.g. a
// synthesis outcome that prints a failure report but isn't itself a Go
// error).
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

// ErrPrintedError indicates error messages have already been written to
// stderr, so Main shouldn't print the error a second time.
var ErrPrintedError = errors.New("katara: terminating because of errors")

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
		Use:   "katara",
		Short: "katara synthesizes replicated CRDT designs from sequential reference routines",
		Long: `katara drives the bounded-verification/unbounded-invariant synthesis
loop over the reference CRDT catalogue (lww_register, g_set, 2p_set,
grow_only_counter, and friends): "katara list" names the catalogue,
"katara synth <benchmark>" runs the driver against that benchmark's
fixed lattice structure, and "katara search <benchmark>" runs the full
structure search instead.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c := &Command{Command: root, root: root}

	root.AddCommand(
		newListCmd(c),
		newSynthCmd(c),
		newSearchCmd(c),
	)
	addGlobalFlags(root.PersistentFlags())

	return c
}

// Main runs the katara CLI and returns the process exit code.
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
