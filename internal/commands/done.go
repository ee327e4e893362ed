package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/store"
)

func init() {
	Register(&DoneCmd{})
	Register(&UndoneCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string                   { return "done" }
func (c *DoneCmd) Aliases() []string              { return []string{"check"} }
func (c *DoneCmd) Synopsis() string               { return "Mark a task completed" }
func (c *DoneCmd) Usage() string                  { return "todo done <n>" }
func (c *DoneCmd) NeedsStore() bool               { return true }
func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	return runToggle(ctx, cfg, st, args, true, out, errOut)
}

// UndoneCmd marks a task open again.
type UndoneCmd struct{}

func (c *UndoneCmd) Name() string                   { return "undone" }
func (c *UndoneCmd) Aliases() []string              { return []string{"uncheck"} }
func (c *UndoneCmd) Synopsis() string               { return "Mark a task not completed" }
func (c *UndoneCmd) Usage() string                  { return "todo undone <n>" }
func (c *UndoneCmd) NeedsStore() bool               { return true }
func (c *UndoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UndoneCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	return runToggle(ctx, cfg, st, args, false, out, errOut)
}

// runToggle is the shared implementation for done and undone.
func runToggle(ctx context.Context, cfg *config.Config, st *store.Store, args []string, completed bool, out, errOut io.Writer) int {
	num, rest, code, ok := parseTaskNum(args, errOut)
	if !ok {
		return code
	}
	if len(rest) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", rest[0])
		return exitcode.UserError
	}

	if _, err := st.ToggleCompletion(ctx, num-1, completed); err != nil {
		return reportError(errOut, num, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
