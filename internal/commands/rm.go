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
	Register(&RmCmd{})
}

// RmCmd implements the rm command. Deletion is local to this device.
type RmCmd struct{}

func (c *RmCmd) Name() string                   { return "rm" }
func (c *RmCmd) Aliases() []string              { return []string{"delete"} }
func (c *RmCmd) Synopsis() string               { return "Delete a task" }
func (c *RmCmd) Usage() string                  { return "todo rm <n>" }
func (c *RmCmd) NeedsStore() bool               { return true }
func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	num, rest, code, ok := parseTaskNum(args, errOut)
	if !ok {
		return code
	}
	if len(rest) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", rest[0])
		return exitcode.UserError
	}

	if err := st.Delete(ctx, num-1); err != nil {
		return reportError(errOut, num, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
