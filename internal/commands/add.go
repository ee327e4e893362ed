package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/store"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string                   { return "add" }
func (c *AddCmd) Aliases() []string              { return []string{"create"} }
func (c *AddCmd) Synopsis() string               { return "Create a task" }
func (c *AddCmd) Usage() string                  { return "todo add <title...>" }
func (c *AddCmd) NeedsStore() bool               { return true }
func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	task, err := st.Add(ctx, title)
	if err != nil {
		return reportError(errOut, 0, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "ok: added #%d (id %d)\n", st.Len(), task.ID)
	}
	return exitcode.Success
}
