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
	Register(&EditCmd{})
}

// EditCmd replaces a task's title. Edits stay local.
type EditCmd struct{}

func (c *EditCmd) Name() string                   { return "edit" }
func (c *EditCmd) Aliases() []string              { return []string{"rename"} }
func (c *EditCmd) Synopsis() string               { return "Change a task's title" }
func (c *EditCmd) Usage() string                  { return "todo edit <n> <title...>" }
func (c *EditCmd) NeedsStore() bool               { return true }
func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	num, rest, code, ok := parseTaskNum(args, errOut)
	if !ok {
		return code
	}

	title := strings.Join(rest, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	if err := st.EditTitle(ctx, num-1, title); err != nil {
		return reportError(errOut, num, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
