package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/output"
	"todolist/internal/store"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `todo` (no args) and `todo list [--search <q>]`.
type ListCmd struct {
	search string
}

// SetSearch sets the search query (for testing).
func (c *ListCmd) SetSearch(q string) {
	c.search = q
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "todo list [--search <text>]" }
func (c *ListCmd) NeedsStore() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.search, "s", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	total := st.Len()
	if total == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	if strings.TrimSpace(c.search) == "" {
		for i, task := range st.Tasks() {
			output.FormatTask(out, i+1, task)
		}
		output.FormatFooter(out, total)
		return exitcode.Success
	}

	matches := st.Search(c.search)
	if len(matches) == 0 {
		if !cfg.Quiet {
			fmt.Fprintf(out, "no tasks match: %s\n", c.search)
		}
		return exitcode.Success
	}
	// Numbers refer to positions in the full list so they work with done/edit/rm.
	for _, m := range matches {
		output.FormatTask(out, m.Index+1, m.Task)
	}
	output.FormatSearchFooter(out, len(matches), total)
	return exitcode.Success
}
