package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/output"
	"todolist/internal/store"
)

func init() {
	Register(&MoreCmd{})
}

// MoreCmd fetches the next page of tasks and prints it.
type MoreCmd struct{}

func (c *MoreCmd) Name() string      { return "more" }
func (c *MoreCmd) Aliases() []string { return []string{"next"} }
func (c *MoreCmd) Synopsis() string  { return "Fetch the next page of tasks" }
func (c *MoreCmd) Usage() string     { return "todo more" }
func (c *MoreCmd) NeedsStore() bool  { return true }

func (c *MoreCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *MoreCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	before := st.Len()
	n, err := st.FetchMore(ctx)
	if err != nil {
		return reportError(errOut, 0, err)
	}

	if n == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no more tasks")
		}
		return exitcode.Success
	}

	tasks := st.Tasks()
	for i := before; i < len(tasks); i++ {
		output.FormatTask(out, i+1, tasks[i])
	}
	output.FormatFooter(out, len(tasks))
	return exitcode.Success
}
