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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string                   { return "help" }
func (c *HelpCmd) Aliases() []string              { return nil }
func (c *HelpCmd) Synopsis() string               { return "Print usage" }
func (c *HelpCmd) Usage() string                  { return "todo help" }
func (c *HelpCmd) NeedsStore() bool               { return false }
func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintf(out, "  %-32s %s\n", "todo", "List tasks")
	for _, cmd := range DefaultRegistry.All() {
		fmt.Fprintf(out, "  %-32s %s\n", cmd.Usage(), cmd.Synopsis())
	}
	fmt.Fprint(out, helpFooter)
	return exitcode.Success
}

const helpFooter = `
Task numbers are the 1-based positions shown by "todo list".

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
  --no-cache       Do not read or write the local cache
`
