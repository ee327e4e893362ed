package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"todolist/internal/cache"
	"todolist/internal/commands"
	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/logging"
	"todolist/internal/service"
	"todolist/internal/store"
)

// ServiceFactory creates a Service from config.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// CacheFactory opens the durable cache for cfg. The returned close
// function is called once the command finishes.
type CacheFactory func(cfg *config.Config) (cache.Cache, func() error, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
	caches   CacheFactory
}

// NewDispatcher creates a new dispatcher with the given registry and factories.
// caches may be nil to always run without a durable cache.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory, caches CacheFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
		caches:   caches,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> dispatch to "list" command with no args
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var configDir string
	var quiet, debug, noCache bool

	fs.StringVar(&configDir, "config", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")
	fs.BoolVar(&noCache, "no-cache", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flagError(err))
		return exitcode.UserError
	}

	// A leading dash left after parsing is a flag the set did not consume.
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	if !cmd.NeedsStore() {
		cfg := config.New(configDir)
		cfg.Quiet = quiet
		cfg.Debug = debug
		return cmd.Run(ctx, cfg, nil, positionalArgs, out, errOut)
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: config error: %s\n", err)
		return exitcode.ConfigError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug
	cfg.NoCache = cfg.NoCache || noCache

	log := logging.New(errOut, cfg.Debug, cfg.Quiet)

	if d.factory == nil {
		fmt.Fprintln(errOut, "error: backend error: no service configured")
		return exitcode.BackendError
	}
	svc, err := d.factory(ctx, cfg)
	if err != nil {
		if errors.Is(err, service.ErrInvalidURL) {
			fmt.Fprintf(errOut, "error: config error: %s\n", err)
			return exitcode.ConfigError
		}
		fmt.Fprintf(errOut, "error: backend error: %s\n", err)
		return exitcode.BackendError
	}

	var c cache.Cache
	if !cfg.NoCache && d.caches != nil {
		opened, closeCache, err := d.caches(cfg)
		if err != nil {
			log.Warn().Err(err).Msg("cache unavailable, continuing without it")
		} else {
			c = opened
			defer func() {
				if err := closeCache(); err != nil {
					log.Warn().Err(err).Msg("failed to close cache")
				}
			}()
		}
	}

	st := store.New(svc, c,
		store.WithLogger(log),
		store.WithPageSize(cfg.PageSize),
		store.WithOwnerID(cfg.OwnerID),
	)
	defer st.Close()

	if err := st.Hydrate(ctx); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %s\n", err)
		return exitcode.BackendError
	}

	return cmd.Run(ctx, cfg, st, positionalArgs, out, errOut)
}

// flagError rewrites flag package parse errors into the CLI's wording.
func flagError(err error) string {
	errStr := err.Error()

	if strings.HasPrefix(errStr, "flag needs an argument:") {
		name := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
		return "flag needs an argument: " + name
	}
	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		return "unknown flag: " + strings.TrimPrefix(errStr, "flag provided but not defined: ")
	}
	return errStr
}
