// Package main is the entry point for the todo CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"todolist/internal/backend/todoapi"
	"todolist/internal/cache"
	"todolist/internal/cli"
	"todolist/internal/commands"
	"todolist/internal/config"
	"todolist/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return todoapi.New(ctx, cfg)
	}

	caches := func(cfg *config.Config) (cache.Cache, func() error, error) {
		if err := cfg.EnsureDir(); err != nil {
			return nil, nil, err
		}
		db, err := cache.OpenSQLite(cfg.CachePath())
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory, caches)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
