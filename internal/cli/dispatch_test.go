package cli_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todolist/internal/cache"
	"todolist/internal/cli"
	"todolist/internal/commands"
	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/service"
	"todolist/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}
}

// testCaches creates a cache factory that returns the given FakeCache.
func testCaches(c *testutil.FakeCache) cli.CacheFactory {
	return func(cfg *config.Config) (cache.Cache, func() error, error) {
		return c, func() error { return nil }, nil
	}
}

// run dispatches args against an empty config directory.
func run(t *testing.T, d *cli.Dispatcher, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, key := range []string{config.EnvBaseURL, config.EnvPageSize, config.EnvTimeout, config.EnvOwnerID, config.EnvCache, config.EnvToken} {
		t.Setenv(key, "")
	}

	var stdout, stderr bytes.Buffer
	code := d.Run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc), nil)

	code, _, stderr := run(t, dispatcher, "unknowncmd")

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: unknown command: unknowncmd\n", stderr)
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc), nil)

	code, _, stderr := run(t, dispatcher, "--quiet")

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: unknown command: --quiet\n", stderr)
}

func TestDispatcher_HelpCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil, nil)

	code, stdout, stderr := run(t, dispatcher, "help")

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, "Usage:")
	assert.Contains(t, stdout, "todo done <n>")
}

func TestDispatcher_VersionCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil, nil)

	code, stdout, stderr := run(t, dispatcher, "version")

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "todo 0.1.0\n", stdout)
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil, nil)

	code, _, stderr := run(t, dispatcher, "help", "--unknown")

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: unknown flag: -unknown\n", stderr)
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil, nil)

	code, _, stderr := run(t, dispatcher, "list", "--search")

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: flag needs an argument: -search\n", stderr)
}

func TestDispatcher_NoArgsListsTasks(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed(2)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc), nil)

	code, stdout, stderr := run(t, dispatcher)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, "   1  [ ] Task 1\n")
	assert.Contains(t, stdout, "   2  [ ] Task 2\n")
	assert.Contains(t, stdout, "2 tasks\n")
}

func TestDispatcher_HydratesFromCache(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.FetchPageErr = errors.New("should not be called")
	fc := testutil.NewFakeCache(service.Task{ID: 7, Title: "Cached", Completed: true, OwnerID: 1})
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc), testCaches(fc))

	code, stdout, _ := run(t, dispatcher, "list")

	assert.Equal(t, exitcode.Success, code)
	assert.Contains(t, stdout, "   1  [x] Cached\n")
	assert.Empty(t, svc.FetchCalls())
}

func TestDispatcher_NoCacheFlagSkipsCache(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed(1)
	fc := testutil.NewFakeCache(service.Task{ID: 7, Title: "Cached", OwnerID: 1})
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc), testCaches(fc))

	code, stdout, _ := run(t, dispatcher, "list", "--no-cache")

	assert.Equal(t, exitcode.Success, code)
	assert.Contains(t, stdout, "Task 1")
	assert.NotContains(t, stdout, "Cached")
	assert.Equal(t, 0, fc.Writes())
}

func TestDispatcher_CacheOpenFailureIsNotFatal(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed(1)
	failing := func(cfg *config.Config) (cache.Cache, func() error, error) {
		return nil, nil, fmt.Errorf("%w: disk full", service.ErrStorage)
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc), failing)

	code, stdout, stderr := run(t, dispatcher, "list")

	assert.Equal(t, exitcode.Success, code)
	assert.Contains(t, stdout, "Task 1")
	assert.Contains(t, stderr, "cache unavailable")
}

func TestDispatcher_HydrateFailure(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.FetchPageErr = fmt.Errorf("%w: connection refused", service.ErrNetwork)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc), nil)

	code, stdout, stderr := run(t, dispatcher, "list", "--quiet")

	assert.Equal(t, exitcode.BackendError, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "error: backend error: hydrate: network error")
}

func TestDispatcher_FactoryError(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return nil, fmt.Errorf("%w: missing host", service.ErrInvalidURL)
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory, nil)

	code, _, stderr := run(t, dispatcher, "list")

	assert.Equal(t, exitcode.ConfigError, code)
	assert.Contains(t, stderr, "error: config error:")
}

func TestDispatcher_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte("page_size: -1\n"), 0600))
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()), nil)

	code, _, stderr := run(t, dispatcher, "list", "--config", dir)

	assert.Equal(t, exitcode.ConfigError, code)
	assert.Equal(t, "error: config error: invalid page size: -1\n", stderr)
}

func TestDispatcher_PageSizeFromConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte("page_size: 2\n"), 0600))
	svc := testutil.NewFakeService()
	svc.Seed(5)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc), nil)

	code, _, _ := run(t, dispatcher, "list", "--config", dir)

	require.Equal(t, exitcode.Success, code)
	assert.Equal(t, []testutil.PageRequest{{Skip: 0, Limit: 2}}, svc.FetchCalls())
}

func TestDispatcher_MoreUsesCachedOffset(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed(4)
	fc := testutil.NewFakeCache(
		service.Task{ID: 1, Title: "Task 1", OwnerID: 1},
		service.Task{ID: 2, Title: "Task 2", OwnerID: 1},
	)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc), testCaches(fc))

	code, stdout, _ := run(t, dispatcher, "more")

	require.Equal(t, exitcode.Success, code)
	assert.Equal(t, []testutil.PageRequest{{Skip: 2, Limit: 30}}, svc.FetchCalls())
	assert.Contains(t, stdout, "   3  [ ] Task 3\n")
	assert.Contains(t, stdout, "   4  [ ] Task 4\n")
	assert.Len(t, fc.Snapshot(), 4)
}

func TestDispatcher_DonePersists(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed(2)
	fc := testutil.NewFakeCache()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc), testCaches(fc))

	code, stdout, stderr := run(t, dispatcher, "done", "2")

	require.Equal(t, exitcode.Success, code, stderr)
	assert.Equal(t, "ok\n", stdout)
	snap := fc.Snapshot()
	require.Len(t, snap, 2)
	assert.False(t, snap[0].Completed)
	assert.True(t, snap[1].Completed)
}

func TestDispatcher_QuietSuppressesOK(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed(1)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc), nil)

	code, stdout, stderr := run(t, dispatcher, "rm", "--quiet", "1")

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
}

func TestDispatcher_DebugLogsToStderr(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed(1)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc), nil)

	code, _, stderr := run(t, dispatcher, "list", "--debug")

	assert.Equal(t, exitcode.Success, code)
	assert.Contains(t, stderr, "hydrated from remote")
}
