package testutil

import (
	"context"
	"slices"
	"sync"

	"todolist/internal/service"
)

// FakeCache is an in-memory cache.Cache with error injection.
type FakeCache struct {
	mu     sync.Mutex
	tasks  []service.Task
	writes int

	LoadErr    error
	ReplaceErr error
}

// NewFakeCache creates a FakeCache holding tasks.
func NewFakeCache(tasks ...service.Task) *FakeCache {
	return &FakeCache{tasks: slices.Clone(tasks)}
}

// LoadAll implements cache.Cache.
func (c *FakeCache) LoadAll(ctx context.Context) ([]service.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.LoadErr != nil {
		return nil, c.LoadErr
	}
	return slices.Clone(c.tasks), nil
}

// ReplaceAll implements cache.Cache.
func (c *FakeCache) ReplaceAll(ctx context.Context, tasks []service.Task) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ReplaceErr != nil {
		return c.ReplaceErr
	}
	c.tasks = slices.Clone(tasks)
	c.writes++
	return nil
}

// Snapshot returns the stored tasks.
func (c *FakeCache) Snapshot() []service.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.tasks)
}

// Writes returns the number of successful ReplaceAll calls.
func (c *FakeCache) Writes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writes
}
