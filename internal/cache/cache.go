// Package cache persists the task collection between runs.
package cache

import (
	"context"

	"todolist/internal/service"
)

// Cache is the local durable copy of the task collection.
//
// ReplaceAll has full-replace semantics: after it returns nil, LoadAll
// yields exactly the given tasks in the given order. A failed ReplaceAll
// leaves the previous contents in place. Errors wrap service.ErrStorage.
type Cache interface {
	LoadAll(ctx context.Context) ([]service.Task, error)
	ReplaceAll(ctx context.Context, tasks []service.Task) error
}
