// Package service defines the backend-agnostic contract for task operations.
package service

import "context"

// Service defines the interface for remote task operations.
// Implementations hold no mutable state between calls, so a test double
// can be substituted freely.
type Service interface {
	// FetchPage returns at most limit tasks starting at the zero-based
	// offset skip, in the remote collection's stable order.
	FetchPage(ctx context.Context, skip, limit int) ([]Task, error)

	// CreateTask creates a task and returns it with its server-assigned ID.
	CreateTask(ctx context.Context, title string, completed bool, ownerID int) (Task, error)

	// UpdateCompletion transmits only the completed field and returns the
	// server's version of the task.
	UpdateCompletion(ctx context.Context, id int, completed bool) (Task, error)
}
