// Package service defines the backend-agnostic contract for task operations.
package service

// Task represents a single to-do record.
// JSON field names follow the remote API ("todo", "userId").
type Task struct {
	ID        int    `json:"id"`
	Title     string `json:"todo"`
	Completed bool   `json:"completed"`
	OwnerID   int    `json:"userId"`
}
