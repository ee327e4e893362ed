// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"todolist/internal/service"
)

// ErrNotFound is returned when a task id is unknown to the fake.
var ErrNotFound = errors.New("not found")

// PageRequest records the arguments of one FetchPage call.
type PageRequest struct {
	Skip  int
	Limit int
}

// FakeService is an in-memory implementation of service.Service for testing.
// FetchPage pages over Remote; CreateTask and UpdateCompletion answer like
// the real API, which does not persist writes.
type FakeService struct {
	mu     sync.Mutex
	remote []service.Task

	fetchCalls  []PageRequest
	createCalls []string
	updateCalls []int

	// Error injection for testing
	FetchPageErr        error
	CreateTaskErr       error
	UpdateCompletionErr error

	// FetchPageFunc, when set, replaces the default paging.
	FetchPageFunc func(skip, limit int) ([]service.Task, error)

	// CreateResult and UpdateResult, when set, are returned verbatim.
	CreateResult *service.Task
	UpdateResult *service.Task

	// Started, when non-nil, receives a value each time FetchPage begins.
	Started chan struct{}

	// Gate, when non-nil, holds FetchPage until a value is received or
	// the context is done.
	Gate chan struct{}
}

// NewFakeService creates a FakeService whose remote collection holds tasks.
func NewFakeService(tasks ...service.Task) *FakeService {
	return &FakeService{remote: slices.Clone(tasks)}
}

// Seed appends n generated tasks with ids starting after the current maximum.
func (f *FakeService) Seed(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	next := f.maxIDLocked() + 1
	for i := 0; i < n; i++ {
		f.remote = append(f.remote, service.Task{
			ID:      next + i,
			Title:   fmt.Sprintf("Task %d", next+i),
			OwnerID: 1,
		})
	}
}

// FetchPage implements service.Service.
func (f *FakeService) FetchPage(ctx context.Context, skip, limit int) ([]service.Task, error) {
	f.mu.Lock()
	f.fetchCalls = append(f.fetchCalls, PageRequest{Skip: skip, Limit: limit})
	started, gate := f.Started, f.Gate
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", service.ErrNetwork, ctx.Err())
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FetchPageErr != nil {
		return nil, f.FetchPageErr
	}
	if f.FetchPageFunc != nil {
		return f.FetchPageFunc(skip, limit)
	}

	if skip >= len(f.remote) {
		return []service.Task{}, nil
	}
	end := min(skip+limit, len(f.remote))
	return slices.Clone(f.remote[skip:end]), nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, title string, completed bool, ownerID int) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls = append(f.createCalls, title)

	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	if f.CreateResult != nil {
		return *f.CreateResult, nil
	}
	return service.Task{
		ID:        f.maxIDLocked() + 1,
		Title:     title,
		Completed: completed,
		OwnerID:   ownerID,
	}, nil
}

// UpdateCompletion implements service.Service.
func (f *FakeService) UpdateCompletion(ctx context.Context, id int, completed bool) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls = append(f.updateCalls, id)

	if f.UpdateCompletionErr != nil {
		return service.Task{}, f.UpdateCompletionErr
	}
	if f.UpdateResult != nil {
		return *f.UpdateResult, nil
	}
	for _, t := range f.remote {
		if t.ID == id {
			t.Completed = completed
			return t, nil
		}
	}
	return service.Task{}, fmt.Errorf("%w: task %d: %w", service.ErrInvalidResponse, id, ErrNotFound)
}

// FetchCalls returns the FetchPage calls made so far.
func (f *FakeService) FetchCalls() []PageRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.fetchCalls)
}

// CreateCalls returns the titles passed to CreateTask.
func (f *FakeService) CreateCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.createCalls)
}

// UpdateCalls returns the ids passed to UpdateCompletion.
func (f *FakeService) UpdateCalls() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.updateCalls)
}

func (f *FakeService) maxIDLocked() int {
	highest := 0
	for _, t := range f.remote {
		if t.ID > highest {
			highest = t.ID
		}
	}
	return highest
}
