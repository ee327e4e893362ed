// Package store owns the in-memory task collection and keeps it
// consistent with the remote service and the local durable cache.
//
// All state lives behind one mutex. Network calls run without holding it,
// so the collection stays readable in its last settled state while a
// request is in flight. At most one hydration and one pagination fetch run
// at a time; overlapping requests fail with service.ErrFetchInFlight.
package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"todolist/internal/cache"
	"todolist/internal/service"
)

// DefaultPageSize is the number of tasks requested per page.
const DefaultPageSize = 30

// State is the lifecycle state of a Store.
type State int

const (
	Idle State = iota
	Hydrating
	Ready
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Hydrating:
		return "hydrating"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Store is the single authority over the current task collection.
type Store struct {
	svc      service.Service
	cache    cache.Cache
	log      zerolog.Logger
	pageSize int
	ownerID  int

	mu     sync.Mutex
	tasks  []service.Task
	state  State
	closed bool

	hydrating  atomic.Bool
	paginating atomic.Bool

	// persistMu serializes cache writes; each write takes the snapshot
	// current at the time it runs, so the last write reflects the
	// latest collection.
	persistMu sync.Mutex

	obsMu     sync.Mutex
	observers []observer
	nextObs   int
}

// Option configures a Store.
type Option func(*Store)

// WithPageSize sets the pagination limit. Values below 1 are ignored.
func WithPageSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithOwnerID sets the owner id sent with created tasks.
func WithOwnerID(id int) Option {
	return func(s *Store) { s.ownerID = id }
}

// New creates an idle Store. c may be nil to run without a durable cache.
func New(svc service.Service, c cache.Cache, opts ...Option) *Store {
	s := &Store{
		svc:      svc,
		cache:    c,
		log:      zerolog.Nop(),
		pageSize: DefaultPageSize,
		ownerID:  1,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With().Str("store", uuid.NewString()).Logger()
	return s
}

// Hydrate performs the initial population: from the cache when it holds
// tasks, otherwise from the first remote page. A failed remote fetch
// leaves the store Ready with an empty collection and returns the error.
// Calling Hydrate on a Ready store does nothing.
func (s *Store) Hydrate(ctx context.Context) error {
	if !s.hydrating.CompareAndSwap(false, true) {
		return service.ErrFetchInFlight
	}
	defer s.hydrating.Store(false)

	s.mu.Lock()
	switch {
	case s.closed:
		s.mu.Unlock()
		return service.ErrClosed
	case s.state == Ready:
		s.mu.Unlock()
		return nil
	}
	s.state = Hydrating
	s.mu.Unlock()

	if s.cache != nil {
		cached, err := s.cache.LoadAll(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("cache load failed, hydrating from remote")
		} else if len(cached) > 0 {
			if !s.settle(cached) {
				return service.ErrClosed
			}
			s.log.Debug().Int("count", len(cached)).Msg("hydrated from cache")
			s.emit(Event{Kind: CollectionChanged})
			return nil
		}
	}

	tasks, err := s.svc.FetchPage(ctx, 0, s.pageSize)
	if err != nil {
		s.settle(nil)
		s.log.Error().Err(err).Msg("initial fetch failed")
		return fmt.Errorf("hydrate: %w", err)
	}
	if !s.settle(tasks) {
		return service.ErrClosed
	}
	s.log.Debug().Int("count", len(tasks)).Msg("hydrated from remote")
	s.persist(ctx)
	s.emit(Event{Kind: CollectionChanged})
	return nil
}

// settle installs tasks as the collection and marks the store Ready.
// It reports false if the store was closed meanwhile.
func (s *Store) settle(tasks []service.Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.tasks = slices.Clone(tasks)
	s.state = Ready
	return true
}

// FetchMore requests the next page, using the current collection size as
// the offset, and appends it. Duplicate ids returned by the remote are kept.
// It returns the number of appended tasks.
func (s *Store) FetchMore(ctx context.Context) (int, error) {
	if !s.paginating.CompareAndSwap(false, true) {
		return 0, service.ErrFetchInFlight
	}
	defer s.paginating.Store(false)

	s.mu.Lock()
	if err := s.checkReadyLocked(); err != nil {
		s.mu.Unlock()
		return 0, err
	}
	skip := len(s.tasks)
	s.mu.Unlock()

	page, err := s.svc.FetchPage(ctx, skip, s.pageSize)
	if err != nil {
		s.log.Error().Err(err).Int("skip", skip).Msg("fetch more failed")
		return 0, fmt.Errorf("fetch more: %w", err)
	}
	if len(page) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0, service.ErrClosed
	}
	s.tasks = append(s.tasks, page...)
	s.mu.Unlock()

	s.log.Debug().Int("skip", skip).Int("count", len(page)).Msg("appended page")
	s.persist(ctx)
	s.emit(Event{Kind: CollectionChanged})
	return len(page), nil
}

// ToggleCompletion sets the completed flag of the task at index through
// the remote service. Nothing changes locally until the call succeeds;
// then only the completed field is taken from the server's response.
// If the task moved while the call was in flight it is found by id; if it
// is gone the result is dropped and ErrIndexOutOfRange is returned.
func (s *Store) ToggleCompletion(ctx context.Context, index int, completed bool) (service.Task, error) {
	s.mu.Lock()
	if err := s.checkIndexLocked(index); err != nil {
		s.mu.Unlock()
		return service.Task{}, err
	}
	id := s.tasks[index].ID
	s.mu.Unlock()

	updated, err := s.svc.UpdateCompletion(ctx, id, completed)
	if err != nil {
		return service.Task{}, fmt.Errorf("update task %d: %w", id, err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return service.Task{}, service.ErrClosed
	}
	pos := s.locateLocked(index, id)
	if pos < 0 {
		s.mu.Unlock()
		return service.Task{}, fmt.Errorf("%w: task %d no longer present", service.ErrIndexOutOfRange, id)
	}
	s.tasks[pos].Completed = updated.Completed
	task := s.tasks[pos]
	s.mu.Unlock()

	s.log.Debug().Int("index", pos).Int("id", id).Bool("completed", task.Completed).Msg("updated completion")
	s.persist(ctx)
	s.emit(Event{Kind: ItemChanged, Index: pos})
	return task, nil
}

// Add creates a task remotely and appends the server's copy once the
// call succeeds. A failed call leaves the collection unchanged.
func (s *Store) Add(ctx context.Context, title string) (service.Task, error) {
	s.mu.Lock()
	if err := s.checkReadyLocked(); err != nil {
		s.mu.Unlock()
		return service.Task{}, err
	}
	s.mu.Unlock()

	task, err := s.svc.CreateTask(ctx, title, false, s.ownerID)
	if err != nil {
		return service.Task{}, fmt.Errorf("create task: %w", err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return service.Task{}, service.ErrClosed
	}
	s.tasks = append(s.tasks, task)
	s.mu.Unlock()

	s.log.Debug().Int("id", task.ID).Msg("added task")
	s.persist(ctx)
	s.emit(Event{Kind: CollectionChanged})
	return task, nil
}

// EditTitle replaces the title of the task at index. The edit is local:
// id, completed and owner are preserved and no remote call is made.
func (s *Store) EditTitle(ctx context.Context, index int, title string) error {
	s.mu.Lock()
	if err := s.checkIndexLocked(index); err != nil {
		s.mu.Unlock()
		return err
	}
	s.tasks[index].Title = title
	id := s.tasks[index].ID
	s.mu.Unlock()

	s.log.Debug().Int("index", index).Int("id", id).Msg("edited title")
	s.persist(ctx)
	s.emit(Event{Kind: ItemChanged, Index: index})
	return nil
}

// Delete removes the task at index locally and from the cache.
// No remote call is made.
func (s *Store) Delete(ctx context.Context, index int) error {
	s.mu.Lock()
	if err := s.checkIndexLocked(index); err != nil {
		s.mu.Unlock()
		return err
	}
	id := s.tasks[index].ID
	s.tasks = slices.Delete(s.tasks, index, index+1)
	s.mu.Unlock()

	s.log.Debug().Int("index", index).Int("id", id).Msg("deleted task")
	s.persist(ctx)
	s.emit(Event{Kind: CollectionChanged})
	return nil
}

// Close discards the store. Results of requests still in flight are
// ignored and later operations fail with service.ErrClosed.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// Tasks returns a copy of the collection.
func (s *Store) Tasks() []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tasks)
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Task returns the task at index.
func (s *Store) Task(index int) (service.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.tasks) {
		return service.Task{}, fmt.Errorf("%w: %d (have %d)", service.ErrIndexOutOfRange, index, len(s.tasks))
	}
	return s.tasks[index], nil
}

// State returns the lifecycle state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) checkReadyLocked() error {
	if s.closed {
		return service.ErrClosed
	}
	if s.state != Ready {
		return service.ErrNotReady
	}
	return nil
}

func (s *Store) checkIndexLocked(index int) error {
	if err := s.checkReadyLocked(); err != nil {
		return err
	}
	if index < 0 || index >= len(s.tasks) {
		return fmt.Errorf("%w: %d (have %d)", service.ErrIndexOutOfRange, index, len(s.tasks))
	}
	return nil
}

// locateLocked returns the current position of the task with id,
// preferring index when it still holds that task.
func (s *Store) locateLocked(index, id int) int {
	if index < len(s.tasks) && s.tasks[index].ID == id {
		return index
	}
	return slices.IndexFunc(s.tasks, func(t service.Task) bool { return t.ID == id })
}

// persist writes the current collection to the cache. Failures are
// logged and never affect the in-memory state.
func (s *Store) persist(ctx context.Context) {
	if s.cache == nil {
		return
	}
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	snapshot := slices.Clone(s.tasks)
	s.mu.Unlock()

	if err := s.cache.ReplaceAll(context.WithoutCancel(ctx), snapshot); err != nil {
		s.log.Warn().Err(err).Int("count", len(snapshot)).Msg("cache write failed")
	}
}
