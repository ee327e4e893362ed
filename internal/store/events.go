package store

// EventKind identifies which part of the collection changed.
type EventKind int

const (
	// CollectionChanged means size and/or order may differ; re-read everything.
	CollectionChanged EventKind = iota + 1

	// ItemChanged means only the task at Event.Index changed; size is unchanged.
	ItemChanged
)

func (k EventKind) String() string {
	switch k {
	case CollectionChanged:
		return "collection-changed"
	case ItemChanged:
		return "item-changed"
	default:
		return "unknown"
	}
}

// Event is delivered to observers after a mutation has settled.
type Event struct {
	Kind  EventKind
	Index int // valid for ItemChanged only
}

type observer struct {
	id int
	fn func(Event)
}

// Subscribe registers fn to receive change events and returns a function
// that removes it. Observers run synchronously, in subscription order,
// after the store's lock has been released, so they may read the store.
func (s *Store) Subscribe(fn func(Event)) (cancel func()) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()

	s.nextObs++
	id := s.nextObs
	s.observers = append(s.observers, observer{id: id, fn: fn})

	return func() {
		s.obsMu.Lock()
		defer s.obsMu.Unlock()
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) emit(ev Event) {
	s.obsMu.Lock()
	obs := make([]observer, len(s.observers))
	copy(obs, s.observers)
	s.obsMu.Unlock()

	for _, o := range obs {
		o.fn(ev)
	}
}
