package store

import (
	"strings"

	"todolist/internal/service"
)

// Match is a search hit with its position in the full collection.
type Match struct {
	Index int
	Task  service.Task
}

// Search returns the tasks whose title contains query, ignoring case.
// An empty or blank query matches every task. The collection is not modified.
func (s *Store) Search(query string) []Match {
	needle := strings.ToLower(strings.TrimSpace(query))

	s.mu.Lock()
	defer s.mu.Unlock()

	matches := make([]Match, 0, len(s.tasks))
	for i, t := range s.tasks {
		if needle == "" || strings.Contains(strings.ToLower(t.Title), needle) {
			matches = append(matches, Match{Index: i, Task: t})
		}
	}
	return matches
}
