package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"todolist/internal/service"
	"todolist/internal/store"
	"todolist/internal/testutil"
)

func TestSearch(t *testing.T) {
	tasks := []service.Task{
		{ID: 1, Title: "Buy MILK"},
		{ID: 2, Title: "Walk dog"},
		{ID: 3, Title: "buy bread"},
	}
	s, _, _ := newReadyStore(t, testutil.NewFakeService(), tasks...)

	tests := []struct {
		query string
		want  []int
	}{
		{query: "buy", want: []int{0, 2}},
		{query: "  Milk ", want: []int{0}},
		{query: "cat", want: []int{}},
		{query: "", want: []int{0, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := []int{}
			for _, m := range s.Search(tt.query) {
				got = append(got, m.Index)
				assert.Equal(t, tasks[m.Index], m.Task)
			}
			assert.Equal(t, tt.want, got)
		})
	}

	// Searching never narrows the collection.
	assert.Equal(t, tasks, s.Tasks())
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "collection-changed", store.CollectionChanged.String())
	assert.Equal(t, "item-changed", store.ItemChanged.String())
}
