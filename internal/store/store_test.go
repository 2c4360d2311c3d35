package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todoterm/internal/model"
)

// unknownAction stands in for any tag the reducer does not recognize.
type unknownAction struct{}

func (unknownAction) isAction() {}

func sampleItems() []model.Item {
	return []model.Item{
		{ID: 1, Title: "a"},
		{ID: 2, Title: "b"},
		{ID: 3, Title: "c", Done: true},
	}
}

func TestReduceFetchListReplacesState(t *testing.T) {
	fetched := []model.Item{{ID: 7, Title: "x"}}

	got := Reduce(sampleItems(), FetchList{Items: fetched})
	assert.Equal(t, fetched, got, "fetch must replace prior state verbatim")

	got = Reduce([]model.Item{}, FetchList{Items: []model.Item{{ID: 1, Title: "a"}}})
	assert.Equal(t, []model.Item{{ID: 1, Title: "a"}}, got)
}

func TestReduceDeleteItemRemovesExactlyOne(t *testing.T) {
	got := Reduce(sampleItems(), DeleteItem{ID: 2})
	assert.Equal(t, []model.Item{
		{ID: 1, Title: "a"},
		{ID: 3, Title: "c", Done: true},
	}, got, "only the matching ID goes, relative order is kept")
}

func TestReduceDeleteFirstItem(t *testing.T) {
	state := []model.Item{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}}
	got := Reduce(state, DeleteItem{ID: 1})
	assert.Equal(t, []model.Item{{ID: 2, Title: "b"}}, got)
}

func TestReduceDeleteAbsentIDIsNoop(t *testing.T) {
	state := sampleItems()
	got := Reduce(state, DeleteItem{ID: 99})
	assert.Equal(t, state, got)
}

func TestReduceUnknownActionIsIdentity(t *testing.T) {
	state := sampleItems()
	got := Reduce(state, unknownAction{})
	assert.Equal(t, state, got)

	got = Reduce(got, unknownAction{})
	assert.Equal(t, state, got, "default branch is idempotent")
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	state := sampleItems()
	snapshot := make([]model.Item, len(state))
	copy(snapshot, state)

	Reduce(state, DeleteItem{ID: 1})
	Reduce(state, FetchList{Items: []model.Item{{ID: 9}}})

	assert.Equal(t, snapshot, state, "reducer input must survive every action")
}

func TestNewStoreStartsEmpty(t *testing.T) {
	s := New()
	assert.Empty(t, s.State(), "the boot probe must leave the default state alone")
}

func TestStoreDispatchUpdatesState(t *testing.T) {
	s := New()
	s.Dispatch(FetchList{Items: sampleItems()})
	s.Dispatch(DeleteItem{ID: 1})

	got := s.State()
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
}

func TestStoreStateIsACopy(t *testing.T) {
	s := New()
	s.Dispatch(FetchList{Items: sampleItems()})

	view := s.State()
	view[0].Title = "scribbled"

	assert.Equal(t, "a", s.State()[0].Title, "callers hold a projection, not the state itself")
}

func TestStoreSubscribe(t *testing.T) {
	s := New()

	var calls int
	unsubscribe := s.Subscribe(func() { calls++ })

	s.Dispatch(FetchList{Items: sampleItems()})
	s.Dispatch(DeleteItem{ID: 2})
	require.Equal(t, 2, calls)

	unsubscribe()
	s.Dispatch(DeleteItem{ID: 1})
	assert.Equal(t, 2, calls, "no notifications after unsubscribe")
}

func TestStoreSubscriberSeesNewState(t *testing.T) {
	s := New()

	var seen []model.Item
	s.Subscribe(func() { seen = s.State() })

	s.Dispatch(FetchList{Items: sampleItems()})
	assert.Len(t, seen, 3)
}
