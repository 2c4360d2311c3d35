package store

import (
	"sync"

	"github.com/idilsaglam/todoterm/internal/model"
)

// Reduce computes the next list from the current list and an action.
// Pure: it never mutates state, it returns a fresh slice (or state itself
// when nothing changed). Unrecognized actions are identity.
func Reduce(state []model.Item, a Action) []model.Item {
	switch a := a.(type) {
	case FetchList:
		// Replace wholesale, no merge with prior state.
		return a.Items
	case DeleteItem:
		out := make([]model.Item, 0, len(state))
		for _, it := range state {
			if it.ID != a.ID {
				out = append(out, it)
			}
		}
		if len(out) == len(state) {
			return state
		}
		return out
	default:
		return state
	}
}

// Store owns the list state. All updates go through Dispatch, which applies
// Reduce and notifies subscribers; readers only ever get a copy.
type Store struct {
	mu        sync.Mutex
	state     []model.Item
	listeners map[int]func()
	nextID    int
}

// New creates an empty store and runs one probe action through the reducer,
// mirroring the boot dispatch a UI store performs on creation.
func New() *Store {
	s := &Store{
		state:     []model.Item{},
		listeners: make(map[int]func()),
	}
	s.Dispatch(initProbe{})
	return s
}

// Dispatch applies the reducer to the current state and, if subscribers are
// registered, notifies each one after the state is swapped in. Listeners run
// outside the lock so they may call State or Dispatch.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	fns := make([]func(), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// State returns a read-only projection of the list: a copy the caller can
// keep without ever observing a later dispatch.
func (s *Store) State() []model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Item, len(s.state))
	copy(out, s.state)
	return out
}

// Subscribe registers fn to run after every dispatch and returns a function
// that removes the subscription.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}
