// Package actions holds the action creators sitting between the UI and the
// store: DeleteItem only builds an action, FetchList talks to the network
// first and dispatches on success.
package actions

import (
	"context"

	"github.com/idilsaglam/todoterm/internal/model"
	"github.com/idilsaglam/todoterm/internal/store"
)

// Lister is the one network capability the fetch creator needs.
// *api.Client satisfies it.
type Lister interface {
	List(ctx context.Context) ([]model.Item, error)
}

// FetchList retrieves the item collection and dispatches it to the store.
// On a network error nothing is dispatched and the error is returned as-is;
// there is no retry and concurrent calls are not deduplicated.
func FetchList(ctx context.Context, l Lister, s *store.Store) error {
	items, err := l.List(ctx)
	if err != nil {
		return err
	}
	s.Dispatch(store.FetchList{Items: items})
	return nil
}

// DeleteItem constructs the delete action for id. No side effects: the
// caller decides when (and whether) to dispatch it.
func DeleteItem(id int64) store.Action {
	return store.DeleteItem{ID: id}
}
