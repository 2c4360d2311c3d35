package store

import "github.com/idilsaglam/todoterm/internal/model"

// Action is a tagged record describing an intended state transition.
// The interface is sealed: the reducer switches on the concrete type, so a
// payload can never be read under the wrong tag.
type Action interface {
	isAction()
}

// FetchList replaces the whole list with the fetched collection.
type FetchList struct {
	Items []model.Item
}

// DeleteItem removes the item with the given ID from the list.
type DeleteItem struct {
	ID int64
}

// initProbe is dispatched once by New so the store boots through the
// reducer's default branch, the same way any unrecognized action would.
type initProbe struct{}

func (FetchList) isAction()  {}
func (DeleteItem) isAction() {}
func (initProbe) isAction()  {}
