package database

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todoterm/internal/model"
)

// setupTestDB initializes an in-memory sqlite database and closes it on
// cleanup.
func setupTestDB(t *testing.T) *sql.DB {
	db, err := InitDB(":memory:")
	require.NoError(t, err, "Failed to initialize test database")
	t.Cleanup(func() { require.NoError(t, db.Close()) })
	return db
}

func TestCreateAndGetItem(t *testing.T) {
	db := setupTestDB(t)

	id, err := CreateItem(db, model.Item{Title: "Buy milk"})
	require.NoError(t, err)
	require.NotZero(t, id)

	got, err := GetItem(db, id)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", got.Title)
	assert.False(t, got.Done)
}

func TestGetItemsOrderedByID(t *testing.T) {
	db := setupTestDB(t)

	for _, title := range []string{"a", "b", "c"} {
		_, err := CreateItem(db, model.Item{Title: title})
		require.NoError(t, err)
	}

	items, err := GetItems(db)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "a", items[0].Title)
	assert.Equal(t, "c", items[2].Title)
}

func TestGetItemsEmpty(t *testing.T) {
	db := setupTestDB(t)

	items, err := GetItems(db)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items, "empty list must encode as [], not null")
}

func TestDeleteItem(t *testing.T) {
	db := setupTestDB(t)

	id, err := CreateItem(db, model.Item{Title: "doomed"})
	require.NoError(t, err)

	require.NoError(t, DeleteItem(db, id))

	_, err = GetItem(db, id)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestDeleteMissingItem(t *testing.T) {
	db := setupTestDB(t)
	err := DeleteItem(db, 999)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}
