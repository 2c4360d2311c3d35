// Package database is the sqlite persistence layer behind todod.
package database

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/idilsaglam/todoterm/internal/model"
)

//go:embed schema.sql
var schemaSQL string

// InitDB opens (or creates) the sqlite database at path and applies the
// schema. Pass ":memory:" for an ephemeral database in tests.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// an in-memory sqlite database exists per connection, so the pool must
	// stay at one or a second connection sees an empty database
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

// CreateItem inserts a new item and returns its assigned ID.
func CreateItem(db *sql.DB, it model.Item) (int64, error) {
	stmt, err := db.Prepare("INSERT INTO items(title, done) VALUES(?, ?)")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	res, err := stmt.Exec(it.Title, it.Done)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetItem retrieves one item by ID. Returns sql.ErrNoRows when absent.
func GetItem(db *sql.DB, id int64) (model.Item, error) {
	stmt, err := db.Prepare("SELECT id, title, done FROM items WHERE id = ?")
	if err != nil {
		return model.Item{}, err
	}
	defer stmt.Close()

	var it model.Item
	if err := stmt.QueryRow(id).Scan(&it.ID, &it.Title, &it.Done); err != nil {
		return model.Item{}, err
	}
	return it, nil
}

// GetItems retrieves all items in insertion order.
func GetItems(db *sql.DB) ([]model.Item, error) {
	rows, err := db.Query("SELECT id, title, done FROM items ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		var it model.Item
		if err := rows.Scan(&it.ID, &it.Title, &it.Done); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// DeleteItem removes an item by ID. Returns sql.ErrNoRows when nothing
// matched.
func DeleteItem(db *sql.DB, id int64) error {
	stmt, err := db.Prepare("DELETE FROM items WHERE id = ?")
	if err != nil {
		return err
	}
	defer stmt.Close()

	res, err := stmt.Exec(id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
