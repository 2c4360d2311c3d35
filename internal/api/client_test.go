package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todoterm/internal/model"
)

func TestClientList(t *testing.T) {
	items := []model.Item{{ID: 1, Title: "a"}, {ID: 2, Title: "b", Done: true}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/items", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(items)
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	got, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestClientListNoTokenOmitsHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]model.Item{})
	}))
	defer srv.Close()

	_, err := New(srv.URL, "").List(context.Background())
	require.NoError(t, err)
}

func TestClientListBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL, "").List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestClientCreate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var it model.Item
		require.NoError(t, json.NewDecoder(r.Body).Decode(&it))
		it.ID = 5
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(it)
	}))
	defer srv.Close()

	created, err := New(srv.URL, "").Create(context.Background(), model.Item{Title: "new"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), created.ID)
	assert.Equal(t, "new", created.Title)
}

func TestClientDelete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/items/7", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL, "").Delete(context.Background(), 7))
}

func TestWebsocketURL(t *testing.T) {
	assert.Equal(t, "ws://localhost:8080/ws", New("http://localhost:8080", "").WebsocketURL())
	assert.Equal(t, "wss://todo.example.com/ws", New("https://todo.example.com/", "").WebsocketURL())
}
