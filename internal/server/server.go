// Package server exposes the item collection over HTTP and a websocket
// change feed, backed by the sqlite database layer.
package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/idilsaglam/todoterm/internal/database"
	"github.com/idilsaglam/todoterm/internal/model"
)

type Server struct {
	db  *sql.DB
	hub *Hub
	log *log.Logger

	upgrader websocket.Upgrader
}

// New wires a server around an open database and starts the change-feed
// hub.
func New(db *sql.DB, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		db:  db,
		hub: NewHub(),
		log: logger,
		upgrader: websocket.Upgrader{
			// local tool, same-host clients only
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	s.hub.Start()
	return s
}

func (s *Server) Hub() *Hub { return s.hub }

// Router builds the chi router with request logging applied.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Get("/items", s.handleListItems)
	r.Post("/items", s.handleCreateItem)
	r.Delete("/items/{id}", s.handleDeleteItem)
	r.Get("/ws", s.handleWebsocket)

	return r
}

// requestLogger logs the request line and how long the handler took.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.log.Printf("Started %s %s", r.Method, r.RequestURI)
		next.ServeHTTP(w, r)
		s.log.Printf("Completed %s %s in %v", r.Method, r.RequestURI, time.Since(start))
	})
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := database.GetItems(s.db)
	if err != nil {
		s.serverError(w, "list items", err)
		return
	}
	s.writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var it model.Item
	if err := json.NewDecoder(r.Body).Decode(&it); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(it.Title) == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}
	id, err := database.CreateItem(s.db, it)
	if err != nil {
		s.serverError(w, "create item", err)
		return
	}
	it.ID = id
	s.writeJSON(w, http.StatusCreated, it)
	s.notify(id)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}
	if err := database.DeleteItem(s.db, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "item not found", http.StatusNotFound)
			return
		}
		s.serverError(w, "delete item", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	s.notify(id)
}

// handleWebsocket upgrades the connection and streams change events until
// the client goes away.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Printf("websocket upgrade: %v", err)
		return
	}
	c := &conn{send: make(chan []byte, 8)}
	s.hub.register <- c

	// writer pump
	go func() {
		defer ws.Close()
		for msg := range c.send {
			if err := ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
	}()

	// read loop only to detect the close
	go func() {
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				s.hub.unregister <- c
				return
			}
		}
	}()
}

func (s *Server) notify(id int64) {
	if err := s.hub.Notify(id); err != nil {
		s.log.Printf("notify: %v", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Printf("encode response: %v", err)
	}
}

func (s *Server) serverError(w http.ResponseWriter, op string, err error) {
	s.log.Printf("%s: %v", op, err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
