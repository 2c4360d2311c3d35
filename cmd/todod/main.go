package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/idilsaglam/todoterm/internal/database"
	"github.com/idilsaglam/todoterm/internal/server"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	dbPath := flag.String("db", "todod.db", "sqlite database path")
	flag.Parse()

	logger := log.New(os.Stderr, "todod ", log.LstdFlags)

	db, err := database.InitDB(*dbPath)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	s := server.New(db, logger)

	logger.Printf("Server starting on %s", *addr)
	if err := http.ListenAndServe(*addr, s.Router()); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
