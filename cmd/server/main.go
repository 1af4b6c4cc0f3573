/*
main.go - Application entry point

Starts the work tracker server: load config, open the SQLite store,
load collections into the tracker, serve HTTP, shut down gracefully.

FLAGS (override environment):
  -port    HTTP server port          (env PORT, default 8080)
  -db      SQLite database path      (env DB_PATH, default worktracker.db)
           Use ":memory:" for an in-memory database.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomsp05/worktracker/api"
	"github.com/tomsp05/worktracker/config"
	"github.com/tomsp05/worktracker/store/sqlite"
	"github.com/tomsp05/worktracker/tracker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	port := flag.Int("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	flag.Parse()

	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	tr, err := tracker.Open(context.Background(), store)
	if err != nil {
		log.Fatalf("Failed to load collections: %v", err)
	}

	handler := api.NewHandler(tr, store)
	router := api.NewRouter(handler, cfg.Env)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on http://localhost:%d", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
