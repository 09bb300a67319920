package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/api"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/config"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/db"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/session"
)

func main() {
	// Load environment variables from .env file
	_ = godotenv.Load()

	// Load configuration from environment
	cfg := config.Load()

	// Open the local session store (sqlite by default, postgres in prod)
	dbConn, err := db.Open(cfg.Session)
	if err != nil {
		log.Fatalf("Failed to open session store: %v", err)
	}

	// Base client for the backend API; per-request clients carry the
	// session's bearer token on top of this one.
	apiClient := api.NewClient(api.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: time.Duration(cfg.Backend.Timeout) * time.Second,
	})

	sessions, err := session.NewManager(dbConn, apiClient, cfg.Session)
	if err != nil {
		log.Fatalf("Failed to initialize sessions: %v", err)
	}
	if err := sessions.PurgeExpired(); err != nil {
		log.Printf("Session purge failed: %v", err)
	}

	appHandler := NewApp(sessions, cfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      withLogging(appHandler),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s (backend=%s, dev=%v)", cfg.Server.Port, cfg.Backend.BaseURL, cfg.App.Dev)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped gracefully")
}

// withLogging adds request logging middleware.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
