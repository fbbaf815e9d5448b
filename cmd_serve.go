package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/akinalp/sigma/config"
	"github.com/akinalp/sigma/database"
	"github.com/akinalp/sigma/middleware"
	"github.com/akinalp/sigma/pkg/metrics"
	"github.com/akinalp/sigma/ws"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

// runServe, tüm katmanları bağlar ve ctx iptal edilene kadar server'ı çalıştırır.
func runServe(ctx context.Context) error {
	log.Println("[main] sigma server starting...")

	// ─── 1. Config ───
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log.Printf("[main] config loaded (port=%d)", cfg.Server.Port)

	// ─── 2. Database ───
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	// ─── 3. Upload dizini ───
	if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	// ─── 4. Metrics ───
	registry, m := metrics.NewRegistry()

	// ─── 5. Repository + Hub + Service + Handler ───
	repos := initRepositories(db.Conn)

	hub := ws.NewHub()
	go hub.Run()
	metrics.RegisterOnlineUsers(registry, hub)

	svcs, err := initServices(db.Conn, repos, hub, cfg)
	if err != nil {
		return err
	}
	defer svcs.Close()
	svcs.TokenCleaner.Start()
	defer svcs.TokenCleaner.Stop()

	h := initHandlers(svcs, hub, m, cfg)

	// ─── 6. Router ───
	mux := http.NewServeMux()
	initRoutes(mux, h, svcs.Authority, m)
	mux.Handle("GET /metrics", metrics.Handler(registry))

	// ─── 7. CORS ───
	// Cookie auth için AllowCredentials şart; bu durumda origin listesi "*" olamaz.
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := corsHandler.Handler(middleware.Metrics(m)(mux))

	// ─── 8. HTTP Server ───
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("[main] server listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// ─── 9. Graceful Shutdown ───
	select {
	case err := <-serveErr:
		if err != nil {
			hub.Shutdown()
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	log.Println("[main] shutting down...")

	// Önce WebSocket bağlantıları kapanır, sonra HTTP server mevcut
	// request'lerin bitmesini bekler.
	hub.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	log.Println("[main] server stopped gracefully")
	return nil
}
