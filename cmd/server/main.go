package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iudanet/caseflow/internal/server/handlers"
	"github.com/iudanet/caseflow/internal/server/middleware"
	"github.com/iudanet/caseflow/internal/server/storage/sqlite"
	"github.com/iudanet/caseflow/internal/server/ws"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	addr := flag.String("addr", ":8080", "HTTP listen address")
	dbPath := flag.String("db", "caseflow.db", "Path to SQLite database")
	jwtSecret := flag.String("jwt-secret", "", "JWT signing secret (required)")
	accessTTL := flag.Duration("access-ttl", 15*time.Minute, "Access token TTL")
	refreshTTL := flag.Duration("refresh-ttl", 30*24*time.Hour, "Refresh token TTL")
	verbose := flag.Bool("verbose", false, "Enable debug logging")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))

	if err := run(logger, *addr, *dbPath, *jwtSecret, *accessTTL, *refreshTTL); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, addr, dbPath, jwtSecret string, accessTTL, refreshTTL time.Duration) error {
	if jwtSecret == "" {
		jwtSecret = os.Getenv("CASEFLOW_JWT_SECRET")
	}
	if jwtSecret == "" {
		return errors.New("jwt secret is required (--jwt-secret or CASEFLOW_JWT_SECRET)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	jwtConfig := handlers.JWTConfig{
		Secret:          []byte(jwtSecret),
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: refreshTTL,
	}

	hub := ws.NewHub(logger, jwtConfig, store)
	defer hub.Shutdown()

	authHandler := handlers.NewAuthHandler(logger, store, store, jwtConfig)
	// Изменения дел уходят пушем на остальные устройства агента
	// и подписчикам дела
	caseHandler := handlers.NewCaseHandler(logger, store, hub)
	syncHandler := handlers.NewSyncHandler(logger, store)
	healthHandler := handlers.NewHealthHandler(logger, Version)

	authMW := middleware.AuthMiddleware(logger, jwtConfig)
	platformMW := middleware.PlatformMiddleware(logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", healthHandler.Health)

	// Логин доступен без токена, но только мобильному клиенту
	mux.Handle("POST /api/mobile/auth/login", platformMW(http.HandlerFunc(authHandler.Login)))
	mux.Handle("POST /api/mobile/auth/refresh", platformMW(http.HandlerFunc(authHandler.Refresh)))
	mux.Handle("POST /api/mobile/auth/logout", platformMW(authMW(http.HandlerFunc(authHandler.Logout))))

	protected := func(h http.HandlerFunc) http.Handler {
		return platformMW(authMW(h))
	}
	mux.Handle("GET /api/mobile/cases", protected(caseHandler.List))
	mux.Handle("GET /api/mobile/cases/{id}", protected(caseHandler.Get))
	mux.Handle("PUT /api/mobile/cases/{id}", protected(caseHandler.Update))
	mux.Handle("POST /api/mobile/cases/{id}/submit", protected(caseHandler.Submit))
	mux.Handle("GET /api/mobile/sync/download", protected(syncHandler.Download))

	// WS аутентифицируется первым кадром, а не заголовком
	mux.HandleFunc("GET /api/mobile/ws", hub.HandleWS)

	// Логин лимитируется жестче остальных эндпоинтов
	rateLimits := []middleware.PathRateLimit{
		{Path: "/api/mobile/auth/login", Rate: 10, Window: 5 * time.Minute},
	}

	var handler http.Handler = mux
	handler = middleware.RateLimitMiddleware(rateLimits, 300, time.Minute, logger)(handler)
	handler = middleware.LoggingWithSkip(logger, []string{"/api/health"})(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "version", Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hub.Shutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	return nil
}

func printVersion() {
	fmt.Printf("CaseFlow Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
