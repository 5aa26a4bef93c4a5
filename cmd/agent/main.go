package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"

	"github.com/iudanet/caseflow/internal/client/api"
	"github.com/iudanet/caseflow/internal/client/auth"
	"github.com/iudanet/caseflow/internal/client/cases"
	"github.com/iudanet/caseflow/internal/client/cli"
	"github.com/iudanet/caseflow/internal/client/iocli"
	"github.com/iudanet/caseflow/internal/client/realtime"
	"github.com/iudanet/caseflow/internal/client/storage/boltdb"
	casesync "github.com/iudanet/caseflow/internal/client/sync"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "CRM server URL")
	dbPath := flag.String("db", "caseflow-agent.db", "Path to local database")
	verbose := flag.Bool("verbose", false, "Enable debug logging")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.New(nil, nil, nil, iocli.NewStdio()).PrintUsage()
		os.Exit(1)
	}

	command := args[0]

	logLevel := slog.LevelWarn
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Открываем локальное хранилище
	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	deviceID, err := loadOrCreateDeviceID(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to resolve device id: %v\n", err)
		os.Exit(1)
	}

	apiClient := api.NewClient(*serverURL, Version, deviceID)
	authService := auth.NewService(apiClient, boltStorage, deviceID)

	connectivity, err := casesync.NewDialConnectivity(*serverURL, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid server URL: %v\n", err)
		os.Exit(1)
	}

	engine := casesync.NewService(
		apiClient,
		boltStorage,
		boltStorage,
		boltStorage,
		authService,
		connectivity,
		logger,
		casesync.DefaultConfig(),
	)
	defer func() {
		if err := engine.Close(); err != nil {
			logger.Error("failed to stop sync engine", "error", err)
		}
	}()

	// Realtime канал дергает синхронизацию при серверных событиях
	channel := realtime.NewChannel(
		realtime.MobileConfig(*serverURL, deviceID),
		authService,
		realtime.SyncTriggerFunc(func(ctx context.Context) { engine.ForceSyncCases(ctx) }),
		logger,
	)

	stdio := iocli.NewStdio()
	controller := cases.NewController(engine, channel, notifyPrinter(stdio), logger)

	app := cli.New(authService, engine, controller, stdio)
	if err := app.Run(ctx, command, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// notifyPrinter выводит realtime-уведомления в терминал
func notifyPrinter(io iocli.IO) cases.NotifyFunc {
	return func(n cases.Notification) {
		if n.Body != "" {
			io.Printf("🔔 %s: %s\n", n.Title, n.Body)
			return
		}
		io.Printf("🔔 %s\n", n.Title)
	}
}

// loadOrCreateDeviceID возвращает стабильный идентификатор устройства.
// Хранится рядом с базой, чтобы переустановка клиента не плодила сессии.
func loadOrCreateDeviceID(dbPath string) (string, error) {
	path := filepath.Join(filepath.Dir(dbPath), ".caseflow-device")

	if data, err := os.ReadFile(path); err == nil && len(data) > 0 {
		return string(data), nil
	}

	id := uuid.New().String()
	if err := os.WriteFile(path, []byte(id), 0o600); err != nil {
		return "", err
	}

	return id, nil
}

func printVersion() {
	fmt.Printf("CaseFlow Field Agent Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
