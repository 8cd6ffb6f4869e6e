package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fentz26/lifehack/internal/assistant"
	"github.com/fentz26/lifehack/internal/audit"
	"github.com/fentz26/lifehack/internal/automation"
	"github.com/fentz26/lifehack/internal/config"
	"github.com/fentz26/lifehack/internal/logging"
	"github.com/fentz26/lifehack/internal/metrics"
	"github.com/fentz26/lifehack/internal/store"
)

var (
	configPath string
	listenAddr string
	dbPath     string
	dataDir    string
	noSeed     bool
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Start the lifehack daemon",
	Long:  `Starts the lifehack daemon which serves the HTTP API for problems, plans, tasks and automations.`,
	RunE:  runDaemon,
}

func init() {
	daemonCmd.Flags().StringVar(&configPath, "config", config.DefaultPath(), "Path to YAML config file")
	daemonCmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address for the API server (overrides config)")
	daemonCmd.Flags().StringVar(&dbPath, "db", "", "Path to SQLite database (overrides config)")
	daemonCmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory for automation snapshot files (overrides config)")
	daemonCmd.Flags().BoolVar(&noSeed, "no-seed", false, "Do not insert sample problems into an empty database")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if listenAddr != "" {
		cfg.Server.Listen = listenAddr
	}
	if dbPath != "" {
		cfg.Store.Path = dbPath
	}
	if dataDir != "" {
		cfg.Automation.DataDir = dataDir
	}
	if noSeed {
		cfg.Store.SeedSample = false
	}

	logger, level, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("Starting lifehack daemon...", zap.String("version", assistant.Version))

	// Initialize store
	s, err := store.New(cfg.Store.Path)
	if err != nil {
		return err
	}
	if cfg.Store.SeedSample {
		n, err := s.SeedSampleProblems()
		if err != nil {
			s.Close()
			return err
		}
		if n > 0 {
			logger.Info("Inserted sample problems", zap.Int("count", n))
		}
	}

	// Initialize components
	collector := metrics.NewCollector("lifehack")
	recorder := audit.NewRecorder(s, logger)
	runner := automation.NewRunner(automation.NewSnapshotWriter(cfg.Automation.DataDir), time.Now, logger)

	// Create service and server
	service := assistant.NewService(s, recorder, runner, assistant.Options{
		Logger:    logger,
		Metrics:   collector,
		Dashboard: cfg.Dashboard,
	})
	server := assistant.NewServer(service, assistant.ServerConfig{
		Addr:           cfg.Server.Listen,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, logger, collector)

	// Hot reload of the log level
	watcher, err := config.NewWatcher(configPath, cfg, logger)
	if err != nil {
		logger.Warn("Config hot reload disabled", zap.Error(err))
	} else {
		defer watcher.Stop()
		watcher.OnChange(func(next *config.Config) {
			if err := logging.SetLevel(level, next.Log.Level); err != nil {
				logger.Warn("Ignoring log level change", zap.Error(err))
				return
			}
			logger.Info("Log level updated", zap.String("level", next.Log.Level))
		})
	}

	// Set up signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Channel to receive server errors
	serverErr := make(chan error, 1)

	// Start server in goroutine
	go func() {
		err := server.Start()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Wait for shutdown signal or server error
	select {
	case sig := <-sigCh:
		logger.Info("Received signal, initiating graceful shutdown...", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil {
			logger.Error("Server error", zap.Error(err))
			s.Close()
			return err
		}
	}

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	logger.Info("Shutting down HTTP server...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	logger.Info("Closing database connection...")
	if err := s.Close(); err != nil {
		logger.Error("Database close error", zap.Error(err))
	}

	logger.Info("Shutdown complete")
	return nil
}
