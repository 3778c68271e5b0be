package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/frahmantamala/rbac-dashboard/internal/transport/rest"
	"github.com/frahmantamala/rbac-dashboard/internal/transport/swagger"
	"github.com/frahmantamala/rbac-dashboard/pkg/logger"
	"github.com/spf13/cobra"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startHTTPServer(cmd.Context())
	},
}

func startHTTPServer(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	lg := logger.LoggerWrapper()

	sqlDB, gormDB, err := initDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if _, err := swagger.LoadSpec(ctx, cfg.Server.OpenAPIPath); err != nil {
		lg.Warn("openapi document unavailable, swagger UI will be empty", "path", cfg.Server.OpenAPIPath, "error", err)
	}

	api := rest.NewAPI(cfg, gormDB, sqlDB, lg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           api.Router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErrChan := make(chan error, 1)
	go func() {
		lg.Info("starting HTTP server", "address", addr, "api_prefix", cfg.Server.APIPrefix, "driver", cfg.Database.Driver)
		serverErrChan <- server.ListenAndServe()
	}()

	var runErr error
	select {
	case <-sigCtx.Done():
		lg.Info("shutdown signal received")
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		lg.Error("server shutdown error", "error", err)
	}

	// in-flight requests may still have queued audit entries
	api.Recorder.Shutdown()

	if err := sqlDB.Close(); err != nil {
		lg.Error("database close error", "error", err)
	}

	lg.Info("server stopped")
	return runErr
}
