package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hashnotes/internal/api"
	"hashnotes/internal/config"
	"hashnotes/internal/mcp"
	"hashnotes/internal/store/sqlstore"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	// Initialize store
	store, err := sqlstore.New(cfg.DBDriver, cfg.DBConn)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("connected to database", "driver", cfg.DBDriver)

	opts := api.RouterOptions{
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins,
	}
	if cfg.MCPEnabled {
		opts.MCP = mcp.NewMCPServer(store).HTTPHandler()
	}
	handler := api.NewRouter(api.NewHandlers(store, logger), opts)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", "addr", srv.Addr, "mcp", cfg.MCPEnabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
