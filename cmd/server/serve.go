package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/app"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/config"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/logging"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/transport/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

// runServe initializes and starts the HTTP server / Initialise et démarre le serveur HTTP
func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logging.Setup(os.Stdout, cfg)
	logStartupInfo(cfg)

	container, err := app.NewContainer(cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      web.NewMux(ctx, web.NewHandler(container)),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	slog.Info("shutting down server gracefully", "timeout", cfg.Server.ShutdownTimeout)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	slog.Info("server stopped")
	return nil
}

// logStartupInfo displays startup information / Affiche les informations de démarrage
func logStartupInfo(conf *config.Config) {
	slog.Info("starting Kame Daay backend",
		"environment", conf.Environment,
		"port", conf.Server.Port,
		"database", conf.DatabaseType(),
	)

	if conf.RateLimiter.Enabled {
		slog.Info("rate limiter enabled",
			"global_rps", conf.RateLimiter.RPS,
			"auth_rps", conf.RateLimiter.AuthRPS,
			"sync_rps", conf.RateLimiter.SyncRPS,
		)
	} else {
		slog.Warn("rate limiter is disabled")
	}

	if conf.Cors.AllowUnlisted {
		slog.Warn("unlisted CORS origins are allowed", "allowed_origins", conf.Cors.AllowedOrigins)
	}

	slog.Info("sync limits",
		"token_duration", conf.Auth.TokenDuration,
		"sync_timeout", conf.Sync.Timeout,
		"max_records", conf.Sync.MaxRecords,
		"max_body_bytes", conf.Sync.MaxBodyBytes,
	)
}
