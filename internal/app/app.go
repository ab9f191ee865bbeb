package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/connyyu/pdbstats/internal/admin"
	"github.com/connyyu/pdbstats/internal/config"
	"github.com/connyyu/pdbstats/internal/dashboard"
	"github.com/connyyu/pdbstats/internal/rcsb"
	"github.com/connyyu/pdbstats/internal/stats"
)

type App struct {
	server          *http.Server
	cfg             *config.Config
	provider        *Provider
	middlewares     []func(http.Handler) http.Handler
	stop            context.CancelFunc
	shutdownTimeout time.Duration
}

func (a *App) registerMiddlewares() {
	for _, mw := range a.middlewares {
		a.provider.Router.Use(mw)
	}
}

func (a *App) setupRoutes() {
	client := rcsb.NewHTTPClient(a.cfg.RCSB)
	repo := stats.NewRepository(a.provider.DB)
	svc := stats.NewService(client, repo, a.provider.TxMgr, a.cfg.Snapshot.TTL.Duration)

	statsHandler := stats.NewHandler(svc, a.provider.Validator)
	dashboardHandler := dashboard.NewHandler(svc, a.provider.Validator)
	adminHandler := admin.NewHandler(a.provider.Signer, a.provider.AdminKey, a.cfg.JWT.TTL.Duration, svc)
	healthHandler := NewHealthHandler(a.provider.DB, svc, a.cfg.DB.PingTimeout.Duration)

	mountRoutes(a.provider.Router, &routeHandlers{
		stats:     statsHandler,
		dashboard: dashboardHandler,
		admin:     adminHandler,
		health:    healthHandler,
	}, a.provider.Validator, a.provider.Signer, a.cfg.Server.MaxBodyBytes)
}

func (a *App) Start(ctx context.Context) error {
	a.registerMiddlewares()
	a.setupRoutes()

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening...", "address", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("listen and serve: %w", err)
			return
		}
		slog.Info("Server has stopped.")
		serverErr <- nil
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received.")
		return nil
	case err := <-serverErr:
		return err
	}
}

func (a *App) Shutdown() error {
	slog.Info("Shutting down server...")
	a.stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}

func New(cfg *config.Config, provider *Provider, middlewares []func(http.Handler) http.Handler) *App {
	serverCtx, stop := context.WithCancel(context.Background())
	serverCfg := cfg.Server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", serverCfg.Port),
		Handler: provider.Router,
		BaseContext: func(_ net.Listener) context.Context {
			return serverCtx
		},
		ReadTimeout:  serverCfg.ReadTimeout.Duration,
		WriteTimeout: serverCfg.WriteTimeout.Duration,
		IdleTimeout:  serverCfg.IdleTimeout.Duration,
	}

	return &App{
		server:          server,
		cfg:             cfg,
		provider:        provider,
		middlewares:     middlewares,
		stop:            stop,
		shutdownTimeout: serverCfg.ShutdownTimeout.Duration,
	}
}
