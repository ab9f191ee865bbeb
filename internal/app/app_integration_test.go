package app_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/connyyu/pdbstats/internal/app"
	"github.com/connyyu/pdbstats/internal/config"
	"github.com/connyyu/pdbstats/internal/platform/db"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func setupApp(t *testing.T) (api *app.App, port int, cleanUpFunc func()) {
	t.Helper()

	if os.Getenv("DB_HOST") == "" {
		t.Skip("DB_HOST is not set, skipping integration test")
	}

	cfg, err := config.Load("../../config.json")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	conn, err := db.NewPostgresDB(context.Background(), cfg.DB)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}

	provider, err := app.NewProvider(cfg, conn, "testsecret", "testadminkey")
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	middlewares := []func(http.Handler) http.Handler{}
	api = app.New(cfg, provider, middlewares)

	cleanUpFunc = func() {
		conn.Close()
	}

	return api, cfg.Server.Port, cleanUpFunc
}

func TestIntegration_StartAndShutdown(t *testing.T) {
	api, port, cleanup := setupApp(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := api.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.Errorf("server error: %v", err)
		}
	}()

	// Wait briefly for the server to start.
	time.Sleep(300 * time.Millisecond)

	url := fmt.Sprintf("http://127.0.0.1:%d/health", port)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("health request: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("health status = %d, want %d or %d", res.StatusCode, http.StatusOK, http.StatusServiceUnavailable)
	}

	cancel()
	if err := api.Shutdown(); err != nil {
		t.Errorf("shutdown: %v", err)
	}
}
