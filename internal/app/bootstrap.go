package app

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/connyyu/pdbstats/internal/config"
	"github.com/connyyu/pdbstats/internal/middleware"
	"github.com/connyyu/pdbstats/internal/pkg/logging"
	"github.com/connyyu/pdbstats/internal/pkg/message"
	"github.com/connyyu/pdbstats/internal/platform/db"
	"github.com/ferdiebergado/goexpress"
	"github.com/ferdiebergado/gopherkit/env"
)

// Run wires the application together and blocks until the signal context
// is canceled or the server fails.
func Run(signalCtx context.Context) error {
	appEnv := os.Getenv("ENV")
	if appEnv != "production" {
		if err := env.Load(".env"); err != nil {
			return fmt.Errorf("load env: %w", err)
		}
		appEnv = os.Getenv("ENV")
	}

	logging.SetupLogger(appEnv, os.Getenv("LOG_LEVEL"), os.Stderr)

	cfg, err := config.Load("config.json")
	if err != nil {
		return err
	}

	dbConn, err := db.NewPostgresDB(signalCtx, cfg.DB)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	const keyEnv = "KEY"
	securityKey, ok := os.LookupEnv(keyEnv)
	if !ok {
		return fmt.Errorf(message.EnvErrFmt, keyEnv)
	}

	const adminKeyEnv = "ADMIN_KEY"
	adminKey, ok := os.LookupEnv(adminKeyEnv)
	if !ok {
		return fmt.Errorf(message.EnvErrFmt, adminKeyEnv)
	}

	provider, err := NewProvider(cfg, dbConn, securityKey, adminKey)
	if err != nil {
		return err
	}

	middlewares := []func(http.Handler) http.Handler{
		middleware.InjectWriter,
		goexpress.RecoverFromPanic,
		middleware.LogRequest,
		middleware.CORS,
	}

	application := New(cfg, provider, middlewares)
	if err := application.Start(signalCtx); err != nil {
		return err
	}

	return application.Shutdown()
}
