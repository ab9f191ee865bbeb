package app

import (
	"database/sql"
	"errors"

	"github.com/connyyu/pdbstats/internal/config"
	"github.com/connyyu/pdbstats/internal/platform/db"
	"github.com/connyyu/pdbstats/internal/platform/jwt"
	"github.com/connyyu/pdbstats/internal/platform/router"
	"github.com/connyyu/pdbstats/internal/platform/validation"
)

type Provider struct {
	DB        *sql.DB
	Signer    jwt.Signer
	Validator validation.Validator
	Router    router.Router
	TxMgr     db.TxManager
	AdminKey  string
}

func NewProvider(cfg *config.Config, dbConn *sql.DB, securityKey, adminKey string) (*Provider, error) {
	if cfg == nil || dbConn == nil {
		return nil, errors.New("config and dbconn should not be nil")
	}

	return &Provider{
		DB:        dbConn,
		Signer:    jwt.NewGolangJWTSigner(cfg.JWT, securityKey),
		Validator: validation.NewGoPlaygroundValidator(),
		Router:    router.NewGoexpressRouter(),
		TxMgr:     db.NewSQLTxManager(dbConn),
		AdminKey:  adminKey,
	}, nil
}
