package app

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/connyyu/pdbstats/internal/pkg/web"
	"github.com/connyyu/pdbstats/internal/stats"
)

type HealthHandler struct {
	db          *sql.DB
	svc         stats.Service
	pingTimeout time.Duration
}

func NewHealthHandler(dbConn *sql.DB, svc stats.Service, pingTimeout time.Duration) *HealthHandler {
	return &HealthHandler{
		db:          dbConn,
		svc:         svc,
		pingTimeout: pingTimeout,
	}
}

type HealthResponse struct {
	Status      string `json:"status"`
	Database    string `json:"database"`
	SnapshotAge string `json:"snapshot_age"`
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	payload := &HealthResponse{
		Status:   "ok",
		Database: "up",
	}
	status := http.StatusOK

	pingCtx, cancel := context.WithTimeout(r.Context(), h.pingTimeout)
	defer cancel()

	if err := h.db.PingContext(pingCtx); err != nil {
		payload.Status = "degraded"
		payload.Database = "down"
		status = http.StatusServiceUnavailable
	}

	age, err := h.svc.SnapshotAge(r.Context())
	switch {
	case errors.Is(err, stats.ErrNoSnapshot):
		payload.SnapshotAge = "none"
	case err != nil:
		payload.SnapshotAge = "unknown"
	default:
		payload.SnapshotAge = age.Round(time.Second).String()
	}

	web.OK(w, status, nil, payload)
}
