package admin

import (
	"errors"
	"net/http"
	"time"

	"github.com/connyyu/pdbstats/internal/pkg/message"
	"github.com/connyyu/pdbstats/internal/pkg/security"
	"github.com/connyyu/pdbstats/internal/pkg/web"
	"github.com/connyyu/pdbstats/internal/platform/jwt"
	"github.com/connyyu/pdbstats/internal/stats"
)

type TokenRequest struct {
	Key string `json:"key" validate:"required"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

type Handler struct {
	signer   jwt.Signer
	adminKey string
	tokenTTL time.Duration
	svc      stats.Service
}

func NewHandler(signer jwt.Signer, adminKey string, tokenTTL time.Duration, svc stats.Service) *Handler {
	return &Handler{
		signer:   signer,
		adminKey: adminKey,
		tokenTTL: tokenTTL,
		svc:      svc,
	}
}

// IssueToken exchanges the admin key for a bearer token.
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	params, err := web.ParamsFromContext[TokenRequest](r.Context())
	if err != nil {
		web.Fail(w, http.StatusBadRequest, err, message.InvalidInput, nil)
		return
	}

	if !security.ConstantTimeCompareStr(params.Key, h.adminKey) {
		web.Fail(w, http.StatusUnauthorized, errors.New("admin key mismatch"), message.InvalidKey, nil)
		return
	}

	token, err := h.signer.Sign(TokenSubject, []string{TokenSubject}, h.tokenTTL)
	if err != nil {
		web.Fail(w, http.StatusInternalServerError, err, message.ServerError, nil)
		return
	}

	payload := &TokenResponse{
		Token:     token,
		ExpiresIn: int64(h.tokenTTL.Seconds()),
	}
	web.OK(w, http.StatusOK, nil, payload)
}

// Refresh forces an upstream fetch, bypassing the snapshot TTL.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Refresh(r.Context())
	if err != nil {
		if errors.Is(err, stats.ErrNoData) {
			web.Fail(w, http.StatusBadGateway, err, message.NoData, nil)
			return
		}
		web.Fail(w, http.StatusInternalServerError, err, message.ServerError, nil)
		return
	}

	msg := "Snapshot refreshed."
	web.OK(w, http.StatusOK, &msg, &result)
}
