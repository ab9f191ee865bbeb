package admin_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/connyyu/pdbstats/internal/admin"
	"github.com/connyyu/pdbstats/internal/pkg/web"
	"github.com/connyyu/pdbstats/internal/platform/jwt"
	"github.com/connyyu/pdbstats/internal/stats"
)

const testAdminKey = "supersecret"

func signedTokenSigner(token string) *jwt.StubSigner {
	return &jwt.StubSigner{
		SignFunc: func(_ string, _ []string, _ time.Duration) (string, error) {
			return token, nil
		},
	}
}

func TestHandler_IssueToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		key            string
		signer         jwt.Signer
		wantStatusCode int
	}{
		{"correct key", testAdminKey, signedTokenSigner("signed-token"), http.StatusOK},
		{"wrong key", "guessing", signedTokenSigner("signed-token"), http.StatusUnauthorized},
		{"wrong key with matching length", "supersecreT", signedTokenSigner("signed-token"), http.StatusUnauthorized},
		{
			"signer failure",
			testAdminKey,
			&jwt.StubSigner{
				SignFunc: func(_ string, _ []string, _ time.Duration) (string, error) {
					return "", errors.New("boom")
				},
			},
			http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := admin.NewHandler(tc.signer, testAdminKey, 15*time.Minute, &stats.StubService{})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/token", http.NoBody)
			ctx := web.NewContextWithParams(req.Context(), admin.TokenRequest{Key: tc.key})
			req = req.WithContext(ctx)
			rec := httptest.NewRecorder()

			h.IssueToken(rec, req)

			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tc.wantStatusCode {
				t.Fatalf("res.StatusCode = %d, want: %d", res.StatusCode, tc.wantStatusCode)
			}

			if tc.wantStatusCode != http.StatusOK {
				return
			}

			var body web.OKResponse[*admin.TokenResponse]
			if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}

			if got, want := body.Data.Token, "signed-token"; got != want {
				t.Errorf("body.Data.Token = %q, want: %q", got, want)
			}

			if got, want := body.Data.ExpiresIn, int64(900); got != want {
				t.Errorf("body.Data.ExpiresIn = %d, want: %d", got, want)
			}
		})
	}
}

func TestHandler_Refresh(t *testing.T) {
	t.Parallel()

	fetchedAt := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		svc            stats.Service
		wantStatusCode int
	}{
		{
			"refresh succeeds",
			&stats.StubService{
				RefreshFunc: func(_ context.Context) (stats.RefreshResult, error) {
					return stats.RefreshResult{Records: 250, FetchedAt: fetchedAt}, nil
				},
			},
			http.StatusOK,
		},
		{
			"upstream empty",
			&stats.StubService{
				RefreshFunc: func(_ context.Context) (stats.RefreshResult, error) {
					return stats.RefreshResult{}, stats.ErrNoData
				},
			},
			http.StatusBadGateway,
		},
		{
			"store failure",
			&stats.StubService{
				RefreshFunc: func(_ context.Context) (stats.RefreshResult, error) {
					return stats.RefreshResult{}, errors.New("db error")
				},
			},
			http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := admin.NewHandler(&jwt.StubSigner{}, testAdminKey, 15*time.Minute, tc.svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/refresh", http.NoBody)
			rec := httptest.NewRecorder()

			h.Refresh(rec, req)

			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tc.wantStatusCode {
				t.Fatalf("res.StatusCode = %d, want: %d", res.StatusCode, tc.wantStatusCode)
			}

			if tc.wantStatusCode == http.StatusOK {
				var body web.OKResponse[*stats.RefreshResult]
				if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if got, want := body.Data.Records, 250; got != want {
					t.Errorf("body.Data.Records = %d, want: %d", got, want)
				}
			}
		})
	}
}
