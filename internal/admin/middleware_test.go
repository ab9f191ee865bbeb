package admin_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/connyyu/pdbstats/internal/admin"
	"github.com/connyyu/pdbstats/internal/platform/jwt"
)

func TestRequireToken(t *testing.T) {
	t.Parallel()

	verifier := &jwt.StubSigner{
		VerifyFunc: func(tokenString string) (*jwt.Claims, error) {
			switch tokenString {
			case "valid-token":
				return &jwt.Claims{Subject: admin.TokenSubject}, nil
			case "other-subject":
				return &jwt.Claims{Subject: "someone-else"}, nil
			default:
				return nil, errors.New("bad token")
			}
		},
	}

	tests := []struct {
		name           string
		authorization  string
		wantStatusCode int
		nextCalled     bool
	}{
		{"valid token", "Bearer valid-token", http.StatusOK, true},
		{"missing header", "", http.StatusUnauthorized, false},
		{"missing bearer prefix", "valid-token", http.StatusUnauthorized, false},
		{"invalid token", "Bearer forged", http.StatusUnauthorized, false},
		{"wrong subject", "Bearer other-subject", http.StatusUnauthorized, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				subject, ok := admin.SubjectFromContext(r.Context())
				if !ok || subject != admin.TokenSubject {
					t.Errorf("subject in context = (%q, %v), want: (%q, true)", subject, ok, admin.TokenSubject)
				}
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/refresh", http.NoBody)
			if tc.authorization != "" {
				req.Header.Set("Authorization", tc.authorization)
			}
			rec := httptest.NewRecorder()

			admin.RequireToken(verifier)(next).ServeHTTP(rec, req)

			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tc.wantStatusCode {
				t.Errorf("res.StatusCode = %d, want: %d", res.StatusCode, tc.wantStatusCode)
			}

			if called != tc.nextCalled {
				t.Errorf("next called = %v, want: %v", called, tc.nextCalled)
			}
		})
	}
}
