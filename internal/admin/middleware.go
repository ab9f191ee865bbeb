package admin

import (
	"errors"
	"net/http"

	"github.com/connyyu/pdbstats/internal/pkg/message"
	"github.com/connyyu/pdbstats/internal/pkg/security"
	"github.com/connyyu/pdbstats/internal/pkg/web"
	"github.com/connyyu/pdbstats/internal/platform/jwt"
)

var ErrInvalidToken = errors.New("invalid token")

// RequireToken rejects requests without a valid operator bearer token.
func RequireToken(signer jwt.Signer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := security.ExtractBearerToken(r)
			if err != nil || token == "" {
				web.Fail(w, http.StatusUnauthorized, err, message.InvalidKey, nil)
				return
			}

			claims, err := signer.Verify(token)
			if err != nil {
				web.Fail(w, http.StatusUnauthorized, ErrInvalidToken, message.InvalidKey, nil)
				return
			}

			if claims.Subject != TokenSubject {
				web.Fail(w, http.StatusUnauthorized, ErrInvalidToken, message.InvalidKey, nil)
				return
			}

			ctx := ContextWithSubject(r.Context(), claims.Subject)
			r = r.WithContext(ctx)
			next.ServeHTTP(w, r)
		})
	}
}
