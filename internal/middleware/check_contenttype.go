package middleware

import (
	"fmt"
	"net/http"

	"github.com/connyyu/pdbstats/internal/pkg/message"
	"github.com/connyyu/pdbstats/internal/pkg/web"
)

func CheckContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType := r.Header.Get(web.HeaderContentType)

		if contentType != web.MimeJSON {
			web.Fail(w, http.StatusNotAcceptable, fmt.Errorf("invalid content-type: %s", contentType), message.InvalidInput, nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
