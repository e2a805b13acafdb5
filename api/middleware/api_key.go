package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/vendasul/sugestao-vendedor/api/responses"
	pkgerrors "github.com/vendasul/sugestao-vendedor/pkg/errors"
	"github.com/vendasul/sugestao-vendedor/pkg/logger"
)

const apiKeyHeader = "X-API-Key"

// APIKey guards endpoints behind the static shared secret every client
// attaches to its requests. An empty configured token rejects everything.
func APIKey(token string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(apiKeyHeader)
			if token == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid api key"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
