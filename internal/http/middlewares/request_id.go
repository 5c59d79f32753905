package middlewares

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dropDatabas3/bookwookie/internal/observability/logger"
)

const requestIDHeader = "X-Request-ID"

// WithRequestID asigna un request ID (respeta el del cliente si vino) y
// cuelga un logger con ese campo en el contexto.
func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		ctx := setRequestID(r.Context(), id)
		ctx = logger.ToContext(ctx, logger.L().With(logger.RequestID(id)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
