package middlewares

import (
	"net/http"

	"go.uber.org/zap"

	apperrors "github.com/dropDatabas3/bookwookie/internal/http/errors"
	"github.com/dropDatabas3/bookwookie/internal/observability/logger"
)

// WithRecover captura panics y devuelve 500 en lugar de crashear.
func WithRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.From(r.Context()).Error("panic recovered",
					logger.Op("recover"),
					zap.Any("panic", rec),
				)
				apperrors.WriteError(w, r, apperrors.ErrInternalServerError.WithDetail("panic recovered"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
