package middlewares

import (
	"net/http"
	"strings"

	"github.com/dropDatabas3/bookwookie/internal/authz"
	apperrors "github.com/dropDatabas3/bookwookie/internal/http/errors"
	"github.com/dropDatabas3/bookwookie/internal/metrics"
	"github.com/dropDatabas3/bookwookie/internal/observability/logger"
	"github.com/dropDatabas3/bookwookie/internal/token"
)

// WithAuthContext valida el bearer token (si vino) y cuelga el
// AuthContext resultante. NUNCA rechaza: un token inválido deja al
// request como anónimo y la decisión la toma el gate de la ruta.
func WithAuthContext(issuer *token.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ac := issuer.Validate(bearerToken(r))

			ctx := WithAuth(r.Context(), ac)
			if !ac.IsAnonymous() {
				ctx = logger.ToContext(ctx, logger.From(ctx).With(
					logger.UserID(ac.PrincipalID),
					logger.Permission(ac.Permission.String()),
				))
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Authorize es el gate de las rutas protegidas: resuelve el nivel que
// exige la operación y lo compara ordinalmente contra el del caller.
//
// Dos rechazos distintos, ambos 401:
//   - anónimo (sin token, token inválido o vencido) → NOT_AUTHENTICATED
//   - autenticado pero nivel insuficiente → INSUFFICIENT_PERMISSION
func Authorize(operation string) func(http.Handler) http.Handler {
	required := authz.RequiredFor(operation)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ac := GetAuth(r.Context())

			if ac.IsAnonymous() {
				metrics.AuthRejectsTotal.WithLabelValues("not_authenticated").Inc()
				apperrors.WriteError(w, r, apperrors.ErrNotAuthenticated)
				return
			}
			if ac.Permission < required {
				metrics.AuthRejectsTotal.WithLabelValues("insufficient_permission").Inc()
				logger.From(r.Context()).Warn("permission denied",
					logger.Operation(operation),
					logger.Permission(ac.Permission.String()),
				)
				apperrors.WriteError(w, r, apperrors.ErrInsufficientPermission)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
