// Package router arma el árbol de rutas del API.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/dropDatabas3/bookwookie/internal/http/controllers"
	apperrors "github.com/dropDatabas3/bookwookie/internal/http/errors"
	mw "github.com/dropDatabas3/bookwookie/internal/http/middlewares"
	"github.com/dropDatabas3/bookwookie/internal/rate"
	"github.com/dropDatabas3/bookwookie/internal/token"
)

// Deps son las dependencias del router.
type Deps struct {
	Controllers *controllers.Controllers
	Issuer      *token.Issuer

	// LoginLimiter acota intentos de login (nil = sin límite).
	LoginLimiter rate.Limiter

	// GlobalRatePerMinute acota requests por IP en todo el API (0 = off).
	GlobalRatePerMinute int

	// MetricsHandler sirve /metrics (nil = ruta ausente).
	MetricsHandler http.Handler
}

// New construye el router con la cadena estándar: request id → recover →
// auth attach → logging. El attach NUNCA corta; cada ruta protegida
// declara su gate con la operación que la clasifica.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.WithRequestID)
	r.Use(mw.WithRecover)
	if deps.GlobalRatePerMinute > 0 {
		r.Use(httprate.LimitByIP(deps.GlobalRatePerMinute, time.Minute))
	}
	r.Use(mw.WithAuthContext(deps.Issuer))
	r.Use(mw.WithLogging)

	c := deps.Controllers

	r.Route("/auth", func(r chi.Router) {
		r.With(mw.WithLoginRateLimit(deps.LoginLimiter)).
			Post("/authenticate", c.Auth.Authenticate)
	})

	r.Route("/user", func(r chi.Router) {
		r.Post("/create", c.Users.Create) // público: registro
		r.With(mw.Authorize("getall")).Get("/getall", c.Users.GetAll)
		r.With(mw.Authorize("get")).Get("/{id}", c.Users.Get)
		r.With(mw.Authorize("update")).Post("/update", c.Users.Update)
		r.With(mw.Authorize("delete")).Delete("/{id}", c.Users.Delete)
	})

	r.Route("/book", func(r chi.Router) {
		r.With(mw.Authorize("get")).Get("/get", c.Books.Get)
		r.With(mw.Authorize("create")).Post("/create", c.Books.Create)
		r.With(mw.Authorize("update")).Post("/update", c.Books.Update)
		r.With(mw.Authorize("delete")).Delete("/{bookId}", c.Books.Delete)
	})

	r.Route("/file", func(r chi.Router) {
		r.With(mw.Authorize("get")).Get("/get", c.Files.Get)
		r.With(mw.Authorize("create")).Post("/create", c.Files.Create)
		r.With(mw.Authorize("update")).Post("/update", c.Files.Update)
		r.With(mw.Authorize("delete")).Delete("/{fileId}", c.Files.Delete)
	})

	r.Get("/healthz", c.Health.Healthz)
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apperrors.WriteError(w, r, apperrors.ErrNotFound)
	})

	return r
}
