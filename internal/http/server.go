// Package http arma el servidor sobre el router.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/dropDatabas3/bookwookie/internal/observability/logger"
	"go.uber.org/zap"
)

// Server envuelve http.Server con timeouts sanos y shutdown ordenado.
type Server struct {
	srv *http.Server
}

func NewServer(addr string, handler http.Handler) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       90 * time.Second,
		},
	}
}

// ListenAndServe bloquea hasta que el server cierre.
func (s *Server) ListenAndServe() error {
	logger.L().Info("http server listening", zap.String("addr", s.srv.Addr))
	return s.srv.ListenAndServe()
}

// Shutdown drena las conexiones en curso con el deadline del contexto.
func (s *Server) Shutdown(ctx context.Context) error {
	logger.L().Info("http server shutting down")
	return s.srv.Shutdown(ctx)
}
