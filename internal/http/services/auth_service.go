package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dropDatabas3/bookwookie/internal/domain"
	"github.com/dropDatabas3/bookwookie/internal/metrics"
	"github.com/dropDatabas3/bookwookie/internal/observability/logger"
)

// AuthService resuelve credenciales a tokens.
type AuthService struct {
	deps Deps
}

// LoginResult es el resultado de una autenticación exitosa.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// Authenticate verifica username+password y emite un token con el nivel
// que la política resuelve para el usuario. Usuario inexistente y
// password incorrecto devuelven el mismo error: no filtramos qué
// usernames existen.
func (s *AuthService) Authenticate(ctx context.Context, username, plain string) (*LoginResult, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Op("Auth.Authenticate"))

	username = strings.TrimSpace(username)
	if username == "" || plain == "" {
		metrics.LoginsTotal.WithLabelValues("bad_credentials").Inc()
		return nil, ErrInvalidCredentials
	}

	u, err := s.deps.Store.Users().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.LoginsTotal.WithLabelValues("bad_credentials").Inc()
			log.Debug("user not found")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.deps.Hasher.Verify(ctx, plain, u.Salt, u.Hash)
	if err != nil {
		return nil, err
	}
	if !ok {
		metrics.LoginsTotal.WithLabelValues("bad_credentials").Inc()
		log.Debug("password check failed", logger.UserID(u.ID))
		return nil, ErrInvalidCredentials
	}

	// el nivel se resuelve en cada login; cambiar la política afecta
	// los tokens siguientes, nunca los ya emitidos
	level := s.deps.Policy.Resolve(u)

	tk, exp, err := s.deps.Issuer.Issue(u, level)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	log.Info("login ok", logger.UserID(u.ID), logger.Permission(level.String()))

	return &LoginResult{Token: tk, ExpiresAt: exp, User: u}, nil
}
