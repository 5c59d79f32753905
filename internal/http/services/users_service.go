package services

import (
	"context"
	"strings"
	"time"

	"github.com/dropDatabas3/bookwookie/internal/authz"
	"github.com/dropDatabas3/bookwookie/internal/domain"
	"github.com/dropDatabas3/bookwookie/internal/http/dto"
	"github.com/dropDatabas3/bookwookie/internal/metrics"
	"github.com/dropDatabas3/bookwookie/internal/observability/logger"
	"github.com/dropDatabas3/bookwookie/internal/token"
)

// UserService maneja el CRUD de usuarios. Update y Delete son self-only:
// el recurso usuario es propiedad del propio usuario.
type UserService struct {
	deps Deps
}

// Create registra un usuario y devuelve un token (auto-login): el
// registro exitoso ya probó la identidad.
func (s *UserService) Create(ctx context.Context, in dto.CreateUserRequest) (*LoginResult, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Op("Users.Create"))

	in.Username = strings.TrimSpace(in.Username)

	if err := s.deps.PwCheck.Check(in.Password); err != nil {
		return nil, err
	}

	salt, err := s.deps.Hasher.CreateSalt()
	if err != nil {
		return nil, err
	}
	hash, err := s.hashTimed(ctx, in.Password, salt)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Pseudonym: in.Pseudonym,
		Salt:      salt,
		Hash:      hash,
	}
	if err := s.deps.Store.Users().Create(ctx, u); err != nil {
		return nil, err
	}

	level := s.deps.Policy.Resolve(u)
	tk, exp, err := s.deps.Issuer.Issue(u, level)
	if err != nil {
		return nil, err
	}

	log.Info("user registered", logger.UserID(u.ID), logger.Permission(level.String()))
	return &LoginResult{Token: tk, ExpiresAt: exp, User: u}, nil
}

func (s *UserService) Get(ctx context.Context, id int) (*domain.User, error) {
	return s.deps.Store.Users().GetByID(ctx, id)
}

func (s *UserService) GetAll(ctx context.Context) ([]domain.User, error) {
	return s.deps.Store.Users().List(ctx)
}

// Update modifica el perfil indicado. El ownership se chequea DESPUÉS
// del fetch y antes de mutar: un id ajeno con registro existente da
// not-owner, no not-found.
func (s *UserService) Update(ctx context.Context, caller token.AuthContext, id int, in dto.UpdateUserRequest) (*domain.User, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Op("Users.Update"))

	u, err := s.deps.Store.Users().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.AssertOwner(u, caller.PrincipalID); err != nil {
		metrics.AuthRejectsTotal.WithLabelValues("not_owner").Inc()
		return nil, err
	}

	if in.Username != nil {
		u.Username = strings.TrimSpace(*in.Username)
	}
	if in.FirstName != nil {
		u.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		u.LastName = *in.LastName
	}
	if in.Pseudonym != nil {
		u.Pseudonym = *in.Pseudonym
	}
	if in.Password != nil {
		if err := s.deps.PwCheck.Check(*in.Password); err != nil {
			return nil, err
		}
		// cambio de password = salt nuevo, nunca se reusa el anterior
		salt, err := s.deps.Hasher.CreateSalt()
		if err != nil {
			return nil, err
		}
		hash, err := s.hashTimed(ctx, *in.Password, salt)
		if err != nil {
			return nil, err
		}
		u.Salt = salt
		u.Hash = hash
	}

	if err := s.deps.Store.Users().Update(ctx, u); err != nil {
		return nil, err
	}
	log.Info("user updated", logger.UserID(u.ID))
	return u, nil
}

// Delete borra la cuenta indicada, solo si es la del caller.
func (s *UserService) Delete(ctx context.Context, caller token.AuthContext, id int) error {
	u, err := s.deps.Store.Users().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.AssertOwner(u, caller.PrincipalID); err != nil {
		metrics.AuthRejectsTotal.WithLabelValues("not_owner").Inc()
		return err
	}
	if err := s.deps.Store.Users().Delete(ctx, id); err != nil {
		return err
	}
	logger.From(ctx).Info("user deleted", logger.Layer("service"), logger.Op("Users.Delete"), logger.UserID(id))
	return nil
}

func (s *UserService) hashTimed(ctx context.Context, plain string, salt []byte) ([]byte, error) {
	start := time.Now()
	hash, err := s.deps.Hasher.Hash(ctx, plain, salt)
	if err == nil {
		metrics.HashDuration.Observe(time.Since(start).Seconds())
	}
	return hash, err
}
