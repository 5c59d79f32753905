// Package controllers traduce HTTP ↔ servicios: parseo de requests,
// mapeo de errores sentinel a AppError y serialización de respuestas.
package controllers

import (
	"errors"

	"github.com/dropDatabas3/bookwookie/internal/authz"
	"github.com/dropDatabas3/bookwookie/internal/domain"
	apperrors "github.com/dropDatabas3/bookwookie/internal/http/errors"
	"github.com/dropDatabas3/bookwookie/internal/http/services"
	"github.com/dropDatabas3/bookwookie/internal/security/password"
)

// Controllers agrupa los controllers para el wiring del router.
type Controllers struct {
	Auth   *AuthController
	Users  *UsersController
	Books  *BooksController
	Files  *FilesController
	Health *HealthController
}

func New(svc *services.Services, health *HealthController) *Controllers {
	return &Controllers{
		Auth:   &AuthController{svc: svc.Auth},
		Users:  &UsersController{svc: svc.Users},
		Books:  &BooksController{svc: svc.Books},
		Files:  &FilesController{svc: svc.Files},
		Health: health,
	}
}

// mapError traduce errores sentinel de servicios a AppError. notFound y
// conflict varían por recurso; el resto del mapeo es común.
func mapError(err error, notFound, conflict *apperrors.AppError) *apperrors.AppError {
	var policyErr *password.PolicyError

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return notFound
	case errors.Is(err, domain.ErrConflict):
		return conflict
	case errors.Is(err, authz.ErrNotOwner):
		return apperrors.ErrForbidden
	case errors.Is(err, services.ErrInvalidCredentials):
		return apperrors.ErrInvalidCredentials
	case errors.Is(err, services.ErrFileNotUsable):
		return apperrors.ErrInvalidParameter.WithDetail("fileId no existe o pertenece a otro usuario")
	case errors.As(err, &policyErr):
		return apperrors.ErrPasswordTooWeak.WithDetail(policyErr.Reason)
	default:
		return apperrors.ErrInternalServerError.WithCause(err)
	}
}
