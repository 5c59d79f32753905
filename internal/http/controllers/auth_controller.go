package controllers

import (
	"net/http"

	"github.com/dropDatabas3/bookwookie/internal/http/dto"
	apperrors "github.com/dropDatabas3/bookwookie/internal/http/errors"
	"github.com/dropDatabas3/bookwookie/internal/http/helpers"
	"github.com/dropDatabas3/bookwookie/internal/http/services"
)

type AuthController struct {
	svc *services.AuthService
}

// Authenticate maneja POST /auth/authenticate.
func (c *AuthController) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req dto.AuthenticateRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if detail, ok := dto.Check(req); !ok {
		apperrors.WriteError(w, r, apperrors.ErrBadRequest.WithDetail(detail))
		return
	}

	res, err := c.svc.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		apperrors.WriteError(w, r, mapError(err, apperrors.ErrNotFound, apperrors.ErrUsernameTaken))
		return
	}

	helpers.WriteJSON(w, http.StatusOK, dto.AuthenticateResponse{
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		User:      dto.NewUserResponse(res.User),
	})
}
