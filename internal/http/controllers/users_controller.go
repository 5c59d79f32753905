package controllers

import (
	"net/http"

	"github.com/dropDatabas3/bookwookie/internal/http/dto"
	apperrors "github.com/dropDatabas3/bookwookie/internal/http/errors"
	"github.com/dropDatabas3/bookwookie/internal/http/helpers"
	"github.com/dropDatabas3/bookwookie/internal/http/middlewares"
	"github.com/dropDatabas3/bookwookie/internal/http/services"
)

type UsersController struct {
	svc *services.UserService
}

// Create maneja POST /user/create. Ruta pública: devuelve token
// (auto-login).
func (c *UsersController) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if detail, ok := dto.Check(req); !ok {
		apperrors.WriteError(w, r, apperrors.ErrBadRequest.WithDetail(detail))
		return
	}

	res, err := c.svc.Create(r.Context(), req)
	if err != nil {
		apperrors.WriteError(w, r, mapError(err, apperrors.ErrUserNotFound, apperrors.ErrUsernameTaken))
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, dto.AuthenticateResponse{
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		User:      dto.NewUserResponse(res.User),
	})
}

// Get maneja GET /user/{id}.
func (c *UsersController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.URLParamInt(w, r, "id")
	if !ok {
		return
	}
	u, err := c.svc.Get(r.Context(), id)
	if err != nil {
		apperrors.WriteError(w, r, mapError(err, apperrors.ErrUserNotFound, apperrors.ErrUsernameTaken))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.NewUserResponse(u))
}

// GetAll maneja GET /user/getall. La ruta pasa por el gate con la
// operación "getall", que al no estar clasificada exige Admin.
func (c *UsersController) GetAll(w http.ResponseWriter, r *http.Request) {
	users, err := c.svc.GetAll(r.Context())
	if err != nil {
		apperrors.WriteError(w, r, mapError(err, apperrors.ErrUserNotFound, apperrors.ErrUsernameTaken))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.NewUserResponses(users))
}

// Update maneja POST /user/update (self-only).
func (c *UsersController) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateUserRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if detail, ok := dto.Check(req); !ok {
		apperrors.WriteError(w, r, apperrors.ErrBadRequest.WithDetail(detail))
		return
	}

	caller := middlewares.GetAuth(r.Context())
	id := req.UserID
	if id == 0 {
		id = caller.PrincipalID
	}

	u, err := c.svc.Update(r.Context(), caller, id, req)
	if err != nil {
		apperrors.WriteError(w, r, mapError(err, apperrors.ErrUserNotFound, apperrors.ErrUsernameTaken))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.NewUserResponse(u))
}

// Delete maneja DELETE /user/{id} (self-only).
func (c *UsersController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.URLParamInt(w, r, "id")
	if !ok {
		return
	}
	caller := middlewares.GetAuth(r.Context())

	if err := c.svc.Delete(r.Context(), caller, id); err != nil {
		apperrors.WriteError(w, r, mapError(err, apperrors.ErrUserNotFound, apperrors.ErrUsernameTaken))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
