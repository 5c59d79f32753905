package dto

import "time"

// AuthenticateRequest son las credenciales del login.
type AuthenticateRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthenticateResponse devuelve el bearer token y el perfil del usuario.
type AuthenticateResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}
