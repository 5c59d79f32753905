package dto

import "github.com/dropDatabas3/bookwookie/internal/domain"

// CreateUserRequest registra un usuario nuevo.
type CreateUserRequest struct {
	Username  string `json:"username" validate:"required,min=1,max=64"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"firstName" validate:"max=64"`
	LastName  string `json:"lastName" validate:"max=64"`
	Pseudonym string `json:"pseudonym" validate:"max=64"`
}

// UpdateUserRequest modifica el perfil propio. UserID en 0 apunta a la
// cuenta del caller; un id ajeno rebota en el chequeo de ownership. Los
// punteros distinguen "no tocar" de "setear vacío"; Password no-nil
// re-saltea y re-hashea.
type UpdateUserRequest struct {
	UserID    int     `json:"userId,omitempty" validate:"gte=0"`
	Username  *string `json:"username,omitempty" validate:"omitempty,min=1,max=64"`
	Password  *string `json:"password,omitempty"`
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,max=64"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,max=64"`
	Pseudonym *string `json:"pseudonym,omitempty" validate:"omitempty,max=64"`
}

// UserResponse es el perfil público. Salt y hash jamás salen del server.
type UserResponse struct {
	ID        int    `json:"userId"`
	Username  string `json:"username"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Pseudonym string `json:"pseudonym,omitempty"`
}

func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Pseudonym: u.Pseudonym,
	}
}

func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
