// Package services implementa la lógica de negocio entre controllers y
// store. Los servicios devuelven errores sentinel; el mapeo a HTTP vive
// en los controllers.
package services

import (
	"errors"

	"github.com/dropDatabas3/bookwookie/internal/authz"
	"github.com/dropDatabas3/bookwookie/internal/files"
	"github.com/dropDatabas3/bookwookie/internal/security/password"
	"github.com/dropDatabas3/bookwookie/internal/store/core"
	"github.com/dropDatabas3/bookwookie/internal/token"
)

// Errores sentinel de la capa de servicios. NotFound/Conflict se
// propagan directo desde domain; NotOwner desde authz; las fallas de
// política de passwords viajan como *password.PolicyError.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrFileNotUsable      = errors.New("file does not exist or belongs to another user")
)

// Deps agrupa las dependencias compartidas de los servicios.
type Deps struct {
	Store   core.Store
	Hasher  *password.Hasher
	PwCheck password.Policy
	Policy  authz.Policy
	Issuer  *token.Issuer
	Files   *files.Storage
}

// Services agrupa los servicios ya construidos para el wiring.
type Services struct {
	Auth  *AuthService
	Users *UserService
	Books *BookService
	Files *FileService
}

func New(deps Deps) *Services {
	return &Services{
		Auth:  &AuthService{deps: deps},
		Users: &UserService{deps: deps},
		Books: &BookService{deps: deps},
		Files: &FileService{deps: deps},
	}
}
