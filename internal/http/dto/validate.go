// Package dto define los requests/responses del API y su validación.
package dto

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate es la instancia compartida; los validators de esta lib son
// thread-safe y cachean la metadata de los structs.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Check valida un DTO y devuelve un detalle legible por campo.
func Check(v any) (string, bool) {
	err := validate.Struct(v)
	if err == nil {
		return "", true
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "payload inválido", false
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fe.Field()+" ("+fe.Tag()+")")
	}
	return "campos inválidos: " + strings.Join(parts, ", "), false
}
