package password

import "fmt"

// PolicyError explica por qué un password no cumple la política. Se surfacea
// al cliente tal cual, así que el texto no incluye el password.
type PolicyError struct {
	Reason string
}

func (e *PolicyError) Error() string { return e.Reason }

// Policy es la regla de fortaleza. Función pura, independiente del storage.
type Policy struct {
	MinLength int
}

// DefaultPolicy exige 8 caracteres como mínimo.
var DefaultPolicy = Policy{MinLength: 8}

// Check devuelve nil si el password cumple la política.
func (p Policy) Check(password string) error {
	if password == "" {
		return &PolicyError{Reason: "password is required"}
	}
	if len([]rune(password)) < p.MinLength {
		return &PolicyError{Reason: fmt.Sprintf("password must be at least %d characters", p.MinLength)}
	}
	return nil
}
