// Package token emite y valida los bearer tokens del API.
//
// Los tokens son stateless: claims + firma HMAC-SHA256, sin estado en el
// servidor. Perder el secreto de firma invalida todos los tokens vivos.
package token

import (
	"errors"
	"time"

	"github.com/dropDatabas3/bookwookie/internal/authz"
	"github.com/dropDatabas3/bookwookie/internal/domain"
	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// TTL y leeway son constantes a propósito: hacerlas configurables es una
// invitación a regresiones de seguridad silenciosas.
const (
	// TTL es la vida del token desde su emisión.
	TTL = 60 * time.Minute

	issuerName = "bookwookie"
)

// AuthContext es el resultado de validar un token: quién es el caller y qué
// nivel tiene. Anonymous (zero value con None) representa "sin token" y
// también "token inválido" — para el resto del sistema son lo mismo.
type AuthContext struct {
	PrincipalID int
	Username    string
	Permission  authz.Level
}

// Anonymous es el contexto de un request sin identidad.
var Anonymous = AuthContext{Permission: authz.None}

// IsAnonymous reporta si el contexto no tiene identidad.
func (c AuthContext) IsAnonymous() bool { return c.PrincipalID == 0 }

// Issuer firma y valida tokens con un secreto simétrico de proceso,
// read-only después del arranque. Stateless: seguro para concurrencia
// ilimitada.
type Issuer struct {
	secret []byte
}

// NewIssuer falla con secreto vacío; eso es un fault de configuración que
// debe frenar el arranque, no un error por-request.
func NewIssuer(secret []byte) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, errors.New("token: signing secret is empty")
	}
	return &Issuer{secret: secret}, nil
}

// Issue construye un token firmado para el usuario con el nivel resuelto.
// Sin side effects más allá de construirlo.
func (i *Issuer) Issue(u *domain.User, level authz.Level) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(TTL)

	claims := jwtv5.MapClaims{
		"iss":      issuerName,
		"uid":      u.ID,
		"username": u.Username,
		"perm":     level.String(),
		"iat":      now.Unix(),
		"exp":      exp.Unix(),
	}
	signed, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Validate verifica firma y expiración (leeway cero) y extrae los claims.
// Cualquier falla — firma mala, token malformado, expirado, claim ausente —
// devuelve Anonymous, nunca un error: un token inválido equivale a no
// mandar token. Es un resultado explícito, no una excepción tragada; los
// tests lo assertean directo.
func (i *Issuer) Validate(raw string) AuthContext {
	if raw == "" {
		return Anonymous
	}

	tk, err := jwtv5.Parse(raw,
		func(*jwtv5.Token) (any, error) { return i.secret, nil },
		jwtv5.WithValidMethods([]string{"HS256"}),
		jwtv5.WithExpirationRequired(),
	)
	if err != nil || !tk.Valid {
		return Anonymous
	}

	claims, ok := tk.Claims.(jwtv5.MapClaims)
	if !ok {
		return Anonymous
	}

	uid, ok := claims["uid"].(float64)
	if !ok || uid <= 0 {
		return Anonymous
	}
	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return Anonymous
	}
	permName, ok := claims["perm"].(string)
	if !ok {
		return Anonymous
	}
	// la comparación de niveles es siempre ordinal; el nombre solo viaja
	// en el claim
	level, ok := authz.ParseLevel(permName)
	if !ok {
		return Anonymous
	}

	return AuthContext{
		PrincipalID: int(uid),
		Username:    username,
		Permission:  level,
	}
}
