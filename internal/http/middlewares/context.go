// Package middlewares tiene la cadena HTTP: request id, logging, auth y
// el gate de autorización.
package middlewares

import (
	"context"

	"github.com/dropDatabas3/bookwookie/internal/token"
)

type ctxKey string

const (
	ctxAuthKey      ctxKey = "auth"
	ctxRequestIDKey ctxKey = "request_id"
)

// WithAuth inyecta el AuthContext en el contexto del request.
func WithAuth(ctx context.Context, ac token.AuthContext) context.Context {
	return context.WithValue(ctx, ctxAuthKey, ac)
}

// GetAuth obtiene el AuthContext. Sin middleware de auth aplicado
// devuelve Anonymous.
func GetAuth(ctx context.Context) token.AuthContext {
	if v := ctx.Value(ctxAuthKey); v != nil {
		if ac, ok := v.(token.AuthContext); ok {
			return ac
		}
	}
	return token.Anonymous
}

func setRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxRequestIDKey, id)
}

// GetRequestID obtiene el request ID ("" si no hay).
func GetRequestID(ctx context.Context) string {
	if v := ctx.Value(ctxRequestIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
