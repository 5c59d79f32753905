// Package helpers tiene utilidades chicas compartidas por controllers.
package helpers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/dropDatabas3/bookwookie/internal/http/errors"
)

// ReadJSON decodifica el body JSON (tolerante a campos desconocidos).
// Valida Content-Type y limita el body a 1MB. Devuelve false si ya
// escribió el error HTTP.
func ReadJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := strings.ToLower(r.Header.Get("Content-Type"))
	if !strings.Contains(ct, "application/json") {
		apperrors.WriteError(w, r, apperrors.ErrInvalidJSON.WithDetail("Content-Type debe ser application/json"))
		return false
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil && err != io.EOF {
		apperrors.WriteError(w, r, apperrors.ErrInvalidJSON)
		return false
	}
	return true
}

// WriteJSON escribe una respuesta JSON estándar.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// URLParamInt lee un parámetro de ruta chi como entero positivo.
// Devuelve false si ya escribió el error HTTP.
func URLParamInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		apperrors.WriteError(w, r, apperrors.ErrInvalidParameter.WithDetail(name+" debe ser un entero positivo"))
		return 0, false
	}
	return id, true
}
