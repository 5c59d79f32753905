// Package authz contiene las reglas de permisos y ownership.
//
// El nivel de permiso es un orden total; todas las comparaciones son por
// ordinal, nunca por nombre. El nombre solo existe para claims y logs.
package authz

import "strings"

// Level es un punto en la escala de permisos, en orden ascendente de acceso.
type Level int

const (
	// None: sin permisos (requests anónimos).
	None Level = iota
	// View: solo lectura.
	View
	Update
	Create
	Delete
	// Admin: nivel máximo, solo para el superusuario.
	Admin
)

var levelNames = map[Level]string{
	None:   "None",
	View:   "View",
	Update: "Update",
	Create: "Create",
	Delete: "Delete",
	Admin:  "Admin",
}

func (l Level) String() string {
	if s, ok := levelNames[l]; ok {
		return s
	}
	return "None"
}

// ParseLevel resuelve un nombre de nivel (case-insensitive). El segundo
// retorno indica si hubo match; sin match devuelve None.
func ParseLevel(name string) (Level, bool) {
	for l, s := range levelNames {
		if strings.EqualFold(s, name) {
			return l, true
		}
	}
	return None, false
}

// RequiredFor mapea el nombre de una operación al nivel que exige.
//
// Tabla canónica (decisión documentada en DESIGN.md; el diseño anterior
// derivaba esto parseando el nombre de la action contra el enum):
//
//	get, list → View
//	update    → Update
//	create    → Create
//	delete    → Delete
//	cualquier otro nombre → Admin (fail-closed para endpoints sin clasificar)
func RequiredFor(operation string) Level {
	switch strings.ToLower(strings.TrimSpace(operation)) {
	case "get", "list", "view":
		return View
	case "update":
		return Update
	case "create":
		return Create
	case "delete":
		return Delete
	default:
		return Admin
	}
}
