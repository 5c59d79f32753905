package authz

import (
	"strings"

	"github.com/dropDatabas3/bookwookie/internal/domain"
)

// Policy resuelve el nivel de permiso de un usuario. Las listas vienen de
// configuración; los matches son case-insensitive sobre campos ya trimmeados.
type Policy struct {
	// RestrictedUsernames / RestrictedPseudonyms / RestrictedNames marcan
	// identidades degradadas a solo-lectura. Names matchea "First Last".
	RestrictedUsernames  []string
	RestrictedPseudonyms []string
	RestrictedNames      []string

	// SuperuserUsernames reciben Admin.
	SuperuserUsernames []string
}

// Resolve es una función pura: no toca storage ni estado por-request.
//
// Orden de evaluación significativo: restricted gana sobre superuser, y
// superuser gana sobre el default. Un usuario que matchea una restricción y
// además figura como superuser queda restringido.
func (p Policy) Resolve(u *domain.User) Level {
	if u == nil {
		// usuarios nil no reciben permisos
		return None
	}
	if p.isRestricted(u) {
		// identidades restringidas solo pueden leer
		return View
	}
	if containsFold(p.SuperuserUsernames, u.Username) {
		return Admin
	}
	// el resto puede administrar completamente sus propios registros;
	// de quién es cada registro lo decide ownership, no este nivel
	return Delete
}

func (p Policy) isRestricted(u *domain.User) bool {
	if containsFold(p.RestrictedUsernames, u.Username) {
		return true
	}
	if u.Pseudonym != "" && containsFold(p.RestrictedPseudonyms, u.Pseudonym) {
		return true
	}
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	return full != "" && containsFold(p.RestrictedNames, full)
}

func containsFold(haystack []string, needle string) bool {
	needle = strings.TrimSpace(needle)
	for _, h := range haystack {
		if strings.EqualFold(strings.TrimSpace(h), needle) {
			return true
		}
	}
	return false
}
