package authz

import "errors"

// ErrNotOwner se devuelve cuando el caller intenta mutar un recurso ajeno.
// Se mapea a 403: la identidad es válida, el recurso no es suyo.
var ErrNotOwner = errors.New("caller does not own this resource")

// Owned es cualquier entidad con un dueño asignado por el servidor al
// crearla. El owner id es inmutable después de la creación.
type Owned interface {
	OwnerID() int
}

// AssertOwner confirma que el recurso pertenece al caller. Se llama después
// de fetchear el recurso y antes de aplicar cualquier mutación: en caso de
// error no puede haber escritura parcial (read, check, write).
//
// Es independiente del nivel de permiso: un usuario con Delete igual no
// puede borrar registros de otro.
func AssertOwner(resource Owned, callerID int) error {
	if resource == nil || resource.OwnerID() != callerID {
		return ErrNotOwner
	}
	return nil
}
