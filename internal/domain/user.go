package domain

// User es la cuenta de un autor. Salt y Hash nunca se serializan hacia
// afuera; los DTOs de respuesta los omiten y aquí van con json:"-" como
// segunda línea de defensa.
type User struct {
	ID        int    `json:"userId"`
	Username  string `json:"username"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Pseudonym string `json:"pseudonym,omitempty"`
	Salt      []byte `json:"-"`
	Hash      []byte `json:"-"`
}

// OwnerID implementa authz.Owned: la cuenta se pertenece a sí misma,
// así update/delete de usuario pasan por el mismo enforcement que books/files.
func (u *User) OwnerID() int { return u.ID }
