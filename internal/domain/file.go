package domain

import "time"

// File es el registro de un archivo subido (ej: portada de un libro).
// Path es la ubicación en disco del servidor y no se expone al cliente.
type File struct {
	ID       int       `json:"fileId"`
	Purpose  string    `json:"purpose,omitempty"`
	Path     string    `json:"-"`
	FileName string    `json:"fileName"`
	Uploaded time.Time `json:"uploaded"`
	UserID   int       `json:"userId"`
}

func (f *File) OwnerID() int { return f.UserID }
