package domain

import "time"

// Book es un libro publicado. UserID es el dueño (autor) y lo asigna el
// servidor en Create; nunca viene del cliente y no cambia después.
type Book struct {
	ID          int       `json:"bookId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	FileID      *int      `json:"fileId,omitempty"`
	UserID      int       `json:"userId"`
}

func (b *Book) OwnerID() int { return b.UserID }
