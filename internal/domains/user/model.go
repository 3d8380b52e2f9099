package user

import (
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/book"
)

// User is the domain entity. The password hash is write-only: it never
// appears in any response and no read path returns it to callers.
type User struct {
	ID       uuid.UUID `json:"id" db:"id"`
	Username string    `json:"username" db:"username"` // unique
	FullName string    `json:"fullname" db:"full_name"`

	PasswordHash string `json:"-" db:"password_hash"`

	FavoriteGenre string `json:"favorite_genre" db:"favorite_genre"`

	// BookIDs is the ordered list of books this user has posted. It is
	// appended to only inside the AddBook transaction.
	BookIDs []uuid.UUID `json:"-" db:"book_ids"`

	// Books is BookIDs expanded; populated when the user is loaded for an
	// authenticated request.
	Books []book.Book `json:"books" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
