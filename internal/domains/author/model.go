package author

import (
	"time"

	"github.com/google/uuid"
)

// MinNameLength applies when a new author is created implicitly while
// posting a book.
const MinNameLength = 4

// Author is the domain entity. Born is optional; the birth year of older
// authors in the catalog is not always known.
type Author struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"` // unique, case-sensitive as stored
	Born *int      `json:"born" db:"born"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// WithBookCount carries the computed number of books referencing the author.
// The count is derived on read, never stored.
type WithBookCount struct {
	Author
	BookCount int `json:"book_count"`
}
