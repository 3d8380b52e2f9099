package book

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"library-backend/internal/domains/author"
)

// MinTitleLength is the shortest title the catalog accepts.
const MinTitleLength = 2

// Book is the domain entity. Books are immutable once created: there is no
// edit or delete path through this service.
type Book struct {
	ID        uuid.UUID      `json:"id" db:"id"`
	Title     string         `json:"title" db:"title"` // unique
	Published int            `json:"published" db:"published"`
	Genres    pq.StringArray `json:"genres" db:"genres"`

	// References. PostedBy is nil only for seed rows that predate any
	// registered user; every book created through AddBook carries both.
	AuthorID uuid.UUID  `json:"author_id" db:"author_id"`
	PostedBy *uuid.UUID `json:"posted_by,omitempty" db:"posted_by"`

	// Author is expanded on read; never persisted on the book row.
	Author *author.Author `json:"author,omitempty" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Filter narrows List results. Author matches the exact stored name;
// Genre matches membership in the genres array.
type Filter struct {
	Author string `form:"author"`
	Genre  string `form:"genre"`
}
