package library

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/author"
	"library-backend/internal/domains/book"
	"library-backend/internal/domains/user"
)

// Service is the consistency core: the orchestration that keeps
// Book/Author/User cross-references from ever being left partially written.
type Service interface {
	// AddBook creates a book posted by poster, creating its author first
	// if the name is unknown. The book insert and the append to the
	// poster's book list are one atomic unit; on any failure nothing is
	// persisted. Publishes a BookAdded event on success.
	// Errors: ErrUnauthenticated, book.ErrInvalidTitle,
	// book.ErrDuplicateTitle, author.ErrInvalidName, author.ErrNameTaken.
	AddBook(ctx context.Context, poster *user.User, req AddBookRequest) (*book.Book, error)

	// EditAuthor sets the author's born year. An unknown id yields
	// (nil, nil): a successful result carrying no record, not an error.
	// Publishes an AuthorEdited event when a record was updated.
	EditAuthor(ctx context.Context, id uuid.UUID, born int) (*author.Author, error)
}
