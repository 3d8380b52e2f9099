package book

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for books.
type Repository interface {
	// FindByTitle retrieves a book by exact title.
	// Errors: ErrBookNotFound.
	FindByTitle(ctx context.Context, title string) (*Book, error)

	// CreateForUser inserts the book and appends its id to the poster's
	// book list as one atomic unit: either both persist or neither does.
	// Errors: ErrDuplicateTitle if the unique index rejects the title.
	CreateForUser(ctx context.Context, b *Book, posterID uuid.UUID) (*Book, error)

	// List returns books matching the filter, authors expanded.
	List(ctx context.Context, filter Filter) ([]Book, error)

	// ListByIDs returns the books for the given ids, preserving the order
	// of ids. Missing ids are skipped.
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]Book, error)
}
