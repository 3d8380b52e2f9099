package author

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for authors. Lookups are case-sensitive:
// the unique index on name is the single enforcement point for duplicates,
// so the match rule here must be the index's rule.
type Repository interface {
	// Create inserts a new author.
	// Errors: ErrNameTaken if the name is already in use.
	Create(ctx context.Context, a *Author) (*Author, error)

	// FindByID retrieves an author by UUID.
	// Errors: ErrAuthorNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*Author, error)

	// FindByName retrieves an author by exact name.
	// Errors: ErrAuthorNotFound.
	FindByName(ctx context.Context, name string) (*Author, error)

	// UpdateBorn sets only the born year.
	// Errors: ErrAuthorNotFound.
	UpdateBorn(ctx context.Context, id uuid.UUID, born int) (*Author, error)

	// ListWithBookCount returns all authors with their computed book count.
	ListWithBookCount(ctx context.Context) ([]WithBookCount, error)

	// BookCount returns the number of books referencing the author.
	BookCount(ctx context.Context, id uuid.UUID) (int, error)
}
