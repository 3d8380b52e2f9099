package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for users.
type Repository interface {
	// Create inserts a new user.
	// Errors: ErrUsernameTaken if the username is already in use.
	Create(ctx context.Context, u *User) (*User, error)

	// FindByUsername retrieves a user by exact username. Books are not
	// expanded; login only needs the hash.
	// Errors: ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByID retrieves a user by UUID. BookIDs is populated; expanding
	// it into Books is the identity resolver's job.
	// Errors: ErrUserNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// ExistsByUsername checks availability without fetching the record.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// Service defines business logic for signup and login.
type Service interface {
	// Register creates the user and issues a token for it.
	// Errors: ErrUsernameTaken, ErrPasswordTooShort.
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)

	// Login verifies credentials and issues a token.
	// Errors: ErrInvalidCredentials for unknown user and wrong password alike.
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
}
