package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"library-backend/internal/domains/user"
)

// postgresRepository implements user.Repository using pgxpool.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) user.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, u *user.User) (*user.User, error) {
	query := `
        INSERT INTO users (username, full_name, password_hash, favorite_genre)
        VALUES ($1, $2, $3, $4)
        RETURNING id, username, full_name, password_hash, favorite_genre, created_at, updated_at
    `

	var created user.User
	err := r.pool.QueryRow(ctx, query,
		u.Username,
		u.FullName,
		u.PasswordHash,
		u.FavoriteGenre,
	).Scan(
		&created.ID,
		&created.Username,
		&created.FullName,
		&created.PasswordHash,
		&created.FavoriteGenre,
		&created.CreatedAt,
		&created.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "username") {
				return nil, user.ErrUsernameTaken
			}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	query := `
        SELECT id, username, full_name, password_hash, favorite_genre, created_at, updated_at
        FROM users
        WHERE username = $1
    `

	var u user.User
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&u.ID,
		&u.Username,
		&u.FullName,
		&u.PasswordHash,
		&u.FavoriteGenre,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return &u, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `
        SELECT id, username, full_name, password_hash, favorite_genre, book_ids, created_at, updated_at
        FROM users
        WHERE id = $1
    `

	var u user.User
	var bookIDs pq.StringArray
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&u.ID,
		&u.Username,
		&u.FullName,
		&u.PasswordHash,
		&u.FavoriteGenre,
		&bookIDs,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	u.BookIDs = make([]uuid.UUID, 0, len(bookIDs))
	for _, raw := range bookIDs {
		bookID, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("malformed book id %q on user %s: %w", raw, id, err)
		}
		u.BookIDs = append(u.BookIDs, bookID)
	}

	return &u, nil
}

func (r *postgresRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check username existence: %w", err)
	}

	return exists, nil
}
