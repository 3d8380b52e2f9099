package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/author"
	"library-backend/pkg/cache"
)

// postgresRepository implements author.Repository using pgxpool, with a
// Redis read-through cache on the by-id lookup.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) author.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const (
	authorCacheKeyPrefix = "author:"
	cacheTTL             = 15 * time.Minute
)

func (r *postgresRepository) Create(ctx context.Context, a *author.Author) (*author.Author, error) {
	query := `
        INSERT INTO authors (name, born)
        VALUES ($1, $2)
        RETURNING id, name, born, created_at, updated_at
    `

	var created author.Author
	err := r.pool.QueryRow(ctx, query, a.Name, a.Born).Scan(
		&created.ID,
		&created.Name,
		&created.Born,
		&created.CreatedAt,
		&created.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "name") {
				return nil, author.ErrNameTaken
			}
		}
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	cacheKey := authorCacheKeyPrefix + id.String()

	var a author.Author
	found, err := r.cache.Get(ctx, cacheKey, &a)
	if err == nil && found {
		return &a, nil
	}

	query := `
        SELECT id, name, born, created_at, updated_at
        FROM authors
        WHERE id = $1
    `

	err = r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.Name,
		&a.Born,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	_ = r.cache.Set(ctx, cacheKey, a, cacheTTL)

	return &a, nil
}

func (r *postgresRepository) FindByName(ctx context.Context, name string) (*author.Author, error) {
	query := `
        SELECT id, name, born, created_at, updated_at
        FROM authors
        WHERE name = $1
    `

	var a author.Author
	err := r.pool.QueryRow(ctx, query, name).Scan(
		&a.ID,
		&a.Name,
		&a.Born,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by name: %w", err)
	}

	return &a, nil
}

func (r *postgresRepository) UpdateBorn(ctx context.Context, id uuid.UUID, born int) (*author.Author, error) {
	query := `
        UPDATE authors
        SET born = $1, updated_at = NOW()
        WHERE id = $2
        RETURNING id, name, born, created_at, updated_at
    `

	var updated author.Author
	err := r.pool.QueryRow(ctx, query, born, id).Scan(
		&updated.ID,
		&updated.Name,
		&updated.Born,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}

	_ = r.cache.Delete(ctx, authorCacheKeyPrefix+id.String())

	return &updated, nil
}

func (r *postgresRepository) ListWithBookCount(ctx context.Context) ([]author.WithBookCount, error) {
	query := `
        SELECT a.id, a.name, a.born, a.created_at, a.updated_at,
               COUNT(b.id) AS book_count
        FROM authors a
        LEFT JOIN books b ON b.author_id = a.id
        GROUP BY a.id
        ORDER BY a.name ASC
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	var authors []author.WithBookCount
	for rows.Next() {
		var a author.WithBookCount
		if err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.Born,
			&a.CreatedAt,
			&a.UpdatedAt,
			&a.BookCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating authors: %w", err)
	}

	return authors, nil
}

func (r *postgresRepository) BookCount(ctx context.Context, id uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM books WHERE author_id = $1`

	var count int
	if err := r.pool.QueryRow(ctx, query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}

	return count, nil
}
