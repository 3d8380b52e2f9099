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

	"library-backend/internal/domains/author"
	"library-backend/internal/domains/book"
	"library-backend/pkg/database"
)

// postgresRepository implements book.Repository using pgxpool.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) book.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) FindByTitle(ctx context.Context, title string) (*book.Book, error) {
	query := `
        SELECT id, title, published, genres, author_id, posted_by, created_at
        FROM books
        WHERE title = $1
    `

	var b book.Book
	err := r.pool.QueryRow(ctx, query, title).Scan(
		&b.ID,
		&b.Title,
		&b.Published,
		&b.Genres,
		&b.AuthorID,
		&b.PostedBy,
		&b.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by title: %w", err)
	}

	return &b, nil
}

// CreateForUser runs the book insert and the poster's book_ids append in a
// single transaction. A book visible without being reachable from its
// poster's list (or the reverse) is an inconsistency nothing else can
// repair, so both writes commit or neither does.
func (r *postgresRepository) CreateForUser(ctx context.Context, b *book.Book, posterID uuid.UUID) (*book.Book, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*book.Book, error) {
		insert := `
            INSERT INTO books (title, published, genres, author_id, posted_by)
            VALUES ($1, $2, $3, $4, $5)
            RETURNING id, title, published, genres, author_id, posted_by, created_at
        `

		var created book.Book
		err := tx.QueryRow(ctx, insert,
			b.Title,
			b.Published,
			b.Genres,
			b.AuthorID,
			posterID,
		).Scan(
			&created.ID,
			&created.Title,
			&created.Published,
			&created.Genres,
			&created.AuthorID,
			&created.PostedBy,
			&created.CreatedAt,
		)

		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				if strings.Contains(pgErr.ConstraintName, "title") {
					return nil, book.ErrDuplicateTitle
				}
			}
			return nil, fmt.Errorf("failed to create book: %w", err)
		}

		link := `
            UPDATE users
            SET book_ids = array_append(book_ids, $1), updated_at = NOW()
            WHERE id = $2
        `

		tag, err := tx.Exec(ctx, link, created.ID, posterID)
		if err != nil {
			return nil, fmt.Errorf("failed to link book to poster: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil, fmt.Errorf("poster %s not found", posterID)
		}

		return &created, nil
	})
}

func (r *postgresRepository) List(ctx context.Context, filter book.Filter) ([]book.Book, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
        SELECT b.id, b.title, b.published, b.genres, b.author_id, b.posted_by, b.created_at,
               a.id, a.name, a.born, a.created_at, a.updated_at
        FROM books b
        JOIN authors a ON a.id = b.author_id
        WHERE 1=1
    `)

	args := []interface{}{}
	argPos := 1

	if filter.Author != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND a.name = $%d", argPos))
		args = append(args, filter.Author)
		argPos++
	}

	if filter.Genre != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND $%d = ANY(b.genres)", argPos))
		args = append(args, filter.Genre)
		argPos++
	}

	queryBuilder.WriteString(" ORDER BY b.created_at ASC")

	rows, err := r.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	return scanBooksWithAuthor(rows)
}

func (r *postgresRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]book.Book, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	idStrings := make([]string, len(ids))
	for i, id := range ids {
		idStrings[i] = id.String()
	}

	// WITH ORDINALITY keeps the caller's order, which is the order the
	// user posted in.
	query := `
        SELECT b.id, b.title, b.published, b.genres, b.author_id, b.posted_by, b.created_at,
               a.id, a.name, a.born, a.created_at, a.updated_at
        FROM unnest($1::uuid[]) WITH ORDINALITY AS want(id, ord)
        JOIN books b ON b.id = want.id
        JOIN authors a ON a.id = b.author_id
        ORDER BY want.ord
    `

	rows, err := r.pool.Query(ctx, query, pq.Array(idStrings))
	if err != nil {
		return nil, fmt.Errorf("failed to query books by ids: %w", err)
	}
	defer rows.Close()

	return scanBooksWithAuthor(rows)
}

func scanBooksWithAuthor(rows pgx.Rows) ([]book.Book, error) {
	var books []book.Book
	for rows.Next() {
		var b book.Book
		var a author.Author
		if err := rows.Scan(
			&b.ID,
			&b.Title,
			&b.Published,
			&b.Genres,
			&b.AuthorID,
			&b.PostedBy,
			&b.CreatedAt,
			&a.ID,
			&a.Name,
			&a.Born,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		b.Author = &a
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	return books, nil
}
