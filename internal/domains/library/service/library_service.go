package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"library-backend/internal/domains/author"
	"library-backend/internal/domains/book"
	"library-backend/internal/domains/library"
	"library-backend/internal/domains/user"
	"library-backend/internal/events"
)

// libraryService implements library.Service.
type libraryService struct {
	authors author.Repository
	books   book.Repository
	hub     *events.Hub
}

func NewLibraryService(authors author.Repository, books book.Repository, hub *events.Hub) library.Service {
	return &libraryService{
		authors: authors,
		books:   books,
		hub:     hub,
	}
}

// AddBook orchestrates duplicate-title rejection, author find-or-create and
// the atomic book+poster write, strictly in that order.
func (s *libraryService) AddBook(ctx context.Context, poster *user.User, req library.AddBookRequest) (*book.Book, error) {
	if poster == nil {
		return nil, library.ErrUnauthenticated
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if len(req.Title) < book.MinTitleLength {
		return nil, book.ErrInvalidTitle
	}

	// Fast-path duplicate check. The unique index on title remains the
	// enforcement point: a concurrent insert slipping past this check
	// still surfaces as ErrDuplicateTitle from CreateForUser.
	_, err := s.books.FindByTitle(ctx, req.Title)
	if err == nil {
		return nil, book.ErrDuplicateTitle
	}
	if !errors.Is(err, book.ErrBookNotFound) {
		return nil, fmt.Errorf("check title: %w", err)
	}

	a, err := s.resolveAuthor(ctx, req.Author)
	if err != nil {
		return nil, err
	}

	newBook := &book.Book{
		Title:     req.Title,
		Published: req.Published,
		Genres:    pq.StringArray(req.Genres),
		AuthorID:  a.ID,
	}

	created, err := s.books.CreateForUser(ctx, newBook, poster.ID)
	if err != nil {
		return nil, err
	}

	created.Author = a

	// Fire-and-forget: publication can neither fail nor delay the
	// mutation's success response.
	s.hub.Publish(events.BookAdded, created)

	return created, nil
}

// resolveAuthor reuses an existing author by exact name or creates one with
// only the name set. Names are matched case-sensitively, the same rule the
// unique index enforces.
func (s *libraryService) resolveAuthor(ctx context.Context, name string) (*author.Author, error) {
	a, err := s.authors.FindByName(ctx, name)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, author.ErrAuthorNotFound) {
		return nil, fmt.Errorf("find author: %w", err)
	}

	// The length rule only gates implicit creation; an existing shorter
	// name (seeded or legacy) stays usable.
	if len(name) < author.MinNameLength {
		return nil, author.ErrInvalidName
	}

	created, err := s.authors.Create(ctx, &author.Author{Name: name})
	if errors.Is(err, author.ErrNameTaken) {
		// Lost a create race; the author exists now.
		return s.authors.FindByName(ctx, name)
	}
	if err != nil {
		return nil, err
	}

	return created, nil
}

// EditAuthor updates only the born year. The unknown-id case is a success
// with no record, a contract callers depend on; every other missing-entity
// case in this service is an error.
func (s *libraryService) EditAuthor(ctx context.Context, id uuid.UUID, born int) (*author.Author, error) {
	_, err := s.authors.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find author: %w", err)
	}

	updated, err := s.authors.UpdateBorn(ctx, id, born)
	if err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			// Deleted between lookup and update; same contract.
			return nil, nil
		}
		return nil, fmt.Errorf("update author: %w", err)
	}

	s.hub.Publish(events.AuthorEdited, updated)

	return updated, nil
}
