package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/author"
	"library-backend/internal/domains/book"
	"library-backend/internal/domains/library"
	"library-backend/internal/domains/user"
	"library-backend/internal/events"
)

type stubLibraryService struct {
	addBook    func(poster *user.User, req library.AddBookRequest) (*book.Book, error)
	editAuthor func(id uuid.UUID, born int) (*author.Author, error)
}

func (s *stubLibraryService) AddBook(_ context.Context, poster *user.User, req library.AddBookRequest) (*book.Book, error) {
	return s.addBook(poster, req)
}

func (s *stubLibraryService) EditAuthor(_ context.Context, id uuid.UUID, born int) (*author.Author, error) {
	return s.editAuthor(id, born)
}

func newHandlerRouter(t *testing.T, svc library.Service, authed bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := events.NewHub()
	t.Cleanup(hub.Close)
	h := NewLibraryHandler(svc, hub)

	router := gin.New()
	if authed {
		router.Use(func(c *gin.Context) {
			c.Set("currentUser", &user.User{ID: uuid.New(), Username: "mluukkai"})
		})
	}
	router.POST("/books", h.AddBook)
	router.PATCH("/authors/:id", h.EditAuthor)
	return router
}

func TestEditAuthorUnknownIDReturnsNullData(t *testing.T) {
	svc := &stubLibraryService{
		editAuthor: func(_ uuid.UUID, _ int) (*author.Author, error) {
			return nil, nil
		},
	}
	router := newHandlerRouter(t, svc, true)

	body := bytes.NewBufferString(`{"set_born_to": 1952}`)
	req := httptest.NewRequest(http.MethodPatch, "/authors/"+uuid.NewString(), body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// 200 with an explicit null, not a 404.
	require.Equal(t, http.StatusOK, w.Code)

	var envelope map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	raw, ok := envelope["data"]
	require.True(t, ok, "data key must be present")
	assert.Equal(t, "null", string(raw))
}

func TestEditAuthorReturnsUpdatedRecord(t *testing.T) {
	svc := &stubLibraryService{
		editAuthor: func(id uuid.UUID, b int) (*author.Author, error) {
			return &author.Author{ID: id, Name: "Martin Fowler", Born: &b}, nil
		},
	}
	router := newHandlerRouter(t, svc, true)

	body := bytes.NewBufferString(`{"set_born_to": 1963}`)
	req := httptest.NewRequest(http.MethodPatch, "/authors/"+uuid.NewString(), body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Martin Fowler")
	assert.Contains(t, w.Body.String(), "1963")
}

func TestEditAuthorInvalidID(t *testing.T) {
	svc := &stubLibraryService{
		editAuthor: func(_ uuid.UUID, _ int) (*author.Author, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	router := newHandlerRouter(t, svc, true)

	body := bytes.NewBufferString(`{"set_born_to": 1952}`)
	req := httptest.NewRequest(http.MethodPatch, "/authors/not-a-uuid", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddBookUnauthenticated(t *testing.T) {
	svc := &stubLibraryService{
		addBook: func(_ *user.User, _ library.AddBookRequest) (*book.Book, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	router := newHandlerRouter(t, svc, false)

	body := bytes.NewBufferString(`{"title":"Clean Code","author":"Robert Martin","published":2008}`)
	req := httptest.NewRequest(http.MethodPost, "/books", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHENTICATED")
}

func TestAddBookCreated(t *testing.T) {
	bookID := uuid.New()
	svc := &stubLibraryService{
		addBook: func(poster *user.User, req library.AddBookRequest) (*book.Book, error) {
			require.NotNil(t, poster)
			return &book.Book{ID: bookID, Title: req.Title, Published: req.Published}, nil
		},
	}
	router := newHandlerRouter(t, svc, true)

	body := bytes.NewBufferString(`{"title":"Clean Code","author":"Robert Martin","published":2008,"genres":["refactoring"]}`)
	req := httptest.NewRequest(http.MethodPost, "/books", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/v1/books/"+bookID.String(), w.Header().Get("Location"))
	assert.Contains(t, w.Body.String(), "Clean Code")
}

func TestAddBookDuplicateTitleConflict(t *testing.T) {
	svc := &stubLibraryService{
		addBook: func(_ *user.User, _ library.AddBookRequest) (*book.Book, error) {
			return nil, book.ErrDuplicateTitle
		},
	}
	router := newHandlerRouter(t, svc, true)

	body := bytes.NewBufferString(`{"title":"Clean Code","author":"Robert Martin","published":2008}`)
	req := httptest.NewRequest(http.MethodPost, "/books", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, book.ToHTTPStatus(book.ErrDuplicateTitle), w.Code)
	assert.Contains(t, w.Body.String(), "DUPLICATE_TITLE")
}
