package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/book"
	"library-backend/internal/domains/user"
	"library-backend/pkg/token"
)

type stubUserRepo struct {
	users map[uuid.UUID]*user.User
}

func (s *stubUserRepo) Create(_ context.Context, _ *user.User) (*user.User, error) {
	panic("not used")
}

func (s *stubUserRepo) FindByUsername(_ context.Context, _ string) (*user.User, error) {
	panic("not used")
}

func (s *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	if u, ok := s.users[id]; ok {
		out := *u
		return &out, nil
	}
	return nil, user.ErrUserNotFound
}

func (s *stubUserRepo) ExistsByUsername(_ context.Context, _ string) (bool, error) {
	panic("not used")
}

type stubBookRepo struct {
	byID map[uuid.UUID]book.Book
}

func (s *stubBookRepo) FindByTitle(_ context.Context, _ string) (*book.Book, error) {
	panic("not used")
}

func (s *stubBookRepo) CreateForUser(_ context.Context, _ *book.Book, _ uuid.UUID) (*book.Book, error) {
	panic("not used")
}

func (s *stubBookRepo) List(_ context.Context, _ book.Filter) ([]book.Book, error) {
	panic("not used")
}

func (s *stubBookRepo) ListByIDs(_ context.Context, ids []uuid.UUID) ([]book.Book, error) {
	out := make([]book.Book, 0, len(ids))
	for _, id := range ids {
		if b, ok := s.byID[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *token.Manager, *stubUserRepo, *stubBookRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := token.NewManager("test-secret")
	users := &stubUserRepo{users: make(map[uuid.UUID]*user.User)}
	books := &stubBookRepo{byID: make(map[uuid.UUID]book.Book)}

	router := gin.New()
	router.Use(NewIdentityResolver(tokens, users, books).Resolve())

	router.GET("/whoami", func(c *gin.Context) {
		if u, ok := CurrentUser(c); ok {
			c.JSON(http.StatusOK, gin.H{"username": u.Username, "books": len(u.Books)})
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": nil})
	})
	router.GET("/protected", RequireAuth(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	return router, tokens, users, books
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestResolveNoHeaderProceedsAnonymous(t *testing.T) {
	router, _, _, _ := newTestRouter(t)

	w := doRequest(router, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "null")
}

func TestResolveMalformedHeaderIsHard401(t *testing.T) {
	router, _, _, _ := newTestRouter(t)

	for _, header := range []string{"Token abc", "Bearer", "just-a-token"} {
		w := doRequest(router, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestResolveInvalidTokenIsHard401(t *testing.T) {
	router, _, _, _ := newTestRouter(t)

	// A present-but-bad credential must never downgrade to anonymous.
	w := doRequest(router, "Bearer not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHENTICATED")
}

func TestResolveUnknownUserIsHard401(t *testing.T) {
	router, tokens, _, _ := newTestRouter(t)

	signed, _, err := tokens.Issue(uuid.New())
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+signed)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestResolveLoadsUserWithBooks(t *testing.T) {
	router, tokens, users, books := newTestRouter(t)

	b1, b2 := uuid.New(), uuid.New()
	books.byID[b1] = book.Book{ID: b1, Title: "Clean Code"}
	books.byID[b2] = book.Book{ID: b2, Title: "Refactoring, edition 2"}

	u := &user.User{ID: uuid.New(), Username: "mluukkai", BookIDs: []uuid.UUID{b1, b2}}
	users.users[u.ID] = u

	signed, _, err := tokens.Issue(u.ID)
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+signed)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mluukkai")
	assert.Contains(t, w.Body.String(), `"books":2`)
}

func TestRequireAuthBlocksAnonymous(t *testing.T) {
	router, tokens, users, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	u := &user.User{ID: uuid.New(), Username: "mluukkai"}
	users.users[u.ID] = u
	signed, _, err := tokens.Issue(u.ID)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
