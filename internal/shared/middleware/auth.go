package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/book"
	"library-backend/internal/domains/user"
	"library-backend/internal/shared/response"
	"library-backend/pkg/token"
)

const currentUserKey = "currentUser"

// IdentityResolver turns an optional bearer credential into a current user.
type IdentityResolver struct {
	tokens *token.Manager
	users  user.Repository
	books  book.Repository
}

func NewIdentityResolver(tokens *token.Manager, users user.Repository, books book.Repository) *IdentityResolver {
	return &IdentityResolver{
		tokens: tokens,
		users:  users,
		books:  books,
	}
}

// Resolve authenticates the request when a credential is present. No
// Authorization header means an anonymous context and the request proceeds;
// a present but invalid or expired credential is a hard 401. It is never
// silently downgraded to anonymous, so operations requiring identity fail
// at mutation time instead of acting for a "guest".
func (ir *IdentityResolver) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthenticated(c, "invalid authorization header format")
			c.Abort()
			return
		}

		userID, err := ir.tokens.Verify(parts[1])
		if err != nil {
			response.Unauthenticated(c, "invalid or expired token")
			c.Abort()
			return
		}

		u, err := ir.users.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				response.Unauthenticated(c, "invalid or expired token")
			} else {
				log.Error().Err(err).Msg("failed to load current user")
				response.InternalServerError(c, "could not resolve identity")
			}
			c.Abort()
			return
		}

		// Expand the posted-books list for the request's lifetime.
		u.Books, err = ir.books.ListByIDs(c.Request.Context(), u.BookIDs)
		if err != nil {
			log.Error().Err(err).Msg("failed to expand user books")
			response.InternalServerError(c, "could not resolve identity")
			c.Abort()
			return
		}

		c.Set(currentUserKey, u)
		c.Next()
	}
}

// RequireAuth rejects requests that reached the handler without a resolved
// identity. Chain it after Resolve on routes that mutate.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			response.Unauthenticated(c, "not authenticated")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user for this request, if any.
func CurrentUser(c *gin.Context) (*user.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*user.User)
	return u, ok
}
