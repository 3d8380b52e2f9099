package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/author"
	"library-backend/internal/domains/book"
	"library-backend/internal/domains/library"
	"library-backend/internal/events"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
)

// LibraryHandler exposes the authenticated catalog mutations and the
// subscription feeds.
type LibraryHandler struct {
	service library.Service
	hub     *events.Hub
}

func NewLibraryHandler(service library.Service, hub *events.Hub) *LibraryHandler {
	return &LibraryHandler{
		service: service,
		hub:     hub,
	}
}

// AddBook handles POST /books
func (h *LibraryHandler) AddBook(c *gin.Context) {
	poster, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthenticated(c, "not authenticated")
		return
	}

	var req library.AddBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	created, err := h.service.AddBook(c.Request.Context(), poster, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/books/"+created.ID.String())
	response.Success(c, http.StatusCreated, created)
}

// EditAuthor handles PATCH /authors/:id. An unknown author id is a 200
// with null data, not a 404; callers rely on that asymmetry.
func (h *LibraryHandler) EditAuthor(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); !ok {
		response.Unauthenticated(c, "not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid author id")
		return
	}

	var req library.EditAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		h.handleError(c, err)
		return
	}

	updated, err := h.service.EditAuthor(c.Request.Context(), id, req.SetBornTo)
	if err != nil {
		h.handleError(c, err)
		return
	}

	if updated == nil {
		response.NullData(c, http.StatusOK)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// SubscribeBookAdded handles GET /subscriptions/book-added (SSE).
func (h *LibraryHandler) SubscribeBookAdded(c *gin.Context) {
	h.stream(c, events.BookAdded)
}

// SubscribeAuthorEdited handles GET /subscriptions/author-edited (SSE).
func (h *LibraryHandler) SubscribeAuthorEdited(c *gin.Context) {
	h.stream(c, events.AuthorEdited)
}

// stream holds the connection open and pushes events of one kind as they
// are published. The subscription starts at connect time; there is no
// replay of earlier events.
func (h *LibraryHandler) stream(c *gin.Context, kind events.Kind) {
	sub := h.hub.Subscribe(kind)
	defer sub.Close()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Flush()

	clientGone := c.Request.Context().Done()

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-sub.Events():
			if !ok {
				return false
			}
			c.SSEvent(string(ev.Kind), ev.Payload)
			return true
		case <-clientGone:
			return false
		}
	})
}

func (h *LibraryHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "BAD_REQUEST", "validation failed", vErrs)
		return
	}

	switch {
	case errors.Is(err, library.ErrUnauthenticated):
		response.Unauthenticated(c, err.Error())
	case errors.Is(err, book.ErrInvalidTitle),
		errors.Is(err, book.ErrDuplicateTitle),
		errors.Is(err, book.ErrBookNotFound):
		response.ErrorResponse(c, book.ToHTTPStatus(err), book.ToErrorCode(err), err.Error())
	case errors.Is(err, author.ErrInvalidName),
		errors.Is(err, author.ErrNameTaken),
		errors.Is(err, author.ErrAuthorNotFound):
		response.ErrorResponse(c, author.ToHTTPStatus(err), author.ToErrorCode(err), err.Error())
	default:
		log.Error().Err(err).Msg("library operation failed")
		response.InternalServerError(c, "something went wrong")
	}
}
