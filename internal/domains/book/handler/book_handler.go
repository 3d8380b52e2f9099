package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/book"
	"library-backend/internal/shared/response"
)

// BookHandler serves the read-only book queries.
type BookHandler struct {
	repo book.Repository
}

func NewBookHandler(repo book.Repository) *BookHandler {
	return &BookHandler{repo: repo}
}

// List handles GET /books?author=<name>&genre=<genre>
func (h *BookHandler) List(c *gin.Context) {
	var filter book.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	books, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list books")
		response.InternalServerError(c, "something went wrong")
		return
	}

	if books == nil {
		books = []book.Book{}
	}

	response.Success(c, http.StatusOK, books)
}
