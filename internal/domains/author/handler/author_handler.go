package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/author"
	"library-backend/internal/shared/response"
)

// AuthorHandler serves the read-only author queries.
type AuthorHandler struct {
	repo author.Repository
}

func NewAuthorHandler(repo author.Repository) *AuthorHandler {
	return &AuthorHandler{repo: repo}
}

// List handles GET /authors. Each author carries its computed book count.
func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.repo.ListWithBookCount(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list authors")
		response.InternalServerError(c, "something went wrong")
		return
	}

	if authors == nil {
		authors = []author.WithBookCount{}
	}

	response.Success(c, http.StatusOK, authors)
}
