package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nonoumasy/bloodlines"
	"github.com/nonoumasy/bloodlines/pkg/server/dto"
)

// SearchHandler handles person-search requests
type SearchHandler struct {
	svc bloodlines.Client
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(svc bloodlines.Client) *SearchHandler {
	return &SearchHandler{svc: svc}
}

// Search handles GET /api/v1/search?q=<query>. An empty hit list is a
// successful response, distinct from a transport failure.
func (h *SearchHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_request",
			Message: "query parameter q is required",
		})
		return
	}

	hits, err := h.svc.Search(c.Request.Context(), query)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SearchResults{
		Hits:  hits,
		Total: len(hits),
	})
}
