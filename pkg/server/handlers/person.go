package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nonoumasy/bloodlines"
	"github.com/nonoumasy/bloodlines/pkg/server/dto"
)

// PersonHandler handles person and tree retrieval requests
type PersonHandler struct {
	svc bloodlines.Client
}

// NewPersonHandler creates a new person handler
func NewPersonHandler(svc bloodlines.Client) *PersonHandler {
	return &PersonHandler{svc: svc}
}

// GetPerson handles GET /api/v1/person/:id
func (h *PersonHandler) GetPerson(c *gin.Context) {
	person, err := h.svc.Person(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromPerson(person))
}

// GetTree handles GET /api/v1/tree/:id?depth=<n>. Depth defaults to the
// configured bound and is clamped to it. A failed branch appears in the
// response with a local indicator while the rest of the tree is usable;
// only a failed root maps to an error status.
func (h *PersonHandler) GetTree(c *gin.Context) {
	depth := -1
	if raw := c.Query("depth"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "invalid_request",
				Message: "depth must be a non-negative integer",
			})
			return
		}
		depth = parsed
	}

	node, err := h.svc.Tree(c.Request.Context(), c.Param("id"), depth)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromNode(node))
}
