package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nonoumasy/bloodlines/pkg/server/dto"
	"github.com/nonoumasy/bloodlines/pkg/wikidata"
)

// statusClientClosedRequest is the nginx convention for a request whose
// client went away before a response was ready.
const statusClientClosedRequest = 499

// writeError maps the client error taxonomy onto HTTP statuses:
// NotFound 404, malformed id 400, transport failure 502, cancellation
// 499 (no error body; superseded work is discarded, never surfaced).
func writeError(c *gin.Context, err error) {
	switch {
	case wikidata.IsCancelled(err):
		c.AbortWithStatus(statusClientClosedRequest)
	case errors.Is(err, wikidata.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "not_found",
			Message: "no record for this identifier",
		})
	case errors.Is(err, wikidata.ErrInvalidID):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_id",
			Message: "identifier must match Q<digits>",
		})
	case errors.Is(err, &wikidata.TransportError{}):
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{
			Error:   "transport_error",
			Message: "the knowledge base could not be reached",
		})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
	}
}
