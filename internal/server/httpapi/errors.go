package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/gin-gonic/gin"
)

const (
	msgNotFound    = "Not found."
	msgServerError = "A server error occurred."
)

// writeError maps service errors onto HTTP responses.
func (s *HTTPServer) writeError(c *gin.Context, err error) {
	var verr *common.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, verr.Fields)
	case errors.Is(err, common.ErrUnsupportedGrantType):
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrUnsupportedGrantType.Error()})
	case errors.Is(err, common.ErrInvalidClient):
		c.JSON(http.StatusUnauthorized, gin.H{"error": common.ErrInvalidClient.Error()})
	case common.IsAuthFailure(err):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": common.AuthFailure(err).Error()})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": msgNotFound})
	default:
		s.logger.Error(c.Request.Context(), "request failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": msgServerError})
	}
}

func (s *HTTPServer) badPayload(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"detail": "JSON parse error - " + err.Error()})
}
