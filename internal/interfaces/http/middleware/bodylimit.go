package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/graveringshuset/backend/internal/interfaces/http/dto"
)

// BodyLimit returns a middleware that rejects request bodies above maxBytes.
// A declared Content-Length over the limit is refused up front; bodies
// without one are capped while streaming through http.MaxBytesReader.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse(dto.ErrCodePayloadTooLarge, "Request body exceeds maximum allowed size"))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
