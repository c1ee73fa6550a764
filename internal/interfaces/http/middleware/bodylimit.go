package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scentline/backend/internal/interfaces/http/dto"
)

// BodyLimit rejects requests whose body exceeds maxBytes. Bodies
// without a declared length are capped while streaming.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.Response{
				Success: false,
				Error: &dto.ErrorInfo{
					Code:    "REQUEST_TOO_LARGE",
					Message: "Request body exceeds maximum allowed size",
				},
			})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
