package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SizeLimit caps request body at maxBodyBytes, reading past it fail
// with http.MaxBytesError which handlers report as validation error.
func SizeLimit(maxBodyBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
		c.Next()
	}
}
