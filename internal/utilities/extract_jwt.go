package utilities

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// BearerSchema is prefix of Authorization header carrying access token
const BearerSchema = "Bearer "

// ExtractBearerToken returns access token from Authorization header
func ExtractBearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")

	if len(authHeader) <= len(BearerSchema) || !strings.HasPrefix(authHeader, BearerSchema) {
		return "", AuthRequired("Invalid authorization header")
	}

	return strings.TrimSpace(authHeader[len(BearerSchema):]), nil
}
