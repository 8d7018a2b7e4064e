package utilities

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// QueryInt reads integer query parameter key, def when absent
func QueryInt(c *gin.Context, key string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, Validation("Query parameter " + key + " must be an integer")
	}
	return n, nil
}

// PageQuery reads "page" and "limit" query parameters, zero limit means default size
func PageQuery(c *gin.Context) (page, limit int, err error) {
	if page, err = QueryInt(c, "page", 1); err != nil {
		return 0, 0, err
	}
	if limit, err = QueryInt(c, "limit", 0); err != nil {
		return 0, 0, err
	}
	return page, limit, nil
}

// ParamID reads positive integer path parameter key
func ParamID(c *gin.Context, key string) (uint, error) {
	n, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil || n == 0 {
		return 0, Validation("Invalid " + key)
	}
	return uint(n), nil
}
