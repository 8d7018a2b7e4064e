// Package services holds the operations behind every endpoint. Each operation
// validate its input and returns *utilities.AppError on failure.
package services

import (
	"strings"
)

// Page size bounds
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// NormalizePage clamps page to >= 1 and pageSize to [1, MaxPageSize], 0 or less pageSize become def
func NormalizePage(page, pageSize, def int) (int, int) {
	if page < 1 {
		page = 1
	}
	if def <= 0 {
		def = DefaultPageSize
	}
	if pageSize <= 0 {
		pageSize = def
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

func offset(page, pageSize int) int {
	return (page - 1) * pageSize
}

// descending reports whether order asks for descending sort, default is descending
func descending(order string) bool {
	return !strings.EqualFold(strings.TrimSpace(order), "asc")
}
