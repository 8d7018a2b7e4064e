package utilities

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
	strictPolicy = bluemonday.StrictPolicy()
	likeEscaper  = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
)

// SplitTags normalizes comma separated string into trimmed, non-empty tokens
func SplitTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// NormalizeTags accepts string or array of strings (json decoded) and returns set of trimmed tokens
func NormalizeTags(raw interface{}) ([]string, error) {
	var parts []string
	switch v := raw.(type) {
	case nil:
		return []string{}, nil
	case string:
		parts = SplitTags(v)
	case []string:
		for _, s := range v {
			parts = append(parts, SplitTags(s)...)
		}
	case []interface{}:
		for _, s := range v {
			str, ok := s.(string)
			if !ok {
				return nil, Validation(fmt.Sprintf("Tag %v is not a string", s))
			}
			parts = append(parts, SplitTags(str)...)
		}
	default:
		return nil, Validation("Tags must be a string or array of strings")
	}

	seen := map[string]bool{}
	tags := []string{}
	for _, p := range parts {
		if !seen[p] {
			seen[p] = true
			tags = append(tags, p)
		}
	}
	return tags, nil
}

// LikePattern builds ILIKE substring pattern treating s literally
func LikePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// ValidEmail reports whether email looks like an address
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Sanitize strips all markup from user text
func Sanitize(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}
