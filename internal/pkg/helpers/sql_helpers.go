package helpers

import "strings"

// NullIfBlank trims s and returns nil when nothing is left. Optional text
// columns are stored as NULL rather than empty strings.
func NullIfBlank(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// LikePattern wraps a search term for ILIKE, escaping the LIKE wildcards
// the user typed so they match literally.
func LikePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(term)) + "%"
}
