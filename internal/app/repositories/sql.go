package repositories

import "strings"

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}

// prefixColumns qualifies every column with a table alias
func prefixColumns(alias string, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = alias + "." + c
	}
	return out
}
