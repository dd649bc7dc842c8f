package search

import "strings"

// EscapeILIKE turns a keyword into a safe ILIKE substring pattern.
// Backslash, percent and underscore are escaped so user input cannot inject
// wildcards, then the keyword is wrapped in %...% for substring matching.
func EscapeILIKE(keyword string) string {
	escaped := strings.NewReplacer(
		`\`, `\\`,
		`%`, `\%`,
		`_`, `\_`,
	).Replace(keyword)
	return "%" + escaped + "%"
}
