// Package names resolves party display names for match snapshots.
package names

import "strings"

// Display joins first and last name with a single space, trimming whitespace
// and dropping empty parts. Returns "" when neither part is present; the
// snapshot stores that as an absent name rather than inventing one.
func Display(first, last string) string {
	parts := make([]string, 0, 2)
	if f := strings.TrimSpace(first); f != "" {
		parts = append(parts, f)
	}
	if l := strings.TrimSpace(last); l != "" {
		parts = append(parts, l)
	}
	return strings.Join(parts, " ")
}
