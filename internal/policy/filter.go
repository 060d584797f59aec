package policy

import (
	"strings"

	"github.com/snipnote/snipnote/internal/models"
)

// Matches reports whether the note satisfies the search query: a
// case-insensitive substring match against title or content. An empty or
// whitespace-only query matches everything.
func Matches(n models.Note, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	query = strings.ToLower(query)
	return strings.Contains(strings.ToLower(n.Title), query) ||
		strings.Contains(strings.ToLower(n.Content), query)
}

// FilterNotes returns the notes matching the query, preserving input order.
func FilterNotes(notes []models.Note, query string) []models.Note {
	filtered := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if Matches(n, query) {
			filtered = append(filtered, n)
		}
	}
	return filtered
}
