package catalog

import (
	"strings"

	"github.com/meur/dexview/internal/models"
)

// Matches reports whether r matches query: the record number in decimal form
// equals query exactly, or the lower-cased name contains the lower-cased query.
// Records without a number only match by name.
func Matches(r models.Record, query string) bool {
	if r.Number != nil && r.NumberString() == query {
		return true
	}
	return strings.Contains(strings.ToLower(r.Name), strings.ToLower(query))
}

// Filter returns the records matching query in their original order.
// An empty query returns records unchanged.
func Filter(records []models.Record, query string) []models.Record {
	if query == "" {
		return records
	}
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if Matches(r, query) {
			out = append(out, r)
		}
	}
	return out
}
