package catalog

import "github.com/meur/dexview/internal/models"

// State is the per-view query and selection. The zero value has an empty
// query and no selection.
type State struct {
	query    string
	selected string
	hasSel   bool
}

// SetQuery replaces the query. Any string is accepted.
func (s *State) SetQuery(text string) {
	s.query = text
}

// Query returns the current query
func (s State) Query() string {
	return s.query
}

// Select marks the record with id as selected
func (s *State) Select(id string) {
	s.selected = id
	s.hasSel = true
}

// Clear drops the selection
func (s *State) Clear() {
	s.selected = ""
	s.hasSel = false
}

// Selected returns the selected identifier, if any
func (s State) Selected() (string, bool) {
	return s.selected, s.hasSel
}

// IsSelected compares by identifier, so a refetched list with the same ids
// keeps its highlighted row.
func (s State) IsSelected(r models.Record) bool {
	return s.hasSel && r.ID == s.selected
}

// Resolve finds the selected record in records. A selection whose id is no
// longer present resolves to nothing.
func (s State) Resolve(records []models.Record) (models.Record, bool) {
	if !s.hasSel {
		return models.Record{}, false
	}
	for _, r := range records {
		if r.ID == s.selected {
			return r, true
		}
	}
	return models.Record{}, false
}

// Visible applies the query to records
func (s State) Visible(records []models.Record) []models.Record {
	return Filter(records, s.query)
}
