// Package view turns catalog state into page models and renders them.
package view

import (
	"net/url"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/meur/dexview/internal/catalog"
	"github.com/meur/dexview/internal/models"
	"github.com/meur/dexview/internal/source"
	"github.com/meur/dexview/internal/sprite"
)

// Row is one entry of the sidebar
type Row struct {
	ID       string
	Name     string
	Image    string
	Selected bool
	Href     string
}

// Detail is the detail pane for the selected record
type Detail struct {
	ID          string
	Name        string
	Image       string
	Kind        models.Kind
	Height      int
	Weight      int
	Types       []string
	Description string
}

// Page is everything the catalog template needs
type Page struct {
	Phase      catalog.Phase
	Generation uint64
	Error      string
	Query      string
	Total      int
	Rows       []Row
	Detail     *Detail
	Loading    bool
	Failed     bool
}

// Build derives the page model from a store snapshot and a view state.
// memo keeps sprite picks stable for the snapshot's generation.
func Build(snap catalog.Snapshot, state catalog.State, memo *sprite.Memo) Page {
	memo.Sync(snap.Status.Generation)

	visible := state.Visible(snap.Records)
	page := Page{
		Phase:      snap.Status.Phase,
		Generation: snap.Status.Generation,
		Error:      snap.Status.Err,
		Query:      state.Query(),
		Total:      len(snap.Records),
		Rows:       make([]Row, 0, len(visible)),
		Loading:    snap.Status.Phase == catalog.PhaseLoading,
		Failed:     snap.Status.Phase == catalog.PhaseFailed,
	}

	for _, r := range visible {
		page.Rows = append(page.Rows, Row{
			ID:       r.ID,
			Name:     DisplayName(r.Name),
			Image:    memo.Image(r),
			Selected: state.IsSelected(r),
			Href:     SelectHref(state.Query(), r.ID),
		})
	}

	if r, ok := state.Resolve(snap.Records); ok {
		page.Detail = buildDetail(r, memo)
	}
	return page
}

func buildDetail(r models.Record, memo *sprite.Memo) *Detail {
	d := &Detail{
		ID:    r.ID,
		Name:  strings.ToUpper(r.Name),
		Image: memo.Image(r),
		Kind:  r.Kind,
	}
	if r.Full != nil {
		d.Height = r.Full.Height
		d.Weight = r.Full.Weight
		d.Types = r.Full.Types
	}
	if desc := r.Description(); desc != "" {
		d.Description = Sanitize(desc)
	}
	return d
}

// DisplayName capitalises a record name for list display
func DisplayName(name string) string {
	// a Caser keeps state, so one per call
	return cases.Title(language.English).String(name)
}

// Sanitize replaces control characters (form feeds, newlines, ...) with spaces
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
}

// SelectHref links to the catalog page with query kept and id selected
func SelectHref(query, id string) string {
	v := url.Values{}
	if query != "" {
		v.Set("q", query)
	}
	v.Set("selected", id)
	return "/?" + v.Encode()
}

// RawItem is one per-item document on the raw page
type RawItem struct {
	ID    int
	Body  string
	Error string
}

// RawPage lists per-item documents in id order
type RawPage struct {
	From   int
	To     int
	Items  []RawItem
	Failed int
}

// BuildRaw converts batch results into the raw page model
func BuildRaw(from, to int, results []source.RawResult) RawPage {
	page := RawPage{From: from, To: to, Items: make([]RawItem, 0, len(results))}
	for _, res := range results {
		item := RawItem{ID: res.ID, Body: string(res.Body)}
		if res.Err != nil {
			item.Error = res.Err.Error()
			page.Failed++
		}
		page.Items = append(page.Items, item)
	}
	return page
}
