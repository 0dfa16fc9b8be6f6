package models

import "strconv"

// Kind tells which response shape a record was decoded from
type Kind string

const (
	KindSimple Kind = "simple"
	KindFull   Kind = "full"
)

// SpriteSet maps a sprite variant name to an image reference.
// Nil values are variants without a direct reference (null or nested objects).
type SpriteSet map[string]*string

// Record is one catalog entry. Exactly one of Simple or Full is set, matching Kind.
type Record struct {
	ID     string      `json:"id"`
	Number *int        `json:"number,omitempty"`
	Name   string      `json:"name"`
	Kind   Kind        `json:"kind"`
	Simple *SimpleData `json:"simple,omitempty"`
	Full   *FullData   `json:"full,omitempty"`
}

// SimpleData is the payload of a pre-flattened record from /simple
type SimpleData struct {
	Image       string `json:"image"`
	Description string `json:"description,omitempty"`
}

// FullData is the payload of a nested record from /pokemon
type FullData struct {
	Height  int       `json:"height"`
	Weight  int       `json:"weight"`
	Sprites SpriteSet `json:"sprites"`
	Types   []string  `json:"types"`
}

// NumberString is the decimal form of Number used by numeric queries.
// It is empty when the record has no numeric identifier.
func (r Record) NumberString() string {
	if r.Number == nil {
		return ""
	}
	return strconv.Itoa(*r.Number)
}

// Description returns the optional descriptive text, empty for full records
func (r Record) Description() string {
	if r.Simple == nil {
		return ""
	}
	return r.Simple.Description
}

// Num returns a pointer to n
func Num(n int) *int {
	return &n
}

// Str returns a pointer to s, handy for building sprite sets
func Str(s string) *string {
	return &s
}
