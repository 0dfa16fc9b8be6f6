package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// flexID accepts an identifier encoded either as a JSON string or a JSON number
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*f = flexID(n.String())
	return nil
}

// simpleWire is the /simple body element
type simpleWire struct {
	ID          flexID          `json:"id"`
	Number      *int            `json:"number"`
	Name        string          `json:"name"`
	Sprites     json.RawMessage `json:"sprites"`
	Description string          `json:"description"`
}

// fullWire is the /pokemon body element
type fullWire struct {
	ID      flexID                     `json:"id"`
	Name    string                     `json:"name"`
	Height  int                        `json:"height"`
	Weight  int                        `json:"weight"`
	Sprites map[string]json.RawMessage `json:"sprites"`
	Types   []struct {
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
}

// DecodeSimple adapts a /simple response body into records
func DecodeSimple(body []byte) ([]Record, error) {
	var wire []simpleWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("decode simple records: %w", err)
	}

	records := make([]Record, 0, len(wire))
	for _, w := range wire {
		image, err := spriteString(w.Sprites)
		if err != nil {
			return nil, fmt.Errorf("record %q: %w", w.ID, err)
		}
		number := numberFromID(string(w.ID))
		if w.Number != nil {
			number = w.Number
		}
		records = append(records, Record{
			ID:     string(w.ID),
			Number: number,
			Name:   w.Name,
			Kind:   KindSimple,
			Simple: &SimpleData{
				Image:       image,
				Description: w.Description,
			},
		})
	}
	return records, checkUnique(records)
}

// DecodeFull adapts a /pokemon response body into records
func DecodeFull(body []byte) ([]Record, error) {
	var wire []fullWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("decode full records: %w", err)
	}

	records := make([]Record, 0, len(wire))
	for _, w := range wire {
		types := make([]string, 0, len(w.Types))
		for _, t := range w.Types {
			types = append(types, t.Type.Name)
		}
		records = append(records, Record{
			ID:     string(w.ID),
			Number: numberFromID(string(w.ID)),
			Name:   w.Name,
			Kind:   KindFull,
			Full: &FullData{
				Height:  w.Height,
				Weight:  w.Weight,
				Sprites: spriteSet(w.Sprites),
				Types:   types,
			},
		})
	}
	return records, checkUnique(records)
}

// spriteString reads the simple shape's sprites field: a string, null, or absent
func spriteString(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("sprites must be a string: %w", err)
	}
	return s, nil
}

func spriteSet(raw map[string]json.RawMessage) SpriteSet {
	set := make(SpriteSet, len(raw))
	for key, value := range raw {
		var s string
		if bytes.Equal(value, []byte("null")) || json.Unmarshal(value, &s) != nil {
			// null or a nested object
			set[key] = nil
			continue
		}
		set[key] = &s
	}
	return set
}

// numberFromID parses a numeric id; non-numeric ids have no number
func numberFromID(id string) *int {
	n, err := strconv.Atoi(id)
	if err != nil {
		return nil
	}
	return &n
}

func checkUnique(records []Record) error {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("duplicate record id %q", r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	return nil
}
