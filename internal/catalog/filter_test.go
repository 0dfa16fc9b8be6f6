package catalog

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/meur/dexview/internal/models"
)

func sampleRecords() []models.Record {
	return []models.Record{
		{ID: "1", Number: models.Num(1), Name: "bulbasaur", Kind: models.KindSimple, Simple: &models.SimpleData{Image: "url1"}},
		{ID: "4", Number: models.Num(4), Name: "Charmander", Kind: models.KindSimple, Simple: &models.SimpleData{}},
		{ID: "7", Number: models.Num(7), Name: "squirtle", Kind: models.KindSimple, Simple: &models.SimpleData{}},
		{ID: "25", Number: models.Num(25), Name: "pikachu", Kind: models.KindSimple, Simple: &models.SimpleData{}},
		{ID: "151", Number: models.Num(151), Name: "mew", Kind: models.KindSimple, Simple: &models.SimpleData{}},
	}
}

func ids(records []models.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"name substring", "bulb", []string{"1"}},
		{"case insensitive", "CHAR", []string{"4"}},
		{"exact number", "25", []string{"25"}},
		{"number is not a substring match", "5", nil},
		{"number and name", "1", []string{"1"}},
		{"shared substring keeps order", "r", []string{"1", "4", "7"}},
		{"no trimming", " mew", nil},
		{"unknown", "999", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(records, tt.query))
			if tt.want == nil {
				tt.want = []string{}
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Filter(%q) mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

func TestFilter_EmptyQueryReturnsAll(t *testing.T) {
	records := sampleRecords()
	if diff := cmp.Diff(records, Filter(records, "")); diff != "" {
		t.Errorf("Filter(\"\") mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, Filter(nil, ""))
}

func TestFilter_SubsetProperty(t *testing.T) {
	records := sampleRecords()
	rng := rand.New(rand.NewPCG(1, 2))
	alphabet := []rune("abcdefghijklmnopqrstuvwxyzABC0123456789 ")

	for i := 0; i < 500; i++ {
		n := 1 + rng.IntN(4)
		q := make([]rune, n)
		for j := range q {
			q[j] = alphabet[rng.IntN(len(alphabet))]
		}
		query := string(q)

		got := Filter(records, query)
		pos := 0
		for _, r := range got {
			assert.True(t, Matches(r, query), "record %s does not match %q", r.ID, query)
			// subsequence of the input, order preserved
			for pos < len(records) && records[pos].ID != r.ID {
				pos++
			}
			if !assert.Less(t, pos, len(records), fmt.Sprintf("order broken for %q", query)) {
				return
			}
			pos++
		}
	}
}

func TestFilter_RecordWithoutNumber(t *testing.T) {
	records := append(sampleRecords(), models.Record{ID: "abc", Name: "missingno", Kind: models.KindSimple, Simple: &models.SimpleData{}})

	assert.Empty(t, Filter(records, "0"), "no number never matches a numeric query")
	assert.Empty(t, Filter(records, "abc"), "the id is not searched")
	assert.Equal(t, []string{"abc"}, ids(Filter(records, "missing")))
	assert.False(t, Matches(records[len(records)-1], "0"))
}
