// Package sprite picks one displayable image reference out of a record's sprite set.
package sprite

import (
	"math/rand/v2"
	"sort"
	"strings"
	"sync"

	"github.com/meur/dexview/internal/models"
)

// FallbackKey is returned when no variant qualifies for random selection
const FallbackKey = "front_default"

// excluded key fragments hold nested structures, not direct references
var excluded = []string{"other", "versions"}

// Rand is the randomness source used to choose among candidates
type Rand interface {
	IntN(n int) int
}

// Selector chooses a sprite uniformly among the valid variants of a set
type Selector struct {
	rng Rand
}

// NewSelector creates a selector. A nil rng uses the global math/rand/v2 source.
func NewSelector(rng Rand) *Selector {
	if rng == nil {
		rng = globalRand{}
	}
	return &Selector{rng: rng}
}

// Candidates returns the keys eligible for random selection, sorted
func Candidates(set models.SpriteSet) []string {
	keys := make([]string, 0, len(set))
	for key, value := range set {
		if value == nil || isExcluded(key) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Pick returns one reference from set. With no candidates it returns
// set[FallbackKey], which may be nil.
func (s *Selector) Pick(set models.SpriteSet) *string {
	keys := Candidates(set)
	if len(keys) == 0 {
		return set[FallbackKey]
	}
	return set[keys[s.rng.IntN(len(keys))]]
}

func isExcluded(key string) bool {
	for _, frag := range excluded {
		if strings.Contains(key, frag) {
			return true
		}
	}
	return false
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Memo keeps the first pick per record identity so a record shows the same
// sprite on every render.
type Memo struct {
	selector *Selector

	mu         sync.Mutex
	picks      map[string]*string
	generation uint64
}

// NewMemo creates a memo backed by selector
func NewMemo(selector *Selector) *Memo {
	return &Memo{
		selector: selector,
		picks:    make(map[string]*string),
	}
}

// Image returns the display image for r: the single reference for simple
// records, a memoised pick for full records. Empty means no image.
func (m *Memo) Image(r models.Record) string {
	switch {
	case r.Simple != nil:
		return r.Simple.Image
	case r.Full != nil:
		if p := m.pick(r.ID, r.Full.Sprites); p != nil {
			return *p
		}
	}
	return ""
}

func (m *Memo) pick(id string, set models.SpriteSet) *string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p, ok := m.picks[id]; ok {
		return p
	}
	p := m.selector.Pick(set)
	m.picks[id] = p
	return p
}

// Sync drops every pick when generation is newer than the one last seen,
// so a replaced record list gets fresh picks. Older generations are ignored.
func (m *Memo) Sync(generation uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if generation <= m.generation {
		return
	}
	m.generation = generation
	m.picks = make(map[string]*string)
}
