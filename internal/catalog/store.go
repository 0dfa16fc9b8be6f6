// Package catalog holds the fetched record list, the query and selection
// state, and the filter that derives the visible subset.
package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meur/dexview/internal/models"
)

// Phase is the load state of the store
type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
	PhaseFailed  Phase = "failed"
)

// Fetcher performs one request to the Record Source
type Fetcher interface {
	Fetch(ctx context.Context) ([]models.Record, error)
}

// Status describes the last applied load
type Status struct {
	Phase      Phase     `json:"phase"`
	Err        string    `json:"error,omitempty"`
	Generation uint64    `json:"generation"`
	LoadID     string    `json:"load_id,omitempty"`
	Count      int       `json:"count"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Snapshot is an immutable view of the store
type Snapshot struct {
	Records []models.Record
	Status  Status
}

// Store holds the record list fetched from the Record Source.
// The list is only ever replaced wholesale.
type Store struct {
	fetcher Fetcher
	logger  *zap.Logger

	mu       sync.RWMutex
	records  []models.Record
	status   Status
	issued   uint64
	applied  uint64 // newest load whose outcome was applied
	loadedOK uint64 // newest load whose records were applied
	watchers map[chan Status]struct{}
}

// NewStore creates an empty store in the loading phase
func NewStore(fetcher Fetcher, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		fetcher:  fetcher,
		logger:   logger,
		status:   Status{Phase: PhaseLoading, UpdatedAt: time.Now()},
		watchers: make(map[chan Status]struct{}),
	}
}

// Load performs exactly one fetch. On success the list is replaced; on
// failure it is left as it was and the error is logged. A list that arrives
// after a newer list was applied is discarded, as is a failure that arrives
// after any newer outcome.
func (s *Store) Load(ctx context.Context) error {
	loadID := uuid.NewString()

	s.mu.Lock()
	s.issued++
	seq := s.issued
	s.mu.Unlock()

	log := s.logger.With(zap.String("load_id", loadID), zap.Uint64("seq", seq))
	log.Debug("loading catalog")

	records, err := s.fetcher.Fetch(ctx)

	s.mu.Lock()
	stale := s.applied
	if err == nil {
		stale = s.loadedOK
	}
	if seq < stale {
		s.mu.Unlock()
		log.Warn("discarding stale catalog load", zap.Uint64("applied_seq", stale), zap.Error(err))
		return nil
	}
	s.applied = max(s.applied, seq)

	if err != nil {
		s.status.Err = err.Error()
		s.status.LoadID = loadID
		s.status.UpdatedAt = time.Now()
		if len(s.records) == 0 {
			s.status.Phase = PhaseFailed
		}
		status := s.status
		s.notifyLocked(status)
		s.mu.Unlock()

		log.Error("catalog load failed", zap.Error(err), zap.Int("kept_records", status.Count))
		return err
	}

	s.loadedOK = seq
	s.records = records
	s.status = Status{
		Phase:      PhaseLoaded,
		Generation: s.status.Generation + 1,
		LoadID:     loadID,
		Count:      len(records),
		UpdatedAt:  time.Now(),
	}
	status := s.status
	s.notifyLocked(status)
	s.mu.Unlock()

	log.Info("catalog loaded", zap.Int("records", len(records)), zap.Uint64("generation", status.Generation))
	return nil
}

// Snapshot returns the current list and status
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Records: s.records, Status: s.status}
}

// Status returns the current status
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Subscribe returns a channel receiving every status change and a function
// to stop the subscription. Slow receivers miss intermediate updates.
func (s *Store) Subscribe() (<-chan Status, func()) {
	ch := make(chan Status, 1)

	s.mu.Lock()
	s.watchers[ch] = struct{}{}
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.watchers, ch)
			s.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (s *Store) notifyLocked(status Status) {
	for ch := range s.watchers {
		select {
		case ch <- status:
		default:
			// replace the pending update with the latest one
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- status:
			default:
			}
		}
	}
}
