package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/okian/combine/internal/domain/model"
	"github.com/okian/combine/pkg/metrics"
)

const defaultMaxRetests = 50

// MemoryStore is an in-memory Store guarded by a RWMutex.
//
// Squad ordering: latest total DESC, greens DESC, athleteID ASC. Athletes
// equal on total and greens share a rank.
type MemoryStore struct {
	mu         sync.RWMutex
	sessions   map[string]*model.Session
	maxRetests int
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		sessions:   make(map[string]*model.Session),
		maxRetests: defaultMaxRetests,
	}
	for _, opt := range opts {
		opt(s)
	}
	metrics.UpdateAthletesTracked(0)
	return s
}

func (s *MemoryStore) SaveBaseline(_ context.Context, a model.Assessment) (model.Session, error) {
	if a.AthleteID == "" {
		return model.Session{}, ErrMissingID
	}
	sess := &model.Session{AthleteID: a.AthleteID, Name: a.Name, Baseline: a}

	s.mu.Lock()
	s.sessions[a.AthleteID] = sess
	n := len(s.sessions)
	out := copySession(sess)
	s.mu.Unlock()

	metrics.UpdateAthletesTracked(n)
	return out, nil
}

func (s *MemoryStore) AppendRetest(_ context.Context, a model.Assessment) (model.Session, error) {
	if a.AthleteID == "" {
		return model.Session{}, ErrMissingID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[a.AthleteID]
	if !ok {
		return model.Session{}, ErrNoBaseline
	}
	sess.Retests = append(sess.Retests, a)
	if s.maxRetests > 0 && len(sess.Retests) > s.maxRetests {
		sess.Retests = append([]model.Assessment(nil), sess.Retests[len(sess.Retests)-s.maxRetests:]...)
	}
	if a.Name != "" {
		sess.Name = a.Name
	}
	return copySession(sess), nil
}

func (s *MemoryStore) Session(_ context.Context, athleteID string) (model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[athleteID]
	if !ok {
		return model.Session{}, ErrNotFound
	}
	return copySession(sess), nil
}

func (s *MemoryStore) Squad(_ context.Context, limit int) ([]model.SquadEntry, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	entries := make([]model.SquadEntry, 0, len(s.sessions))
	for _, sess := range s.sessions {
		latest := sess.Latest()
		entries = append(entries, model.SquadEntry{
			AthleteID: sess.AthleteID,
			Name:      sess.Name,
			Sport:     latest.Sport,
			Kind:      latest.Kind,
			Total:     latest.Result.Total(),
			Greens:    latest.Result.Greens(),
			Scores:    latest.Result.Scores,
		})
	}
	s.mu.RUnlock()

	sortSquad(entries)
	assignRanksWithTies(entries)
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func sortSquad(entries []model.SquadEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Total != entries[j].Total {
			return entries[i].Total > entries[j].Total
		}
		if entries[i].Greens != entries[j].Greens {
			return entries[i].Greens > entries[j].Greens
		}
		return entries[i].AthleteID < entries[j].AthleteID
	})
}

// assignRanksWithTies gives equal (total, greens) rows the same rank; the
// next distinct row takes the following rank (dense ranking).
func assignRanksWithTies(entries []model.SquadEntry) {
	rank := 0
	for i := range entries {
		if i == 0 || entries[i].Total != entries[i-1].Total || entries[i].Greens != entries[i-1].Greens {
			rank++
		}
		entries[i].Rank = rank
	}
}

func copySession(s *model.Session) model.Session {
	out := *s
	out.Retests = make([]model.Assessment, len(s.Retests))
	copy(out.Retests, s.Retests)
	return out
}

func sinceMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
