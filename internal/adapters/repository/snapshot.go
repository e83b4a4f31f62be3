package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/okian/combine/internal/domain/model"
	"github.com/okian/combine/pkg/metrics"
	"github.com/vmihailenco/msgpack/v5"
)

// bump when the payload layout changes
const snapshotSchemaVersion uint16 = 1

type snapshotPayload struct {
	Schema   uint16          `msgpack:"schema"`
	SavedAt  time.Time       `msgpack:"saved_at"`
	Sessions []model.Session `msgpack:"sessions"`
}

// Snapshot encodes all sessions, sorted by athlete id, as msgpack.
func (s *MemoryStore) Snapshot(_ context.Context, w io.Writer) (int, error) {
	s.mu.RLock()
	payload := snapshotPayload{
		Schema:   snapshotSchemaVersion,
		SavedAt:  time.Now().UTC(),
		Sessions: make([]model.Session, 0, len(s.sessions)),
	}
	for _, sess := range s.sessions {
		payload.Sessions = append(payload.Sessions, copySession(sess))
	}
	s.mu.RUnlock()

	sort.Slice(payload.Sessions, func(i, j int) bool {
		return payload.Sessions[i].AthleteID < payload.Sessions[j].AthleteID
	})
	if err := msgpack.NewEncoder(w).Encode(&payload); err != nil {
		return 0, fmt.Errorf("encode snapshot: %w", err)
	}
	return len(payload.Sessions), nil
}

// Restore replaces the store contents with a decoded snapshot. The store is
// left untouched when decoding fails.
func (s *MemoryStore) Restore(_ context.Context, r io.Reader) (int, error) {
	var payload snapshotPayload
	if err := msgpack.NewDecoder(r).Decode(&payload); err != nil {
		return 0, fmt.Errorf("decode snapshot: %w", err)
	}
	if payload.Schema != snapshotSchemaVersion {
		return 0, fmt.Errorf("%w: %d", ErrSnapshotVersion, payload.Schema)
	}

	sessions := make(map[string]*model.Session, len(payload.Sessions))
	for i := range payload.Sessions {
		sess := payload.Sessions[i]
		if sess.AthleteID == "" {
			continue
		}
		sessions[sess.AthleteID] = &sess
	}

	s.mu.Lock()
	s.sessions = sessions
	s.mu.Unlock()

	metrics.UpdateAthletesTracked(len(sessions))
	return len(sessions), nil
}

// SaveFile writes a snapshot to path through a temp file and rename.
func SaveFile(ctx context.Context, s Store, path string) (int, error) {
	start := time.Now()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, err
	}
	f, err := os.CreateTemp(filepath.Dir(path), ".combine-snapshot-*")
	if err != nil {
		return 0, err
	}
	defer func() { _ = os.Remove(f.Name()) }()

	n, err := s.Snapshot(ctx, f)
	if err != nil {
		_ = f.Close()
		return 0, err
	}
	if err := f.Close(); err != nil {
		return 0, err
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return 0, err
	}
	metrics.RecordSnapshot("save", sinceMs(start), n)
	return n, nil
}

// LoadFile restores s from path. A missing file restores nothing and is not
// an error.
func LoadFile(ctx context.Context, s Store, path string) (int, error) {
	start := time.Now()
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}
	defer func() { _ = f.Close() }()

	n, err := s.Restore(ctx, f)
	if err != nil {
		return 0, err
	}
	metrics.RecordSnapshot("restore", sinceMs(start), n)
	return n, nil
}
