// Package repository holds athlete assessment sessions and ranks the squad.
package repository

import (
	"context"
	"io"

	"github.com/okian/combine/internal/domain/model"
)

// Store provides read/write access to athlete sessions.
type Store interface {
	// SaveBaseline starts a fresh history for the athlete, discarding any
	// previous baseline and retests.
	SaveBaseline(ctx context.Context, a model.Assessment) (model.Session, error)

	// AppendRetest adds a retest to an existing history.
	// Returns ErrNoBaseline if the athlete has no baseline.
	AppendRetest(ctx context.Context, a model.Assessment) (model.Session, error)

	// Session returns a copy of the athlete's history or ErrNotFound.
	Session(ctx context.Context, athleteID string) (model.Session, error)

	// Squad ranks athletes by their latest assessment.
	Squad(ctx context.Context, limit int) ([]model.SquadEntry, error)

	// Count returns the number of athletes tracked.
	Count(ctx context.Context) int

	// Snapshot writes every session to w; Restore replaces the store contents
	// with what r holds. Both return the number of sessions.
	Snapshot(ctx context.Context, w io.Writer) (int, error)
	Restore(ctx context.Context, r io.Reader) (int, error)
}
