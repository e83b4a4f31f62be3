package repository

import "errors"

var (
	ErrNotFound        = errors.New("athlete not found")
	ErrNoBaseline      = errors.New("athlete has no baseline")
	ErrInvalidLimit    = errors.New("invalid squad limit")
	ErrMissingID       = errors.New("athlete id is required")
	ErrSnapshotVersion = errors.New("unsupported snapshot version")
)
