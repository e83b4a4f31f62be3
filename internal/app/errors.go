package service

import "errors"

var (
	ErrInvalidSubmission = errors.New("invalid submission")
	ErrIncompleteInputs  = errors.New("incomplete inputs")
	ErrNoBaseline        = errors.New("no baseline")
	ErrNotFound          = errors.New("athlete not found")
	ErrInvalidLimit      = errors.New("invalid limit")
	ErrEmptyBatch        = errors.New("empty batch")
	ErrBatchTooLarge     = errors.New("batch too large")
	ErrBackpressure      = errors.New("queue backpressure")
	ErrNotStarted        = errors.New("service not started")
)

// User-facing messages for the two form errors coaches see most.
const (
	MsgIncompleteInputs = "Please complete all fields. 1km must be mm.ss (e.g. 3.56) or mm:ss (e.g. 3:56)."
	MsgNoBaseline       = "Run a Baseline Test first."
)
