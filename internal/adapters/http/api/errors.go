package api

import (
	"errors"
	"net/http"

	service "github.com/okian/combine/internal/app"
)

// ErrBadRequest marks malformed requests rejected by the handlers.
var ErrBadRequest = errors.New("bad request")

// Error tags an error with the handler operation and a sentinel kind.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Kind != nil:
		return e.Op + ": " + e.Kind.Error() + ": " + e.Err.Error()
	case e.Err != nil:
		return e.Op + ": " + e.Err.Error()
	case e.Kind != nil:
		return e.Op + ": " + e.Kind.Error()
	}
	return e.Op
}

func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// NewKind returns an error of kind raised by op.
func NewKind(op string, kind error) error {
	return &Error{Op: op, Kind: kind}
}

// Wrap tags err with op.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// WrapKind tags err with op and kind.
func WrapKind(op string, kind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// errorMapping is one row of the error to response table.
type errorMapping struct {
	kind    error
	status  int
	code    string
	message string
}

var errorMappings = []errorMapping{
	{service.ErrIncompleteInputs, http.StatusBadRequest, "incomplete_inputs", service.MsgIncompleteInputs},
	{service.ErrNoBaseline, http.StatusConflict, "no_baseline", service.MsgNoBaseline},
	{service.ErrNotFound, http.StatusNotFound, "not_found", ""},
	{service.ErrBatchTooLarge, http.StatusRequestEntityTooLarge, "batch_too_large", ""},
	{service.ErrBackpressure, http.StatusTooManyRequests, "backpressure", ""},
	{service.ErrNotStarted, http.StatusServiceUnavailable, "unavailable", ""},
	{service.ErrInvalidSubmission, http.StatusBadRequest, "bad_request", ""},
	{service.ErrInvalidLimit, http.StatusBadRequest, "bad_request", ""},
	{service.ErrEmptyBatch, http.StatusBadRequest, "bad_request", ""},
	{ErrBadRequest, http.StatusBadRequest, "bad_request", ""},
}

// classify maps err to a status, an error code and the message shown to
// clients. Unknown errors are internal.
func classify(err error) (status int, code, message string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.kind) {
			msg := m.message
			if msg == "" {
				msg = err.Error()
			}
			return m.status, m.code, msg
		}
	}
	return http.StatusInternalServerError, "internal_error", http.StatusText(http.StatusInternalServerError)
}
