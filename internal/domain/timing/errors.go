package timing

import (
	"errors"
	"fmt"
)

// Sentinel kinds for time parsing. ErrEmptyTime and ErrSecondsOutOfRange
// both match ErrInvalidTime with errors.Is.
var (
	ErrInvalidTime       = errors.New("invalid time")
	ErrEmptyTime         = fmt.Errorf("%w: empty", ErrInvalidTime)
	ErrSecondsOutOfRange = fmt.Errorf("%w: seconds must be below 60", ErrInvalidTime)
)
