package types

import "errors"

// ErrUnknownValue is returned when input does not match a published option.
var ErrUnknownValue = errors.New("unknown value")
