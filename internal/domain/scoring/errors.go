package scoring

import "errors"

// ErrInvalidProfile wraps benchmark lookups that miss the table.
var ErrInvalidProfile = errors.New("invalid athlete profile")
