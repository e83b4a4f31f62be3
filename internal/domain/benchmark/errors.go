package benchmark

import "errors"

// ErrUnknownProfile marks a gender/age-group pair outside the table.
var ErrUnknownProfile = errors.New("unknown benchmark profile")
