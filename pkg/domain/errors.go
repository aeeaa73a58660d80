package domain

import "errors"

// ErrInvalid is wrapped by errors from domain validation.
var ErrInvalid = errors.New("invalid")
