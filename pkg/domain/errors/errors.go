// Package errors has sentinel errors which storage implementations
// wrap their outcome errors to.
//
// Callers branch with errors.Is against these,
// not against implementation-specific types.
package errors

import "errors"

// ErrMissing means the requested data is not there.
var ErrMissing = errors.New("missing data")

// ErrConflict means the data to be written collides with data
// already there.
var ErrConflict = errors.New("conflicting data")
