package postgres

import (
	"fmt"

	domerr "github.com/foodgram-dev/foodgram/pkg/domain/errors"
)

// requested data is missing.
type Missing struct {
	Table    string
	Identity string
}

var _ error = Missing{}

func (m Missing) Error() string {
	return fmt.Sprintf("%s is not found in %s ", m.Identity, m.Table)
}
func (m Missing) Unwrap() error {
	return domerr.ErrMissing
}

// data to be written collides with a row which is already there.
type Conflict struct {
	Table    string
	Identity string
}

var _ error = Conflict{}

func (c Conflict) Error() string {
	return fmt.Sprintf("%s conflicts with an existing row in %s", c.Identity, c.Table)
}

func (c Conflict) Unwrap() error {
	return domerr.ErrConflict
}
