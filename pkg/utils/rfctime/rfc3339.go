package rfctime

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Format for date-time in RFC3339. Always writes a numeric offset,
// never "Z", so stringified timestamps carry their timezone explicitly.
const RFC3339DateTimeFormat string = "2006-01-02T15:04:05.999-07:00"

// Format for parsing date-time in RFC3339, accepting "Z" as offset.
const RFC3339DateTimeFormatZ string = time.RFC3339Nano

// RFC3339 is a date-time as in https://www.ietf.org/rfc/rfc3339.txt ,
// a subset of the ISO8601 extended format.
//
// Use it for timestamps crossing network/file boundaries.
type RFC3339 time.Time

func (t RFC3339) Time() time.Time {
	return time.Time(t)
}

// Equal tests t and other point the same instant.
// Two nils are equal.
func (t *RFC3339) Equal(other *RFC3339) bool {
	if (t == nil) != (other == nil) {
		return false
	}
	return t == nil || t.Time().Equal(other.Time())
}

// String formats in RFC3339DateTimeFormat.
func (t RFC3339) String() string {
	return time.Time(t).Format(RFC3339DateTimeFormat)
}

// ParseRFC3339DateTime parses a RFC3339 date-time expression.
func ParseRFC3339DateTime(s string) (RFC3339, error) {
	t, err := time.Parse(RFC3339DateTimeFormatZ, s)
	if err != nil {
		return *new(RFC3339), err
	}
	return RFC3339(t), nil
}

func (t RFC3339) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"%s"`, t)), nil
}

func (t *RFC3339) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	ret, err := ParseRFC3339DateTime(s)
	if err != nil {
		return err
	}

	*t = RFC3339(ret)

	return nil
}
