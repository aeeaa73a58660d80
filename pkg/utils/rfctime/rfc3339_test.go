package rfctime_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/foodgram-dev/foodgram/pkg/utils/rfctime"
)

func TestRFC3339_String(t *testing.T) {
	utc := rfctime.RFC3339(time.Date(2024, 7, 1, 12, 30, 45, 0, time.UTC))

	got := utc.String()
	want := "2024-07-01T12:30:45+00:00"
	if got != want {
		t.Errorf("unexpected string: %s (expected: %s)", got, want)
	}
}

func TestParseRFC3339DateTime(t *testing.T) {
	t.Run("it accepts Z as offset", func(t *testing.T) {
		got, err := rfctime.ParseRFC3339DateTime("2024-07-01T12:30:45Z")
		if err != nil {
			t.Fatal(err)
		}
		want := time.Date(2024, 7, 1, 12, 30, 45, 0, time.UTC)
		if !got.Time().Equal(want) {
			t.Errorf("unexpected time: %s (expected: %s)", got.Time(), want)
		}
	})

	t.Run("it accepts numeric offsets", func(t *testing.T) {
		got, err := rfctime.ParseRFC3339DateTime("2024-07-01T15:30:45+03:00")
		if err != nil {
			t.Fatal(err)
		}
		want := time.Date(2024, 7, 1, 12, 30, 45, 0, time.UTC)
		if !got.Time().Equal(want) {
			t.Errorf("unexpected time: %s (expected: %s)", got.Time(), want)
		}
	})

	t.Run("it rejects non-timestamps", func(t *testing.T) {
		if _, err := rfctime.ParseRFC3339DateTime("yesterday"); err == nil {
			t.Error("no error for a non-timestamp")
		}
	})
}

func TestRFC3339_JSON(t *testing.T) {
	t.Run("round-trip keeps the instant", func(t *testing.T) {
		orig := rfctime.RFC3339(time.Date(2024, 7, 1, 12, 30, 45, 0, time.UTC))

		b, err := json.Marshal(orig)
		if err != nil {
			t.Fatal(err)
		}

		var back rfctime.RFC3339
		if err := json.Unmarshal(b, &back); err != nil {
			t.Fatal(err)
		}
		if !back.Equal(&orig) {
			t.Errorf("round-trip changed the instant: %s -> %s", orig, back)
		}
	})

	t.Run("null leaves the value alone", func(t *testing.T) {
		var target rfctime.RFC3339
		if err := json.Unmarshal([]byte("null"), &target); err != nil {
			t.Fatal(err)
		}
		zero := rfctime.RFC3339{}
		if !target.Equal(&zero) {
			t.Errorf("null changed the value: %s", target)
		}
	})
}
