package binder

import (
	"time"

	"github.com/pkg/errors"
)

var (
	// iso8601Layouts are tried in order. time.Parse accepts a fractional
	// second after the seconds field even when the layout omits it.
	iso8601Layouts = []string{
		"2006-01-02",
		"2006-01",
		"2006",
		"20060102",
		"2006-01-02T15:04",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04Z07:00",
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02 15:04:05Z07:00",
	}
)

// ParseISO8601 parses the calendar dates and date-times browsers and API
// clients send. Values without a zone are UTC.
func ParseISO8601(value string) (time.Time, error) {
	for _, layout := range iso8601Layouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("%q is not an ISO 8601 date", value)
}

func IsISO8601(value string) bool {
	_, err := ParseISO8601(value)
	return err == nil
}
