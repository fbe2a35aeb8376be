package service

import (
	"fmt"
	"time"

	"climate-server/internal/modules/climate/types"
)

// DateError reports a route parameter that is not a YYYY-MM-DD date.
type DateError struct {
	Param string
	Raw   string
	Err   error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid %s date %q: expected format YYYY-MM-DD", e.Param, e.Raw)
}

func (e *DateError) Unwrap() error { return e.Err }

// ParseDate accepts exactly YYYY-MM-DD with a real calendar day.
// param names the offending input in the returned *DateError.
func ParseDate(param, raw string) (time.Time, error) {
	t, err := time.Parse(types.DateLayout, raw)
	if err != nil {
		return time.Time{}, &DateError{Param: param, Raw: raw, Err: err}
	}
	return t, nil
}

// OneYearBefore steps back one calendar year. Feb 29 maps to Feb 28.
func OneYearBefore(t time.Time) time.Time {
	y, m, d := t.Date()
	prev := time.Date(y-1, m, d, 0, 0, 0, 0, time.UTC)
	if prev.Month() != m {
		// day 0 of the following month is the last day of m
		prev = time.Date(y-1, m+1, 0, 0, 0, 0, 0, time.UTC)
	}
	return prev
}
