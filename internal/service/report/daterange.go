package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/jwalitptl/clinic-report-api/pkg/errors"
)

// MissingDatesMessage is returned when either bound of the range is absent.
const MissingDatesMessage = "Missing required parameters: startDate and endDate"

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// DateRange is an inclusive window of whole calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange parses both bounds in loc and widens them to the start of the
// first day and the last millisecond of the final day.
func NewDateRange(start, end string, loc *time.Location) (DateRange, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" || end == "" {
		return DateRange{}, errors.Validation(MissingDatesMessage)
	}
	if loc == nil {
		loc = time.Local
	}

	from, err := parseDate(start, loc)
	if err != nil {
		return DateRange{}, errors.Validation(fmt.Sprintf("invalid startDate %q", start))
	}
	to, err := parseDate(end, loc)
	if err != nil {
		return DateRange{}, errors.Validation(fmt.Sprintf("invalid endDate %q", end))
	}

	r := DateRange{Start: StartOfDay(from), End: EndOfDay(to)}
	if r.Start.After(r.End) {
		return DateRange{}, errors.Validation("startDate must not be after endDate")
	}
	return r, nil
}

// Validate rejects a range with a missing bound.
func (r DateRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return errors.Validation(MissingDatesMessage)
	}
	if r.Start.After(r.End) {
		return errors.Validation("startDate must not be after endDate")
	}
	return nil
}

func parseDate(value string, loc *time.Location) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return t.In(loc), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// StartOfDay returns 00:00:00.000 of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 of t's calendar day in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}
