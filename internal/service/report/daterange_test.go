package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-report-api/pkg/errors"
)

func TestNewDateRangeNormalisesToWholeDays(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	require.NoError(t, err)

	r, err := NewDateRange("2024-03-01", "2024-03-31", loc)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, loc), r.Start)
	assert.Equal(t, time.Date(2024, 3, 31, 23, 59, 59, 999_000_000, loc), r.End)
}

func TestNewDateRangeAcceptsTimestamps(t *testing.T) {
	r, err := NewDateRange("2024-03-01T15:30:00Z", "2024-03-02T01:00:00Z", time.UTC)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2024, 3, 2, 23, 59, 59, 999_000_000, time.UTC), r.End)
}

func TestNewDateRangeSameDay(t *testing.T) {
	r, err := NewDateRange("2024-03-05", "2024-03-05", time.UTC)
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour-time.Millisecond, r.End.Sub(r.Start))
}

func TestNewDateRangeValidation(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		message    string
	}{
		{"missing start", "", "2024-03-01", MissingDatesMessage},
		{"missing end", "2024-03-01", "", MissingDatesMessage},
		{"blank", "  ", " ", MissingDatesMessage},
		{"bad start", "01/03/2024", "2024-03-01", `invalid startDate "01/03/2024"`},
		{"bad end", "2024-03-01", "tomorrow", `invalid endDate "tomorrow"`},
		{"reversed", "2024-03-02", "2024-03-01", "startDate must not be after endDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDateRange(tt.start, tt.end, time.UTC)
			require.Error(t, err)
			assert.True(t, errors.IsValidation(err))
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestDateRangeValidate(t *testing.T) {
	assert.True(t, errors.IsValidation(DateRange{}.Validate()))
	assert.True(t, errors.IsValidation(DateRange{Start: time.Now()}.Validate()))

	now := time.Now()
	assert.NoError(t, DateRange{Start: StartOfDay(now), End: EndOfDay(now)}.Validate())
}
