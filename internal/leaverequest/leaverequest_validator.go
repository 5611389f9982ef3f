package leaverequest

import (
	"time"

	leaverequesterrors "go-elms/internal/leaverequest/errors"
)

// parseDate parses a date-only value. Dates are kept in UTC so inclusive
// day arithmetic stays exact.
func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaverequesterrors.ErrInvalidDateFormat
	}
	return t, nil
}

// inclusiveDays counts both boundary dates as leave days.
func inclusiveDays(startDate, endDate time.Time) int {
	return int(endDate.Sub(startDate).Hours()/24) + 1
}

// validateApplyDates runs the pure date checks for a new request and returns
// the inclusive day count so callers never recompute it. today must be a
// date-only value in the same location as the parsed dates.
func validateApplyDates(startDate, endDate, today time.Time) (int, error) {
	if startDate.IsZero() || endDate.IsZero() {
		return 0, leaverequesterrors.ErrInvalidDateRange
	}
	if endDate.Before(startDate) {
		return 0, leaverequesterrors.ErrInvalidDateRange
	}
	if startDate.Before(today) {
		return 0, leaverequesterrors.ErrPastStartDate
	}
	return inclusiveDays(startDate, endDate), nil
}

// today truncates the wall clock to a date-only UTC value.
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
