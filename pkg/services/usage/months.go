package usage

import (
	"errors"
	"time"

	"github.com/de-tools/top-users/pkg/models/domain"
)

// ErrInvalidRange is returned when the requested end date precedes the start
// date. It is surfaced before any external process is spawned.
var ErrInvalidRange = errors.New("end date precedes start date")

// MonthSpans splits [start, end] into calendar-month sub-ranges in
// chronological order. Spans are contiguous and non-overlapping, and their
// union is exactly [start, end]: the first span begins at start, the last
// ends at end. Start and end within the same month yield a single span.
func MonthSpans(start, end time.Time) ([]domain.DateRange, error) {
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	start = midnightUTC(start)
	end = midnightUTC(end)

	var spans []domain.DateRange
	monthStart := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !monthStart.After(end) {
		nextMonth := monthStart.AddDate(0, 1, 0)
		first := monthStart
		if first.Before(start) {
			first = start
		}
		last := nextMonth.AddDate(0, 0, -1)
		if last.After(end) {
			last = end
		}
		spans = append(spans, domain.DateRange{First: first, Last: last})
		monthStart = nextMonth
	}
	return spans, nil
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
