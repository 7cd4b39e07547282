package analytics

import (
	"fmt"
	"time"
)

// Period labels understood by the dashboard. Custom takes caller-supplied
// ISO dates.
const (
	PeriodToday   = "Hoje"
	Period7Days   = "7 dias"
	Period30Days  = "30 dias"
	Period90Days  = "90 dias"
	PeriodCustom  = "Customizado"
	isoDateLayout = "2006-01-02"
)

// ResolvePeriod maps a period label to a [start, end] window relative to
// now. Custom ranges are padded to start-of-day and end-of-day.
func ResolvePeriod(label string, now time.Time, customStart, customEnd string) (time.Time, time.Time, error) {
	end := endOfDay(now)

	switch label {
	case PeriodToday:
		return startOfDay(now), end, nil
	case Period7Days:
		return startOfDay(now.AddDate(0, 0, -6)), end, nil
	case Period30Days:
		return startOfDay(now.AddDate(0, 0, -29)), end, nil
	case Period90Days:
		return startOfDay(now.AddDate(0, 0, -89)), end, nil
	case PeriodCustom:
		start, err := time.ParseInLocation(isoDateLayout, customStart, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid custom start date %q: %w", customStart, err)
		}
		until, err := time.ParseInLocation(isoDateLayout, customEnd, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid custom end date %q: %w", customEnd, err)
		}
		return startOfDay(start), endOfDay(until), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown period label: %s", label)
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
