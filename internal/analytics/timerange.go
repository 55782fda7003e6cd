// Package analytics derives list views, dashboard statistics and trend series from
// application records. Every function is pure: callers pass the clock in.
package analytics

import (
	"fmt"
	"time"
)

// Day is the width of one trend bucket and the unit of reported averages.
const Day = 24 * time.Hour

// TimeRange selects the dashboard window.
type TimeRange string

const (
	RangeWeek  TimeRange = "week"
	RangeMonth TimeRange = "month"
	RangeYear  TimeRange = "year"
	RangeAll   TimeRange = "all"
)

// ParseTimeRange converts a raw query value; empty means month.
func ParseTimeRange(raw string) (TimeRange, error) {
	switch r := TimeRange(raw); r {
	case "":
		return RangeMonth, nil
	case RangeWeek, RangeMonth, RangeYear, RangeAll:
		return r, nil
	default:
		return "", fmt.Errorf("unknown time range %q", raw)
	}
}

// Days returns the fixed window length in days, or 0 for RangeAll.
func (r TimeRange) Days() int {
	switch r {
	case RangeWeek:
		return 7
	case RangeMonth:
		return 30
	case RangeYear:
		return 365
	default:
		return 0
	}
}

// Cutoff returns the earliest createdAt included in the window and whether a bound applies.
func (r TimeRange) Cutoff(now time.Time) (time.Time, bool) {
	d := r.Days()
	if d == 0 {
		return time.Time{}, false
	}
	return now.Add(-time.Duration(d) * Day), true
}

// daysAgo is floor((now - t) / day), matching whole elapsed days.
func daysAgo(now, t time.Time) int {
	diff := now.Sub(t)
	days := int(diff / Day)
	if diff < 0 && diff%Day != 0 {
		days--
	}
	return days
}
