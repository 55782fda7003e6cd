package analytics

import (
	"time"

	"jobtracker/internal/model"
)

// TrendPoint is one day-wide bucket of the trend series.
type TrendPoint struct {
	Date         string `json:"date"`
	Applications int    `json:"applications"`
	Responses    int    `json:"responses"`
	Interviews   int    `json:"interviews"`
}

// BucketCount returns the number of daily buckets for r. For RangeAll it spans from the
// earliest non-deleted record to now, with a minimum of one bucket.
func BucketCount(records []model.Application, r TimeRange, now time.Time) int {
	if d := r.Days(); d > 0 {
		return d
	}

	var earliest time.Time
	found := false
	for i := range records {
		if records[i].Deleted {
			continue
		}
		if !found || records[i].CreatedAt.Before(earliest) {
			earliest = records[i].CreatedAt
			found = true
		}
	}
	if !found {
		return 1
	}

	diff := now.Sub(earliest)
	days := int(diff / Day)
	if diff%Day > 0 {
		days++
	}
	return max(1, days)
}

// BuildTrend returns one point per calendar day, oldest first, ending today.
func BuildTrend(records []model.Application, r TimeRange, now time.Time) []TrendPoint {
	days := BucketCount(records, r, now)

	points := make([]TrendPoint, days)
	for i := range points {
		points[i].Date = now.AddDate(0, 0, -(days - i - 1)).Format(time.DateOnly)
	}

	index := func(t time.Time) (int, bool) {
		diff := daysAgo(now, t)
		if diff < 0 || diff >= days {
			return 0, false
		}
		return days - diff - 1, true
	}

	for i := range records {
		a := &records[i]
		if a.Deleted {
			continue
		}
		idx, ok := index(a.CreatedAt)
		if !ok {
			continue
		}
		points[idx].Applications++

		if ev, ok := a.FirstEvent(transitionTo(model.StatusApplied)); ok {
			if j, ok := index(ev.Date); ok {
				points[j].Responses++
			}
		}
		if ev, ok := a.FirstEvent(transitionTo(model.StatusInterview)); ok {
			if j, ok := index(ev.Date); ok {
				points[j].Interviews++
			}
		}
	}
	return points
}
