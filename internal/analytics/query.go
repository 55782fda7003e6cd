package analytics

import (
	"slices"
	"strings"
	"time"

	"jobtracker/internal/model"
)

// SortField names the timestamp used for ordering.
type SortField string

const (
	SortCreatedAt SortField = "createdAt"
	SortUpdatedAt SortField = "updatedAt"
)

// SortOrder is asc or desc.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// StatusAll disables the status filter.
const StatusAll = "all"

// Query describes one list view.
type Query struct {
	Search    string
	Status    string
	Tags      []string
	DateRange model.DateRange
	SortField SortField
	SortOrder SortOrder
}

// Select filters and orders records for display. Soft-deleted records never appear.
// The sort is stable: records with equal timestamps keep their input order.
func Select(records []model.Application, q Query) []model.Application {
	needle := strings.ToLower(q.Search)
	tagSet := make(map[string]struct{}, len(q.Tags))
	for _, t := range q.Tags {
		tagSet[t] = struct{}{}
	}

	out := make([]model.Application, 0, len(records))
	for _, a := range records {
		if a.Deleted {
			continue
		}
		if needle != "" && !matchesSearch(&a, needle) {
			continue
		}
		if q.Status != "" && q.Status != StatusAll && string(a.Status) != q.Status {
			continue
		}
		if len(tagSet) > 0 && !hasAnyTag(a.Tags, tagSet) {
			continue
		}
		if !inRange(a.CreatedAt, q.DateRange) {
			continue
		}
		out = append(out, a)
	}

	field := q.SortField
	if field == "" {
		field = SortCreatedAt
	}
	desc := q.SortOrder != SortAsc
	slices.SortStableFunc(out, func(x, y model.Application) int {
		c := sortKey(x, field).Compare(sortKey(y, field))
		if desc {
			return -c
		}
		return c
	})
	return out
}

func sortKey(a model.Application, f SortField) time.Time {
	if f == SortUpdatedAt {
		return a.UpdatedAt
	}
	return a.CreatedAt
}

func matchesSearch(a *model.Application, needle string) bool {
	contains := func(s string) bool {
		return strings.Contains(strings.ToLower(s), needle)
	}
	if contains(a.ResumeDetails) || contains(a.JobDescription) ||
		contains(a.CompanyName) || contains(a.Position) {
		return true
	}
	for _, n := range a.Notes {
		if contains(n.Content) {
			return true
		}
	}
	for _, r := range a.Reminders {
		if contains(r.Title) {
			return true
		}
	}
	for _, t := range a.Tags {
		if contains(t) {
			return true
		}
	}
	return false
}

func hasAnyTag(tags []string, set map[string]struct{}) bool {
	for _, t := range tags {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}

func inRange(t time.Time, r model.DateRange) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// AvailableTags returns the sorted union of tags across all records.
func AvailableTags(records []model.Application) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, a := range records {
		for _, t := range a.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	slices.Sort(out)
	return out
}
