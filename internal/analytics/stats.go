package analytics

import (
	"slices"
	"time"

	"jobtracker/internal/model"
)

// TopN bounds the top companies and top positions lists.
const TopN = 5

// Insight messages.
const (
	InsightHighResponse      = "High response rate indicates strong application materials"
	InsightReviewMaterials   = "Consider reviewing and improving application materials"
	InsightGoodConversion    = "Good interview conversion rate"
	InsightInterviewPrep     = "Focus on interview preparation and follow-up"
	InsightQuickResponses    = "Quick response times from companies"
	InsightFollowUpAfterWeek = "Consider following up on applications after 1 week"
)

// CompanyCount is one entry of the top companies list.
type CompanyCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PositionCount is one entry of the top positions list.
type PositionCount struct {
	Position string `json:"position"`
	Count    int    `json:"count"`
}

// DateCount is the number of applications created on one calendar day.
type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ReminderCompletion counts reminders across the window.
type ReminderCompletion struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Stats is the dashboard summary for one time window.
type Stats struct {
	TotalApplications    int                  `json:"totalApplications"`
	StatusDistribution   map[model.Status]int `json:"statusDistribution"`
	ResponseRate         float64              `json:"responseRate"`
	InterviewRate        float64              `json:"interviewRate"`
	OfferRate            float64              `json:"offerRate"`
	AverageResponseTime  float64              `json:"averageResponseTime"`
	AverageInterviewTime float64              `json:"averageInterviewTime"`
	TopCompanies         []CompanyCount       `json:"topCompanies"`
	TopPositions         []PositionCount      `json:"topPositions"`
	SuccessInsights      []string             `json:"successInsights"`
	ImprovementInsights  []string             `json:"improvementInsights"`
	ApplicationTrend     []DateCount          `json:"applicationTrend"`
	TagDistribution      map[string]int       `json:"tagDistribution"`
	ReminderCompletion   ReminderCompletion   `json:"reminderCompletion"`
}

// counter tallies string keys and remembers first-occurrence order.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// top returns up to n keys by descending count; ties keep first-occurrence order.
func (c *counter) top(n int) []string {
	keys := slices.Clone(c.order)
	slices.SortStableFunc(keys, func(a, b string) int {
		return c.counts[b] - c.counts[a]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// Summarize computes dashboard statistics over non-deleted records created inside the window.
func Summarize(records []model.Application, r TimeRange, now time.Time) Stats {
	cutoff, bounded := r.Cutoff(now)

	stats := Stats{
		StatusDistribution:  make(map[model.Status]int),
		TopCompanies:        []CompanyCount{},
		TopPositions:        []PositionCount{},
		SuccessInsights:     []string{},
		ImprovementInsights: []string{},
		ApplicationTrend:    []DateCount{},
		TagDistribution:     make(map[string]int),
	}

	var (
		applied, interviews, offers   int
		responseTotal, interviewTotal time.Duration
		responseCount, interviewCount int
		companies, positions, days    = newCounter(), newCounter(), newCounter()
	)

	for i := range records {
		a := &records[i]
		if a.Deleted || (bounded && a.CreatedAt.Before(cutoff)) {
			continue
		}
		stats.TotalApplications++
		stats.StatusDistribution[a.Status]++

		if a.CompanyName != "" {
			companies.add(a.CompanyName)
		}
		if a.Position != "" {
			positions.add(a.Position)
		}
		days.add(a.CreatedAt.In(now.Location()).Format(time.DateOnly))

		for _, t := range a.Tags {
			stats.TagDistribution[t]++
		}
		for _, rem := range a.Reminders {
			stats.ReminderCompletion.Total++
			if rem.Completed {
				stats.ReminderCompletion.Completed++
			}
		}

		switch a.Status {
		case model.StatusApplied:
			applied++
		case model.StatusInterview:
			interviews++
		case model.StatusOffer:
			offers++
		}

		created, hasCreated := a.FirstEvent(model.TimelineEvent.IsCreation)
		appliedEv, hasApplied := a.FirstEvent(transitionTo(model.StatusApplied))
		interviewEv, hasInterview := a.FirstEvent(transitionTo(model.StatusInterview))

		if hasCreated && hasApplied {
			responseTotal += appliedEv.Date.Sub(created.Date)
			responseCount++
		}
		if hasApplied && hasInterview {
			interviewTotal += interviewEv.Date.Sub(appliedEv.Date)
			interviewCount++
		}
	}

	stats.ResponseRate = percent(interviews, applied)
	stats.InterviewRate = percent(offers, interviews)
	stats.OfferRate = percent(offers, applied)
	stats.AverageResponseTime = averageDays(responseTotal, responseCount)
	stats.AverageInterviewTime = averageDays(interviewTotal, interviewCount)

	for _, name := range companies.top(TopN) {
		stats.TopCompanies = append(stats.TopCompanies, CompanyCount{Name: name, Count: companies.counts[name]})
	}
	for _, pos := range positions.top(TopN) {
		stats.TopPositions = append(stats.TopPositions, PositionCount{Position: pos, Count: positions.counts[pos]})
	}

	dates := slices.Clone(days.order)
	slices.Sort(dates)
	for _, d := range dates {
		stats.ApplicationTrend = append(stats.ApplicationTrend, DateCount{Date: d, Count: days.counts[d]})
	}

	addInsights(&stats)
	return stats
}

func transitionTo(s model.Status) func(model.TimelineEvent) bool {
	return func(e model.TimelineEvent) bool { return e.IsTransitionTo(s) }
}

// percent returns num/den*100 capped at 100, or 0 when den is 0.
// Uncapped, interviews outnumbering applied records would report e.g. 300.
func percent(num, den int) float64 {
	if den == 0 {
		return 0
	}
	p := float64(num) / float64(den) * 100
	if p > 100 {
		return 100
	}
	return p
}

func averageDays(total time.Duration, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(total) / float64(n) / float64(Day)
}

func addInsights(s *Stats) {
	if s.ResponseRate > 50 {
		s.SuccessInsights = append(s.SuccessInsights, InsightHighResponse)
	} else {
		s.ImprovementInsights = append(s.ImprovementInsights, InsightReviewMaterials)
	}

	if s.InterviewRate > 30 {
		s.SuccessInsights = append(s.SuccessInsights, InsightGoodConversion)
	} else {
		s.ImprovementInsights = append(s.ImprovementInsights, InsightInterviewPrep)
	}

	if s.AverageResponseTime < 7 {
		s.SuccessInsights = append(s.SuccessInsights, InsightQuickResponses)
	} else {
		s.ImprovementInsights = append(s.ImprovementInsights, InsightFollowUpAfterWeek)
	}
}
