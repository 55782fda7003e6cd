package analytics

import (
	"fmt"
	"math"
	"testing"
	"time"

	"jobtracker/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func app(id string, status model.Status, created time.Time) model.Application {
	return model.Application{
		ID:        id,
		Status:    status,
		CreatedAt: created,
		UpdatedAt: created,
		Timeline: []model.TimelineEvent{{
			ID:          id + "-created",
			Type:        model.EventStatusChange,
			Title:       model.TitleApplicationCreated,
			Description: "Created as " + string(status),
			Date:        created,
		}},
	}
}

func withTransition(a model.Application, from, to model.Status, at time.Time) model.Application {
	a.Timeline = append(a.Timeline, model.TimelineEvent{
		ID:          fmt.Sprintf("%s-%d", a.ID, len(a.Timeline)),
		Type:        model.EventStatusChange,
		Title:       model.TitleStatusUpdated,
		Description: fmt.Sprintf("Changed from %s to %s", from, to),
		Date:        at,
		Transition:  &model.StatusTransition{From: from, To: to},
	})
	return a
}

func ids(apps []model.Application) []string {
	out := make([]string, 0, len(apps))
	for _, a := range apps {
		out = append(out, a.ID)
	}
	return out
}

func TestSelect_ExcludesDeleted(t *testing.T) {
	a := app("a", model.StatusDraft, now)
	b := app("b", model.StatusDraft, now)
	b.Deleted = true

	got := Select([]model.Application{a, b}, Query{Status: StatusAll})
	assert.Equal(t, []string{"a"}, ids(got))
}

func TestSelect_Search(t *testing.T) {
	base := now.Add(-time.Hour)
	mk := func(id string, mut func(*model.Application)) model.Application {
		a := app(id, model.StatusDraft, base)
		mut(&a)
		return a
	}
	records := []model.Application{
		mk("resume", func(a *model.Application) { a.ResumeDetails = "Senior GOLANG engineer" }),
		mk("jd", func(a *model.Application) { a.JobDescription = "We love golang" }),
		mk("company", func(a *model.Application) { a.CompanyName = "GoLang Inc" }),
		mk("position", func(a *model.Application) { a.Position = "Golang Dev" }),
		mk("note", func(a *model.Application) { a.Notes = []model.Note{{ID: "n", Content: "asked about golang"}} }),
		mk("reminder", func(a *model.Application) { a.Reminders = []model.Reminder{{ID: "r", Title: "Golang quiz"}} }),
		mk("tag", func(a *model.Application) { a.Tags = []string{"golang"} }),
		mk("miss", func(a *model.Application) { a.CompanyName = "Rustaceans" }),
	}

	got := Select(records, Query{Search: "gOlAnG", SortOrder: SortAsc})
	assert.Equal(t, []string{"resume", "jd", "company", "position", "note", "reminder", "tag"}, ids(got))
}

func TestSelect_StatusAndTags(t *testing.T) {
	a := app("a", model.StatusApplied, now.Add(-3*time.Hour))
	a.Tags = []string{"remote", "go"}
	b := app("b", model.StatusApplied, now.Add(-2*time.Hour))
	b.Tags = []string{"onsite"}
	c := app("c", model.StatusOffer, now.Add(-1*time.Hour))
	c.Tags = []string{"remote"}
	records := []model.Application{a, b, c}

	tests := []struct {
		name string
		q    Query
		want []string
	}{
		{name: "no filters", q: Query{}, want: []string{"c", "b", "a"}},
		{name: "status all", q: Query{Status: StatusAll, SortOrder: SortAsc}, want: []string{"a", "b", "c"}},
		{name: "status applied", q: Query{Status: "applied"}, want: []string{"b", "a"}},
		{name: "tag intersection", q: Query{Tags: []string{"remote", "nope"}}, want: []string{"c", "a"}},
		{name: "tag is case-sensitive", q: Query{Tags: []string{"Remote"}}, want: []string{}},
		{name: "status and tag", q: Query{Status: "offer", Tags: []string{"remote"}}, want: []string{"c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Select(records, tt.q)))
		})
	}
}

func TestSelect_SingleDayRange(t *testing.T) {
	d := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	records := []model.Application{
		app("before", model.StatusDraft, d.Add(-time.Millisecond)),
		app("exact", model.StatusDraft, d),
		app("after", model.StatusDraft, d.Add(time.Millisecond)),
	}

	got := Select(records, Query{DateRange: model.DateRange{Start: &d, End: &d}})
	assert.Equal(t, []string{"exact"}, ids(got))
}

func TestSelect_OpenEndedRange(t *testing.T) {
	start := now.Add(-2 * Day)
	records := []model.Application{
		app("old", model.StatusDraft, now.Add(-3*Day)),
		app("new", model.StatusDraft, now.Add(-Day)),
	}

	got := Select(records, Query{DateRange: model.DateRange{Start: &start}})
	assert.Equal(t, []string{"new"}, ids(got))
}

func TestSelect_StableSort(t *testing.T) {
	a := app("a", model.StatusDraft, now)
	b := app("b", model.StatusDraft, now)
	c := app("c", model.StatusDraft, now.Add(-Day))
	c.UpdatedAt = now.Add(Day)

	assert.Equal(t, []string{"a", "b", "c"}, ids(Select([]model.Application{a, b, c}, Query{})))
	assert.Equal(t, []string{"c", "a", "b"}, ids(Select([]model.Application{a, b, c}, Query{SortOrder: SortAsc})))
	assert.Equal(t, []string{"c", "a", "b"}, ids(Select([]model.Application{a, b, c}, Query{SortField: SortUpdatedAt})))
}

func TestAvailableTags(t *testing.T) {
	a := app("a", model.StatusDraft, now)
	a.Tags = []string{"remote", "go"}
	b := app("b", model.StatusDraft, now)
	b.Tags = []string{"go", "contract"}

	assert.Equal(t, []string{"contract", "go", "remote"}, AvailableTags([]model.Application{a, b}))
	assert.Equal(t, []string{}, AvailableTags(nil))
}

func TestParseTimeRange(t *testing.T) {
	r, err := ParseTimeRange("")
	require.NoError(t, err)
	assert.Equal(t, RangeMonth, r)

	r, err = ParseTimeRange("year")
	require.NoError(t, err)
	assert.Equal(t, RangeYear, r)

	_, err = ParseTimeRange("decade")
	assert.Error(t, err)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, RangeAll, now)

	assert.Zero(t, s.TotalApplications)
	assert.Zero(t, s.ResponseRate)
	assert.Zero(t, s.InterviewRate)
	assert.Zero(t, s.OfferRate)
	assert.Zero(t, s.AverageResponseTime)
	assert.Zero(t, s.AverageInterviewTime)
	assert.False(t, math.IsNaN(s.ResponseRate))
	assert.Empty(t, s.StatusDistribution)
	assert.NotNil(t, s.StatusDistribution)
	assert.Empty(t, s.TopCompanies)
	assert.NotNil(t, s.TopCompanies)
	assert.Empty(t, s.TopPositions)
	assert.Empty(t, s.TagDistribution)
	assert.Equal(t, ReminderCompletion{}, s.ReminderCompletion)
	assert.Equal(t, []string{InsightQuickResponses}, s.SuccessInsights)
	assert.Equal(t, []string{InsightReviewMaterials, InsightInterviewPrep}, s.ImprovementInsights)
}

func TestSummarize_ResponseRateScenario(t *testing.T) {
	var records []model.Application
	for i := 0; i < 3; i++ {
		a := app(fmt.Sprintf("acme-%d", i), model.StatusApplied, now.Add(-time.Duration(i+1)*time.Hour))
		a.CompanyName = "Acme"
		records = append(records, a)
	}
	beta := app("beta", model.StatusApplied, now.Add(-5*time.Hour))
	beta.CompanyName = "Beta"
	records = append(records, beta)
	interview := app("acme-int", model.StatusInterview, now.Add(-6*time.Hour))
	interview.CompanyName = "Acme"
	records = append(records, interview)

	s := Summarize(records, RangeMonth, now)

	assert.Equal(t, 25.0, s.ResponseRate)
	assert.Equal(t, 0.0, s.InterviewRate)
	assert.Equal(t, 0.0, s.OfferRate)
	assert.Equal(t, map[model.Status]int{model.StatusApplied: 4, model.StatusInterview: 1}, s.StatusDistribution)
	assert.Equal(t, []CompanyCount{{Name: "Acme", Count: 4}, {Name: "Beta", Count: 1}}, s.TopCompanies)
	assert.Equal(t, 5, s.TotalApplications)
}

func TestSummarize_RatesBounded(t *testing.T) {
	// Two interviews against one applied would be 200 unclamped.
	records := []model.Application{
		app("a", model.StatusApplied, now),
		app("b", model.StatusInterview, now),
		app("c", model.StatusInterview, now),
		app("d", model.StatusOffer, now),
	}
	s := Summarize(records, RangeAll, now)

	for _, r := range []float64{s.ResponseRate, s.InterviewRate, s.OfferRate} {
		assert.GreaterOrEqual(t, r, 0.0)
		assert.LessOrEqual(t, r, 100.0)
	}
	assert.Equal(t, 100.0, s.ResponseRate)
	assert.Equal(t, 50.0, s.InterviewRate)
	assert.Equal(t, 100.0, s.OfferRate)
}

func TestSummarize_Window(t *testing.T) {
	records := []model.Application{
		app("recent", model.StatusDraft, now.Add(-2*Day)),
		app("old", model.StatusDraft, now.Add(-10*Day)),
		app("ancient", model.StatusDraft, now.Add(-400*Day)),
	}
	deleted := app("gone", model.StatusDraft, now)
	deleted.Deleted = true
	records = append(records, deleted)

	assert.Equal(t, 1, Summarize(records, RangeWeek, now).TotalApplications)
	assert.Equal(t, 2, Summarize(records, RangeMonth, now).TotalApplications)
	assert.Equal(t, 2, Summarize(records, RangeYear, now).TotalApplications)
	assert.Equal(t, 3, Summarize(records, RangeAll, now).TotalApplications)
}

func TestSummarize_AverageTimes(t *testing.T) {
	t0 := now.Add(-20 * Day)
	a := app("a", model.StatusDraft, t0)
	a = withTransition(a, model.StatusDraft, model.StatusApplied, t0.Add(2*Day))
	a = withTransition(a, model.StatusApplied, model.StatusInterview, t0.Add(5*Day))
	a.Status = model.StatusInterview

	b := app("b", model.StatusDraft, t0)
	b = withTransition(b, model.StatusDraft, model.StatusApplied, t0.Add(4*Day))
	b.Status = model.StatusApplied

	// Legacy event with only a description still counts.
	c := app("c", model.StatusDraft, t0)
	c.Timeline = append(c.Timeline, model.TimelineEvent{
		ID:          "c-legacy",
		Type:        model.EventStatusChange,
		Title:       model.TitleStatusUpdated,
		Description: "Changed from draft to applied",
		Date:        t0.Add(6 * Day),
	})
	c.Status = model.StatusApplied

	s := Summarize([]model.Application{a, b, c}, RangeMonth, now)

	assert.InDelta(t, 4.0, s.AverageResponseTime, 1e-9)
	assert.InDelta(t, 3.0, s.AverageInterviewTime, 1e-9)
	assert.Contains(t, s.SuccessInsights, InsightQuickResponses)
}

func TestSummarize_CreatedAsAppliedIsNotAResponse(t *testing.T) {
	a := app("a", model.StatusApplied, now.Add(-Day))
	s := Summarize([]model.Application{a}, RangeWeek, now)
	assert.Zero(t, s.AverageResponseTime)
}

func TestSummarize_TopNAndTies(t *testing.T) {
	var records []model.Application
	add := func(company string, n int) {
		for i := 0; i < n; i++ {
			a := app(fmt.Sprintf("%s-%d", company, i), model.StatusDraft, now)
			a.CompanyName = company
			a.Position = "Engineer"
			records = append(records, a)
		}
	}
	add("Gamma", 1)
	add("Alpha", 2)
	add("Delta", 1)
	add("Beta", 3)
	add("Eps", 1)
	add("Zeta", 1)
	records = append(records, app("no-company", model.StatusDraft, now))

	s := Summarize(records, RangeAll, now)

	require.Len(t, s.TopCompanies, TopN)
	assert.Equal(t, []CompanyCount{
		{Name: "Beta", Count: 3},
		{Name: "Alpha", Count: 2},
		{Name: "Gamma", Count: 1},
		{Name: "Delta", Count: 1},
		{Name: "Eps", Count: 1},
	}, s.TopCompanies)
	assert.Equal(t, []PositionCount{{Position: "Engineer", Count: 9}}, s.TopPositions)
}

func TestSummarize_TagsRemindersAndTrend(t *testing.T) {
	a := app("a", model.StatusDraft, now.Add(-Day))
	a.Tags = []string{"remote", "go"}
	a.Reminders = []model.Reminder{{ID: "r1", Completed: true}, {ID: "r2"}}
	b := app("b", model.StatusDraft, now.Add(-Day))
	b.Tags = []string{"remote"}
	b.Reminders = []model.Reminder{{ID: "r3", Completed: true}}
	c := app("c", model.StatusDraft, now.Add(-3*Day))

	s := Summarize([]model.Application{a, b, c}, RangeWeek, now)

	assert.Equal(t, map[string]int{"remote": 2, "go": 1}, s.TagDistribution)
	assert.Equal(t, ReminderCompletion{Completed: 2, Total: 3}, s.ReminderCompletion)
	assert.Equal(t, []DateCount{
		{Date: "2025-06-12", Count: 1},
		{Date: "2025-06-14", Count: 2},
	}, s.ApplicationTrend)
}

func TestBuildTrend_Lengths(t *testing.T) {
	records := []model.Application{app("a", model.StatusDraft, now.Add(-2*Day))}

	assert.Len(t, BuildTrend(records, RangeWeek, now), 7)
	assert.Len(t, BuildTrend(records, RangeMonth, now), 30)
	assert.Len(t, BuildTrend(records, RangeYear, now), 365)
	assert.Len(t, BuildTrend(nil, RangeWeek, now), 7)
}

func TestBuildTrend_AllRange(t *testing.T) {
	tests := []struct {
		name    string
		records []model.Application
		want    int
	}{
		{name: "no records", records: nil, want: 1},
		{name: "created now", records: []model.Application{app("a", model.StatusDraft, now)}, want: 1},
		{name: "exact days", records: []model.Application{app("a", model.StatusDraft, now.Add(-10*Day))}, want: 10},
		{name: "partial day rounds up", records: []model.Application{app("a", model.StatusDraft, now.Add(-10*Day-time.Hour))}, want: 11},
		{
			name: "deleted earliest ignored",
			records: func() []model.Application {
				old := app("old", model.StatusDraft, now.Add(-50*Day))
				old.Deleted = true
				return []model.Application{old, app("a", model.StatusDraft, now.Add(-4*Day))}
			}(),
			want: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, BuildTrend(tt.records, RangeAll, now), tt.want)
		})
	}
}

func TestBuildTrend_Buckets(t *testing.T) {
	t0 := now.Add(-5 * Day)
	a := app("a", model.StatusDraft, t0)
	a = withTransition(a, model.StatusDraft, model.StatusApplied, now.Add(-3*Day))
	a = withTransition(a, model.StatusApplied, model.StatusInterview, now.Add(-time.Hour))

	b := app("b", model.StatusDraft, now)
	old := app("old", model.StatusDraft, now.Add(-30*Day))
	old = withTransition(old, model.StatusDraft, model.StatusApplied, now.Add(-Day))
	future := app("future", model.StatusDraft, now.Add(2*Day))

	points := BuildTrend([]model.Application{a, b, old, future}, RangeWeek, now)
	require.Len(t, points, 7)

	assert.Equal(t, "2025-06-09", points[0].Date)
	assert.Equal(t, "2025-06-15", points[6].Date)

	assert.Equal(t, 1, points[1].Applications)
	assert.Equal(t, 1, points[3].Responses)
	assert.Equal(t, 1, points[6].Interviews)
	assert.Equal(t, 1, points[6].Applications)

	var apps, responses, interviews int
	for _, p := range points {
		apps += p.Applications
		responses += p.Responses
		interviews += p.Interviews
	}
	assert.Equal(t, 2, apps)
	// The old record's response lands inside the window but the record itself does not.
	assert.Equal(t, 1, responses)
	assert.Equal(t, 1, interviews)
}
