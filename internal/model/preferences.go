package model

import "time"

// DashboardPrefs toggles dashboard panels.
type DashboardPrefs struct {
	ShowTrends    bool `json:"showTrends"`
	ShowStatus    bool `json:"showStatus"`
	ShowCompanies bool `json:"showCompanies"`
	ShowResponse  bool `json:"showResponse"`
	ShowStats     bool `json:"showStats"`
	ShowInsights  bool `json:"showInsights"`
}

// DateRange is an optional inclusive bound pair on createdAt.
type DateRange struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// Preferences is the view state a client persists between sessions.
type Preferences struct {
	ViewMode      string         `json:"viewMode"`
	TimeRange     string         `json:"selectedTimeRange"`
	InsightFilter string         `json:"insightFilter"`
	SelectedTags  []string       `json:"selectedTags"`
	DateRange     DateRange      `json:"dateRange"`
	Dashboard     DashboardPrefs `json:"dashboard"`
}

// DefaultPreferences returns the preferences used when none were saved.
func DefaultPreferences() Preferences {
	return Preferences{
		ViewMode:      "list",
		TimeRange:     "month",
		InsightFilter: "all",
		SelectedTags:  []string{},
		Dashboard: DashboardPrefs{
			ShowTrends:    true,
			ShowStatus:    true,
			ShowCompanies: true,
			ShowResponse:  true,
			ShowStats:     true,
			ShowInsights:  true,
		},
	}
}

// Backup is the snapshot written to the durable cache.
type Backup struct {
	Timestamp    time.Time     `json:"timestamp"`
	Applications []Application `json:"applications"`
	Settings     Preferences   `json:"settings"`
}

// User is an account that owns applications.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
