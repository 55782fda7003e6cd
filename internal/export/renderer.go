// Package export renders applications and dashboard statistics to downloadable files.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"jobtracker/internal/analytics"
	"jobtracker/internal/model"
)

// Format is an analytics export format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
)

// ParseFormat converts a raw query value; empty means csv.
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(raw)); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatJSON, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q", raw)
	}
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/csv; charset=utf-8"
	}
}

// File is a rendered export held in memory.
type File struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ApplicationFilename names the single-application PDF.
func ApplicationFilename(id string) string {
	return "application_" + id + ".pdf"
}

// AnalyticsFilename names an analytics export taken on now's calendar day.
func AnalyticsFilename(now time.Time, f Format) string {
	return "jobgenie-analytics-" + now.Format(time.DateOnly) + "." + string(f)
}

// ApplicationSummary is the per-record row of the JSON analytics report.
type ApplicationSummary struct {
	ID          string       `json:"id"`
	CompanyName string       `json:"companyName,omitempty"`
	Position    string       `json:"position,omitempty"`
	Status      model.Status `json:"status"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Tags        []string     `json:"tags"`
	Notes       int          `json:"notes"`
	Reminders   int          `json:"reminders"`
	Timeline    int          `json:"timeline"`
}

// Report is everything an analytics export carries.
type Report struct {
	Timestamp    time.Time            `json:"timestamp"`
	TimeRange    analytics.TimeRange  `json:"timeRange"`
	Stats        analytics.Stats      `json:"stats"`
	Applications []ApplicationSummary `json:"applications"`
}

// NewReport summarizes records (already filtered for display) next to their stats.
func NewReport(now time.Time, r analytics.TimeRange, stats analytics.Stats, records []model.Application) Report {
	apps := make([]ApplicationSummary, 0, len(records))
	for _, a := range records {
		tags := a.Tags
		if tags == nil {
			tags = []string{}
		}
		apps = append(apps, ApplicationSummary{
			ID:          a.ID,
			CompanyName: a.CompanyName,
			Position:    a.Position,
			Status:      a.Status,
			CreatedAt:   a.CreatedAt,
			UpdatedAt:   a.UpdatedAt,
			Tags:        tags,
			Notes:       len(a.Notes),
			Reminders:   len(a.Reminders),
			Timeline:    len(a.Timeline),
		})
	}
	return Report{Timestamp: now, TimeRange: r, Stats: stats, Applications: apps}
}

// RenderAnalytics renders rep in format f.
func RenderAnalytics(rep Report, f Format) (File, error) {
	var (
		body []byte
		err  error
	)
	switch f {
	case FormatCSV:
		body, err = analyticsCSV(rep.Stats)
	case FormatJSON:
		body, err = json.MarshalIndent(rep, "", "  ")
	case FormatPDF:
		body, err = analyticsPDF(rep)
	default:
		return File{}, fmt.Errorf("unknown export format %q", f)
	}
	if err != nil {
		return File{}, fmt.Errorf("render %s: %w", f, err)
	}
	return File{
		Filename:    AnalyticsFilename(rep.Timestamp, f),
		ContentType: f.ContentType(),
		Body:        body,
	}, nil
}

func pct(v float64) string  { return strconv.FormatFloat(v, 'f', 1, 64) + "%" }
func days(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) + " days" }

func analyticsCSV(s analytics.Stats) ([]byte, error) {
	rows := [][]string{
		{"Metric", "Value"},
		{"Total Applications", strconv.Itoa(s.TotalApplications)},
		{"Response Rate", pct(s.ResponseRate)},
		{"Interview Rate", pct(s.InterviewRate)},
		{"Offer Rate", pct(s.OfferRate)},
		{"Average Response Time", days(s.AverageResponseTime)},
		{"Average Interview Time", days(s.AverageInterviewTime)},
		{"", ""},
		{"Status Distribution", ""},
	}
	for _, st := range model.Statuses {
		if n, ok := s.StatusDistribution[st]; ok {
			rows = append(rows, []string{string(st), strconv.Itoa(n)})
		}
	}
	rows = append(rows, []string{"", ""}, []string{"Top Companies", "Count"})
	for _, c := range s.TopCompanies {
		rows = append(rows, []string{c.Name, strconv.Itoa(c.Count)})
	}
	rows = append(rows, []string{"", ""}, []string{"Top Positions", "Count"})
	for _, p := range s.TopPositions {
		rows = append(rows, []string{p.Position, strconv.Itoa(p.Count)})
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// document wraps fpdf with the few text styles the exports use.
type document struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
	loc *time.Location
}

func newDocument(title string, created time.Time) *document {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetCreator("jobtracker", true)
	pdf.SetCreationDate(created)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	return &document{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), loc: created.Location()}
}

func (d *document) header(text string) {
	d.pdf.SetFont("Helvetica", "B", 20)
	d.pdf.MultiCell(0, 10, d.tr(text), "", "L", false)
	d.pdf.Ln(4)
}

func (d *document) subheader(text string) {
	d.pdf.SetFont("Helvetica", "B", 13)
	d.pdf.MultiCell(0, 7, d.tr(text), "", "L", false)
}

func (d *document) section(text string) {
	d.pdf.Ln(4)
	d.pdf.SetFont("Helvetica", "B", 12)
	d.pdf.MultiCell(0, 7, d.tr(text), "", "L", false)
}

func (d *document) body(text string) {
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.MultiCell(0, 5, d.tr(text), "", "L", false)
}

func (d *document) muted(text string) {
	d.pdf.SetTextColor(120, 120, 120)
	d.pdf.SetFont("Helvetica", "I", 9)
	d.pdf.MultiCell(0, 5, d.tr(text), "", "L", false)
	d.pdf.SetTextColor(0, 0, 0)
}

func (d *document) date(t time.Time) string {
	return t.In(d.loc).Format("Jan 2, 2006")
}

func (d *document) output() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// RenderApplication renders one application as a PDF, with dates shown in now's location.
func RenderApplication(a model.Application, now time.Time) (File, error) {
	d := newDocument("Job Application Details", now)
	d.header("Job Application Details")
	d.subheader("Company: " + orDefault(a.CompanyName, "Not specified"))
	d.subheader("Position: " + orDefault(a.Position, "Not specified"))
	d.subheader("Status: " + strings.ToUpper(string(a.Status)))

	d.section("Tags")
	d.body(orDefault(strings.Join(a.Tags, ", "), "No tags"))

	d.section("Resume Details")
	d.body(a.ResumeDetails)
	d.section("Job Description")
	d.body(a.JobDescription)
	d.section("Generated Resume")
	d.body(orDefault(a.GeneratedResume, "Not generated yet"))
	d.section("Generated Cover Letter")
	d.body(orDefault(a.GeneratedCoverLetter, "Not generated yet"))

	d.section("Notes")
	if len(a.Notes) == 0 {
		d.body("No notes")
	}
	for _, n := range a.Notes {
		d.body(n.Content)
		d.muted("Added: " + d.date(n.CreatedAt))
	}

	d.section("Reminders")
	if len(a.Reminders) == 0 {
		d.body("No reminders")
	}
	for _, r := range a.Reminders {
		title := r.Title
		if r.Completed {
			title += " (Completed)"
		}
		d.body(title)
		d.muted("Due: " + d.date(r.DueDate))
	}

	d.section("Timeline")
	if len(a.Timeline) == 0 {
		d.body("No timeline events")
	}
	for _, e := range a.Timeline {
		d.pdf.SetFont("Helvetica", "B", 10)
		d.pdf.MultiCell(0, 5, d.tr(e.Title), "", "L", false)
		if e.Description != "" {
			d.body(e.Description)
		}
		d.muted(d.date(e.Date))
	}

	d.pdf.Ln(4)
	d.body("Created: " + d.date(a.CreatedAt))
	d.body("Last Updated: " + d.date(a.UpdatedAt))

	body, err := d.output()
	if err != nil {
		return File{}, fmt.Errorf("render pdf: %w", err)
	}
	return File{Filename: ApplicationFilename(a.ID), ContentType: FormatPDF.ContentType(), Body: body}, nil
}

func analyticsPDF(rep Report) ([]byte, error) {
	s := rep.Stats
	d := newDocument("Analytics Report", rep.Timestamp)
	d.header("Analytics Report")
	d.subheader("Dashboard Summary")
	d.muted(fmt.Sprintf("Range: %s, generated %s", rep.TimeRange, d.date(rep.Timestamp)))

	d.section("Metrics")
	d.body("Total Applications: " + strconv.Itoa(s.TotalApplications))
	d.body("Response Rate: " + pct(s.ResponseRate))
	d.body("Interview Rate: " + pct(s.InterviewRate))
	d.body("Offer Rate: " + pct(s.OfferRate))
	d.body("Average Response Time: " + days(s.AverageResponseTime))
	d.body("Average Interview Time: " + days(s.AverageInterviewTime))
	d.body(fmt.Sprintf("Reminders Completed: %d of %d", s.ReminderCompletion.Completed, s.ReminderCompletion.Total))

	d.section("Status Distribution")
	for _, st := range model.Statuses {
		if n, ok := s.StatusDistribution[st]; ok {
			d.body(fmt.Sprintf("%s: %d", st, n))
		}
	}

	d.section("Top Companies")
	for _, c := range s.TopCompanies {
		d.body(fmt.Sprintf("%s: %d", c.Name, c.Count))
	}
	d.section("Top Positions")
	for _, p := range s.TopPositions {
		d.body(fmt.Sprintf("%s: %d", p.Position, p.Count))
	}

	if len(s.SuccessInsights) > 0 {
		d.section("What Is Working")
		for _, i := range s.SuccessInsights {
			d.body("- " + i)
		}
	}
	if len(s.ImprovementInsights) > 0 {
		d.section("Areas To Improve")
		for _, i := range s.ImprovementInsights {
			d.body("- " + i)
		}
	}

	d.section("Applications")
	if len(rep.Applications) == 0 {
		d.body("No applications")
	}
	for _, a := range rep.Applications {
		d.body(fmt.Sprintf("%s, %s (%s)", orDefault(a.CompanyName, "Not specified"),
			orDefault(a.Position, "Not specified"), a.Status))
	}
	return d.output()
}
