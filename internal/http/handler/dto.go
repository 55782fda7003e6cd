package handler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"jobtracker/internal/model"
	"jobtracker/internal/service"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type registerRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Name     string `json:"name" validate:"required,max=120"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type createApplicationRequest struct {
	ResumeDetails  string   `json:"resumeDetails" validate:"required"`
	JobDescription string   `json:"jobDescription" validate:"required"`
	CompanyName    string   `json:"companyName" validate:"max=200"`
	Position       string   `json:"position" validate:"max=200"`
	Status         string   `json:"status" validate:"omitempty,oneof=draft applied interview offer rejected accepted"`
	Tags           []string `json:"tags" validate:"omitempty,dive,required,max=50"`
}

func (r createApplicationRequest) toModel() model.NewApplication {
	return model.NewApplication{
		ResumeDetails:  r.ResumeDetails,
		JobDescription: r.JobDescription,
		CompanyName:    r.CompanyName,
		Position:       r.Position,
		Status:         model.Status(r.Status),
		Tags:           r.Tags,
	}
}

type updateApplicationRequest struct {
	ResumeDetails        *string   `json:"resumeDetails"`
	JobDescription       *string   `json:"jobDescription"`
	CompanyName          *string   `json:"companyName" validate:"omitempty,max=200"`
	Position             *string   `json:"position" validate:"omitempty,max=200"`
	GeneratedResume      *string   `json:"generatedResume"`
	GeneratedCoverLetter *string   `json:"generatedCoverLetter"`
	Status               *string   `json:"status" validate:"omitempty,oneof=draft applied interview offer rejected accepted"`
	Tags                 *[]string `json:"tags" validate:"omitempty,dive,required,max=50"`
}

func (r updateApplicationRequest) toInput() service.UpdateInput {
	in := service.UpdateInput{
		ResumeDetails:        r.ResumeDetails,
		JobDescription:       r.JobDescription,
		CompanyName:          r.CompanyName,
		Position:             r.Position,
		GeneratedResume:      r.GeneratedResume,
		GeneratedCoverLetter: r.GeneratedCoverLetter,
		Tags:                 r.Tags,
	}
	if r.Status != nil {
		s := model.Status(*r.Status)
		in.Status = &s
	}
	return in
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft applied interview offer rejected accepted"`
}

type noteRequest struct {
	Content string `json:"content" validate:"required,max=10000"`
}

type reminderRequest struct {
	Title   string    `json:"title" validate:"required,max=200"`
	DueDate time.Time `json:"dueDate" validate:"required"`
}

type tagRequest struct {
	Tag string `json:"tag" validate:"required,max=50"`
}

type timelineEventRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

type bulkStatusRequest struct {
	IDs    []string `json:"ids" validate:"required,min=1,max=500,dive,required"`
	Status string   `json:"status" validate:"required,oneof=draft applied interview offer rejected accepted"`
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,max=500,dive,required"`
}

type preferencesRequest struct {
	ViewMode      string               `json:"viewMode" validate:"omitempty,oneof=list grid"`
	TimeRange     string               `json:"selectedTimeRange" validate:"omitempty,oneof=week month year all"`
	InsightFilter string               `json:"insightFilter" validate:"omitempty,max=50"`
	SelectedTags  []string             `json:"selectedTags" validate:"omitempty,dive,max=50"`
	DateRange     model.DateRange      `json:"dateRange"`
	Dashboard     model.DashboardPrefs `json:"dashboard"`
}

func (r preferencesRequest) toModel() model.Preferences {
	return model.Preferences{
		ViewMode:      r.ViewMode,
		TimeRange:     r.TimeRange,
		InsightFilter: r.InsightFilter,
		SelectedTags:  r.SelectedTags,
		DateRange:     r.DateRange,
		Dashboard:     r.Dashboard,
	}
}

type itemResult struct {
	ID    string `json:"id"`
	Error string `json:"error,omitempty"`
}

type batchResponse struct {
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Items     []itemResult `json:"items"`
}

func newBatchResponse(b service.BatchResult) batchResponse {
	res := batchResponse{
		Succeeded: b.Succeeded(),
		Failed:    b.Failed(),
		Items:     make([]itemResult, 0, len(b.Items)),
	}
	for _, it := range b.Items {
		r := itemResult{ID: it.ID}
		if it.Err != nil {
			r.Error = it.Err.Error()
		}
		res.Items = append(res.Items, r)
	}
	return res
}

type restoreResponse struct {
	Timestamp   time.Time         `json:"timestamp"`
	Preferences model.Preferences `json:"settings"`
	Result      batchResponse     `json:"result"`
}

type tagsResponse struct {
	Tags []string `json:"tags"`
}

// bindAndValidate decodes the JSON body into dst and runs the validator on it.
// On failure it writes the 400 response and returns false.
func bindAndValidate(c *fiber.Ctx, dst any) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		return false, writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", validationMessage(err))
	}
	return true, nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
