package handler

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"jobtracker/internal/analytics"
	"jobtracker/internal/http/middleware"
	"jobtracker/internal/model"
	"jobtracker/internal/service"
)

// ListApplications godoc
// @Summary  List applications
// @Tags     applications
// @Produce  json
// @Param    search    query string false "case-insensitive text search"
// @Param    status    query string false "status or all"
// @Param    tags      query string false "comma separated; any match"
// @Param    start     query string false "createdAt lower bound (RFC3339 or YYYY-MM-DD)"
// @Param    end       query string false "createdAt upper bound (RFC3339 or YYYY-MM-DD)"
// @Param    sortField query string false "createdAt or updatedAt"
// @Param    sortOrder query string false "asc or desc"
// @Success  200 {array} model.Application
// @Failure  400 {object} errorPayload
// @Security BearerAuth
// @Router   /applications [get]
// Bare dates in start and end are calendar days in loc; nil means UTC.
func ListApplications(svc service.ApplicationService, loc *time.Location) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, err := parseQuery(c, loc)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_QUERY", err.Error())
		}
		res, err := svc.Query(c.UserContext(), middleware.OwnerIDFrom(c), q)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// CreateApplication godoc
// @Summary  Create an application
// @Tags     applications
// @Accept   json
// @Produce  json
// @Param    body body createApplicationRequest true "application"
// @Success  201 {object} model.Application
// @Failure  400 {object} errorPayload
// @Security BearerAuth
// @Router   /applications [post]
func CreateApplication(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createApplicationRequest
		if ok, err := bindAndValidate(c, &req); !ok {
			return err
		}
		app, err := svc.Save(c.UserContext(), middleware.OwnerIDFrom(c), req.toModel())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(app)
	}
}

// GetApplication godoc
// @Summary  Get one application
// @Tags     applications
// @Produce  json
// @Param    id path string true "application id"
// @Success  200 {object} model.Application
// @Failure  404 {object} errorPayload
// @Security BearerAuth
// @Router   /applications/{id} [get]
func GetApplication(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		app, err := svc.Get(c.UserContext(), middleware.OwnerIDFrom(c), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(app)
	}
}

// UpdateApplication godoc
// @Summary  Partially update an application
// @Tags     applications
// @Accept   json
// @Produce  json
// @Param    id   path string true "application id"
// @Param    body body updateApplicationRequest true "fields to change"
// @Success  200 {object} model.Application
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Security BearerAuth
// @Router   /applications/{id} [patch]
func UpdateApplication(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req updateApplicationRequest
		if ok, err := bindAndValidate(c, &req); !ok {
			return err
		}
		app, err := svc.Update(c.UserContext(), middleware.OwnerIDFrom(c), c.Params("id"), req.toInput())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(app)
	}
}

// UpdateStatus godoc
// @Summary  Change the status of an application
// @Tags     applications
// @Accept   json
// @Produce  json
// @Param    id   path string true "application id"
// @Param    body body statusRequest true "new status"
// @Success  200 {object} model.Application
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Security BearerAuth
// @Router   /applications/{id}/status [put]
func UpdateStatus(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req statusRequest
		if ok, err := bindAndValidate(c, &req); !ok {
			return err
		}
		app, err := svc.UpdateStatus(c.UserContext(), middleware.OwnerIDFrom(c), c.Params("id"), model.Status(req.Status))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(app)
	}
}

// DeleteApplication godoc
// @Summary  Soft-delete an application
// @Tags     applications
// @Param    id path string true "application id"
// @Success  204
// @Failure  404 {object} errorPayload
// @Security BearerAuth
// @Router   /applications/{id} [delete]
func DeleteApplication(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), middleware.OwnerIDFrom(c), c.Params("id")); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func AddNote(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req noteRequest
		if ok, err := bindAndValidate(c, &req); !ok {
			return err
		}
		note, err := svc.AddNote(c.UserContext(), middleware.OwnerIDFrom(c), c.Params("id"), req.Content)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(note)
	}
}

func DeleteNote(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.DeleteNote(c.UserContext(), middleware.OwnerIDFrom(c), c.Params("id"), c.Params("noteId")); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func AddReminder(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req reminderRequest
		if ok, err := bindAndValidate(c, &req); !ok {
			return err
		}
		rem, err := svc.AddReminder(c.UserContext(), middleware.OwnerIDFrom(c), c.Params("id"), req.Title, req.DueDate)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(rem)
	}
}

// ToggleReminder flips the completed flag.
func ToggleReminder(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rem, err := svc.ToggleReminder(c.UserContext(), middleware.OwnerIDFrom(c), c.Params("id"), c.Params("reminderId"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(rem)
	}
}

func DeleteReminder(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.DeleteReminder(c.UserContext(), middleware.OwnerIDFrom(c), c.Params("id"), c.Params("reminderId")); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func AddTag(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req tagRequest
		if ok, err := bindAndValidate(c, &req); !ok {
			return err
		}
		tags, err := svc.AddTag(c.UserContext(), middleware.OwnerIDFrom(c), c.Params("id"), req.Tag)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(tagsResponse{Tags: tags})
	}
}

func RemoveTag(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tags, err := svc.RemoveTag(c.UserContext(), middleware.OwnerIDFrom(c), c.Params("id"), c.Params("tag"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(tagsResponse{Tags: tags})
	}
}

// AddTimelineEvent appends a custom event.
func AddTimelineEvent(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req timelineEventRequest
		if ok, err := bindAndValidate(c, &req); !ok {
			return err
		}
		ev, err := svc.AddTimelineEvent(c.UserContext(), middleware.OwnerIDFrom(c), c.Params("id"), req.Title, req.Description)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(ev)
	}
}

// BulkUpdateStatus godoc
// @Summary  Change the status of many applications
// @Description Items are applied independently; failures are reported per item and never roll back the rest.
// @Tags     applications
// @Accept   json
// @Produce  json
// @Param    body body bulkStatusRequest true "ids and status"
// @Success  200 {object} batchResponse
// @Success  207 {object} batchResponse
// @Security BearerAuth
// @Router   /applications/bulk/status [post]
func BulkUpdateStatus(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req bulkStatusRequest
		if ok, err := bindAndValidate(c, &req); !ok {
			return err
		}
		res, err := svc.BulkUpdateStatus(c.UserContext(), middleware.OwnerIDFrom(c), req.IDs, model.Status(req.Status))
		if err != nil {
			return writeServiceError(c, err)
		}
		return writeBatch(c, res)
	}
}

func BulkDelete(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req bulkDeleteRequest
		if ok, err := bindAndValidate(c, &req); !ok {
			return err
		}
		res, err := svc.BulkDelete(c.UserContext(), middleware.OwnerIDFrom(c), req.IDs)
		if err != nil {
			return writeServiceError(c, err)
		}
		return writeBatch(c, res)
	}
}

// writeBatch answers 200 when every item applied and 207 otherwise.
func writeBatch(c *fiber.Ctx, res service.BatchResult) error {
	status := fiber.StatusOK
	if res.Failed() > 0 {
		status = fiber.StatusMultiStatus
	}
	return c.Status(status).JSON(newBatchResponse(res))
}

// AvailableTags returns the sorted union of tags on live records.
func AvailableTags(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tags, err := svc.AvailableTags(c.UserContext(), middleware.OwnerIDFrom(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(tagsResponse{Tags: tags})
	}
}

// GenerateDocuments godoc
// @Summary  Generate a tailored résumé and cover letter
// @Tags     applications
// @Produce  json
// @Param    id path string true "application id"
// @Success  200 {object} model.Application
// @Failure  404 {object} errorPayload
// @Failure  503 {object} errorPayload
// @Security BearerAuth
// @Router   /applications/{id}/generate [post]
func GenerateDocuments(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		app, err := svc.Generate(c.UserContext(), middleware.OwnerIDFrom(c), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(app)
	}
}

// ExportApplication godoc
// @Summary  Export one application as PDF
// @Tags     applications
// @Produce  json
// @Param    id path string true "application id"
// @Success  200 {object} export.Link
// @Failure  404 {object} errorPayload
// @Security BearerAuth
// @Router   /applications/{id}/export [get]
func ExportApplication(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		link, err := svc.ExportApplication(c.UserContext(), middleware.OwnerIDFrom(c), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(link)
	}
}

// parseQuery reads the list view parameters shared by the list and analytics export routes.
func parseQuery(c *fiber.Ctx, loc *time.Location) (analytics.Query, error) {
	q := analytics.Query{
		Search:    strings.TrimSpace(c.Query("search")),
		Status:    c.Query("status", analytics.StatusAll),
		SortField: analytics.SortField(c.Query("sortField", string(analytics.SortCreatedAt))),
		SortOrder: analytics.SortOrder(c.Query("sortOrder", string(analytics.SortDesc))),
	}
	if q.Status != analytics.StatusAll {
		s, err := model.ParseStatus(q.Status)
		if err != nil {
			return q, err
		}
		q.Status = string(s)
	}
	if q.SortField != analytics.SortCreatedAt && q.SortField != analytics.SortUpdatedAt {
		return q, errInvalidParam("sortField")
	}
	if q.SortOrder != analytics.SortAsc && q.SortOrder != analytics.SortDesc {
		return q, errInvalidParam("sortOrder")
	}
	if raw := c.Query("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				q.Tags = append(q.Tags, t)
			}
		}
	}

	var err error
	if q.DateRange.Start, err = parseBound(c.Query("start"), false, loc); err != nil {
		return q, errInvalidParam("start")
	}
	if q.DateRange.End, err = parseBound(c.Query("end"), true, loc); err != nil {
		return q, errInvalidParam("end")
	}
	return q, nil
}

// parseBound accepts RFC3339 or a bare date in loc. A bare end date covers the whole day.
func parseBound(raw string, end bool, loc *time.Location) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(time.DateOnly, raw, loc)
	if err != nil {
		return nil, err
	}
	if end {
		t = t.Add(analytics.Day - time.Nanosecond)
	}
	return &t, nil
}

type paramError string

func (e paramError) Error() string { return "invalid " + string(e) }

func errInvalidParam(name string) error { return paramError(name) }
