package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"jobtracker/internal/analytics"
	"jobtracker/internal/export"
	"jobtracker/internal/http/middleware"
	"jobtracker/internal/service"
)

// Summary godoc
// @Summary  Dashboard statistics for a window
// @Tags     analytics
// @Produce  json
// @Param    range query string false "week, month (default), year or all"
// @Success  200 {object} analytics.Stats
// @Failure  400 {object} errorPayload
// @Security BearerAuth
// @Router   /analytics/summary [get]
func Summary(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		r, err := analytics.ParseTimeRange(c.Query("range"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_RANGE", "invalid range")
		}
		stats, err := svc.Summary(c.UserContext(), middleware.OwnerIDFrom(c), r)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(stats)
	}
}

// Trend godoc
// @Summary  Daily application counts for a window
// @Tags     analytics
// @Produce  json
// @Param    range query string false "week, month (default), year or all"
// @Success  200 {array} analytics.TrendPoint
// @Failure  400 {object} errorPayload
// @Security BearerAuth
// @Router   /analytics/trend [get]
func Trend(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		r, err := analytics.ParseTimeRange(c.Query("range"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_RANGE", "invalid range")
		}
		points, err := svc.Trend(c.UserContext(), middleware.OwnerIDFrom(c), r)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(points)
	}
}

// ExportAnalytics godoc
// @Summary  Export statistics and the filtered list
// @Description Accepts the list filters of GET /applications next to range and format.
// @Tags     analytics
// @Produce  json
// @Param    format query string false "csv (default), json or pdf"
// @Param    range  query string false "week, month (default), year or all"
// @Success  200 {object} export.Link
// @Failure  400 {object} errorPayload
// @Failure  503 {object} errorPayload
// @Security BearerAuth
// @Router   /analytics/export [get]
func ExportAnalytics(svc service.ApplicationService, loc *time.Location) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := export.ParseFormat(c.Query("format"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FORMAT", "format must be csv, json or pdf")
		}
		r, err := analytics.ParseTimeRange(c.Query("range"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_RANGE", "invalid range")
		}
		q, err := parseQuery(c, loc)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_QUERY", err.Error())
		}
		link, err := svc.ExportAnalytics(c.UserContext(), middleware.OwnerIDFrom(c), q, r, f)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(link)
	}
}
