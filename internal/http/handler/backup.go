package handler

import (
	"github.com/gofiber/fiber/v2"

	"jobtracker/internal/http/middleware"
	"jobtracker/internal/service"
)

// Backup godoc
// @Summary  Snapshot every record and the given preferences
// @Description An empty body backs up the preferences currently saved.
// @Tags     backup
// @Accept   json
// @Produce  json
// @Param    body body preferencesRequest false "preferences to include"
// @Success  201 {object} model.Backup
// @Security BearerAuth
// @Router   /backup [post]
func Backup(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		owner := middleware.OwnerIDFrom(c)
		prefs, err := svc.LoadPreferences(c.UserContext(), owner)
		if err != nil {
			return writeServiceError(c, err)
		}
		if len(c.Body()) > 0 {
			var req preferencesRequest
			if ok, err := bindAndValidate(c, &req); !ok {
				return err
			}
			prefs = req.toModel()
		}
		b, err := svc.Backup(c.UserContext(), owner, prefs)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(b)
	}
}

// Restore godoc
// @Summary  Re-apply the last backup
// @Tags     backup
// @Produce  json
// @Success  200 {object} restoreResponse
// @Success  207 {object} restoreResponse
// @Failure  404 {object} errorPayload
// @Failure  422 {object} errorPayload
// @Security BearerAuth
// @Router   /restore [post]
func Restore(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Restore(c.UserContext(), middleware.OwnerIDFrom(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		status := fiber.StatusOK
		if res.Batch.Failed() > 0 {
			status = fiber.StatusMultiStatus
		}
		return c.Status(status).JSON(restoreResponse{
			Timestamp:   res.Timestamp,
			Preferences: res.Preferences,
			Result:      newBatchResponse(res.Batch),
		})
	}
}

func GetPreferences(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := svc.LoadPreferences(c.UserContext(), middleware.OwnerIDFrom(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(p)
	}
}

// PutPreferences replaces the saved preferences and echoes the normalized value.
func PutPreferences(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req preferencesRequest
		if ok, err := bindAndValidate(c, &req); !ok {
			return err
		}
		owner := middleware.OwnerIDFrom(c)
		if err := svc.SavePreferences(c.UserContext(), owner, req.toModel()); err != nil {
			return writeServiceError(c, err)
		}
		p, err := svc.LoadPreferences(c.UserContext(), owner)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(p)
	}
}
