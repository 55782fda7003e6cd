package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"jobtracker/internal/brand"
)

// GenerateBrand godoc
// @Summary  Generate a brand name, slogan and logo
// @Tags     brand
// @Accept   json
// @Produce  json
// @Param    body body brand.Request true "industry and style"
// @Success  200 {object} brand.Result
// @Failure  400 {object} errorPayload
// @Failure  502 {object} errorPayload
// @Security BearerAuth
// @Router   /brand [post]
func GenerateBrand(g brand.Generator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req brand.Request
		if ok, err := bindAndValidate(c, &req); !ok {
			return err
		}
		res, err := g.Generate(c.UserContext(), req)
		switch {
		case err == nil:
			return c.JSON(res)
		case errors.Is(err, brand.ErrNotConfigured):
			return writeServiceError(c, err)
		case errors.Is(err, brand.ErrNoResult):
			return writeError(c, fiber.StatusBadGateway, "NO_RESULT", "no result generated")
		default:
			return writeError(c, fiber.StatusBadGateway, "UPSTREAM_ERROR", "brand generator failed")
		}
	}
}
