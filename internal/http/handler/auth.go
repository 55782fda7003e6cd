package handler

import (
	"github.com/gofiber/fiber/v2"

	"jobtracker/internal/auth"
	"jobtracker/internal/http/middleware"
)

// Register godoc
// @Summary  Create an account
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body registerRequest true "account"
// @Success  201 {object} auth.Session
// @Failure  400 {object} errorPayload
// @Failure  409 {object} errorPayload
// @Router   /auth/register [post]
func Register(p auth.Provider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRequest
		if ok, err := bindAndValidate(c, &req); !ok {
			return err
		}
		sess, err := p.Register(c.UserContext(), req.Email, req.Name, req.Password)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(sess)
	}
}

// Login godoc
// @Summary  Sign in with email and password
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body loginRequest true "credentials"
// @Success  200 {object} auth.Session
// @Failure  401 {object} errorPayload
// @Router   /auth/login [post]
func Login(p auth.Provider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if ok, err := bindAndValidate(c, &req); !ok {
			return err
		}
		sess, err := p.SignIn(c.UserContext(), req.Email, req.Password)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(sess)
	}
}

// Logout revokes the bearer token until it expires.
func Logout(p auth.Provider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := p.SignOut(c.UserContext(), middleware.ClaimsFrom(c)); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
