package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"jobtracker/internal/auth"
)

const (
	// ClaimsLocalKey holds the *auth.Claims of an authenticated request.
	ClaimsLocalKey = "claims"
	// OwnerIDLocalKey holds the signed-in user id.
	OwnerIDLocalKey = "owner_id"
)

// Authenticator validates a bearer token.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
}

// Auth rejects requests without a valid "Authorization: Bearer <token>" header with 401.
// On success the claims and owner id are stored in locals.
func Auth(a Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		claims, err := a.Authenticate(c.UserContext(), token)
		if err != nil {
			if errors.Is(err, auth.ErrUnauthenticated) {
				return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
			}
			return fiber.NewError(fiber.StatusServiceUnavailable, "authentication unavailable")
		}

		c.Locals(ClaimsLocalKey, claims)
		c.Locals(OwnerIDLocalKey, claims.UserID)
		return c.Next()
	}
}

// OwnerIDFrom returns the signed-in user id, or "" for anonymous requests.
func OwnerIDFrom(c *fiber.Ctx) string {
	id, _ := c.Locals(OwnerIDLocalKey).(string)
	return id
}

// ClaimsFrom returns the claims stored by Auth, or nil.
func ClaimsFrom(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(ClaimsLocalKey).(*auth.Claims)
	return claims
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
