package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"jobboard/internal/auth"
)

// Locals keys populated by Auth.
const (
	AccountIDLocalKey = "account_id"
	RoleLocalKey      = "account_role"
)

// Auth validates the Bearer token and stores the account identity in
// locals. Requests without a valid token get 401; a token whose role is not
// in allowed gets 403. An empty allowed list accepts any authenticated
// role.
func Auth(issuer *auth.TokenIssuer, allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}
		claims, err := issuer.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		if len(allowed) > 0 {
			ok := false
			for _, role := range allowed {
				if claims.Role == role {
					ok = true
					break
				}
			}
			if !ok {
				return fiber.NewError(fiber.StatusForbidden, "insufficient role")
			}
		}

		c.Locals(AccountIDLocalKey, claims.Subject)
		c.Locals(RoleLocalKey, claims.Role)
		return c.Next()
	}
}

// AccountID returns the authenticated account id stored by Auth, or "".
func AccountID(c *fiber.Ctx) string {
	if v, ok := c.Locals(AccountIDLocalKey).(string); ok {
		return v
	}
	return ""
}
