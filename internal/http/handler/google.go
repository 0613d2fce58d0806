package handler

import (
	"github.com/gofiber/fiber/v2"

	"jobboard/internal/auth"
)

// GoogleHandler serves the one-time OAuth consent flow that authorizes the
// Gmail sender account.
type GoogleHandler struct {
	google *auth.GoogleAuth
}

func NewGoogleHandler(google *auth.GoogleAuth) *GoogleHandler {
	return &GoogleHandler{google: google}
}

// AuthURL returns the consent page URL for the operator to visit.
func (h *GoogleHandler) AuthURL(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"url": h.google.AuthURL("gmail-sender")})
}

// Callback receives the authorization code and stores the token.
func (h *GoogleHandler) Callback(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return writeError(c, fiber.StatusBadRequest, "CODE_REQUIRED", "authorization code is required")
	}
	if err := h.google.Exchange(c.UserContext(), code); err != nil {
		return writeError(c, fiber.StatusBadGateway, "EXCHANGE_FAILED", "token exchange failed")
	}
	return c.JSON(fiber.Map{"authorized": true})
}
