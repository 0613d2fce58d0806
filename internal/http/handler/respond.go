package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"jobboard/internal/importer"
	"jobboard/internal/service"
)

var validate = validator.New()

// parseBody unmarshals and validates a JSON request body.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
	}
	if err := validate.Struct(out); err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, "VALIDATION_FAILED", err.Error())
	}
	return nil
}

// serviceError maps service sentinel errors onto HTTP responses. Unknown
// errors become an opaque 500.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "ID_REQUIRED", "id is required")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, service.ErrAccountExists):
		return writeError(c, fiber.StatusConflict, "ACCOUNT_EXISTS", "email or phone already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		return writeError(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
	case errors.Is(err, service.ErrAlreadyApplied):
		return writeError(c, fiber.StatusConflict, "ALREADY_APPLIED", "already applied to this job")
	case errors.Is(err, service.ErrJobClosed):
		return writeError(c, fiber.StatusConflict, "JOB_CLOSED", "job is not open for applications")
	case errors.Is(err, service.ErrQuotaExhausted):
		return writeError(c, fiber.StatusPaymentRequired, "QUOTA_EXHAUSTED", "resume view quota exhausted")
	case errors.Is(err, service.ErrInvalidStatus):
		return writeError(c, fiber.StatusBadRequest, "INVALID_STATUS", "invalid status value")
	case errors.Is(err, service.ErrInvalidKind):
		return writeError(c, fiber.StatusBadRequest, "INVALID_KIND", "invalid lookup kind")
	case errors.Is(err, service.ErrUnknownPlan):
		return writeError(c, fiber.StatusBadRequest, "UNKNOWN_PLAN", "unknown subscription plan")
	case errors.Is(err, service.ErrPaymentFailed):
		return writeError(c, fiber.StatusBadRequest, "PAYMENT_FAILED", "payment verification failed")
	case errors.Is(err, importer.ErrUnsupportedFormat):
		return writeError(c, fiber.StatusBadRequest, "UNSUPPORTED_FORMAT", "unsupported file format")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
