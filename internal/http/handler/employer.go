package handler

import (
	"github.com/gofiber/fiber/v2"

	"jobboard/internal/http/middleware"
	"jobboard/internal/service"
)

type employerUpdateRequest struct {
	CompanyName *string `json:"company_name"`
	ContactName *string `json:"contact_name"`
	Industry    *string `json:"industry"`
	Location    *string `json:"location"`
}

type orderRequest struct {
	Plan string `json:"plan" validate:"required"`
}

type confirmRequest struct {
	OrderID   string `json:"order_id" validate:"required"`
	PaymentID string `json:"payment_id" validate:"required"`
	Signature string `json:"signature" validate:"required"`
	Plan      string `json:"plan" validate:"required"`
}

// EmployerHandler serves the employer's own account and subscription
// purchase flow.
type EmployerHandler struct {
	svc      service.EmployerService
	payments service.PaymentService
}

func NewEmployerHandler(svc service.EmployerService, payments service.PaymentService) *EmployerHandler {
	return &EmployerHandler{svc: svc, payments: payments}
}

func (h *EmployerHandler) Me(c *fiber.Ctx) error {
	e, err := h.svc.Get(c.UserContext(), middleware.AccountID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(e)
}

func (h *EmployerHandler) UpdateProfile(c *fiber.Ctx) error {
	var req employerUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	e, err := h.svc.UpdateProfile(c.UserContext(), middleware.AccountID(c), service.EmployerUpdate{
		CompanyName: req.CompanyName,
		ContactName: req.ContactName,
		Industry:    req.Industry,
		Location:    req.Location,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(e)
}

func (h *EmployerHandler) Plans(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.payments.ListPlans()})
}

func (h *EmployerHandler) CreateOrder(c *fiber.Ctx) error {
	var req orderRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	order, err := h.payments.CreateOrder(c.UserContext(), middleware.AccountID(c), req.Plan)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

func (h *EmployerHandler) ConfirmPayment(c *fiber.Ctx) error {
	var req confirmRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	e, err := h.payments.Confirm(c.UserContext(), middleware.AccountID(c), service.PaymentConfirmation{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
		Plan:      req.Plan,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(e)
}
