package handler

import (
	"github.com/gofiber/fiber/v2"

	"jobboard/internal/service"
)

type candidateSignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type employerSignupRequest struct {
	CompanyName string `json:"company_name" validate:"required"`
	ContactName string `json:"contact_name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required"`
	Industry    string `json:"industry"`
	Location    string `json:"location"`
	Password    string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthHandler serves signup and login for both account types.
type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) CandidateSignup(c *fiber.Ctx) error {
	var req candidateSignupRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	res, err := h.svc.RegisterCandidate(c.UserContext(), service.CandidateSignup{
		Name: req.Name, Email: req.Email, Phone: req.Phone, Password: req.Password,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

func (h *AuthHandler) EmployerSignup(c *fiber.Ctx) error {
	var req employerSignupRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	res, err := h.svc.RegisterEmployer(c.UserContext(), service.EmployerSignup{
		CompanyName: req.CompanyName,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		Industry:    req.Industry,
		Location:    req.Location,
		Password:    req.Password,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

func (h *AuthHandler) CandidateLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	res, err := h.svc.LoginCandidate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(res)
}

func (h *AuthHandler) EmployerLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	res, err := h.svc.LoginEmployer(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(res)
}
