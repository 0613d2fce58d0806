package handler

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"jobboard/internal/http/middleware"
	"jobboard/internal/model"
	"jobboard/internal/service"
)

type profileUpdateRequest struct {
	Name               *string            `json:"name"`
	Title              *string            `json:"title"`
	Gender             *string            `json:"gender"`
	DateOfBirth        *string            `json:"date_of_birth"`
	Industry           *string            `json:"industry"`
	Skills             []string           `json:"skills"`
	PreferredLocations []string           `json:"preferred_locations"`
	Education          []model.Education  `json:"education"`
	Experience         []model.Experience `json:"experience"`
	JobType            *string            `json:"job_type"`
	ExpectedSalary     *int64             `json:"expected_salary"`
	ExperienceYears    *float64           `json:"experience_years"`
	Degree             *string            `json:"degree"`
	AutoApply          *bool              `json:"auto_apply"`
}

type applyRequest struct {
	Answers []model.Answer `json:"answers"`
}

// CandidateHandler serves the candidate's own account surface.
type CandidateHandler struct {
	svc  service.CandidateService
	apps service.ApplicationService
}

func NewCandidateHandler(svc service.CandidateService, apps service.ApplicationService) *CandidateHandler {
	return &CandidateHandler{svc: svc, apps: apps}
}

func (h *CandidateHandler) Me(c *fiber.Ctx) error {
	profile, err := h.svc.Get(c.UserContext(), middleware.AccountID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(profile)
}

func (h *CandidateHandler) UpdateProfile(c *fiber.Ctx) error {
	var req profileUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	upd := service.ProfileUpdate{
		Name:               req.Name,
		Title:              req.Title,
		Gender:             req.Gender,
		Industry:           req.Industry,
		Skills:             req.Skills,
		PreferredLocations: req.PreferredLocations,
		Education:          req.Education,
		Experience:         req.Experience,
		JobType:            req.JobType,
		ExpectedSalary:     req.ExpectedSalary,
		ExperienceYears:    req.ExperienceYears,
		Degree:             req.Degree,
		AutoApply:          req.AutoApply,
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_DATE", "date_of_birth must be YYYY-MM-DD")
		}
		upd.DateOfBirth = &dob
	}

	profile, err := h.svc.UpdateProfile(c.UserContext(), middleware.AccountID(c), upd)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(profile)
}

type uploadFunc func(ctx context.Context, id string, r io.Reader, filename, contentType string, size int64) (string, error)

func (h *CandidateHandler) UploadResume(c *fiber.Ctx) error {
	return h.upload(c, h.svc.UploadResume)
}

func (h *CandidateHandler) UploadPhoto(c *fiber.Ctx) error {
	return h.upload(c, h.svc.UploadPhoto)
}

func (h *CandidateHandler) upload(c *fiber.Ctx, put uploadFunc) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
	}
	defer f.Close()

	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}

	url, err := put(c.UserContext(), middleware.AccountID(c), f, fh.Filename, ct, fh.Size)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}

func (h *CandidateHandler) SaveJob(c *fiber.Ctx) error {
	if err := h.svc.SaveJob(c.UserContext(), middleware.AccountID(c), c.Params("id")); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CandidateHandler) SavedJobs(c *fiber.Ctx) error {
	jobs, err := h.svc.ListSavedJobs(c.UserContext(), middleware.AccountID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"data": jobs})
}

func (h *CandidateHandler) Applications(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	res, err := h.svc.ListApplications(c.UserContext(), middleware.AccountID(c), limit, offset)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"data": res.Items, "total": res.Total})
}

func (h *CandidateHandler) Apply(c *fiber.Ctx) error {
	var req applyRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}
	}
	app, err := h.apps.Apply(c.UserContext(), middleware.AccountID(c), c.Params("id"), req.Answers)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(app)
}
