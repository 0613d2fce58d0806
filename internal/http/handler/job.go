package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"jobboard/internal/http/middleware"
	"jobboard/internal/repository"
	"jobboard/internal/service"
)

type jobRequest struct {
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description"`
	Skills        []string `json:"skills"`
	Degree        string   `json:"degree"`
	JobType       string   `json:"job_type"`
	Location      string   `json:"location"`
	SalaryMin     int64    `json:"salary_min"`
	SalaryMax     int64    `json:"salary_max"`
	ExperienceMin float64  `json:"experience_min"`
	ExperienceMax float64  `json:"experience_max"`
	Questions     []string `json:"questions"`
	Deadline      *string  `json:"deadline"`
}

// JobHandler serves public listing reads and the employer's listing
// lifecycle.
type JobHandler struct {
	svc service.JobService
}

func NewJobHandler(svc service.JobService) *JobHandler {
	return &JobHandler{svc: svc}
}

func (h *JobHandler) Create(c *fiber.Ctx) error {
	in, err := h.input(c)
	if err != nil {
		return err
	}
	job, err := h.svc.Create(c.UserContext(), middleware.AccountID(c), *in)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(job)
}

func (h *JobHandler) Update(c *fiber.Ctx) error {
	in, err := h.input(c)
	if err != nil {
		return err
	}
	job, err := h.svc.Update(c.UserContext(), middleware.AccountID(c), c.Params("id"), *in)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(job)
}

func (h *JobHandler) Close(c *fiber.Ctx) error {
	if err := h.svc.Close(c.UserContext(), middleware.AccountID(c), c.Params("id")); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *JobHandler) input(c *fiber.Ctx) (*service.JobInput, error) {
	var req jobRequest
	if err := parseBody(c, &req); err != nil {
		return nil, err
	}
	in := service.JobInput{
		Title:         req.Title,
		Description:   req.Description,
		Skills:        req.Skills,
		Degree:        req.Degree,
		JobType:       req.JobType,
		Location:      req.Location,
		SalaryMin:     req.SalaryMin,
		SalaryMax:     req.SalaryMax,
		ExperienceMin: req.ExperienceMin,
		ExperienceMax: req.ExperienceMax,
		Questions:     req.Questions,
	}
	if req.Deadline != nil {
		d, err := time.Parse("2006-01-02", *req.Deadline)
		if err != nil {
			return nil, writeError(c, fiber.StatusBadRequest, "INVALID_DATE", "deadline must be YYYY-MM-DD")
		}
		in.Deadline = &d
	}
	return &in, nil
}

func (h *JobHandler) GetBySlug(c *fiber.Ctx) error {
	job, err := h.svc.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(job)
}

func (h *JobHandler) Search(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	q := repository.JobQuery{
		Keyword:  c.Query("q"),
		Location: c.Query("location"),
		JobType:  c.Query("job_type"),
		Degree:   c.Query("degree"),
		Limit:    limit,
		Offset:   offset,
	}
	if skills := c.Query("skills"); skills != "" {
		q.Skills = splitCSV(skills)
	}
	if v := c.Query("salary_min"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			q.SalaryMin = &n
		}
	}
	if v := c.Query("salary_max"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			q.SalaryMax = &n
		}
	}
	if v := c.Query("experience_max"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q.ExperienceMax = &f
		}
	}

	res, err := h.svc.Search(c.UserContext(), q)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"data": res.Items, "total": res.Total})
}
