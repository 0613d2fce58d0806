package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"jobboard/internal/http/middleware"
	"jobboard/internal/repository"
	"jobboard/internal/search"
	"jobboard/internal/service"
)

type statusUpdateRequest struct {
	Status  string `json:"status"`
	Action  string `json:"action"`
	Message string `json:"message"`
}

type applicationStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// SearchHandler serves the employer-side candidate discovery and
// application-pipeline endpoints.
type SearchHandler struct {
	svc  service.SearchService
	apps service.ApplicationService
}

func NewSearchHandler(svc service.SearchService, apps service.ApplicationService) *SearchHandler {
	return &SearchHandler{svc: svc, apps: apps}
}

// Candidates handles GET /employers/candidates: the filtered, ranked,
// quota-free search listing.
func (h *SearchHandler) Candidates(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	q := repository.CandidateQuery{
		Location:    c.Query("location"),
		JobTitle:    c.Query("job_title"),
		JobType:     c.Query("job_type"),
		Degree:      c.Query("degree"),
		Gender:      c.Query("gender"),
		Status:      c.Query("status"),
		RecruiterID: middleware.AccountID(c),
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
	if v := c.Query("experience_min"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q.ExperienceMin = &f
		}
	}
	if v := c.Query("experience_max"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q.ExperienceMax = &f
		}
	}
	if v := c.Query("age_min"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.AgeMin = &n
		}
	}
	if v := c.Query("age_max"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.AgeMax = &n
		}
	}
	if tok := c.Query("freshness"); tok != "" {
		q.UpdatedSince = search.ParseFreshness(tok, time.Now().UTC())
	}

	res, err := h.svc.Candidates(c.UserContext(), q, page, limit)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(res)
}

// ViewCandidate handles GET /employers/candidates/:id: the quota-gated full
// profile view.
func (h *SearchHandler) ViewCandidate(c *fiber.Ctx) error {
	profile, err := h.svc.ViewCandidate(c.UserContext(), middleware.AccountID(c), c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(profile)
}

// UpdateStatus handles POST /employers/candidates/:id/status.
func (h *SearchHandler) UpdateStatus(c *fiber.Ctx) error {
	var req statusUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	err := h.svc.UpdateCandidateStatus(c.UserContext(), service.StatusUpdate{
		CandidateID: c.Params("id"),
		RecruiterID: middleware.AccountID(c),
		Status:      req.Status,
		Action:      req.Action,
		Message:     req.Message,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// UpdateApplicationStatus handles POST /employers/applications/:id/status:
// moving an application through pending/shortlisted/rejected/hired.
func (h *SearchHandler) UpdateApplicationStatus(c *fiber.Ctx) error {
	var req applicationStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.apps.UpdateStatus(c.UserContext(), middleware.AccountID(c), c.Params("id"), req.Status); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// Applications handles GET /employers/applications.
func (h *SearchHandler) Applications(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	q := repository.ApplicationQuery{
		EmployerID: middleware.AccountID(c),
		JobID:      c.Query("job_id"),
		Status:     c.Query("status"),
		Location:   c.Query("location"),
		Gender:     c.Query("gender"),
		Degree:     c.Query("degree"),
	}
	if skills := c.Query("skills"); skills != "" {
		q.Skills = splitCSV(skills)
	}
	if tok := c.Query("freshness"); tok != "" {
		q.UpdatedSince = search.ParseFreshness(tok, time.Now().UTC())
	}

	res, err := h.svc.Applications(c.UserContext(), q, page, limit)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(res)
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
