package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"jobboard/internal/importer"
	"jobboard/internal/model"
	"jobboard/internal/repository"
	"jobboard/internal/service"
)

type lookupRequest struct {
	Kind  string `json:"kind" validate:"required"`
	Value string `json:"value" validate:"required"`
	Label string `json:"label"`
}

type lookupUpdateRequest struct {
	Value string `json:"value" validate:"required"`
	Label string `json:"label"`
}

// AdminHandler serves reference-data management and the manual triggers for
// the maintenance jobs.
type AdminHandler struct {
	lookups     service.LookupService
	maintenance service.MaintenanceService
}

func NewAdminHandler(lookups service.LookupService, maintenance service.MaintenanceService) *AdminHandler {
	return &AdminHandler{lookups: lookups, maintenance: maintenance}
}

func (h *AdminHandler) ListLookups(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	res, err := h.lookups.List(c.UserContext(), repository.LookupQuery{
		Kind:   c.Params("kind"),
		Search: c.Query("q"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"data": res.Items, "total": res.Total})
}

func (h *AdminHandler) CreateLookup(c *fiber.Ctx) error {
	var req lookupRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	created, err := h.lookups.Create(c.UserContext(), req.Kind, req.Value, req.Label)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *AdminHandler) UpdateLookup(c *fiber.Ctx) error {
	var req lookupUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	l := &model.Lookup{ID: c.Params("id"), Value: req.Value, Label: req.Label}
	if err := h.lookups.Update(c.UserContext(), l); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(l)
}

func (h *AdminHandler) DeleteLookup(c *fiber.Ctx) error {
	if err := h.lookups.Delete(c.UserContext(), c.Params("id")); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ImportLookups handles POST /admin/lookups/:kind/import with a multipart
// xlsx or csv upload of (value, label) rows.
func (h *AdminHandler) ImportLookups(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
	}
	defer f.Close()

	rows, err := importer.Rows(f, fh.Filename)
	if err != nil {
		return serviceError(c, err)
	}
	sum, err := h.lookups.Import(c.UserContext(), c.Params("kind"), rows)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(sum)
}

// RunJob handles POST /admin/jobs/run/:name, the manual escape hatch for
// the scheduled maintenance jobs.
func (h *AdminHandler) RunJob(c *fiber.Ctx) error {
	var (
		affected int64
		err      error
	)
	name := c.Params("name")
	switch name {
	case "plan-expiry":
		affected, err = h.maintenance.ExpirePlans(c.UserContext())
	case "job-expiry":
		affected, err = h.maintenance.ExpireJobs(c.UserContext())
	case "auto-apply":
		affected, err = h.maintenance.AutoApply(c.UserContext())
	default:
		return writeError(c, fiber.StatusNotFound, "UNKNOWN_JOB", "unknown maintenance job")
	}
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"job": name, "affected": affected})
}
