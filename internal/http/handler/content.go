package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"jobboard/internal/model"
	"jobboard/internal/service"
)

type seoRequest struct {
	Page        string `json:"page" validate:"required"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Keywords    string `json:"keywords"`
}

type pageRequest struct {
	Slug  string `json:"slug" validate:"required"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

type blogRequest struct {
	Title    string `json:"title" validate:"required"`
	Body     string `json:"body"`
	Author   string `json:"author"`
	ImageURL string `json:"image_url"`
}

type contactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required"`
}

// ContentHandler serves site content: SEO, static pages, blogs, and the
// contact form.
type ContentHandler struct {
	svc service.ContentService
}

func NewContentHandler(svc service.ContentService) *ContentHandler {
	return &ContentHandler{svc: svc}
}

func (h *ContentHandler) UpsertSeo(c *fiber.Ctx) error {
	var req seoRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	out, err := h.svc.UpsertSeo(c.UserContext(), &model.Seo{
		Page: req.Page, Title: req.Title, Description: req.Description, Keywords: req.Keywords,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(out)
}

func (h *ContentHandler) GetSeo(c *fiber.Ctx) error {
	out, err := h.svc.GetSeo(c.UserContext(), c.Params("page"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(out)
}

func (h *ContentHandler) UpsertPage(c *fiber.Ctx) error {
	var req pageRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	out, err := h.svc.UpsertPage(c.UserContext(), &model.Page{
		Slug: req.Slug, Title: req.Title, Body: req.Body,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(out)
}

func (h *ContentHandler) GetPage(c *fiber.Ctx) error {
	out, err := h.svc.GetPage(c.UserContext(), c.Params("slug"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(out)
}

func (h *ContentHandler) ListPages(c *fiber.Ctx) error {
	out, err := h.svc.ListPages(c.UserContext())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"data": out})
}

func (h *ContentHandler) CreateBlog(c *fiber.Ctx) error {
	var req blogRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	out, err := h.svc.CreateBlog(c.UserContext(), req.Title, req.Body, req.Author, req.ImageURL)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *ContentHandler) UpdateBlog(c *fiber.Ctx) error {
	var req blogRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	b := &model.Blog{ID: c.Params("id"), Title: req.Title, Body: req.Body, Author: req.Author, ImageURL: req.ImageURL}
	if err := h.svc.UpdateBlog(c.UserContext(), b); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(b)
}

func (h *ContentHandler) DeleteBlog(c *fiber.Ctx) error {
	if err := h.svc.DeleteBlog(c.UserContext(), c.Params("id")); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ContentHandler) GetBlog(c *fiber.Ctx) error {
	out, err := h.svc.GetBlog(c.UserContext(), c.Params("slug"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(out)
}

func (h *ContentHandler) ListBlogs(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	res, err := h.svc.ListBlogs(c.UserContext(), limit, offset)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"data": res.Items, "total": res.Total})
}

func (h *ContentHandler) SubmitContact(c *fiber.Ctx) error {
	var req contactRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	out, err := h.svc.SubmitContact(c.UserContext(), req.Name, req.Email, req.Subject, req.Message)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *ContentHandler) ListContacts(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	res, err := h.svc.ListContacts(c.UserContext(), limit, offset)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"data": res.Items, "total": res.Total})
}
