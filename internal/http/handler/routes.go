package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"

	"jobboard/internal/auth"
	"jobboard/internal/http/middleware"
	"jobboard/internal/service"
)

// Deps bundles everything the route table needs.
type Deps struct {
	DB      *sql.DB
	Tokens  *auth.TokenIssuer
	Google  *auth.GoogleAuth
	Metrics http.Handler
	GraphQL fiber.Handler

	Auth        service.AuthService
	Candidates  service.CandidateService
	Employers   service.EmployerService
	Jobs        service.JobService
	Apps        service.ApplicationService
	Search      service.SearchService
	Lookups     service.LookupService
	Content     service.ContentService
	Payments    service.PaymentService
	Maintenance service.MaintenanceService
}

// RegisterRoutes attaches all HTTP routes to the provided Fiber app.
// Handlers stay free of business logic; everything flows through services.
func RegisterRoutes(app *fiber.App, d Deps) {
	authH := NewAuthHandler(d.Auth)
	candH := NewCandidateHandler(d.Candidates, d.Apps)
	empH := NewEmployerHandler(d.Employers, d.Payments)
	jobH := NewJobHandler(d.Jobs)
	searchH := NewSearchHandler(d.Search, d.Apps)
	adminH := NewAdminHandler(d.Lookups, d.Maintenance)
	contentH := NewContentHandler(d.Content)

	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	// Health: checks DB connectivity only
	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := d.DB.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	})
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	if d.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(d.Metrics))
	}
	if d.GraphQL != nil {
		app.All("/graphql", middleware.Auth(d.Tokens, auth.RoleEmployer, auth.RoleAdmin), d.GraphQL)
	}

	// Auth
	app.Post("/auth/candidates/signup", authH.CandidateSignup)
	app.Post("/auth/candidates/login", authH.CandidateLogin)
	app.Post("/auth/employers/signup", authH.EmployerSignup)
	app.Post("/auth/employers/login", authH.EmployerLogin)

	// Gmail sender consent flow (operator only)
	if d.Google != nil {
		googleH := NewGoogleHandler(d.Google)
		app.Get("/auth/google/url", middleware.Auth(d.Tokens, auth.RoleAdmin), googleH.AuthURL)
		app.Get("/auth/google/callback", googleH.Callback)
	}

	// Public listings and site content
	app.Get("/jobs", jobH.Search)
	app.Get("/jobs/:slug", jobH.GetBySlug)
	app.Get("/seo/:page", contentH.GetSeo)
	app.Get("/pages", contentH.ListPages)
	app.Get("/pages/:slug", contentH.GetPage)
	app.Get("/blogs", contentH.ListBlogs)
	app.Get("/blogs/:slug", contentH.GetBlog)
	app.Post("/contacts", contentH.SubmitContact)
	app.Get("/plans", empH.Plans)

	// Candidate account
	cand := app.Group("/candidates", middleware.Auth(d.Tokens, auth.RoleCandidate))
	cand.Get("/me", candH.Me)
	cand.Patch("/me", candH.UpdateProfile)
	cand.Post("/me/resume", candH.UploadResume)
	cand.Post("/me/photo", candH.UploadPhoto)
	cand.Get("/me/applications", candH.Applications)
	cand.Get("/me/saved-jobs", candH.SavedJobs)
	cand.Post("/jobs/:id/save", candH.SaveJob)
	cand.Post("/jobs/:id/apply", candH.Apply)

	// Employer account
	emp := app.Group("/employers", middleware.Auth(d.Tokens, auth.RoleEmployer))
	emp.Get("/me", empH.Me)
	emp.Patch("/me", empH.UpdateProfile)
	emp.Post("/orders", empH.CreateOrder)
	emp.Post("/orders/confirm", empH.ConfirmPayment)
	emp.Post("/jobs", jobH.Create)
	emp.Put("/jobs/:id", jobH.Update)
	emp.Post("/jobs/:id/close", jobH.Close)
	emp.Get("/candidates", searchH.Candidates)
	emp.Get("/candidates/:id", searchH.ViewCandidate)
	emp.Post("/candidates/:id/status", searchH.UpdateStatus)
	emp.Get("/applications", searchH.Applications)
	emp.Post("/applications/:id/status", searchH.UpdateApplicationStatus)

	// Admin surface
	admin := app.Group("/admin", middleware.Auth(d.Tokens, auth.RoleAdmin))
	admin.Get("/lookups/:kind", adminH.ListLookups)
	admin.Post("/lookups", adminH.CreateLookup)
	admin.Put("/lookups/:id", adminH.UpdateLookup)
	admin.Delete("/lookups/:id", adminH.DeleteLookup)
	admin.Post("/lookups/:kind/import", adminH.ImportLookups)
	admin.Post("/seo", contentH.UpsertSeo)
	admin.Post("/pages", contentH.UpsertPage)
	admin.Post("/blogs", contentH.CreateBlog)
	admin.Put("/blogs/:id", contentH.UpdateBlog)
	admin.Delete("/blogs/:id", contentH.DeleteBlog)
	admin.Get("/contacts", contentH.ListContacts)
	admin.Post("/jobs/run/:name", adminH.RunJob)
}
