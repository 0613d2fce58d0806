package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jobboard/internal/auth"
	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/database/migration"
	"jobboard/internal/graphql"
	handlers "jobboard/internal/http/handler"
	"jobboard/internal/http/middleware"
	"jobboard/internal/notify"
	"jobboard/internal/otel"
	"jobboard/internal/payment"
	"jobboard/internal/repository/postgres"
	"jobboard/internal/scheduler"
	"jobboard/internal/service"
	"jobboard/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := time.UTC

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Tracing is a no-op unless OTEL_* variables are set
	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	// PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	issuer, err := auth.NewTokenIssuer(cfg.JWT)
	if err != nil {
		log.Fatalf("failed to initialize token issuer: %v", err)
	}

	// Repositories
	candidateRepo := postgres.NewCandidatePostgres(db)
	employerRepo := postgres.NewEmployerPostgres(db)
	jobRepo := postgres.NewJobPostgres(db)
	appRepo := postgres.NewApplicationPostgres(db)
	lookupRepo := postgres.NewLookupPostgres(db)
	contentRepo := postgres.NewContentPostgres(db)
	tokenRepo := postgres.NewTokenPostgres(db)

	// Outbound messaging: Gmail for email, Twilio for SMS/WhatsApp, all off
	// the request path through the notify queue.
	googleAuth := auth.NewGoogleAuth(cfg.Google, tokenRepo)
	notifier := notify.New(map[string]notify.Sender{
		notify.KindEmail:    notify.NewGmailSender(googleAuth, cfg.Google.SenderEmail),
		notify.KindSMS:      notify.NewTwilioSender(cfg.Twilio),
		notify.KindWhatsApp: notify.NewTwilioSender(cfg.Twilio),
	}, 256, 3)
	notifier.Start()
	defer notifier.Stop()

	gateway := payment.NewRazorpay(cfg.Razorpay)

	// Services
	authSvc := service.NewAuthService(candidateRepo, employerRepo, issuer, notifier)
	candidateSvc := service.NewCandidateService(candidateRepo, jobRepo, appRepo, objStore)
	employerSvc := service.NewEmployerService(employerRepo)
	jobSvc := service.NewJobService(jobRepo, candidateRepo, notifier)
	appSvc := service.NewApplicationService(appRepo, jobRepo, candidateRepo, employerRepo, notifier)
	searchSvc := service.NewSearchService(candidateRepo, appRepo, employerRepo, notifier)
	lookupSvc := service.NewLookupService(lookupRepo)
	contentSvc := service.NewContentService(contentRepo)
	paymentSvc := service.NewPaymentService(gateway, employerRepo, notifier)
	maintenanceSvc := service.NewMaintenanceService(employerRepo, jobRepo, candidateRepo, appRepo)

	gqlHandler, err := graphql.Handler(graphql.Services{Search: searchSvc, Lookups: lookupSvc})
	if err != nil {
		log.Fatalf("failed to build graphql schema: %v", err)
	}

	// Prometheus registry with process/go collectors plus HTTP counters
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promMw, err := middleware.NewPrometheusMiddleware(registry)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(promMw.Handler())
	app.Use(otelfiber.Middleware())

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:      db,
		Tokens:  issuer,
		Google:  googleAuth,
		Metrics: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		GraphQL: gqlHandler,

		Auth:        authSvc,
		Candidates:  candidateSvc,
		Employers:   employerSvc,
		Jobs:        jobSvc,
		Apps:        appSvc,
		Search:      searchSvc,
		Lookups:     lookupSvc,
		Content:     contentSvc,
		Payments:    paymentSvc,
		Maintenance: maintenanceSvc,
	})

	// Periodic maintenance: plan expiry, job expiry, auto-apply
	if cfg.Scheduler.Enabled {
		sched, err := scheduler.New(cfg.Scheduler, maintenanceSvc)
		if err != nil {
			log.Fatalf("failed to initialize scheduler: %v", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	go func() {
		<-ctx.Done()
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	addr := ":" + cfg.Port
	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
