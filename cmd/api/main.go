package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"exportdocs/docs"
	"exportdocs/internal/config"
	"exportdocs/internal/database"
	"exportdocs/internal/database/migration"
	handlers "exportdocs/internal/http/handler"
	"exportdocs/internal/http/middleware"
	"exportdocs/internal/logging"
	"exportdocs/internal/otel"
	"exportdocs/internal/repository/postgres"
	"exportdocs/internal/service"
	"exportdocs/internal/storage"
)

// @title Export Documents API
// @version 1.0
// @description Extracts shipping fields from packing list and booking PDFs and fills Excel export forms.
// @BasePath /
func main() {
	loc := time.Local
	logger := logging.FromEnv(loc)
	slog.SetDefault(logger)

	if err := run(logger, loc); err != nil {
		logger.Error("server_exit", "error", err.Error())
		os.Exit(1)
	}
}

func run(logger *slog.Logger, loc *time.Location) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
		return err
	}

	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		return err
	}

	metrics, err := service.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	httpMetrics, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}

	invoiceRepo := postgres.NewInvoicePostgres(db)
	templateRepo := postgres.NewTemplatePostgres(db)
	jobRepo := postgres.NewJobPostgres(db)

	opts := []service.Option{service.WithLogger(logger), service.WithMetrics(metrics)}
	svcs := handlers.Services{
		Processing: service.NewProcessingService(objStore, invoiceRepo, jobRepo, cfg.Extract.RequiredFields, opts...),
		Invoices:   service.NewInvoiceService(invoiceRepo, cfg.Extract.RequiredFields),
		Templates: service.NewTemplateService(objStore, templateRepo, invoiceRepo, service.TemplateConfig{
			SkipSheets:   cfg.Template.SkipSheets,
			OutputPrefix: cfg.Template.OutputPrefix,
			URLExpiry:    time.Duration(cfg.Template.DownloadURLExpirySec) * time.Second,
		}, opts...),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// multipart overhead on top of the largest accepted file
		BodyLimit: int(cfg.Upload.MaxBytes) + 1<<20,
	})

	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/metrics" || c.Path() == "/healthz"
	})))
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.LoggerWithWriter(os.Stdout, loc))
	app.Use(httpMetrics.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, db, svcs, handlers.Options{
		MaxUploadBytes: cfg.Upload.MaxBytes,
		OutputPrefix:   cfg.Template.OutputPrefix,
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server_start", "addr", ":"+cfg.Port, "app_host", cfg.AppHost)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("server_shutdown")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(sctx)
}
