package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"exportdocs/internal/config"
	"exportdocs/internal/service"
)

// Services bundles what the API routes call into.
type Services struct {
	Processing service.ProcessingService
	Invoices   service.InvoiceService
	Templates  service.TemplateService
}

// Options are the request limits and paths the handlers need from configuration.
type Options struct {
	MaxUploadBytes int64
	OutputPrefix   string
}

func (o Options) withDefaults() Options {
	if o.MaxUploadBytes <= 0 {
		o.MaxUploadBytes = config.DefaultMaxUploadBytes
	}
	if o.OutputPrefix == "" {
		o.OutputPrefix = "outputs"
	}
	return o
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers only translate between HTTP and the services.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc Services, opts Options) {
	opts = opts.withDefaults()

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")

	api.Post("/upload", UploadDocuments(svc.Processing, opts.MaxUploadBytes))
	api.Get("/jobs/:id", GetJob(svc.Processing))

	api.Get("/invoices", ListInvoices(svc.Invoices))
	api.Get("/invoices/:number", GetInvoice(svc.Invoices))
	api.Post("/invoices/:number/process", ReprocessInvoice(svc.Processing))
	api.Get("/dashboard/stats", DashboardStats(svc.Invoices))
	api.Get("/dashboard/recent-activity", RecentActivity(svc.Invoices))

	// sample is registered ahead of :name so it is not taken for a template name
	api.Get("/templates/sample", SampleTemplate(svc.Templates))
	api.Get("/templates", ListTemplates(svc.Templates))
	api.Post("/templates", UploadTemplate(svc.Templates, opts.MaxUploadBytes))
	api.Get("/templates/:name", GetTemplate(svc.Templates))
	api.Delete("/templates/:name", DeleteTemplate(svc.Templates))
	api.Get("/templates/:name/placeholders", TemplatePlaceholders(svc.Templates))
	api.Post("/templates/:name/preview-fill", PreviewFill(svc.Templates))
	api.Post("/templates/:name/data-row", AppendDataRow(svc.Templates))

	api.Post("/generate", Generate(svc.Templates))
	api.Post("/batch-generate", BatchGenerate(svc.Templates))
	api.Get("/outputs/*", DownloadOutput(svc.Templates, opts.OutputPrefix))
}

// HealthCheck godoc
// @Summary Readiness probe
// @Description Pings the database.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe answers 200 while the process is up.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
