package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"exportdocs/internal/service"
)

// JobIDHeader carries the job of a failed upload so clients can still poll it.
const JobIDHeader = "X-Job-ID"

// UploadDocuments godoc
// @Summary Upload and extract shipping documents
// @Description Accepts a packing list and/or booking confirmation PDF, extracts their fields and stores the invoice.
// @Tags invoices
// @Accept mpfd
// @Produce json
// @Param pl_file formData file false "Packing list PDF"
// @Param booking_file formData file false "Booking confirmation PDF"
// @Param invoice_number formData string false "Invoice number overriding the one found in the documents"
// @Success 201 {object} service.ProcessResult
// @Failure 400 {object} errorPayload
// @Failure 413 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Router /api/upload [post]
func UploadDocuments(svc service.ProcessingService, maxBytes int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in := service.UploadInput{InvoiceNumber: strings.TrimSpace(c.FormValue("invoice_number"))}

		for field, dst := range map[string]**service.FileInput{"pl_file": &in.PL, "booking_file": &in.Booking} {
			f, err := formFile(c, field, maxBytes)
			if errors.Is(err, errFileMissing) {
				continue
			}
			if err != nil {
				return writeFormFileError(c, field, err)
			}
			*dst = f
		}
		if in.PL == nil && in.Booking == nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "pl_file or booking_file is required")
		}

		res, err := svc.Upload(c.UserContext(), in)
		if err != nil {
			if res != nil && res.Job != nil {
				c.Set(JobIDHeader, res.Job.ID)
			}
			return writeServiceError(c, err)
		}
		c.Set(JobIDHeader, res.Job.ID)
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// GetJob godoc
// @Summary Job status
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} model.Job
// @Failure 404 {object} errorPayload
// @Router /api/jobs/{id} [get]
func GetJob(svc service.ProcessingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		job, err := svc.Job(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(job)
	}
}

// ListInvoices godoc
// @Summary List invoices
// @Tags invoices
// @Produce json
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} service.InvoiceListResult
// @Router /api/invoices [get]
func ListInvoices(svc service.InvoiceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetInvoice godoc
// @Summary Invoice detail with missing required fields
// @Tags invoices
// @Produce json
// @Param number path string true "Invoice number"
// @Success 200 {object} service.InvoiceDetail
// @Failure 404 {object} errorPayload
// @Router /api/invoices/{number} [get]
func GetInvoice(svc service.InvoiceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		inv, err := svc.Get(c.UserContext(), param(c, "number"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(inv)
	}
}

// ReprocessInvoice godoc
// @Summary Re-extract an invoice from its stored PDFs
// @Tags invoices
// @Produce json
// @Param number path string true "Invoice number"
// @Success 200 {object} service.ProcessResult
// @Failure 404 {object} errorPayload
// @Router /api/invoices/{number}/process [post]
func ReprocessInvoice(svc service.ProcessingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Reprocess(c.UserContext(), param(c, "number"))
		if err != nil {
			if res != nil && res.Job != nil {
				c.Set(JobIDHeader, res.Job.ID)
			}
			return writeServiceError(c, err)
		}
		c.Set(JobIDHeader, res.Job.ID)
		return c.JSON(res)
	}
}

// DashboardStats godoc
// @Summary Invoice counts by status
// @Tags dashboard
// @Produce json
// @Success 200 {object} model.InvoiceStats
// @Router /api/dashboard/stats [get]
func DashboardStats(svc service.InvoiceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := svc.Stats(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(stats)
	}
}

// RecentActivity lists the most recently updated invoices.
func RecentActivity(svc service.InvoiceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.Recent(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": items})
	}
}
