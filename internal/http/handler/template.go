package handler

import (
	"path"
	"strings"

	"github.com/gofiber/fiber/v2"

	"exportdocs/internal/service"
	"exportdocs/internal/storage"
)

// ListTemplates godoc
// @Summary List templates
// @Tags templates
// @Produce json
// @Success 200 {array} model.Template
// @Router /api/templates [get]
func ListTemplates(svc service.TemplateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": items, "total": len(items)})
	}
}

// UploadTemplate godoc
// @Summary Upload a template workbook
// @Tags templates
// @Accept mpfd
// @Produce json
// @Param template_file formData file true "Workbook (.xlsx, .xlsm)"
// @Param description formData string false "Description"
// @Success 201 {object} service.TemplateUploadResult
// @Failure 400 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Router /api/templates [post]
func UploadTemplate(svc service.TemplateService, maxBytes int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := formFile(c, "template_file", maxBytes)
		if err != nil {
			return writeFormFileError(c, "template_file", err)
		}

		res, err := svc.Upload(c.UserContext(), service.TemplateUpload{
			Filename:    f.Name,
			Description: strings.TrimSpace(c.FormValue("description")),
			Data:        f.Data,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// GetTemplate godoc
// @Summary Template metadata
// @Tags templates
// @Produce json
// @Param name path string true "Template name"
// @Success 200 {object} model.Template
// @Failure 404 {object} errorPayload
// @Router /api/templates/{name} [get]
func GetTemplate(svc service.TemplateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tpl, err := svc.Get(c.UserContext(), param(c, "name"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(tpl)
	}
}

// DeleteTemplate godoc
// @Summary Delete a template
// @Tags templates
// @Param name path string true "Template name"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /api/templates/{name} [delete]
func DeleteTemplate(svc service.TemplateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), param(c, "name")); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// TemplatePlaceholders godoc
// @Summary Placeholders of a template and where they sit
// @Tags templates
// @Produce json
// @Param name path string true "Template name"
// @Success 200 {object} xlsxfill.Info
// @Router /api/templates/{name}/placeholders [get]
func TemplatePlaceholders(svc service.TemplateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		info, err := svc.Placeholders(c.UserContext(), param(c, "name"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(info)
	}
}

// PreviewFill godoc
// @Summary Preview a fill without storing it
// @Tags templates
// @Accept json
// @Produce json
// @Param name path string true "Template name"
// @Param body body service.PreviewInput true "Values"
// @Success 200 {object} xlsxfill.PreviewResult
// @Router /api/templates/{name}/preview-fill [post]
func PreviewFill(svc service.TemplateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.PreviewInput
		if err := decodeJSON(c, &in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "malformed JSON body")
		}
		in.TemplateName = param(c, "name")

		res, err := svc.PreviewFill(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// AppendDataRow godoc
// @Summary Write an invoice into the data sheet of a template
// @Tags templates
// @Accept json
// @Produce json
// @Param name path string true "Template name"
// @Param body body service.DataRowInput true "Invoice and values"
// @Success 201 {object} service.DataRowResult
// @Router /api/templates/{name}/data-row [post]
func AppendDataRow(svc service.TemplateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.DataRowInput
		if err := decodeJSON(c, &in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "malformed JSON body")
		}
		in.TemplateName = param(c, "name")

		res, err := svc.AppendDataRow(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// SampleTemplate godoc
// @Summary Download the sample CO form template
// @Tags templates
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /api/templates/sample [get]
func SampleTemplate(svc service.TemplateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, err := svc.Sample(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		c.Set(fiber.HeaderContentType, storage.ContentTypeXLSX)
		c.Attachment("sample_co_form.xlsx")
		return c.Send(data)
	}
}

// Generate godoc
// @Summary Fill a template for one invoice
// @Tags generate
// @Accept json
// @Produce json
// @Param body body service.GenerateInput true "Template, invoice and values"
// @Success 201 {object} service.GenerateResult
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/generate [post]
func Generate(svc service.TemplateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.GenerateInput
		if err := decodeJSON(c, &in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "malformed JSON body")
		}

		res, err := svc.Generate(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// BatchGenerate godoc
// @Summary Fill every template for every invoice
// @Description Failures are reported per item; the request itself succeeds.
// @Tags generate
// @Accept json
// @Produce json
// @Param body body service.BatchInput true "Templates and invoices"
// @Success 200 {object} service.BatchGenerateResult
// @Router /api/batch-generate [post]
func BatchGenerate(svc service.TemplateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.BatchInput
		if err := decodeJSON(c, &in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "malformed JSON body")
		}

		res, err := svc.BatchGenerate(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// DownloadOutput streams a generated workbook.
func DownloadOutput(svc service.TemplateService, prefix string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := prefix + "/" + c.Params("*")
		rc, info, err := svc.Output(c.UserContext(), key)
		if err != nil {
			return writeServiceError(c, err)
		}

		ct := info.ContentType
		if ct == "" {
			ct = storage.ContentTypeXLSX
		}
		c.Set(fiber.HeaderContentType, ct)
		c.Attachment(path.Base(key))

		size := -1
		if info.Size > 0 {
			size = int(info.Size)
		}
		// fasthttp closes rc once the body is written.
		return c.SendStream(rc, size)
	}
}

// decodeJSON decodes the request body into out. An empty body leaves out
// untouched so the service reports what is missing.
func decodeJSON(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return c.BodyParser(out)
}
