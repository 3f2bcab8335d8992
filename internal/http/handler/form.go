package handler

import (
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"exportdocs/internal/service"
)

var (
	errFileMissing  = errors.New("file missing")
	errFileTooLarge = errors.New("file too large")
)

// formFile reads one multipart file into memory. Files larger than maxBytes
// are refused before they are read.
func formFile(c *fiber.Ctx, field string, maxBytes int64) (*service.FileInput, error) {
	fh, err := c.FormFile(field)
	if err != nil || fh.Size == 0 {
		return nil, errFileMissing
	}
	if fh.Size > maxBytes {
		return nil, errFileTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", field, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	if int64(len(data)) > maxBytes {
		return nil, errFileTooLarge
	}
	return &service.FileInput{Name: fh.Filename, Data: data}, nil
}

// writeFormFileError reports a formFile failure.
func writeFormFileError(c *fiber.Ctx, field string, err error) error {
	switch {
	case errors.Is(err, errFileMissing):
		return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", field+" is required")
	case errors.Is(err, errFileTooLarge):
		return writeError(c, fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", field+" exceeds the upload limit")
	default:
		return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
	}
}

// param returns a path parameter with percent-encoding removed, so template
// names with spaces survive the round trip.
func param(c *fiber.Ctx, name string) string {
	raw := c.Params(name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
