package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

// Package storage holds the S3-compatible object store used for uploaded PDFs,
// stored templates and generated workbooks. Everything is streamed; nothing
// touches local disk.

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("object not found")

// Object key prefixes.
const (
	UploadsPrefix   = "uploads"
	TemplatesPrefix = "templates"
	OutputsPrefix   = "outputs"
)

// Content types used for stored objects.
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeXLSM = "application/vnd.ms-excel.sheet.macroEnabled.12"
	ContentTypeXLS  = "application/vnd.ms-excel"
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known, -1 otherwise.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is a reusable, S3-compatible object storage client interface.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL that can be used to download the object without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// UploadKey is where a source PDF of the given kind ("pl" or "booking") lives.
func UploadKey(invoiceNumber, kind, id string) string {
	return path.Join(UploadsPrefix, safeSegment(invoiceNumber, "unassigned"), fmt.Sprintf("%s-%s.pdf", strings.ToLower(kind), id))
}

// TemplateKey is the object key of a stored template.
func TemplateKey(name string) string {
	return path.Join(TemplatesPrefix, safeSegment(name, "template.xlsx"))
}

// OutputKey builds "<prefix>/<base>_<invoice|filled>_<yyyymmdd_hhmmss>.xlsx" for a generated workbook.
// The extension of templateName is kept when it is a workbook type.
func OutputKey(prefix, templateName, invoiceNumber string, at time.Time) string {
	if prefix == "" {
		prefix = OutputsPrefix
	}
	ext := strings.ToLower(path.Ext(templateName))
	if ext != ".xlsx" && ext != ".xlsm" {
		ext = ".xlsx"
	}
	base := safeSegment(strings.TrimSuffix(templateName, path.Ext(templateName)), "output")
	tag := safeSegment(invoiceNumber, "filled")
	return path.Join(prefix, fmt.Sprintf("%s_%s_%s%s", base, tag, at.UTC().Format("20060102_150405"), ext))
}

// ReadAll fetches an object fully into memory. Templates and PDFs are bounded
// by the upload limit, so buffering them is fine.
func ReadAll(ctx context.Context, s Storage, key string) ([]byte, ObjectInfo, error) {
	rc, info, err := s.Get(ctx, key)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, ObjectInfo{}, fmt.Errorf("read object %s: %w", key, err)
	}
	return b, info, nil
}

// safeSegment keeps a single path segment free of separators and traversal.
func safeSegment(s, def string) string {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(s)
	s = strings.Join(strings.Fields(s), "_")
	if s == "" || s == "." {
		return def
	}
	return s
}
