package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"exportdocs/internal/extract"
	"exportdocs/internal/model"
	"exportdocs/internal/repository"
	"exportdocs/internal/storage"
)

// FileInput is one uploaded document. Uploads are bounded by the body limit,
// so the content is held in memory.
type FileInput struct {
	Name string
	Data []byte
}

func (f *FileInput) empty() bool { return f == nil || len(f.Data) == 0 }

// UploadInput is one upload-and-extract request. InvoiceNumber is optional and
// wins over the number found in the documents.
type UploadInput struct {
	InvoiceNumber string
	PL            *FileInput
	Booking       *FileInput
}

// ProcessResult is what the caller sees after an extraction run. Job is
// always set once the job was created, also when an error is returned.
type ProcessResult struct {
	Job      *model.Job     `json:"job"`
	Invoice  *model.Invoice `json:"invoice,omitempty"`
	Missing  []string       `json:"missing_fields"`
	Warnings []string       `json:"warnings"`
}

// ProcessingService runs the upload -> extract -> save pipeline.
type ProcessingService interface {
	// Upload stores the PDFs, extracts and merges their fields and saves the
	// invoice, tracking the run as a job.
	Upload(ctx context.Context, in UploadInput) (*ProcessResult, error)

	// Reprocess re-extracts an invoice from its stored PDFs.
	Reprocess(ctx context.Context, invoiceNumber string) (*ProcessResult, error)

	// Job returns the status of a job.
	Job(ctx context.Context, id string) (*model.Job, error)
}

type processingService struct {
	store    storage.Storage
	invoices repository.InvoiceRepository
	jobs     repository.JobRepository
	required []string
	deps
}

// NewProcessingService wires the pipeline. required lists the fields reported
// back as missing.
func NewProcessingService(store storage.Storage, invoices repository.InvoiceRepository, jobs repository.JobRepository, required []string, opts ...Option) ProcessingService {
	return &processingService{
		store:    store,
		invoices: invoices,
		jobs:     jobs,
		required: required,
		deps:     newDeps(opts),
	}
}

// document is one side of the PL/BOOKING pair during a run.
type document struct {
	kind extract.Kind
	name string
	data []byte
	key  string // set once stored
	text string
}

func (s *processingService) Upload(ctx context.Context, in UploadInput) (res *ProcessResult, err error) {
	ctx, span := tracer.Start(ctx, "ProcessingService.Upload")
	defer func() { finishSpan(span, err) }()

	if in.PL.empty() && in.Booking.empty() {
		return nil, fmt.Errorf("%w: at least one of pl_file or booking_file is required", ErrInvalidInput)
	}

	job, err := s.startJob(ctx)
	if err != nil {
		return nil, err
	}
	res = &ProcessResult{Job: job, Missing: make([]string, 0), Warnings: make([]string, 0)}

	docs := make(map[extract.Kind]*document, 2)
	for _, d := range []*document{fileDoc(extract.KindPL, in.PL), fileDoc(extract.KindBooking, in.Booking)} {
		if d == nil {
			continue
		}
		if err := s.read(ctx, d, res); err != nil {
			return res, s.fail(ctx, job, "", err)
		}
		docs[d.kind] = d
	}

	rec := extractDocs(docs)
	number := strings.TrimSpace(in.InvoiceNumber)
	if number == "" {
		number, _ = rec.Get(model.FieldInvoiceNumber)
	}
	if number == "" {
		return res, s.fail(ctx, job, "", fmt.Errorf("%w: invoice number not found in the documents, provide invoice_number", ErrInvalidInput))
	}

	existing, err := s.invoices.FindByNumber(ctx, number)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return res, s.fail(ctx, job, "", fmt.Errorf("load invoice %s: %w", number, err))
	}
	if existing != nil {
		// A single re-upload is merged with the other stored document.
		for kind, key := range storedKeys(existing) {
			if _, ok := docs[kind]; ok || key == "" {
				continue
			}
			d, err := s.fetch(ctx, kind, key, res)
			if err != nil {
				s.logger.Warn("stored document not usable", "invoice_number", number, "key", key, "error", err)
				res.Warnings = append(res.Warnings, fmt.Sprintf("stored %s document could not be read", strings.ToLower(string(kind))))
				continue
			}
			docs[kind] = d
		}
		rec = extractDocs(docs)
	}

	stored := make([]string, 0, 2)
	for _, kind := range []extract.Kind{extract.KindPL, extract.KindBooking} {
		d, ok := docs[kind]
		if !ok || d.key != "" {
			continue
		}
		key := storage.UploadKey(number, string(kind), s.newID())
		if _, err := s.store.Put(ctx, key, bytes.NewReader(d.data), storage.PutObjectOptions{
			Size:        int64(len(d.data)),
			ContentType: storage.ContentTypePDF,
			Metadata:    map[string]string{"original-filename": d.name},
		}); err != nil {
			s.rollback(ctx, stored)
			return res, s.fail(ctx, job, "", fmt.Errorf("upload to storage: %w", err))
		}
		d.key = key
		stored = append(stored, key)
	}

	inv, err := s.save(ctx, number, rec, docs, existing)
	if err != nil {
		s.rollback(ctx, stored)
		return res, s.fail(ctx, job, "", err)
	}
	s.pruneReplaced(ctx, existing, docs)
	return s.finish(ctx, job, inv, res)
}

func (s *processingService) Reprocess(ctx context.Context, invoiceNumber string) (res *ProcessResult, err error) {
	ctx, span := tracer.Start(ctx, "ProcessingService.Reprocess")
	defer func() { finishSpan(span, err) }()

	invoiceNumber = strings.TrimSpace(invoiceNumber)
	if invoiceNumber == "" {
		return nil, fmt.Errorf("%w: invoice number is required", ErrInvalidInput)
	}
	existing, err := s.invoices.FindByNumber(ctx, invoiceNumber)
	if err != nil {
		return nil, notFound(err, "invoice "+invoiceNumber)
	}
	if existing.PLObjectKey == "" && existing.BookingObjectKey == "" {
		return nil, fmt.Errorf("%w: invoice %s has no stored documents", ErrInvalidInput, invoiceNumber)
	}

	job, err := s.startJob(ctx)
	if err != nil {
		return nil, err
	}
	job.InvoiceNumber = invoiceNumber
	res = &ProcessResult{Job: job, Missing: make([]string, 0), Warnings: make([]string, 0)}

	if err := s.invoices.UpdateStatus(ctx, invoiceNumber, model.InvoiceProcessing); err != nil {
		return res, s.fail(ctx, job, "", fmt.Errorf("mark invoice processing: %w", err))
	}

	docs := make(map[extract.Kind]*document, 2)
	for kind, key := range storedKeys(existing) {
		if key == "" {
			continue
		}
		d, err := s.fetch(ctx, kind, key, res)
		if err != nil {
			return res, s.fail(ctx, job, invoiceNumber, err)
		}
		docs[kind] = d
	}

	inv, err := s.save(ctx, invoiceNumber, extractDocs(docs), docs, existing)
	if err != nil {
		return res, s.fail(ctx, job, invoiceNumber, err)
	}
	return s.finish(ctx, job, inv, res)
}

func (s *processingService) Job(ctx context.Context, id string) (*model.Job, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: job id is required", ErrInvalidInput)
	}
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "job "+id)
	}
	return job, nil
}

func fileDoc(kind extract.Kind, f *FileInput) *document {
	if f.empty() {
		return nil
	}
	return &document{kind: kind, name: f.Name, data: f.Data}
}

func storedKeys(inv *model.Invoice) map[extract.Kind]string {
	return map[extract.Kind]string{
		extract.KindPL:      inv.PLObjectKey,
		extract.KindBooking: inv.BookingObjectKey,
	}
}

func extractDocs(docs map[extract.Kind]*document) model.FieldRecord {
	var pl, booking string
	if d, ok := docs[extract.KindPL]; ok {
		pl = d.text
	}
	if d, ok := docs[extract.KindBooking]; ok {
		booking = d.text
	}
	return extract.ExtractPair(pl, booking)
}

// read fills d.text. A document without a text layer is a warning, not a failure.
func (s *processingService) read(ctx context.Context, d *document, res *ProcessResult) error {
	kind := string(d.kind)
	doc, err := s.readText(ctx, d.data)
	if err != nil {
		s.metrics.extraction(kind, "error")
		return fmt.Errorf("%w: %s: %w", ErrUnreadableDocument, strings.ToLower(kind), err)
	}
	if doc.Empty() {
		s.metrics.extraction(kind, "no_text")
		res.Warnings = append(res.Warnings, fmt.Sprintf("%s document has no text layer", strings.ToLower(kind)))
	} else {
		s.metrics.extraction(kind, "ok")
	}
	d.text = doc.Text
	return nil
}

func (s *processingService) fetch(ctx context.Context, kind extract.Kind, key string, res *ProcessResult) (*document, error) {
	data, _, err := storage.ReadAll(ctx, s.store, key)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", key, err)
	}
	d := &document{kind: kind, data: data, key: key}
	if err := s.read(ctx, d, res); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *processingService) save(ctx context.Context, number string, rec model.FieldRecord, docs map[extract.Kind]*document, existing *model.Invoice) (*model.Invoice, error) {
	rec.Set(model.FieldInvoiceNumber, number)
	now := s.now()
	inv := &model.Invoice{
		ID:            s.newID(),
		InvoiceNumber: number,
		Status:        model.InvoiceCompleted,
		Fields:        rec,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if existing != nil {
		inv.ID = existing.ID
		inv.CreatedAt = existing.CreatedAt
	}
	if d, ok := docs[extract.KindPL]; ok {
		inv.PLObjectKey = d.key
	}
	if d, ok := docs[extract.KindBooking]; ok {
		inv.BookingObjectKey = d.key
	}
	saved, err := s.invoices.Save(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return saved, nil
}

func (s *processingService) startJob(ctx context.Context) (*model.Job, error) {
	job := model.NewJob(s.newID(), s.now())
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	if err := job.Advance(model.JobRunning, "", s.now()); err != nil {
		return nil, err
	}
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	return job, nil
}

func (s *processingService) finish(ctx context.Context, job *model.Job, inv *model.Invoice, res *ProcessResult) (*ProcessResult, error) {
	job.InvoiceNumber = inv.InvoiceNumber
	if err := job.Advance(model.JobDone, "", s.now()); err != nil {
		return res, err
	}
	if err := s.jobs.Update(ctx, job); err != nil {
		return res, fmt.Errorf("update job: %w", err)
	}
	res.Invoice = inv
	res.Missing = extract.Missing(inv.Fields, s.required)
	s.logger.Info("invoice extracted",
		"job_id", job.ID,
		"invoice_number", inv.InvoiceNumber,
		"fields", len(inv.Fields),
		"missing", res.Missing,
	)
	return res, nil
}

// fail moves job to failed and returns cause. When invoiceNumber is set the
// invoice is marked failed too.
func (s *processingService) fail(ctx context.Context, job *model.Job, invoiceNumber string, cause error) error {
	log := s.logger.With("job_id", job.ID)
	if err := job.Advance(model.JobFailed, cause.Error(), s.now()); err != nil {
		log.Error("job transition", "error", err)
		return cause
	}
	if err := s.jobs.Update(ctx, job); err != nil {
		log.Error("update failed job", "error", err)
	}
	if invoiceNumber != "" {
		if err := s.invoices.UpdateStatus(ctx, invoiceNumber, model.InvoiceFailed); err != nil {
			log.Error("mark invoice failed", "invoice_number", invoiceNumber, "error", err)
		}
	}
	log.Warn("extraction failed", slog.String("error", cause.Error()))
	return cause
}

// pruneReplaced deletes the objects a re-upload superseded. Failures only
// leave an orphan behind, so they are logged.
func (s *processingService) pruneReplaced(ctx context.Context, existing *model.Invoice, docs map[extract.Kind]*document) {
	if existing == nil {
		return
	}
	for kind, old := range storedKeys(existing) {
		d, ok := docs[kind]
		if old == "" || !ok || d.key == old {
			continue
		}
		if err := s.store.Delete(ctx, old); err != nil {
			s.logger.Warn("delete replaced upload", "key", old, "error", err)
		}
	}
}

func (s *processingService) rollback(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			s.logger.Error("rollback delete failed", "key", key, "error", err)
		}
	}
}
