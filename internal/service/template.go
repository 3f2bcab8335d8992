package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"exportdocs/internal/model"
	"exportdocs/internal/repository"
	"exportdocs/internal/storage"
	"exportdocs/internal/xlsxfill"
)

// TemplateConfig are the fill settings handed over from configuration.
type TemplateConfig struct {
	SkipSheets   []string
	OutputPrefix string
	URLExpiry    time.Duration
}

// TemplateUpload is a workbook posted by the user.
type TemplateUpload struct {
	Filename    string
	Description string
	Data        []byte
}

// TemplateUploadResult returns the stored template with its validation report.
type TemplateUploadResult struct {
	Template *model.Template `json:"template"`
	Info     xlsxfill.Info   `json:"validation"`
}

// GenerateInput selects a template and the values to fill it with. Data
// overrides the stored invoice record field by field; either may be empty
// but not both.
type GenerateInput struct {
	TemplateName  string            `json:"template_name"`
	InvoiceNumber string            `json:"invoice_number"`
	Sheet         string            `json:"sheet"`
	Data          model.FieldRecord `json:"data"`
}

// GenerateResult locates a generated workbook.
type GenerateResult struct {
	TemplateName  string          `json:"template_name"`
	InvoiceNumber string          `json:"invoice_number,omitempty"`
	OutputKey     string          `json:"output_key"`
	Filename      string          `json:"filename"`
	DownloadURL   string          `json:"download_url,omitempty"`
	Report        xlsxfill.Report `json:"report"`
}

// BatchInput fills every template once per invoice.
type BatchInput struct {
	Templates []string `json:"template_names"`
	Invoices  []string `json:"invoice_numbers"`
}

// BatchItemResult is one template x invoice outcome.
type BatchItemResult struct {
	TemplateName  string `json:"template_name"`
	InvoiceNumber string `json:"invoice_number"`
	Success       bool   `json:"success"`
	OutputKey     string `json:"output_key,omitempty"`
	DownloadURL   string `json:"download_url,omitempty"`
	Replacements  int    `json:"replacements_made"`
	Error         string `json:"error,omitempty"`
}

type BatchSummary struct {
	Total     int `json:"total"`
	Succeeded int `json:"successful"`
	Failed    int `json:"failed"`
}

type BatchGenerateResult struct {
	Results []BatchItemResult `json:"results"`
	Summary BatchSummary      `json:"summary"`
}

// PreviewInput asks for a preview of a fill without storing anything.
type PreviewInput struct {
	TemplateName  string            `json:"-"`
	InvoiceNumber string            `json:"invoice_number"`
	Sheet         string            `json:"sheet"`
	Data          model.FieldRecord `json:"data"`
	MaxRows       int               `json:"max_rows"`
	MaxCols       int               `json:"max_cols"`
}

// DataRowInput writes an invoice into the tabular data sheet of a template.
type DataRowInput struct {
	TemplateName  string            `json:"-"`
	InvoiceNumber string            `json:"invoice_number"`
	Data          model.FieldRecord `json:"data"`
	Sheet         string            `json:"sheet"`
	StartRow      int               `json:"start_row"`
}

type DataRowResult struct {
	GenerateResult
	Row int `json:"row"`
}

// TemplateService manages templates and produces filled workbooks.
type TemplateService interface {
	Upload(ctx context.Context, in TemplateUpload) (*TemplateUploadResult, error)
	List(ctx context.Context) ([]model.Template, error)
	Get(ctx context.Context, name string) (*model.Template, error)
	// Placeholders scans the stored workbook again and reports where each placeholder sits.
	Placeholders(ctx context.Context, name string) (*xlsxfill.Info, error)
	Delete(ctx context.Context, name string) error
	Generate(ctx context.Context, in GenerateInput) (*GenerateResult, error)
	BatchGenerate(ctx context.Context, in BatchInput) (*BatchGenerateResult, error)
	PreviewFill(ctx context.Context, in PreviewInput) (*xlsxfill.PreviewResult, error)
	AppendDataRow(ctx context.Context, in DataRowInput) (*DataRowResult, error)
	Sample(ctx context.Context) ([]byte, error)
	// Output streams a generated workbook by its object key.
	Output(ctx context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error)
}

var templateExts = map[string]bool{".xlsx": true, ".xlsm": true, ".xls": true}

type templateService struct {
	store     storage.Storage
	templates repository.TemplateRepository
	invoices  repository.InvoiceRepository
	cfg       TemplateConfig
	deps
}

func NewTemplateService(store storage.Storage, templates repository.TemplateRepository, invoices repository.InvoiceRepository, cfg TemplateConfig, opts ...Option) TemplateService {
	if cfg.OutputPrefix == "" {
		cfg.OutputPrefix = storage.OutputsPrefix
	}
	if cfg.URLExpiry <= 0 {
		cfg.URLExpiry = time.Hour
	}
	return &templateService{
		store:     store,
		templates: templates,
		invoices:  invoices,
		cfg:       cfg,
		deps:      newDeps(opts),
	}
}

func (s *templateService) Upload(ctx context.Context, in TemplateUpload) (res *TemplateUploadResult, err error) {
	ctx, span := tracer.Start(ctx, "TemplateService.Upload")
	defer func() { finishSpan(span, err) }()

	name := strings.TrimSpace(path.Base(strings.ReplaceAll(in.Filename, "\\", "/")))
	ext := strings.ToLower(path.Ext(name))
	if name == "" || name == "." || name == "/" || !templateExts[ext] {
		return nil, fmt.Errorf("%w: template must be an .xlsx, .xlsm or .xls file", ErrInvalidInput)
	}
	if len(in.Data) == 0 {
		return nil, fmt.Errorf("%w: template file is empty", ErrInvalidInput)
	}

	if _, err := s.templates.FindByName(ctx, name); err == nil {
		return nil, fmt.Errorf("template %s: %w", name, ErrConflict)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	info, err := xlsxfill.Inspect(in.Data)
	if err != nil {
		return nil, templateErr(err)
	}

	key := storage.TemplateKey(name)
	ct := storage.ContentTypeXLSX
	if ext == ".xlsm" {
		ct = storage.ContentTypeXLSM
	}
	obj, err := s.store.Put(ctx, key, bytes.NewReader(in.Data), storage.PutObjectOptions{
		Size:        int64(len(in.Data)),
		ContentType: ct,
		Metadata:    map[string]string{"original-filename": in.Filename},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	tpl, err := s.templates.Create(ctx, &model.Template{
		ID:           s.newID(),
		Name:         name,
		Description:  strings.TrimSpace(in.Description),
		ObjectKey:    obj.Key,
		Sheets:       info.SheetNames(),
		Placeholders: info.Placeholders,
		Size:         int64(len(in.Data)),
		CreatedAt:    s.now(),
	})
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	s.logger.Info("template stored",
		"template", name,
		"placeholders", len(info.Placeholders),
		"unknown", info.Unknown,
		"warnings", info.Warnings,
	)
	return &TemplateUploadResult{Template: tpl, Info: info}, nil
}

func (s *templateService) List(ctx context.Context) ([]model.Template, error) {
	return s.templates.List(ctx)
}

func (s *templateService) Get(ctx context.Context, name string) (*model.Template, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: template name is required", ErrInvalidInput)
	}
	tpl, err := s.templates.FindByName(ctx, name)
	if err != nil {
		return nil, notFound(err, "template "+name)
	}
	return tpl, nil
}

func (s *templateService) Placeholders(ctx context.Context, name string) (*xlsxfill.Info, error) {
	_, data, err := s.load(ctx, name)
	if err != nil {
		return nil, err
	}
	info, err := xlsxfill.Inspect(data)
	if err != nil {
		return nil, templateErr(err)
	}
	return &info, nil
}

// Delete removes the stored workbook first; the row stays if that fails.
func (s *templateService) Delete(ctx context.Context, name string) error {
	tpl, err := s.Get(ctx, name)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, tpl.ObjectKey); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.templates.Delete(ctx, tpl.Name)
}

func (s *templateService) Generate(ctx context.Context, in GenerateInput) (res *GenerateResult, err error) {
	ctx, span := tracer.Start(ctx, "TemplateService.Generate")
	defer func() { finishSpan(span, err) }()

	tpl, data, err := s.load(ctx, in.TemplateName)
	if err != nil {
		return nil, err
	}
	rec, err := s.record(ctx, in.InvoiceNumber, in.Data)
	if err != nil {
		return nil, err
	}

	out, report, err := xlsxfill.Fill(data, rec, xlsxfill.Options{Sheet: in.Sheet, SkipSheets: s.cfg.SkipSheets})
	s.metrics.fill(err)
	if err != nil {
		return nil, templateErr(err)
	}

	number, _ := rec.Get(model.FieldInvoiceNumber)
	res, err = s.storeOutput(ctx, tpl.Name, number, out)
	if err != nil {
		return nil, err
	}
	res.Report = report
	s.logger.Info("workbook generated",
		"template", tpl.Name,
		"invoice_number", number,
		"replacements", report.Replacements,
		"output_key", res.OutputKey,
	)
	return res, nil
}

func (s *templateService) BatchGenerate(ctx context.Context, in BatchInput) (res *BatchGenerateResult, err error) {
	ctx, span := tracer.Start(ctx, "TemplateService.BatchGenerate")
	defer func() { finishSpan(span, err) }()

	if len(in.Templates) == 0 || len(in.Invoices) == 0 {
		return nil, fmt.Errorf("%w: at least one template and one invoice are required", ErrInvalidInput)
	}

	// Records are loaded once and shared across templates; fills never mutate them.
	items := make([]xlsxfill.BatchItem, 0, len(in.Invoices))
	loadErrs := make(map[string]error)
	for _, number := range in.Invoices {
		rec, err := s.record(ctx, number, nil)
		if err != nil {
			loadErrs[number] = err
			continue
		}
		items = append(items, xlsxfill.BatchItem{Key: number, Record: rec})
	}

	res = &BatchGenerateResult{Results: make([]BatchItemResult, 0, len(in.Templates)*len(in.Invoices))}
	for _, name := range in.Templates {
		tpl, data, err := s.load(ctx, name)
		if err != nil {
			for _, number := range in.Invoices {
				res.add(BatchItemResult{TemplateName: name, InvoiceNumber: number, Error: err.Error()})
			}
			continue
		}

		filled := make(map[string]xlsxfill.BatchResult, len(items))
		for _, r := range xlsxfill.FillBatch(data, items, xlsxfill.Options{SkipSheets: s.cfg.SkipSheets}) {
			s.metrics.fill(r.Err)
			filled[r.Key] = r
		}

		for _, number := range in.Invoices {
			item := BatchItemResult{TemplateName: tpl.Name, InvoiceNumber: number}
			if err, ok := loadErrs[number]; ok {
				item.Error = err.Error()
				res.add(item)
				continue
			}
			r := filled[number]
			if r.Err != nil {
				item.Error = templateErr(r.Err).Error()
				res.add(item)
				continue
			}
			out, err := s.storeOutput(ctx, tpl.Name, number, r.Output)
			if err != nil {
				item.Error = err.Error()
				res.add(item)
				continue
			}
			item.Success = true
			item.OutputKey = out.OutputKey
			item.DownloadURL = out.DownloadURL
			item.Replacements = r.Report.Replacements
			res.add(item)
		}
	}
	s.logger.Info("batch generated",
		"total", res.Summary.Total,
		"successful", res.Summary.Succeeded,
		"failed", res.Summary.Failed,
	)
	return res, nil
}

func (r *BatchGenerateResult) add(item BatchItemResult) {
	r.Results = append(r.Results, item)
	r.Summary.Total++
	if item.Success {
		r.Summary.Succeeded++
	} else {
		r.Summary.Failed++
	}
}

func (s *templateService) PreviewFill(ctx context.Context, in PreviewInput) (*xlsxfill.PreviewResult, error) {
	_, data, err := s.load(ctx, in.TemplateName)
	if err != nil {
		return nil, err
	}
	rec, err := s.record(ctx, in.InvoiceNumber, in.Data)
	if err != nil {
		return nil, err
	}
	p, err := xlsxfill.Preview(data, in.Sheet, rec, in.MaxRows, in.MaxCols)
	if err != nil {
		return nil, templateErr(err)
	}
	return &p, nil
}

func (s *templateService) AppendDataRow(ctx context.Context, in DataRowInput) (res *DataRowResult, err error) {
	ctx, span := tracer.Start(ctx, "TemplateService.AppendDataRow")
	defer func() { finishSpan(span, err) }()

	tpl, data, err := s.load(ctx, in.TemplateName)
	if err != nil {
		return nil, err
	}
	rec, err := s.record(ctx, in.InvoiceNumber, in.Data)
	if err != nil {
		return nil, err
	}
	out, row, err := xlsxfill.UpsertRow(data, rec, xlsxfill.RowOptions{Sheet: in.Sheet, StartRow: in.StartRow})
	s.metrics.fill(err)
	if err != nil {
		if templateFault(err) {
			return nil, fmt.Errorf("%w: %w", ErrTemplateInvalid, err)
		}
		// Otherwise the sheet or the record is at fault, e.g. no invoice number.
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	number, _ := rec.Get(model.FieldInvoiceNumber)
	gen, err := s.storeOutput(ctx, tpl.Name, number, out)
	if err != nil {
		return nil, err
	}
	return &DataRowResult{GenerateResult: *gen, Row: row}, nil
}

func (s *templateService) Sample(ctx context.Context) ([]byte, error) {
	_, span := tracer.Start(ctx, "TemplateService.Sample")
	defer span.End()
	return xlsxfill.Sample()
}

func (s *templateService) Output(ctx context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error) {
	key = strings.TrimPrefix(key, "/")
	if !strings.HasPrefix(key, s.cfg.OutputPrefix+"/") || strings.Contains(key, "..") {
		return nil, storage.ObjectInfo{}, fmt.Errorf("%w: not an output key", ErrInvalidInput)
	}
	rc, info, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, storage.ObjectInfo{}, fmt.Errorf("output %s: %w", key, ErrNotFound)
		}
		return nil, storage.ObjectInfo{}, err
	}
	return rc, info, nil
}

// load returns a template and its workbook bytes.
func (s *templateService) load(ctx context.Context, name string) (*model.Template, []byte, error) {
	tpl, err := s.Get(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	data, _, err := storage.ReadAll(ctx, s.store, tpl.ObjectKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, fmt.Errorf("template file %s: %w", tpl.ObjectKey, ErrNotFound)
		}
		return nil, nil, err
	}
	return tpl, data, nil
}

// record resolves the values of a fill: the stored invoice record with
// overrides applied on top.
func (s *templateService) record(ctx context.Context, number string, overrides model.FieldRecord) (model.FieldRecord, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		if len(overrides) == 0 {
			return nil, fmt.Errorf("%w: invoice_number or data is required", ErrInvalidInput)
		}
		return overrides.Clone(), nil
	}
	inv, err := s.invoices.FindByNumber(ctx, number)
	if err != nil {
		return nil, notFound(err, "invoice "+number)
	}
	rec := inv.Fields.Overlay(overrides)
	if _, ok := rec.Get(model.FieldInvoiceNumber); !ok {
		rec.Set(model.FieldInvoiceNumber, number)
	}
	return rec, nil
}

func (s *templateService) storeOutput(ctx context.Context, templateName, invoiceNumber string, out []byte) (*GenerateResult, error) {
	key := storage.OutputKey(s.cfg.OutputPrefix, templateName, invoiceNumber, s.now())
	ct := storage.ContentTypeXLSX
	if strings.HasSuffix(key, ".xlsm") {
		ct = storage.ContentTypeXLSM
	}
	if _, err := s.store.Put(ctx, key, bytes.NewReader(out), storage.PutObjectOptions{
		Size:        int64(len(out)),
		ContentType: ct,
	}); err != nil {
		return nil, fmt.Errorf("upload output: %w", err)
	}
	res := &GenerateResult{
		TemplateName:  templateName,
		InvoiceNumber: invoiceNumber,
		OutputKey:     key,
		Filename:      path.Base(key),
	}
	url, err := s.store.PresignGet(ctx, key, s.cfg.URLExpiry)
	if err != nil {
		// The file is still reachable through /api/outputs.
		s.logger.Warn("presign output", "key", key, "error", err)
	} else {
		res.DownloadURL = url
	}
	return res, nil
}
