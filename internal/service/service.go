// Package service holds the use cases of the export-docs workflow: turning
// uploaded PDFs into stored invoice records, and turning stored templates plus
// records into filled workbooks.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"exportdocs/internal/logging"
	"exportdocs/internal/pdftext"
	"exportdocs/internal/xlsxfill"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrConflict           = errors.New("already exists")
	ErrTemplateInvalid    = errors.New("template invalid")
	ErrUnreadableDocument = errors.New("document unreadable")
)

var tracer = otel.Tracer("exportdocs/internal/service")

// finishSpan records err on span and ends it.
func finishSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// notFound translates a missing row into ErrNotFound.
func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}

// templateFault reports whether err means the workbook itself is unusable.
func templateFault(err error) bool {
	return errors.Is(err, xlsxfill.ErrProtected) ||
		errors.Is(err, xlsxfill.ErrMalformed) ||
		errors.Is(err, xlsxfill.ErrEmpty)
}

// templateErr classifies workbook failures.
func templateErr(err error) error {
	switch {
	case errors.Is(err, xlsxfill.ErrSheetNotFound):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case templateFault(err):
		return fmt.Errorf("%w: %w", ErrTemplateInvalid, err)
	}
	return err
}

// Metrics are the domain counters exported next to the HTTP metrics.
type Metrics struct {
	extractions *prometheus.CounterVec
	fills       *prometheus.CounterVec
}

// NewMetrics registers the counters on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		extractions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exportdocs_extractions_total",
				Help: "PDF documents read for extraction, by kind and outcome.",
			},
			[]string{"kind", "outcome"},
		),
		fills: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exportdocs_fills_total",
				Help: "Template fills, by outcome.",
			},
			[]string{"outcome"},
		),
	}
	for _, c := range []prometheus.Collector{m.extractions, m.fills} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) extraction(kind, outcome string) {
	if m != nil {
		m.extractions.WithLabelValues(kind, outcome).Inc()
	}
}

func (m *Metrics) fill(err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.fills.WithLabelValues(outcome).Inc()
}

// TextReader reads the text layer of a PDF.
type TextReader func(ctx context.Context, data []byte) (pdftext.Document, error)

type deps struct {
	logger   *slog.Logger
	metrics  *Metrics
	now      func() time.Time
	newID    func() string
	readText TextReader
}

// Option customizes a service.
type Option func(*deps)

func WithLogger(l *slog.Logger) Option { return func(d *deps) { d.logger = l } }

func WithMetrics(m *Metrics) Option { return func(d *deps) { d.metrics = m } }

// WithClock replaces time.Now; tests use it to pin timestamps.
func WithClock(now func() time.Time) Option { return func(d *deps) { d.now = now } }

func WithIDGenerator(f func() string) Option { return func(d *deps) { d.newID = f } }

func WithTextReader(r TextReader) Option { return func(d *deps) { d.readText = r } }

func newDeps(opts []Option) deps {
	d := deps{
		logger:   logging.Discard(),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
		readText: pdftext.Read,
	}
	for _, o := range opts {
		o(&d)
	}
	if d.logger == nil {
		d.logger = logging.Discard()
	}
	return d
}
