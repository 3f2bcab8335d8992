package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"exportdocs/internal/config"
	"exportdocs/internal/extract"
	"exportdocs/internal/logging"
	"exportdocs/internal/model"
	"exportdocs/internal/pdftext"
	"exportdocs/internal/xlsxfill"
)

type rootOptions struct {
	logLevel string
	logger   *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "exportdoc",
		Short:         "Extract shipping document fields and fill export templates",
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.logger = logging.New(cmd.ErrOrStderr(), logging.ParseLevel(opts.logLevel), time.Local)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newExtractCmd(opts),
		newFillCmd(opts),
		newScanCmd(),
		newSampleCmd(),
	)
	return cmd
}

func newExtractCmd(root *rootOptions) *cobra.Command {
	var (
		plPath, bookingPath string
		textPath, kind      string
		required            []string
	)
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Print the merged field record of a packing list and/or booking PDF",
		Long: `Reads the text layer of the given PDFs, applies the packing list and
booking rules and prints the merged record as JSON together with the
required fields that are still missing.

--text with --kind runs the rules on an already extracted text file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var rec model.FieldRecord
			var warnings []string

			if textPath != "" {
				k, err := extract.ParseKind(kind)
				if err != nil {
					return err
				}
				b, err := os.ReadFile(textPath)
				if err != nil {
					return err
				}
				rec = extract.Extract(string(b), k)
			} else {
				if plPath == "" && bookingPath == "" {
					return fmt.Errorf("--pl or --booking is required")
				}
				plText, w1, err := readPDF(ctx, root.logger, plPath, extract.KindPL)
				if err != nil {
					return err
				}
				bookingText, w2, err := readPDF(ctx, root.logger, bookingPath, extract.KindBooking)
				if err != nil {
					return err
				}
				warnings = append(w1, w2...)
				rec = extract.ExtractPair(plText, bookingText)
			}

			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"fields":         rec,
				"missing_fields": extract.Missing(rec, required),
				"warnings":       nonNil(warnings),
			})
		},
	}
	cmd.Flags().StringVar(&plPath, "pl", "", "packing list PDF")
	cmd.Flags().StringVar(&bookingPath, "booking", "", "booking confirmation PDF")
	cmd.Flags().StringVar(&textPath, "text", "", "plain text file to extract from instead of a PDF")
	cmd.Flags().StringVar(&kind, "kind", "pl", "document kind of --text (pl or booking)")
	cmd.Flags().StringSliceVar(&required, "required", config.Load().Extract.RequiredFields, "fields reported when missing")
	return cmd
}

// readPDF returns the text of path; an empty path yields no text.
func readPDF(ctx context.Context, logger *slog.Logger, path string, kind extract.Kind) (string, []string, error) {
	if path == "" {
		return "", nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	doc, err := pdftext.Read(ctx, data)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Info("pdf_read", "kind", kind, "path", path, "pages", doc.Pages)
	if doc.Empty() {
		return "", []string{fmt.Sprintf("%s document has no text layer", strings.ToLower(string(kind)))}, nil
	}
	return doc.Text, nil, nil
}

func newFillCmd(root *rootOptions) *cobra.Command {
	var (
		templatePath, recordPath, outPath, sheet string
		skip                                     []string
		set                                      map[string]string
	)
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill the placeholders of a template workbook from a JSON record",
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := os.ReadFile(templatePath)
			if err != nil {
				return err
			}

			rec := model.FieldRecord{}
			if recordPath != "" {
				if rec, err = readRecord(recordPath); err != nil {
					return err
				}
			}
			rec = rec.Overlay(set)
			if len(rec) == 0 {
				return fmt.Errorf("--record or --set is required")
			}

			out, report, err := xlsxfill.Fill(tpl, rec, xlsxfill.Options{Sheet: sheet, SkipSheets: skip})
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = defaultOutPath(templatePath)
			}
			if err := os.WriteFile(outPath, out, 0o644); err != nil {
				return err
			}
			root.logger.Info("template_filled", "template", templatePath, "out", outPath, "replacements", report.Replacements)
			return writeJSON(cmd.OutOrStdout(), map[string]any{"output": outPath, "report": report})
		},
	}
	cmd.Flags().StringVar(&templatePath, "template", "", "template workbook (.xlsx, .xlsm)")
	cmd.Flags().StringVar(&recordPath, "record", "", "JSON object of field values, or the output of extract")
	cmd.Flags().StringVar(&outPath, "out", "", "output workbook (default <template>_filled.<ext>)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "fill only this sheet")
	cmd.Flags().StringSliceVar(&skip, "skip-sheet", []string{"Data"}, "sheets left untouched when filling every sheet")
	cmd.Flags().StringToStringVar(&set, "set", nil, "field=value overrides")
	_ = cmd.MarkFlagRequired("template")
	return cmd
}

// readRecord accepts a bare field object or the {"fields": {...}} document
// printed by extract.
func readRecord(path string) (model.FieldRecord, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var wrapped struct {
		Fields model.FieldRecord `json:"fields"`
	}
	if err := json.Unmarshal(b, &wrapped); err == nil && len(wrapped.Fields) > 0 {
		return wrapped.Fields, nil
	}
	var rec model.FieldRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

func defaultOutPath(templatePath string) string {
	ext := filepath.Ext(templatePath)
	if ext == ".xls" || ext == "" {
		ext = ".xlsx"
	}
	return strings.TrimSuffix(templatePath, filepath.Ext(templatePath)) + "_filled" + ext
}

func newScanCmd() *cobra.Command {
	var templatePath string
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List the placeholders of a template workbook and where they sit",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(templatePath)
			if err != nil {
				return err
			}
			info, err := xlsxfill.Inspect(data)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), info)
		},
	}
	cmd.Flags().StringVar(&templatePath, "template", "", "template workbook")
	_ = cmd.MarkFlagRequired("template")
	return cmd
}

func newSampleCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write the sample CO form template",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := xlsxfill.Sample()
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "sample_co_form.xlsx", "output path")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
