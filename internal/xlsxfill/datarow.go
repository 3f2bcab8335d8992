package xlsxfill

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"exportdocs/internal/model"
)

// DataSheet is the tabular sheet of merge workbooks: one row per invoice
// under a header row, read by the form sheets through formulas.
const DataSheet = "Data"

// DefaultDataStartRow is the first data row; the header sits on the row above.
const DefaultDataStartRow = 8

type dataColumn struct {
	field   string
	aliases []string
	// fallback is the 1-based column used when no header matches.
	fallback int
}

var dataColumns = []dataColumn{
	{model.FieldInvoiceNumber, []string{"invoice number", "invoice no", "invoice"}, 1},
	{model.FieldDate, []string{"date"}, 2},
	{model.FieldPO, []string{"po", "po#", "purchase order", "purchase order #"}, 3},
	{model.FieldReferencePO, []string{"reference po#", "reference po #", "reference po", "po# reference"}, 4},
	{model.FieldItemSeq, []string{"item seq", "item", "seq"}, 5},
	{model.FieldMaterial, []string{"material"}, 6},
	{model.FieldDesc, []string{"desc", "description short", "product desc"}, 7},
	{model.FieldCustomerShipTo, []string{"customer ship to #", "customer ship to", "ship to #"}, 8},
	{model.FieldPlant, []string{"plant"}, 9},
	{model.FieldTotalGrossKgs, []string{"total gross kgs", "gross kgs"}, 10},
	{model.FieldTotalCartons, []string{"total cartons", "cartons"}, 11},
	{model.FieldTotalUnits, []string{"total units", "units"}, 12},
	{model.FieldMarks, []string{"marks"}, 13},
	{model.FieldDescription, []string{"description"}, 14},
	{model.FieldDest, []string{"dest", "destination"}, 15},
}

var reHeaderNoise = regexp.MustCompile(`[^a-z0-9#]+`)

func headerKey(s string) string {
	return strings.TrimSpace(reHeaderNoise.ReplaceAllString(strings.ToLower(s), " "))
}

// RowOptions locates the data table.
type RowOptions struct {
	Sheet    string
	StartRow int
}

// UpsertRow writes rec into the data table of a merge workbook. The row whose
// invoice-number cell matches rec's invoice number is updated; otherwise the
// first empty row below the header is used. Empty fields never overwrite
// existing cells. It returns the new workbook and the 1-based row written.
func UpsertRow(data []byte, rec model.FieldRecord, opts RowOptions) ([]byte, int, error) {
	invoice, ok := rec.Get(model.FieldInvoiceNumber)
	if !ok {
		return nil, 0, fmt.Errorf("record has no %q", model.FieldInvoiceNumber)
	}
	if opts.Sheet == "" {
		opts.Sheet = DataSheet
	}
	if opts.StartRow < 2 {
		opts.StartRow = DefaultDataStartRow
	}

	f, err := Open(data)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	sheet, err := resolveSheet(f, opts.Sheet)
	if err != nil {
		return nil, 0, err
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: read sheet %q: %v", ErrMalformed, sheet, err)
	}

	cols := headerColumns(rows, opts.StartRow-1)
	invCol := cols[model.FieldInvoiceNumber]
	row := findRow(rows, invCol, opts.StartRow, invoice)

	for _, dc := range dataColumns {
		v, ok := rec.Get(dc.field)
		if !ok {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(cols[dc.field], row)
		if err != nil {
			return nil, 0, err
		}
		if err := setDataCell(f, sheet, cell, dc.field, v); err != nil {
			return nil, 0, fmt.Errorf("set %s!%s: %w", sheet, cell, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), row, nil
}

// headerColumns maps each data field to its column, reading the header on
// the 1-based headerRow and falling back to the fixed layout.
func headerColumns(rows [][]string, headerRow int) map[string]int {
	header := map[string]int{}
	if headerRow >= 1 && headerRow <= len(rows) {
		for c, v := range rows[headerRow-1] {
			if k := headerKey(v); k != "" {
				if _, dup := header[k]; !dup {
					header[k] = c + 1
				}
			}
		}
	}
	cols := make(map[string]int, len(dataColumns))
	for _, dc := range dataColumns {
		cols[dc.field] = dc.fallback
		for _, a := range dc.aliases {
			if c, ok := header[a]; ok {
				cols[dc.field] = c
				break
			}
		}
	}
	return cols
}

func findRow(rows [][]string, invCol, start int, invoice string) int {
	key := strings.ToUpper(strings.Join(strings.Fields(invoice), " "))
	for r := start; r <= len(rows); r++ {
		v := ""
		if invCol-1 < len(rows[r-1]) {
			v = rows[r-1][invCol-1]
		}
		v = strings.ToUpper(strings.Join(strings.Fields(v), " "))
		if v == "" {
			return r
		}
		if v == key {
			return r
		}
	}
	return max(len(rows)+1, start)
}

func setDataCell(f *excelize.File, sheet, cell, field, v string) error {
	switch field {
	case model.FieldTotalCartons, model.FieldTotalUnits:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return f.SetCellValue(sheet, cell, n)
		}
	case model.FieldTotalGrossKgs:
		if x, err := strconv.ParseFloat(v, 64); err == nil {
			return f.SetCellFloat(sheet, cell, x, -1, 64)
		}
	}
	return f.SetCellStr(sheet, cell, v)
}
