package xlsxfill

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"exportdocs/internal/model"
)

var (
	ErrEmpty         = errors.New("workbook is empty")
	ErrProtected     = errors.New("workbook is password protected or in the legacy binary format")
	ErrMalformed     = errors.New("workbook is malformed")
	ErrSheetNotFound = errors.New("sheet not found")
)

var (
	zipSignature = []byte("PK\x03\x04")
	// Compound File Binary: encrypted OOXML packages and BIFF .xls files.
	oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// Open parses an .xlsx/.xlsm workbook. The caller must Close the file.
func Open(data []byte) (*excelize.File, error) {
	switch {
	case len(data) == 0:
		return nil, ErrEmpty
	case bytes.HasPrefix(data, oleSignature):
		return nil, ErrProtected
	case !bytes.HasPrefix(data, zipSignature):
		return nil, fmt.Errorf("%w: not an OOXML package", ErrMalformed)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(f.GetSheetList()) == 0 {
		_ = f.Close()
		return nil, fmt.Errorf("%w: no worksheets", ErrMalformed)
	}
	return f, nil
}

// resolveSheet finds a sheet by name, ignoring case and surrounding spaces.
func resolveSheet(f *excelize.File, name string) (string, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	sheets := f.GetSheetList()
	for _, s := range sheets {
		if strings.ToLower(strings.TrimSpace(s)) == want {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q (available: %s)", ErrSheetNotFound, name, strings.Join(sheets, ", "))
}

// targetSheets returns the sheets a fill or scan touches: just sheet when
// given, otherwise every sheet not listed in skip.
func targetSheets(f *excelize.File, sheet string, skip []string) ([]string, error) {
	if sheet != "" {
		s, err := resolveSheet(f, sheet)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	}
	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipped[strings.ToLower(strings.TrimSpace(s))] = true
	}
	out := make([]string, 0)
	for _, s := range f.GetSheetList() {
		if !skipped[strings.ToLower(strings.TrimSpace(s))] {
			out = append(out, s)
		}
	}
	return out, nil
}

// readCells returns the text cells of sheets that may hold a placeholder, in
// sheet, row and column order. Formula cells are left alone.
func readCells(f *excelize.File, sheets []string) ([]Cell, error) {
	cells := make([]Cell, 0)
	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("%w: read sheet %q: %v", ErrMalformed, sheet, err)
		}
		for r, row := range rows {
			for c, v := range row {
				if !strings.Contains(v, "{") {
					continue
				}
				ref, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					return nil, err
				}
				if formula, _ := f.GetCellFormula(sheet, ref); formula != "" {
					continue
				}
				cells = append(cells, Cell{Sheet: sheet, Ref: ref, Value: v})
			}
		}
	}
	return cells, nil
}

// Scan lists the placeholders of one sheet, or of the whole workbook when
// sheet is empty.
func Scan(data []byte, sheet string) ([]string, error) {
	f, err := Open(data)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets, err := targetSheets(f, sheet, nil)
	if err != nil {
		return nil, err
	}
	cells, err := readCells(f, sheets)
	if err != nil {
		return nil, err
	}
	return ScanCells(cells), nil
}

// Location is one placeholder occurrence.
type Location struct {
	Cell        string `json:"cell"`
	Placeholder string `json:"placeholder"`
}

// SheetInfo describes the placeholders of one sheet.
type SheetInfo struct {
	Name         string     `json:"name"`
	Placeholders []Location `json:"placeholders"`
}

// Info summarizes a template.
type Info struct {
	Sheets       []SheetInfo `json:"sheets"`
	Placeholders []string    `json:"placeholders"`
	Unknown      []string    `json:"unknown_placeholders"`
	Warnings     []string    `json:"warnings"`
}

// SheetNames returns the sheet names in workbook order.
func (i Info) SheetNames() []string {
	out := make([]string, len(i.Sheets))
	for k, s := range i.Sheets {
		out[k] = s.Name
	}
	return out
}

// commonPlaceholders are expected in most export templates; their absence is
// only a warning.
var commonPlaceholders = []string{model.FieldInvoiceNumber, model.FieldDate, model.FieldPO}

// Inspect opens data and reports its sheets and placeholders. It doubles as
// template validation: an error means the file cannot be used at all.
func Inspect(data []byte) (Info, error) {
	f, err := Open(data)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	info := Info{Sheets: make([]SheetInfo, 0), Warnings: make([]string, 0)}
	all := make([]Cell, 0)
	for _, sheet := range f.GetSheetList() {
		cells, err := readCells(f, []string{sheet})
		if err != nil {
			return Info{}, err
		}
		si := SheetInfo{Name: sheet, Placeholders: make([]Location, 0)}
		for _, c := range cells {
			for _, name := range Placeholders(c.Value) {
				si.Placeholders = append(si.Placeholders, Location{Cell: c.Ref, Placeholder: name})
			}
		}
		info.Sheets = append(info.Sheets, si)
		all = append(all, cells...)
	}
	info.Placeholders = ScanCells(all)

	info.Unknown = make([]string, 0)
	for _, name := range info.Placeholders {
		if !model.IsKnownField(name) {
			info.Unknown = append(info.Unknown, name)
		}
	}

	if len(info.Placeholders) == 0 {
		info.Warnings = append(info.Warnings, "no placeholders found in template")
	} else {
		missing := make([]string, 0)
		for _, name := range commonPlaceholders {
			if i := sort.SearchStrings(info.Placeholders, name); i == len(info.Placeholders) || info.Placeholders[i] != name {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			info.Warnings = append(info.Warnings, "missing common placeholders: "+strings.Join(missing, ", "))
		}
	}
	return info, nil
}

// Options selects the sheets a fill touches.
type Options struct {
	// Sheet restricts the fill to one sheet. Empty means every sheet.
	Sheet string
	// SkipSheets are left untouched when Sheet is empty.
	SkipSheets []string
}

// Report counts the replacements of one fill.
type Report struct {
	Replacements int            `json:"replacements_made"`
	Sheets       map[string]int `json:"sheets"`
}

// Fill replaces the placeholders of data with values from rec and returns the
// new workbook. data itself is never modified, so the same template bytes can
// be filled any number of times.
func Fill(data []byte, rec model.FieldRecord, opts Options) ([]byte, Report, error) {
	f, err := Open(data)
	if err != nil {
		return nil, Report{}, err
	}
	defer f.Close()

	report, err := fillFile(f, rec, opts)
	if err != nil {
		return nil, Report{}, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, Report{}, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), report, nil
}

func fillFile(f *excelize.File, rec model.FieldRecord, opts Options) (Report, error) {
	sheets, err := targetSheets(f, opts.Sheet, opts.SkipSheets)
	if err != nil {
		return Report{}, err
	}

	report := Report{Sheets: make(map[string]int, len(sheets))}
	for _, sheet := range sheets {
		cells, err := readCells(f, []string{sheet})
		if err != nil {
			return Report{}, err
		}
		changed, n := FillCells(cells, rec)
		for _, c := range changed {
			if err := f.SetCellStr(c.Sheet, c.Ref, c.Value); err != nil {
				return Report{}, fmt.Errorf("set %s!%s: %w", c.Sheet, c.Ref, err)
			}
		}
		report.Sheets[sheet] = n
		report.Replacements += n
	}
	return report, nil
}
