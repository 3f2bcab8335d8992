package xlsxfill

import (
	"github.com/xuri/excelize/v2"

	"exportdocs/internal/model"
)

const (
	DefaultPreviewRows = 20
	DefaultPreviewCols = 15
)

// PreviewCell pairs a cell's template text with the text it would have after filling.
type PreviewCell struct {
	Address  string `json:"address"`
	Original string `json:"original"`
	Filled   string `json:"filled"`
	Changed  bool   `json:"is_changed"`
}

// PreviewResult is the top-left window of one sheet.
type PreviewResult struct {
	Sheet     string          `json:"sheet_name"`
	Rows      [][]PreviewCell `json:"preview_data"`
	TotalRows int             `json:"total_rows"`
	TotalCols int             `json:"total_cols"`
}

// Preview shows what filling sheet (the first sheet when empty) with rec would
// produce, limited to maxRows by maxCols cells. Nothing is written.
func Preview(data []byte, sheet string, rec model.FieldRecord, maxRows, maxCols int) (PreviewResult, error) {
	if maxRows <= 0 {
		maxRows = DefaultPreviewRows
	}
	if maxCols <= 0 {
		maxCols = DefaultPreviewCols
	}

	f, err := Open(data)
	if err != nil {
		return PreviewResult{}, err
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
		if sheet == "" {
			sheet = f.GetSheetList()[0]
		}
	} else if sheet, err = resolveSheet(f, sheet); err != nil {
		return PreviewResult{}, err
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return PreviewResult{}, err
	}

	res := PreviewResult{Sheet: sheet, TotalRows: len(rows)}
	for _, row := range rows {
		if len(row) > res.TotalCols {
			res.TotalCols = len(row)
		}
	}

	nRows, nCols := min(res.TotalRows, maxRows), min(res.TotalCols, maxCols)
	res.Rows = make([][]PreviewCell, 0, nRows)
	for r := 0; r < nRows; r++ {
		line := make([]PreviewCell, 0, nCols)
		for c := 0; c < nCols; c++ {
			addr, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return PreviewResult{}, err
			}
			orig := ""
			if c < len(rows[r]) {
				orig = rows[r][c]
			}
			filled, n := Replace(orig, rec)
			line = append(line, PreviewCell{
				Address:  addr,
				Original: orig,
				Filled:   filled,
				Changed:  n > 0 && filled != orig,
			})
		}
		res.Rows = append(res.Rows, line)
	}
	return res, nil
}
