package xlsxfill

import (
	"bytes"
	"fmt"
	"sort"
	"testing"

	"exportdocs/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type sheetSpec struct {
	name  string
	cells map[string]string
}

func buildWorkbook(t *testing.T, sheets ...sheetSpec) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", s.name))
		} else {
			_, err := f.NewSheet(s.name)
			require.NoError(t, err)
		}
		for ref, v := range s.cells {
			require.NoError(t, f.SetCellStr(s.name, ref, v))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func openFile(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func cellValue(t *testing.T, data []byte, sheet, ref string) string {
	t.Helper()
	v, err := openFile(t, data).GetCellValue(sheet, ref)
	require.NoError(t, err)
	return v
}

// snapshot captures every cell of every sheet; zip output is compared by content.
func snapshot(t *testing.T, data []byte) map[string][][]string {
	t.Helper()
	f := openFile(t, data)
	out := map[string][][]string{}
	for _, s := range f.GetSheetList() {
		rows, err := f.GetRows(s)
		require.NoError(t, err)
		out[s] = rows
	}
	return out
}

func TestFill_KnownAndUnknownPlaceholders(t *testing.T) {
	tpl := buildWorkbook(t, sheetSpec{name: "Form", cells: map[string]string{
		"A1": "Invoice: {Invoice Number}",
		"A2": "{Unknown Field}",
		"A3": "static text",
	}})

	out, report, err := Fill(tpl, model.FieldRecord{model.FieldInvoiceNumber: "INV-01"}, Options{})
	require.NoError(t, err)

	assert.Equal(t, "Invoice: INV-01", cellValue(t, out, "Form", "A1"))
	assert.Equal(t, "{Unknown Field}", cellValue(t, out, "Form", "A2"))
	assert.Equal(t, "static text", cellValue(t, out, "Form", "A3"))
	assert.Equal(t, 1, report.Replacements)
	assert.Equal(t, map[string]int{"Form": 1}, report.Sheets)
}

func TestFill_PreservesStyleAndMerges(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Form"))
	require.NoError(t, f.SetCellStr("Form", "A1", "{Invoice Number}"))
	require.NoError(t, f.MergeCell("Form", "A1", "C1"))
	require.NoError(t, f.SetCellStr("Form", "B2", "{Total Gross Kgs} KGS"))
	style, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 13},
		NumFmt: 49,
	})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Form", "B2", "B2", style))
	require.NoError(t, f.SetCellFormula("Form", "D1", `"{PO}"`))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	out, _, err := Fill(buf.Bytes(), model.FieldRecord{
		model.FieldInvoiceNumber: "INV-01",
		model.FieldTotalGrossKgs: "1234.50",
		model.FieldPO:            "4500123456",
	}, Options{})
	require.NoError(t, err)

	got := openFile(t, out)
	v, err := got.GetCellValue("Form", "B2")
	require.NoError(t, err)
	assert.Equal(t, "1234.50 KGS", v)

	gotStyle, err := got.GetCellStyle("Form", "B2")
	require.NoError(t, err)
	assert.Equal(t, style, gotStyle)

	merges, err := got.GetMergeCells("Form")
	require.NoError(t, err)
	require.Len(t, merges, 1)
	assert.Equal(t, "A1", merges[0].GetStartAxis())
	assert.Equal(t, "C1", merges[0].GetEndAxis())
	assert.Equal(t, "INV-01", merges[0].GetCellValue())

	formula, err := got.GetCellFormula("Form", "D1")
	require.NoError(t, err)
	assert.Equal(t, `"{PO}"`, formula)
}

func TestFill_RoundTripConsumesKnownPlaceholders(t *testing.T) {
	tpl, err := Sample()
	require.NoError(t, err)

	rec := model.FieldRecord{
		model.FieldInvoiceNumber: "INV-01",
		model.FieldDate:          "15/08/2025",
		model.FieldPO:            "4500123456",
		model.FieldDest:          "VIETNAM",
	}
	out, report, err := Fill(tpl, rec, Options{})
	require.NoError(t, err)
	assert.Equal(t, 4, report.Replacements)

	left, err := Scan(out, "")
	require.NoError(t, err)
	for name := range rec {
		assert.NotContains(t, left, name)
	}
	assert.Contains(t, left, model.FieldMarks)
}

func TestFill_Deterministic(t *testing.T) {
	tpl := buildWorkbook(t,
		sheetSpec{name: "Form", cells: map[string]string{"A1": "{PO}", "B1": "{Unknown Field}", "C4": "{DEST}"}},
		sheetSpec{name: "Annex", cells: map[string]string{"A1": "{PO} / {PO}"}},
	)
	rec := model.FieldRecord{model.FieldPO: "4500123456"}

	first, r1, err := Fill(tpl, rec, Options{})
	require.NoError(t, err)
	second, r2, err := Fill(tpl, rec, Options{})
	require.NoError(t, err)

	assert.Equal(t, first, second, "same inputs must produce identical bytes")
	assert.Equal(t, snapshot(t, first), snapshot(t, second))
	assert.Equal(t, r1, r2)

	sample, err := Sample()
	require.NoError(t, err)
	sampleRec := model.FieldRecord{model.FieldInvoiceNumber: "INV-01", model.FieldTotalCartons: "120"}
	a, _, err := Fill(sample, sampleRec, Options{})
	require.NoError(t, err)
	b, _, err := Fill(sample, sampleRec, Options{})
	require.NoError(t, err)
	assert.Equal(t, a, b)

	// Filling the output again touches nothing: only unmatched tokens remain.
	again, r3, err := Fill(first, rec, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, r3.Replacements)
	assert.Equal(t, snapshot(t, first), snapshot(t, again))
}

func TestFill_SheetSelection(t *testing.T) {
	tpl := buildWorkbook(t,
		sheetSpec{name: "Form", cells: map[string]string{"A1": "{PO}"}},
		sheetSpec{name: "Data", cells: map[string]string{"A1": "{PO}"}},
		sheetSpec{name: "Annex", cells: map[string]string{"A1": "{PO}"}},
	)
	rec := model.FieldRecord{model.FieldPO: "4500123456"}

	t.Run("skip sheets", func(t *testing.T) {
		out, report, err := Fill(tpl, rec, Options{SkipSheets: []string{"data"}})
		require.NoError(t, err)
		assert.Equal(t, "4500123456", cellValue(t, out, "Form", "A1"))
		assert.Equal(t, "{PO}", cellValue(t, out, "Data", "A1"))
		assert.Equal(t, "4500123456", cellValue(t, out, "Annex", "A1"))
		assert.Equal(t, map[string]int{"Form": 1, "Annex": 1}, report.Sheets)
	})

	t.Run("single sheet", func(t *testing.T) {
		out, report, err := Fill(tpl, rec, Options{Sheet: " annex "})
		require.NoError(t, err)
		assert.Equal(t, "{PO}", cellValue(t, out, "Form", "A1"))
		assert.Equal(t, "4500123456", cellValue(t, out, "Annex", "A1"))
		assert.Equal(t, 1, report.Replacements)
	})

	t.Run("unknown sheet", func(t *testing.T) {
		_, _, err := Fill(tpl, rec, Options{Sheet: "CPTPP"})
		assert.ErrorIs(t, err, ErrSheetNotFound)
	})
}

func TestFill_BadTemplates(t *testing.T) {
	ole := append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, make([]byte, 512)...)

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"empty", nil, ErrEmpty},
		{"encrypted or xls", ole, ErrProtected},
		{"not a workbook", []byte("%PDF-1.7 definitely not a spreadsheet"), ErrMalformed},
		{"broken zip", []byte("PK\x03\x04truncated"), ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Fill(tt.data, model.FieldRecord{}, Options{})
			assert.ErrorIs(t, err, tt.wantErr)

			_, err = Inspect(tt.data)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFillBatch_NoCrossContamination(t *testing.T) {
	tpl := buildWorkbook(t, sheetSpec{name: "Form", cells: map[string]string{
		"A1": "{Invoice Number}",
		"A2": "{PO}",
		"A3": "{Unknown Field}",
	}})
	original := append([]byte(nil), tpl...)

	items := make([]BatchItem, 0, 3)
	for i := 1; i <= 3; i++ {
		rec := model.FieldRecord{model.FieldInvoiceNumber: fmt.Sprintf("INV-%02d", i)}
		if i != 2 {
			rec[model.FieldPO] = fmt.Sprintf("450000000%d", i)
		}
		items = append(items, BatchItem{Key: rec[model.FieldInvoiceNumber], Record: rec})
	}

	results := FillBatch(tpl, items, Options{})
	require.Len(t, results, 3)

	assert.Equal(t, original, tpl, "template bytes must stay pristine")
	for i, res := range results {
		require.NoError(t, res.Err)
		assert.Equal(t, items[i].Key, res.Key)
		assert.Equal(t, items[i].Key, cellValue(t, res.Output, "Form", "A1"))
		assert.Equal(t, "{Unknown Field}", cellValue(t, res.Output, "Form", "A3"))
	}
	assert.Equal(t, "4500000001", cellValue(t, results[0].Output, "Form", "A2"))
	assert.Equal(t, "{PO}", cellValue(t, results[1].Output, "Form", "A2"))
	assert.Equal(t, "4500000003", cellValue(t, results[2].Output, "Form", "A2"))
}

func TestFillBatch_PerItemErrors(t *testing.T) {
	results := FillBatch([]byte("junk"), []BatchItem{{Key: "a"}, {Key: "b"}}, Options{})
	require.Len(t, results, 2)
	for _, res := range results {
		assert.ErrorIs(t, res.Err, ErrMalformed)
		assert.Nil(t, res.Output)
	}
}

func TestInspect(t *testing.T) {
	tpl := buildWorkbook(t,
		sheetSpec{name: "Form", cells: map[string]string{"A1": "{Invoice Number}", "B2": "{Custom Note} {DEST}"}},
		sheetSpec{name: "Empty", cells: map[string]string{"A1": "nothing here"}},
	)

	info, err := Inspect(tpl)
	require.NoError(t, err)

	assert.Equal(t, []string{"Form", "Empty"}, info.SheetNames())
	assert.Equal(t, []string{"Custom Note", "DEST", "Invoice Number"}, info.Placeholders)
	assert.Equal(t, []string{"Custom Note"}, info.Unknown)
	assert.Equal(t, []Location{
		{Cell: "A1", Placeholder: "Invoice Number"},
		{Cell: "B2", Placeholder: "Custom Note"},
		{Cell: "B2", Placeholder: "DEST"},
	}, info.Sheets[0].Placeholders)
	assert.Empty(t, info.Sheets[1].Placeholders)
	assert.Equal(t, []string{"missing common placeholders: Date, PO"}, info.Warnings)
}

func TestInspect_NoPlaceholders(t *testing.T) {
	info, err := Inspect(buildWorkbook(t, sheetSpec{name: "Form", cells: map[string]string{"A1": "x"}}))
	require.NoError(t, err)
	assert.Empty(t, info.Placeholders)
	assert.Equal(t, []string{"no placeholders found in template"}, info.Warnings)
}

func TestPreview(t *testing.T) {
	tpl := buildWorkbook(t, sheetSpec{name: "Form", cells: map[string]string{
		"A1": "Invoice:",
		"B1": "{Invoice Number}",
		"C3": "{Unknown Field}",
	}})

	res, err := Preview(tpl, "", model.FieldRecord{model.FieldInvoiceNumber: "INV-01"}, 2, 0)
	require.NoError(t, err)

	assert.Equal(t, "Form", res.Sheet)
	assert.Equal(t, 3, res.TotalRows)
	assert.Equal(t, 3, res.TotalCols)
	require.Len(t, res.Rows, 2)
	require.Len(t, res.Rows[0], 3)
	assert.Equal(t, PreviewCell{Address: "B1", Original: "{Invoice Number}", Filled: "INV-01", Changed: true}, res.Rows[0][1])
	assert.Equal(t, PreviewCell{Address: "A1", Original: "Invoice:", Filled: "Invoice:"}, res.Rows[0][0])

	// The template is untouched.
	assert.Equal(t, "{Invoice Number}", cellValue(t, tpl, "Form", "B1"))
}

func TestSample(t *testing.T) {
	data, err := Sample()
	require.NoError(t, err)

	info, err := Inspect(data)
	require.NoError(t, err)

	want := append([]string(nil), model.PlaceholderVocabulary...)
	sort.Strings(want)
	assert.Equal(t, want, info.Placeholders)
	assert.Empty(t, info.Unknown)
	assert.Empty(t, info.Warnings)
	assert.Equal(t, []string{SampleSheet}, info.SheetNames())

	merges, err := openFile(t, data).GetMergeCells(SampleSheet)
	require.NoError(t, err)
	assert.Len(t, merges, 2)
	assert.Equal(t, "CERTIFICATE OF ORIGIN", cellValue(t, data, SampleSheet, "D1"))
}

func TestUpsertRow(t *testing.T) {
	tpl := buildWorkbook(t,
		sheetSpec{name: "Form", cells: map[string]string{"A1": "{Invoice Number}"}},
		sheetSpec{name: "Data", cells: map[string]string{
			"A7": "Invoice No", "B7": "Total Cartons", "C7": "Destination", "D7": "Description",
			"A8": "INV-01", "B8": "5",
			"A9": "INV-02",
		}},
	)

	t.Run("existing invoice updated", func(t *testing.T) {
		rec := model.FieldRecord{
			model.FieldInvoiceNumber: "inv-02",
			model.FieldTotalCartons:  "120",
			model.FieldDest:          "VIETNAM",
			model.FieldDescription:   "SKULL CAP",
		}
		out, row, err := UpsertRow(tpl, rec, RowOptions{})
		require.NoError(t, err)
		assert.Equal(t, 9, row)
		assert.Equal(t, "120", cellValue(t, out, "Data", "B9"))
		assert.Equal(t, "VIETNAM", cellValue(t, out, "Data", "C9"))
		assert.Equal(t, "SKULL CAP", cellValue(t, out, "Data", "D9"))
		assert.Equal(t, "5", cellValue(t, out, "Data", "B8"))
	})

	t.Run("new invoice appended", func(t *testing.T) {
		rec := model.FieldRecord{model.FieldInvoiceNumber: "INV-03", model.FieldPO: "4500123456"}
		out, row, err := UpsertRow(tpl, rec, RowOptions{})
		require.NoError(t, err)
		assert.Equal(t, 10, row)
		assert.Equal(t, "INV-03", cellValue(t, out, "Data", "A10"))
		// No "PO" header: the fixed layout puts it in column C.
		assert.Equal(t, "4500123456", cellValue(t, out, "Data", "C10"))
	})

	t.Run("missing invoice number", func(t *testing.T) {
		_, _, err := UpsertRow(tpl, model.FieldRecord{model.FieldPO: "1"}, RowOptions{})
		assert.Error(t, err)
	})
}
