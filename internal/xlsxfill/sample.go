package xlsxfill

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const SampleSheet = "Certificate of Origin"

var sampleLayout = [][]string{
	{"", "", "", "CERTIFICATE OF ORIGIN", "", "", ""},
	{"", "", "", "Form A", "", "", ""},
	{},
	{"Invoice Number:", "{Invoice Number}", "", "Date:", "{Date}", "", ""},
	{},
	{"Exporter:", "", "", "Consignee:", "", "", ""},
	{"", "", "", "Customer Ship To #:", "{Customer Ship To #}", "", ""},
	{},
	{"Description of Goods:", "", "", "", "", "", ""},
	{"{DESCRIPTION}", "", "", "", "", "", ""},
	{},
	{"Marks and Numbers:", "", "Origin Criterion:", "", "", "", ""},
	{"{Marks}", "", "", "", "", "", ""},
	{},
	{"Total Cartons:", "{Total Cartons}", "", "In Words:", "{Total Cartons In Words}", "", ""},
	{"Total Units:", "{Total Units}", "", "Total Gross Kgs:", "{Total Gross Kgs}", "", ""},
	{"Destination:", "{DEST}", "", "", "", "", ""},
	{},
	{"Plant:", "{Plant}", "", "Material:", "{Material}", "", ""},
	{"PO#:", "{PO}", "", "Reference PO#:", "{Reference PO#}", "", ""},
}

// Sample builds the sample certificate-of-origin template: bold labels, a
// merged centered title and one placeholder per vocabulary field.
func Sample() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SampleSheet); err != nil {
		return nil, err
	}

	title, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	label, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	for r, row := range sampleLayout {
		for c, v := range row {
			if v == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellStr(SampleSheet, cell, v); err != nil {
				return nil, err
			}
			style := 0
			switch {
			case r < 2:
				style = title
			case strings.Contains(v, ":") && !strings.HasPrefix(v, "{"):
				style = label
			}
			if style != 0 {
				if err := f.SetCellStyle(SampleSheet, cell, cell, style); err != nil {
					return nil, err
				}
			}
		}
	}

	for _, rng := range [][2]string{{"D1", "F1"}, {"D2", "F2"}} {
		if err := f.MergeCell(SampleSheet, rng[0], rng[1]); err != nil {
			return nil, fmt.Errorf("merge %s:%s: %w", rng[0], rng[1], err)
		}
	}
	_ = f.SetColWidth(SampleSheet, "A", "A", 22)
	_ = f.SetColWidth(SampleSheet, "B", "B", 18)
	_ = f.SetColWidth(SampleSheet, "D", "D", 20)
	_ = f.SetColWidth(SampleSheet, "E", "E", 28)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
