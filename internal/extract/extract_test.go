package extract

import (
	"math"
	"strings"
	"testing"

	"exportdocs/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePL = `PACKING LIST
Invoice Number.: 0098765432
Date: 15/08/2025
Reference PO#: 4500999888
PO NO. 4500123456
Item Seq.: 00010
Material: FD5183-010
Desc: NIKE PEAK BEANIE Plant: 1098
Customer Ship To #: 0080123456
Total Gross Kgs: 1,234.50
Total Cartons: 1,200
Total Units: 14,400
NOCAB SHIPPING MARKS: NIKE
PO 4500123456 C/NO 1-1200
Canada
Country Of Origin: Vietnam
`

const sampleBooking = `BOOKING CONFIRMATION
Invoice: A1234567
NIKE 4500123456 KNIT CAP 12 240 118.5
4500123457 SKULL CAP 2PCS 6 120 60.0
`

func TestExtract_PLScenario(t *testing.T) {
	rec := Extract("PO NO. 4500123456 ... DESTINATION: VIETNAM ... TOTAL CARTONS: 120", KindPL)

	assert.Equal(t, model.FieldRecord{
		model.FieldPO:             "4500123456",
		model.FieldReferencePO:    "4500123456",
		model.FieldDest:           "VIETNAM",
		model.FieldDestination:    "VIETNAM",
		model.FieldTotalCartons:   "120",
		model.FieldCartonsInWords: "One Hundred Twenty",
	}, rec)
}

func TestExtract_PLFullDocument(t *testing.T) {
	rec := Extract(samplePL, KindPL)

	tests := map[string]string{
		model.FieldInvoiceNumber:  "0098765432",
		model.FieldDate:           "15/08/2025",
		model.FieldReferencePO:    "4500999888",
		model.FieldPO:             "4500123456",
		model.FieldItemSeq:        "00010",
		model.FieldMaterial:       "FD5183-010",
		model.FieldDesc:           "NIKE PEAK BEANIE",
		model.FieldCustomerShipTo: "0080123456",
		model.FieldPlant:          "1098",
		model.FieldTotalGrossKgs:  "1234.50",
		model.FieldTotalCartons:   "1200",
		model.FieldCartonsInWords: "One Thousand Two Hundred",
		model.FieldTotalUnits:     "14400",
		model.FieldMarks:          "NIKE PO 4500123456 C/NO 1-1200 CANADA COUNTRY OF ORIGIN: VIETNAM",
		model.FieldDest:           "Canada",
		model.FieldDestination:    "Canada",
	}
	for field, want := range tests {
		t.Run(field, func(t *testing.T) {
			got, ok := rec.Get(field)
			require.True(t, ok, "field %q missing", field)
			assert.Equal(t, want, got)
		})
	}
}

func TestExtract_POVariants(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"po no dot", "PO NO. 4500000001", "4500000001"},
		{"po hash", "PO# 4500000002", "4500000002"},
		{"po colon", "po: 4500000003", "4500000003"},
		{"reference only", "Reference PO#: 4500000004", ""},
		{"too short", "PO NO. 12345", ""},
		{"labelled wins over earlier generic", "Customer PO 1234567\nPO NO. 4500123456", "4500123456"},
		{"first labelled wins", "PO NO. 4500000005\nPO NO. 4500000006", "4500000005"},
		{"generic fallback", "Customer PO 1234567\nReference PO#: 4500000004", "1234567"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := Extract(tt.text, KindPL).Get(model.FieldPO)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_Booking(t *testing.T) {
	rec := Extract(sampleBooking, KindBooking)

	assert.Equal(t, "SKULL CAP", rec[model.FieldDescription])
	assert.Equal(t, "A1234567", rec[model.FieldInvoiceNumber])
}

func TestExtract_BookingDescriptionLabel(t *testing.T) {
	rec := Extract("Description: Bucket Hat 2025", KindBooking)
	assert.Equal(t, "HAT", rec[model.FieldDescription])
}

func TestExtract_EmptyAndGarbage(t *testing.T) {
	for _, kind := range []Kind{KindPL, KindBooking, Kind("OTHER")} {
		assert.NotPanics(t, func() {
			assert.Empty(t, Extract("", kind))
			Extract("\x00\x01 %PDF-1.7 ::: Date: : PO NO.", kind)
		})
	}
}

func TestExtractPair(t *testing.T) {
	rec := ExtractPair(samplePL, sampleBooking)

	// PL keeps the invoice number it has; booking owns the description.
	assert.Equal(t, "0098765432", rec[model.FieldInvoiceNumber])
	assert.Equal(t, "SKULL CAP", rec[model.FieldDescription])
	assert.Equal(t, "NIKE PEAK BEANIE", rec[model.FieldDesc])
	assert.Equal(t, "One Thousand Two Hundred", rec[model.FieldCartonsInWords])
}

func TestExtractPair_BookingOnly(t *testing.T) {
	rec := ExtractPair("", sampleBooking)
	assert.Equal(t, "A1234567", rec[model.FieldInvoiceNumber])
	assert.Equal(t, []string{model.FieldPO}, Missing(rec, []string{model.FieldInvoiceNumber, model.FieldPO}))
}

func TestMerge(t *testing.T) {
	pl := model.FieldRecord{
		model.FieldPO:           "4500000001",
		model.FieldDescription:  "BEANIE",
		model.FieldTotalCartons: "5",
	}
	booking := model.FieldRecord{
		model.FieldPO:            "4500000002",
		model.FieldDescription:   "HAT",
		model.FieldInvoiceNumber: "A1234567",
		model.FieldPlant:         "",
	}

	out := Merge(pl, booking)

	assert.Equal(t, model.FieldRecord{
		model.FieldPO:             "4500000001",
		model.FieldDescription:    "HAT",
		model.FieldInvoiceNumber:  "A1234567",
		model.FieldTotalCartons:   "5",
		model.FieldCartonsInWords: "Five",
	}, out)
	assert.Equal(t, "BEANIE", pl[model.FieldDescription], "input must not change")
	assert.NotContains(t, pl, model.FieldCartonsInWords)
}

func TestWords(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "Zero"},
		{1, "One"},
		{13, "Thirteen"},
		{20, "Twenty"},
		{21, "Twenty One"},
		{100, "One Hundred"},
		{120, "One Hundred Twenty"},
		{1000, "One Thousand"},
		{1001, "One Thousand One"},
		{1200, "One Thousand Two Hundred"},
		{1_000_000, "One Million"},
		{1_234_567, "One Million Two Hundred Thirty Four Thousand Five Hundred Sixty Seven"},
		{-5, "Minus Five"},
		{math.MaxInt64, "Nine Quintillion Two Hundred Twenty Three Quadrillion Three Hundred Seventy Two Trillion Thirty Six Billion Eight Hundred Fifty Four Million Seven Hundred Seventy Five Thousand Eight Hundred Seven"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Words(tt.n))
		})
	}

	assert.NotPanics(t, func() {
		got := Words(math.MinInt64)
		assert.True(t, strings.HasPrefix(got, "Minus Nine Quintillion"))
		assert.True(t, strings.HasSuffix(got, "Eight Hundred Eight"))
	})
}

func TestToDMY(t *testing.T) {
	tests := map[string]string{
		"15/08/2025":     "15/08/2025",
		"5/8/2025":       "05/08/2025",
		"15-08-2025":     "15/08/2025",
		"Aug 15, 2025":   "15/08/2025",
		"August 5, 2025": "05/08/2025",
		"not a date":     "not a date",
		"":               "",
	}
	for in, want := range tests {
		assert.Equal(t, want, toDMY(in), in)
	}
}

func TestParseNumbers(t *testing.T) {
	n, ok := parseCount("1,200")
	assert.True(t, ok)
	assert.Equal(t, int64(1200), n)

	n, ok = parseCount("12.9")
	assert.True(t, ok)
	assert.Equal(t, int64(12), n)

	_, ok = parseCount("n/a")
	assert.False(t, ok)

	v, ok := parseDecimal("12,345.670")
	assert.True(t, ok)
	assert.Equal(t, "12345.670", v)
}

func TestDestFromMarks(t *testing.T) {
	assert.Equal(t, "Vietnam", destFromMarks("NIKE Viet Nam Country Of Origin: China"))
	assert.Equal(t, "Belgium", destFromMarks("NIKE EUROPE Laakdal Belgium"))
	assert.Equal(t, "", destFromMarks(""))
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("packing list")
	require.NoError(t, err)
	assert.Equal(t, KindPL, k)

	k, err = ParseKind("Booking")
	require.NoError(t, err)
	assert.Equal(t, KindBooking, k)

	_, err = ParseKind("invoice")
	assert.Error(t, err)
}

func TestInvoiceNumbers(t *testing.T) {
	got := InvoiceNumbers("a7654321 A1234567X A1234567X B1234567 A12345")
	assert.Equal(t, []string{"A1234567X", "A7654321"}, got)
}
