package extract

import (
	"regexp"
	"strconv"
	"strings"

	"exportdocs/internal/model"
)

var (
	reInvoiceNumber = regexp.MustCompile(`(?i)\bInvoice\s+(?:Number|No)\.?\s*:\s*([A-Z0-9\-/]+)`)
	reDateNumeric   = regexp.MustCompile(`(?i)\bDate\s*:\s*([0-3]?\d[/\-][01]?\d[/\-]\d{4})`)
	reDateWords     = regexp.MustCompile(`(?i)\bDate\s*:\s*([A-Za-z]+\.? \d{1,2},\s*\d{4})`)
	reRefPO         = regexp.MustCompile(`(?i)\bReference\s+PO#\s*:\s*(\d{7,})`)
	rePO            = regexp.MustCompile(`(?i)\bPO\s*(?:NO\.?|NUMBER|#)?\s*[:#.]?\s*(\d{7,})`)
	reReferenceTail = regexp.MustCompile(`(?i)Reference\s*$`)
	rePOLabelNo     = regexp.MustCompile(`(?i)^PO\s*NO\b`)
	reItemSeq       = regexp.MustCompile(`(?i)\bItem\s+Seq\.?\s*:\s*([A-Z0-9]+)`)
	reMaterial      = regexp.MustCompile(`(?i)\bMaterial\s*:\s*([A-Z0-9\-]+)`)
	reDesc          = regexp.MustCompile(`(?i)\bDesc\s*:\s*([^\n]+)`)
	reShipTo        = regexp.MustCompile(`(?i)\bCustomer\s+Ship\s+To\s*:?\s*#?\s*:?\s*(\d{6,})`)
	rePlant         = regexp.MustCompile(`(?i)\bPlant\s*:\s*([A-Z0-9\-]+)`)
	reGrossKgs      = regexp.MustCompile(`(?i)\bTotal\s+Gross\s+Kgs\s*:\s*([\d.,]+)`)
	reCartons       = regexp.MustCompile(`(?i)\bTotal\s+Cartons\s*:\s*([\d.,]+)`)
	reUnits         = regexp.MustCompile(`(?i)\bTotal\s+Units\s*:\s*([\d.,]+)`)
	reDestination   = regexp.MustCompile(`(?i)\bDestination\s*:\s*([^\n]+)`)
)

func firstGroup(re *regexp.Regexp, text string) string {
	if m := re.FindStringSubmatch(text); m != nil {
		return norm(m[1])
	}
	return ""
}

// poNumbers returns PO numbers, those labelled "PO NO." first, each group in
// document order. Hits that are really the tail of a "Reference PO#" label
// are skipped.
func poNumbers(text string) []string {
	var labelled, other []string
	for _, loc := range rePO.FindAllStringSubmatchIndex(text, -1) {
		if reReferenceTail.MatchString(text[:loc[0]]) {
			continue
		}
		po := text[loc[2]:loc[3]]
		if rePOLabelNo.MatchString(text[loc[0]:loc[2]]) {
			labelled = append(labelled, po)
		} else {
			other = append(other, po)
		}
	}
	return append(labelled, other...)
}

func extractPL(text string) model.FieldRecord {
	rec := model.FieldRecord{}
	if strings.TrimSpace(text) == "" {
		return rec
	}

	rec.Set(model.FieldInvoiceNumber, firstGroup(reInvoiceNumber, text))

	date := firstGroup(reDateNumeric, text)
	if date == "" {
		date = firstGroup(reDateWords, text)
	}
	rec.Set(model.FieldDate, toDMY(date))

	pos := poNumbers(text)
	if len(pos) > 0 {
		rec.Set(model.FieldPO, pos[0])
	}
	if ref := firstGroup(reRefPO, text); ref != "" {
		rec.Set(model.FieldReferencePO, ref)
	} else if len(pos) > 0 {
		rec.Set(model.FieldReferencePO, pos[0])
	}

	rec.Set(model.FieldItemSeq, firstGroup(reItemSeq, text))
	rec.Set(model.FieldMaterial, firstGroup(reMaterial, text))
	rec.Set(model.FieldDesc, cutAtLabel(firstGroup(reDesc, text)))
	rec.Set(model.FieldCustomerShipTo, firstGroup(reShipTo, text))
	rec.Set(model.FieldPlant, firstGroup(rePlant, text))

	if v, ok := parseDecimal(firstGroup(reGrossKgs, text)); ok {
		rec.Set(model.FieldTotalGrossKgs, v)
	}
	if n, ok := parseCount(firstGroup(reCartons, text)); ok {
		rec.Set(model.FieldTotalCartons, strconv.FormatInt(n, 10))
	}
	if n, ok := parseCount(firstGroup(reUnits, text)); ok {
		rec.Set(model.FieldTotalUnits, strconv.FormatInt(n, 10))
	}

	marks := extractMarks(text)
	rec.Set(model.FieldMarks, strings.ToUpper(marks))

	dest := cutAtLabel(firstGroup(reDestination, text))
	if dest == "" {
		dest = destFromMarks(marks)
	}
	rec.Set(model.FieldDest, dest)
	rec.Set(model.FieldDestination, dest)

	derive(rec)
	return rec
}

// derive fills fields computed from other fields.
func derive(rec model.FieldRecord) {
	if _, ok := rec.Get(model.FieldCartonsInWords); ok {
		return
	}
	if v, ok := rec.Get(model.FieldTotalCartons); ok {
		if n, ok := parseCount(v); ok {
			rec.Set(model.FieldCartonsInWords, Words(n))
		}
	}
}
