package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var reSpaces = regexp.MustCompile(`\s+`)

func norm(s string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

var dateLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan. 2, 2006",
}

// toDMY renders a recognized date as dd/mm/yyyy. Unrecognized input is
// returned unchanged rather than dropped.
func toDMY(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	cleaned := strings.ReplaceAll(norm(s), " ,", ",")
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return fmt.Sprintf("%02d/%02d/%d", t.Day(), int(t.Month()), t.Year())
		}
	}
	return s
}

func stripNumber(s string) string {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	return strings.TrimRight(s, ".")
}

// parseCount parses carton and unit counts. Fractions are truncated.
func parseCount(s string) (int64, bool) {
	s = stripNumber(s)
	if s == "" {
		return 0, false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int64(f), true
}

// parseDecimal strips thousands separators and keeps the digits as written.
func parseDecimal(s string) (string, bool) {
	s = stripNumber(s)
	if s == "" {
		return "", false
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return "", false
	}
	return s, true
}

// reNextLabel finds the label that ends a free-text value running on to the next field.
var reNextLabel = regexp.MustCompile(`(?i)\b(?:Total\s+Net\s+Kgs|Total\s+Gross\s+Kgs|Total\s+Cartons|Total\s+Units|Total\s+CBM|Reference\s+PO#|Plant|Item\s+Seq\.?|Customer\s+Ship\s+To|Material|Invoice\s+Number|Country\s+Of\s+Origin|Destination|PO\s*(?:NO\.?|#)|Date)\s*:`)

func cutAtLabel(s string) string {
	if loc := reNextLabel.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}
	return strings.TrimRight(norm(s), " .,;:")
}
