package extract

import (
	"regexp"
	"sort"
	"strings"

	"exportdocs/internal/model"
)

var (
	reBookingRowNike  = regexp.MustCompile(`(?i)\bNIKE\s+\d{7,}(?:-\d+)?\s+([A-Z][A-Z0-9 /&\-]{2,})\s+\d+\s+\d+\s+\d+(?:\.\d+)?`)
	reBookingRow      = regexp.MustCompile(`(?i)\b\d{7,}(?:-\d+)?\s+([A-Z][A-Z0-9 /&\-]{2,})\s+\d+\s+\d+\s+\d+(?:\.\d+)?`)
	reBookingDescLbl  = regexp.MustCompile(`(?i)\bDESCRIPTION\s*[:：]?\s*([A-Z][A-Z0-9 /&\-]{2,})`)
	reBookingInvoice  = regexp.MustCompile(`\bA\d{6,8}[A-Z]?\b`)
	reDescQuantities  = regexp.MustCompile(`\b\d+[A-Z]*\b`)
	reDescNonAlpha    = regexp.MustCompile(`[^A-Z ]`)
	canonicalProducts = []struct {
		re   *regexp.Regexp
		name string
	}{
		{regexp.MustCompile(`\bSKULL CAP\b`), "SKULL CAP"},
		{regexp.MustCompile(`\bSCULL CAP\b`), "SKULL CAP"},
		{regexp.MustCompile(`\bHAT\b`), "HAT"},
		{regexp.MustCompile(`\bCAP\b`), "CAP"},
		{regexp.MustCompile(`\bBEANIE\b`), "BEANIE"},
	}
	descPriority = map[string]int{"SKULL CAP": 0, "HAT": 1, "CAP": 2}
)

func cleanDesc(d string) string {
	d = strings.ToUpper(norm(d))
	d = reDescQuantities.ReplaceAllString(d, "")
	d = reDescNonAlpha.ReplaceAllString(d, " ")
	d = norm(d)
	for _, p := range canonicalProducts {
		if p.re.MatchString(d) {
			return p.name
		}
	}
	return d
}

// InvoiceNumbers returns the distinct booking invoice numbers (A + 6–8
// digits) found in s, sorted.
func InvoiceNumbers(s string) []string {
	seen := map[string]struct{}{}
	for _, m := range reBookingInvoice.FindAllString(strings.ToUpper(s), -1) {
		seen[m] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func bookingDescriptions(text string) []string {
	flat := strings.NewReplacer("\u00a0", " ", "\n", " ").Replace(text)
	seen := map[string]struct{}{}
	add := func(raw string) {
		if d := cleanDesc(raw); d != "" {
			seen[d] = struct{}{}
		}
	}
	for _, re := range []*regexp.Regexp{reBookingRowNike, reBookingRow} {
		for _, m := range re.FindAllStringSubmatch(flat, -1) {
			add(m[1])
		}
	}
	for _, m := range reBookingDescLbl.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}

	out := make([]string, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		pi, ok := descPriority[out[i]]
		if !ok {
			pi = len(descPriority)
		}
		pj, ok := descPriority[out[j]]
		if !ok {
			pj = len(descPriority)
		}
		if pi != pj {
			return pi < pj
		}
		return out[i] < out[j]
	})
	return out
}

func extractBooking(text string) model.FieldRecord {
	rec := model.FieldRecord{}
	if strings.TrimSpace(text) == "" {
		return rec
	}
	if descs := bookingDescriptions(text); len(descs) > 0 {
		rec.Set(model.FieldDescription, descs[0])
	}
	if invs := InvoiceNumbers(text); len(invs) > 0 {
		rec.Set(model.FieldInvoiceNumber, invs[0])
	}
	return rec
}
