// Package extract derives export-document fields from the text layer of
// packing-list (PL) and booking documents.
//
// Extraction never fails: a rule that does not match leaves its field absent
// and callers learn what is missing through Missing.
package extract

import (
	"fmt"
	"strings"

	"exportdocs/internal/model"
)

// Kind selects the rule set applied to a document.
type Kind string

const (
	KindPL      Kind = "PL"
	KindBooking Kind = "BOOKING"
)

// ParseKind accepts the kind names case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PL", "PACKING LIST", "PACKING_LIST":
		return KindPL, nil
	case "BOOKING", "ASI":
		return KindBooking, nil
	}
	return "", fmt.Errorf("unknown document kind %q", s)
}

// Extract applies the rule set for kind to text.
func Extract(text string, kind Kind) model.FieldRecord {
	switch kind {
	case KindPL:
		return extractPL(text)
	case KindBooking:
		return extractBooking(text)
	}
	return model.FieldRecord{}
}

// ExtractPair extracts both documents of an invoice and merges them.
// Either text may be empty.
func ExtractPair(plText, bookingText string) model.FieldRecord {
	return Merge(Extract(plText, KindPL), Extract(bookingText, KindBooking))
}

// Missing returns the required fields that are absent or empty, in the order given.
func Missing(rec model.FieldRecord, required []string) []string {
	out := make([]string, 0)
	for _, name := range required {
		if _, ok := rec.Get(name); !ok {
			out = append(out, name)
		}
	}
	return out
}
