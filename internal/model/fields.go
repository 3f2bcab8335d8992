package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Canonical field names. They double as the placeholder vocabulary of the
// export templates and are matched case-sensitively.
const (
	FieldInvoiceNumber  = "Invoice Number"
	FieldDate           = "Date"
	FieldPO             = "PO"
	FieldReferencePO    = "Reference PO#"
	FieldItemSeq        = "Item Seq."
	FieldMaterial       = "Material"
	FieldDesc           = "Desc"
	FieldDescription    = "DESCRIPTION"
	FieldMarks          = "Marks"
	FieldDest           = "DEST"
	FieldDestination    = "Destination"
	FieldTotalCartons   = "Total Cartons"
	FieldCartonsInWords = "Total Cartons In Words"
	FieldPlant          = "Plant"
	FieldCustomerShipTo = "Customer Ship To #"
	FieldTotalGrossKgs  = "Total Gross Kgs"
	FieldTotalUnits     = "Total Units"
)

// PlaceholderVocabulary is the fixed set of names templates are expected to use.
var PlaceholderVocabulary = []string{
	FieldInvoiceNumber,
	FieldDate,
	FieldPO,
	FieldReferencePO,
	FieldMaterial,
	FieldDescription,
	FieldMarks,
	FieldDest,
	FieldTotalCartons,
	FieldCartonsInWords,
	FieldPlant,
	FieldCustomerShipTo,
	FieldTotalGrossKgs,
	FieldTotalUnits,
}

var knownFields = func() map[string]bool {
	m := make(map[string]bool, len(PlaceholderVocabulary)+3)
	for _, f := range PlaceholderVocabulary {
		m[f] = true
	}
	for _, f := range []string{FieldItemSeq, FieldDesc, FieldDestination} {
		m[f] = true
	}
	return m
}()

// IsKnownField reports whether the extractor can produce name.
func IsKnownField(name string) bool { return knownFields[name] }

// FieldRecord maps field names to their normalized, stringified values.
// Absent keys mean the field was not found; values are never fabricated.
type FieldRecord map[string]string

// Get returns the value of name and whether it is present and non-empty.
func (r FieldRecord) Get(name string) (string, bool) {
	v, ok := r[name]
	return v, ok && v != ""
}

// Set stores v under name; empty values are dropped.
func (r FieldRecord) Set(name, v string) {
	if v == "" {
		return
	}
	r[name] = v
}

// Clone returns an independent copy.
func (r FieldRecord) Clone() FieldRecord {
	out := make(FieldRecord, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Keys returns the field names in sorted order.
func (r FieldRecord) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Overlay returns a copy of r with every non-empty value of other applied on top.
func (r FieldRecord) Overlay(other FieldRecord) FieldRecord {
	out := r.Clone()
	for k, v := range other {
		out.Set(k, v)
	}
	return out
}

// UnmarshalJSON accepts string, number and boolean values and stores them as
// text. Numbers keep their JSON spelling; null values are skipped.
func (r *FieldRecord) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*r = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	out := make(FieldRecord, len(raw))
	for k, v := range raw {
		switch x := v.(type) {
		case nil:
		case string:
			out[k] = x
		case json.Number:
			out[k] = x.String()
		case bool:
			out[k] = strconv.FormatBool(x)
		default:
			return fmt.Errorf("field %q: value must be a string, number or boolean", k)
		}
	}
	*r = out
	return nil
}
