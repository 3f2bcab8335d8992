package xlsxfill

import "exportdocs/internal/model"

// BatchItem is one record to fill, identified by Key (usually the invoice number).
type BatchItem struct {
	Key    string
	Record model.FieldRecord
}

// BatchResult is the outcome of one BatchItem. Err is set instead of Output on failure.
type BatchResult struct {
	Key    string
	Output []byte
	Report Report
	Err    error
}

// FillBatch fills template once per item, sequentially. Every fill starts
// from the same pristine template bytes, so one item's values never leak into
// another's output, and a failing item does not stop the rest.
func FillBatch(template []byte, items []BatchItem, opts Options) []BatchResult {
	out := make([]BatchResult, 0, len(items))
	for _, it := range items {
		data, report, err := Fill(template, it.Record, opts)
		out = append(out, BatchResult{Key: it.Key, Output: data, Report: report, Err: err})
	}
	return out
}
