// Package xlsxfill finds and replaces {Field Name} placeholders in Excel
// templates.
//
// The placeholder logic works on plain Cell values and knows nothing about
// spreadsheets; the workbook functions load cells with excelize, run them
// through it and write changed values back with SetCellStr so styles, number
// formats and merges stay as they were.
package xlsxfill

import (
	"regexp"
	"sort"

	"exportdocs/internal/model"
)

var rePlaceholder = regexp.MustCompile(`\{([^{}\r\n]+)\}`)

// Cell is one text-bearing cell.
type Cell struct {
	Sheet string `json:"sheet"`
	Ref   string `json:"cell"`
	Value string `json:"value"`
}

// Placeholders returns the distinct placeholder names in text, in order of
// first appearance. Names are case-sensitive and kept verbatim.
func Placeholders(text string) []string {
	matches := rePlaceholder.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		out = append(out, m[1])
	}
	return out
}

// Replace substitutes every placeholder whose name is a key of rec and
// returns the new text with the number of tokens replaced. Unknown
// placeholders stay as literal text. Substituted values are not rescanned.
func Replace(text string, rec model.FieldRecord) (string, int) {
	n := 0
	out := rePlaceholder.ReplaceAllStringFunc(text, func(tok string) string {
		v, ok := rec[tok[1:len(tok)-1]]
		if !ok {
			return tok
		}
		n++
		return v
	})
	return out, n
}

// ScanCells returns the sorted distinct placeholder names found in cells.
func ScanCells(cells []Cell) []string {
	seen := map[string]struct{}{}
	for _, c := range cells {
		for _, name := range Placeholders(c.Value) {
			seen[name] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// FillCells returns the cells whose value changed, with their new value, and
// the total number of tokens replaced. The input is not modified.
func FillCells(cells []Cell, rec model.FieldRecord) ([]Cell, int) {
	changed := make([]Cell, 0)
	total := 0
	for _, c := range cells {
		v, n := Replace(c.Value, rec)
		if n == 0 {
			continue
		}
		total += n
		changed = append(changed, Cell{Sheet: c.Sheet, Ref: c.Ref, Value: v})
	}
	return changed, total
}
