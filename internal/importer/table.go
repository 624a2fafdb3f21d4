package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// table is a delimited export with a header row.
type table struct {
	cols map[string]int
	rows [][]string
	// firstLine is the 1-based source line of the header, for error rows.
	firstLine int
}

// readTable reads a delimited export whose first record is the header.
func readTable(r io.Reader, comma rune, firstLine int) (*table, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, structureError("reading delimited export: %w", err)
	}
	if len(records) == 0 {
		return nil, structureError("missing header row")
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF"))
		if name != "" {
			cols[name] = i
		}
	}
	return &table{cols: cols, rows: records[1:], firstLine: firstLine}, nil
}

// require fails with a ParseError if any column is missing from the header.
func (t *table) require(names ...string) error {
	var missing []string
	for _, n := range names {
		if _, ok := t.cols[n]; !ok {
			missing = append(missing, fmt.Sprintf("%q", n))
		}
	}
	if len(missing) > 0 {
		return structureError("header is missing columns %s", strings.Join(missing, ", "))
	}
	return nil
}

// line returns the source line of data row i.
func (t *table) line(i int) int {
	return t.firstLine + i + 1
}

// record returns data row i for named access.
func (t *table) record(i int) record {
	return record{cells: t.rows[i], cols: t.cols}
}

// record is one data row of a table.
type record struct {
	cells []string
	cols  map[string]int
}

// get returns the named cell, or "" when the column or cell is absent.
func (r record) get(name string) string {
	i, ok := r.cols[name]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return r.cells[i]
}

// cell returns the positional cell i of a raw row, or "".
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// dropLines removes head leading lines and tail trailing lines of text.
// Trailing blank lines are ignored when counting the tail.
func dropLines(text string, head, tail int) string {
	lines := strings.Split(text, "\n")
	if head >= len(lines) {
		return ""
	}
	lines = lines[head:]
	if tail > 0 {
		for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
			lines = lines[:len(lines)-1]
		}
		if tail >= len(lines) {
			return ""
		}
		lines = lines[:len(lines)-tail]
	}
	return strings.Join(lines, "\n")
}
