// Package parser decodes the table grids extracted from a federation match
// report into structured data: match metadata, per-player statistics and the
// chronological action log. The report layout is fixed but irregular, so most
// of the work here is locating anchor rows and resolving label-driven columns.
package parser

import (
	"errors"
	"strings"
)

// ErrNoTables indicates the extraction layer produced no table rows at all.
// The document cannot be processed further.
var ErrNoTables = errors.New("no tables found in document")

// ErrAnchorMissing indicates a mandatory section anchor was not found.
var ErrAnchorMissing = errors.New("mandatory anchor not found")

// Grid is one extracted table region: rows of cell text in document order.
type Grid [][]string

// Row is one row of a flattened grid.
type Row []string

// Flatten concatenates all grids' rows in document order into a single row
// sequence. Row and cell order are preserved exactly as supplied; anchors
// downstream rely on absolute and relative row indices, so nothing is
// reordered or trimmed.
func Flatten(grids []Grid) ([]Row, error) {
	total := 0
	for _, g := range grids {
		total += len(g)
	}
	if total == 0 {
		return nil, ErrNoTables
	}

	rows := make([]Row, 0, total)
	for _, g := range grids {
		for _, r := range g {
			rows = append(rows, Row(r))
		}
	}
	return rows, nil
}

// Cell returns the trimmed cell at index i, or "" when the index is out of
// range. Rows vary in width between report revisions, so all cell access goes
// through this bounds-safe accessor.
func (r Row) Cell(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[i])
}

// Joined returns the row's cells joined with single spaces, used for anchor
// substring matching across cell boundaries.
func (r Row) Joined() string {
	return strings.Join(r, " ")
}
