// Package extractor turns a match report PDF into the raw text grids the
// parser consumes. It knows nothing about handball: it only clusters
// positioned text fragments into rows and cells.
package extractor

import (
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/nicobuchet/hb-data-analyst/internal/domain/report/parser"
)

// cellGap is the minimum horizontal distance, in PDF points, between the
// end of one fragment and the start of the next for them to be treated as
// separate cells. Report tables leave well over this between columns.
const cellGap = 6.0

// fragment is a positioned run of text on a page.
type fragment struct {
	x, w float64
	s    string
}

// ExtractTables reads every page of the PDF at path and returns one grid
// per page. Pages without text yield empty grids; deciding whether the
// document as a whole is usable is left to the caller.
func ExtractTables(path string) ([]parser.Grid, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	grids := make([]parser.Grid, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			grids = append(grids, parser.Grid{})
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("extracting text from page %d: %w", i, err)
		}

		grid := make(parser.Grid, 0, len(rows))
		for _, row := range rows {
			frags := make([]fragment, 0, len(row.Content))
			for _, t := range row.Content {
				frags = append(frags, fragment{x: t.X, w: t.W, s: t.S})
			}
			if cells := clusterCells(frags); len(cells) > 0 {
				grid = append(grid, cells)
			}
		}
		grids = append(grids, grid)
	}

	return grids, nil
}

// clusterCells merges horizontally adjacent fragments into cells. Fragments
// must already be ordered left to right, which GetTextByRow guarantees.
func clusterCells(frags []fragment) []string {
	if len(frags) == 0 {
		return nil
	}

	cells := make([]string, 0, len(frags))
	cur := frags[0].s
	end := frags[0].x + frags[0].w
	for _, fr := range frags[1:] {
		if fr.x-end > cellGap {
			cells = append(cells, cur)
			cur = fr.s
		} else {
			cur += fr.s
		}
		if e := fr.x + fr.w; e > end {
			end = e
		}
	}
	cells = append(cells, cur)
	return cells
}
