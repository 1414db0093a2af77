package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timelineRows(rows ...Row) ([]Row, Section) {
	all := append([]Row{{"Déroulé du Match"}}, rows...)
	return all, Section{Start: 0, End: len(all)}
}

func TestDecodeTimeline(t *testing.T) {
	t.Run("decodes left and right blocks in order", func(t *testing.T) {
		rows, sec := timelineRows(
			Row{"02:10", "1-0", "ButJRN°18JUQUELloic", "", "31:05", "12-11", "TirJVN°15MONIERalan", ""},
		)

		entries := DecodeTimeline(rows, sec)

		require.Len(t, entries, 2)
		assert.Equal(t, "02:10", entries[0].Clock)
		assert.Equal(t, 1, entries[0].Period)
		assert.Equal(t, "1-0", entries[0].Score)
		assert.Equal(t, "ButJRN°18JUQUELloic", entries[0].RawText)
		assert.Equal(t, "31:05", entries[1].Clock)
		assert.Equal(t, 2, entries[1].Period)
	})

	t.Run("period boundary is exactly 30 minutes", func(t *testing.T) {
		rows, sec := timelineRows(
			Row{"29:59", "15-14", "ButJRN°18JUQUELloic"},
			Row{"30:00", "15-15", "ButJVN°15MONIERalan"},
		)

		entries := DecodeTimeline(rows, sec)

		require.Len(t, entries, 2)
		assert.Equal(t, 1, entries[0].Period)
		assert.Equal(t, 2, entries[1].Period)
	})

	t.Run("skips header labels and blank clocks", func(t *testing.T) {
		rows, sec := timelineRows(
			Row{"Temps", "Score", "Action", "", "Temps", "Score", "Action", ""},
			Row{"", "", "", "", "", "", "", ""},
			Row{"05:00", "2-0", "ButJRN°7DURANDluc", ""},
		)

		entries := DecodeTimeline(rows, sec)

		require.Len(t, entries, 1)
		assert.Equal(t, "05:00", entries[0].Clock)
	})

	t.Run("appends left overflow cell unless it holds a clock", func(t *testing.T) {
		rows, sec := timelineRows(
			Row{"12:30", "5-3", "TempsMort", "d'EquipeVisiteur"},
			Row{"13:00", "5-4", "ButJRN°9LEROYmax", "14:10"},
		)

		entries := DecodeTimeline(rows, sec)

		require.Len(t, entries, 2)
		assert.Equal(t, "TempsMort d'EquipeVisiteur", entries[0].RawText)
		assert.Equal(t, "ButJRN°9LEROYmax", entries[1].RawText)
	})

	t.Run("strips line breaks and drops empty action text", func(t *testing.T) {
		rows, sec := timelineRows(
			Row{"20:00", "8-6", "But\nJRN°18\nJUQUELloic"},
			Row{"21:00", "8-7", "  "},
		)

		entries := DecodeTimeline(rows, sec)

		require.Len(t, entries, 1)
		assert.Equal(t, "ButJRN°18JUQUELloic", entries[0].RawText)
	})

	t.Run("absent section yields no entries", func(t *testing.T) {
		entries := DecodeTimeline([]Row{{"05:00", "1-0", "ButJR"}}, Section{Start: -1, End: -1})
		assert.Empty(t, entries)
	})
}
