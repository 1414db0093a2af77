package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// ActionEntry is one timeline entry before token parsing. RawText keeps the
// undecoded action token for diagnostic traceability.
type ActionEntry struct {
	Period  int
	Clock   string
	Score   string
	RawText string
}

var clockRe = regexp.MustCompile(`^\d+:\d+$`)

// DecodeTimeline walks the match-timeline section. Each physical row can hold
// two unrelated entries side by side, a left block at cells 0-3 and a right
// block at cells 4-7, because the printed report lays out two chronological
// columns per row. Left and right are decoded independently and emitted left
// before right, rows in document order. That order approximates chronology
// but is not guaranteed time-sorted; Clock is kept so consumers can re-sort.
func DecodeTimeline(rows []Row, sec Section) []ActionEntry {
	if sec.Start < 0 {
		return nil
	}

	var entries []ActionEntry
	for i := sec.Start + 1; i < sec.End && i < len(rows); i++ {
		row := rows[i]

		// Left block: the overflow cell 3 is only action spill when it does
		// not itself hold a clock value.
		left := row.Cell(2)
		if extra := row.Cell(3); extra != "" && !strings.Contains(extra, ":") {
			left = left + " " + extra
		}
		if e, ok := decodeTimelineEntry(row.Cell(0), row.Cell(1), left); ok {
			entries = append(entries, e)
		}

		if len(row) > 4 {
			right := row.Cell(6)
			if extra := row.Cell(7); extra != "" {
				right = right + " " + extra
			}
			if e, ok := decodeTimelineEntry(row.Cell(4), row.Cell(5), right); ok {
				entries = append(entries, e)
			}
		}
	}
	return entries
}

// decodeTimelineEntry validates one side of a timeline row. The clock cell
// must look like "MM:SS"; the literal "Temps" header and blank cells fail
// that test and skip the side. Entries whose action text is empty after
// stripping line breaks are skipped too.
func decodeTimelineEntry(clock, score, action string) (ActionEntry, bool) {
	if clock == "" || clock == "Temps" || !clockRe.MatchString(clock) {
		return ActionEntry{}, false
	}

	action = strings.ReplaceAll(action, "\n", "")
	action = strings.TrimSpace(strings.ReplaceAll(action, "\r", ""))
	if action == "" {
		return ActionEntry{}, false
	}

	return ActionEntry{
		Period:  periodForClock(clock),
		Clock:   clock,
		Score:   score,
		RawText: action,
	}, true
}

// periodForClock classifies a clock into match halves: minutes >= 30 is
// period 2. Handball halves are nominally 30 minutes, so this is a heuristic
// that can misfile overtime entries; unparseable minutes default to period 1.
func periodForClock(clock string) int {
	minutes, err := strconv.Atoi(clock[:strings.Index(clock, ":")])
	if err != nil {
		return 1
	}
	if minutes >= 30 {
		return 2
	}
	return 1
}
