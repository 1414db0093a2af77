package parser

import (
	"strconv"
	"strings"
)

// TeamSide identifies which club a record belongs to.
type TeamSide string

const (
	TeamHome TeamSide = "Home"
	TeamAway TeamSide = "Away"
)

// officialMarker flags staff rows: a cell like "Officiel A" instead of a
// player name.
const officialMarker = "Officiel"

// rosterHeaderLabel identifies the roster header row inside a club section.
const rosterHeaderLabel = "NOM prénom"

// PlayerStatRecord is one decoded roster row. Officials (coach/staff) are
// kept but their counting stats are meaningless placeholders.
type PlayerStatRecord struct {
	Team        TeamSide
	PlayerName  string
	IsOfficial  bool
	IsCaptain   bool
	Goals       int
	Shots       int
	Goals7m     int
	Saves       int
	YellowCards int
	TwoMinutes  int
	RedCards    int
	BlueCards   int
}

// rosterColumns maps each known header label to its column index, -1 when the
// label is absent from this report revision. Column identity is label-driven,
// not fixed-index: the federation layout shifts slightly between reports.
type rosterColumns struct {
	Name    int
	Number  int
	Captain int
	Goals   int
	Shots   int
	SevenM  int
	Saves   int
	Yellow  int
	TwoMin  int
	Disqual int
}

func newRosterColumns() rosterColumns {
	return rosterColumns{
		Name:    -1,
		Number:  -1,
		Captain: -1,
		Goals:   -1,
		Shots:   -1,
		SevenM:  -1,
		Saves:   -1,
		Yellow:  -1,
		TwoMin:  -1,
		Disqual: -1,
	}
}

// buildRosterColumns scans a header row's cells for the known label tokens.
// Labels that never appear leave their column at -1; fields drawing on an
// unmapped column decode to their zero value instead of failing the row.
func buildRosterColumns(header Row) rosterColumns {
	cols := newRosterColumns()
	for i := range header {
		switch v := header.Cell(i); {
		case strings.Contains(v, rosterHeaderLabel):
			cols.Name = i
		case v == "N°":
			cols.Number = i
		case v == "Capt":
			cols.Captain = i
		case v == "Buts":
			cols.Goals = i
		case v == "Tirs":
			cols.Shots = i
		case v == "7m":
			cols.SevenM = i
		case v == "Arrets":
			cols.Saves = i
		case v == "Av.":
			cols.Yellow = i
		case v == "2'":
			cols.TwoMin = i
		case v == "Dis":
			cols.Disqual = i
		}
	}
	return cols
}

// DecodeRoster decodes every player row of one club section. When the header
// row is never found the section is unreadable and an empty list is returned:
// one team's broken roster must not block the rest of the document.
func DecodeRoster(rows []Row, sec Section, side TeamSide) []PlayerStatRecord {
	headerIdx := -1
	for i := sec.Start; i < sec.End && i < len(rows); i++ {
		if strings.Contains(rows[i].Joined(), rosterHeaderLabel) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil
	}

	cols := buildRosterColumns(rows[headerIdx])

	var records []PlayerStatRecord
	for i := headerIdx + 1; i < sec.End && i < len(rows); i++ {
		if rec, ok := decodeRosterRow(rows[i], cols, side); ok {
			records = append(records, rec)
		}
	}
	return records
}

// decodeRosterRow applies the row decode rules. Blank name cells are expected
// padding, not data, and are skipped.
func decodeRosterRow(row Row, cols rosterColumns, side TeamSide) (PlayerStatRecord, bool) {
	name := row.Cell(cols.Name)
	if name == "" {
		return PlayerStatRecord{}, false
	}

	rec := PlayerStatRecord{
		Team:       side,
		PlayerName: name,
		Goals:      atoiOrZero(row.Cell(cols.Goals)),
		Shots:      atoiOrZero(row.Cell(cols.Shots)),
		Goals7m:    atoiOrZero(row.Cell(cols.SevenM)),
		Saves:      atoiOrZero(row.Cell(cols.Saves)),
		TwoMinutes: atoiOrZero(row.Cell(cols.TwoMin)),
	}

	// A missing shirt number is the primary signal for an official row.
	if strings.Contains(name, officialMarker) {
		rec.IsOfficial = true
	} else if cols.Number >= 0 && row.Cell(cols.Number) == "" {
		rec.IsOfficial = true
	}

	rec.IsCaptain = cols.Captain >= 0 && strings.EqualFold(row.Cell(cols.Captain), "X")
	if cols.Yellow >= 0 && strings.EqualFold(row.Cell(cols.Yellow), "X") {
		rec.YellowCards = 1
	}

	// A third 2-minute suspension converts to a red card; an explicit
	// disqualification code always wins. "D" is a direct disqualification,
	// "R" a disqualification with written report (red + blue card).
	if rec.TwoMinutes >= 3 {
		rec.RedCards = 1
	}
	if cols.Disqual >= 0 {
		switch strings.ToUpper(row.Cell(cols.Disqual)) {
		case "D":
			rec.RedCards = 1
		case "R":
			rec.RedCards = 1
			rec.BlueCards = 1
		}
	}

	return rec, true
}

// atoiOrZero parses a stat cell, defaulting to 0 on emptiness or parse
// failure. Absence of a stat column is never an error: it reads as "did not
// participate in that stat category".
func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
