package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MatchInfo is the per-document match metadata. Optional fields are pointers:
// nil means "not found in the report" and must propagate as NULL to storage.
// A zero score is a real value and is never used as an absence marker.
type MatchInfo struct {
	HomeTeam        string
	AwayTeam        string
	MatchDate       *time.Time
	LeagueName      *string
	LeagueGroupID   *string
	LeagueGroupName *string
	Season          *string
	HTScoreHome     *int
	HTScoreAway     *int
	FinalScoreHome  *int
	FinalScoreAway  *int
}

var (
	dateRe    = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})`)
	groupIDRe = regexp.MustCompile(`^M\d+$`)
)

// competitionLabels are layout tokens inside the competition cell that carry
// no data of their own.
var competitionLabels = map[string]bool{
	"Compétition": true,
	"Competition": true,
	"Groupe":      true,
	"Group":       true,
}

// ExtractMatchInfo pulls match metadata out of the anchor rows. Every
// optional field is attempted independently and left nil when absent; the
// only failure is an empty team name on either side, which makes the whole
// document unusable.
func ExtractMatchInfo(rows []Row, anchors Anchors) (*MatchInfo, error) {
	info := &MatchInfo{
		HomeTeam: rows[anchors.HomeClub].Cell(1),
		AwayTeam: rows[anchors.AwayClub].Cell(1),
	}
	if info.HomeTeam == "" {
		return nil, fmt.Errorf("%w: empty home team name", ErrAnchorMissing)
	}
	if info.AwayTeam == "" {
		return nil, fmt.Errorf("%w: empty away team name", ErrAnchorMissing)
	}

	if anchors.Competition >= 0 {
		extractCompetition(rows[anchors.Competition].Cell(0), info)
	}
	if anchors.Season >= 0 {
		info.Season = extractSeason(rows[anchors.Season])
	}
	if anchors.Date >= 0 {
		info.MatchDate = extractDate(rows[anchors.Date])
	}
	if anchors.ScoreDetail >= 0 {
		extractScores(rows[anchors.ScoreDetail].Cell(0), info)
	}

	return info, nil
}

// extractCompetition walks the newline-joined competition cell in order. The
// first non-label line is the league name, a line shaped like "M" + digits is
// the group id, and the next non-label line after that is the group name.
// A cell that opens with the group id still yields the id as the group id,
// never as the league name.
func extractCompetition(cell string, info *MatchInfo) {
	for _, line := range strings.Split(cell, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || competitionLabels[line] {
			continue
		}
		switch {
		case groupIDRe.MatchString(line):
			if info.LeagueGroupID == nil {
				id := line
				info.LeagueGroupID = &id
			}
		case info.LeagueName == nil:
			name := line
			info.LeagueName = &name
		case info.LeagueGroupID != nil && info.LeagueGroupName == nil:
			name := line
			info.LeagueGroupName = &name
		}
	}
}

// extractSeason scans the season row rightward from cell 1 for the first
// value that is not a label token.
func extractSeason(row Row) *string {
	for i := 1; i < len(row); i++ {
		v := row.Cell(i)
		if v == "" || v == "Saison" || v == "Season" {
			continue
		}
		return &v
	}
	return nil
}

// extractDate looks anywhere in the date anchor row for a DD/MM/YYYY token.
// Absence leaves the date nil; a malformed date is treated the same way
// rather than failing the document.
func extractDate(row Row) *time.Time {
	m := dateRe.FindString(row.Joined())
	if m == "" {
		return nil
	}
	t, err := time.Parse("02/01/2006", m)
	if err != nil {
		return nil
	}
	return &t
}

// extractScores collects the purely numeric lines of the score-detail cell in
// order. The first four are half-time home, half-time away, final home, final
// away. Fewer than four numeric lines means a partial read, which is
// unreliable: all four fields stay nil rather than being partially populated.
func extractScores(cell string, info *MatchInfo) {
	var scores []int
	for _, line := range strings.Split(cell, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !isDigits(line) {
			continue
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			continue
		}
		scores = append(scores, n)
	}
	if len(scores) < 4 {
		return
	}
	info.HTScoreHome = &scores[0]
	info.HTScoreAway = &scores[1]
	info.FinalScoreHome = &scores[2]
	info.FinalScoreAway = &scores[3]
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
