package parser

import (
	"fmt"
	"strings"
)

// Anchor marker substrings as produced by the extraction layer. Matching is
// case- and accent-sensitive: the report generator emits these exact tokens.
const (
	markerHomeClub    = "ClubRecevant"
	markerAwayClub    = "ClubVisiteur"
	markerCompetition = "Compétition"
	markerSeason      = "Saison"
	markerDate        = "DATE:"
	markerDateAlt     = "Journée / Date"
	markerScoreDetail = "DETAIL" // together with "SCORE" on the same row
	markerScore       = "SCORE"
	markerTimeline    = "Déroulé du Match"
	markerTimelineAlt = "Déroulé"
)

// Anchors holds the first matching row index for each known marker, -1 when
// the marker never appears. Recurring headers repeated across pages must not
// overwrite the first hit, so only the first match per marker is recorded.
type Anchors struct {
	HomeClub    int
	AwayClub    int
	Competition int
	Season      int
	Date        int
	ScoreDetail int
	Timeline    int
}

// Section is a contiguous row range [Start, End) bounded by two anchors.
type Section struct {
	Start int
	End   int
}

// LocateAnchors scans the flattened rows once, top to bottom, and records the
// first row index of each anchor marker. The home and away club anchors are
// mandatory; all others are optional metadata whose absence is tolerated.
func LocateAnchors(rows []Row) (Anchors, error) {
	a := Anchors{
		HomeClub:    -1,
		AwayClub:    -1,
		Competition: -1,
		Season:      -1,
		Date:        -1,
		ScoreDetail: -1,
		Timeline:    -1,
	}

	for i, row := range rows {
		text := row.Joined()
		switch {
		case a.HomeClub < 0 && strings.Contains(text, markerHomeClub):
			a.HomeClub = i
		case a.AwayClub < 0 && strings.Contains(text, markerAwayClub):
			a.AwayClub = i
		case a.Competition < 0 && strings.Contains(text, markerCompetition):
			a.Competition = i
		case a.Season < 0 && strings.Contains(text, markerSeason):
			a.Season = i
		case a.Date < 0 && (strings.Contains(text, markerDate) || strings.Contains(text, markerDateAlt)):
			a.Date = i
		case a.ScoreDetail < 0 && strings.Contains(text, markerScoreDetail) && strings.Contains(text, markerScore):
			a.ScoreDetail = i
		case a.Timeline < 0 && (strings.Contains(text, markerTimeline) || strings.Contains(text, markerTimelineAlt)):
			a.Timeline = i
		}
	}

	if a.HomeClub < 0 {
		return a, fmt.Errorf("%w: %s", ErrAnchorMissing, markerHomeClub)
	}
	if a.AwayClub < 0 {
		return a, fmt.Errorf("%w: %s", ErrAnchorMissing, markerAwayClub)
	}
	return a, nil
}

// HomeRoster returns the home team's roster section: from the home club
// anchor to the next present anchor, or the end of the document.
func (a Anchors) HomeRoster(totalRows int) Section {
	return Section{Start: a.HomeClub, End: a.nextAfter(a.HomeClub, totalRows)}
}

// AwayRoster returns the away team's roster section.
func (a Anchors) AwayRoster(totalRows int) Section {
	return Section{Start: a.AwayClub, End: a.nextAfter(a.AwayClub, totalRows)}
}

// TimelineSection returns the match-timeline section, with Start at the
// anchor row itself. Start is -1 when the timeline anchor is absent.
func (a Anchors) TimelineSection(totalRows int) Section {
	if a.Timeline < 0 {
		return Section{Start: -1, End: -1}
	}
	return Section{Start: a.Timeline, End: a.nextAfter(a.Timeline, totalRows)}
}

// nextAfter returns the smallest present anchor index strictly after start,
// or totalRows when no later anchor exists.
func (a Anchors) nextAfter(start, totalRows int) int {
	end := totalRows
	for _, idx := range []int{a.HomeClub, a.AwayClub, a.Competition, a.Season, a.Date, a.ScoreDetail, a.Timeline} {
		if idx > start && idx < end {
			end = idx
		}
	}
	return end
}
