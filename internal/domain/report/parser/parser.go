package parser

// Action is one fully decoded timeline entry: the raw entry plus its parsed
// token. Unknown tokens are preserved, never dropped.
type Action struct {
	ActionEntry
	ParsedAction
}

// Result is everything decoded from one report document. Parsing is a pure
// function of the input grids: the same grids always produce an identical
// Result.
type Result struct {
	Info    *MatchInfo
	Players []PlayerStatRecord
	Actions []Action
}

// ParseDocument runs the full decode pipeline over the extracted table
// grids. Fatal conditions are missing tables and missing/empty club anchors;
// every other problem degrades to nil fields, empty lists or Unknown actions
// so that partial metadata still comes through.
func ParseDocument(grids []Grid) (*Result, error) {
	rows, err := Flatten(grids)
	if err != nil {
		return nil, err
	}

	anchors, err := LocateAnchors(rows)
	if err != nil {
		return nil, err
	}

	info, err := ExtractMatchInfo(rows, anchors)
	if err != nil {
		return nil, err
	}

	players := DecodeRoster(rows, anchors.HomeRoster(len(rows)), TeamHome)
	players = append(players, DecodeRoster(rows, anchors.AwayRoster(len(rows)), TeamAway)...)

	entries := DecodeTimeline(rows, anchors.TimelineSection(len(rows)))
	actions := make([]Action, 0, len(entries))
	for _, e := range entries {
		actions = append(actions, Action{
			ActionEntry:  e,
			ParsedAction: ParseActionToken(e.RawText),
		})
	}

	return &Result{
		Info:    info,
		Players: players,
		Actions: actions,
	}, nil
}
