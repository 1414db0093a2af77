package parser

import (
	"regexp"
	"strings"
	"unicode"
)

// ActionType classifies a timeline token. Unknown is a legitimate terminal
// classification for tokens the prefix table does not cover, not an error.
type ActionType string

const (
	ActionGoal           ActionType = "Goal"
	ActionGoal7m         ActionType = "Goal_7m"
	ActionShot           ActionType = "Shot"
	ActionSave           ActionType = "Save"
	ActionSuspension2min ActionType = "Suspension_2min"
	ActionWarning        ActionType = "Warning"
	ActionTimeout        ActionType = "Timeout"
	ActionConcussion     ActionType = "Concussion_Protocol"
	ActionUnknown        ActionType = "Unknown"
)

// ParsedAction is the structured form of one action token.
type ParsedAction struct {
	Type         ActionType
	Team         *TeamSide
	PlayerNumber *string
	PlayerName   *string
}

// actionPrefixes maps token prefixes to action types, ordered most-specific
// first so "But7m" is tested before "But" and "TempsMortd'Equipe" before
// "TempsMort".
var actionPrefixes = []struct {
	prefix string
	typ    ActionType
}{
	{"But7m", ActionGoal7m},
	{"But", ActionGoal},
	{"Tir", ActionShot},
	{"Arrêt", ActionSave},
	{"2MN", ActionSuspension2min},
	{"Avertissement", ActionWarning},
	{"TempsMortd'Equipe", ActionTimeout},
	{"TempsMort", ActionTimeout},
	{"ProtocoleCommotion", ActionConcussion},
}

var (
	teamCodeRe = regexp.MustCompile(`JR|JV|OV`)
	numberRe   = regexp.MustCompile(`N°(\d+)`)
)

// ParseActionToken parses a single delimiter-free action token, e.g.
// "ButJRN°18JUQUELloic" or "TempsMortd'EquipeVisiteur". It never fails:
// malformed tokens degrade to partial or Unknown classification, because the
// action log is a best-effort audit trail.
func ParseActionToken(raw string) ParsedAction {
	raw = strings.TrimSpace(raw)

	action := ParsedAction{Type: ActionUnknown}
	rest := ""
	for _, p := range actionPrefixes {
		if strings.HasPrefix(raw, p.prefix) {
			action.Type = p.typ
			rest = raw[len(p.prefix):]
			break
		}
	}
	if action.Type == ActionUnknown {
		return action
	}

	// Timeouts name the side in words, never a player.
	if action.Type == ActionTimeout {
		switch {
		case strings.Contains(rest, "Visiteur"):
			action.Team = teamPtr(TeamAway)
		case strings.Contains(rest, "Recevant"):
			action.Team = teamPtr(TeamHome)
		}
		return action
	}

	// JR = home player, JV = away player, OV = away official; officials are
	// attributed to the visiting side's code in this report format.
	switch teamCodeRe.FindString(rest) {
	case "JR":
		action.Team = teamPtr(TeamHome)
	case "JV", "OV":
		action.Team = teamPtr(TeamAway)
	}

	m := numberRe.FindStringSubmatchIndex(rest)
	if m == nil {
		return action
	}
	number := rest[m[2]:m[3]]
	action.PlayerNumber = &number

	if name := splitPlayerName(rest[m[1]:]); name != "" {
		action.PlayerName = &name
	}
	return action
}

// splitPlayerName separates a concatenated "SURNAMEgivenname" token. The
// surname is conventionally all-uppercase, so the first lowercase rune marks
// the start of the given name. Without any lowercase rune the split point
// cannot be trusted and the token is returned as-is.
func splitPlayerName(s string) string {
	s = strings.TrimSpace(s)
	for i, r := range s {
		if unicode.IsLower(r) {
			if i == 0 {
				break
			}
			return s[:i] + " " + s[i:]
		}
	}
	return s
}

func teamPtr(t TeamSide) *TeamSide {
	return &t
}
