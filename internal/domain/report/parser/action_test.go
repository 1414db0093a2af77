package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseActionToken(t *testing.T) {
	t.Run("parses a goal with team, number and name", func(t *testing.T) {
		action := ParseActionToken("ButJRN°18JUQUELloic")

		assert.Equal(t, ActionGoal, action.Type)
		require.NotNil(t, action.Team)
		assert.Equal(t, TeamHome, *action.Team)
		require.NotNil(t, action.PlayerNumber)
		assert.Equal(t, "18", *action.PlayerNumber)
		require.NotNil(t, action.PlayerName)
		assert.Equal(t, "JUQUEL loic", *action.PlayerName)
	})

	t.Run("7m goal prefix wins over plain goal", func(t *testing.T) {
		action := ParseActionToken("But7mJVN°15MONIERalan")

		assert.Equal(t, ActionGoal7m, action.Type)
		require.NotNil(t, action.Team)
		assert.Equal(t, TeamAway, *action.Team)
		require.NotNil(t, action.PlayerName)
		assert.Equal(t, "MONIER alan", *action.PlayerName)
	})

	t.Run("unknown prefix degrades, never drops", func(t *testing.T) {
		action := ParseActionToken("XyzAbc123")

		assert.Equal(t, ActionUnknown, action.Type)
		assert.Nil(t, action.Team)
		assert.Nil(t, action.PlayerNumber)
		assert.Nil(t, action.PlayerName)
	})

	t.Run("timeout attributes the side from wording", func(t *testing.T) {
		action := ParseActionToken("TempsMortd'EquipeVisiteur")

		assert.Equal(t, ActionTimeout, action.Type)
		require.NotNil(t, action.Team)
		assert.Equal(t, TeamAway, *action.Team)
		assert.Nil(t, action.PlayerNumber)
		assert.Nil(t, action.PlayerName)

		action = ParseActionToken("TempsMortd'EquipeRecevant")
		require.NotNil(t, action.Team)
		assert.Equal(t, TeamHome, *action.Team)
	})

	t.Run("timeout with unrecognized wording keeps team nil", func(t *testing.T) {
		action := ParseActionToken("TempsMort")

		assert.Equal(t, ActionTimeout, action.Type)
		assert.Nil(t, action.Team)
	})

	t.Run("official code attributes to the away side", func(t *testing.T) {
		action := ParseActionToken("AvertissementOVN°0DURANDmarc")

		assert.Equal(t, ActionWarning, action.Type)
		require.NotNil(t, action.Team)
		assert.Equal(t, TeamAway, *action.Team)
	})

	t.Run("missing number marker leaves number and name nil", func(t *testing.T) {
		action := ParseActionToken("TirJV")

		assert.Equal(t, ActionShot, action.Type)
		require.NotNil(t, action.Team)
		assert.Equal(t, TeamAway, *action.Team)
		assert.Nil(t, action.PlayerNumber)
		assert.Nil(t, action.PlayerName)
	})

	t.Run("all-uppercase name is returned unsplit", func(t *testing.T) {
		action := ParseActionToken("2MNJRN°9FALANDRY")

		assert.Equal(t, ActionSuspension2min, action.Type)
		require.NotNil(t, action.PlayerName)
		assert.Equal(t, "FALANDRY", *action.PlayerName)
	})

	t.Run("concussion protocol", func(t *testing.T) {
		action := ParseActionToken("ProtocoleCommotionJRN°4RICHARDlouis")

		assert.Equal(t, ActionConcussion, action.Type)
		require.NotNil(t, action.PlayerNumber)
		assert.Equal(t, "4", *action.PlayerNumber)
		require.NotNil(t, action.PlayerName)
		assert.Equal(t, "RICHARD louis", *action.PlayerName)
	})
}

func TestParseActionToken_Types(t *testing.T) {
	cases := []struct {
		token string
		typ   ActionType
	}{
		{"ButJRN°18JUQUELloic", ActionGoal},
		{"But7mJRN°18JUQUELloic", ActionGoal7m},
		{"TirJVN°15MONIERalan", ActionShot},
		{"ArrêtJRN°16PETITtom", ActionSave},
		{"2MNJRN°9FALANDRYsacha", ActionSuspension2min},
		{"AvertissementJRN°8KOVALEVSKYboris", ActionWarning},
		{"TempsMortd'EquipeVisiteur", ActionTimeout},
		{"ProtocoleCommotionJRN°4RICHARDlouis", ActionConcussion},
		{"", ActionUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.token, func(t *testing.T) {
			assert.Equal(t, tc.typ, ParseActionToken(tc.token).Type)
		})
	}
}

func BenchmarkParseActionToken(b *testing.B) {
	tokens := []string{
		"ButJRN°18JUQUELloic",
		"But7mJVN°15MONIERalan",
		"TempsMortd'EquipeVisiteur",
		"XyzAbc123",
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for _, tok := range tokens {
			_ = ParseActionToken(tok)
		}
	}
}
