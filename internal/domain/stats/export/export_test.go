package export

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nicobuchet/hb-data-analyst/internal/domain/stats/repository"
)

type mockRepo struct {
	repository.StatsRepository
	aggs []repository.PlayerAggregate
}

func (m *mockRepo) TeamPlayerAggregates(context.Context, string) ([]repository.PlayerAggregate, error) {
	return m.aggs, nil
}

func testAggs() []repository.PlayerAggregate {
	return []repository.PlayerAggregate{
		{PlayerName: "JUQUEL loic", TeamName: "HBC ONE", Matches: 12, Goals: 58, Shots: 97, Goals7m: 11, TwoMinutes: 5},
		{PlayerName: "MONIER alan", TeamName: "HBC ONE", Matches: 12, Saves: 112},
	}
}

func TestClubReport(t *testing.T) {
	e := NewExporter(&mockRepo{aggs: testAggs()})

	rows, err := e.ClubReport(context.Background(), "HBC ONE")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "JUQUEL loic", rows[0].Player)
	assert.InDelta(t, 59.79, rows[0].ShootingPct, 0.01)
	assert.Zero(t, rows[1].ShootingPct, "goalkeeper without shots keeps a zero percentage")
	assert.Equal(t, 112, rows[1].Saves)
}

func TestWriteCSV(t *testing.T) {
	e := NewExporter(&mockRepo{aggs: testAggs()})
	rows, err := e.ClubReport(context.Background(), "HBC ONE")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "player,matches,goals,shots,shooting_pct,goals_7m,saves,yellow_cards,two_minutes,red_cards,blue_cards", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "JUQUEL loic,12,58,97,"))
}

func TestWriteXLSX(t *testing.T) {
	e := NewExporter(&mockRepo{aggs: testAggs()})
	rows, err := e.ClubReport(context.Background(), "HBC ONE")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, "HBC ONE", rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("HBC ONE")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Player", got[0][0])
	assert.Equal(t, "JUQUEL loic", got[1][0])
	assert.Equal(t, "112", got[2][6])
}
