package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/prospects/models"
	"github.com/use-agent/prospects/testutil"
)

var fixtureBirthday = time.Date(2001, time.March, 14, 0, 0, 0, 0, time.UTC)

func TestSeasons_Fixture(t *testing.T) {
	doc := testutil.Document(t, testutil.ProfileHTML)

	stats, err := Seasons(doc, &fixtureBirthday, SeasonOptions{})
	require.NoError(t, err)
	require.Len(t, stats, 3)

	first := stats[0]
	assert.Equal(t, "Riverside Rebels", *first.Team)
	assert.Equal(t, "C", *first.Captaincy)
	assert.Equal(t, "OHL", *first.League)
	assert.Equal(t, "2016-2017", *first.Season)
	assert.Equal(t, 2017, *first.SeasonShort)
	assert.InDelta(t, 6029/365.25, *first.Age, 1e-9)
	assert.Equal(t, 40, *first.GamesPlayed)
	assert.Equal(t, 30, *first.Points)
	assert.Equal(t, 6, *first.PlusMinus)
	assert.Nil(t, first.GamesPlayedPlayoffs, "placeholder playoff cells are missing")
	assert.Nil(t, first.PlusMinusPlayoffs)

	trade := stats[1]
	assert.Equal(t, "Lakeside Lynx", *trade.Team)
	assert.Nil(t, trade.Captaincy)
	assert.Equal(t, "2016-2017", *trade.Season, "continuation row inherits the season")
	assert.Equal(t, 2017, *trade.SeasonShort)
	assert.Equal(t, -3, *trade.PlusMinus)
	assert.Equal(t, 6, *trade.GamesPlayedPlayoffs)

	last := stats[2]
	assert.Equal(t, "A", *last.Captaincy)
	assert.Equal(t, "2017-2018", *last.Season)
	assert.Equal(t, 2018, *last.SeasonShort)
	assert.InDelta(t, (6029+365)/365.25, *last.Age, 1e-9)
	assert.Equal(t, 4, *last.PlusMinusPlayoffs)
}

func TestSeasons_NilBirthdayLeavesAgeMissing(t *testing.T) {
	stats, err := Seasons(testutil.Document(t, testutil.ProfileHTML), nil, SeasonOptions{})
	require.NoError(t, err)
	for _, s := range stats {
		assert.Nil(t, s.Age)
		assert.NotNil(t, s.SeasonShort)
	}
}

func TestSeasons_MissingTable(t *testing.T) {
	doc := testutil.Document(t, testutil.ProfileWithoutTable())

	stats, err := Seasons(doc, &fixtureBirthday, SeasonOptions{})
	require.NoError(t, err)
	assert.Empty(t, stats)
	assert.NotNil(t, stats)

	_, err = Seasons(doc, &fixtureBirthday, SeasonOptions{MissingTableFatal: true})
	require.Error(t, err)
	assert.Equal(t, models.ErrCodeMissingStatsTable, models.ErrorCode(err))
	assert.True(t, models.IsParseError(err))
}

func TestSeasons_FirstRowWithoutSeason(t *testing.T) {
	page := testutil.ProfileWithTableRows(
		testutil.StatsRow("", "Riverside Rebels", "OHL", "10", "1", "1", "2", "0", "0"),
		testutil.StatsRow("2017-2018", "Riverside Rebels", "OHL", "10", "1", "1", "2", "0", "0"),
	)

	_, err := Seasons(testutil.Document(t, page), &fixtureBirthday, SeasonOptions{})
	require.Error(t, err)
	assert.Equal(t, models.ErrCodeMalformedSeasonFill, models.ErrorCode(err))
	assert.Contains(t, err.Error(), "row 1 has no season")
}

func TestSeasons_ShortRowsArePadded(t *testing.T) {
	page := testutil.ProfileWithTableRows(
		testutil.StatsRow("2018-2019", "Riverside Rebels", "OHL", "5"),
	)

	stats, err := Seasons(testutil.Document(t, page), &fixtureBirthday, SeasonOptions{})
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 5, *stats[0].GamesPlayed)
	assert.Nil(t, stats[0].Goals)
	assert.Nil(t, stats[0].PlusMinusPlayoffs)
}

func TestSeasons_TooManyCells(t *testing.T) {
	row := func(extra string) string {
		cells := make([]string, len(statsColumns)+1)
		cells[0] = "2018-2019"
		cells[len(statsColumns)] = extra
		return testutil.StatsRow(cells...)
	}
	header := "<tr><th>S</th><th>Team</th></tr>"

	t.Run("empty trailing cell", func(t *testing.T) {
		page := testutil.ProfileWithTableRows(row(" "), row("-"))
		stats, err := Seasons(testutil.Document(t, page), &fixtureBirthday, SeasonOptions{})
		require.NoError(t, err)
		assert.Len(t, stats, 2)
	})

	t.Run("filled trailing cell", func(t *testing.T) {
		page := testutil.ProfileWithTableRows(header, row(""), header, row("7"))
		_, err := Seasons(testutil.Document(t, page), &fixtureBirthday, SeasonOptions{})
		require.Error(t, err)
		assert.Equal(t, models.ErrCodeUnexpectedTable, models.ErrorCode(err))
		assert.Contains(t, err.Error(), "row 2 has 18 cells", "header rows are not counted")
	})
}

func TestSeasons_EmptyTable(t *testing.T) {
	stats, err := Seasons(testutil.Document(t, testutil.ProfileWithTableRows()), &fixtureBirthday, SeasonOptions{})
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestForwardFill(t *testing.T) {
	seasons := []*string{testutil.Ptr("2016-2017"), nil, testutil.Ptr("2017-2018"), nil, nil}
	require.NoError(t, forwardFill(seasons))

	got := make([]string, len(seasons))
	for i, s := range seasons {
		got[i] = *s
	}
	assert.Equal(t, []string{"2016-2017", "2016-2017", "2017-2018", "2017-2018", "2017-2018"}, got)

	assert.NoError(t, forwardFill(nil))
	assert.Error(t, forwardFill([]*string{nil, testutil.Ptr("2017-2018")}))
}

func TestSplitCaptaincy(t *testing.T) {
	tests := []struct {
		name          string
		cell          *string
		wantTeam      *string
		wantCaptaincy *string
	}{
		{"captain", testutil.Ptr("Riverside Rebels “C”"), testutil.Ptr("Riverside Rebels"), testutil.Ptr("C")},
		{"alternate", testutil.Ptr("Lakeside Lynx “A”"), testutil.Ptr("Lakeside Lynx"), testutil.Ptr("A")},
		{"no annotation", testutil.Ptr("Lakeside Lynx"), testutil.Ptr("Lakeside Lynx"), nil},
		{"unclosed", testutil.Ptr("Lakeside Lynx “A"), testutil.Ptr("Lakeside Lynx"), nil},
		{"text after annotation", testutil.Ptr("Lakeside Lynx “C” (loan)"), testutil.Ptr("Lakeside Lynx"), testutil.Ptr("C")},
		{"straight quotes are not annotations", testutil.Ptr(`Lakeside Lynx "C"`), testutil.Ptr(`Lakeside Lynx "C"`), nil},
		{"missing", nil, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			team, captaincy := splitCaptaincy(tt.cell)
			assert.Equal(t, tt.wantTeam, team)
			assert.Equal(t, tt.wantCaptaincy, captaincy)
		})
	}
}
