package roster

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/prospects/models"
)

func TestLoad_JSON5(t *testing.T) {
	rows, err := Load("testdata/roster.json5")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "Riley Sample", first.Name)
	assert.Equal(t, "https://www.example.com/player/101/riley-sample", first.PlayerURL)
	assert.Equal(t, "C", first.Position)
	require.NotNil(t, first.Season)
	assert.Equal(t, "2017-2018", *first.Season)
	assert.Equal(t, 68, *first.GamesPlayed)
	assert.Equal(t, -4, *first.PlusMinus)
	assert.Nil(t, first.Goals)
	assert.Equal(t, map[string]string{"draft_year": "2019"}, first.Extra)

	assert.Equal(t, "Jordan Example", rows[1].Name)
	assert.Nil(t, rows[1].Season)
	assert.Nil(t, rows[1].Extra)
}

func TestLoad_CSV(t *testing.T) {
	rows, err := Load("testdata/roster.csv")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 31, *rows[0].Goals)
	assert.Equal(t, map[string]string{"nhl_rights": ""}, rows[0].Extra, "extra cells pass through unchanged")
	assert.Nil(t, rows[1].Season)
	assert.Nil(t, rows[1].Goals)
	assert.Equal(t, "Hartford", rows[1].Extra["nhl_rights"])
}

func TestLoad_JSONAndJSON5Agree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{
		"name": "Riley Sample",
		"player_url": "https://www.example.com/player/101/riley-sample",
		"team": "Lakeside Lynx",
		"team_url": "https://www.example.com/team/2/lakeside-lynx",
		"league": "OHL",
		"position": "C",
		"season": "2017-2018",
		"games_played": 68,
		"plus_minus": -4,
		"draft_year": 2019
	}]`), 0o600))

	fromJSON, err := Load(path)
	require.NoError(t, err)
	fromJSON5, err := Load("testdata/roster.json5")
	require.NoError(t, err)
	assert.Equal(t, fromJSON5[0], fromJSON[0])
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("testdata/roster.xlsx")
	assert.ErrorContains(t, err, "unsupported file type")

	_, err = Load(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecode_InvalidRows(t *testing.T) {
	const header = "name,player_url,team,team_url,league,position\n"
	tests := []struct {
		name    string
		csv     string
		wantMsg string
	}{
		{
			name:    "missing name",
			csv:     header + ",https://e.com/p/1,T,https://e.com/t/1,L,C\n",
			wantMsg: `field name failed "required"`,
		},
		{
			name:    "bad player url",
			csv:     header + "A,not-a-url,T,https://e.com/t/1,L,C\n",
			wantMsg: `field player_url failed "url"`,
		},
		{
			name: "second row invalid",
			csv: header + "A,https://e.com/p/1,T,https://e.com/t/1,L,C\n" +
				"B,https://e.com/p/2,T,https://e.com/t/1,L,\n",
			wantMsg: "roster row 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.csv), FormatCSV)
			require.Error(t, err)
			assert.Equal(t, models.ErrCodeInvalidInput, models.ErrorCode(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestDecode_BadStat(t *testing.T) {
	csv := "name,player_url,team,team_url,league,position,goals\n" +
		"A,https://e.com/p/1,T,https://e.com/t/1,L,C,many\n"
	_, err := Decode(strings.NewReader(csv), FormatCSV)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `column goals: "many" is not an integer`)
}

func TestDecode_NestedJSONValue(t *testing.T) {
	_, err := Decode(strings.NewReader(`[{name: "A", tags: ["x"]}]`), FormatJSON)
	require.Error(t, err)
	assert.Equal(t, models.ErrCodeInvalidInput, models.ErrorCode(err))
	assert.Contains(t, err.Error(), "field tags")
}

func TestDecode_Empty(t *testing.T) {
	rows, err := Decode(strings.NewReader(""), FormatCSV)
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = Decode(strings.NewReader("[]"), FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestFromMap_NormalizesKeys(t *testing.T) {
	row, err := FromMap(map[string]string{" Name ": " Riley Sample ", "PLAYER_URL": "https://e.com/p/1"})
	require.NoError(t, err)
	assert.Equal(t, "Riley Sample", row.Name)
	assert.Equal(t, "https://e.com/p/1", row.PlayerURL)
}

func TestFromMap_ExtraPassesThrough(t *testing.T) {
	row, err := FromMap(map[string]string{
		"name":       "Riley Sample",
		"Draft Year": " 2019 ",
		"notes":      "",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Draft Year": " 2019 ", "notes": ""}, row.Extra)
}

func TestDecode_CSVByteOrderMark(t *testing.T) {
	csv := "\ufeffname,player_url,team,team_url,league,position\n" +
		"A,https://e.com/p/1,T,https://e.com/t/1,L,C\n"

	rows, err := Decode(strings.NewReader(csv), FormatCSV)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "A", rows[0].Name)
	assert.Nil(t, rows[0].Extra)
}

func TestFormatOf(t *testing.T) {
	for path, want := range map[string]Format{
		"a.json": FormatJSON, "a.JSON5": FormatJSON, "dir/a.csv": FormatCSV,
	} {
		got, err := FormatOf(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
}
