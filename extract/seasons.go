package extract

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/use-agent/prospects/models"
)

// StatsTableSelector matches the season-by-season statistics table.
const StatsTableSelector = "table.table.table-striped.table-condensed.table-sortable.player-stats.highlight-stats"

// Captaincy annotations sit between typographic double quotes: Team “C”.
const (
	openQuote  = "“"
	closeQuote = "”"
)

// statsColumns names the table cells in page order. spacer and playoffs are
// layout columns and never reach the output.
var statsColumns = []string{
	"season",
	"team",
	"league",
	"games_played",
	"goals",
	"assists",
	"points",
	"penalty_minutes",
	"plus_minus",
	"spacer",
	"playoffs",
	"games_played_playoffs",
	"goals_playoffs",
	"assists_playoffs",
	"points_playoffs",
	"penalty_minutes_playoffs",
	"plus_minus_playoffs",
}

var (
	statsTableMatcher = cascadia.MustCompile(StatsTableSelector)
	statsIndex        = indexColumns(statsColumns)
)

func indexColumns(cols []string) map[string]int {
	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		idx[c] = i
	}
	return idx
}

// SeasonOptions controls how Seasons treats structural gaps.
type SeasonOptions struct {
	// MissingTableFatal makes a page without a statistics table an error
	// instead of a player with zero seasons.
	MissingTableFatal bool
}

// Seasons extracts the statistics table of a profile page, one SeasonStat per
// data row in table order. birthday comes from Vitals and drives the per-season
// age; a nil birthday leaves every age missing.
func Seasons(doc *goquery.Document, birthday *time.Time, opts SeasonOptions) ([]models.SeasonStat, error) {
	table := doc.FindMatcher(statsTableMatcher).First()
	if table.Length() == 0 {
		if opts.MissingTableFatal {
			return nil, models.NewParseError(models.ErrCodeMissingStatsTable, "no statistics table on page")
		}
		return []models.SeasonStat{}, nil
	}

	rows, err := readGrid(table)
	if err != nil {
		return nil, err
	}

	seasons := make([]*string, len(rows))
	for i, row := range rows {
		seasons[i] = row[statsIndex["season"]]
	}
	if err := forwardFill(seasons); err != nil {
		return nil, err
	}

	out := make([]models.SeasonStat, 0, len(rows))
	for i, row := range rows {
		team, captaincy := splitCaptaincy(row[statsIndex["team"]])
		short := SeasonShort(seasons[i])

		stat := models.SeasonStat{
			Team:        team,
			League:      row[statsIndex["league"]],
			Captaincy:   captaincy,
			Season:      seasons[i],
			SeasonShort: short,
			Age:         AgeAt(birthday, short),
		}
		for _, col := range models.CountingStatColumns {
			*stat.CountingStats.Field(col) = parseStat(row[statsIndex[col]])
		}
		out = append(out, stat)
	}
	return out, nil
}

// readGrid returns the cleaned cells of every row that has td cells. Short
// rows are padded with missing values. Cells past the named columns must be
// empty. Rows are numbered from 1 in errors, counting data rows only.
func readGrid(table *goquery.Selection) ([][]*string, error) {
	var rows [][]*string
	var shapeErr error

	table.Find("tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		cells := tr.ChildrenFiltered("td")
		if cells.Length() == 0 {
			return true
		}
		row := make([]*string, len(statsColumns))
		for j, n := range cells.Nodes {
			v := clean(nodeText(n))
			if j < len(row) {
				row[j] = v
				continue
			}
			if v != nil {
				shapeErr = models.NewParseError(
					models.ErrCodeUnexpectedTable,
					fmt.Sprintf("row %d has %d cells, expected at most %d", len(rows)+1, cells.Length(), len(statsColumns)),
				)
				return false
			}
		}
		rows = append(rows, row)
		return true
	})

	return rows, shapeErr
}

// forwardFill replaces each missing season with the nearest preceding one in a
// single left-to-right pass.
func forwardFill(seasons []*string) error {
	var last *string
	for i, s := range seasons {
		if s != nil {
			last = s
			continue
		}
		if last == nil {
			return models.NewParseError(
				models.ErrCodeMalformedSeasonFill,
				fmt.Sprintf("row %d has no season and no earlier row to inherit from", i+1),
			)
		}
		v := *last
		seasons[i] = &v
	}
	return nil
}

// splitCaptaincy separates a captaincy annotation from a team cell.
// "Riverside Rebels “C”" → ("Riverside Rebels", "C").
func splitCaptaincy(cell *string) (team, captaincy *string) {
	if cell == nil {
		return nil, nil
	}
	before, after, found := strings.Cut(*cell, openQuote)
	if !found {
		return cell, nil
	}
	if inner, _, closed := strings.Cut(after, closeQuote); closed {
		captaincy = clean(inner)
	}
	return clean(before), captaincy
}
