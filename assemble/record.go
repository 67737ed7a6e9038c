// Package assemble merges extracted vitals and seasons with roster metadata
// into the flat player table.
package assemble

import (
	"maps"
	"slices"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/prospects/extract"
	"github.com/use-agent/prospects/models"
)

// Options controls how a fetched page becomes a record.
type Options struct {
	// MissingTableFatal turns a page without a statistics table into a parse
	// error rather than a record with no seasons.
	MissingTableFatal bool
}

// FromDocument runs both extractors over doc and assembles the record for
// row. Any error carries row.PlayerURL.
func FromDocument(doc *goquery.Document, row models.RosterRow, opts Options) (models.PlayerRecord, error) {
	vitals, err := extract.Vitals(doc, row.Name, row.PlayerURL)
	if err != nil {
		return models.PlayerRecord{}, models.WithURL(err, row.PlayerURL)
	}

	seasons, err := extract.Seasons(doc, vitals.Birthday, extract.SeasonOptions{
		MissingTableFatal: opts.MissingTableFatal,
	})
	if err != nil {
		return models.PlayerRecord{}, models.WithURL(err, row.PlayerURL)
	}

	return Record(vitals, seasons, row), nil
}

// Record merges one player's vitals and season table with its roster row.
//
// Roster fields are carried unchanged apart from season_short and age, which
// are derived again from the roster season and the page birthday. The
// vitals' name_, position_ and player_url_ are kept alongside the roster
// values so a caller can compare them.
func Record(vitals models.PlayerVitals, seasons []models.SeasonStat, row models.RosterRow) models.PlayerRecord {
	short := extract.SeasonShort(row.Season)

	stats := slices.Clone(seasons)
	if stats == nil {
		stats = []models.SeasonStat{}
	}

	return models.PlayerRecord{
		Name:           row.Name,
		Team:           row.Team,
		League:         row.League,
		Position:       row.Position,
		ShotHandedness: vitals.ShotHandedness,
		BirthPlace:     vitals.BirthPlace,
		BirthCountry:   vitals.BirthCountry,
		Birthday:       vitals.Birthday,
		Height:         vitals.Height,
		Weight:         vitals.Weight,
		Season:         row.Season,
		SeasonShort:    short,
		Age:            extract.AgeAt(vitals.Birthday, short),

		CountingStats: row.CountingStats,

		PlayerURL:        row.PlayerURL,
		TeamURL:          row.TeamURL,
		PlayerStatistics: stats,

		NameRaw:      vitals.Name,
		PositionRaw:  vitals.Position,
		PlayerURLRaw: vitals.PlayerURL,

		Extra: maps.Clone(row.Extra),
	}
}
