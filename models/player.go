package models

import "time"

// PlayerVitals is the biography block of one profile page after cleaning.
// Nil fields are missing on the page or could not be derived.
type PlayerVitals struct {
	Birthday       *time.Time `json:"birthday"`
	BirthPlace     *string    `json:"birth_place"`
	BirthCountry   *string    `json:"birth_country"`
	Position       *string    `json:"position_"`
	Height         *int       `json:"height"` // inches
	Weight         *int       `json:"weight"` // pounds
	ShotHandedness *string    `json:"shot_handedness"`
	Name           string     `json:"name_"`
	PlayerURL      string     `json:"player_url_"`
}

// SeasonStat is one row of a player's statistics table.
type SeasonStat struct {
	Team        *string  `json:"team"`
	League      *string  `json:"league"`
	Captaincy   *string  `json:"captaincy"`
	Season      *string  `json:"season"`
	SeasonShort *int     `json:"season_short"`
	Age         *float64 `json:"age"`

	CountingStats
}

// PlayerRecord is one row of the final table: vitals, roster metadata, the
// nested season record and the roster-level season_short/age.
type PlayerRecord struct {
	Name           string     `json:"name"`
	Team           string     `json:"team"`
	League         string     `json:"league"`
	Position       string     `json:"position"`
	ShotHandedness *string    `json:"shot_handedness"`
	BirthPlace     *string    `json:"birth_place"`
	BirthCountry   *string    `json:"birth_country"`
	Birthday       *time.Time `json:"birthday"`
	Height         *int       `json:"height"`
	Weight         *int       `json:"weight"`
	Season         *string    `json:"season"`
	SeasonShort    *int       `json:"season_short"`
	Age            *float64   `json:"age"`

	CountingStats

	PlayerURL        string       `json:"player_url"`
	TeamURL          string       `json:"team_url"`
	PlayerStatistics []SeasonStat `json:"player_statistics"`

	// Raw duplicates taken from the page side of the merge.
	NameRaw      string  `json:"name_"`
	PositionRaw  *string `json:"position_"`
	PlayerURLRaw string  `json:"player_url_"`

	Extra map[string]string `json:"extra,omitempty"`
}
