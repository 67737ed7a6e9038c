package models

// CountingStats holds the six regular-season counting stats and their playoff
// counterparts. A nil field is a missing value.
type CountingStats struct {
	GamesPlayed    *int `json:"games_played"`
	Goals          *int `json:"goals"`
	Assists        *int `json:"assists"`
	Points         *int `json:"points"`
	PenaltyMinutes *int `json:"penalty_minutes"`
	PlusMinus      *int `json:"plus_minus"`

	GamesPlayedPlayoffs    *int `json:"games_played_playoffs"`
	GoalsPlayoffs          *int `json:"goals_playoffs"`
	AssistsPlayoffs        *int `json:"assists_playoffs"`
	PointsPlayoffs         *int `json:"points_playoffs"`
	PenaltyMinutesPlayoffs *int `json:"penalty_minutes_playoffs"`
	PlusMinusPlayoffs      *int `json:"plus_minus_playoffs"`
}

// CountingStatColumns lists the counting stat columns in output order.
var CountingStatColumns = []string{
	"games_played", "goals", "assists", "points", "penalty_minutes", "plus_minus",
	"games_played_playoffs", "goals_playoffs", "assists_playoffs",
	"points_playoffs", "penalty_minutes_playoffs", "plus_minus_playoffs",
}

// Field returns a pointer to the stat slot named by column, or nil if column
// is not a counting stat.
func (c *CountingStats) Field(column string) **int {
	switch column {
	case "games_played":
		return &c.GamesPlayed
	case "goals":
		return &c.Goals
	case "assists":
		return &c.Assists
	case "points":
		return &c.Points
	case "penalty_minutes":
		return &c.PenaltyMinutes
	case "plus_minus":
		return &c.PlusMinus
	case "games_played_playoffs":
		return &c.GamesPlayedPlayoffs
	case "goals_playoffs":
		return &c.GoalsPlayoffs
	case "assists_playoffs":
		return &c.AssistsPlayoffs
	case "points_playoffs":
		return &c.PointsPlayoffs
	case "penalty_minutes_playoffs":
		return &c.PenaltyMinutesPlayoffs
	case "plus_minus_playoffs":
		return &c.PlusMinusPlayoffs
	}
	return nil
}

// RosterRow is one player as listed by the upstream roster collaborator.
// PlayerURL must address a fetchable profile page.
type RosterRow struct {
	Name      string  `json:"name" validate:"required"`
	PlayerURL string  `json:"player_url" validate:"required,url"`
	Team      string  `json:"team" validate:"required"`
	TeamURL   string  `json:"team_url" validate:"required,url"`
	League    string  `json:"league" validate:"required"`
	Position  string  `json:"position" validate:"required"`
	Season    *string `json:"season,omitempty"`

	CountingStats

	// Extra carries any caller-supplied field without a dedicated slot.
	Extra map[string]string `json:"extra,omitempty"`
}
