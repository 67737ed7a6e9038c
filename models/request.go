package models

// PlayersRequest is the payload for POST /api/v1/players.
type PlayersRequest struct {
	// Rows are the roster rows to scrape, in output order. Required.
	Rows []RosterRow `json:"rows" validate:"required,min=1,max=200,dive"`

	// StripRedundancy drops name_, position_ and player_url_ from the
	// response. Default: the server's configured value.
	StripRedundancy *bool `json:"strip_redundancy,omitempty"`

	// FailurePolicy overrides the server policy for this run.
	// Allowed: "abort", "skip".
	FailurePolicy string `json:"failure_policy,omitempty" validate:"omitempty,oneof=abort skip"`

	// MaxAge is the maximum age in milliseconds of a cached record that
	// may be returned instead of scraping again. 0 (default) disables cache
	// reads.
	MaxAge int `json:"max_age,omitempty" validate:"omitempty,min=0"`
}

// ProfileRequest is the payload for POST /api/v1/profile: a single roster
// row plus per-request options.
type ProfileRequest struct {
	RosterRow

	StripRedundancy *bool `json:"strip_redundancy,omitempty"`
	MaxAge          int   `json:"max_age,omitempty" validate:"omitempty,min=0"`
}

// Strip resolves a per-request StripRedundancy override against fallback.
func Strip(override *bool, fallback bool) bool {
	if override == nil {
		return fallback
	}
	return *override
}
