package models

import "encoding/json"

// PlayersResponse is the response for POST /api/v1/players.
type PlayersResponse struct {
	// Success indicates whether the run completed. Skipped players do not
	// make a run unsuccessful.
	Success bool `json:"success"`

	// Columns is the column order of every record.
	Columns []string `json:"columns"`

	// Records holds one ordered object per scraped player.
	Records []json.Marshaler `json:"records"`

	// Failures lists players dropped under the skip policy.
	Failures []ErrorDetail `json:"failures,omitempty"`

	Timing TimingInfo `json:"timing"`
}

// ProfileResponse is the response for POST /api/v1/profile.
type ProfileResponse struct {
	Success bool           `json:"success"`
	Columns []string       `json:"columns"`
	Record  json.Marshaler `json:"record"`
	Timing  TimingInfo     `json:"timing"`

	// CacheStatus is "hit" or "miss" when max_age was set.
	CacheStatus string `json:"cache_status,omitempty"`
}

// ErrorResponse is returned by every endpoint on failure.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Error   *ErrorDetail `json:"error"`
	Timing  TimingInfo   `json:"timing"`
}

// TimingInfo reports how long a request took.
type TimingInfo struct {
	// TotalMs is the end-to-end duration in milliseconds.
	TotalMs int64 `json:"total_ms"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status       string `json:"status"`
	Uptime       string `json:"uptime"`
	CacheEntries int    `json:"cache_entries"`
	Version      string `json:"version"`
}
