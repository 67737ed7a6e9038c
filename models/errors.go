package models

import (
	"errors"
	"fmt"
)

// Error codes used in API responses and internal error handling.
const (
	// ErrCodeFetch marks a page that could not be retrieved or parsed as HTML.
	ErrCodeFetch = "FETCH_FAILED"

	// Structural parse failures. Each aborts processing for one player.
	ErrCodeInsufficientVitals  = "INSUFFICIENT_VITALS_FIELDS"
	ErrCodeMissingStatsTable   = "MISSING_STATS_TABLE"
	ErrCodeMalformedSeasonFill = "MALFORMED_SEASON_FILL"
	ErrCodeUnexpectedTable     = "UNEXPECTED_TABLE_SHAPE"

	ErrCodeCanceled     = "CANCELED"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// ErrorDetail is the structured error in API responses.
type ErrorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	PlayerURL string `json:"player_url,omitempty"`
}

// ScrapeError is the internal error type carrying an error code and, once
// known, the player URL that produced it.
// It implements the error interface and supports error wrapping via Unwrap.
type ScrapeError struct {
	Code    string
	Message string
	URL     string
	Err     error // wrapped original error
}

func (e *ScrapeError) Error() string {
	msg := e.Code + ": " + e.Message
	if e.URL != "" {
		msg += " (" + e.URL + ")"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// NewScrapeError creates a new ScrapeError.
func NewScrapeError(code, message string, err error) *ScrapeError {
	return &ScrapeError{Code: code, Message: message, Err: err}
}

// NewFetchError reports that url could not be retrieved or parsed.
func NewFetchError(url string, err error) *ScrapeError {
	return &ScrapeError{Code: ErrCodeFetch, Message: "failed to fetch player page", URL: url, Err: err}
}

// NewParseError reports a structural problem with a fetched page.
func NewParseError(code, message string) *ScrapeError {
	return &ScrapeError{Code: code, Message: message}
}

// IsParse reports whether the error is one of the structural parse codes.
func (e *ScrapeError) IsParse() bool {
	switch e.Code {
	case ErrCodeInsufficientVitals, ErrCodeMissingStatsTable,
		ErrCodeMalformedSeasonFill, ErrCodeUnexpectedTable:
		return true
	}
	return false
}

// ToDetail converts an internal error to an API-facing ErrorDetail.
func (e *ScrapeError) ToDetail() *ErrorDetail {
	return &ErrorDetail{Code: e.Code, Message: e.Message, PlayerURL: e.URL}
}

// WithURL returns err with the player URL attached. A ScrapeError is copied so
// shared sentinel values are never mutated; any other error is wrapped as an
// internal error.
func WithURL(err error, url string) error {
	if err == nil {
		return nil
	}
	var se *ScrapeError
	if errors.As(err, &se) {
		cp := *se
		cp.URL = url
		return &cp
	}
	return &ScrapeError{Code: ErrCodeInternal, Message: err.Error(), URL: url, Err: err}
}

// AsScrapeError extracts a ScrapeError from err, wrapping unknown errors as
// ErrCodeInternal.
func AsScrapeError(err error) *ScrapeError {
	var se *ScrapeError
	if errors.As(err, &se) {
		return se
	}
	return NewScrapeError(ErrCodeInternal, err.Error(), err)
}

// ErrorCode returns the code carried by err, or "" if it is not a ScrapeError.
func ErrorCode(err error) string {
	var se *ScrapeError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsFetchError reports whether err is a page fetch failure.
func IsFetchError(err error) bool {
	return ErrorCode(err) == ErrCodeFetch
}

// IsParseError reports whether err is a structural parse failure.
func IsParseError(err error) bool {
	var se *ScrapeError
	return errors.As(err, &se) && se.IsParse()
}
