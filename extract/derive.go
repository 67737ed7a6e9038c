package extract

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
)

const (
	footMark = "'"
	inchMark = `"`

	// daysPerYear converts a day count into fractional years.
	daysPerYear = 365.25
)

// ParseHeight converts a feet/inches value such as `5' 11"` into inches.
// A value without both delimiters or with a non-integer part is missing.
func ParseHeight(raw *string) *int {
	if raw == nil {
		return nil
	}
	feetPart, rest, ok := strings.Cut(*raw, footMark)
	if !ok {
		return nil
	}
	inchPart, _, ok := strings.Cut(rest, inchMark)
	if !ok {
		return nil
	}
	feet, err := strconv.Atoi(strings.TrimSpace(feetPart))
	if err != nil {
		return nil
	}
	inches, err := strconv.Atoi(strings.TrimSpace(inchPart))
	if err != nil {
		return nil
	}
	h := feet*12 + inches
	return &h
}

// ParseWeight reads the leading number of a value such as "185lbs".
func ParseWeight(raw *string) *int {
	if raw == nil {
		return nil
	}
	s := strings.TrimSpace(*raw)
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == 0 {
		return nil
	}
	if end > 0 {
		s = s[:end]
	}
	w, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &w
}

// ParseBirthday reads a month/day/year date ("Mar 14, 2001", "03/14/2001")
// and returns it as a UTC calendar date. A value without separate month, day
// and year parts, such as a bare year or a timestamp, is missing.
func ParseBirthday(raw *string) *time.Time {
	if raw == nil || len(dateParts(*raw)) < 3 {
		return nil
	}
	t, err := dateparse.ParseIn(*raw, time.UTC)
	if err != nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

// dateParts splits a date into its alphanumeric runs: "Mar 14, 2001" has three.
func dateParts(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// SeasonShort returns the year after a season's start year: "2017-2018" → 2018.
func SeasonShort(season *string) *int {
	if season == nil {
		return nil
	}
	start, _, _ := strings.Cut(*season, "-")
	year, err := strconv.Atoi(strings.TrimSpace(start))
	if err != nil {
		return nil
	}
	short := year + 1
	return &short
}

// DraftEligibilityDate is September 15 of the season-short year.
func DraftEligibilityDate(seasonShort int) time.Time {
	return time.Date(seasonShort, time.September, 15, 0, 0, 0, 0, time.UTC)
}

// AgeAt returns the fractional years between birthday and the draft
// eligibility date of seasonShort, as days ÷ 365.25.
func AgeAt(birthday *time.Time, seasonShort *int) *float64 {
	if birthday == nil || seasonShort == nil {
		return nil
	}
	days := DraftEligibilityDate(*seasonShort).Sub(*birthday).Hours() / 24
	age := days / daysPerYear
	return &age
}

// parseStat reads a counting stat cell. Signed values ("+4", "-2") are kept;
// anything else that is not an integer is missing.
func parseStat(cell *string) *int {
	if cell == nil {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(*cell))
	if err != nil {
		return nil
	}
	return &v
}
