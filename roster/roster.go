// Package roster loads the roster rows a run scrapes.
package roster

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/titanous/json5"
	"github.com/use-agent/prospects/models"
)

// Format is a roster file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// FormatOf picks the format from a file extension. .json and .json5 are
// both read as JSON5.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".json5":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("roster: unsupported file type %q", filepath.Ext(path))
}

var validate = validator.New()

// Load reads and validates the roster at path.
func Load(path string) ([]models.RosterRow, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("roster: read %s: %w", path, err)
	}
	return Decode(bytes.NewReader(data), format)
}

// Decode reads roster rows from r and validates each one.
func Decode(r io.Reader, format Format) ([]models.RosterRow, error) {
	var (
		records []map[string]string
		err     error
	)
	switch format {
	case FormatJSON:
		records, err = decodeJSON(r)
	case FormatCSV:
		records, err = decodeCSV(r)
	default:
		err = fmt.Errorf("roster: unknown format %q", format)
	}
	if err != nil {
		return nil, err
	}

	rows := make([]models.RosterRow, 0, len(records))
	for i, rec := range records {
		row, err := FromMap(rec)
		if err != nil {
			return nil, invalidRow(i, err)
		}
		if err := Validate(row); err != nil {
			return nil, invalidRow(i, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Validate checks the required roster fields of row.
func Validate(row models.RosterRow) error {
	err := validate.Struct(row)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("field %s failed %q", jsonName(fe.Field()), fe.Tag())
	}
	return err
}

func invalidRow(i int, err error) error {
	return models.NewScrapeError(models.ErrCodeInvalidInput, fmt.Sprintf("roster row %d", i), err)
}

// FromMap builds a row from string fields keyed by column name. Known
// columns match case-insensitively and an empty value is missing. Unknown
// columns land in Extra under their original key with their original value.
func FromMap(m map[string]string) (models.RosterRow, error) {
	var row models.RosterRow
	for key, raw := range m {
		col := strings.ToLower(strings.TrimSpace(key))
		if !knownColumn(col) {
			if row.Extra == nil {
				row.Extra = make(map[string]string)
			}
			row.Extra[key] = raw
			continue
		}

		val := strings.TrimSpace(raw)
		if val == "" {
			continue
		}
		if stat := row.CountingStats.Field(col); stat != nil {
			n, err := strconv.Atoi(val)
			if err != nil {
				return row, fmt.Errorf("column %s: %q is not an integer", col, val)
			}
			*stat = &n
			continue
		}

		switch col {
		case "name":
			row.Name = val
		case "player_url":
			row.PlayerURL = val
		case "team":
			row.Team = val
		case "team_url":
			row.TeamURL = val
		case "league":
			row.League = val
		case "position":
			row.Position = val
		case "season":
			row.Season = &val
		}
	}
	return row, nil
}

var rowColumns = []string{"name", "player_url", "team", "team_url", "league", "position", "season"}

func knownColumn(col string) bool {
	return slices.Contains(rowColumns, col) || slices.Contains(models.CountingStatColumns, col)
}

func decodeJSON(r io.Reader) ([]map[string]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("roster: read json: %w", err)
	}
	var raw []map[string]any
	if err := json5.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("roster: decode json: %w", err)
	}

	out := make([]map[string]string, len(raw))
	for i, obj := range raw {
		rec := make(map[string]string, len(obj))
		for k, v := range obj {
			s, err := scalar(v)
			if err != nil {
				return nil, invalidRow(i, fmt.Errorf("field %s: %w", k, err))
			}
			rec[k] = s
		}
		out[i] = rec
	}
	return out, nil
}

func scalar(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	}
	return "", fmt.Errorf("unsupported value of type %T", v)
}

func decodeCSV(r io.Reader) ([]map[string]string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("roster: read csv header: %w", err)
	}
	// Spreadsheet exports often start with a byte order mark.
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	var out []map[string]string
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("roster: read csv: %w", err)
		}
		rec := make(map[string]string, len(header))
		for i, col := range header {
			rec[col] = fields[i]
		}
		out = append(out, rec)
	}
}

// jsonName maps a Go field name to its roster column.
func jsonName(field string) string {
	switch field {
	case "PlayerURL":
		return "player_url"
	case "TeamURL":
		return "team_url"
	}
	return strings.ToLower(field)
}
