package assemble

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/bytedance/sonic"
	"github.com/use-agent/prospects/models"
)

// BirthdayLayout is how birthdays are rendered in table values.
const BirthdayLayout = "2006-01-02"

// ColumnPlayerStatistics holds the nested season record.
const ColumnPlayerStatistics = "player_statistics"

// RedundantColumns are the page-side duplicates dropped by StripRedundancy.
var RedundantColumns = []string{"name_", "position_", "player_url_"}

// baseColumns is the fixed column order of the final table.
var baseColumns = slices.Concat(
	[]string{
		"name", "team", "league", "position",
		"shot_handedness", "birth_place", "birth_country", "birthday",
		"height", "weight",
		"season", "season_short", "age",
	},
	models.CountingStatColumns,
	[]string{"player_url", "team_url", ColumnPlayerStatistics},
	RedundantColumns,
)

// Columns returns the table columns for records: the fixed order followed by
// every roster extra key, sorted.
func Columns(records []models.PlayerRecord, stripRedundancy bool) []string {
	cols := make([]string, 0, len(baseColumns))
	for _, c := range baseColumns {
		if stripRedundancy && slices.Contains(RedundantColumns, c) {
			continue
		}
		cols = append(cols, c)
	}

	var extra []string
	for i := range records {
		for k := range records[i].Extra {
			if !slices.Contains(baseColumns, k) && !slices.Contains(extra, k) {
				extra = append(extra, k)
			}
		}
	}
	slices.Sort(extra)
	return append(cols, extra...)
}

// Table is the final ordered output of a run.
type Table struct {
	Columns []string
	Records []models.PlayerRecord
}

// NewTable builds a table over records with columns in the fixed order.
func NewTable(records []models.PlayerRecord, stripRedundancy bool) Table {
	if records == nil {
		records = []models.PlayerRecord{}
	}
	return Table{
		Columns: Columns(records, stripRedundancy),
		Records: records,
	}
}

// Rows returns one slice of values per record, aligned with Columns.
func (t Table) Rows() [][]any {
	rows := make([][]any, len(t.Records))
	for i := range t.Records {
		row := make([]any, len(t.Columns))
		for j, col := range t.Columns {
			row[j] = Value(&t.Records[i], col)
		}
		rows[i] = row
	}
	return rows
}

// Objects returns one ordered object per record.
func (t Table) Objects() []Object {
	objs := make([]Object, len(t.Records))
	for i := range t.Records {
		values := make([]any, len(t.Columns))
		for j, col := range t.Columns {
			values[j] = Value(&t.Records[i], col)
		}
		objs[i] = Object{Keys: t.Columns, Values: values}
	}
	return objs
}

// Object is a JSON object whose keys keep the table's column order.
type Object struct {
	Keys   []string
	Values []any
}

// MarshalJSON implements json.Marshaler.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.Keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := sonic.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := sonic.Marshal(o.Values[i])
		if err != nil {
			return nil, fmt.Errorf("assemble: column %s: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Value returns the value of col for r. Missing values are nil; birthdays are
// rendered with BirthdayLayout.
func Value(r *models.PlayerRecord, col string) any {
	if stat := r.CountingStats.Field(col); stat != nil {
		return deref(*stat)
	}

	switch col {
	case "name":
		return r.Name
	case "team":
		return r.Team
	case "league":
		return r.League
	case "position":
		return r.Position
	case "shot_handedness":
		return deref(r.ShotHandedness)
	case "birth_place":
		return deref(r.BirthPlace)
	case "birth_country":
		return deref(r.BirthCountry)
	case "birthday":
		if r.Birthday == nil {
			return nil
		}
		return r.Birthday.Format(BirthdayLayout)
	case "height":
		return deref(r.Height)
	case "weight":
		return deref(r.Weight)
	case "season":
		return deref(r.Season)
	case "season_short":
		return deref(r.SeasonShort)
	case "age":
		return deref(r.Age)
	case "player_url":
		return r.PlayerURL
	case "team_url":
		return r.TeamURL
	case ColumnPlayerStatistics:
		return r.PlayerStatistics
	case "name_":
		return r.NameRaw
	case "position_":
		return deref(r.PositionRaw)
	case "player_url_":
		return r.PlayerURLRaw
	}

	if v, ok := r.Extra[col]; ok {
		return v
	}
	return nil
}

func deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
