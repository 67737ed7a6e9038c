// Package output renders the final player table.
package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/use-agent/prospects/assemble"
	"github.com/use-agent/prospects/models"
)

// Format is an output encoding.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatTable Format = "table"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatJSONL, FormatTable}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("output: unknown format %q (want json, jsonl or table)", s)
}

// Write renders t to w in format f.
func Write(w io.Writer, t assemble.Table, f Format) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, t)
	case FormatJSONL:
		return writeJSONL(w, t)
	case FormatTable:
		return writeTable(w, t)
	}
	return fmt.Errorf("output: unknown format %q", f)
}

func writeJSON(w io.Writer, t assemble.Table) error {
	data, err := sonic.ConfigStd.MarshalIndent(t.Objects(), "", "  ")
	if err != nil {
		return fmt.Errorf("output: encode json: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func writeJSONL(w io.Writer, t assemble.Table) error {
	for i, obj := range t.Objects() {
		line, err := sonic.ConfigStd.Marshal(obj)
		if err != nil {
			return fmt.Errorf("output: encode record %d: %w", i, err)
		}
		line = append(line, '\n')
		if _, err := w.Write(line); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(w io.Writer, t assemble.Table) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	tw.AppendHeader(header)

	for _, values := range t.Rows() {
		row := make(table.Row, len(values))
		for i, v := range values {
			row[i] = cell(v)
		}
		tw.AppendRow(row)
	}
	tw.AppendFooter(table.Row{fmt.Sprintf("%d players", len(t.Records))})

	_, err := io.WriteString(w, tw.Render()+"\n")
	return err
}

// cell formats one table value. Missing values are blank and the nested
// season record is summarized.
func cell(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case []models.SeasonStat:
		if len(v) == 1 {
			return "1 season"
		}
		return fmt.Sprintf("%d seasons", len(v))
	}
	return fmt.Sprint(v)
}
