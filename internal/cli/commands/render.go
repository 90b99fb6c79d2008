package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/farsql/pkg/core"
	"github.com/leapstack-labs/farsql/pkg/result"
)

func renderResult(w io.Writer, res *result.Table, format string) error {
	if res == nil {
		_, _ = fmt.Fprintln(w, "(no result)")
		return nil
	}

	switch format {
	case "json":
		return renderJSON(w, res)
	case "csv":
		return renderCSV(w, res)
	default:
		return renderTable(w, res)
	}
}

func renderTable(w io.Writer, res *result.Table) error {
	if res.NumRows() == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	cols := res.Columns()
	headerRow := make(table.Row, len(cols))
	for i, col := range cols {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	for _, row := range res.Rows() {
		out := make(table.Row, len(row))
		for i, val := range row {
			out[i] = formatValue(val)
		}
		t.AppendRow(out)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", res.NumRows())
	return nil
}

func renderJSON(w io.Writer, res *result.Table) error {
	cols := res.Columns()
	records := make([]map[string]any, 0, res.NumRows())
	for _, row := range res.Rows() {
		record := make(map[string]any, len(cols))
		for i, col := range cols {
			val := row[i]
			if b, ok := val.([]byte); ok {
				val = string(b)
			}
			record[col] = val
		}
		records = append(records, record)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func renderCSV(w io.Writer, res *result.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(res.Columns()); err != nil {
		return err
	}
	for _, row := range res.Rows() {
		record := make([]string, len(row))
		for i, val := range row {
			record[i] = formatValue(val)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func renderSchema(w io.Writer, schema *core.Schema) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"COLUMN", "TYPE"})
	for i := 0; i < schema.Len(); i++ {
		col := schema.Column(i)
		t.AppendRow(table.Row{col.Name, col.Type.String()})
	}
	t.Render()
	return nil
}

func formatValue(val any) string {
	switch v := val.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
