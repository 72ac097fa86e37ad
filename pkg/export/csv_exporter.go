package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Column maps a record key to its header label.
type Column struct {
	Key   string
	Title string
}

// Table is tabular content keyed by Column.Key.
type Table struct {
	Columns []Column
	Rows    []map[string]string
}

// CSVExporter streams tables as CSV.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Write encodes the table to w, header row first. Missing keys render as empty cells.
func (e *CSVExporter) Write(w io.Writer, table Table) error {
	if len(table.Columns) == 0 {
		return fmt.Errorf("csv requires at least one column")
	}
	writer := csv.NewWriter(w)
	header := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		header[i] = col.Title
		if header[i] == "" {
			header[i] = col.Key
		}
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	record := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		for i, col := range table.Columns {
			record[i] = row[col.Key]
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
