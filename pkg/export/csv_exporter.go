package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"
)

// Column pairs a stable row key with the label printed in the download.
// Align is the PDF cell alignment ("R" for numeric columns); CSV ignores it.
type Column struct {
	Key   string
	Label string
	Align string
}

// Table carries one course's statistics sittings for download rendering.
// Rows are keyed by Column.Key so column order is owned by the table, not
// by map iteration.
type Table struct {
	Title       string
	Subtitle    string
	GeneratedAt time.Time
	Columns     []Column
	Rows        []map[string]string
}

// CSVExporter renders a statistics table into CSV bytes. Title and
// subtitle are omitted so the output stays machine readable.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the table.
func (e *CSVExporter) Render(table Table) ([]byte, error) {
	if len(table.Columns) == 0 {
		return nil, fmt.Errorf("csv requires at least one column")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)

	labels := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		labels[i] = col.Label
	}
	if err := writer.Write(labels); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		for i, col := range table.Columns {
			record[i] = row[col.Key]
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
