package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// CSVWriter serializes a Table to CSV.
type CSVWriter struct {
	// IncludeHeader controls whether the column-name row is emitted.
	IncludeHeader bool
}

// WriteToFile writes the table to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, t Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, t)
}

// Write writes the table in CSV format to the given writer. Rows go
// out exactly as the table carries them; values are pre-formatted
// strings and are never re-rounded here.
func (w *CSVWriter) Write(out io.Writer, t Table) error {
	writer := csv.NewWriter(out)

	if w.IncludeHeader {
		if err := writer.Write(t.Columns); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
	}

	for _, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
