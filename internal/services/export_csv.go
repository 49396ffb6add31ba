package services

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes the header row and rows as RFC 4180 CSV.
func WriteCSV(out io.Writer, rows []ExportCSVRow) error {
	writer := csv.NewWriter(out)
	if err := writer.Write(ExportCSVHeaders); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	for _, row := range rows {
		if err := writer.Write(row.Columns()); err != nil {
			return fmt.Errorf("%w: %v", ErrExportFailed, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return nil
}
