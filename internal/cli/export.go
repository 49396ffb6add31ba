package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/terraincognita07/nibble/internal/services"
)

const (
	ExportFormatJSON = "json"
	ExportFormatCSV  = "csv"
)

type BackupExporter interface {
	BuildBackup() (services.Backup, error)
	BuildCSVRows(rawFrom string, rawTo string) ([]services.ExportCSVRow, error)
}

// WriteExport writes the full JSON backup, or the food log CSV for the optional range.
func WriteExport(out io.Writer, exporter BackupExporter, format string, rawFrom string, rawTo string) error {
	switch format {
	case "", ExportFormatJSON:
		backup, err := exporter.BuildBackup()
		if err != nil {
			return err
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(backup)
	case ExportFormatCSV:
		rows, err := exporter.BuildCSVRows(rawFrom, rawTo)
		if err != nil {
			return err
		}
		return services.WriteCSV(out, rows)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}
