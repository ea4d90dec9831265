package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vsinha/bomforge/pkg/domain/entities"
)

// WriteBOM writes BOM entries with the loader's column names, one row per entry.
// Designators are re-joined with ",".
func (l *Loader) WriteBOM(w io.Writer, entries []entities.BOMEntry) error {
	writer := csv.NewWriter(w)
	writer.Comma = l.delimiter

	header := []string{
		l.bomColumns.Name,
		l.bomColumns.Description,
		l.bomColumns.PartNumber,
		l.bomColumns.Designator,
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write BOM header: %w", err)
	}

	for _, entry := range entries {
		record := []string{
			entry.Name,
			entry.Description,
			entry.PartNumber,
			strings.Join(entry.DesignatorStrings(), ","),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write BOM entry %q: %w", entry.Name, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// SaveBOM writes BOM entries to a CSV file, creating parent directories as needed
func (l *Loader) SaveBOM(filename string, entries []entities.BOMEntry) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create BOM file %s: %w", filename, err)
	}

	if err := l.WriteBOM(file, entries); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
