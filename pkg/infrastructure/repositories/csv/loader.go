package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vsinha/bomforge/pkg/domain/entities"
)

// BOMColumns names the BOM file columns
type BOMColumns struct {
	Name        string
	Description string
	PartNumber  string
	Designator  string
}

// PlacementColumns names the placement file columns. Value and Footprint list
// candidates in priority order; the first one present in the header is used.
type PlacementColumns struct {
	Designator string
	Value      []string
	Footprint  []string
	// MaxPreambleLines bounds how far the header row is searched for
	MaxPreambleLines int
}

// DefaultBOMColumns returns the column names used by common CAD BOM exports
func DefaultBOMColumns() BOMColumns {
	return BOMColumns{
		Name:        "Name",
		Description: "Description",
		PartNumber:  "Part Number",
		Designator:  "Designator",
	}
}

// DefaultPlacementColumns returns the column names used by common pick-and-place exports
func DefaultPlacementColumns() PlacementColumns {
	return PlacementColumns{
		Designator:       "Designator",
		Value:            []string{"Val", "Value", "Comment"},
		Footprint:        []string{"Package", "Footprint"},
		MaxPreambleLines: 50,
	}
}

// Loader handles loading BOM and placement data from CSV files
type Loader struct {
	bomColumns       BOMColumns
	placementColumns PlacementColumns
	delimiter        rune
}

// LoaderOption configures a Loader
type LoaderOption func(*Loader)

// WithBOMColumns overrides the BOM column names
func WithBOMColumns(columns BOMColumns) LoaderOption {
	return func(l *Loader) {
		l.bomColumns = columns
	}
}

// WithPlacementColumns overrides the placement column names
func WithPlacementColumns(columns PlacementColumns) LoaderOption {
	return func(l *Loader) {
		l.placementColumns = columns
	}
}

// WithDelimiter sets the field delimiter (default ',')
func WithDelimiter(delimiter rune) LoaderOption {
	return func(l *Loader) {
		l.delimiter = delimiter
	}
}

// NewLoader creates a new CSV loader
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		bomColumns:       DefaultBOMColumns(),
		placementColumns: DefaultPlacementColumns(),
		delimiter:        ',',
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadBOM loads BOM entries from a CSV file
func (l *Loader) LoadBOM(filename string) ([]entities.BOMEntry, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open BOM file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadBOM(file, filename)
}

// ReadBOM reads BOM entries from r. The first row is the header; missing
// optional columns and empty cells yield empty fields.
func (l *Loader) ReadBOM(r io.Reader, source string) ([]entities.BOMEntry, error) {
	reader := l.newReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &HeaderError{Source: source, Missing: []string{l.bomColumns.Name, l.bomColumns.Designator}}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read BOM CSV %s: %w", source, err)
	}

	columns := indexHeader(header)
	nameCol, hasName := columns.find(l.bomColumns.Name)
	designatorCol, hasDesignator := columns.find(l.bomColumns.Designator)

	var missing []string
	if !hasName {
		missing = append(missing, l.bomColumns.Name)
	}
	if !hasDesignator {
		missing = append(missing, l.bomColumns.Designator)
	}
	if len(missing) > 0 {
		return nil, &HeaderError{Source: source, Missing: missing}
	}

	descriptionCol, _ := columns.find(l.bomColumns.Description)
	partNumberCol, _ := columns.find(l.bomColumns.PartNumber)

	var entries []entities.BOMEntry
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read BOM CSV %s: %w", source, err)
		}
		if isBlank(record) {
			continue
		}

		// Rows without a name (connectors, DNP parts) pass through unchanged
		entries = append(entries, entities.BOMEntry{
			Name:        cell(record, nameCol),
			Description: cell(record, descriptionCol),
			PartNumber:  cell(record, partNumberCol),
			Designators: entities.ParseDesignators(cell(record, designatorCol)),
		})
	}

	return entries, nil
}

// LoadPlacements loads placement rows from a CSV file
func (l *Loader) LoadPlacements(filename string) ([]*entities.PlacementEntry, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open placement file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadPlacements(file, filename)
}

// ReadPlacements reads placement rows from r. The header row may follow an
// arbitrary preamble; it is the first row naming the designator column and
// one of the value columns.
func (l *Loader) ReadPlacements(r io.Reader, source string) ([]*entities.PlacementEntry, error) {
	reader := l.newReader(r)

	valueAlternatives := strings.Join(l.placementColumns.Value, "|")
	missing := []string{l.placementColumns.Designator, valueAlternatives}

	var (
		designatorCol, valueCol int
		valueName               string
		footprintCol            = -1
		headerFound             bool
	)
	for scanned := 0; scanned < l.placementColumns.MaxPreambleLines; scanned++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read placement CSV %s: %w", source, err)
		}

		columns := indexHeader(record)
		var hasDesignator, hasValue bool
		designatorCol, hasDesignator = columns.find(l.placementColumns.Designator)
		valueCol, valueName, hasValue = columns.findFirst(l.placementColumns.Value)
		if hasDesignator && hasValue {
			footprintCol, _, _ = columns.findFirst(l.placementColumns.Footprint)
			headerFound = true
			break
		}

		// A partial header narrows down what is reported as missing
		if hasDesignator {
			missing = []string{valueAlternatives}
		} else if hasValue {
			missing = []string{l.placementColumns.Designator}
		}
	}
	if !headerFound {
		return nil, &HeaderError{Source: source, Missing: missing}
	}

	var placements []*entities.PlacementEntry
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read placement CSV %s: %w", source, err)
		}
		if isBlank(record) {
			continue
		}

		line, _ := reader.FieldPos(0)
		designator := cell(record, designatorCol)
		if designator == "" {
			return nil, &FieldError{Source: source, Line: line, Field: l.placementColumns.Designator}
		}
		value := cell(record, valueCol)
		if value == "" {
			return nil, &FieldError{Source: source, Line: line, Field: valueName}
		}

		placements = append(placements, &entities.PlacementEntry{
			Designator: entities.Designator(designator),
			Value:      value,
			Footprint:  cell(record, footprintCol),
		})
	}

	return placements, nil
}

func (l *Loader) newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = l.delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	return reader
}

// headerIndex maps normalized header names to column positions
type headerIndex map[string]int

func indexHeader(header []string) headerIndex {
	columns := make(headerIndex, len(header))
	for i, name := range header {
		key := normalizeHeader(name)
		if _, exists := columns[key]; !exists && key != "" {
			columns[key] = i
		}
	}
	return columns
}

func (h headerIndex) find(name string) (int, bool) {
	if name == "" {
		return -1, false
	}
	i, ok := h[normalizeHeader(name)]
	if !ok {
		return -1, false
	}
	return i, true
}

func (h headerIndex) findFirst(names []string) (int, string, bool) {
	for _, name := range names {
		if i, ok := h.find(name); ok {
			return i, name, true
		}
	}
	return -1, "", false
}

func normalizeHeader(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
}

// cell returns the trimmed field at i, or "" when the column is absent or the row is short
func cell(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

// IsStructural reports whether err is a file-level loader failure
func IsStructural(err error) bool {
	return errors.Is(err, ErrMissingHeader) || errors.Is(err, ErrMissingField)
}
