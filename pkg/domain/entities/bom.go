package entities

import (
	"fmt"
	"strings"
)

// Designator is a per-board reference identifier for one placed component (e.g. "R1")
type Designator string

// BOMEntry represents a single row of a bill of materials
type BOMEntry struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	PartNumber  string       `json:"part_number"`
	Designators []Designator `json:"designators"`

	// Value is set when the entry name has been decoded to a canonical magnitude
	Value *CanonicalValue `json:"value,omitempty"`
}

// NewBOMEntry creates a validated BOMEntry
func NewBOMEntry(name, description, partNumber string, designators []Designator) (*BOMEntry, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("BOM entry name cannot be empty")
	}
	for i, d := range designators {
		if strings.TrimSpace(string(d)) == "" {
			return nil, fmt.Errorf("designator %d of %q cannot be empty", i+1, name)
		}
	}

	return &BOMEntry{
		Name:        name,
		Description: description,
		PartNumber:  partNumber,
		Designators: designators,
	}, nil
}

// SubNames splits the entry name on commas and returns the trimmed, non-empty
// component names in their original order.
func (e BOMEntry) SubNames() []string {
	parts := strings.Split(e.Name, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			names = append(names, part)
		}
	}
	return names
}

// IsAmbiguous reports whether the name encodes more than one logical component
func (e BOMEntry) IsAmbiguous() bool {
	return len(e.SubNames()) > 1
}

// Kind classifies the entry by its first designator
func (e BOMEntry) Kind() ComponentKind {
	if len(e.Designators) == 0 {
		return UnknownKind
	}
	return KindFromDesignator(e.Designators[0])
}

// DesignatorStrings returns the designators as plain strings
func (e BOMEntry) DesignatorStrings() []string {
	out := make([]string, len(e.Designators))
	for i, d := range e.Designators {
		out[i] = string(d)
	}
	return out
}

// ParseDesignators splits a comma separated designator cell, trimming
// whitespace and dropping empty items.
func ParseDesignators(cell string) []Designator {
	var designators []Designator
	for _, part := range strings.Split(cell, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		designators = append(designators, Designator(part))
	}
	return designators
}
