package services

import (
	"fmt"

	"github.com/vsinha/bomforge/pkg/domain/entities"
	"github.com/vsinha/bomforge/pkg/domain/repositories"
)

// BOMValidator cross-checks BOM entries against placement data
type BOMValidator struct {
	comparator *DesignatorComparator
	decode     ValueDecoder
}

// ValidatorOption configures a BOMValidator
type ValidatorOption func(*BOMValidator)

// WithValueComparison makes entry names and placed values agree when they
// decode to the same magnitude, so "4.7k" matches "4700"
func WithValueComparison(decode ValueDecoder) ValidatorOption {
	return func(v *BOMValidator) {
		v.decode = decode
	}
}

// NewBOMValidator creates a new BOM validator
func NewBOMValidator(opts ...ValidatorOption) *BOMValidator {
	v := &BOMValidator{
		comparator: NewDesignatorComparator(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ValueMismatch is a designator whose placed value differs from its BOM entry name
type ValueMismatch struct {
	Designator  entities.Designator
	BOMName     string
	PlacedValue string
}

// ValidationResult contains the results of BOM validation
type ValidationResult struct {
	DuplicateDesignators []entities.Designator
	MissingFromPlacement []entities.Designator
	MissingFromBOM       []entities.Designator
	ValueMismatches      []ValueMismatch
	AmbiguousNames       []string
	Errors               []string
	Warnings             []string
}

// Valid reports whether no errors were found
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Validate checks that every designator is claimed by exactly one BOM entry,
// that BOM and placement data cover the same designators, and that placed
// values agree with the entry names.
func (v *BOMValidator) Validate(entries []entities.BOMEntry, placements repositories.PlacementRepository) *ValidationResult {
	result := &ValidationResult{
		DuplicateDesignators: make([]entities.Designator, 0),
		MissingFromPlacement: make([]entities.Designator, 0),
		MissingFromBOM:       make([]entities.Designator, 0),
		ValueMismatches:      make([]ValueMismatch, 0),
		AmbiguousNames:       make([]string, 0),
		Errors:               make([]string, 0),
		Warnings:             make([]string, 0),
	}

	claimed := make(map[entities.Designator]bool)
	for _, entry := range entries {
		ambiguous := entry.IsAmbiguous()
		if ambiguous {
			result.AmbiguousNames = append(result.AmbiguousNames, entry.Name)
		}

		for _, designator := range entry.Designators {
			if claimed[designator] {
				result.DuplicateDesignators = append(result.DuplicateDesignators, designator)
				continue
			}
			claimed[designator] = true

			placement, ok := placements.Placement(designator)
			if !ok {
				result.MissingFromPlacement = append(result.MissingFromPlacement, designator)
				continue
			}
			if !ambiguous && !v.valuesAgree(entry.Name, placement.Value) {
				result.ValueMismatches = append(result.ValueMismatches, ValueMismatch{
					Designator:  designator,
					BOMName:     entry.Name,
					PlacedValue: placement.Value,
				})
			}
		}
	}

	for _, placement := range placements.GetAllPlacements() {
		if !claimed[placement.Designator] {
			result.MissingFromBOM = append(result.MissingFromBOM, placement.Designator)
		}
	}

	result.DuplicateDesignators = v.comparator.Sort(result.DuplicateDesignators)
	result.MissingFromPlacement = v.comparator.Sort(result.MissingFromPlacement)
	result.MissingFromBOM = v.comparator.Sort(result.MissingFromBOM)

	if len(result.DuplicateDesignators) > 0 {
		result.Errors = append(result.Errors,
			fmt.Sprintf("designators claimed by more than one BOM entry: %v", result.DuplicateDesignators))
	}
	if len(result.MissingFromPlacement) > 0 {
		result.Errors = append(result.Errors,
			fmt.Sprintf("BOM designators missing from placement data: %v", result.MissingFromPlacement))
	}
	if len(result.MissingFromBOM) > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("placed designators missing from BOM: %v", result.MissingFromBOM))
	}
	for _, mismatch := range result.ValueMismatches {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s: BOM says %q, placement says %q", mismatch.Designator, mismatch.BOMName, mismatch.PlacedValue))
	}
	if len(result.AmbiguousNames) > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Found %d ambiguous BOM rows", len(result.AmbiguousNames)))
	}

	return result
}

func (v *BOMValidator) valuesAgree(name, placed string) bool {
	if name == placed {
		return true
	}
	if v.decode == nil {
		return false
	}

	nameValue, err := v.decode(name)
	if err != nil {
		return false
	}
	placedValue, err := v.decode(placed)
	if err != nil {
		return false
	}
	return nameValue.Magnitude == placedValue.Magnitude
}
