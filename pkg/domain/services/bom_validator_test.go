package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vsinha/bomforge/pkg/domain/entities"
)

func TestBOMValidator_Consistent(t *testing.T) {
	entries := []entities.BOMEntry{
		{Name: "10k", Designators: []entities.Designator{"R1", "R2"}},
		{Name: "100n", Designators: []entities.Designator{"C1"}},
	}
	placements := newStubPlacements(
		entities.PlacementEntry{Designator: "R1", Value: "10k"},
		entities.PlacementEntry{Designator: "R2", Value: "10k"},
		entities.PlacementEntry{Designator: "C1", Value: "100n"},
	)

	result := NewBOMValidator().Validate(entries, placements)
	assert.True(t, result.Valid())
	assert.Empty(t, result.Warnings)
}

func TestBOMValidator_ReportsProblems(t *testing.T) {
	entries := []entities.BOMEntry{
		{Name: "10k", Designators: []entities.Designator{"R10", "R2"}},
		{Name: "4.7k", Designators: []entities.Designator{"R2", "R5"}},
		{Name: "1k,2k", Designators: []entities.Designator{"R7"}},
	}
	placements := newStubPlacements(
		entities.PlacementEntry{Designator: "R10", Value: "10k"},
		entities.PlacementEntry{Designator: "R2", Value: "4.7k"},
		entities.PlacementEntry{Designator: "R7", Value: "1k"},
		entities.PlacementEntry{Designator: "R11", Value: "2k"},
		entities.PlacementEntry{Designator: "R3", Value: "2k"},
	)

	result := NewBOMValidator().Validate(entries, placements)
	assert.False(t, result.Valid())

	assert.Equal(t, []entities.Designator{"R2"}, result.DuplicateDesignators)
	assert.Equal(t, []entities.Designator{"R5"}, result.MissingFromPlacement)
	assert.Equal(t, []entities.Designator{"R3", "R11"}, result.MissingFromBOM)
	assert.Equal(t, []string{"1k,2k"}, result.AmbiguousNames)
	assert.Equal(t, []ValueMismatch{{Designator: "R2", BOMName: "10k", PlacedValue: "4.7k"}}, result.ValueMismatches)
	assert.Len(t, result.Errors, 2)
}

func TestBOMValidator_ValueComparison(t *testing.T) {
	entries := []entities.BOMEntry{
		{Name: "4.7k", Designators: []entities.Designator{"R1"}},
		{Name: "10k", Designators: []entities.Designator{"R2"}},
		{Name: "DNP", Designators: []entities.Designator{"R3"}},
	}
	placements := newStubPlacements(
		entities.PlacementEntry{Designator: "R1", Value: "4700"},
		entities.PlacementEntry{Designator: "R2", Value: "1k"},
		entities.PlacementEntry{Designator: "R3", Value: "dnp"},
	)

	exact := NewBOMValidator().Validate(entries, placements)
	assert.Len(t, exact.ValueMismatches, 3)

	decoded := NewBOMValidator(WithValueComparison(DecodeResistance)).Validate(entries, placements)
	assert.Equal(t, []ValueMismatch{
		{Designator: "R2", BOMName: "10k", PlacedValue: "1k"},
		{Designator: "R3", BOMName: "DNP", PlacedValue: "dnp"},
	}, decoded.ValueMismatches)
}
