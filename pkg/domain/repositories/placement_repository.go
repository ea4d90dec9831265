package repositories

import "github.com/vsinha/bomforge/pkg/domain/entities"

// PlacementRepository provides value-keyed access to pick-and-place data
type PlacementRepository interface {
	// Lookup returns the designators placed with the given value, in placement
	// order. An unknown value yields an empty slice, not an error.
	Lookup(value string) []entities.Designator

	// Placement returns the placement row for a designator
	Placement(designator entities.Designator) (*entities.PlacementEntry, bool)

	GetAllPlacements() []*entities.PlacementEntry
	LoadPlacements(rows []*entities.PlacementEntry) error
}
