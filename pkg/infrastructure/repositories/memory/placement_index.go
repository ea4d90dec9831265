package memory

import (
	"fmt"
	"strings"

	"github.com/vsinha/bomforge/pkg/domain/entities"
	"github.com/vsinha/bomforge/pkg/domain/repositories"
	"github.com/vsinha/bomforge/pkg/domain/services"
)

// PlacementIndex maps placed values to the designators carrying them.
// It is built once per resolution run and is read-only afterwards.
type PlacementIndex struct {
	placements   []entities.PlacementEntry
	byDesignator map[entities.Designator]int
	byValue      map[string][]int
	byMagnitude  map[uint32][]int
	decode       services.ValueDecoder
}

// IndexOption configures a PlacementIndex
type IndexOption func(*PlacementIndex)

// WithValueNormalization keys the index by decoded magnitude so that "4.7k"
// and "4700" join. Values that fail to decode fall back to exact matching.
func WithValueNormalization(decode services.ValueDecoder) IndexOption {
	return func(idx *PlacementIndex) {
		idx.decode = decode
		idx.byMagnitude = make(map[uint32][]int)
	}
}

// NewPlacementIndex creates an empty placement index
func NewPlacementIndex(expectedPlacements int, opts ...IndexOption) *PlacementIndex {
	idx := &PlacementIndex{
		placements:   make([]entities.PlacementEntry, 0, expectedPlacements),
		byDesignator: make(map[entities.Designator]int, expectedPlacements),
		byValue:      make(map[string][]int),
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// BuildPlacementIndex builds an index from placement rows in a single pass
func BuildPlacementIndex(rows []*entities.PlacementEntry, opts ...IndexOption) (*PlacementIndex, error) {
	idx := NewPlacementIndex(len(rows), opts...)
	if err := idx.LoadPlacements(rows); err != nil {
		return nil, err
	}
	return idx, nil
}

// Verify interface compliance
var _ repositories.PlacementRepository = (*PlacementIndex)(nil)

// LoadPlacements adds placement rows to the index
func (idx *PlacementIndex) LoadPlacements(rows []*entities.PlacementEntry) error {
	for i, row := range rows {
		if row == nil {
			return fmt.Errorf("placement row %d is nil", i+1)
		}
		if err := idx.AddPlacement(*row); err != nil {
			return fmt.Errorf("placement row %d: %w", i+1, err)
		}
	}
	return nil
}

// AddPlacement adds a single placement to the index. A repeated designator
// is kept as another occurrence of its value.
func (idx *PlacementIndex) AddPlacement(row entities.PlacementEntry) error {
	row.Designator = entities.Designator(strings.TrimSpace(string(row.Designator)))
	row.Value = strings.TrimSpace(row.Value)

	if row.Designator == "" {
		return fmt.Errorf("designator cannot be empty")
	}

	position := len(idx.placements)
	idx.placements = append(idx.placements, row)
	// Panelized exports repeat designators once per board; the first row wins
	if _, exists := idx.byDesignator[row.Designator]; !exists {
		idx.byDesignator[row.Designator] = position
	}
	idx.byValue[row.Value] = append(idx.byValue[row.Value], position)

	if idx.decode != nil {
		if value, err := idx.decode(row.Value); err == nil {
			idx.byMagnitude[value.Magnitude] = append(idx.byMagnitude[value.Magnitude], position)
		}
	}
	return nil
}

// Lookup returns the designators placed with the given value, in placement order
func (idx *PlacementIndex) Lookup(value string) []entities.Designator {
	value = strings.TrimSpace(value)

	positions := idx.byValue[value]
	if idx.decode != nil {
		if decoded, err := idx.decode(value); err == nil {
			positions = idx.byMagnitude[decoded.Magnitude]
		}
	}

	designators := make([]entities.Designator, 0, len(positions))
	for _, position := range positions {
		designators = append(designators, idx.placements[position].Designator)
	}
	return designators
}

// Placement returns the placement row for a designator
func (idx *PlacementIndex) Placement(designator entities.Designator) (*entities.PlacementEntry, bool) {
	position, exists := idx.byDesignator[designator]
	if !exists {
		return nil, false
	}
	placement := idx.placements[position]
	return &placement, true
}

// GetAllPlacements returns all placements in load order
func (idx *PlacementIndex) GetAllPlacements() []*entities.PlacementEntry {
	placements := make([]*entities.PlacementEntry, 0, len(idx.placements))
	for i := range idx.placements {
		placement := idx.placements[i]
		placements = append(placements, &placement)
	}
	return placements
}

// Values returns the number of distinct raw values in the index
func (idx *PlacementIndex) Values() int {
	return len(idx.byValue)
}

// Len returns the number of placements in the index
func (idx *PlacementIndex) Len() int {
	return len(idx.placements)
}
