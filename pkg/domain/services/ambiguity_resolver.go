package services

import (
	"github.com/vsinha/bomforge/pkg/domain/entities"
	"github.com/vsinha/bomforge/pkg/domain/repositories"
)

// AmbiguityResolver splits BOM rows whose name lists several components
// ("10k,4.7k") and re-attributes designators using placement data.
type AmbiguityResolver struct {
	propagateParentFields bool
}

// ResolverOption configures an AmbiguityResolver
type ResolverOption func(*AmbiguityResolver)

// WithParentFields makes expanded entries inherit description and part number
// from the ambiguous row. By default they are left empty.
func WithParentFields(enabled bool) ResolverOption {
	return func(r *AmbiguityResolver) {
		r.propagateParentFields = enabled
	}
}

// NewAmbiguityResolver creates a new resolver
func NewAmbiguityResolver(opts ...ResolverOption) *AmbiguityResolver {
	r := &AmbiguityResolver{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Expansion records one ambiguous row and the entries it was replaced with
type Expansion struct {
	Parent   entities.BOMEntry
	Children []entities.BOMEntry
}

// Resolution is the detailed outcome of a resolve pass
type Resolution struct {
	Entries    []entities.BOMEntry
	Expansions []Expansion
	// Unmatched lists sub-names for which no placement carried the value
	Unmatched []string
}

// Resolve returns the corrected entry set: unambiguous entries in their
// original order, followed by the expanded entries grouped by originating row.
func (r *AmbiguityResolver) Resolve(entries []entities.BOMEntry, index repositories.PlacementRepository) []entities.BOMEntry {
	return r.ResolveDetailed(entries, index).Entries
}

// ResolveDetailed is Resolve that also reports what was expanded
func (r *AmbiguityResolver) ResolveDetailed(entries []entities.BOMEntry, index repositories.PlacementRepository) *Resolution {
	resolution := &Resolution{}

	// Detect and expand
	ambiguousNames := make(map[string]struct{})
	for _, entry := range entries {
		subNames := entry.SubNames()
		if len(subNames) <= 1 {
			continue
		}
		ambiguousNames[entry.Name] = struct{}{}

		expansion := Expansion{
			Parent:   entry,
			Children: make([]entities.BOMEntry, 0, len(subNames)),
		}
		for _, subName := range subNames {
			child := entities.BOMEntry{
				Name:        subName,
				Designators: index.Lookup(subName),
			}
			if r.propagateParentFields {
				child.Description = entry.Description
				child.PartNumber = entry.PartNumber
			}
			if len(child.Designators) == 0 {
				resolution.Unmatched = append(resolution.Unmatched, subName)
			}
			expansion.Children = append(expansion.Children, child)
		}
		resolution.Expansions = append(resolution.Expansions, expansion)
	}

	// Filter every entry sharing an ambiguous name, then merge
	resolution.Entries = make([]entities.BOMEntry, 0, len(entries))
	for _, entry := range entries {
		if _, ambiguous := ambiguousNames[entry.Name]; ambiguous {
			continue
		}
		resolution.Entries = append(resolution.Entries, entry)
	}
	for _, expansion := range resolution.Expansions {
		resolution.Entries = append(resolution.Entries, expansion.Children...)
	}

	return resolution
}
