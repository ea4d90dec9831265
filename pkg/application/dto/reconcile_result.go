package dto

import (
	"time"

	"github.com/vsinha/bomforge/pkg/domain/entities"
)

// ReconcileResult contains the complete output of a reconciliation run
type ReconcileResult struct {
	RunID          string              `json:"run_id"`
	Sources        map[string]string   `json:"sources,omitempty"`
	InputEntries   int                 `json:"input_entries"`
	Placements     int                 `json:"placements"`
	Entries        []entities.BOMEntry `json:"entries"`
	Expansions     []RowExpansion      `json:"expansions"`
	Unmatched      []string            `json:"unmatched"`
	DecodeFailures []DecodeFailure     `json:"decode_failures"`
	ResolveTime    time.Duration       `json:"resolve_time_ns"`
}

// RowExpansion records an ambiguous row and the entries that replaced it
type RowExpansion struct {
	Parent   entities.BOMEntry   `json:"parent"`
	Children []entities.BOMEntry `json:"children"`
}

// DecodeFailure is an entry name that could not be canonicalized
type DecodeFailure struct {
	Name        string                `json:"name"`
	Designators []entities.Designator `json:"designators"`
	Reason      string                `json:"reason"`
}

// ExpandedEntries returns the number of entries created from ambiguous rows
func (r *ReconcileResult) ExpandedEntries() int {
	total := 0
	for _, expansion := range r.Expansions {
		total += len(expansion.Children)
	}
	return total
}
