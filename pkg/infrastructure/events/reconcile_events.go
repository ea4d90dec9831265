package events

import (
	"github.com/vsinha/bomforge/pkg/domain/entities"
)

const (
	BOMLoadedEvent         = "bom.loaded"
	PlacementsIndexedEvent = "placements.indexed"

	RowExpandedEvent       = "row.expanded"
	SubNameUnmatchedEvent  = "subname.unmatched"
	ValueDecodedEvent      = "value.decoded"
	ValueDecodeFailedEvent = "value.decode_failed"
)

// ReconcileEventTypes lists every event a reconciliation run appends, in run order
var ReconcileEventTypes = []string{
	BOMLoadedEvent,
	PlacementsIndexedEvent,
	RowExpandedEvent,
	SubNameUnmatchedEvent,
	ValueDecodedEvent,
	ValueDecodeFailedEvent,
}

type BOMLoaded struct {
	Entries int `json:"entries"`
}

type PlacementsIndexed struct {
	Placements int  `json:"placements"`
	Values     int  `json:"values"`
	Normalized bool `json:"normalized"`
}

type RowExpanded struct {
	Parent   entities.BOMEntry   `json:"parent"`
	Children []entities.BOMEntry `json:"children"`
}

type SubNameUnmatched struct {
	SubName string `json:"sub_name"`
}

type ValueDecoded struct {
	Name  string                  `json:"name"`
	Value entities.CanonicalValue `json:"value"`
}

type ValueDecodeFailed struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

func NewBOMLoadedEvent(runID string, entries int) Event {
	return NewEvent(BOMLoadedEvent, runID, BOMLoaded{Entries: entries})
}

func NewPlacementsIndexedEvent(runID string, placements, values int, normalized bool) Event {
	return NewEvent(PlacementsIndexedEvent, runID, PlacementsIndexed{
		Placements: placements,
		Values:     values,
		Normalized: normalized,
	})
}

func NewRowExpandedEvent(runID string, parent entities.BOMEntry, children []entities.BOMEntry) Event {
	return NewEvent(RowExpandedEvent, runID, RowExpanded{Parent: parent, Children: children})
}

func NewSubNameUnmatchedEvent(runID, subName string) Event {
	return NewEvent(SubNameUnmatchedEvent, runID, SubNameUnmatched{SubName: subName})
}

func NewValueDecodedEvent(runID, name string, value entities.CanonicalValue) Event {
	return NewEvent(ValueDecodedEvent, runID, ValueDecoded{Name: name, Value: value})
}

func NewValueDecodeFailedEvent(runID, name string, err error) Event {
	return NewEvent(ValueDecodeFailedEvent, runID, ValueDecodeFailed{Name: name, Reason: err.Error()})
}
