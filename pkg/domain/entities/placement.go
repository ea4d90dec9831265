package entities

// PlacementEntry represents one row of pick-and-place data.
// Each row carries exactly one designator.
type PlacementEntry struct {
	Designator Designator `json:"designator"`
	Value      string     `json:"value"`
	Footprint  string     `json:"footprint,omitempty"`
}
