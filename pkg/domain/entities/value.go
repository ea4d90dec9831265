package entities

import "strconv"

// CanonicalValue is a decoded component value in base units (ohms for resistors)
type CanonicalValue struct {
	Magnitude uint32 `json:"magnitude"`
}

// String returns the plain decimal representation, which decodes back to the same magnitude
func (v CanonicalValue) String() string {
	return strconv.FormatUint(uint64(v.Magnitude), 10)
}
