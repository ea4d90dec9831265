package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindFromDesignator(t *testing.T) {
	tests := []struct {
		designator Designator
		expected   ComponentKind
	}{
		{"R1", Resistor},
		{"r27", Resistor},
		{"RN3", Resistor},
		{"C12", Capacitor},
		{"L2", Inductor},
		{"U7", IC},
		{"IC1", IC},
		{"J1", UnknownKind},
		{"", UnknownKind},
	}

	for _, tt := range tests {
		t.Run(string(tt.designator), func(t *testing.T) {
			assert.Equal(t, tt.expected, KindFromDesignator(tt.designator))
		})
	}
}

func TestBOMEntry_Kind(t *testing.T) {
	assert.Equal(t, Resistor, BOMEntry{Designators: []Designator{"R4", "R5"}}.Kind())
	assert.Equal(t, UnknownKind, BOMEntry{}.Kind())
}

func TestParsePackage(t *testing.T) {
	tests := []struct {
		input    string
		expected Package
	}{
		{"R_0805_2012Metric", Passive0805},
		{"4.7k 0603", Passive0603},
		{"C_0402_1005Metric", Passive0402},
		{"1206", Passive1206},
		{"LQFP-64_10x10mm_P0.5mm", LQFP64},
		{"QFN-40-1EP_6x6mm", QFN40},
		{"PinHeader_THT", THT},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			pkg, err := ParsePackage(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, pkg)
		})
	}

	_, err := ParsePackage("SOT-23")
	assert.EqualError(t, err, "unknown package: SOT-23")
}

func TestPackage_String(t *testing.T) {
	assert.Equal(t, "0805", Passive0805.String())
	assert.Equal(t, "LQFP-64", LQFP64.String())
	assert.Equal(t, "Unknown", Package(99).String())
	assert.Equal(t, "Resistor", Resistor.String())
	assert.Equal(t, "Unknown", ComponentKind(42).String())
}
