package csv

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/bomforge/pkg/domain/entities"
)

const sampleBOM = `Name,Description,Part Number,Designator,Quantity
10k,Resistor 10k 0805,RC0805FR-0710KL,"R1, R3",2
"10k,4.7k",Mixed resistors,,"R2,R4",2
,,,,
STM32F103C8T6,MCU,STM32F103C8T6,U1,1
`

func TestLoader_ReadBOM(t *testing.T) {
	entries, err := NewLoader().ReadBOM(strings.NewReader(sampleBOM), "bom.csv")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, entities.BOMEntry{
		Name:        "10k",
		Description: "Resistor 10k 0805",
		PartNumber:  "RC0805FR-0710KL",
		Designators: []entities.Designator{"R1", "R3"},
	}, entries[0])

	// Commas in the name are preserved as authored
	assert.Equal(t, "10k,4.7k", entries[1].Name)
	assert.Empty(t, entries[1].PartNumber)
	assert.Equal(t, []entities.Designator{"R2", "R4"}, entries[1].Designators)

	assert.Equal(t, "STM32F103C8T6", entries[2].Name)
}

func TestLoader_ReadBOM_OptionalColumns(t *testing.T) {
	input := "designator ; name\nR1 ; 1k\n"
	entries, err := NewLoader(WithDelimiter(';')).ReadBOM(strings.NewReader(input), "bom.csv")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "1k", entries[0].Name)
	assert.Empty(t, entries[0].Description)
	assert.Equal(t, []entities.Designator{"R1"}, entries[0].Designators)
}

func TestLoader_ReadBOM_Errors(t *testing.T) {
	_, err := NewLoader().ReadBOM(strings.NewReader("Comment,Designator\n1k,R1\n"), "bom.csv")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingHeader)
	assert.Equal(t, "bom.csv: missing header: Name", err.Error())

	_, err = NewLoader().ReadBOM(strings.NewReader(""), "empty.csv")
	assert.ErrorIs(t, err, ErrMissingHeader)
}

func TestLoader_ReadBOM_EmptyName(t *testing.T) {
	input := "Name,Description,Part Number,Designator\n10k,res,,R1\n,,,\"J1\"\n"

	entries, err := NewLoader().ReadBOM(strings.NewReader(input), "bom.csv")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "", entries[1].Name)
	assert.Equal(t, []entities.Designator{"J1"}, entries[1].Designators)
	assert.False(t, entries[1].IsAmbiguous())
}

const samplePlacement = `Altium Designer Pick and Place Locations
Board: CANbus_verification.PcbDoc
Units: mm

Designator,Comment,Layer,Footprint,Center-X(mm),Center-Y(mm),Rotation
R1,10k,TopLayer,R0805,10.0,12.5,0
R2, 4.7k ,TopLayer,R0805,14.0,12.5,90
U1,STM32F103C8T6,TopLayer,LQFP-48,30.0,30.0,0
`

func TestLoader_ReadPlacements_Preamble(t *testing.T) {
	placements, err := NewLoader().ReadPlacements(strings.NewReader(samplePlacement), "pnp.csv")
	require.NoError(t, err)
	require.Len(t, placements, 3)

	assert.Equal(t, &entities.PlacementEntry{Designator: "R1", Value: "10k", Footprint: "R0805"}, placements[0])
	assert.Equal(t, "4.7k", placements[1].Value)
	assert.Equal(t, entities.Designator("U1"), placements[2].Designator)
}

func TestLoader_ReadPlacements_ValueColumnPriority(t *testing.T) {
	input := "Designator,Comment,Val,Package\nR1,Resistor,10k,0805\n"
	placements, err := NewLoader().ReadPlacements(strings.NewReader(input), "pnp.csv")
	require.NoError(t, err)
	require.Len(t, placements, 1)
	assert.Equal(t, "10k", placements[0].Value)
	assert.Equal(t, "0805", placements[0].Footprint)
}

func TestLoader_ReadPlacements_MissingHeader(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expectError string
	}{
		{
			name:        "no header at all",
			input:       "just,some\npreamble,text\n",
			expectError: "pnp.csv: missing header: Designator, Val|Value|Comment",
		},
		{
			name:        "value column absent",
			input:       "Designator,Layer,Rotation\nR1,Top,0\n",
			expectError: "pnp.csv: missing header: Val|Value|Comment",
		},
		{
			name:        "designator column absent",
			input:       "Ref,Val\nR1,10k\n",
			expectError: "pnp.csv: missing header: Designator",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLoader().ReadPlacements(strings.NewReader(tc.input), "pnp.csv")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMissingHeader)
			assert.Equal(t, tc.expectError, err.Error())
		})
	}
}

func TestLoader_ReadPlacements_PreambleLimit(t *testing.T) {
	columns := DefaultPlacementColumns()
	columns.MaxPreambleLines = 2

	input := "line one\nline two\nDesignator,Val\nR1,1k\n"
	_, err := NewLoader(WithPlacementColumns(columns)).ReadPlacements(strings.NewReader(input), "pnp.csv")
	assert.ErrorIs(t, err, ErrMissingHeader)
}

func TestLoader_ReadPlacements_MissingField(t *testing.T) {
	input := "Designator,Val\nR1,10k\nR2,\n"
	_, err := NewLoader().ReadPlacements(strings.NewReader(input), "pnp.csv")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Equal(t, "pnp.csv line 3: missing field: Val", err.Error())

	input = "Designator,Val\n,10k\n"
	_, err = NewLoader().ReadPlacements(strings.NewReader(input), "pnp.csv")
	var fieldErr *FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, 2, fieldErr.Line)
	assert.Equal(t, "Designator", fieldErr.Field)
	assert.True(t, IsStructural(err))
}

func TestLoader_WriteBOM_RoundTrip(t *testing.T) {
	loader := NewLoader()
	entries := []entities.BOMEntry{
		{Name: "10k", Description: "Resistor", PartNumber: "RC0805", Designators: []entities.Designator{"R1", "R3"}},
		{Name: "4.7k", Designators: []entities.Designator{"R2"}},
		{Name: "47k"},
	}

	var buf bytes.Buffer
	require.NoError(t, loader.WriteBOM(&buf, entries))
	assert.Contains(t, buf.String(), "Name,Description,Part Number,Designator\n")
	assert.Contains(t, buf.String(), `10k,Resistor,RC0805,"R1,R3"`)

	path := filepath.Join(t.TempDir(), "out", "bom.csv")
	require.NoError(t, loader.SaveBOM(path, entries))

	loaded, err := loader.LoadBOM(path)
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, entries[0], loaded[0])
	assert.Equal(t, entries[1], loaded[1])
	assert.Equal(t, "47k", loaded[2].Name)
	assert.Empty(t, loaded[2].Designators)
}

func TestLoader_LoadMissingFile(t *testing.T) {
	_, err := NewLoader().LoadPlacements(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.False(t, IsStructural(err))
}
