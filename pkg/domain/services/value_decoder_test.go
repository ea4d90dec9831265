package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResistance_SuffixForm(t *testing.T) {
	tests := []struct {
		input    string
		expected uint32
	}{
		{"47R", 47},
		{"47r", 47},
		{"4.7R", 5},
		{"4.4R", 4},
		{"0.5R", 1},
		{"0R", 0},
		{"220R ohm", 220},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			value, form, err := DecodeResistanceForm(tt.input)
			require.NoError(t, err)
			assert.Equal(t, SuffixForm, form)
			assert.Equal(t, tt.expected, value.Magnitude)
		})
	}
}

func TestDecodeResistance_CodeForm(t *testing.T) {
	tests := []struct {
		input    string
		expected uint32
	}{
		{"4k7", 4700},
		{"4K7", 4700},
		{"2m2", 2200000},
		{"4r7", 5},
		{"1k05", 1050},
		{"100k1", 100100},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			value, form, err := DecodeResistanceForm(tt.input)
			require.NoError(t, err)
			assert.Equal(t, CodeForm, form)
			assert.Equal(t, tt.expected, value.Magnitude)
		})
	}
}

func TestDecodeResistance_NormalForm(t *testing.T) {
	tests := []struct {
		input    string
		expected uint32
	}{
		{"4.7k", 4700},
		{"10M", 10000000},
		{"220", 220},
		{"1.5g", 1500000000},
		{".5k", 500},
		{"0.0005k", 1},
		{"4700", 4700},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			value, form, err := DecodeResistanceForm(tt.input)
			require.NoError(t, err)
			assert.Equal(t, NormalForm, form)
			assert.Equal(t, tt.expected, value.Magnitude)
		})
	}
}

func TestDecodeResistance_Equivalence(t *testing.T) {
	for _, input := range []string{"4.7k", "4k7", "4.7k ohms", "4.7k 0805 Ω", "4.7K Ohm", "4k7Ω"} {
		t.Run(input, func(t *testing.T) {
			value, err := DecodeResistance(input)
			require.NoError(t, err)
			assert.Equal(t, uint32(4700), value.Magnitude)
		})
	}
}

func TestDecodeResistance_Idempotent(t *testing.T) {
	for _, input := range []string{"4k7", "47R", "10M", "2m2", "4.7R", "1.5g"} {
		t.Run(input, func(t *testing.T) {
			first, err := DecodeResistance(input)
			require.NoError(t, err)

			second, err := DecodeResistance(first.String())
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

func TestDecodeResistance_Failures(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected error
	}{
		{"empty", "", ErrEmptyInput},
		{"whitespace", "   ", ErrEmptyInput},
		{"unit only", "ohms", ErrEmptyInput},
		{"symbol only", "Ω", ErrEmptyInput},
		{"free text", "DNP", ErrUnrecognizedFormat},
		{"bare r", "r", ErrUnrecognizedFormat},
		{"negative", "-5r", ErrUnrecognizedFormat},
		{"trailing dot", "5.k", ErrUnrecognizedFormat},
		{"code form tail", "4k7r", ErrUnrecognizedFormat},
		{"milli unit", "10mA", ErrUnrecognizedFormat},
		{"exceeds uint32 giga", "5g", ErrOutOfRange},
		{"exceeds uint32 plain", "4294967296", ErrOutOfRange},
		{"exceeds uint32 suffix", "99999999999r", ErrOutOfRange},
		{"exceeds uint32 code", "4295m0", ErrOutOfRange},
		{"rounds past bound", "4294967295.5", ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeResistance(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.expected), "expected %v, got %v", tt.expected, err)

			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr))
			assert.Equal(t, tt.input, decodeErr.Raw)
		})
	}
}

func TestDecodeResistanceForm_NoMatch(t *testing.T) {
	for _, input := range []string{"ohms", "", "DNP", "4k7r"} {
		_, form, err := DecodeResistanceForm(input)
		require.Error(t, err)
		assert.Equal(t, UnknownForm, form, "input %q", input)
	}
	assert.Equal(t, "UnknownForm", UnknownForm.String())

	// Out of range values did match a notation
	_, form, err := DecodeResistanceForm("5g")
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, NormalForm, form)
}

func TestDecodeResistance_UpperBound(t *testing.T) {
	value, err := DecodeResistance("4294967295")
	require.NoError(t, err)
	assert.Equal(t, uint32(4294967295), value.Magnitude)

	value, err = DecodeResistance("4294967294.5")
	require.NoError(t, err)
	assert.Equal(t, uint32(4294967295), value.Magnitude)
}

func TestDecodeAll_CollectsEveryFailure(t *testing.T) {
	outcomes, err := DecodeAll(DecodeResistance, []string{"4k7", "DNP", "10M", "", "5g"})
	require.Error(t, err)
	require.Len(t, outcomes, 5)

	assert.True(t, outcomes[0].OK())
	assert.Equal(t, uint32(4700), outcomes[0].Value.Magnitude)
	assert.False(t, outcomes[1].OK())
	assert.True(t, outcomes[2].OK())
	assert.False(t, outcomes[3].OK())
	assert.False(t, outcomes[4].OK())

	assert.ErrorIs(t, err, ErrUnrecognizedFormat)
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestDecodeAll_NoFailures(t *testing.T) {
	outcomes, err := DecodeAll(DecodeResistance, []string{"1k", "2k2"})
	require.NoError(t, err)
	assert.Equal(t, uint32(2200), outcomes[1].Value.Magnitude)
}
