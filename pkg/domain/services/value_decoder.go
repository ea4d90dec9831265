package services

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vsinha/bomforge/pkg/domain/entities"
)

var (
	// ErrEmptyInput is returned when nothing is left of the value after normalization
	ErrEmptyInput = errors.New("empty value")
	// ErrUnrecognizedFormat is returned when no value notation matches
	ErrUnrecognizedFormat = errors.New("unrecognized value format")
	// ErrOutOfRange is returned when the rounded magnitude does not fit in 32 bits
	ErrOutOfRange = errors.New("value out of range")
)

// DecodeError describes why a single value string could not be decoded
type DecodeError struct {
	Raw string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q: %v", e.Raw, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ValueDecoder turns a raw value string into a canonical magnitude
type ValueDecoder func(raw string) (entities.CanonicalValue, error)

// ValueForm identifies which notation a value was written in
type ValueForm int

const (
	UnknownForm ValueForm = iota // no notation matched
	SuffixForm                   // "47r", "4.7r"
	CodeForm                     // "4k7", "2m2", "4r7"
	NormalForm                   // "4.7k", "10m", "220"
)

// String method for ValueForm enum
func (f ValueForm) String() string {
	switch f {
	case SuffixForm:
		return "SuffixForm"
	case CodeForm:
		return "CodeForm"
	case NormalForm:
		return "NormalForm"
	default:
		return "UnknownForm"
	}
}

// valueMatcher recognizes one notation and returns the unrounded magnitude
type valueMatcher struct {
	form  ValueForm
	match func(token string) (decimal.Decimal, bool)
}

// resistanceGrammar is evaluated in order; the first match wins.
var resistanceGrammar = []valueMatcher{
	{form: SuffixForm, match: matchSuffixForm},
	{form: CodeForm, match: matchCodeForm},
	{form: NormalForm, match: matchNormalForm},
}

// Unit words are removed longest first so "ohms" does not leave a stray "s".
var unitWords = []string{"ohms", "ohm", "ω"}

var maxMagnitude = decimal.NewFromInt(math.MaxUint32)

// DecodeResistance decodes a resistor value string such as "4.7k", "4k7",
// "47R" or "4.7k 0805 Ω" into ohms. In resistor notation "m" means mega.
func DecodeResistance(raw string) (entities.CanonicalValue, error) {
	value, _, err := DecodeResistanceForm(raw)
	return value, err
}

// DecodeResistanceForm is DecodeResistance that also reports the matched notation
func DecodeResistanceForm(raw string) (entities.CanonicalValue, ValueForm, error) {
	token := normalizeValueToken(raw)
	if token == "" {
		return entities.CanonicalValue{}, UnknownForm, &DecodeError{Raw: raw, Err: ErrEmptyInput}
	}

	for _, m := range resistanceGrammar {
		magnitude, ok := m.match(token)
		if !ok {
			continue
		}

		rounded := magnitude.Round(0)
		if rounded.GreaterThan(maxMagnitude) {
			return entities.CanonicalValue{}, m.form, &DecodeError{Raw: raw, Err: ErrOutOfRange}
		}
		return entities.CanonicalValue{Magnitude: uint32(rounded.IntPart())}, m.form, nil
	}

	return entities.CanonicalValue{}, UnknownForm, &DecodeError{Raw: raw, Err: ErrUnrecognizedFormat}
}

// normalizeValueToken lowercases the value, strips unit words and keeps the first
// whitespace separated token. Trailing tokens such as a package code are ignored.
func normalizeValueToken(raw string) string {
	s := strings.ToLower(raw)
	for _, word := range unitWords {
		s = strings.ReplaceAll(s, word, "")
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// matchSuffixForm accepts "<number>r" with an implied multiplier of 1
func matchSuffixForm(token string) (decimal.Decimal, bool) {
	rest, ok := strings.CutSuffix(token, "r")
	if !ok {
		return decimal.Decimal{}, false
	}
	return parseDecimal(rest)
}

// matchCodeForm accepts "<digits><r|k|m><digits>" where the letter is the decimal point
func matchCodeForm(token string) (decimal.Decimal, bool) {
	intPart, rest := leadingDigits(token)
	if intPart == "" || rest == "" {
		return decimal.Decimal{}, false
	}

	var exp int32
	switch rest[0] {
	case 'r':
		exp = 0
	case 'k':
		exp = 3
	case 'm':
		exp = 6
	default:
		return decimal.Decimal{}, false
	}

	fracPart, tail := leadingDigits(rest[1:])
	if fracPart == "" || tail != "" {
		return decimal.Decimal{}, false
	}

	return fromDigits(intPart, fracPart).Mul(decimal.New(1, exp)), true
}

// matchNormalForm accepts "<number>[k|m|g]"
func matchNormalForm(token string) (decimal.Decimal, bool) {
	var exp int32
	number := token
	switch token[len(token)-1] {
	case 'k':
		exp = 3
	case 'm':
		exp = 6
	case 'g':
		exp = 9
	}
	if exp != 0 {
		number = token[:len(token)-1]
	}

	d, ok := parseDecimal(number)
	if !ok {
		return decimal.Decimal{}, false
	}
	return d.Mul(decimal.New(1, exp)), true
}

// parseDecimal accepts unsigned numbers shaped like "47", "4.7" or ".47".
// Digits are required after a decimal point.
func parseDecimal(s string) (decimal.Decimal, bool) {
	intPart, rest := leadingDigits(s)
	if rest == "" {
		if intPart == "" {
			return decimal.Decimal{}, false
		}
		return fromDigits(intPart, ""), true
	}
	if rest[0] != '.' {
		return decimal.Decimal{}, false
	}

	fracPart, tail := leadingDigits(rest[1:])
	if fracPart == "" || tail != "" {
		return decimal.Decimal{}, false
	}
	return fromDigits(intPart, fracPart), true
}

// leadingDigits splits s after its leading run of ASCII digits
func leadingDigits(s string) (string, string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i], s[i:]
}

// fromDigits builds intPart.fracPart exactly; both arguments are pre-validated digit runs
func fromDigits(intPart, fracPart string) decimal.Decimal {
	value, _ := new(big.Int).SetString("0"+intPart+fracPart, 10)
	return decimal.NewFromBigInt(value, -int32(len(fracPart)))
}
