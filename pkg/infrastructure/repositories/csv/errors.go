package csv

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingHeader is returned when a required column is absent from a file
	ErrMissingHeader = errors.New("missing header")
	// ErrMissingField is returned when a required cell is empty on a data row
	ErrMissingField = errors.New("missing field")
)

// HeaderError lists the required columns that could not be found
type HeaderError struct {
	Source  string
	Missing []string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Source, ErrMissingHeader, strings.Join(e.Missing, ", "))
}

func (e *HeaderError) Unwrap() error {
	return ErrMissingHeader
}

// FieldError identifies an empty required cell by its 1-based line number
type FieldError struct {
	Source string
	Line   int
	Field  string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s line %d: %v: %s", e.Source, e.Line, ErrMissingField, e.Field)
}

func (e *FieldError) Unwrap() error {
	return ErrMissingField
}
