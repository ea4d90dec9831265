package services

import (
	"errors"

	"github.com/vsinha/bomforge/pkg/domain/entities"
)

// DecodeOutcome is the result of decoding one value in a batch
type DecodeOutcome struct {
	Raw   string
	Value entities.CanonicalValue
	Err   error
}

// OK reports whether the value decoded successfully
func (o DecodeOutcome) OK() bool {
	return o.Err == nil
}

// DecodeAll decodes every value and never stops at the first failure.
// The returned error joins all per-value failures, or is nil if every value decoded.
func DecodeAll(decode ValueDecoder, raws []string) ([]DecodeOutcome, error) {
	outcomes := make([]DecodeOutcome, len(raws))
	var errs []error

	for i, raw := range raws {
		value, err := decode(raw)
		outcomes[i] = DecodeOutcome{Raw: raw, Value: value, Err: err}
		if err != nil {
			errs = append(errs, err)
		}
	}

	return outcomes, errors.Join(errs...)
}
