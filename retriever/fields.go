package retriever

import (
	"errors"
	"fmt"
)

// ErrMalformed marks upstream data that does not have the expected shape.
var ErrMalformed = errors.New("malformed upstream data")

// SchemaError describes a missing field or a record too short for a field.
type SchemaError struct {
	Field  string
	Index  int
	Length int
}

func (e *SchemaError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%v: field %q not in payload fields", ErrMalformed, e.Field)
	}
	return fmt.Sprintf("%v: field %q at index %d but record has %d values", ErrMalformed, e.Field, e.Index, e.Length)
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrMalformed
}

// maxCIK is the largest CIK that fits the 10 digit format
const maxCIK = 9999999999

// FieldIndices maps an upstream field name to its position in each record.
type FieldIndices map[string]int

// IndexFields builds FieldIndices from the payload's "fields" array.
// When a name repeats, the first position is used.
func IndexFields(fields []string) FieldIndices {
	idx := make(FieldIndices, len(fields))
	for i, f := range fields {
		if _, ok := idx[f]; !ok {
			idx[f] = i
		}
	}
	return idx
}

// Require fails with a *SchemaError for the first name not present in idx.
func (idx FieldIndices) Require(names ...string) error {
	for _, n := range names {
		if _, ok := idx[n]; !ok {
			return &SchemaError{Field: n, Index: -1}
		}
	}
	return nil
}

// value returns the cell of rec for field, failing loudly instead of defaulting.
func (idx FieldIndices) value(rec Record, field string) (any, error) {
	i, ok := idx[field]
	if !ok {
		return nil, &SchemaError{Field: field, Index: -1}
	}
	if i < 0 || i >= len(rec) {
		return nil, &SchemaError{Field: field, Index: i, Length: len(rec)}
	}
	return rec[i], nil
}

func (idx FieldIndices) text(rec Record, field string) (string, error) {
	v, err := idx.value(rec, field)
	if err != nil {
		return "", err
	}
	return cellString(v), nil
}

func (idx FieldIndices) cik(rec Record, field string) (string, error) {
	v, err := idx.value(rec, field)
	if err != nil {
		return "", err
	}
	n, ok := cellInt(v)
	if !ok {
		return "", fmt.Errorf("%w: field %q is not an integer CIK: %v", ErrMalformed, field, v)
	}
	if n > maxCIK {
		return "", fmt.Errorf("%w: field %q has more than 10 digits: %d", ErrMalformed, field, n)
	}
	return PadCIK(n), nil
}
