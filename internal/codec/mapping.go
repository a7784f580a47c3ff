// Package codec maps categorical catalog values to dense integer codes.
//
// Codes are assigned by sorted order of the distinct values of a column, so
// fitting the same catalog twice yields the same codes. A catalog revision
// that adds or removes values shifts codes; they must not be persisted.
package codec

import (
	"slices"

	"tyrerec/internal/domain"
)

// Mapping is a bijection between the distinct values of one column and
// the integers 0..Len()-1.
type Mapping struct {
	column domain.Column
	values []string
	codes  map[string]int
}

// Fit builds a Mapping from every value observed in a column.
func Fit(column domain.Column, values []string) *Mapping {
	codes := make(map[string]int)
	for _, v := range values {
		codes[v] = 0
	}
	distinct := make([]string, 0, len(codes))
	for v := range codes {
		distinct = append(distinct, v)
	}
	slices.Sort(distinct)
	for i, v := range distinct {
		codes[v] = i
	}
	return &Mapping{column: column, values: distinct, codes: codes}
}

// Column returns the column this mapping was fitted on.
func (m *Mapping) Column() domain.Column { return m.column }

// Len returns the number of distinct values.
func (m *Mapping) Len() int { return len(m.values) }

// Values returns the sorted domain. The slice is a copy.
func (m *Mapping) Values() []string { return slices.Clone(m.values) }

// Contains reports whether value is in the fitted domain.
func (m *Mapping) Contains(value string) bool {
	_, ok := m.codes[value]
	return ok
}

// Encode returns the code of value.
func (m *Mapping) Encode(value string) (int, error) {
	code, ok := m.codes[value]
	if !ok {
		return 0, &domain.UnknownCategoryError{Column: m.column, Value: value}
	}
	return code, nil
}

// Decode returns the value for code.
func (m *Mapping) Decode(code int) (string, error) {
	if code < 0 || code >= len(m.values) {
		return "", &domain.InvalidCodeError{Column: m.column, Code: code}
	}
	return m.values[code], nil
}
