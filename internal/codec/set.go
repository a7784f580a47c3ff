package codec

import (
	"fmt"

	"tyrerec/internal/domain"
)

// Set holds one fitted Mapping per categorical column.
type Set struct {
	mappings [domain.NumCategorical]*Mapping
}

// FitCatalog fits every categorical column over the whole catalog.
func FitCatalog(records []domain.CatalogRecord) *Set {
	s := &Set{}
	values := make([]string, len(records))
	for _, col := range domain.CategoricalColumns {
		for i, r := range records {
			values[i] = r.Value(col)
		}
		s.mappings[col] = Fit(col, values)
	}
	return s
}

// Mapping returns the mapping of a column.
func (s *Set) Mapping(col domain.Column) *Mapping {
	if col < 0 || int(col) >= domain.NumCategorical {
		panic(fmt.Sprintf("codec: no mapping for %s", col))
	}
	return s.mappings[col]
}

// Encode encodes value in col.
func (s *Set) Encode(col domain.Column, value string) (int, error) {
	return s.Mapping(col).Encode(value)
}

// Decode decodes code in col.
func (s *Set) Decode(col domain.Column, code int) (string, error) {
	return s.Mapping(col).Decode(code)
}

// EncodeRecord encodes every categorical column of r.
func (s *Set) EncodeRecord(r domain.CatalogRecord) (domain.Codes, error) {
	var codes domain.Codes
	for _, col := range domain.CategoricalColumns {
		c, err := s.Encode(col, r.Value(col))
		if err != nil {
			return codes, err
		}
		codes[col] = c
	}
	return codes, nil
}

// EncodeCatalog encodes every record in order. It fails only if records
// were not part of the catalog the set was fitted on.
func (s *Set) EncodeCatalog(records []domain.CatalogRecord) ([]domain.Codes, error) {
	out := make([]domain.Codes, len(records))
	for i, r := range records {
		codes, err := s.EncodeRecord(r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = codes
	}
	return out, nil
}

// Sizes returns the domain size of each column keyed by header name.
func (s *Set) Sizes() map[string]int {
	out := make(map[string]int, domain.NumCategorical)
	for _, col := range domain.CategoricalColumns {
		out[col.String()] = s.mappings[col].Len()
	}
	return out
}
