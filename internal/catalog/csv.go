package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"tyrerec/internal/domain"
)

// ReadCSV parses a CSV catalog. Missing numeric cells are returned as NaN;
// call Impute to fill them.
func ReadCSV(r io.Reader) ([]domain.CatalogRecord, error) {
	_, records, err := readCSV("csv", r)
	return records, err
}

func readCSV(source string, r io.Reader) ([]string, []domain.CatalogRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty file")
		}
		return nil, nil, domain.NewLoadError(source, err)
	}
	index := make(map[string]int, len(header))
	have := make(map[string]struct{}, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		header[i] = h
		if _, dup := index[h]; !dup {
			index[h] = i
		}
		have[h] = struct{}{}
	}
	if missing := missingColumns(have); len(missing) > 0 {
		return nil, nil, domain.NewMissingColumnsError(source, missing)
	}

	cell := func(row []string, name string) string {
		i := index[name]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	var records []domain.CatalogRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, domain.NewLoadError(source, err)
		}
		rec := domain.CatalogRecord{
			Brand:     cell(row, domain.Brand.String()),
			Model:     cell(row, domain.Model.String()),
			Submodel:  cell(row, domain.Submodel.String()),
			TyreBrand: cell(row, domain.TyreBrand.String()),
			Type:      cell(row, domain.Type.String()),
			Size:      cell(row, domain.Size.String()),
		}
		for _, f := range []struct {
			name string
			dst  *float64
		}{
			{domain.SellingPriceHeader, &rec.SellingPrice},
			{domain.OriginalPriceHeader, &rec.OriginalPrice},
			{domain.RatingHeader, &rec.Rating},
		} {
			v, err := parseNumber(cell(row, f.name))
			if err != nil {
				return nil, nil, domain.NewLoadError(source, fmt.Errorf("line %d, column %q: %w", line, f.name, err))
			}
			*f.dst = v
		}
		records = append(records, rec)
	}
	return header, records, nil
}

// parseNumber returns NaN for empty or NA-like cells.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "na", "n/a", "nan", "null", "none":
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errNotNumeric, s)
	}
	return v, nil
}
