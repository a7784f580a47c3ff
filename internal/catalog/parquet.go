package catalog

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/parquet-go/parquet-go"

	"tyrerec/internal/domain"
)

const parquetBatchSize = 128

// ReadParquet parses a Parquet catalog. Column names are matched after
// trimming surrounding whitespace. Numeric columns may be any numeric physical
// type or text; nulls are returned as NaN. Call Impute to fill them.
func ReadParquet(r io.ReaderAt, size int64) ([]domain.CatalogRecord, error) {
	_, records, err := readParquet("parquet", r, size)
	return records, err
}

func readParquet(source string, r io.ReaderAt, size int64) ([]string, []domain.CatalogRecord, error) {
	f, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, nil, domain.NewLoadError(source, err)
	}
	schema := f.Schema()
	fields := schema.Fields()
	header := make([]string, 0, len(fields))
	have := make(map[string]struct{}, len(fields))
	// trimmed name -> leaf column index
	index := make(map[string]int, len(fields))
	for _, field := range fields {
		name := strings.TrimSpace(field.Name())
		header = append(header, name)
		if !field.Leaf() {
			continue
		}
		leaf, ok := schema.Lookup(field.Name())
		if !ok {
			continue
		}
		if _, dup := index[name]; !dup {
			index[name] = leaf.ColumnIndex
		}
		have[name] = struct{}{}
	}
	if missing := missingColumns(have); len(missing) > 0 {
		return nil, nil, domain.NewMissingColumnsError(source, missing)
	}

	records := make([]domain.CatalogRecord, 0, f.NumRows())
	line := 0
	for _, rg := range f.RowGroups() {
		err := readRowGroup(rg, len(schema.Columns()), func(values []parquet.Value) error {
			line++
			rec, err := parquetRecord(values, index)
			if err != nil {
				return fmt.Errorf("row %d: %w", line, err)
			}
			records = append(records, rec)
			return nil
		})
		if err != nil {
			return nil, nil, domain.NewLoadError(source, err)
		}
	}
	return header, records, nil
}

// readRowGroup calls fn with the values of each row laid out by column index.
func readRowGroup(rg parquet.RowGroup, numColumns int, fn func([]parquet.Value) error) error {
	rows := rg.Rows()
	defer rows.Close()

	buf := make([]parquet.Row, parquetBatchSize)
	values := make([]parquet.Value, numColumns)
	for {
		n, err := rows.ReadRows(buf)
		for _, row := range buf[:n] {
			clear(values)
			for _, v := range row {
				if c := v.Column(); c >= 0 && c < numColumns {
					values[c] = v
				}
			}
			if ferr := fn(values); ferr != nil {
				return ferr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
	}
}

func parquetRecord(values []parquet.Value, index map[string]int) (domain.CatalogRecord, error) {
	text := func(name string) string {
		v := values[index[name]]
		if v.IsNull() {
			return ""
		}
		return v.String()
	}
	rec := domain.CatalogRecord{
		Brand:     text(domain.Brand.String()),
		Model:     text(domain.Model.String()),
		Submodel:  text(domain.Submodel.String()),
		TyreBrand: text(domain.TyreBrand.String()),
		Type:      text(domain.Type.String()),
		Size:      text(domain.Size.String()),
	}
	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{domain.SellingPriceHeader, &rec.SellingPrice},
		{domain.OriginalPriceHeader, &rec.OriginalPrice},
		{domain.RatingHeader, &rec.Rating},
	} {
		v, err := parquetNumber(values[index[f.name]])
		if err != nil {
			return rec, fmt.Errorf("column %q: %w", f.name, err)
		}
		*f.dst = v
	}
	return rec, nil
}

func parquetNumber(v parquet.Value) (float64, error) {
	if v.IsNull() {
		return math.NaN(), nil
	}
	switch v.Kind() {
	case parquet.Double:
		return v.Double(), nil
	case parquet.Float:
		return float64(v.Float()), nil
	case parquet.Int32:
		return float64(v.Int32()), nil
	case parquet.Int64:
		return float64(v.Int64()), nil
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return parseNumber(string(v.ByteArray()))
	default:
		return 0, fmt.Errorf("%w: %s", errNotNumeric, v.Kind())
	}
}
