package catalog

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/stat"

	"tyrerec/internal/domain"
)

// Supported source formats.
const (
	FormatCSV     = "csv"
	FormatParquet = "parquet"
)

// Catalog is a loaded, imputed catalog together with source metadata.
type Catalog struct {
	Source   string
	Checksum string
	Header   []string
	Records  []domain.CatalogRecord
}

// Load reads the catalog at path. An empty format is inferred from the file
// extension. The returned records have Rating and Original Price imputed.
func Load(path, format string) (*Catalog, error) {
	if format == "" {
		format = formatFromPath(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewLoadError(path, err)
	}

	var (
		header  []string
		records []domain.CatalogRecord
	)
	switch format {
	case FormatCSV:
		header, records, err = readCSV(path, bytes.NewReader(data))
	case FormatParquet:
		header, records, err = readParquet(path, bytes.NewReader(data), int64(len(data)))
	default:
		return nil, domain.NewLoadError(path, fmt.Errorf("unsupported catalog format %q", format))
	}
	if err != nil {
		return nil, err
	}
	if err := Impute(records); err != nil {
		return nil, domain.NewLoadError(path, err)
	}
	return &Catalog{
		Source:   path,
		Checksum: checksum(data),
		Header:   header,
		Records:  records,
	}, nil
}

// Impute fills missing Rating values with the mean of the present ratings and
// missing Original Price values with the row's Selling Price. It fails when a
// value cannot be filled: no rating is present at all, or a row lacks both
// prices.
func Impute(records []domain.CatalogRecord) error {
	present := make([]float64, 0, len(records))
	for _, r := range records {
		if !math.IsNaN(r.Rating) {
			present = append(present, r.Rating)
		}
	}
	mean := math.NaN()
	if len(present) > 0 {
		mean = stat.Mean(present, nil)
	}
	for i := range records {
		if math.IsNaN(records[i].Rating) {
			records[i].Rating = mean
		}
		if math.IsNaN(records[i].OriginalPrice) {
			records[i].OriginalPrice = records[i].SellingPrice
		}
		if math.IsNaN(records[i].Rating) {
			return ErrNoRatings
		}
		if math.IsNaN(records[i].OriginalPrice) {
			return fmt.Errorf("row %d: %w", i+1, ErrNoPrice)
		}
	}
	return nil
}

func missingColumns(have map[string]struct{}) []string {
	var missing []string
	for _, h := range domain.RequiredHeaders() {
		if _, ok := have[h]; !ok {
			missing = append(missing, h)
		}
	}
	return missing
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet", ".pq":
		return FormatParquet
	default:
		return FormatCSV
	}
}

func checksum(data []byte) string {
	h := sha1.Sum(data)
	return hex.EncodeToString(h[:])
}

var errNotNumeric = errors.New("not a number")

// Imputation failures.
var (
	ErrNoRatings = errors.New("no ratings to impute missing Rating from")
	ErrNoPrice   = errors.New("both Selling Price and Original Price missing")
)
