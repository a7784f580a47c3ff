package domain

import "fmt"

// Column identifies a categorical column of the catalog.
type Column int

const (
	Brand Column = iota
	Model
	Submodel
	TyreBrand
	Type
	Size

	numCategorical
)

// NumCategorical is the number of categorical columns carried by a record.
const NumCategorical = int(numCategorical)

// Header names of the numeric columns.
const (
	SellingPriceHeader  = "Selling Price"
	OriginalPriceHeader = "Original Price"
	RatingHeader        = "Rating"
)

var columnHeaders = [NumCategorical]string{
	Brand:     "Brand",
	Model:     "Model",
	Submodel:  "Submodel",
	TyreBrand: "Tyre Brand",
	Type:      "Type",
	Size:      "Size",
}

// String returns the catalog header name of the column.
func (c Column) String() string {
	if c < 0 || int(c) >= NumCategorical {
		return fmt.Sprintf("Column(%d)", int(c))
	}
	return columnHeaders[c]
}

// CategoricalColumns lists every encoded column in fitting order.
var CategoricalColumns = []Column{Brand, Model, Submodel, TyreBrand, Type, Size}

// FeatureColumns lists the columns used for similarity, in vector order.
var FeatureColumns = [FeatureDim]Column{Brand, Model, Submodel, Type, Size}

// RequiredHeaders are the columns a catalog source must provide.
func RequiredHeaders() []string {
	out := make([]string, 0, NumCategorical+3)
	for _, c := range CategoricalColumns {
		out = append(out, c.String())
	}
	return append(out, SellingPriceHeader, OriginalPriceHeader, RatingHeader)
}

// CatalogRecord is one row of the tyre catalog.
// Missing numeric values are represented as NaN until imputed.
type CatalogRecord struct {
	Brand         string
	Model         string
	Submodel      string
	TyreBrand     string
	Type          string
	Size          string
	SellingPrice  float64
	OriginalPrice float64
	Rating        float64
}

// Value returns the raw string of a categorical column.
func (r CatalogRecord) Value(c Column) string {
	switch c {
	case Brand:
		return r.Brand
	case Model:
		return r.Model
	case Submodel:
		return r.Submodel
	case TyreBrand:
		return r.TyreBrand
	case Type:
		return r.Type
	case Size:
		return r.Size
	}
	return ""
}

// Codes holds the integer code of every categorical column of one record,
// indexed by Column.
type Codes [NumCategorical]int

// FeatureDim is the dimensionality of a FeatureVector.
const FeatureDim = 5

// FeatureVector is the encoded (Brand, Model, Submodel, Type, Size) tuple.
type FeatureVector [FeatureDim]int

// Float64s converts the vector for distance computation.
func (v FeatureVector) Float64s() []float64 {
	out := make([]float64, FeatureDim)
	for i, c := range v {
		out[i] = float64(c)
	}
	return out
}

// Query is the vehicle description supplied by the caller.
type Query struct {
	Brand    string
	Model    string
	Submodel string
	Type     string
	Size     string
}

// Value returns the query field for a feature column.
func (q Query) Value(c Column) string {
	switch c {
	case Brand:
		return q.Brand
	case Model:
		return q.Model
	case Submodel:
		return q.Submodel
	case Type:
		return q.Type
	case Size:
		return q.Size
	}
	return ""
}

// Neighbor is a catalog row returned by an index lookup.
type Neighbor struct {
	Row      int
	Distance float64
}

// Recommendation is one decoded result row.
type Recommendation struct {
	TyreBrand     string
	Size          string
	SellingPrice  float64
	OriginalPrice float64
	Rating        float64
	Distance      float64
	Row           int
}

// Recommender defines the operations exposed by the application core.
type Recommender interface {
	Recommend(q Query) ([]Recommendation, error)
	ModelsFor(brand string) ([]string, error)
	SubmodelsFor(model string) ([]string, error)
	ExpectedSizeFor(submodel string) (string, error)
	Brands() []string
	Types() []string
}
