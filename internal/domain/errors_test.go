package domain

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumnString(t *testing.T) {
	assert.Equal(t, "Tyre Brand", TyreBrand.String())
	assert.Equal(t, "Size", Size.String())
	assert.Equal(t, "Column(42)", Column(42).String())
}

func TestRequiredHeaders(t *testing.T) {
	assert.Equal(t, []string{
		"Brand", "Model", "Submodel", "Tyre Brand", "Type", "Size",
		"Selling Price", "Original Price", "Rating",
	}, RequiredHeaders())
}

func TestRecordAndQueryValues(t *testing.T) {
	r := CatalogRecord{Brand: "b", Model: "m", Submodel: "s", TyreBrand: "t", Type: "y", Size: "z"}
	q := Query{Brand: "b", Model: "m", Submodel: "s", Type: "y", Size: "z"}
	for _, c := range FeatureColumns {
		assert.Equal(t, r.Value(c), q.Value(c), c.String())
	}
	assert.Equal(t, "t", r.Value(TyreBrand))
	assert.Equal(t, "", q.Value(TyreBrand))
}

func TestFeatureVectorFloat64s(t *testing.T) {
	assert.Equal(t, []float64{1, 0, 2, 1, 3}, FeatureVector{1, 0, 2, 1, 3}.Float64s())
}

func TestErrorMessages(t *testing.T) {
	le := NewMissingColumnsError("tyres.csv", []string{"Rating", "Size"})
	assert.Equal(t, "load catalog tyres.csv: missing required columns: Rating, Size", le.Error())

	wrapped := NewLoadError("tyres.csv", os.ErrNotExist)
	assert.True(t, errors.Is(wrapped, os.ErrNotExist))

	uce := &UnknownCategoryError{Column: Model, Value: "Splendor"}
	assert.Equal(t, `value not recognized: Model "Splendor"`, uce.Error())

	nde := NewNoDataError(Submodel, "X", uce)
	var got *UnknownCategoryError
	assert.True(t, errors.As(nde, &got))
	assert.Equal(t, `no data for Submodel "X"`, nde.Error())

	assert.Equal(t, "insufficient data: 3 rows, need at least 5", (&InsufficientDataError{Rows: 3, K: 5}).Error())
	assert.Equal(t, "invalid code 9 for column Size", (&InvalidCodeError{Column: Size, Code: 9}).Error())
}
