package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tyrerec/internal/domain"
)

func TestFitSortsDistinctValues(t *testing.T) {
	m := Fit(domain.Size, []string{"90/100-10", "100/90-17", "90/100-10", "80/100-18"})

	assert.Equal(t, 3, m.Len())
	assert.Equal(t, []string{"100/90-17", "80/100-18", "90/100-10"}, m.Values())

	tests := []struct {
		value string
		code  int
	}{
		{"100/90-17", 0},
		{"80/100-18", 1},
		{"90/100-10", 2},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			code, err := m.Encode(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestFitNumericLookingValuesAreText(t *testing.T) {
	m := Fit(domain.Submodel, []string{"150", "20", "3"})
	// lexicographic, not numeric
	assert.Equal(t, []string{"150", "20", "3"}, m.Values())
}

func TestFitDeterministic(t *testing.T) {
	in := []string{"b", "a", "c", "a"}
	a := Fit(domain.Brand, in)
	b := Fit(domain.Brand, []string{"c", "a", "b"})
	assert.Equal(t, a.Values(), b.Values())
	for _, v := range in {
		ca, _ := a.Encode(v)
		cb, _ := b.Encode(v)
		assert.Equal(t, ca, cb, v)
	}
}

func TestEncodeUnknown(t *testing.T) {
	m := Fit(domain.Type, []string{"Tube", "Tubeless"})
	_, err := m.Encode("Radial")

	var uce *domain.UnknownCategoryError
	require.True(t, errors.As(err, &uce))
	assert.Equal(t, domain.Type, uce.Column)
	assert.Equal(t, "Radial", uce.Value)
	assert.Contains(t, err.Error(), "value not recognized")
}

func TestDecodeInvalidCode(t *testing.T) {
	m := Fit(domain.Type, []string{"Tube", "Tubeless"})
	for _, code := range []int{-1, 2, 100} {
		_, err := m.Decode(code)
		var ice *domain.InvalidCodeError
		require.True(t, errors.As(err, &ice), "code %d", code)
		assert.Equal(t, code, ice.Code)
	}
}

func TestValuesIsCopy(t *testing.T) {
	m := Fit(domain.Brand, []string{"a", "b"})
	v := m.Values()
	v[0] = "z"
	assert.Equal(t, []string{"a", "b"}, m.Values())
}

var records = []domain.CatalogRecord{
	{Brand: "Honda", Model: "Activa", Submodel: "6G", TyreBrand: "MRF", Type: "Tubeless", Size: "90/100-10"},
	{Brand: "Honda", Model: "Shine", Submodel: "Drum", TyreBrand: "CEAT", Type: "Tube", Size: "80/100-18"},
	{Brand: "Bajaj", Model: "Pulsar", Submodel: "150", TyreBrand: "MRF", Type: "Tubeless", Size: "100/90-17"},
	{Brand: "", Model: "Pulsar", Submodel: "150", TyreBrand: "TVS", Type: "Tubeless", Size: "100/90-17"},
}

func TestSetRoundTrip(t *testing.T) {
	s := FitCatalog(records)
	for _, col := range domain.CategoricalColumns {
		for _, r := range records {
			v := r.Value(col)
			code, err := s.Encode(col, v)
			require.NoError(t, err)
			got, err := s.Decode(col, code)
			require.NoError(t, err)
			assert.Equal(t, v, got, "%s", col)
		}
	}
}

func TestSetEncodeCatalog(t *testing.T) {
	s := FitCatalog(records)
	encoded, err := s.EncodeCatalog(records)
	require.NoError(t, err)
	require.Len(t, encoded, len(records))

	// Brand domain: "", "Bajaj", "Honda"
	assert.Equal(t, 2, encoded[0][domain.Brand])
	assert.Equal(t, 1, encoded[2][domain.Brand])
	assert.Equal(t, 0, encoded[3][domain.Brand])

	assert.Equal(t, map[string]int{
		"Brand": 3, "Model": 3, "Submodel": 3, "Tyre Brand": 3, "Type": 2, "Size": 3,
	}, s.Sizes())

	_, err = s.EncodeCatalog([]domain.CatalogRecord{{Brand: "Yamaha"}})
	var uce *domain.UnknownCategoryError
	assert.True(t, errors.As(err, &uce))
}

func TestSetFitTwiceIdentical(t *testing.T) {
	a := FitCatalog(records)
	b := FitCatalog(records)
	for _, col := range domain.CategoricalColumns {
		assert.Equal(t, a.Mapping(col).Values(), b.Mapping(col).Values())
	}
}
