package features

import (
	"tyrerec/internal/codec"
	"tyrerec/internal/domain"
)

// Project selects the similarity columns of an encoded record.
func Project(codes domain.Codes) domain.FeatureVector {
	var v domain.FeatureVector
	for i, col := range domain.FeatureColumns {
		v[i] = codes[col]
	}
	return v
}

// Matrix projects every encoded record, preserving row order.
func Matrix(encoded []domain.Codes) []domain.FeatureVector {
	out := make([]domain.FeatureVector, len(encoded))
	for i, codes := range encoded {
		out[i] = Project(codes)
	}
	return out
}

// EncodeQuery encodes the query fields in feature order. The first
// unrecognized field aborts with its *domain.UnknownCategoryError.
func EncodeQuery(codecs *codec.Set, q domain.Query) (domain.FeatureVector, error) {
	var v domain.FeatureVector
	for i, col := range domain.FeatureColumns {
		code, err := codecs.Encode(col, q.Value(col))
		if err != nil {
			return domain.FeatureVector{}, err
		}
		v[i] = code
	}
	return v, nil
}
