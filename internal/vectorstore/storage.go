package vectorstore

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"tyrerec/internal/domain"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")
	// ErrEmptyIndex is returned when building over no rows.
	ErrEmptyIndex = errors.New("cannot build index over an empty matrix")
)

// Index answers k-nearest-neighbor queries over an immutable feature matrix.
type Index interface {
	Len() int
	Metric() Metric
	Search(vector domain.FeatureVector, k int) ([]domain.Neighbor, error)
}

// Type selects the index implementation.
type Type string

// BruteForce scans every row on each query. It is the only exact index and the
// default.
const BruteForce Type = "bruteforce"

// Metric selects the distance between feature vectors.
type Metric string

const (
	// Euclidean treats codes as coordinates. This is the default.
	Euclidean Metric = "euclidean"
	// Hamming counts mismatched columns.
	Hamming Metric = "hamming"
)

// Func computes the distance between two vectors of equal length.
type Func func(a, b []float64) float64

// Provider returns the distance function for m. An empty metric is Euclidean.
func Provider(m Metric) (Func, error) {
	switch m {
	case Euclidean, "":
		return euclidean, nil
	case Hamming:
		return hamming, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %q", string(m))
	}
}

func euclidean(a, b []float64) float64 { return floats.Distance(a, b, 2) }

func hamming(a, b []float64) float64 {
	d := 0.0
	for i := range a {
		if a[i] != b[i] {
			d++
		}
	}
	return d
}
