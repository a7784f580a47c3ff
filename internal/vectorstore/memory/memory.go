package memory

import (
	"sort"

	"tyrerec/internal/domain"
	"tyrerec/internal/vectorstore"
)

// Storage is an immutable in-memory index using a brute-force linear scan.
// It is safe for concurrent Search calls.
type Storage struct {
	metric  vectorstore.Metric
	dist    vectorstore.Func
	vectors [][]float64
}

// NewStorage builds the index over matrix. Row i of the matrix is reported
// as Neighbor.Row i.
func NewStorage(matrix []domain.FeatureVector, metric vectorstore.Metric) (*Storage, error) {
	if len(matrix) == 0 {
		return nil, vectorstore.ErrEmptyIndex
	}
	dist, err := vectorstore.Provider(metric)
	if err != nil {
		return nil, err
	}
	if metric == "" {
		metric = vectorstore.Euclidean
	}
	vectors := make([][]float64, len(matrix))
	for i, v := range matrix {
		vectors[i] = v.Float64s()
	}
	return &Storage{metric: metric, dist: dist, vectors: vectors}, nil
}

// Len returns the number of indexed rows.
func (s *Storage) Len() int { return len(s.vectors) }

// Metric returns the distance metric of the index.
func (s *Storage) Metric() vectorstore.Metric { return s.metric }

// Search returns the k rows closest to vector in ascending distance.
// Equal distances keep row order.
func (s *Storage) Search(vector domain.FeatureVector, k int) ([]domain.Neighbor, error) {
	if k <= 0 {
		return nil, vectorstore.ErrInvalidK
	}
	if k > len(s.vectors) {
		return nil, &domain.InsufficientDataError{Rows: len(s.vectors), K: k}
	}
	q := vector.Float64s()
	scored := make([]domain.Neighbor, len(s.vectors))
	for i, v := range s.vectors {
		scored[i] = domain.Neighbor{Row: i, Distance: s.dist(q, v)}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Distance < scored[j].Distance })
	return scored[:k:k], nil
}

var _ vectorstore.Index = (*Storage)(nil)
