package service

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"tyrerec/internal/codec"
	"tyrerec/internal/domain"
	"tyrerec/internal/features"
	"tyrerec/internal/vectorstore"
	"tyrerec/internal/vectorstore/memory"
)

// DefaultK is the number of recommendations returned per query.
const DefaultK = 5

// Options configures Build.
type Options struct {
	K      int
	Index  vectorstore.Type
	Metric vectorstore.Metric
	Logger zerolog.Logger
}

// RecommendationService answers recommendation and cascading-filter queries
// over a catalog. It is read-only once constructed and safe for concurrent use.
type RecommendationService struct {
	records []domain.CatalogRecord
	encoded []domain.Codes
	codecs  *codec.Set
	index   vectorstore.Index
	k       int
	log     zerolog.Logger
}

// Build fits the codecs, projects the feature matrix and builds the index
// selected by opts.Index. No service is returned unless every step succeeds.
func Build(records []domain.CatalogRecord, opts Options) (*RecommendationService, error) {
	k := opts.K
	if k == 0 {
		k = DefaultK
	}
	if k < 0 {
		return nil, vectorstore.ErrInvalidK
	}
	if len(records) < k {
		return nil, &domain.InsufficientDataError{Rows: len(records), K: k}
	}
	codecs := codec.FitCatalog(records)
	encoded, err := codecs.EncodeCatalog(records)
	if err != nil {
		return nil, err
	}
	var index vectorstore.Index
	switch opts.Index {
	case "", vectorstore.BruteForce:
		index, err = memory.NewStorage(features.Matrix(encoded), opts.Metric)
	default:
		err = fmt.Errorf("unsupported index type %q", opts.Index)
	}
	if err != nil {
		return nil, err
	}
	svc, err := newService(records, codecs, encoded, index, k, opts.Logger)
	if err != nil {
		return nil, err
	}
	opts.Logger.Info().
		Int("rows", len(records)).
		Int("k", k).
		Str("metric", string(index.Metric())).
		Interface("domains", codecs.Sizes()).
		Msg("recommendation index built")
	return svc, nil
}

// NewRecommendationService assembles a service from a fitted codec set and a
// prebuilt index whose row i corresponds to records[i].
func NewRecommendationService(records []domain.CatalogRecord, codecs *codec.Set, index vectorstore.Index, k int, log zerolog.Logger) (*RecommendationService, error) {
	encoded, err := codecs.EncodeCatalog(records)
	if err != nil {
		return nil, err
	}
	return newService(records, codecs, encoded, index, k, log)
}

func newService(records []domain.CatalogRecord, codecs *codec.Set, encoded []domain.Codes, index vectorstore.Index, k int, log zerolog.Logger) (*RecommendationService, error) {
	if k <= 0 {
		return nil, vectorstore.ErrInvalidK
	}
	if index.Len() != len(records) {
		return nil, fmt.Errorf("index has %d rows, catalog has %d", index.Len(), len(records))
	}
	if index.Len() < k {
		return nil, &domain.InsufficientDataError{Rows: index.Len(), K: k}
	}
	return &RecommendationService{
		records: records,
		encoded: encoded,
		codecs:  codecs,
		index:   index,
		k:       k,
		log:     log,
	}, nil
}

// K returns the number of neighbors returned per query.
func (s *RecommendationService) K() int { return s.k }

// Len returns the number of catalog rows.
func (s *RecommendationService) Len() int { return len(s.records) }

// Recommend returns the k catalog rows nearest to the query, closest first.
// An unrecognized field fails the whole query with *domain.UnknownCategoryError.
func (s *RecommendationService) Recommend(q domain.Query) ([]domain.Recommendation, error) {
	vec, err := features.EncodeQuery(s.codecs, q)
	if err != nil {
		s.log.Debug().Err(err).Msg("query rejected")
		return nil, err
	}
	neighbors, err := s.index.Search(vec, s.k)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Recommendation, 0, len(neighbors))
	for _, n := range neighbors {
		if n.Row < 0 || n.Row >= len(s.records) {
			return nil, fmt.Errorf("index returned row %d outside catalog of %d rows", n.Row, len(s.records))
		}
		codes := s.encoded[n.Row]
		tyreBrand, err := s.decode(domain.TyreBrand, codes[domain.TyreBrand])
		if err != nil {
			return nil, err
		}
		size, err := s.decode(domain.Size, codes[domain.Size])
		if err != nil {
			return nil, err
		}
		rec := s.records[n.Row]
		out = append(out, domain.Recommendation{
			TyreBrand:     tyreBrand,
			Size:          size,
			SellingPrice:  rec.SellingPrice,
			OriginalPrice: rec.OriginalPrice,
			Rating:        rec.Rating,
			Distance:      n.Distance,
			Row:           n.Row,
		})
	}
	s.log.Debug().Int("results", len(out)).Msg("query served")
	return out, nil
}

// ModelsFor returns the distinct models of brand, sorted.
func (s *RecommendationService) ModelsFor(brand string) ([]string, error) {
	return s.distinctWhere(domain.Brand, brand, domain.Model)
}

// SubmodelsFor returns the distinct submodels of model, sorted.
func (s *RecommendationService) SubmodelsFor(model string) ([]string, error) {
	return s.distinctWhere(domain.Model, model, domain.Submodel)
}

// ExpectedSizeFor returns the most frequent size among rows of submodel.
// Ties resolve to the smallest size in sort order.
func (s *RecommendationService) ExpectedSizeFor(submodel string) (string, error) {
	code, err := s.codecs.Encode(domain.Submodel, submodel)
	if err != nil {
		return "", domain.NewNoDataError(domain.Submodel, submodel, err)
	}
	counts := make(map[int]int)
	for _, codes := range s.encoded {
		if codes[domain.Submodel] == code {
			counts[codes[domain.Size]]++
		}
	}
	if len(counts) == 0 {
		return "", domain.NewNoDataError(domain.Submodel, submodel, nil)
	}
	best, bestCount := -1, 0
	for size, n := range counts {
		if n > bestCount || (n == bestCount && size < best) {
			best, bestCount = size, n
		}
	}
	return s.decode(domain.Size, best)
}

// Brands returns the sorted brand domain.
func (s *RecommendationService) Brands() []string {
	return s.codecs.Mapping(domain.Brand).Values()
}

// Types returns the sorted tyre type domain.
func (s *RecommendationService) Types() []string {
	return s.codecs.Mapping(domain.Type).Values()
}

func (s *RecommendationService) distinctWhere(filter domain.Column, value string, target domain.Column) ([]string, error) {
	code, err := s.codecs.Encode(filter, value)
	if err != nil {
		return nil, domain.NewNoDataError(filter, value, err)
	}
	seen := make(map[int]struct{})
	for _, codes := range s.encoded {
		if codes[filter] == code {
			seen[codes[target]] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil, domain.NewNoDataError(filter, value, nil)
	}
	targets := make([]int, 0, len(seen))
	for c := range seen {
		targets = append(targets, c)
	}
	// codes follow sorted value order
	slices.Sort(targets)
	out := make([]string, len(targets))
	for i, c := range targets {
		v, err := s.decode(target, c)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (s *RecommendationService) decode(col domain.Column, code int) (string, error) {
	v, err := s.codecs.Decode(col, code)
	if err != nil {
		s.log.Error().Err(err).Str("column", col.String()).Int("code", code).Msg("codec invariant violated")
		return "", err
	}
	return v, nil
}

var _ domain.Recommender = (*RecommendationService)(nil)
