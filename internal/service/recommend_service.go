package service

import (
	"context"
	"errors"

	"cinematch/internal/enrich"
	"cinematch/internal/index"
	"cinematch/internal/logging"
	"cinematch/internal/metrics"
	"cinematch/internal/models"
)

const (
	DefaultN = 5
	MaxN     = 20 // por seguridad, no deja pedir 1000 ítems
)

type RecommendService struct {
	idx       *index.Index
	neighbors Neighbors
	batcher   *enrich.Batcher
	defaultN  int
	maxN      int
}

func NewRecommendService(idx *index.Index, neighbors Neighbors, batcher *enrich.Batcher, defaultN, maxN int) *RecommendService {
	if defaultN <= 0 {
		defaultN = DefaultN
	}
	if maxN <= 0 {
		maxN = MaxN
	}
	if defaultN > maxN {
		defaultN = maxN
	}
	return &RecommendService{
		idx:       idx,
		neighbors: neighbors,
		batcher:   batcher,
		defaultN:  defaultN,
		maxN:      maxN,
	}
}

// Recommend: título -> fila -> vecinos -> enriquecimiento en paralelo.
// Los errores de resolución (ErrNotFound, DataIntegrityError) se devuelven
// al caller; los de enriquecimiento quedan absorbidos en cada slot.
func (s *RecommendService) Recommend(ctx context.Context, title string, n int) ([]models.Recommendation, error) {
	// defaults y límites para n
	if n <= 0 {
		n = s.defaultN
	} else if n > s.maxN {
		n = s.maxN
	}

	row, err := s.idx.Resolve(title)
	if err != nil {
		metrics.RecommendRequests.WithLabelValues(outcome(err)).Inc()
		return nil, err
	}

	similar, err := s.neighbors.FindSimilar(ctx, row, n)
	if err != nil {
		metrics.RecommendRequests.WithLabelValues(outcome(err)).Inc()
		return nil, err
	}

	titles := make([]string, len(similar))
	for i, nb := range similar {
		titles[i] = nb.Movie.Title
	}
	details := s.batcher.EnrichAll(ctx, titles)

	recs := make([]models.Recommendation, len(similar))
	for i, nb := range similar {
		recs[i] = models.Recommendation{
			Movie:    nb.Movie,
			Distance: nb.Distance,
			Details:  details[i],
		}
	}

	logging.Info().Str("title", title).Int("row", row).Int("n", n).Int("results", len(recs)).Msg("[recommend] ok")
	metrics.RecommendRequests.WithLabelValues("ok").Inc()
	return recs, nil
}

func outcome(err error) string {
	var die *index.DataIntegrityError
	switch {
	case errors.Is(err, index.ErrNotFound):
		return "not_found"
	case errors.As(err, &die):
		return "integrity"
	default:
		return "error"
	}
}
