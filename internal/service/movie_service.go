// internal/service/movie_service.go
package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"cinematch/internal/enrich"
	"cinematch/internal/index"
	"cinematch/internal/models"
)

const NoOverview = "No overview available for this movie."

type MovieService struct {
	idx      *index.Index
	enricher enrich.Enricher
}

func NewMovieService(idx *index.Index, e enrich.Enricher) *MovieService {
	return &MovieService{idx: idx, enricher: e}
}

// Titles catálogo ordenado y sin duplicados.
func (s *MovieService) Titles() []string {
	return s.idx.Titles()
}

// GetMovie devuelve la película seleccionada con su metadata de TMDB.
// Overview, rating y fecha caen a los del dataset cuando TMDB no los tiene.
func (s *MovieService) GetMovie(ctx context.Context, title string) (*models.MovieView, error) {
	row, err := s.idx.Resolve(title)
	if err != nil {
		return nil, err
	}
	rec, _ := s.idx.Record(row)

	details := s.enricher.Enrich(ctx, title)
	view := &models.MovieView{
		Movie:       rec,
		Details:     details,
		Overview:    firstNonEmpty(details.Overview, rec.Overview, NoOverview),
		ReleaseDate: firstNonEmpty(details.ReleaseDate, rec.ReleaseDate),
	}

	switch {
	case details.Rating != nil:
		view.Rating = details.Rating
	case rec.VoteAverage > 0:
		v := rec.VoteAverage
		view.Rating = &v
	}
	if y, ok := ParseYear(view.ReleaseDate); ok {
		view.Year = &y
	}
	return view, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// ParseYear acepta "2006-01-02", RFC3339 o un año suelto.
func ParseYear(date string) (int, bool) {
	date = strings.TrimSpace(date)
	if date == "" {
		return 0, false
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006"} {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Year(), true
		}
	}
	if len(date) >= 4 {
		if y, err := strconv.Atoi(date[:4]); err == nil && y > 1800 {
			return y, true
		}
	}
	return 0, false
}
