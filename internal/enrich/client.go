// Package enrich agrega metadata de TMDB (póster, rating, sinopsis) a los
// títulos recomendados. Los fallos nunca se propagan: se convierten en un
// resultado placeholder con un mensaje legible.
package enrich

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"cinematch/internal/logging"
	"cinematch/internal/metrics"
	"cinematch/internal/models"
	"cinematch/internal/tmdb"
)

// Enricher es lo que consume el batcher; lo implementan Client y Memo.
type Enricher interface {
	Enrich(ctx context.Context, title string) models.EnrichmentResult
}

// API es la parte de tmdb.Client que usa el enriquecedor.
type API interface {
	SearchMovie(ctx context.Context, query string) ([]tmdb.SearchResult, error)
	MovieDetails(ctx context.Context, id int) (*tmdb.MovieDetails, error)
}

type Client struct {
	api API
}

func NewClient(api API) *Client {
	return &Client{api: api}
}

// Enrich busca el título tal cual; si no hay resultados reintenta una vez
// con el título limpio (solo letras y espacios). Toma el primer match y pide
// el detalle. Nunca devuelve error.
func (c *Client) Enrich(ctx context.Context, title string) models.EnrichmentResult {
	res := c.enrich(ctx, title)
	metrics.RecordEnrich(res.IsPlaceholder())
	if res.IsPlaceholder() {
		logging.Debug().Str("title", title).Str("reason", res.Error).Msg("[enrich] placeholder")
	}
	return res
}

func (c *Client) enrich(ctx context.Context, title string) models.EnrichmentResult {
	results, err := c.api.SearchMovie(ctx, title)
	if err != nil {
		return failed(err)
	}

	if len(results) == 0 {
		if clean := CleanTitle(title); clean != "" && clean != title {
			results, err = c.api.SearchMovie(ctx, clean)
			if err != nil {
				return failed(err)
			}
		}
		if len(results) == 0 {
			return models.Placeholder(fmt.Sprintf("Couldn't find '%s' on TMDB.", title))
		}
	}

	best := results[0]
	if best.ID == 0 {
		return models.Placeholder("API found a match but no movie ID.")
	}

	d, err := c.api.MovieDetails(ctx, best.ID)
	if err != nil {
		return failed(err)
	}

	poster := tmdb.PosterURL(d.PosterPath)
	if poster == "" {
		poster = models.PlaceholderPoster
	}
	return models.EnrichmentResult{
		PosterURL:   poster,
		Tagline:     d.Tagline,
		SourceURL:   tmdb.MovieURL(best.ID),
		ReleaseDate: d.ReleaseDate,
		Rating:      d.VoteAverage,
		Overview:    d.Overview,
		TMDBID:      best.ID,
	}
}

func failed(err error) models.EnrichmentResult {
	return models.Placeholder(fmt.Sprintf("API request failed: %v", err))
}

// CleanTitle deja solo letras y espacios: "Alien (1979)" -> "Alien".
func CleanTitle(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
