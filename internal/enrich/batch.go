package enrich

import (
	"context"
	"fmt"

	"cinematch/internal/logging"
	"cinematch/internal/models"

	"golang.org/x/sync/errgroup"
)

// Batcher reparte llamadas a Enrich en un pool acotado de workers.
type Batcher struct {
	enricher Enricher
	workers  int
}

func NewBatcher(e Enricher, workers int) *Batcher {
	if workers <= 0 {
		workers = 8
	}
	return &Batcher{enricher: e, workers: workers}
}

// EnrichAll devuelve un resultado por título, en el mismo orden de entrada.
// Bloquea hasta que terminan todas las llamadas; no cancela las que están
// en vuelo y un fallo en un título no afecta a los demás.
func (b *Batcher) EnrichAll(ctx context.Context, titles []string) []models.EnrichmentResult {
	out := make([]models.EnrichmentResult, len(titles))
	if len(titles) == 0 {
		return out
	}
	ctx = context.WithoutCancel(ctx)

	var g errgroup.Group
	g.SetLimit(b.workers)
	for i, title := range titles {
		i, title := i, title
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					logging.Error().Str("title", title).Interface("panic", r).Msg("[enrich] panic en worker")
					out[i] = models.Placeholder(fmt.Sprintf("enrichment failed: %v", r))
				}
			}()
			out[i] = b.enricher.Enrich(ctx, title)
			return nil
		})
	}
	_ = g.Wait()
	return out
}
