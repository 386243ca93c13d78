package enrich

import (
	"context"
	"sync"
	"time"

	"cinematch/internal/cache"
	"cinematch/internal/logging"
	"cinematch/internal/metrics"
	"cinematch/internal/models"

	"golang.org/x/sync/singleflight"
)

const defaultMemoEntries = 10000

// Memo memoiza resultados por título exacto. Cada título se calcula una sola
// vez aunque lo pidan varios requests a la vez (singleflight). Los
// placeholders no se guardan: un fallo de red no debe quedar pegado.
type Memo struct {
	next  Enricher
	redis *cache.Redis
	ttl   time.Duration
	max   int

	mu    sync.RWMutex
	items map[string]models.EnrichmentResult
	group singleflight.Group
}

// NewMemo envuelve next. redis puede ser nil.
func NewMemo(next Enricher, redis *cache.Redis, ttl time.Duration, maxEntries int) *Memo {
	if maxEntries <= 0 {
		maxEntries = defaultMemoEntries
	}
	return &Memo{
		next:  next,
		redis: redis,
		ttl:   ttl,
		max:   maxEntries,
		items: make(map[string]models.EnrichmentResult),
	}
}

func (m *Memo) Enrich(ctx context.Context, title string) models.EnrichmentResult {
	if res, ok := m.lookup(title); ok {
		metrics.EnrichCacheHits.WithLabelValues("memory").Inc()
		return res
	}

	// el cálculo compartido no depende de la cancelación del primer caller
	ctx = context.WithoutCancel(ctx)
	v, _, _ := m.group.Do(title, func() (any, error) {
		if res, ok := m.lookup(title); ok {
			return res, nil
		}

		var res models.EnrichmentResult
		if ok, err := m.redis.GetJSON(ctx, redisKey(title), &res); err == nil && ok {
			metrics.EnrichCacheHits.WithLabelValues("redis").Inc()
			m.store(title, res)
			return res, nil
		} else if err != nil {
			logging.Warn().Err(err).Str("title", title).Msg("[enrich] error leyendo cache redis")
		}

		res = m.next.Enrich(ctx, title)
		if res.IsPlaceholder() {
			return res, nil
		}

		m.store(title, res)
		if err := m.redis.SetJSON(ctx, redisKey(title), res, m.ttl); err != nil {
			logging.Warn().Err(err).Str("title", title).Msg("[enrich] error guardando en redis")
		}
		return res, nil
	})
	return v.(models.EnrichmentResult)
}

func (m *Memo) lookup(title string) (models.EnrichmentResult, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res, ok := m.items[title]
	return res, ok
}

// store es first-writer-wins; con el memo lleno no guarda más.
func (m *Memo) store(title string, res models.EnrichmentResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[title]; ok || len(m.items) >= m.max {
		return
	}
	m.items[title] = res
}

func (m *Memo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

func redisKey(title string) string {
	return "enrich:" + title
}
