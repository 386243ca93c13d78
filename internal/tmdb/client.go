// Package tmdb es el cliente HTTP de The Movie Database: búsqueda por
// título y detalle por id, con timeout fijo, rate limit y circuit breaker.
package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cinematch/internal/logging"
	"cinematch/internal/metrics"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://api.themoviedb.org/3"
	ImageBaseURL   = "https://image.tmdb.org/t/p/w500"
	WebBaseURL     = "https://www.themoviedb.org/movie"

	maxBody = 2 << 20
)

// StatusError respuesta no-2xx de TMDB.
type StatusError struct {
	Endpoint string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb %s: status %d", e.Endpoint, e.Code)
}

type SearchResult struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
}

type searchResponse struct {
	Results []SearchResult `json:"results"`
}

type MovieDetails struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	PosterPath  string   `json:"poster_path"`
	Tagline     string   `json:"tagline"`
	ReleaseDate string   `json:"release_date"`
	VoteAverage *float64 `json:"vote_average"`
	Overview    string   `json:"overview"`
}

type Options struct {
	APIKey  string
	BaseURL string
	// Timeout por request HTTP (default 10s)
	Timeout time.Duration
	// RPS límite de requests por segundo; <= 0 desactiva el limiter
	RPS        float64
	HTTPClient *http.Client
}

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[[]byte]
}

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	// el timeout manda aunque el http.Client venga de afuera
	hcCopy := *hc
	hcCopy.Timeout = opts.Timeout

	c := &Client{
		apiKey:  opts.APIKey,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    &hcCopy,
	}
	if opts.RPS > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RPS), int(opts.RPS)+1)
	}

	const cbName = "tmdb"
	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0)
	c.cb = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("from", from.String()).Str("to", to.String()).Msg("[tmdb] circuit breaker cambió de estado")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})
	return c
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// SearchMovie busca por título. Cero resultados no es error.
func (c *Client) SearchMovie(ctx context.Context, query string) ([]SearchResult, error) {
	body, err := c.get(ctx, "search", "/search/movie", url.Values{"query": {query}})
	if err != nil {
		return nil, err
	}
	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("tmdb search: decodificando respuesta: %w", err)
	}
	return resp.Results, nil
}

func (c *Client) MovieDetails(ctx context.Context, id int) (*MovieDetails, error) {
	body, err := c.get(ctx, "details", "/movie/"+strconv.Itoa(id), nil)
	if err != nil {
		return nil, err
	}
	var d MovieDetails
	if err := json.Unmarshal(body, &d); err != nil {
		return nil, fmt.Errorf("tmdb details: decodificando respuesta: %w", err)
	}
	if d.ID == 0 {
		d.ID = id
	}
	return &d, nil
}

func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("tmdb %s: rate limit: %w", endpoint, err)
		}
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	u := c.baseURL + path + "?" + params.Encode()

	start := time.Now()
	body, err := c.cb.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, redact(err, c.apiKey)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
			return nil, &StatusError{Endpoint: endpoint, Code: resp.StatusCode}
		}
		return io.ReadAll(io.LimitReader(resp.Body, maxBody))
	})
	metrics.RecordTMDBRequest(endpoint, time.Since(start), err)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("tmdb %s: %w", endpoint, err)
		}
		return nil, err
	}
	return body, nil
}

// redact saca la api key de los errores de transporte (url.Error incluye la URL).
func redact(err error, key string) error {
	if key == "" {
		return err
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		return &url.Error{Op: ue.Op, URL: strings.ReplaceAll(ue.URL, key, "***"), Err: ue.Err}
	}
	return err
}

// PosterURL arma la URL de la imagen; "" si no hay poster_path.
func PosterURL(posterPath string) string {
	if posterPath == "" {
		return ""
	}
	return ImageBaseURL + "/" + strings.TrimLeft(posterPath, "/")
}

func MovieURL(id int) string {
	return WebBaseURL + "/" + strconv.Itoa(id)
}
