package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"cinematch/internal/cluster"
	"cinematch/internal/enrich"
	"cinematch/internal/index"
	"cinematch/internal/models"
)

type fakeEnricher map[string]models.EnrichmentResult

func (f fakeEnricher) Enrich(_ context.Context, title string) models.EnrichmentResult {
	if r, ok := f[title]; ok {
		return r
	}
	return models.Placeholder(fmt.Sprintf("Couldn't find '%s' on TMDB.", title))
}

func testIndex(t *testing.T, n int) *index.Index {
	t.Helper()
	records := make([]models.MovieRecord, n)
	vectors := make([]models.FeatureVector, n)
	for i := range records {
		records[i] = models.MovieRecord{Title: fmt.Sprintf("Movie %d", i), VoteAverage: 6.5, ReleaseDate: "1999-03-31"}
		vectors[i] = models.FeatureVector{Indices: []int{0}, Values: []float64{float64(i)}}
	}
	idx, err := index.New(records, vectors, index.Euclidean, nil)
	if err != nil {
		t.Fatal(err)
	}
	return idx
}

func newRecommendService(idx *index.Index, e enrich.Enricher) *RecommendService {
	return NewRecommendService(idx, NewLocalNeighbors(idx), enrich.NewBatcher(e, 4), 5, 10)
}

func TestRecommend(t *testing.T) {
	idx := testIndex(t, 30)
	e := fakeEnricher{"Movie 1": {PosterURL: "p1", TMDBID: 1}}
	svc := newRecommendService(idx, e)

	recs, err := svc.Recommend(context.Background(), "Movie 0", 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(recs) != 5 {
		t.Fatalf("len = %d, want default 5", len(recs))
	}
	for i, r := range recs {
		want := fmt.Sprintf("Movie %d", i+1)
		if r.Movie.Title != want {
			t.Errorf("recs[%d] = %q, want %q", i, r.Movie.Title, want)
		}
	}
	if recs[0].Details.PosterURL != "p1" {
		t.Errorf("recs[0].Details = %+v", recs[0].Details)
	}
	// el resto falla el enriquecimiento pero la recomendación sigue
	if !recs[1].Details.IsPlaceholder() {
		t.Errorf("recs[1] should be a placeholder")
	}
}

func TestRecommendClampsN(t *testing.T) {
	svc := newRecommendService(testIndex(t, 30), fakeEnricher{})

	recs, err := svc.Recommend(context.Background(), "Movie 3", 500)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(recs) != 10 {
		t.Fatalf("len = %d, want max 10", len(recs))
	}
}

func TestRecommendSmallIndex(t *testing.T) {
	svc := newRecommendService(testIndex(t, 4), fakeEnricher{})

	recs, err := svc.Recommend(context.Background(), "Movie 0", 5)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("len = %d, want 3", len(recs))
	}
}

func TestRecommendErrors(t *testing.T) {
	records := []models.MovieRecord{{Title: "A"}, {Title: "B"}}
	vectors := []models.FeatureVector{{}, {}}
	idx, err := index.New(records, vectors, index.Cosine, map[string][]int{"A": {0}, "B": {1}, "Broken": {9}})
	if err != nil {
		t.Fatal(err)
	}
	svc := newRecommendService(idx, fakeEnricher{})

	if _, err := svc.Recommend(context.Background(), "Nope", 5); !errors.Is(err, index.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}

	var die *index.DataIntegrityError
	if _, err := svc.Recommend(context.Background(), "Broken", 5); !errors.As(err, &die) {
		t.Errorf("error = %v, want DataIntegrityError", err)
	}
}

func TestRemoteNeighborsFallsBackToLocal(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()

	idx := testIndex(t, 10)
	remote := NewRemoteNeighbors(cluster.NewClient(addr, 200*time.Millisecond), idx)
	got, err := remote.FindSimilar(context.Background(), 0, 3)
	if err != nil {
		t.Fatalf("FindSimilar() error = %v", err)
	}
	if len(got) != 3 || got[0].Movie.Title != "Movie 1" {
		t.Fatalf("got %+v", got)
	}
}

func TestGetMovieFallbacks(t *testing.T) {
	idx := testIndex(t, 3)
	rating := 8.0

	t.Run("tmdb data wins", func(t *testing.T) {
		e := fakeEnricher{"Movie 1": {PosterURL: "p", Overview: "from tmdb", Rating: &rating, ReleaseDate: "2010-07-16"}}
		v, err := NewMovieService(idx, e).GetMovie(context.Background(), "Movie 1")
		if err != nil {
			t.Fatalf("GetMovie() error = %v", err)
		}
		if v.Overview != "from tmdb" || *v.Rating != 8.0 || *v.Year != 2010 {
			t.Errorf("got %+v", v)
		}
	})

	t.Run("dataset fallback", func(t *testing.T) {
		v, err := NewMovieService(idx, fakeEnricher{}).GetMovie(context.Background(), "Movie 2")
		if err != nil {
			t.Fatalf("GetMovie() error = %v", err)
		}
		if !v.Details.IsPlaceholder() {
			t.Errorf("expected placeholder details")
		}
		if v.Overview != NoOverview {
			t.Errorf("Overview = %q", v.Overview)
		}
		if v.Rating == nil || *v.Rating != 6.5 || v.Year == nil || *v.Year != 1999 {
			t.Errorf("rating/year = %v %v", v.Rating, v.Year)
		}
	})

	t.Run("tmdb zero rating is kept", func(t *testing.T) {
		zero := 0.0
		e := fakeEnricher{"Movie 1": {PosterURL: "p", Rating: &zero}}
		v, err := NewMovieService(idx, e).GetMovie(context.Background(), "Movie 1")
		if err != nil {
			t.Fatalf("GetMovie() error = %v", err)
		}
		if v.Rating == nil || *v.Rating != 0 {
			t.Errorf("Rating = %v, want 0 from tmdb", v.Rating)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := NewMovieService(idx, fakeEnricher{}).GetMovie(context.Background(), "Nope")
		if !errors.Is(err, index.ErrNotFound) {
			t.Errorf("error = %v", err)
		}
	})
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"2010-07-16", 2010, true},
		{"1979", 1979, true},
		{"2001-01-01T00:00:00Z", 2001, true},
		{"1995-12", 1995, true},
		{"", 0, false},
		{"unknown", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseYear(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseYear(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
