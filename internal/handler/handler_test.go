package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"cinematch/internal/enrich"
	"cinematch/internal/index"
	"cinematch/internal/models"
	"cinematch/internal/service"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

type stubEnricher struct{}

func (stubEnricher) Enrich(_ context.Context, title string) models.EnrichmentResult {
	return models.EnrichmentResult{PosterURL: "poster:" + title, TMDBID: 7}
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	records := make([]models.MovieRecord, 12)
	vectors := make([]models.FeatureVector, 12)
	for i := range records {
		records[i] = models.MovieRecord{Title: fmt.Sprintf("Movie %d", i), Overview: "ov"}
		vectors[i] = models.FeatureVector{Indices: []int{0}, Values: []float64{float64(i)}}
	}
	titleRows := map[string][]int{}
	for _, r := range records {
		titleRows[r.Title] = []int{len(titleRows)}
	}
	// "Broken" apunta a una fila que no existe
	titleRows["Broken"] = []int{99}
	idx, err := index.New(records, vectors, index.Euclidean, titleRows)
	if err != nil {
		t.Fatal(err)
	}

	var e stubEnricher
	recSvc := service.NewRecommendService(idx, service.NewLocalNeighbors(idx), enrich.NewBatcher(e, 2), 5, 8)
	movieSvc := service.NewMovieService(idx, e)
	return NewRouter(NewMovieHandler(movieSvc), NewRecommendHandler(recSvc))
}

func do(t *testing.T, h http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	rr := do(t, testRouter(t), http.MethodGet, "/health", nil)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Fatalf("health = %d %q", rr.Code, rr.Body.String())
	}
}

func TestTitles(t *testing.T) {
	rr := do(t, testRouter(t), http.MethodGet, "/movies/titles", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var titles []string
	if err := json.Unmarshal(rr.Body.Bytes(), &titles); err != nil {
		t.Fatal(err)
	}
	if len(titles) != 12 || titles[0] != "Movie 0" || titles[1] != "Movie 1" || titles[2] != "Movie 10" {
		t.Errorf("titles = %v", titles)
	}
}

func TestGetMovie(t *testing.T) {
	h := testRouter(t)

	tests := []struct {
		name  string
		title string
		code  int
	}{
		{"found", "Movie 3", http.StatusOK},
		{"not found", "Nope", http.StatusNotFound},
		{"integrity", "Broken", http.StatusUnprocessableEntity},
		{"missing title", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodGet, "/movie?title="+url.QueryEscape(tt.title), nil)
			if rr.Code != tt.code {
				t.Fatalf("status = %d, want %d (%s)", rr.Code, tt.code, rr.Body.String())
			}
		})
	}

	rr := do(t, h, http.MethodGet, "/movie?title="+url.QueryEscape("Movie 3"), nil)
	var view models.MovieView
	if err := json.Unmarshal(rr.Body.Bytes(), &view); err != nil {
		t.Fatal(err)
	}
	if view.Movie.Title != "Movie 3" || view.Details.PosterURL != "poster:Movie 3" {
		t.Errorf("view = %+v", view)
	}
}

func TestNotFoundMessage(t *testing.T) {
	rr := do(t, testRouter(t), http.MethodGet, "/recommendations?title=Nope", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "not in my database") {
		t.Errorf("body = %s", rr.Body.String())
	}
}

func TestGetRecommendations(t *testing.T) {
	rr := do(t, testRouter(t), http.MethodGet, "/recommendations?title="+url.QueryEscape("Movie 0")+"&n=3", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	var resp models.RecommendResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Selected != "Movie 0" || len(resp.Recommendations) != 3 {
		t.Fatalf("resp = %+v", resp)
	}
	for _, r := range resp.Recommendations {
		if r.Movie.Title == "Movie 0" {
			t.Errorf("query movie in results")
		}
	}
	if len(resp.History) != 1 || resp.History[0] != "Movie 0" {
		t.Errorf("history = %v", resp.History)
	}
}

func TestPostRecommendations(t *testing.T) {
	h := testRouter(t)

	body, _ := json.Marshal(models.RecommendRequest{
		Title:   "Movie 5",
		History: []string{"Movie 1", "Movie 5"},
	})
	rr := do(t, h, http.MethodPost, "/recommendations", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	var resp models.RecommendResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Recommendations) != 5 {
		t.Errorf("len = %d, want 5", len(resp.Recommendations))
	}
	// mismo título que el último: no se repite
	if len(resp.History) != 2 {
		t.Errorf("history = %v", resp.History)
	}
	if len(resp.Recent) != 2 || resp.Recent[0] != "Movie 5" {
		t.Errorf("recent = %v", resp.Recent)
	}

	rr = do(t, h, http.MethodPost, "/recommendations", []byte("{"))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("bad body status = %d", rr.Code)
	}
}

func TestRecommendationsWS(t *testing.T) {
	srv := httptest.NewServer(testRouter(t))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/recommendations?title=" + url.QueryEscape("Movie 2") + "&n=2"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	var start map[string]any
	if err := conn.ReadJSON(&start); err != nil {
		t.Fatal(err)
	}
	if start["type"] != "start" {
		t.Fatalf("first message = %v", start)
	}

	var msg struct {
		Type            string                  `json:"type"`
		Recommendations []models.Recommendation `json:"recommendations"`
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatal(err)
	}
	if msg.Type != "recommendations" || len(msg.Recommendations) != 2 {
		t.Fatalf("message = %+v", msg)
	}
}

func TestRecommendationsWSError(t *testing.T) {
	srv := httptest.NewServer(testRouter(t))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/recommendations?title=Nope"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	var start, msg map[string]any
	if err := conn.ReadJSON(&start); err != nil {
		t.Fatal(err)
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatal(err)
	}
	if msg["type"] != "error" || msg["status"] != float64(http.StatusNotFound) {
		t.Errorf("message = %v", msg)
	}
}
