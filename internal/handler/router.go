package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter arma todas las rutas HTTP. No hay autenticación.
func NewRouter(movieH *MovieHandler, recH *RecommendHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", Health)
	r.Handle("/metrics", promhttp.Handler())

	// Películas
	r.Get("/movies/titles", movieH.Titles)
	r.Get("/movie", movieH.GetMovie)

	// Recomendaciones
	r.Get("/recommendations", recH.GetRecommendations)
	r.Post("/recommendations", recH.PostRecommendations)
	r.Get("/ws/recommendations", recH.GetRecommendationsWS)

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
