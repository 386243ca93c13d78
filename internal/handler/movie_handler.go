// internal/handler/movie_handler.go
package handler

import (
	"net/http"

	"cinematch/internal/service"
)

type MovieHandler struct {
	svc *service.MovieService
}

func NewMovieHandler(s *service.MovieService) *MovieHandler { return &MovieHandler{svc: s} }

// @Summary Catálogo de títulos (ordenado, sin duplicados)
// @Tags movies
// @Produce json
// @Success 200 {array} string
// @Router /movies/titles [get]
func (h *MovieHandler) Titles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Titles())
}

// @Summary Película seleccionada con metadata de TMDB
// @Tags movies
// @Produce json
// @Param title query string true "título exacto"
// @Success 200 {object} models.MovieView
// @Failure 404 {object} handler.errorBody
// @Failure 422 {object} handler.errorBody
// @Router /movie [get]
func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "title es requerido"})
		return
	}

	m, err := h.svc.GetMovie(r.Context(), title)
	if err != nil {
		writeError(w, title, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}
