package handler

import (
	"net/http"
	"strconv"
	"time"

	"cinematch/internal/history"
	"cinematch/internal/models"
	"cinematch/internal/service"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

type RecommendHandler struct {
	svc *service.RecommendService
}

func NewRecommendHandler(s *service.RecommendService) *RecommendHandler {
	return &RecommendHandler{svc: s}
}

// @Summary Películas parecidas a un título
// @Tags recommend
// @Produce json
// @Param title query string true "título exacto"
// @Param n query int false "cantidad de recomendaciones (default 5)"
// @Success 200 {object} models.RecommendResponse
// @Failure 404 {object} handler.errorBody
// @Failure 422 {object} handler.errorBody
// @Router /recommendations [get]
func (h *RecommendHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	n, _ := strconv.Atoi(r.URL.Query().Get("n"))
	h.recommend(w, r, models.RecommendRequest{
		Title: r.URL.Query().Get("title"),
		N:     n,
	})
}

// @Summary Recomendaciones con historial del cliente
// @Description El historial viaja en el body y vuelve actualizado; el servidor no lo guarda.
// @Tags recommend
// @Accept json
// @Produce json
// @Param body body models.RecommendRequest true "título, n e historial"
// @Success 200 {object} models.RecommendResponse
// @Failure 404 {object} handler.errorBody
// @Router /recommendations [post]
func (h *RecommendHandler) PostRecommendations(w http.ResponseWriter, r *http.Request) {
	var req models.RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "body inválido"})
		return
	}
	h.recommend(w, r, req)
}

func (h *RecommendHandler) recommend(w http.ResponseWriter, r *http.Request, req models.RecommendRequest) {
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "title es requerido"})
		return
	}

	recs, err := h.svc.Recommend(r.Context(), req.Title, req.N)
	if err != nil {
		writeError(w, req.Title, err)
		return
	}

	hist := history.Push(req.History, req.Title)
	writeJSON(w, http.StatusOK, models.RecommendResponse{
		Selected:        req.Title,
		Recommendations: recs,
		History:         hist,
		Recent:          history.Reverse(hist),
	})
}

// upgrader global (no afecta a swagger)
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary Recomendaciones por WebSocket
// @Description Manda un mensaje "start" y después uno "recommendations" (o "error").
// @Tags recommend
// @Param title query string true "título exacto"
// @Param n query int false "cantidad de recomendaciones"
// @Router /ws/recommendations [get]
func (h *RecommendHandler) GetRecommendationsWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade ya respondió con el error HTTP
		return
	}
	defer conn.Close()

	title := r.URL.Query().Get("title")
	n, _ := strconv.Atoi(r.URL.Query().Get("n"))

	// Mensaje inicial
	_ = conn.WriteJSON(map[string]any{
		"type":  "start",
		"title": title,
	})

	recs, err := h.svc.Recommend(r.Context(), title, n)
	if err != nil {
		status, msg := errorStatus(title, err)
		_ = conn.WriteJSON(map[string]any{
			"type":   "error",
			"status": status,
			"error":  msg,
		})
		return
	}

	// Mensaje final con recomendaciones
	_ = conn.WriteJSON(map[string]any{
		"type":            "recommendations",
		"selected":        title,
		"recommendations": recs,
		"generatedAt":     time.Now(),
	})
}
