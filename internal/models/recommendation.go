package models

type Recommendation struct {
	Movie    MovieRecord      `json:"movie"`
	Distance float64          `json:"distance"`
	Details  EnrichmentResult `json:"details"`
}

// RecommendRequest body de POST /recommendations. History es del cliente:
// se devuelve actualizado pero el motor no lo toca.
type RecommendRequest struct {
	Title   string   `json:"title"`
	N       int      `json:"n,omitempty"`
	History []string `json:"history,omitempty"`
}

type RecommendResponse struct {
	Selected        string           `json:"selected"`
	Recommendations []Recommendation `json:"recommendations"`
	History         []string         `json:"history"`
	// Recent es History de más nuevo a más viejo (para el sidebar)
	Recent []string `json:"recent"`
}
