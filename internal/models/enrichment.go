package models

// PlaceholderPoster se usa cuando no hay póster real.
const PlaceholderPoster = "https://via.placeholder.com/500x750?text=Poster+Not+Available"

// EnrichmentResult metadata de TMDB para un título. Nunca se persiste;
// Error != "" indica un resultado placeholder.
type EnrichmentResult struct {
	PosterURL   string   `json:"posterUrl"`
	Tagline     string   `json:"tagline,omitempty"`
	SourceURL   string   `json:"sourceUrl,omitempty"`
	ReleaseDate string   `json:"releaseDate,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	Overview    string   `json:"overview,omitempty"`
	TMDBID      int      `json:"tmdbId,omitempty"`
	Error       string   `json:"error,omitempty"`
}

func Placeholder(msg string) EnrichmentResult {
	return EnrichmentResult{PosterURL: PlaceholderPoster, Error: msg}
}

func (e EnrichmentResult) IsPlaceholder() bool {
	return e.Error != ""
}
