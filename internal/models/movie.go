package models

// MovieRecord es una fila del índice. Row es la identidad estable (posición).
type MovieRecord struct {
	Row         int      `json:"row" bson:"row"`
	Title       string   `json:"title" bson:"title"`
	Director    string   `json:"director,omitempty" bson:"director,omitempty"`
	Genres      []string `json:"genres,omitempty" bson:"genres,omitempty"`
	Overview    string   `json:"overview,omitempty" bson:"overview,omitempty"`
	ReleaseDate string   `json:"releaseDate,omitempty" bson:"releaseDate,omitempty"`
	VoteAverage float64  `json:"voteAverage" bson:"voteAverage"`
}

// FeatureVector vector disperso (tf-idf sobre géneros/director/keywords),
// alineado con MovieRecord por fila.
type FeatureVector struct {
	Indices []int     `json:"indices" bson:"indices"`
	Values  []float64 `json:"values" bson:"values"`
}

// MovieView es la película seleccionada con sus datos de TMDB y los
// fallbacks del dataset ya aplicados.
type MovieView struct {
	Movie       MovieRecord      `json:"movie"`
	Details     EnrichmentResult `json:"details"`
	Overview    string           `json:"overview"`
	Rating      *float64         `json:"rating,omitempty"`
	ReleaseDate string           `json:"releaseDate,omitempty"`
	Year        *int             `json:"year,omitempty"`
}
