package models

// Neighbor resultado del motor de vecinos: distancia bajo la métrica del índice.
type Neighbor struct {
	Movie    MovieRecord `json:"movie"`
	Distance float64     `json:"distance"`
}
