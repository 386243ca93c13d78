package cluster

import "cinematch/internal/models"

// Tarea enviada desde la API a un nodo de similitud.
type SimilarTask struct {
	Row int `json:"row"`
	N   int `json:"n"`
	// tamaño del índice que tiene la API; el nodo rechaza si no coincide
	// (artefactos distintos => filas distintas)
	IndexSize int `json:"indexSize"`
}

// Respuesta del nodo. Error != "" si no se pudo calcular.
type SimilarResponse struct {
	Neighbors []models.Neighbor `json:"neighbors"`
	Error     string            `json:"error,omitempty"`
}
