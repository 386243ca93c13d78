// Package index contiene el índice de similitud precalculado: registros,
// vectores de features alineados por fila, el mapa de títulos y la consulta
// de k vecinos más cercanos. Se construye una vez al arrancar y es de solo
// lectura; lo comparten todos los requests sin locks.
package index

import (
	"errors"
	"fmt"
	"sort"

	"cinematch/internal/models"
)

var ErrEmptyIndex = errors.New("índice vacío")

type Index struct {
	metric  Metric
	records []models.MovieRecord
	vectors []sparse
	titles  map[string][]int
	// catálogo ordenado y sin duplicados (para el selector)
	catalog []string
}

// New valida y arma el índice. titleRows puede ser nil: en ese caso se
// deriva de los registros en orden de fila (primera aparición primero).
func New(records []models.MovieRecord, vectors []models.FeatureVector, metric Metric, titleRows map[string][]int) (*Index, error) {
	if len(records) == 0 {
		return nil, ErrEmptyIndex
	}
	if len(vectors) != len(records) {
		return nil, fmt.Errorf("vectores (%d) y registros (%d) no alineados", len(vectors), len(records))
	}
	if metric == "" {
		metric = Cosine
	}

	idx := &Index{
		metric:  metric,
		records: make([]models.MovieRecord, len(records)),
		vectors: make([]sparse, len(vectors)),
	}

	for i, r := range records {
		r.Row = i
		idx.records[i] = r
	}
	for i, fv := range vectors {
		s, err := newSparse(fv)
		if err != nil {
			return nil, fmt.Errorf("vector fila %d: %w", i, err)
		}
		idx.vectors[i] = s
	}

	if titleRows == nil {
		titleRows = make(map[string][]int)
		for _, r := range idx.records {
			titleRows[r.Title] = append(titleRows[r.Title], r.Row)
		}
	}
	idx.titles = make(map[string][]int, len(titleRows))
	for t, rows := range titleRows {
		if len(rows) == 0 {
			continue
		}
		idx.titles[t] = append([]int(nil), rows...)
	}

	seen := make(map[string]struct{}, len(idx.records))
	for _, r := range idx.records {
		if _, ok := seen[r.Title]; ok || r.Title == "" {
			continue
		}
		seen[r.Title] = struct{}{}
		idx.catalog = append(idx.catalog, r.Title)
	}
	sort.Strings(idx.catalog)

	return idx, nil
}

func (x *Index) Len() int { return len(x.records) }

func (x *Index) Metric() Metric { return x.metric }

// Record devuelve el registro de una fila.
func (x *Index) Record(row int) (models.MovieRecord, bool) {
	if row < 0 || row >= len(x.records) {
		return models.MovieRecord{}, false
	}
	return x.records[row], true
}

// Titles devuelve el catálogo ordenado. El slice es compartido: no modificar.
func (x *Index) Titles() []string { return x.catalog }
