package index

import (
	"cmp"
	"slices"

	"cinematch/internal/models"
)

type hit struct {
	row  int
	dist float64
}

// nearest devuelve las k filas más cercanas a la fila dada (incluida ella
// misma), por distancia ascendente y fila ascendente en empates.
func (x *Index) nearest(row, k int) []hit {
	if k > len(x.vectors) {
		k = len(x.vectors)
	}
	q := x.vectors[row]

	hits := make([]hit, len(x.vectors))
	for i, v := range x.vectors {
		hits[i] = hit{row: i, dist: x.metric.distance(q, v)}
	}
	slices.SortFunc(hits, func(a, b hit) int {
		if c := cmp.Compare(a.dist, b.dist); c != 0 {
			return c
		}
		return cmp.Compare(a.row, b.row)
	})
	return hits[:k]
}

// FindSimilar devuelve hasta n películas parecidas a la fila dada.
//
// Consulta n+1 vecinos y descarta la propia fila por identidad (no por
// posición: con vectores duplicados otra fila puede empatar en distancia 0).
// Después deduplica por título, excluyendo también el título consultado.
func (x *Index) FindSimilar(row, n int) ([]models.Neighbor, error) {
	if row < 0 || row >= len(x.vectors) {
		return nil, &DataIntegrityError{Row: row, Size: len(x.vectors)}
	}
	// nunca hay más de len-1 vecinos; acota la reserva y evita overflow en n+1
	if m := len(x.vectors) - 1; n > m {
		n = m
	}
	if n <= 0 {
		return []models.Neighbor{}, nil
	}

	self := x.records[row]
	seen := map[string]struct{}{self.Title: {}}

	out := make([]models.Neighbor, 0, n)
	for _, h := range x.nearest(row, n+1) {
		if h.row == row {
			continue
		}
		rec := x.records[h.row]
		if _, dup := seen[rec.Title]; dup {
			continue
		}
		seen[rec.Title] = struct{}{}

		out = append(out, models.Neighbor{Movie: rec, Distance: h.dist})
		if len(out) == n {
			break
		}
	}
	return out, nil
}
