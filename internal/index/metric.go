package index

import (
	"fmt"
	"math"
	"sort"

	"cinematch/internal/models"
)

// Metric es propiedad del índice (se fija al construirlo), no de la consulta.
type Metric string

const (
	Cosine    Metric = "cosine"
	Euclidean Metric = "euclidean"
)

func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case "", Cosine:
		return Cosine, nil
	case Euclidean:
		return Euclidean, nil
	}
	return "", fmt.Errorf("métrica no soportada: %q", s)
}

// sparse vector normalizado: índices ordenados ascendentes y sin repetidos.
type sparse struct {
	idx  []int
	val  []float64
	norm float64
}

func newSparse(fv models.FeatureVector) (sparse, error) {
	if len(fv.Indices) != len(fv.Values) {
		return sparse{}, fmt.Errorf("indices=%d values=%d", len(fv.Indices), len(fv.Values))
	}

	order := make([]int, len(fv.Indices))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return fv.Indices[order[a]] < fv.Indices[order[b]] })

	s := sparse{
		idx: make([]int, 0, len(order)),
		val: make([]float64, 0, len(order)),
	}
	for _, o := range order {
		i, v := fv.Indices[o], fv.Values[o]
		if i < 0 {
			return sparse{}, fmt.Errorf("índice negativo %d", i)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return sparse{}, fmt.Errorf("valor no finito en índice %d", i)
		}
		// índices repetidos se suman (igual que una matriz CSR sin canonicalizar)
		if n := len(s.idx); n > 0 && s.idx[n-1] == i {
			s.val[n-1] += v
			continue
		}
		s.idx = append(s.idx, i)
		s.val = append(s.val, v)
	}

	var sq float64
	for _, v := range s.val {
		sq += v * v
	}
	s.norm = math.Sqrt(sq)
	return s, nil
}

func dot(a, b sparse) float64 {
	var out float64
	i, j := 0, 0
	for i < len(a.idx) && j < len(b.idx) {
		switch {
		case a.idx[i] == b.idx[j]:
			out += a.val[i] * b.val[j]
			i++
			j++
		case a.idx[i] < b.idx[j]:
			i++
		default:
			j++
		}
	}
	return out
}

func (m Metric) distance(a, b sparse) float64 {
	switch m {
	case Euclidean:
		var sum float64
		i, j := 0, 0
		for i < len(a.idx) || j < len(b.idx) {
			var d float64
			switch {
			case j >= len(b.idx) || (i < len(a.idx) && a.idx[i] < b.idx[j]):
				d = a.val[i]
				i++
			case i >= len(a.idx) || b.idx[j] < a.idx[i]:
				d = b.val[j]
				j++
			default:
				d = a.val[i] - b.val[j]
				i++
				j++
			}
			sum += d * d
		}
		return math.Sqrt(sum)
	default:
		if a.norm == 0 || b.norm == 0 {
			return 1
		}
		d := 1 - dot(a, b)/(a.norm*b.norm)
		// ruido de punto flotante: un vector contra sí mismo da ~1e-16
		if d < 0 {
			d = 0
		}
		return d
	}
}
