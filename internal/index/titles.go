package index

import (
	"errors"
	"fmt"
)

// ErrNotFound el título no está en el índice ("not in database").
var ErrNotFound = errors.New("title not in database")

// DataIntegrityError la fila resuelta no existe en la colección de vectores.
type DataIntegrityError struct {
	Title string
	Row   int
	Size  int
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("data problem for %q: row %d out of range (vectors=%d)", e.Title, e.Row, e.Size)
}

// Resolve mapea un título exacto (case-sensitive) a su fila canónica.
// Con títulos duplicados siempre gana la primera fila insertada.
func (x *Index) Resolve(title string) (int, error) {
	rows, ok := x.titles[title]
	if !ok || len(rows) == 0 {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, title)
	}

	row := rows[0]
	if row < 0 || row >= len(x.vectors) {
		return 0, &DataIntegrityError{Title: title, Row: row, Size: len(x.vectors)}
	}
	return row, nil
}
