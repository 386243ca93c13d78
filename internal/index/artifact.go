package index

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"

	"cinematch/internal/models"

	"github.com/goccy/go-json"
)

// ErrCorruptArtifact el artefacto no se pudo decodificar o no es consistente.
// Es fatal al arrancar.
var ErrCorruptArtifact = errors.New("artefacto de índice corrupto")

// Artifact es el blob serializado que produce el proceso offline.
type Artifact struct {
	Metric     string                 `json:"metric" bson:"metric"`
	Movies     []models.MovieRecord   `json:"movies" bson:"movies"`
	Vectors    []models.FeatureVector `json:"vectors" bson:"vectors"`
	TitleIndex map[string][]int       `json:"titleIndex,omitempty" bson:"titleIndex,omitempty"`
}

// Build arma el índice a partir del artefacto.
func (a *Artifact) Build() (*Index, error) {
	metric, err := ParseMetric(a.Metric)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptArtifact, err)
	}
	idx, err := New(a.Movies, a.Vectors, metric, a.TitleIndex)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptArtifact, err)
	}
	return idx, nil
}

var gzipMagic = []byte{0x1f, 0x8b}

// Decode lee un artefacto JSON, comprimido con gzip o no.
func Decode(r io.Reader) (*Artifact, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(2); err == nil && bytes.Equal(head, gzipMagic) {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptArtifact, err)
		}
		defer zr.Close()
		r = zr
	} else {
		r = br
	}

	var a Artifact
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptArtifact, err)
	}
	return &a, nil
}

// LoadFile carga y construye el índice desde disco.
func LoadFile(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abriendo artefacto %s: %w", path, err)
	}
	defer f.Close()

	a, err := Decode(f)
	if err != nil {
		return nil, err
	}
	return a.Build()
}
