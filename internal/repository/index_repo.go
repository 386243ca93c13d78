// internal/repository/index_repo.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"cinematch/internal/index"
	"cinematch/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Documento de cabecera del índice (colección index_meta, _id "current").
type IndexMetaDoc struct {
	ID         string         `bson:"_id"`
	Metric     string         `bson:"metric"`
	TitleIndex []TitleRowsDoc `bson:"titleIndex,omitempty"`
}

// los títulos pueden tener puntos, por eso no van como keys de un mapa bson
type TitleRowsDoc struct {
	Title string `bson:"title"`
	Rows  []int  `bson:"rows"`
}

// Una fila del índice (colección index_rows).
type IndexRowDoc struct {
	Row    int                  `bson:"row"`
	Movie  models.MovieRecord   `bson:"movie"`
	Vector models.FeatureVector `bson:"vector"`
}

type IndexRepository struct {
	meta *mongo.Collection
	rows *mongo.Collection
}

func NewIndexRepository(db *mongo.Database) *IndexRepository {
	return &IndexRepository{
		meta: db.Collection("index_meta"),
		rows: db.Collection("index_rows"),
	}
}

// LoadArtifact arma el artefacto desde Mongo. Las filas tienen que ser
// contiguas desde 0; si no, el artefacto se considera corrupto.
func (r *IndexRepository) LoadArtifact(ctx context.Context) (*index.Artifact, error) {
	var meta IndexMetaDoc
	err := r.meta.FindOne(ctx, bson.M{"_id": "current"}).Decode(&meta)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: falta index_meta/current", index.ErrCorruptArtifact)
	}
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "row", Value: 1}})
	cur, err := r.rows.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	a := &index.Artifact{Metric: meta.Metric}
	for cur.Next(ctx) {
		var doc IndexRowDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		if doc.Row != len(a.Movies) {
			return nil, fmt.Errorf("%w: fila %d fuera de secuencia (esperada %d)", index.ErrCorruptArtifact, doc.Row, len(a.Movies))
		}
		a.Movies = append(a.Movies, doc.Movie)
		a.Vectors = append(a.Vectors, doc.Vector)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	if len(meta.TitleIndex) > 0 {
		a.TitleIndex = make(map[string][]int, len(meta.TitleIndex))
		for _, t := range meta.TitleIndex {
			a.TitleIndex[t.Title] = t.Rows
		}
	}
	return a, nil
}

// SaveArtifact reemplaza el índice guardado. Lo usa el import de cmd/simnode.
func (r *IndexRepository) SaveArtifact(ctx context.Context, a *index.Artifact) error {
	if len(a.Movies) != len(a.Vectors) {
		return fmt.Errorf("%w: vectores y registros no alineados", index.ErrCorruptArtifact)
	}

	meta := IndexMetaDoc{ID: "current", Metric: a.Metric}
	for title, rows := range a.TitleIndex {
		meta.TitleIndex = append(meta.TitleIndex, TitleRowsDoc{Title: title, Rows: rows})
	}

	if _, err := r.rows.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}

	const batch = 1000
	docs := make([]any, 0, batch)
	for i := range a.Movies {
		docs = append(docs, IndexRowDoc{Row: i, Movie: a.Movies[i], Vector: a.Vectors[i]})
		if len(docs) == batch || i == len(a.Movies)-1 {
			if _, err := r.rows.InsertMany(ctx, docs); err != nil {
				return err
			}
			docs = docs[:0]
		}
	}

	_, err := r.meta.ReplaceOne(ctx, bson.M{"_id": "current"}, meta, options.Replace().SetUpsert(true))
	return err
}
