package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"cinematch/internal/db"
	"cinematch/internal/index"
	"cinematch/internal/models"
)

// Necesita un Mongo real: MONGO_TEST_URI=mongodb://localhost:27017 go test ./...
func TestIndexRepositoryRoundTrip(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI no seteado")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, database, err := db.Connect(ctx, uri, "cinematch_test")
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Disconnect(context.Background())
	defer database.Drop(context.Background())

	repo := NewIndexRepository(database)
	in := &index.Artifact{
		Metric: "cosine",
		Movies: []models.MovieRecord{{Title: "Mr. Smith"}, {Title: "Heat"}},
		Vectors: []models.FeatureVector{
			{Indices: []int{0}, Values: []float64{1}},
			{Indices: []int{1}, Values: []float64{1}},
		},
		TitleIndex: map[string][]int{"Mr. Smith": {0}, "Heat": {1}},
	}
	if err := repo.SaveArtifact(ctx, in); err != nil {
		t.Fatalf("SaveArtifact() error = %v", err)
	}

	out, err := repo.LoadArtifact(ctx)
	if err != nil {
		t.Fatalf("LoadArtifact() error = %v", err)
	}
	idx, err := out.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if row, err := idx.Resolve("Mr. Smith"); err != nil || row != 0 {
		t.Fatalf("Resolve() = %d, %v", row, err)
	}
}
