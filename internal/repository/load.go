package repository

import (
	"context"
	"fmt"
	"os"

	"cinematch/internal/config"
	"cinematch/internal/db"
	"cinematch/internal/index"
	"cinematch/internal/logging"
)

// LoadIndex carga el índice según INDEX_SOURCE. Cualquier error es fatal
// para el caller: sin índice no hay servicio.
func LoadIndex(ctx context.Context, cfg *config.Config) (*index.Index, error) {
	switch cfg.IndexSource {
	case "", "file":
		idx, err := index.LoadFile(cfg.IndexPath)
		if err != nil {
			return nil, err
		}
		logging.Info().Str("path", cfg.IndexPath).Int("rows", idx.Len()).Str("metric", string(idx.Metric())).Msg("[index] cargado desde archivo")
		return idx, nil

	case "mongo":
		client, database, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, fmt.Errorf("mongo: %w", err)
		}
		// el índice queda en memoria, la conexión ya no hace falta
		defer func() { _ = client.Disconnect(context.Background()) }()

		a, err := NewIndexRepository(database).LoadArtifact(ctx)
		if err != nil {
			return nil, err
		}
		idx, err := a.Build()
		if err != nil {
			return nil, err
		}
		logging.Info().Str("db", cfg.MongoDB).Int("rows", idx.Len()).Str("metric", string(idx.Metric())).Msg("[index] cargado desde mongo")
		return idx, nil

	default:
		return nil, fmt.Errorf("INDEX_SOURCE desconocido: %q", cfg.IndexSource)
	}
}

// ImportFile sube el artefacto de un archivo a Mongo (reemplaza el actual).
func ImportFile(ctx context.Context, cfg *config.Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	a, err := index.Decode(f)
	if err != nil {
		return err
	}
	// validar antes de escribir
	if _, err := a.Build(); err != nil {
		return err
	}

	client, database, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return fmt.Errorf("mongo: %w", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := NewIndexRepository(database).SaveArtifact(ctx, a); err != nil {
		return err
	}
	logging.Info().Str("path", path).Int("rows", len(a.Movies)).Msg("[index] importado a mongo")
	return nil
}
