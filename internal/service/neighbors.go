package service

import (
	"context"

	"cinematch/internal/cluster"
	"cinematch/internal/index"
	"cinematch/internal/logging"
	"cinematch/internal/models"
)

// Neighbors es el motor de vecinos: en proceso o en un nodo remoto.
type Neighbors interface {
	FindSimilar(ctx context.Context, row, n int) ([]models.Neighbor, error)
}

// LocalNeighbors consulta el índice en memoria (sin bloqueo, sin locks).
type LocalNeighbors struct {
	idx *index.Index
}

func NewLocalNeighbors(idx *index.Index) *LocalNeighbors {
	return &LocalNeighbors{idx: idx}
}

func (l *LocalNeighbors) FindSimilar(_ context.Context, row, n int) ([]models.Neighbor, error) {
	return l.idx.FindSimilar(row, n)
}

// RemoteNeighbors delega en cmd/simnode y cae al índice local si el nodo falla.
type RemoteNeighbors struct {
	client *cluster.Client
	local  *index.Index
}

func NewRemoteNeighbors(client *cluster.Client, local *index.Index) *RemoteNeighbors {
	return &RemoteNeighbors{client: client, local: local}
}

func (r *RemoteNeighbors) FindSimilar(ctx context.Context, row, n int) ([]models.Neighbor, error) {
	out, err := r.client.FindSimilar(ctx, row, n, r.local.Len())
	if err == nil {
		return out, nil
	}
	logging.Warn().Err(err).Int("row", row).Msg("[recommend] nodo remoto falló, usando índice local")
	return r.local.FindSimilar(row, n)
}
