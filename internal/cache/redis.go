package cache

import (
	"context"
	"errors"
	"time"

	"cinematch/internal/logging"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Redis es el segundo nivel del memo de enriquecimiento, compartido entre
// procesos. Un *Redis nil es válido y no hace nada.
type Redis struct {
	client *redis.Client
	prefix string
}

func NewRedis(ctx context.Context, addr, password string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	logging.Info().Str("addr", addr).Msg("[redis] conectado")
	return &Redis{client: client, prefix: "cinematch:"}, nil
}

// =======================================================
//  Helpers JSON para usar desde los servicios
// =======================================================

// GetJSON lee una key; si existe deserializa el JSON en dest.
func (r *Redis) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if r == nil || r.client == nil {
		return false, nil
	}

	val, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON serializa value y lo guarda con TTL.
func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if r == nil || r.client == nil {
		return nil
	}

	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.prefix+key, b, ttl).Err()
}

func (r *Redis) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}
