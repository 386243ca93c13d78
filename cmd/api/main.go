package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "cinematch/docs" // swagger docs

	"cinematch/internal/cache"
	"cinematch/internal/cluster"
	"cinematch/internal/config"
	"cinematch/internal/enrich"
	"cinematch/internal/handler"
	"cinematch/internal/logging"
	"cinematch/internal/repository"
	"cinematch/internal/service"
	"cinematch/internal/tmdb"
)

// @title cinematch Movie Recommender API
// @version 1.0
// @description Recomendaciones por similitud de contenido + metadata de TMDB
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("[config] no se pudo cargar")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	cfg.LogEffective()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// índice (archivo o Mongo); sin índice no arrancamos
	idx, err := repository.LoadIndex(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("[index] no se pudo cargar el artefacto")
	}

	// Redis es opcional: si no está, el memo queda solo en memoria
	var rdb *cache.Redis
	if cfg.RedisAddr != "" {
		rdb, err = cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPass)
		if err != nil {
			logging.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("[redis] sin conexión, sigo sin cache compartida")
			rdb = nil
		}
	}
	defer rdb.Close()

	// ============================
	// Enriquecimiento (TMDB)
	// ============================
	api := tmdb.NewClient(tmdb.Options{
		APIKey:  cfg.TMDBAPIKey,
		BaseURL: cfg.TMDBBaseURL,
		Timeout: cfg.TMDBTimeout,
		RPS:     cfg.TMDBRPS,
	})
	memo := enrich.NewMemo(enrich.NewClient(api), rdb, cfg.EnrichTTL, 0)
	batcher := enrich.NewBatcher(memo, cfg.EnrichWorkers)

	// vecinos: nodo remoto si está configurado, con fallback al índice local
	var neighbors service.Neighbors = service.NewLocalNeighbors(idx)
	if cfg.IndexNodeAddr != "" {
		neighbors = service.NewRemoteNeighbors(cluster.NewClient(cfg.IndexNodeAddr, 5*time.Second), idx)
		logging.Info().Str("node", cfg.IndexNodeAddr).Msg("[cluster] usando nodo remoto de vecinos")
	}

	// services
	recSvc := service.NewRecommendService(idx, neighbors, batcher, cfg.DefaultRecs, cfg.MaxRecs)
	movieSvc := service.NewMovieService(idx, memo)

	// handlers
	movieH := handler.NewMovieHandler(movieSvc)
	recH := handler.NewRecommendHandler(recSvc)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler.NewRouter(movieH, recH),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logging.Info().Str("port", cfg.HTTPPort).Int("rows", idx.Len()).Msg("[http] escuchando")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Fatal().Err(err).Msg("[http] error del servidor")
	}
	logging.Info().Msg("[http] apagado")
}
