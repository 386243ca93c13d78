package main

import (
	"context"
	"flag"
	"net"
	"os"
	"os/signal"
	"syscall"

	"cinematch/internal/cluster"
	"cinematch/internal/config"
	"cinematch/internal/logging"
	"cinematch/internal/repository"
)

func main() {
	importPath := flag.String("import", "", "sube este artefacto a Mongo y termina")
	flag.Parse()

	cfg := config.LoadNode()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	cfg.LogEffective()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *importPath != "" {
		if err := repository.ImportFile(ctx, cfg, *importPath); err != nil {
			logging.Fatal().Err(err).Str("path", *importPath).Msg("[index] import falló")
		}
		return
	}

	nodeID := os.Getenv("NODE_ID")
	if nodeID == "" {
		nodeID = "?"
	}

	idx, err := repository.LoadIndex(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("[index] no se pudo cargar el artefacto")
	}

	ln, err := net.Listen("tcp", cfg.SimNodeAddr)
	if err != nil {
		logging.Fatal().Err(err).Str("addr", cfg.SimNodeAddr).Msg("[simnode] listen")
	}
	logging.Info().Str("node", nodeID).Str("addr", cfg.SimNodeAddr).Int("rows", idx.Len()).Msg("[simnode] escuchando")

	if err := cluster.NewServer(nodeID, idx).Serve(ctx, ln); err != nil {
		logging.Fatal().Err(err).Msg("[simnode] serve")
	}
}
