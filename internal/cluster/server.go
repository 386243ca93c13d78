package cluster

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"cinematch/internal/index"
	"cinematch/internal/logging"

	"github.com/goccy/go-json"
)

// Server atiende SimilarTask sobre TCP usando un índice local.
type Server struct {
	nodeID string
	idx    *index.Index
}

func NewServer(nodeID string, idx *index.Index) *Server {
	return &Server{nodeID: nodeID, idx: idx}
}

// Serve acepta conexiones hasta que se cierra el listener o se cancela ctx.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			logging.Warn().Err(err).Str("node", s.nodeID).Msg("[simnode] accept error")
			continue
		}
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(30 * time.Second))

	dec := json.NewDecoder(bufio.NewReader(conn))
	var task SimilarTask
	if err := dec.Decode(&task); err != nil {
		logging.Warn().Err(err).Str("node", s.nodeID).Msg("[simnode] decode task error")
		return
	}

	start := time.Now()
	resp := s.handle(task)

	logging.Debug().
		Str("node", s.nodeID).
		Int("row", task.Row).
		Int("n", task.N).
		Int("neighbors", len(resp.Neighbors)).
		Dur("elapsed", time.Since(start)).
		Msg("[simnode] tarea completada")

	if err := json.NewEncoder(conn).Encode(&resp); err != nil {
		logging.Warn().Err(err).Str("node", s.nodeID).Msg("[simnode] encode resp error")
	}
}

func (s *Server) handle(task SimilarTask) SimilarResponse {
	if task.IndexSize != 0 && task.IndexSize != s.idx.Len() {
		return SimilarResponse{Error: fmt.Sprintf("índice distinto: api=%d nodo=%d", task.IndexSize, s.idx.Len())}
	}
	if task.N < 0 {
		return SimilarResponse{Error: fmt.Sprintf("n inválido: %d", task.N)}
	}
	neighbors, err := s.idx.FindSimilar(task.Row, task.N)
	if err != nil {
		return SimilarResponse{Error: err.Error()}
	}
	return SimilarResponse{Neighbors: neighbors}
}
