package cluster

import (
	"bufio"
	"context"
	"errors"
	"net"
	"time"

	"cinematch/internal/models"

	"github.com/goccy/go-json"
)

// SendTask abre una conexión TCP, manda la tarea y espera una respuesta
// (un objeto JSON en cada sentido).
func SendTask(ctx context.Context, addr string, task *SimilarTask) (*SimilarResponse, error) {
	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if dl, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(dl)
	}

	enc := json.NewEncoder(conn)
	if err := enc.Encode(task); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bufio.NewReader(conn))
	var resp SimilarResponse
	if err := dec.Decode(&resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Client consulta vecinos a un nodo remoto.
type Client struct {
	addr    string
	timeout time.Duration
}

func NewClient(addr string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Client{addr: addr, timeout: timeout}
}

func (c *Client) FindSimilar(ctx context.Context, row, n, indexSize int) ([]models.Neighbor, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := SendTask(ctx, c.addr, &SimilarTask{Row: row, N: n, IndexSize: indexSize})
	if err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}
	if resp.Neighbors == nil {
		resp.Neighbors = []models.Neighbor{}
	}
	return resp.Neighbors, nil
}
